package ledger_test

import (
	"context"
	"sort"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockyhq/stocky-api/internal/application/ledger"
	"github.com/stockyhq/stocky-api/internal/domain"
	"github.com/stockyhq/stocky-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

// memStore simula las dos colecciones (productos + movimientos) con un mutex
// que reproduce la sección crítica por producto del FOR UPDATE.
type memStore struct {
	mu         sync.Mutex
	products   map[string]*entity.Product
	movements  []*entity.Movement
	categories map[string]*entity.Category

	// forzar fallos en tests de conflicto
	conflictsLeft int
	failMovement  error
}

func newMemStore() *memStore {
	return &memStore{
		products:   make(map[string]*entity.Product),
		categories: make(map[string]*entity.Category),
	}
}

func (s *memStore) GetByID(_ context.Context, id string) (*entity.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

// El motor solo llama GetByID sobre el store fuera de la transacción; estos
// dos métodos existen para satisfacer ledger.ProductStore.
func (s *memStore) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return s.GetByID(ctx, id)
}

func (s *memStore) UpdateStock(_ context.Context, id string, previousStock, newStock int, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	if p.Stock != previousStock {
		return domain.ErrConflict
	}
	p.Stock = newStock
	p.Status = status
	return nil
}

// txView es la vista de los stores dentro de una "transacción" del fake:
// acumula escrituras y solo se publican al hacer commit en el runner.
type txView struct {
	store   *memStore
	created []*entity.Movement

	pendingID     string
	pendingStock  int
	pendingStatus string
	hasPending    bool
}

func (v *txView) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	return v.GetForUpdate(ctx, id)
}

func (v *txView) GetForUpdate(_ context.Context, id string) (*entity.Product, error) {
	p, ok := v.store.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (v *txView) UpdateStock(_ context.Context, id string, previousStock, newStock int, status string) error {
	if v.store.conflictsLeft > 0 {
		v.store.conflictsLeft--
		return domain.ErrConflict
	}
	p, ok := v.store.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	if p.Stock != previousStock {
		return domain.ErrConflict
	}
	v.pendingID = id
	v.pendingStock = newStock
	v.pendingStatus = status
	v.hasPending = true
	return nil
}

func (v *txView) Create(_ context.Context, m *entity.Movement) error {
	if v.store.failMovement != nil {
		return v.store.failMovement
	}
	v.created = append(v.created, m)
	return nil
}

// memTxRunner serializa las transacciones con el mutex del store y descarta
// todas las escrituras acumuladas si fn devuelve error (rollback).
type memTxRunner struct{ store *memStore }

func (r *memTxRunner) Run(_ context.Context, fn func(ledger.ProductStore, ledger.MovementStore) error) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	view := &txView{store: r.store}
	if err := fn(view, view); err != nil {
		return err // rollback: nada de lo acumulado en view se publica
	}
	if view.hasPending {
		p := r.store.products[view.pendingID]
		p.Stock = view.pendingStock
		p.Status = view.pendingStatus
	}
	r.store.movements = append(r.store.movements, view.created...)
	return nil
}

type memCategories struct{ store *memStore }

func (c *memCategories) GetByID(_ context.Context, id string) (*entity.Category, error) {
	cat, ok := c.store.categories[id]
	if !ok {
		return nil, nil
	}
	return cat, nil
}

type countingCache struct{ bumps int }

func (c *countingCache) Bump(context.Context) error {
	c.bumps++
	return nil
}

func newTestEngine(store *memStore) (*ledger.Engine, *countingCache) {
	cache := &countingCache{}
	eng := ledger.NewEngine(&memTxRunner{store: store}, store, &memCategories{store: store}, cache)
	return eng, cache
}

func seedProduct(store *memStore, stock, minStock int) *entity.Product {
	p := &entity.Product{
		ID:         "prod-1",
		Name:       "Tornillo 3/4",
		CategoryID: "cat-1",
		SKU:        "TOR-034",
		Stock:      stock,
		MinStock:   minStock,
		Status:     entity.ComputeStatus(stock, minStock, entity.StatusActive),
	}
	store.products[p.ID] = p
	store.categories["cat-1"] = &entity.Category{ID: "cat-1", Name: "Ferretería", IsActive: true}
	return p
}

func entrada(qty int) ledger.MovementInput {
	return ledger.MovementInput{
		ProductID: "prod-1",
		Type:      entity.MovementEntrada,
		Quantity:  qty,
		Reason:    "compra",
		User:      "mcastillo",
	}
}

func salida(qty int) ledger.MovementInput {
	in := entrada(qty)
	in.Type = entity.MovementSalida
	in.Reason = "venta"
	return in
}

// ──────────────────────────────────────────────────────────────────────────────
// Validación: cualquier fallo aborta antes de escribir
// ──────────────────────────────────────────────────────────────────────────────

func TestRecordMovement_TipoInvalido(t *testing.T) {
	store := newMemStore()
	seedProduct(store, 10, 2)
	eng, _ := newTestEngine(store)

	in := entrada(1)
	in.Type = "transferencia"
	_, err := eng.RecordMovement(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, store.movements)
	assert.Equal(t, 10, store.products["prod-1"].Stock)
}

func TestRecordMovement_CantidadInvalida(t *testing.T) {
	store := newMemStore()
	seedProduct(store, 10, 2)
	eng, _ := newTestEngine(store)

	for _, qty := range []int{0, -5} {
		_, err := eng.RecordMovement(context.Background(), entrada(qty))
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
	assert.Empty(t, store.movements)
}

func TestRecordMovement_CostoNegativo(t *testing.T) {
	store := newMemStore()
	seedProduct(store, 10, 2)
	eng, _ := newTestEngine(store)

	in := entrada(1)
	neg := decimal.NewFromInt(-3)
	in.Cost = &neg
	_, err := eng.RecordMovement(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRecordMovement_ProductoInexistente(t *testing.T) {
	store := newMemStore()
	eng, _ := newTestEngine(store)

	in := entrada(1)
	in.ProductID = "no-existe"
	_, err := eng.RecordMovement(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, store.movements)
}

// El rechazo es idempotente: repetir la misma entrada inválida produce el
// mismo error y cero efectos las dos veces.
func TestRecordMovement_RechazoIdempotente(t *testing.T) {
	store := newMemStore()
	seedProduct(store, 3, 1)
	eng, _ := newTestEngine(store)

	for i := 0; i < 2; i++ {
		_, err := eng.RecordMovement(context.Background(), salida(99))
		assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	}
	assert.Empty(t, store.movements)
	assert.Equal(t, 3, store.products["prod-1"].Stock)
}

// ──────────────────────────────────────────────────────────────────────────────
// Aritmética del libro
// ──────────────────────────────────────────────────────────────────────────────

func TestRecordMovement_Entrada(t *testing.T) {
	store := newMemStore()
	seedProduct(store, 10, 2)
	eng, cache := newTestEngine(store)

	mov, err := eng.RecordMovement(context.Background(), entrada(7))
	require.NoError(t, err)

	assert.Equal(t, 10, mov.PreviousStock)
	assert.Equal(t, 17, mov.NewStock)
	assert.Equal(t, entity.MovementEntrada, mov.Type)
	assert.Equal(t, "Tornillo 3/4", mov.ProductName, "snapshot del nombre")
	assert.Equal(t, "Ferretería", mov.Category, "snapshot del nombre de la categoría")
	assert.Equal(t, 17, store.products["prod-1"].Stock)
	require.Len(t, store.movements, 1)
	assert.Equal(t, 1, cache.bumps, "la caché de reportes se invalida tras escribir")
}

// Producto{stock:20, minStock:5}, salida 5 → stock 15, sigue active.
func TestRecordMovement_SalidaSinCruzarUmbral(t *testing.T) {
	store := newMemStore()
	seedProduct(store, 20, 5)
	eng, _ := newTestEngine(store)

	mov, err := eng.RecordMovement(context.Background(), salida(5))
	require.NoError(t, err)

	assert.Equal(t, 20, mov.PreviousStock)
	assert.Equal(t, 15, mov.NewStock)
	assert.Equal(t, entity.MovementSalida, mov.Type)
	assert.Equal(t, 15, store.products["prod-1"].Stock)
	assert.Equal(t, entity.StatusActive, store.products["prod-1"].Status)
}

// Producto{stock:6, minStock:5}, salida 2 → stock 4 y pasa a low-stock.
func TestRecordMovement_SalidaCruzaUmbralLowStock(t *testing.T) {
	store := newMemStore()
	seedProduct(store, 6, 5)
	eng, _ := newTestEngine(store)

	_, err := eng.RecordMovement(context.Background(), salida(2))
	require.NoError(t, err)

	assert.Equal(t, 4, store.products["prod-1"].Stock)
	assert.Equal(t, entity.StatusLowStock, store.products["prod-1"].Status)
}

func TestRecordMovement_EntradaRecuperaDeLowStock(t *testing.T) {
	store := newMemStore()
	seedProduct(store, 2, 5) // arranca en low-stock
	eng, _ := newTestEngine(store)

	_, err := eng.RecordMovement(context.Background(), entrada(10))
	require.NoError(t, err)
	assert.Equal(t, entity.StatusActive, store.products["prod-1"].Status)
}

func TestRecordMovement_SalidaInsuficiente(t *testing.T) {
	store := newMemStore()
	seedProduct(store, 4, 1)
	eng, cache := newTestEngine(store)

	_, err := eng.RecordMovement(context.Background(), salida(5))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 4, store.products["prod-1"].Stock, "sin ajuste parcial")
	assert.Empty(t, store.movements, "no se persiste movimiento al fallar")
	assert.Zero(t, cache.bumps)
}

// Salida exacta del stock disponible es válida (quantity == previousStock).
func TestRecordMovement_SalidaExacta(t *testing.T) {
	store := newMemStore()
	seedProduct(store, 5, 0)
	eng, _ := newTestEngine(store)

	mov, err := eng.RecordMovement(context.Background(), salida(5))
	require.NoError(t, err)
	assert.Equal(t, 0, mov.NewStock)
	assert.Equal(t, entity.StatusLowStock, store.products["prod-1"].Status)
}

// Si la categoría no resuelve, el snapshot cae a la referencia cruda.
func TestRecordMovement_CategoriaNoResuelve(t *testing.T) {
	store := newMemStore()
	p := seedProduct(store, 10, 2)
	delete(store.categories, "cat-1")
	eng, _ := newTestEngine(store)

	mov, err := eng.RecordMovement(context.Background(), entrada(1))
	require.NoError(t, err)
	assert.Equal(t, p.CategoryID, mov.Category)
}

// ──────────────────────────────────────────────────────────────────────────────
// AdjustStock comparte el núcleo y también escribe en el libro
// ──────────────────────────────────────────────────────────────────────────────

func TestAdjustStock_DevuelveProductoYResumen(t *testing.T) {
	store := newMemStore()
	seedProduct(store, 8, 2)
	eng, _ := newTestEngine(store)

	res, err := eng.AdjustStock(context.Background(), "prod-1", ledger.AdjustInput{
		Type:     entity.MovementSalida,
		Quantity: 3,
		User:     "mcastillo",
	})
	require.NoError(t, err)

	assert.Equal(t, 8, res.PreviousStock)
	assert.Equal(t, 5, res.NewStock)
	assert.Equal(t, 5, res.Product.Stock)
	require.NotNil(t, res.Movement)
	assert.Equal(t, "ajuste directo de stock", res.Movement.Reason)
	require.Len(t, store.movements, 1, "el ajuste directo también queda en el libro")
}

func TestAdjustStock_MismaValidacionQueRecordMovement(t *testing.T) {
	store := newMemStore()
	seedProduct(store, 8, 2)
	eng, _ := newTestEngine(store)

	_, err := eng.AdjustStock(context.Background(), "prod-1", ledger.AdjustInput{
		Type: "otro", Quantity: 1, User: "mcastillo",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = eng.AdjustStock(context.Background(), "prod-1", ledger.AdjustInput{
		Type: entity.MovementSalida, Quantity: 100, User: "mcastillo",
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

// ──────────────────────────────────────────────────────────────────────────────
// Concurrencia y conflictos
// ──────────────────────────────────────────────────────────────────────────────

// N entradas concurrentes de 1 sobre stock 0 deben dejar stock = N y un libro
// con N entradas formando una cadena contigua 0→1→…→N.
func TestRecordMovement_CadenaContiguaBajoConcurrencia(t *testing.T) {
	const n = 50
	store := newMemStore()
	seedProduct(store, 0, 0)
	eng, _ := newTestEngine(store)

	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := eng.RecordMovement(context.Background(), entrada(1))
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	assert.Equal(t, n, store.products["prod-1"].Stock)
	require.Len(t, store.movements, n)

	sort.Slice(store.movements, func(i, j int) bool {
		return store.movements[i].PreviousStock < store.movements[j].PreviousStock
	})
	for i, m := range store.movements {
		assert.Equal(t, i, m.PreviousStock, "previousStock sin huecos ni repetidos")
		assert.Equal(t, i+1, m.NewStock)
	}
}

// Un conflicto transitorio en la escritura condicionada se reintenta
// releyendo el stock; el llamador no lo ve.
func TestRecordMovement_ReintentaTrasConflicto(t *testing.T) {
	store := newMemStore()
	seedProduct(store, 10, 2)
	store.conflictsLeft = 2
	eng, _ := newTestEngine(store)

	mov, err := eng.RecordMovement(context.Background(), entrada(1))
	require.NoError(t, err)
	assert.Equal(t, 11, mov.NewStock)
	assert.Equal(t, 11, store.products["prod-1"].Stock)
}

// Si el conflicto persiste más allá del límite de reintentos, se expone.
func TestRecordMovement_ConflictoAgotaReintentos(t *testing.T) {
	store := newMemStore()
	seedProduct(store, 10, 2)
	store.conflictsLeft = 100
	eng, _ := newTestEngine(store)

	_, err := eng.RecordMovement(context.Background(), entrada(1))
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Empty(t, store.movements)
}

// Si falla la inserción del movimiento, la transacción revierte también la
// actualización del producto: nunca queda stock aplicado sin entrada en el libro.
func TestRecordMovement_FalloMovimientoRevierteProducto(t *testing.T) {
	store := newMemStore()
	seedProduct(store, 10, 2)
	store.failMovement = assert.AnError
	eng, _ := newTestEngine(store)

	_, err := eng.RecordMovement(context.Background(), entrada(5))
	require.Error(t, err)
	assert.Equal(t, 10, store.products["prod-1"].Stock)
	assert.Empty(t, store.movements)
}

// Contexto cancelado se reporta como ErrTimeout.
func TestRecordMovement_ContextoCancelado(t *testing.T) {
	store := newMemStore()
	seedProduct(store, 10, 2)
	store.failMovement = context.DeadlineExceeded
	eng, _ := newTestEngine(store)

	_, err := eng.RecordMovement(context.Background(), entrada(1))
	assert.ErrorIs(t, err, domain.ErrTimeout)
}
