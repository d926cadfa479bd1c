package reporting

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockyhq/stocky-api/internal/application/dto"
	"github.com/stockyhq/stocky-api/internal/domain"
	"github.com/stockyhq/stocky-api/internal/domain/entity"
	"github.com/stockyhq/stocky-api/internal/domain/repository"
)

// ── fakes ──────────────────────────────────────────────────────────

type memMovements struct {
	movements  []*entity.Movement
	statsCalls int
	topCalls   int
}

func (r *memMovements) Create(_ context.Context, m *entity.Movement) error {
	r.movements = append(r.movements, m)
	return nil
}

func (r *memMovements) GetByID(_ context.Context, id string) (*entity.Movement, error) {
	for _, m := range r.movements {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memMovements) List(_ context.Context, f repository.MovementFilter) ([]*entity.Movement, int, error) {
	var out []*entity.Movement
	for _, m := range r.movements {
		if f.Type != "" && m.Type != f.Type {
			continue
		}
		if f.ProductID != "" && m.ProductID != f.ProductID {
			continue
		}
		out = append(out, m)
	}
	return out, len(out), nil
}

func (r *memMovements) ListRecent(_ context.Context, limit int) ([]*entity.Movement, error) {
	if len(r.movements) <= limit {
		return r.movements, nil
	}
	return r.movements[len(r.movements)-limit:], nil
}

func (r *memMovements) Stats(_ context.Context, _, _ *time.Time) (*repository.MovementStats, error) {
	r.statsCalls++
	s := &repository.MovementStats{ValorTotal: decimal.Zero}
	for _, m := range r.movements {
		s.TotalMovements++
		if m.Type == entity.MovementEntrada {
			s.Entradas++
			s.TotalEntradas += m.Quantity
		} else {
			s.Salidas++
			s.TotalSalidas += m.Quantity
		}
	}
	return s, nil
}

func (r *memMovements) TopSelling(_ context.Context, limit int) ([]*repository.TopProduct, error) {
	r.topCalls++
	totals := map[string]*repository.TopProduct{}
	for _, m := range r.movements {
		if m.Type != entity.MovementSalida {
			continue
		}
		tp, ok := totals[m.ProductID]
		if !ok {
			tp = &repository.TopProduct{ProductID: m.ProductID, ProductName: m.ProductName, Category: m.Category}
			totals[m.ProductID] = tp
		}
		tp.TotalSales += m.Quantity
	}
	var out []*repository.TopProduct
	for _, tp := range totals {
		out = append(out, tp)
	}
	return out, nil
}

type memProducts struct {
	products map[string]*entity.Product
}

func (r *memProducts) Create(_ context.Context, p *entity.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *memProducts) GetByID(_ context.Context, id string) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func (r *memProducts) GetBySKU(_ context.Context, _ string) (*entity.Product, error) {
	return nil, domain.ErrNotFound
}

func (r *memProducts) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *memProducts) Update(_ context.Context, p *entity.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *memProducts) UpdateStock(_ context.Context, _ string, _, _ int, _ string) error {
	return nil
}

func (r *memProducts) List(_ context.Context, _ repository.ProductFilter) ([]*entity.Product, int, error) {
	var out []*entity.Product
	for _, p := range r.products {
		out = append(out, p)
	}
	return out, len(out), nil
}

func (r *memProducts) ListLowStock(_ context.Context) ([]*entity.Product, error) {
	return nil, nil
}

func (r *memProducts) Stats(_ context.Context) (*repository.ProductStats, error) {
	return &repository.ProductStats{
		TotalProducts: len(r.products),
		TotalValue:    decimal.Zero,
		AveragePrice:  decimal.Zero,
	}, nil
}

func (r *memProducts) Delete(_ context.Context, id string) error {
	delete(r.products, id)
	return nil
}

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewCache(client, 5*time.Minute)
}

func seedMovements() *memMovements {
	return &memMovements{movements: []*entity.Movement{
		{ID: "m-1", ProductID: "p-1", ProductName: "Teclado", Category: "Periféricos", Type: entity.MovementEntrada, Quantity: 10, PreviousStock: 0, NewStock: 10, Reason: "compra", User: "ana", CreatedAt: time.Now()},
		{ID: "m-2", ProductID: "p-1", ProductName: "Teclado", Category: "Periféricos", Type: entity.MovementSalida, Quantity: 4, PreviousStock: 10, NewStock: 6, Reason: "venta", User: "ana", CreatedAt: time.Now()},
	}}
}

// ── tests ──────────────────────────────────────────────────────────

func TestMovementStats_UsaCache(t *testing.T) {
	movements := seedMovements()
	uc := NewUseCase(movements, &memProducts{products: map[string]*entity.Product{}}, newTestCache(t), nil)

	first, err := uc.MovementStats(context.Background(), "", "")
	require.NoError(t, err)
	assert.Equal(t, 2, first.TotalMovements)
	assert.Equal(t, 10, first.TotalEntradas)
	assert.Equal(t, 4, first.TotalSalidas)

	// segunda llamada: sale de la caché, el repo no se toca otra vez
	second, err := uc.MovementStats(context.Background(), "", "")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, movements.statsCalls)
}

func TestMovementStats_BumpInvalida(t *testing.T) {
	movements := seedMovements()
	cache := newTestCache(t)
	uc := NewUseCase(movements, &memProducts{products: map[string]*entity.Product{}}, cache, nil)

	_, err := uc.MovementStats(context.Background(), "", "")
	require.NoError(t, err)
	require.Equal(t, 1, movements.statsCalls)

	require.NoError(t, cache.Bump(context.Background()))

	_, err = uc.MovementStats(context.Background(), "", "")
	require.NoError(t, err)
	assert.Equal(t, 2, movements.statsCalls)
}

func TestMovementStats_SinRedisDegrada(t *testing.T) {
	movements := seedMovements()
	uc := NewUseCase(movements, &memProducts{products: map[string]*entity.Product{}}, NewCache(nil, 0), nil)

	stats, err := uc.MovementStats(context.Background(), "", "")
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalMovements)

	_, err = uc.MovementStats(context.Background(), "", "")
	require.NoError(t, err)
	assert.Equal(t, 2, movements.statsCalls)
}

func TestMovementStats_FechaInvalida(t *testing.T) {
	uc := NewUseCase(seedMovements(), &memProducts{products: map[string]*entity.Product{}}, NewCache(nil, 0), nil)

	_, err := uc.MovementStats(context.Background(), "28-08-2026", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestListMovements_ResuelveReferenciaViva(t *testing.T) {
	products := &memProducts{products: map[string]*entity.Product{
		"p-1": {ID: "p-1", Name: "Teclado mecánico", SKU: "TEC-001"},
	}}
	uc := NewUseCase(seedMovements(), products, NewCache(nil, 0), nil)

	resp, err := uc.ListMovements(context.Background(), dto.MovementListRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Movements, 2)

	m := resp.Movements[0]
	// referencia viva resuelta, snapshots intactos
	assert.Equal(t, "Teclado mecánico", m.Product.Name)
	assert.Equal(t, "TEC-001", m.Product.SKU)
	assert.Equal(t, "Teclado", m.ProductName)
	assert.Equal(t, "Periféricos", m.Category)
}

func TestListMovements_ProductoEliminadoConservaSnapshot(t *testing.T) {
	uc := NewUseCase(seedMovements(), &memProducts{products: map[string]*entity.Product{}}, NewCache(nil, 0), nil)

	resp, err := uc.ListMovements(context.Background(), dto.MovementListRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Movements, 2)
	assert.Equal(t, "Teclado", resp.Movements[0].Product.Name)
	assert.Empty(t, resp.Movements[0].Product.SKU)
}

func TestTopSelling_AgregaSalidas(t *testing.T) {
	movements := seedMovements()
	uc := NewUseCase(movements, &memProducts{products: map[string]*entity.Product{}}, newTestCache(t), nil)

	top, err := uc.TopSelling(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, "p-1", top[0].ProductID)
	assert.Equal(t, 4, top[0].TotalSales)

	_, err = uc.TopSelling(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, 1, movements.topCalls)
}
