package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stockyhq/stocky-api/internal/domain"
	"github.com/stockyhq/stocky-api/internal/domain/entity"
)

// Reintentos ante domain.ErrConflict: se relee el stock actual y se recalcula.
const maxConflictRetries = 3

// Engine es el motor del libro de movimientos: valida un ajuste solicitado,
// calcula el nuevo stock, persiste la entrada inmutable del libro y el
// producto actualizado dejando ambos mutuamente consistentes.
//
// Toda validación ocurre antes de cualquier escritura: ante un fallo no se
// crea movimiento ni se muta el producto. Dentro de la transacción la fila
// del producto se bloquea (FOR UPDATE) y su actualización va además
// condicionada al stock observado, de modo que dos ajustes concurrentes sobre
// el mismo producto nunca aplican el mismo previousStock.
type Engine struct {
	txRunner    TxRunner
	productRepo ProductStore
	categories  CategoryResolver
	cache       Invalidator // opcional
}

// NewEngine construye el motor. cache puede ser nil.
func NewEngine(txRunner TxRunner, productRepo ProductStore, categories CategoryResolver, cache Invalidator) *Engine {
	return &Engine{
		txRunner:    txRunner,
		productRepo: productRepo,
		categories:  categories,
		cache:       cache,
	}
}

// MovementInput entrada para registrar un movimiento.
type MovementInput struct {
	ProductID string
	Type      string // entrada | salida
	Quantity  int    // >= 1
	Reason    string
	User      string // actor
	Cost      *decimal.Decimal
	Notes     string
}

// AdjustInput entrada para el ajuste directo de stock (PATCH).
type AdjustInput struct {
	Type     string
	Quantity int
	User     string
	Reason   string // opcional; por defecto "ajuste directo de stock"
}

// AdjustResult resultado de un ajuste directo: producto actualizado más el
// resumen del cambio aplicado.
type AdjustResult struct {
	Product       *entity.Product
	PreviousStock int
	NewStock      int
	Movement      *entity.Movement
}

// RecordMovement registra un movimiento de stock y devuelve la entrada creada.
func (e *Engine) RecordMovement(ctx context.Context, in MovementInput) (*entity.Movement, error) {
	res, err := e.apply(ctx, in)
	if err != nil {
		return nil, err
	}
	return res.Movement, nil
}

// AdjustStock aplica un ajuste directo sobre un producto. Comparte el mismo
// núcleo de validación y aritmética que RecordMovement: también escribe una
// entrada en el libro, para que el historial quede completo.
func (e *Engine) AdjustStock(ctx context.Context, productID string, in AdjustInput) (*AdjustResult, error) {
	reason := in.Reason
	if reason == "" {
		reason = "ajuste directo de stock"
	}
	return e.apply(ctx, MovementInput{
		ProductID: productID,
		Type:      in.Type,
		Quantity:  in.Quantity,
		Reason:    reason,
		User:      in.User,
	})
}

// apply es el núcleo compartido: validar, bloquear, calcular, persistir.
func (e *Engine) apply(ctx context.Context, in MovementInput) (*AdjustResult, error) {
	if err := validate(in); err != nil {
		return nil, err
	}

	// Existencia del producto antes de abrir la transacción.
	product, err := e.productRepo.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, mapStorageErr(err)
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	// Snapshot del nombre de categoría; si no se puede resolver se usa la
	// referencia cruda, nunca se bloquea la escritura por esto.
	categoryName := product.CategoryID
	if cat, err := e.categories.GetByID(ctx, product.CategoryID); err == nil && cat != nil {
		categoryName = cat.Name
	}

	var result *AdjustResult
	for attempt := 0; ; attempt++ {
		result, err = e.applyTx(ctx, in, categoryName)
		if errors.Is(err, domain.ErrConflict) && attempt < maxConflictRetries {
			continue
		}
		break
	}
	if err != nil {
		return nil, err
	}

	if e.cache != nil {
		// Invalidación de estadísticas: el ajuste ya quedó aplicado, un fallo
		// aquí solo deja la caché desactualizada hasta su TTL.
		_ = e.cache.Bump(ctx)
	}
	return result, nil
}

// applyTx ejecuta un intento completo dentro de una transacción.
func (e *Engine) applyTx(ctx context.Context, in MovementInput, categoryName string) (*AdjustResult, error) {
	var result *AdjustResult

	err := e.txRunner.Run(ctx, func(products ProductStore, movements MovementStore) error {
		product, err := products.GetForUpdate(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			// Borrado entre la verificación inicial y el bloqueo.
			return domain.ErrNotFound
		}

		previousStock := product.Stock
		var newStock int
		switch in.Type {
		case entity.MovementEntrada:
			newStock = previousStock + in.Quantity
		case entity.MovementSalida:
			if in.Quantity > previousStock {
				return domain.ErrInsufficientStock
			}
			newStock = previousStock - in.Quantity
		}

		status := entity.ComputeStatus(newStock, product.MinStock, product.Status)

		// Producto primero, condicionado al stock observado; el movimiento
		// después. Si la inserción del movimiento falla, la transacción
		// revierte también la actualización del producto.
		if err := products.UpdateStock(ctx, product.ID, previousStock, newStock, status); err != nil {
			return err
		}

		now := time.Now()
		movement := &entity.Movement{
			ID:            uuid.New().String(),
			ProductID:     product.ID,
			ProductName:   product.Name,
			Category:      categoryName,
			Type:          in.Type,
			Quantity:      in.Quantity,
			PreviousStock: previousStock,
			NewStock:      newStock,
			Reason:        in.Reason,
			User:          in.User,
			Cost:          in.Cost,
			Notes:         in.Notes,
			CreatedAt:     now,
		}
		if err := movements.Create(ctx, movement); err != nil {
			return err
		}

		updated := *product
		updated.Stock = newStock
		updated.Status = status
		updated.UpdatedAt = now
		result = &AdjustResult{
			Product:       &updated,
			PreviousStock: previousStock,
			NewStock:      newStock,
			Movement:      movement,
		}
		return nil
	})
	if err != nil {
		return nil, mapStorageErr(err)
	}
	return result, nil
}

// validate rechaza la solicitud antes de tocar almacenamiento.
func validate(in MovementInput) error {
	if in.ProductID == "" {
		return domain.ErrInvalidInput
	}
	if !entity.ValidMovementType(in.Type) {
		return domain.ErrInvalidInput
	}
	if in.Quantity < 1 {
		return domain.ErrInvalidInput
	}
	if in.Reason == "" || in.User == "" {
		return domain.ErrInvalidInput
	}
	if in.Cost != nil && in.Cost.IsNegative() {
		return domain.ErrInvalidInput
	}
	return nil
}

// mapStorageErr traduce cancelación/deadline a ErrTimeout y deja pasar los
// errores de dominio; el resto se reporta como fallo de almacenamiento.
func mapStorageErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return domain.ErrTimeout
	}
	return err
}
