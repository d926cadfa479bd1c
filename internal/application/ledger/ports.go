package ledger

import (
	"context"

	"github.com/stockyhq/stocky-api/internal/domain/entity"
)

// ProductStore es el contrato mínimo que el motor necesita sobre productos.
// Lo implementa postgres.ProductRepo; la interfaz estrecha permite fakes en tests.
type ProductStore interface {
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetForUpdate bloquea la fila del producto dentro de la transacción en
	// curso: sección crítica por producto para las escrituras de stock.
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	// UpdateStock escribe stock y status condicionado al stock observado
	// (previousStock); devuelve domain.ErrConflict si la condición no se cumple.
	UpdateStock(ctx context.Context, id string, previousStock, newStock int, status string) error
}

// MovementStore persiste entradas del libro de movimientos (solo inserción).
type MovementStore interface {
	Create(ctx context.Context, movement *entity.Movement) error
}

// CategoryResolver resuelve el nombre de la categoría para el snapshot del
// movimiento. Un fallo aquí nunca bloquea la escritura.
type CategoryResolver interface {
	GetByID(ctx context.Context, id string) (*entity.Category, error)
}

// TxRunner ejecuta fn dentro de una transacción: ambos stores quedan atados
// a la misma tx y el runner hace Commit o Rollback.
type TxRunner interface {
	Run(ctx context.Context, fn func(products ProductStore, movements MovementStore) error) error
}

// Invalidator invalida cachés derivadas del libro (estadísticas, top ventas)
// después de cada escritura exitosa. Puede ser nil.
type Invalidator interface {
	Bump(ctx context.Context) error
}
