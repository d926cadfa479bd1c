package repository

import (
	"context"

	"github.com/stockyhq/stocky-api/internal/domain/entity"
)

// SupplierRepository define el puerto de persistencia para Supplier (DIP).
type SupplierRepository interface {
	Create(ctx context.Context, supplier *entity.Supplier) error
	GetByID(ctx context.Context, id string) (*entity.Supplier, error)
	Update(ctx context.Context, supplier *entity.Supplier) error
	List(ctx context.Context) ([]*entity.Supplier, error)
	// Deactivate marca el proveedor como inactivo (borrado lógico).
	Deactivate(ctx context.Context, id string) error
}
