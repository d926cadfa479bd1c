package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stockyhq/stocky-api/internal/domain/entity"
)

// ProductFilter filtros para el listado de productos.
type ProductFilter struct {
	Search    string // busca en name, sku y description (insensible a mayúsculas y acentos)
	Category  string
	Status    string
	SortBy    string // name, sku, stock, price, created_at
	SortOrder string // asc | desc
	Limit     int
	Offset    int
}

// ProductStats agregados sobre la colección de productos.
type ProductStats struct {
	TotalProducts    int
	ActiveProducts   int
	LowStockProducts int
	TotalValue       decimal.Decimal // sum(stock * price)
	AveragePrice     decimal.Decimal
	TotalStock       int
}

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Product, error)
	// GetForUpdate carga el producto bloqueando la fila (SELECT FOR UPDATE);
	// solo tiene sentido dentro de una transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	// UpdateStock actualiza stock y status condicionado al stock previamente
	// observado; devuelve domain.ErrConflict si otra escritura ganó la carrera.
	UpdateStock(ctx context.Context, id string, previousStock, newStock int, status string) error
	List(ctx context.Context, f ProductFilter) ([]*entity.Product, int, error)
	ListLowStock(ctx context.Context) ([]*entity.Product, error)
	Stats(ctx context.Context) (*ProductStats, error)
	Delete(ctx context.Context, id string) error
}
