package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stockyhq/stocky-api/internal/domain/entity"
)

// MovementFilter filtros para el listado de movimientos.
type MovementFilter struct {
	Type      string
	Category  string
	ProductID string
	From      *time.Time
	To        *time.Time
	SortBy    string // created_at, quantity, product_name
	SortOrder string // asc | desc
	Limit     int
	Offset    int
}

// MovementStats agregados del libro de movimientos en un rango de fechas.
type MovementStats struct {
	TotalMovements int
	Entradas       int
	Salidas        int
	TotalEntradas  int             // sum(quantity) de entradas
	TotalSalidas   int             // sum(quantity) de salidas
	ValorTotal     decimal.Decimal // sum(quantity * cost) donde cost no es nulo
}

// TopProduct producto con más salidas acumuladas.
type TopProduct struct {
	ProductID   string
	ProductName string
	Category    string
	TotalSales  int
}

// MovementRepository define el puerto de persistencia del libro de
// movimientos. Solo inserción y lectura: un movimiento nunca se edita
// ni se borra.
type MovementRepository interface {
	Create(ctx context.Context, movement *entity.Movement) error
	GetByID(ctx context.Context, id string) (*entity.Movement, error)
	List(ctx context.Context, f MovementFilter) ([]*entity.Movement, int, error)
	ListRecent(ctx context.Context, limit int) ([]*entity.Movement, error)
	Stats(ctx context.Context, from, to *time.Time) (*MovementStats, error)
	TopSelling(ctx context.Context, limit int) ([]*TopProduct, error)
}
