package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateMovementRequest body del POST /api/movements. previousStock/newStock
// no se aceptan: los calcula siempre el motor.
type CreateMovementRequest struct {
	ProductID string           `json:"productId" validate:"required"`
	Type      string           `json:"type" validate:"required,oneof=entrada salida"`
	Quantity  int              `json:"quantity" validate:"required,min=1"`
	Reason    string           `json:"reason" validate:"required"`
	User      string           `json:"user" validate:"required"`
	Cost      *decimal.Decimal `json:"cost"`
	Notes     string           `json:"notes"`
}

// MovementProductRef referencia resuelta al producto del movimiento.
type MovementProductRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	SKU  string `json:"sku,omitempty"`
}

// MovementResponse salida de un movimiento. Date es la proyección ISO de
// CreatedAt; productName y category son los snapshots inmutables.
type MovementResponse struct {
	ID            string             `json:"id"`
	Product       MovementProductRef `json:"productId"`
	ProductName   string             `json:"productName"`
	Category      string             `json:"category"`
	Type          string             `json:"type"`
	Quantity      int                `json:"quantity"`
	PreviousStock int                `json:"previousStock"`
	NewStock      int                `json:"newStock"`
	Reason        string             `json:"reason"`
	User          string             `json:"user"`
	Cost          *decimal.Decimal   `json:"cost,omitempty"`
	Notes         string             `json:"notes,omitempty"`
	CreatedAt     time.Time          `json:"createdAt"`
	Date          string             `json:"date"`
}

// MovementListRequest filtros del listado de movimientos.
type MovementListRequest struct {
	PageRequest
	Type      string `query:"type" validate:"omitempty,oneof=entrada salida"`
	Category  string `query:"category"`
	ProductID string `query:"productId"`
	StartDate string `query:"startDate"`
	EndDate   string `query:"endDate"`
	SortBy    string `query:"sortBy"`
	SortOrder string `query:"sortOrder" validate:"omitempty,oneof=asc desc"`
}

// MovementListResponse lista paginada de movimientos.
type MovementListResponse struct {
	Movements  []MovementResponse `json:"movements"`
	Pagination Pagination         `json:"pagination"`
}

// MovementStatsResponse agregados del libro en un rango de fechas.
type MovementStatsResponse struct {
	TotalMovements int             `json:"totalMovements"`
	Entradas       int             `json:"entradas"`
	Salidas        int             `json:"salidas"`
	TotalEntradas  int             `json:"totalEntradas"`
	TotalSalidas   int             `json:"totalSalidas"`
	ValorTotal     decimal.Decimal `json:"valorTotal"`
}

// TopProductResponse producto con más salidas acumuladas.
type TopProductResponse struct {
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
	Category    string `json:"category"`
	TotalSales  int    `json:"totalSales"`
}
