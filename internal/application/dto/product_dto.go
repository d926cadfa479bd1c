package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto. Status no se acepta:
// es un campo derivado y se calcula siempre del stock inicial.
type CreateProductRequest struct {
	Name        string          `json:"name" validate:"required,min=1,max=200"`
	Category    string          `json:"category" validate:"required"`
	Stock       int             `json:"stock" validate:"omitempty,min=0"`
	Price       decimal.Decimal `json:"price"`
	MinStock    int             `json:"minStock" validate:"omitempty,min=0"`
	MaxStock    int             `json:"maxStock" validate:"omitempty,min=0"`
	Supplier    string          `json:"supplier"`
	SKU         string          `json:"sku" validate:"required,min=1,max=100"`
	Description string          `json:"description"`
}

// UpdateProductRequest entrada para actualizar un producto. El stock no se
// toca por aquí (solo vía movimientos) y status solo admite el alternado
// explícito active/inactive de un operador; low-stock siempre se deriva.
type UpdateProductRequest struct {
	Name        *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Category    *string          `json:"category"`
	Price       *decimal.Decimal `json:"price"`
	MinStock    *int             `json:"minStock" validate:"omitempty,min=0"`
	MaxStock    *int             `json:"maxStock" validate:"omitempty,min=0"`
	Supplier    *string          `json:"supplier"`
	SKU         *string          `json:"sku" validate:"omitempty,min=1,max=100"`
	Description *string          `json:"description"`
	Status      *string          `json:"status" validate:"omitempty,oneof=active inactive"`
}

// ProductResponse salida de un producto. LastUpdated es la proyección ISO de
// UpdatedAt que consumía el frontend original.
type ProductResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Stock       int             `json:"stock"`
	Price       decimal.Decimal `json:"price"`
	MinStock    int             `json:"minStock"`
	MaxStock    int             `json:"maxStock"`
	Supplier    string          `json:"supplier,omitempty"`
	SKU         string          `json:"sku"`
	Description string          `json:"description,omitempty"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
	LastUpdated string          `json:"lastUpdated"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Products   []ProductResponse `json:"products"`
	Pagination Pagination        `json:"pagination"`
}

// ProductStatsResponse agregados de la colección de productos.
type ProductStatsResponse struct {
	TotalProducts    int             `json:"totalProducts"`
	ActiveProducts   int             `json:"activeProducts"`
	LowStockProducts int             `json:"lowStockProducts"`
	TotalValue       decimal.Decimal `json:"totalValue"`
	AveragePrice     decimal.Decimal `json:"averagePrice"`
	TotalStock       int             `json:"totalStock"`
}

// AdjustStockRequest body del PATCH /api/products/:id/stock.
type AdjustStockRequest struct {
	Type     string `json:"type" validate:"required,oneof=entrada salida"`
	Quantity int    `json:"quantity" validate:"required,min=1"`
	Reason   string `json:"reason"`
}

// AdjustStockResponse producto actualizado más el resumen del ajuste.
type AdjustStockResponse struct {
	Product       ProductResponse `json:"product"`
	PreviousStock int             `json:"previousStock"`
	NewStock      int             `json:"newStock"`
	Movement      MovementSummary `json:"movement"`
}

// MovementSummary eco del movimiento generado por un ajuste directo.
type MovementSummary struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Quantity int    `json:"quantity"`
}
