package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados válidos para Product. "low-stock" es derivado del stock actual
// frente al umbral mínimo; "inactive" solo lo pone/quita un operador.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
	StatusLowStock = "low-stock"
)

// Product representa un producto del inventario. Stock es la cantidad actual
// y solo se modifica a través del motor de movimientos; Status se recalcula
// con ComputeStatus en cada escritura que afecte el stock.
type Product struct {
	ID          string
	Name        string
	CategoryID  string
	Stock       int
	Price       decimal.Decimal
	MinStock    int
	MaxStock    int
	SupplierID  string // vacío si no tiene proveedor
	SKU         string // único en todo el sistema
	Description string
	Status      string // active, inactive, low-stock
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ComputeStatus deriva el estado de un producto a partir del stock actual.
// Reglas:
//   - stock <= minStock → low-stock
//   - stock > minStock y el estado venía de low-stock → active
//   - en cualquier otro caso se conserva el estado actual (preserva un
//     "inactive" puesto explícitamente por un operador).
func ComputeStatus(stock, minStock int, current string) string {
	if stock <= minStock {
		return StatusLowStock
	}
	if current == StatusLowStock || current == "" {
		return StatusActive
	}
	return current
}

// RecalculateStatus aplica ComputeStatus sobre el propio producto.
func (p *Product) RecalculateStatus() {
	p.Status = ComputeStatus(p.Stock, p.MinStock, p.Status)
}
