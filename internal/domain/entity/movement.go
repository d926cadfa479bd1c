package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de stock.
const (
	MovementEntrada = "entrada" // aumenta stock
	MovementSalida  = "salida"  // disminuye stock
)

// ValidMovementType indica si el tipo es entrada o salida.
func ValidMovementType(t string) bool {
	return t == MovementEntrada || t == MovementSalida
}

// Movement es una entrada inmutable del libro de movimientos: registra un
// cambio de stock ya aplicado. ProductName y Category son copias tomadas en
// el momento de la escritura (no se rederivan del producto vivo después).
// Invariante: NewStock = PreviousStock + Quantity (entrada) o
// PreviousStock - Quantity (salida).
type Movement struct {
	ID            string
	ProductID     string
	ProductName   string // snapshot al momento del movimiento
	Category      string // snapshot del nombre de la categoría
	Type          string // entrada | salida
	Quantity      int    // siempre >= 1
	PreviousStock int
	NewStock      int
	Reason        string
	User          string // actor que registró el movimiento
	Cost          *decimal.Decimal
	Notes         string
	CreatedAt     time.Time
}
