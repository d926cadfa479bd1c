package entity

import "time"

// Category representa una categoría de productos. El borrado es lógico
// (IsActive = false) para no romper los snapshots históricos de movimientos.
type Category struct {
	ID          string
	Name        string // único
	Description string
	Color       string // hex, ej. #3B82F6
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
