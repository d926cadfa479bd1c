package entity

import "time"

// Supplier representa un proveedor. Borrado lógico vía Active.
type Supplier struct {
	ID            string
	Name          string
	Email         string
	Phone         string
	Address       string
	ContactPerson string
	Notes         string
	Active        bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
