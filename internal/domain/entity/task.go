package entity

import "time"

// Prioridades válidas para Task.
const (
	PriorityAlta  = "alta"
	PriorityMedia = "media"
	PriorityBaja  = "baja"
)

// Task es una tarea personal: pertenece a exactamente un usuario y solo su
// dueño puede leerla o modificarla.
type Task struct {
	ID          string
	UserID      string
	Description string
	Completed   bool
	Priority    string // alta, media, baja
	Color       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
