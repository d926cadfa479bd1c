package dto

import "time"

// CreateTaskRequest entrada para crear una tarea personal.
type CreateTaskRequest struct {
	Description string `json:"description" validate:"required,min=1,max=500"`
	Priority    string `json:"priority" validate:"omitempty,oneof=alta media baja"`
	Color       string `json:"color" validate:"omitempty,hexcolor"`
}

// UpdateTaskRequest entrada para actualizar una tarea.
type UpdateTaskRequest struct {
	Description *string `json:"description" validate:"omitempty,min=1,max=500"`
	Completed   *bool   `json:"completed"`
	Priority    *string `json:"priority" validate:"omitempty,oneof=alta media baja"`
	Color       *string `json:"color" validate:"omitempty,hexcolor"`
}

// TaskResponse salida de una tarea.
type TaskResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	Priority    string    `json:"priority"`
	Color       string    `json:"color"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
