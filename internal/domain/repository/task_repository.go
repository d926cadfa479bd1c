package repository

import (
	"context"

	"github.com/stockyhq/stocky-api/internal/domain/entity"
)

// TaskRepository define el puerto de persistencia para Task (DIP).
// Todas las operaciones por ID van acompañadas del userID dueño: una tarea
// solo es visible y modificable por su dueño.
type TaskRepository interface {
	Create(ctx context.Context, task *entity.Task) error
	GetByIDAndUser(ctx context.Context, id, userID string) (*entity.Task, error)
	Update(ctx context.Context, task *entity.Task) error
	ListByUser(ctx context.Context, userID string) ([]*entity.Task, error)
	DeleteByIDAndUser(ctx context.Context, id, userID string) error
}
