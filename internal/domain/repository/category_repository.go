package repository

import (
	"context"

	"github.com/stockyhq/stocky-api/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para Category (DIP).
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	GetByName(ctx context.Context, name string) (*entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
	ListActive(ctx context.Context) ([]*entity.Category, error)
	// Deactivate marca la categoría como inactiva (borrado lógico).
	Deactivate(ctx context.Context, id string) error
}
