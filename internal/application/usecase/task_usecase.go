package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stockyhq/stocky-api/internal/application/dto"
	"github.com/stockyhq/stocky-api/internal/domain/entity"
	"github.com/stockyhq/stocky-api/internal/domain/repository"
)

// TaskUseCase tareas personales. Toda operación recibe el userID del
// solicitante y el repositorio filtra por dueño, así que una tarea ajena se
// comporta como inexistente (ErrNotFound, nunca ErrForbidden).
type TaskUseCase struct {
	repo repository.TaskRepository
}

// NewTaskUseCase construye el caso de uso.
func NewTaskUseCase(repo repository.TaskRepository) *TaskUseCase {
	return &TaskUseCase{repo: repo}
}

// Create crea una tarea para el usuario autenticado.
func (uc *TaskUseCase) Create(ctx context.Context, userID string, in dto.CreateTaskRequest) (*dto.TaskResponse, error) {
	priority := in.Priority
	if priority == "" {
		priority = entity.PriorityMedia
	}
	now := time.Now()
	task := &entity.Task{
		ID:          uuid.New().String(),
		UserID:      userID,
		Description: in.Description,
		Completed:   false,
		Priority:    priority,
		Color:       in.Color,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, task); err != nil {
		return nil, err
	}
	return toTaskResponse(task), nil
}

// Update actualiza una tarea del usuario autenticado.
func (uc *TaskUseCase) Update(ctx context.Context, id, userID string, in dto.UpdateTaskRequest) (*dto.TaskResponse, error) {
	task, err := uc.repo.GetByIDAndUser(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if in.Description != nil {
		task.Description = *in.Description
	}
	if in.Completed != nil {
		task.Completed = *in.Completed
	}
	if in.Priority != nil {
		task.Priority = *in.Priority
	}
	if in.Color != nil {
		task.Color = *in.Color
	}
	task.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, task); err != nil {
		return nil, err
	}
	return toTaskResponse(task), nil
}

// List lista las tareas del usuario autenticado.
func (uc *TaskUseCase) List(ctx context.Context, userID string) ([]dto.TaskResponse, error) {
	list, err := uc.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TaskResponse, 0, len(list))
	for _, t := range list {
		items = append(items, *toTaskResponse(t))
	}
	return items, nil
}

// Delete elimina una tarea del usuario autenticado.
func (uc *TaskUseCase) Delete(ctx context.Context, id, userID string) error {
	return uc.repo.DeleteByIDAndUser(ctx, id, userID)
}

func toTaskResponse(t *entity.Task) *dto.TaskResponse {
	if t == nil {
		return nil
	}
	return &dto.TaskResponse{
		ID:          t.ID,
		UserID:      t.UserID,
		Description: t.Description,
		Completed:   t.Completed,
		Priority:    t.Priority,
		Color:       t.Color,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}
