package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockyhq/stocky-api/internal/application/dto"
	"github.com/stockyhq/stocky-api/internal/domain"
	"github.com/stockyhq/stocky-api/internal/domain/entity"
)

// memTaskRepo fake en memoria que aplica el filtro por dueño igual que el
// repositorio real.
type memTaskRepo struct {
	tasks map[string]*entity.Task
}

func newMemTaskRepo() *memTaskRepo {
	return &memTaskRepo{tasks: map[string]*entity.Task{}}
}

func (r *memTaskRepo) Create(_ context.Context, t *entity.Task) error {
	r.tasks[t.ID] = t
	return nil
}

func (r *memTaskRepo) GetByIDAndUser(_ context.Context, id, userID string) (*entity.Task, error) {
	t, ok := r.tasks[id]
	if !ok || t.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return t, nil
}

func (r *memTaskRepo) Update(_ context.Context, t *entity.Task) error {
	r.tasks[t.ID] = t
	return nil
}

func (r *memTaskRepo) ListByUser(_ context.Context, userID string) ([]*entity.Task, error) {
	var out []*entity.Task
	for _, t := range r.tasks {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *memTaskRepo) DeleteByIDAndUser(_ context.Context, id, userID string) error {
	t, ok := r.tasks[id]
	if !ok || t.UserID != userID {
		return domain.ErrNotFound
	}
	delete(r.tasks, id)
	return nil
}

func TestTask_CreatePrioridadPorDefecto(t *testing.T) {
	uc := NewTaskUseCase(newMemTaskRepo())

	resp, err := uc.Create(context.Background(), "u-1", dto.CreateTaskRequest{Description: "revisar stock"})
	require.NoError(t, err)
	assert.Equal(t, entity.PriorityMedia, resp.Priority)
	assert.False(t, resp.Completed)
	assert.Equal(t, "u-1", resp.UserID)
}

func TestTask_OtroUsuarioNoVeLaTarea(t *testing.T) {
	repo := newMemTaskRepo()
	uc := NewTaskUseCase(repo)

	created, err := uc.Create(context.Background(), "u-1", dto.CreateTaskRequest{Description: "mía"})
	require.NoError(t, err)

	// otro usuario: la tarea se comporta como inexistente
	completed := true
	_, err = uc.Update(context.Background(), created.ID, "u-2", dto.UpdateTaskRequest{Completed: &completed})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = uc.Delete(context.Background(), created.ID, "u-2")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := uc.List(context.Background(), "u-2")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestTask_UpdateCompletaTarea(t *testing.T) {
	uc := NewTaskUseCase(newMemTaskRepo())

	created, err := uc.Create(context.Background(), "u-1", dto.CreateTaskRequest{Description: "pedir reposición", Priority: entity.PriorityAlta})
	require.NoError(t, err)

	completed := true
	resp, err := uc.Update(context.Background(), created.ID, "u-1", dto.UpdateTaskRequest{Completed: &completed})
	require.NoError(t, err)
	assert.True(t, resp.Completed)
	assert.Equal(t, entity.PriorityAlta, resp.Priority)
}

func TestTask_DeletePropia(t *testing.T) {
	uc := NewTaskUseCase(newMemTaskRepo())

	created, err := uc.Create(context.Background(), "u-1", dto.CreateTaskRequest{Description: "borrar"})
	require.NoError(t, err)

	require.NoError(t, uc.Delete(context.Background(), created.ID, "u-1"))

	list, err := uc.List(context.Background(), "u-1")
	require.NoError(t, err)
	assert.Empty(t, list)
}
