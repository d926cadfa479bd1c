package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/stockyhq/stocky-api/internal/domain"
	"github.com/stockyhq/stocky-api/internal/domain/entity"
	"github.com/stockyhq/stocky-api/internal/domain/repository"
)

var _ repository.TaskRepository = (*TaskRepo)(nil)

const taskColumns = `id, user_id, description, completed, priority, color, created_at, updated_at`

// TaskRepo implementación de TaskRepository sobre PostgreSQL. Todas las
// consultas por ID filtran además por user_id: una tarea ajena se comporta
// como inexistente.
type TaskRepo struct {
	q Querier
}

// NewTaskRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTaskRepository(q Querier) *TaskRepo {
	return &TaskRepo{q: q}
}

// Create persiste una tarea nueva.
func (r *TaskRepo) Create(ctx context.Context, t *entity.Task) error {
	query := `
		INSERT INTO tasks (id, user_id, description, completed, priority, color, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query, t.ID, t.UserID, t.Description, t.Completed, t.Priority, t.Color, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	return nil
}

// GetByIDAndUser obtiene una tarea por ID si pertenece al usuario.
func (r *TaskRepo) GetByIDAndUser(ctx context.Context, id, userID string) (*entity.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1 AND user_id = $2`
	var t entity.Task
	err := r.q.QueryRow(ctx, query, id, userID).Scan(
		&t.ID, &t.UserID, &t.Description, &t.Completed, &t.Priority, &t.Color, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get task: %w", err)
	}
	return &t, nil
}

// Update actualiza una tarea; la condición incluye user_id como refuerzo.
func (r *TaskRepo) Update(ctx context.Context, t *entity.Task) error {
	query := `
		UPDATE tasks
		SET description = $3, completed = $4, priority = $5, color = $6, updated_at = $7
		WHERE id = $1 AND user_id = $2`
	tag, err := r.q.Exec(ctx, query, t.ID, t.UserID, t.Description, t.Completed, t.Priority, t.Color, t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByUser lista las tareas del usuario, más recientes primero.
func (r *TaskRepo) ListByUser(ctx context.Context, userID string) ([]*entity.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var out []*entity.Task
	for rows.Next() {
		var t entity.Task
		if err := rows.Scan(&t.ID, &t.UserID, &t.Description, &t.Completed, &t.Priority, &t.Color, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		out = append(out, &t)
	}
	return out, rows.Err()
}

// DeleteByIDAndUser elimina una tarea si pertenece al usuario.
func (r *TaskRepo) DeleteByIDAndUser(ctx context.Context, id, userID string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM tasks WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
