package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stockyhq/stocky-api/internal/domain"
	"github.com/stockyhq/stocky-api/internal/domain/entity"
	"github.com/stockyhq/stocky-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

const movementColumns = `id, product_id, product_name, category, type, quantity,
	previous_stock, new_stock, reason, "user", cost, notes, created_at`

var movementSortColumns = map[string]string{
	"created_at":   "created_at",
	"quantity":     "quantity",
	"product_name": "product_name",
}

// MovementRepo implementación del libro de movimientos sobre PostgreSQL
// (usable con pool o tx). Solo inserta y lee: no hay UPDATE ni DELETE.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create persiste una entrada del libro.
func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	query := `
		INSERT INTO movements (id, product_id, product_name, category, type, quantity, previous_stock, new_stock, reason, "user", cost, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	var cost decimal.NullDecimal
	if m.Cost != nil {
		cost = decimal.NullDecimal{Decimal: *m.Cost, Valid: true}
	}
	_, err := r.q.Exec(ctx, query,
		m.ID, m.ProductID, m.ProductName, m.Category, m.Type, m.Quantity,
		m.PreviousStock, m.NewStock, m.Reason, m.User, cost, m.Notes, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID.
func (r *MovementRepo) GetByID(ctx context.Context, id string) (*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE id = $1`
	m, err := scanMovement(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return m, nil
}

// List lista movimientos con filtros, orden y paginación; devuelve también el
// total sin paginar.
func (r *MovementRepo) List(ctx context.Context, f repository.MovementFilter) ([]*entity.Movement, int, error) {
	var conds []string
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if f.Type != "" {
		conds = append(conds, "type = "+arg(f.Type))
	}
	if f.Category != "" {
		conds = append(conds, "category = "+arg(f.Category))
	}
	if f.ProductID != "" {
		conds = append(conds, "product_id = "+arg(f.ProductID))
	}
	if f.From != nil {
		conds = append(conds, "created_at >= "+arg(*f.From))
	}
	if f.To != nil {
		conds = append(conds, "created_at <= "+arg(*f.To))
	}
	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := r.q.QueryRow(ctx, "SELECT COUNT(*) FROM movements"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count movements: %w", err)
	}

	sortCol, ok := movementSortColumns[f.SortBy]
	if !ok {
		sortCol = "created_at"
	}
	order := "DESC"
	if strings.EqualFold(f.SortOrder, "asc") {
		order = "ASC"
	}
	query := "SELECT " + movementColumns + " FROM movements" + where +
		" ORDER BY " + sortCol + " " + order
	if f.Limit > 0 {
		query += " LIMIT " + arg(f.Limit) + " OFFSET " + arg(f.Offset)
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()

	var out []*entity.Movement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan movement: %w", err)
		}
		out = append(out, m)
	}
	return out, total, rows.Err()
}

// ListRecent devuelve los últimos movimientos registrados.
func (r *MovementRepo) ListRecent(ctx context.Context, limit int) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements ORDER BY created_at DESC LIMIT $1`
	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent movements: %w", err)
	}
	defer rows.Close()

	var out []*entity.Movement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// Stats agregados del libro en un rango de fechas (ambos opcionales).
func (r *MovementRepo) Stats(ctx context.Context, from, to *time.Time) (*repository.MovementStats, error) {
	var conds []string
	var args []any
	if from != nil {
		args = append(args, *from)
		conds = append(conds, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if to != nil {
		args = append(args, *to)
		conds = append(conds, fmt.Sprintf("created_at <= $%d", len(args)))
	}
	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}
	query := `
		SELECT COUNT(*),
			COUNT(*) FILTER (WHERE type = 'entrada'),
			COUNT(*) FILTER (WHERE type = 'salida'),
			COALESCE(SUM(quantity) FILTER (WHERE type = 'entrada'), 0),
			COALESCE(SUM(quantity) FILTER (WHERE type = 'salida'), 0),
			COALESCE(SUM(quantity * cost) FILTER (WHERE cost IS NOT NULL), 0)
		FROM movements` + where
	var s repository.MovementStats
	err := r.q.QueryRow(ctx, query, args...).Scan(
		&s.TotalMovements, &s.Entradas, &s.Salidas,
		&s.TotalEntradas, &s.TotalSalidas, &s.ValorTotal,
	)
	if err != nil {
		return nil, fmt.Errorf("movement stats: %w", err)
	}
	return &s, nil
}

// TopSelling productos con más salidas acumuladas, por cantidad total.
func (r *MovementRepo) TopSelling(ctx context.Context, limit int) ([]*repository.TopProduct, error) {
	query := `
		SELECT product_id, product_name, category, SUM(quantity) AS total_sales
		FROM movements
		WHERE type = 'salida'
		GROUP BY product_id, product_name, category
		ORDER BY total_sales DESC
		LIMIT $1`
	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("top selling: %w", err)
	}
	defer rows.Close()

	var out []*repository.TopProduct
	for rows.Next() {
		var tp repository.TopProduct
		if err := rows.Scan(&tp.ProductID, &tp.ProductName, &tp.Category, &tp.TotalSales); err != nil {
			return nil, fmt.Errorf("scan top product: %w", err)
		}
		out = append(out, &tp)
	}
	return out, rows.Err()
}

func scanMovement(row pgx.Row) (*entity.Movement, error) {
	var m entity.Movement
	var cost decimal.NullDecimal
	err := row.Scan(
		&m.ID, &m.ProductID, &m.ProductName, &m.Category, &m.Type, &m.Quantity,
		&m.PreviousStock, &m.NewStock, &m.Reason, &m.User, &cost, &m.Notes, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if cost.Valid {
		m.Cost = &cost.Decimal
	}
	return &m, nil
}
