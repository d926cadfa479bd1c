package reporting

import (
	"context"
	"strconv"
	"time"

	"github.com/stockyhq/stocky-api/internal/application/dto"
	"github.com/stockyhq/stocky-api/internal/domain"
	"github.com/stockyhq/stocky-api/internal/domain/entity"
	"github.com/stockyhq/stocky-api/internal/domain/repository"
)

const (
	defaultRecentLimit = 10
	defaultTopLimit    = 5
)

// ReportGenerator genera el reporte de inventario en PDF.
type ReportGenerator interface {
	InventoryReport(products []*entity.Product) ([]byte, error)
}

// UseCase lado de consulta del inventario: listado e historial de
// movimientos, agregados y reporte PDF. Los agregados pasan por la caché
// versionada; el motor de movimientos hace Bump en cada escritura.
type UseCase struct {
	movements repository.MovementRepository
	products  repository.ProductRepository
	cache     *Cache
	pdf       ReportGenerator
}

// NewUseCase construye el caso de uso.
func NewUseCase(movements repository.MovementRepository, products repository.ProductRepository, cache *Cache, pdf ReportGenerator) *UseCase {
	return &UseCase{movements: movements, products: products, cache: cache, pdf: pdf}
}

// ListMovements lista el libro con filtros, orden y paginación.
func (uc *UseCase) ListMovements(ctx context.Context, in dto.MovementListRequest) (*dto.MovementListResponse, error) {
	in.DefaultPage()
	from, to, err := parseDateRange(in.StartDate, in.EndDate)
	if err != nil {
		return nil, err
	}
	f := repository.MovementFilter{
		Type:      in.Type,
		Category:  in.Category,
		ProductID: in.ProductID,
		From:      from,
		To:        to,
		SortBy:    in.SortBy,
		SortOrder: in.SortOrder,
		Limit:     in.Limit,
		Offset:    in.Offset(),
	}
	list, total, err := uc.movements.List(ctx, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *uc.toMovementResponse(ctx, m))
	}
	return &dto.MovementListResponse{
		Movements:  items,
		Pagination: dto.NewPagination(in.Page, in.Limit, total),
	}, nil
}

// GetMovement obtiene un movimiento por ID.
func (uc *UseCase) GetMovement(ctx context.Context, id string) (*dto.MovementResponse, error) {
	m, err := uc.movements.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.toMovementResponse(ctx, m), nil
}

// Recent devuelve los últimos movimientos registrados.
func (uc *UseCase) Recent(ctx context.Context, limit int) ([]dto.MovementResponse, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	list, err := uc.movements.ListRecent(ctx, limit)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *uc.toMovementResponse(ctx, m))
	}
	return items, nil
}

// MovementStats agregados del libro en un rango de fechas, cacheados.
func (uc *UseCase) MovementStats(ctx context.Context, startDate, endDate string) (*dto.MovementStatsResponse, error) {
	from, to, err := parseDateRange(startDate, endDate)
	if err != nil {
		return nil, err
	}
	key, err := uc.cache.BuildKey(ctx, "reports", "movements", "stats", startDate, endDate)
	if err != nil {
		return nil, err
	}
	var out dto.MovementStatsResponse
	err = uc.cache.FetchJSON(ctx, key, &out, func(ctx context.Context) (interface{}, error) {
		s, err := uc.movements.Stats(ctx, from, to)
		if err != nil {
			return nil, err
		}
		return dto.MovementStatsResponse{
			TotalMovements: s.TotalMovements,
			Entradas:       s.Entradas,
			Salidas:        s.Salidas,
			TotalEntradas:  s.TotalEntradas,
			TotalSalidas:   s.TotalSalidas,
			ValorTotal:     s.ValorTotal,
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// TopSelling productos con más salidas acumuladas, cacheado.
func (uc *UseCase) TopSelling(ctx context.Context, limit int) ([]dto.TopProductResponse, error) {
	if limit <= 0 {
		limit = defaultTopLimit
	}
	key, err := uc.cache.BuildKey(ctx, "reports", "movements", "top", strconv.Itoa(limit))
	if err != nil {
		return nil, err
	}
	var out []dto.TopProductResponse
	err = uc.cache.FetchJSON(ctx, key, &out, func(ctx context.Context) (interface{}, error) {
		list, err := uc.movements.TopSelling(ctx, limit)
		if err != nil {
			return nil, err
		}
		items := make([]dto.TopProductResponse, 0, len(list))
		for _, p := range list {
			items = append(items, dto.TopProductResponse{
				ProductID:   p.ProductID,
				ProductName: p.ProductName,
				Category:    p.Category,
				TotalSales:  p.TotalSales,
			})
		}
		return items, nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ProductStats agregados de la colección de productos, cacheados.
func (uc *UseCase) ProductStats(ctx context.Context) (*dto.ProductStatsResponse, error) {
	key, err := uc.cache.BuildKey(ctx, "reports", "products", "stats")
	if err != nil {
		return nil, err
	}
	var out dto.ProductStatsResponse
	err = uc.cache.FetchJSON(ctx, key, &out, func(ctx context.Context) (interface{}, error) {
		s, err := uc.products.Stats(ctx)
		if err != nil {
			return nil, err
		}
		return dto.ProductStatsResponse{
			TotalProducts:    s.TotalProducts,
			ActiveProducts:   s.ActiveProducts,
			LowStockProducts: s.LowStockProducts,
			TotalValue:       s.TotalValue,
			AveragePrice:     s.AveragePrice,
			TotalStock:       s.TotalStock,
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// InventoryReportPDF genera el reporte de inventario completo en PDF.
func (uc *UseCase) InventoryReportPDF(ctx context.Context) ([]byte, error) {
	// Limit 0 → sin límite: el reporte incluye todo el catálogo
	list, _, err := uc.products.List(ctx, repository.ProductFilter{SortBy: "name", SortOrder: "asc"})
	if err != nil {
		return nil, err
	}
	return uc.pdf.InventoryReport(list)
}

// toMovementResponse proyecta un movimiento resolviendo la referencia al
// producto vivo cuando todavía existe; si fue eliminado quedan los snapshots.
func (uc *UseCase) toMovementResponse(ctx context.Context, m *entity.Movement) *dto.MovementResponse {
	ref := dto.MovementProductRef{ID: m.ProductID, Name: m.ProductName}
	if p, err := uc.products.GetByID(ctx, m.ProductID); err == nil {
		ref.Name = p.Name
		ref.SKU = p.SKU
	}
	return &dto.MovementResponse{
		ID:            m.ID,
		Product:       ref,
		ProductName:   m.ProductName,
		Category:      m.Category,
		Type:          m.Type,
		Quantity:      m.Quantity,
		PreviousStock: m.PreviousStock,
		NewStock:      m.NewStock,
		Reason:        m.Reason,
		User:          m.User,
		Cost:          m.Cost,
		Notes:         m.Notes,
		CreatedAt:     m.CreatedAt,
		Date:          m.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// parseDateRange interpreta fechas YYYY-MM-DD; la fecha final es inclusiva
// (cubre hasta el último instante del día).
func parseDateRange(startDate, endDate string) (*time.Time, *time.Time, error) {
	var from, to *time.Time
	if startDate != "" {
		t, err := time.Parse("2006-01-02", startDate)
		if err != nil {
			return nil, nil, domain.ErrInvalidInput
		}
		from = &t
	}
	if endDate != "" {
		t, err := time.Parse("2006-01-02", endDate)
		if err != nil {
			return nil, nil, domain.ErrInvalidInput
		}
		end := t.Add(24*time.Hour - time.Nanosecond)
		to = &end
	}
	return from, to, nil
}
