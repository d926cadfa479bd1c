package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stockyhq/stocky-api/internal/application/dto"
	"github.com/stockyhq/stocky-api/internal/domain"
	"github.com/stockyhq/stocky-api/internal/domain/entity"
	"github.com/stockyhq/stocky-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. El stock NO se modifica
// por aquí: entra por el motor de movimientos o por el ajuste directo.
type ProductUseCase struct {
	repo         repository.ProductRepository
	categoryRepo repository.CategoryRepository
	supplierRepo repository.SupplierRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, categoryRepo repository.CategoryRepository, supplierRepo repository.SupplierRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, categoryRepo: categoryRepo, supplierRepo: supplierRepo}
}

// Create crea un producto. El status inicial siempre se deriva del stock
// frente a minStock; devuelve ErrDuplicate si el SKU ya existe.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Price.IsNegative() || in.MinStock > in.MaxStock {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetBySKU(ctx, in.SKU)
	if err != nil && err != domain.ErrNotFound {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if _, err := uc.categoryRepo.GetByID(ctx, in.Category); err != nil {
		return nil, err
	}
	if in.Supplier != "" {
		if _, err := uc.supplierRepo.GetByID(ctx, in.Supplier); err != nil {
			return nil, err
		}
	}
	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		Name:        in.Name,
		CategoryID:  in.Category,
		Stock:       in.Stock,
		Price:       in.Price,
		MinStock:    in.MinStock,
		MaxStock:    in.MaxStock,
		SupplierID:  in.Supplier,
		SKU:         in.SKU,
		Description: in.Description,
		Status:      entity.ComputeStatus(in.Stock, in.MinStock, ""),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return ToProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToProductResponse(product), nil
}

// Update actualiza un producto. No toca el stock; status solo admite el
// alternado explícito active/inactive y siempre pasa por ComputeStatus, así
// que un "active" pedido con stock bajo queda en low-stock igualmente.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Category != nil {
		if _, err := uc.categoryRepo.GetByID(ctx, *in.Category); err != nil {
			return nil, err
		}
		product.CategoryID = *in.Category
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.Price = *in.Price
	}
	if in.MinStock != nil {
		product.MinStock = *in.MinStock
	}
	if in.MaxStock != nil {
		product.MaxStock = *in.MaxStock
	}
	if product.MinStock > product.MaxStock {
		return nil, domain.ErrInvalidInput
	}
	if in.Supplier != nil {
		if *in.Supplier != "" {
			if _, err := uc.supplierRepo.GetByID(ctx, *in.Supplier); err != nil {
				return nil, err
			}
		}
		product.SupplierID = *in.Supplier
	}
	if in.SKU != nil && *in.SKU != product.SKU {
		existing, err := uc.repo.GetBySKU(ctx, *in.SKU)
		if err != nil && err != domain.ErrNotFound {
			return nil, err
		}
		if existing != nil {
			return nil, domain.ErrDuplicate
		}
		product.SKU = *in.SKU
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Status != nil {
		product.Status = *in.Status
	}
	product.RecalculateStatus()
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return ToProductResponse(product), nil
}

// List lista productos con filtros, orden y paginación.
func (uc *ProductUseCase) List(ctx context.Context, f repository.ProductFilter, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	f.Limit = page.Limit
	f.Offset = page.Offset()
	list, total, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *ToProductResponse(p))
	}
	return &dto.ProductListResponse{
		Products:   items,
		Pagination: dto.NewPagination(page.Page, page.Limit, total),
	}, nil
}

// ListLowStock lista los productos con stock en o bajo su umbral mínimo.
func (uc *ProductUseCase) ListLowStock(ctx context.Context) ([]dto.ProductResponse, error) {
	list, err := uc.repo.ListLowStock(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *ToProductResponse(p))
	}
	return items, nil
}

// Delete elimina un producto por ID. El historial de movimientos se conserva
// gracias a los snapshots de nombre y categoría.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

// ToProductResponse proyecta la entidad hacia el contrato JSON.
func ToProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Category:    p.CategoryID,
		Stock:       p.Stock,
		Price:       p.Price,
		MinStock:    p.MinStock,
		MaxStock:    p.MaxStock,
		Supplier:    p.SupplierID,
		SKU:         p.SKU,
		Description: p.Description,
		Status:      p.Status,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
		LastUpdated: p.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
