package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/salon-pos-api/internal/domain"
	"github.com/jhoicas/salon-pos-api/internal/domain/entity"
	"github.com/jhoicas/salon-pos-api/internal/domain/repository"
)

// ProductUseCase CRUD de productos. Los precios no se gestionan aquí:
// viven en los lotes de stock. Retirar un producto (Discontinued) es la
// única vía para "cambiar" precios: se crea un producto nuevo.
type ProductUseCase struct {
	productRepo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(productRepo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{productRepo: productRepo}
}

// ProductInput datos para crear o actualizar un producto.
type ProductInput struct {
	Name         string
	Brand        string
	Discontinued bool
}

// Create valida y persiste un producto nuevo.
func (uc *ProductUseCase) Create(ctx context.Context, in ProductInput) (*entity.Product, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	product := &entity.Product{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Brand:     in.Brand,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.productRepo.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

// GetByID obtiene un producto (incluye Revision para polling de UI).
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil || product == nil {
		return nil, domain.ErrNotFound
	}
	return product, nil
}

// List lista productos; includeDiscontinued controla los retirados.
func (uc *ProductUseCase) List(ctx context.Context, includeDiscontinued bool) ([]*entity.Product, error) {
	return uc.productRepo.List(includeDiscontinued)
}

// Update actualiza nombre, marca y el flag de retirado.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in ProductInput) (*entity.Product, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil || product == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	product.Name = in.Name
	product.Brand = in.Brand
	product.Discontinued = in.Discontinued
	product.UpdatedAt = time.Now()
	if err := uc.productRepo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}
