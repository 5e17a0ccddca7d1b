package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/salon-pos-api/internal/domain"
	"github.com/jhoicas/salon-pos-api/internal/domain/entity"
	"github.com/jhoicas/salon-pos-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// ServiceUseCase CRUD del catálogo de servicios del salón.
type ServiceUseCase struct {
	serviceRepo repository.ServiceRepository
}

// NewServiceUseCase construye el caso de uso.
func NewServiceUseCase(serviceRepo repository.ServiceRepository) *ServiceUseCase {
	return &ServiceUseCase{serviceRepo: serviceRepo}
}

// ServiceInput datos para crear o actualizar un servicio.
type ServiceInput struct {
	Name   string
	Price  decimal.Decimal
	Active bool
}

// Create valida y persiste un servicio nuevo.
func (uc *ServiceUseCase) Create(ctx context.Context, in ServiceInput) (*entity.Service, error) {
	if in.Name == "" || !in.Price.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	svc := &entity.Service{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Price:     in.Price,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.serviceRepo.Create(svc); err != nil {
		return nil, err
	}
	return svc, nil
}

// List lista servicios; onlyActive filtra los dados de baja.
func (uc *ServiceUseCase) List(ctx context.Context, onlyActive bool) ([]*entity.Service, error) {
	return uc.serviceRepo.List(onlyActive)
}

// Update actualiza nombre, precio y estado del servicio.
func (uc *ServiceUseCase) Update(ctx context.Context, id string, in ServiceInput) (*entity.Service, error) {
	svc, err := uc.serviceRepo.GetByID(id)
	if err != nil || svc == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name == "" || !in.Price.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	svc.Name = in.Name
	svc.Price = in.Price
	svc.Active = in.Active
	svc.UpdatedAt = time.Now()
	if err := uc.serviceRepo.Update(svc); err != nil {
		return nil, err
	}
	return svc, nil
}
