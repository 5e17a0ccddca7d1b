package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/salon-pos-api/internal/domain"
	"github.com/jhoicas/salon-pos-api/internal/domain/entity"
	"github.com/jhoicas/salon-pos-api/internal/domain/repository"
)

// CustomerUseCase CRUD de clientes.
type CustomerUseCase struct {
	customerRepo   repository.CustomerRepository
	membershipRepo repository.MembershipRepository
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(customerRepo repository.CustomerRepository, membershipRepo repository.MembershipRepository) *CustomerUseCase {
	return &CustomerUseCase{customerRepo: customerRepo, membershipRepo: membershipRepo}
}

// CustomerInput datos para crear o actualizar un cliente.
type CustomerInput struct {
	Name             string
	Phone            string
	Address          string
	MembershipPlanID string
}

// Create valida y persiste un cliente nuevo.
func (uc *CustomerUseCase) Create(ctx context.Context, in CustomerInput) (*entity.Customer, error) {
	if in.Name == "" || in.Phone == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.MembershipPlanID != "" {
		plan, err := uc.membershipRepo.GetByID(in.MembershipPlanID)
		if err != nil || plan == nil {
			return nil, domain.ErrNotFound
		}
	}
	now := time.Now()
	customer := &entity.Customer{
		ID:               uuid.New().String(),
		Name:             in.Name,
		Phone:            in.Phone,
		Address:          in.Address,
		MembershipPlanID: in.MembershipPlanID,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := uc.customerRepo.Create(customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// GetByID obtiene un cliente.
func (uc *CustomerUseCase) GetByID(ctx context.Context, id string) (*entity.Customer, error) {
	customer, err := uc.customerRepo.GetByID(id)
	if err != nil || customer == nil {
		return nil, domain.ErrNotFound
	}
	return customer, nil
}

// List lista clientes paginados.
func (uc *CustomerUseCase) List(ctx context.Context, limit, offset int) ([]*entity.Customer, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return uc.customerRepo.List(limit, offset)
}

// Update actualiza los datos del cliente.
func (uc *CustomerUseCase) Update(ctx context.Context, id string, in CustomerInput) (*entity.Customer, error) {
	customer, err := uc.customerRepo.GetByID(id)
	if err != nil || customer == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name == "" || in.Phone == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.MembershipPlanID != "" {
		plan, err := uc.membershipRepo.GetByID(in.MembershipPlanID)
		if err != nil || plan == nil {
			return nil, domain.ErrNotFound
		}
	}
	customer.Name = in.Name
	customer.Phone = in.Phone
	customer.Address = in.Address
	customer.MembershipPlanID = in.MembershipPlanID
	customer.UpdatedAt = time.Now()
	if err := uc.customerRepo.Update(customer); err != nil {
		return nil, err
	}
	return customer, nil
}
