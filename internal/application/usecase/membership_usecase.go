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

// MembershipUseCase planes de membresía (descuento sobre servicios).
type MembershipUseCase struct {
	membershipRepo repository.MembershipRepository
}

// NewMembershipUseCase construye el caso de uso.
func NewMembershipUseCase(membershipRepo repository.MembershipRepository) *MembershipUseCase {
	return &MembershipUseCase{membershipRepo: membershipRepo}
}

// MembershipInput datos para crear un plan.
type MembershipInput struct {
	Name            string
	DiscountPercent decimal.Decimal
	DurationDays    int
}

var hundred = decimal.NewFromInt(100)

// Create valida y persiste un plan nuevo.
func (uc *MembershipUseCase) Create(ctx context.Context, in MembershipInput) (*entity.MembershipPlan, error) {
	if in.Name == "" || in.DurationDays <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.DiscountPercent.LessThan(decimal.Zero) || in.DiscountPercent.GreaterThan(hundred) {
		return nil, domain.ErrInvalidInput
	}
	plan := &entity.MembershipPlan{
		ID:              uuid.New().String(),
		Name:            in.Name,
		DiscountPercent: in.DiscountPercent,
		DurationDays:    in.DurationDays,
		CreatedAt:       time.Now(),
	}
	if err := uc.membershipRepo.Create(plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// List lista los planes disponibles.
func (uc *MembershipUseCase) List(ctx context.Context) ([]*entity.MembershipPlan, error) {
	return uc.membershipRepo.List()
}
