package repository

import "github.com/jhoicas/salon-pos-api/internal/domain/entity"

// MembershipRepository puerto de planes de membresía.
type MembershipRepository interface {
	Create(p *entity.MembershipPlan) error
	GetByID(id string) (*entity.MembershipPlan, error)
	List() ([]*entity.MembershipPlan, error)
}
