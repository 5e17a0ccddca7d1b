package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/salon-pos-api/internal/domain"
	"github.com/jhoicas/salon-pos-api/internal/domain/entity"
	"github.com/jhoicas/salon-pos-api/internal/domain/repository"
)

var _ repository.MembershipRepository = (*MembershipRepo)(nil)

// MembershipRepo implementación de MembershipRepository sobre PostgreSQL.
type MembershipRepo struct {
	q Querier
}

// NewMembershipRepository construye el adaptador de planes. Pasar pool o tx (Querier).
func NewMembershipRepository(q Querier) *MembershipRepo {
	return &MembershipRepo{q: q}
}

// Create inserta un plan de membresía.
func (r *MembershipRepo) Create(p *entity.MembershipPlan) error {
	query := `
		INSERT INTO membership_plans (id, name, discount_percent, duration_days, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.Name, p.DiscountPercent, p.DurationDays, p.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert membership plan: %w", err)
	}
	return nil
}

// GetByID obtiene un plan por ID.
func (r *MembershipRepo) GetByID(id string) (*entity.MembershipPlan, error) {
	query := `
		SELECT id, name, discount_percent, duration_days, created_at
		FROM membership_plans WHERE id = $1`
	var p entity.MembershipPlan
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.Name, &p.DiscountPercent, &p.DurationDays, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get membership plan: %w", err)
	}
	return &p, nil
}

// List lista los planes por nombre.
func (r *MembershipRepo) List() ([]*entity.MembershipPlan, error) {
	query := `
		SELECT id, name, discount_percent, duration_days, created_at
		FROM membership_plans ORDER BY name ASC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list membership plans: %w", err)
	}
	defer rows.Close()

	var plans []*entity.MembershipPlan
	for rows.Next() {
		var p entity.MembershipPlan
		if err := rows.Scan(&p.ID, &p.Name, &p.DiscountPercent, &p.DurationDays, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan membership plan: %w", err)
		}
		plans = append(plans, &p)
	}
	return plans, rows.Err()
}
