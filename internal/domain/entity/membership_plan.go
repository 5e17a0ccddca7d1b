package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MembershipPlan plan de membresía con descuento sobre servicios.
type MembershipPlan struct {
	ID              string
	Name            string
	DiscountPercent decimal.Decimal // 0..100, aplica solo a servicios
	DurationDays    int
	CreatedAt       time.Time
}
