package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Service es un servicio del salón (corte, manicure, etc.) con precio fijo.
type Service struct {
	ID        string
	Name      string
	Price     decimal.Decimal
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
