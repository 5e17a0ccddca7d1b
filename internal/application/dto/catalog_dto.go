package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest payload para crear o actualizar un producto.
// Los precios no viajan aquí: se fijan por lote al reabastecer.
type CreateProductRequest struct {
	Name         string `json:"name"`
	Brand        string `json:"brand"`
	Discontinued bool   `json:"discontinued"`
}

// ProductResponse representación de un producto del catálogo.
type ProductResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Brand        string    `json:"brand"`
	Discontinued bool      `json:"discontinued"`
	Revision     int64     `json:"revision"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CreateServiceRequest payload para crear o actualizar un servicio.
type CreateServiceRequest struct {
	Name   string          `json:"name"`
	Price  decimal.Decimal `json:"price"`
	Active bool            `json:"active"`
}

// ServiceResponse representación de un servicio del salón.
type ServiceResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Active    bool            `json:"active"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// CreateCustomerRequest payload para crear o actualizar un cliente.
type CreateCustomerRequest struct {
	Name             string `json:"name"`
	Phone            string `json:"phone"`
	Address          string `json:"address"`
	MembershipPlanID string `json:"membership_plan_id"`
}

// CustomerResponse representación de un cliente.
type CustomerResponse struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Phone            string    `json:"phone"`
	Address          string    `json:"address"`
	MembershipPlanID string    `json:"membership_plan_id,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// CreateMembershipRequest payload para crear un plan de membresía.
type CreateMembershipRequest struct {
	Name            string          `json:"name"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	DurationDays    int             `json:"duration_days"`
}

// MembershipResponse representación de un plan de membresía.
type MembershipResponse struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	DurationDays    int             `json:"duration_days"`
	CreatedAt       time.Time       `json:"created_at"`
}
