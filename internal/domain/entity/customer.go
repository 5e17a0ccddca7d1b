package entity

import "time"

// Customer cliente del salón. MembershipPlanID puede estar vacío.
type Customer struct {
	ID               string
	Name             string
	Phone            string
	Address          string
	MembershipPlanID string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
