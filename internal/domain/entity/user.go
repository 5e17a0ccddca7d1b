package entity

import "time"

// Roles de usuario.
const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

// User usuario del sistema (atribución de movimientos y login).
type User struct {
	ID           string
	FullName     string
	Email        string
	PasswordHash string
	Role         string // admin | staff
	CreatedAt    time.Time
}
