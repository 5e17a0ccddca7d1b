package repository

import "github.com/jhoicas/salon-pos-api/internal/domain/entity"

// UserRepository puerto de usuarios para autenticación y atribución.
type UserRepository interface {
	Create(u *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
}
