package repository

import "github.com/jhoicas/salon-pos-api/internal/domain/entity"

// CustomerRepository puerto de clientes.
type CustomerRepository interface {
	Create(c *entity.Customer) error
	GetByID(id string) (*entity.Customer, error)
	List(limit, offset int) ([]*entity.Customer, error)
	Update(c *entity.Customer) error
}
