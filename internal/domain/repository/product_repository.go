package repository

import "github.com/jhoicas/salon-pos-api/internal/domain/entity"

// ProductRepository puerto de catálogo de productos.
type ProductRepository interface {
	Create(p *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	List(includeDiscontinued bool) ([]*entity.Product, error)
	Update(p *entity.Product) error
	// BumpRevision incrementa products.revision dentro de la transacción
	// que muta stock del producto, para polling barato de colaboradores.
	BumpRevision(id string) error
}
