package repository

import "github.com/jhoicas/salon-pos-api/internal/domain/entity"

// ServiceRepository puerto de catálogo de servicios del salón.
type ServiceRepository interface {
	Create(s *entity.Service) error
	GetByID(id string) (*entity.Service, error)
	List(onlyActive bool) ([]*entity.Service, error)
	Update(s *entity.Service) error
}
