package repository

import "github.com/jhoicas/salon-pos-api/internal/domain/entity"

// InvoiceRepository puerto de persistencia de facturas. Create y las
// líneas se escriben dentro de la misma transacción que los movimientos
// de stock y el consumo de lotes.
type InvoiceRepository interface {
	Create(inv *entity.Invoice) error
	CreateServiceLine(line *entity.InvoiceServiceLine) error
	CreateItemLine(line *entity.InvoiceItemLine) error
	GetByID(id string) (*entity.Invoice, error)
	GetServiceLines(invoiceID string) ([]*entity.InvoiceServiceLine, error)
	GetItemLines(invoiceID string) ([]*entity.InvoiceItemLine, error)
	List(limit, offset int) ([]*entity.Invoice, error)
}
