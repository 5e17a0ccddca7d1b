package billing

import (
	"context"

	"github.com/jhoicas/salon-pos-api/internal/domain/entity"
	"github.com/jhoicas/salon-pos-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// BillingTxRunner inicia una transacción con los repositorios de stock y
// facturación atados a ella (para CreateSale).
type BillingTxRunner interface {
	RunBilling(ctx context.Context, fn func(
		lotRepo repository.LotRepository,
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
		invoiceRepo repository.InvoiceRepository,
	) error) error
}

// Depleter consumo FIFO ejecutado con el repositorio de lotes atado a la
// transacción del caller. Devuelve la cantidad que no pudo cubrirse.
type Depleter interface {
	DepleteInTx(lotRepo repository.LotRepository, productID string, quantity decimal.Decimal) (decimal.Decimal, error)
}

// InvoicePDFGenerator genera la representación PDF de una factura.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(ctx context.Context,
		invoice *entity.Invoice,
		customer *entity.Customer,
		services []*entity.InvoiceServiceLine,
		items []InvoiceItemForPDF,
	) ([]byte, error)
}

// InvoiceItemForPDF línea de producto enriquecida con nombre y marca para
// el render (el PDF no consulta la base de datos).
type InvoiceItemForPDF struct {
	Line        *entity.InvoiceItemLine
	ProductName string
	Brand       string
}
