package billing

import (
	"context"

	"github.com/jhoicas/salon-pos-api/internal/domain"
	"github.com/jhoicas/salon-pos-api/internal/domain/repository"
)

// PDFUseCase genera la representación PDF de una factura bajo demanda,
// enriqueciendo las líneas de producto con nombre y marca del catálogo.
type PDFUseCase struct {
	invoiceRepo  repository.InvoiceRepository
	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
	generator    InvoicePDFGenerator
}

// NewPDFUseCase construye el caso de uso.
func NewPDFUseCase(
	invoiceRepo repository.InvoiceRepository,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	generator InvoicePDFGenerator,
) *PDFUseCase {
	return &PDFUseCase{
		invoiceRepo:  invoiceRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		generator:    generator,
	}
}

// GenerateInvoicePDF devuelve los bytes del PDF de la factura.
func (uc *PDFUseCase) GenerateInvoicePDF(ctx context.Context, invoiceID string) ([]byte, error) {
	inv, err := uc.invoiceRepo.GetByID(invoiceID)
	if err != nil || inv == nil {
		return nil, domain.ErrNotFound
	}
	customer, err := uc.customerRepo.GetByID(inv.CustomerID)
	if err != nil || customer == nil {
		return nil, domain.ErrNotFound
	}
	serviceLines, err := uc.invoiceRepo.GetServiceLines(invoiceID)
	if err != nil {
		return nil, err
	}
	itemLines, err := uc.invoiceRepo.GetItemLines(invoiceID)
	if err != nil {
		return nil, err
	}

	items := make([]InvoiceItemForPDF, 0, len(itemLines))
	for _, line := range itemLines {
		item := InvoiceItemForPDF{Line: line}
		if product, _ := uc.productRepo.GetByID(line.ProductID); product != nil {
			item.ProductName = product.Name
			item.Brand = product.Brand
		}
		items = append(items, item)
	}

	return uc.generator.GenerateInvoicePDF(ctx, inv, customer, serviceLines, items)
}
