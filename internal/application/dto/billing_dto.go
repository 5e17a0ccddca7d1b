package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleServiceInput servicio facturado (se resuelve del catálogo).
type SaleServiceInput struct {
	ServiceID string `json:"service_id"`
}

// SaleProductInput línea de producto vendida. El precio NO se acepta del
// cliente: sale siempre del lote vigente del producto.
type SaleProductInput struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// CreateSaleRequest body para POST /api/invoices.
// service_discount_percent opcional; si es cero y el cliente tiene plan de
// membresía, se aplica el descuento del plan.
type CreateSaleRequest struct {
	CustomerID             string             `json:"customer_id"`
	Services               []SaleServiceInput `json:"services,omitempty"`
	Products               []SaleProductInput `json:"products,omitempty"`
	ServiceDiscountPercent decimal.Decimal    `json:"service_discount_percent,omitempty"`
}

// InvoiceServiceLineResponse línea de servicio en la respuesta.
type InvoiceServiceLineResponse struct {
	ServiceName    string          `json:"service_name"`
	Price          decimal.Decimal `json:"price"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	FinalPrice     decimal.Decimal `json:"final_price"`
}

// InvoiceItemLineResponse línea de producto en la respuesta.
type InvoiceItemLineResponse struct {
	ProductID        string          `json:"product_id"`
	Quantity         decimal.Decimal `json:"quantity"`
	SellingUnitPrice decimal.Decimal `json:"selling_unit_price"`
	Subtotal         decimal.Decimal `json:"subtotal"`
}

// InvoiceResponse factura con totales y líneas.
type InvoiceResponse struct {
	ID                     string                       `json:"id"`
	CustomerID             string                       `json:"customer_id"`
	CustomerName           string                       `json:"customer_name,omitempty"`
	Date                   time.Time                    `json:"date"`
	ServiceSubtotal        decimal.Decimal              `json:"service_subtotal"`
	ServiceDiscountPercent decimal.Decimal              `json:"service_discount_percent"`
	ServiceDiscountAmount  decimal.Decimal              `json:"service_discount_amount"`
	ServiceTotal           decimal.Decimal              `json:"service_total"`
	ProductTotal           decimal.Decimal              `json:"product_total"`
	GrandTotal             decimal.Decimal              `json:"grand_total"`
	Services               []InvoiceServiceLineResponse `json:"services"`
	Products               []InvoiceItemLineResponse    `json:"products"`
}
