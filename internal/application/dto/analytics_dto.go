package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RevenueResponse totales de facturación en un rango de fechas.
type RevenueResponse struct {
	From         time.Time       `json:"from"`
	To           time.Time       `json:"to"`
	ServiceTotal decimal.Decimal `json:"service_total"`
	ProductTotal decimal.Decimal `json:"product_total"`
	GrandTotal   decimal.Decimal `json:"grand_total"`
	InvoiceCount int64           `json:"invoice_count"`
}

// TopProductResponse fila del ranking de productos vendidos.
type TopProductResponse struct {
	ProductID    string          `json:"product_id"`
	ProductName  string          `json:"product_name"`
	Brand        string          `json:"brand"`
	QuantitySold decimal.Decimal `json:"quantity_sold"`
	Revenue      decimal.Decimal `json:"revenue"`
}
