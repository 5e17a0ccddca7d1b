package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice cabecera de una factura de venta: servicios con descuento más
// productos vendidos desde lotes. Los totales se calculan una sola vez en
// el orquestador de ventas y se persisten en la misma transacción que los
// movimientos de stock y el consumo de lotes.
type Invoice struct {
	ID                     string
	CustomerID             string
	Date                   time.Time
	ServiceSubtotal        decimal.Decimal
	ServiceDiscountPercent decimal.Decimal
	ServiceDiscountAmount  decimal.Decimal
	ServiceTotal           decimal.Decimal
	ProductTotal           decimal.Decimal
	GrandTotal             decimal.Decimal
	CreatedAt              time.Time
}

// InvoiceServiceLine línea de servicio facturado (precio base y final con
// el descuento ya aplicado).
type InvoiceServiceLine struct {
	ID             string
	InvoiceID      string
	ServiceName    string
	Price          decimal.Decimal
	DiscountAmount decimal.Decimal
	FinalPrice     decimal.Decimal
}

// InvoiceItemLine línea de producto facturado. Los precios unitarios se
// copian del lote vigente al momento de la venta.
type InvoiceItemLine struct {
	ID               string
	InvoiceID        string
	ProductID        string
	Quantity         decimal.Decimal
	SellingUnitPrice decimal.Decimal
	ActualUnitCost   decimal.Decimal
	Subtotal         decimal.Decimal
}
