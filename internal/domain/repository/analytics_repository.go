package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// StockSummaryRow agregado por producto: recibido / usado / disponible.
// Available se deriva de los lotes; LedgerOutflow viene del libro de
// movimientos y sirve para detectar deriva entre ambas fuentes.
type StockSummaryRow struct {
	ProductID     string
	ProductName   string
	Brand         string
	TotalReceived decimal.Decimal
	TotalConsumed decimal.Decimal
	Available     decimal.Decimal
	LedgerOutflow decimal.Decimal
}

// RevenueSummary totales de ingresos en un rango de fechas.
type RevenueSummary struct {
	From         time.Time
	To           time.Time
	ServiceTotal decimal.Decimal
	ProductTotal decimal.Decimal
	GrandTotal   decimal.Decimal
	InvoiceCount int64
}

// TopProductRow producto ordenado por cantidad vendida.
type TopProductRow struct {
	ProductID    string
	ProductName  string
	Brand        string
	QuantitySold decimal.Decimal
	Revenue      decimal.Decimal
}

// AnalyticsRepository puerto de agregados de solo lectura (dashboards y
// reportes). Consume lotes, movimientos y facturas; no agrega invariantes.
type AnalyticsRepository interface {
	StockSummary(ctx context.Context) ([]StockSummaryRow, error)
	Revenue(ctx context.Context, from, to time.Time) (*RevenueSummary, error)
	TopProducts(ctx context.Context, from, to time.Time, limit int) ([]TopProductRow, error)
}
