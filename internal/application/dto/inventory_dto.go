package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateLotRequest body para POST /api/stock/lots (entrada de lote).
// confirm_historical_prices: el usuario aceptó conservar los precios
// históricos tras un aviso PRICE_MISMATCH.
type CreateLotRequest struct {
	ProductID               string          `json:"product_id"`
	ReceivedDate            *time.Time      `json:"received_date,omitempty"`
	Quantity                decimal.Decimal `json:"quantity"`
	ActualUnitCost          decimal.Decimal `json:"actual_unit_cost"`
	SellingUnitPrice        decimal.Decimal `json:"selling_unit_price"`
	Notes                   string          `json:"notes,omitempty"`
	ConfirmHistoricalPrices bool            `json:"confirm_historical_prices,omitempty"`
}

// LotResponse proyección de un lote.
type LotResponse struct {
	ID               string          `json:"id"`
	ProductID        string          `json:"product_id"`
	ReceivedDate     string          `json:"received_date"`
	QuantityReceived decimal.Decimal `json:"quantity_received"`
	QuantityConsumed decimal.Decimal `json:"quantity_consumed"`
	Available        decimal.Decimal `json:"available"`
	ActualUnitCost   decimal.Decimal `json:"actual_unit_cost"`
	SellingUnitPrice decimal.Decimal `json:"selling_unit_price"`
	Status           string          `json:"status"`
	Notes            string          `json:"notes,omitempty"`
}

// PriceMismatchResponse detalle del conflicto de precios (HTTP 409).
// El cliente repite la petición con confirm_historical_prices=true para
// conservar los precios históricos, o la abandona.
type PriceMismatchResponse struct {
	Code            string          `json:"code"` // PRICE_MISMATCH
	Message         string          `json:"message"`
	ProductID       string          `json:"product_id"`
	HistoricalCost  decimal.Decimal `json:"historical_cost"`
	HistoricalPrice decimal.Decimal `json:"historical_price"`
	ProposedCost    decimal.Decimal `json:"proposed_cost"`
	ProposedPrice   decimal.Decimal `json:"proposed_price"`
}

// RecordUsageRequest body para POST /api/stock/usage.
type RecordUsageRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	Remarks   string          `json:"remarks,omitempty"`
}

// RecordAdjustmentRequest body para POST /api/stock/adjustments.
// Quantity signada: negativa consume lotes, positiva crea lote de corrección.
type RecordAdjustmentRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	Remarks   string          `json:"remarks,omitempty"`
}

// MovementResponse proyección de una entrada del libro de movimientos.
type MovementResponse struct {
	ID              string          `json:"id"`
	ProductID       string          `json:"product_id"`
	MovementDate    time.Time       `json:"movement_date"`
	QuantityChanged decimal.Decimal `json:"quantity_changed"`
	Type            string          `json:"type"`
	ReferenceID     string          `json:"reference_id,omitempty"`
	ActorID         string          `json:"actor_id,omitempty"`
	Remarks         string          `json:"remarks,omitempty"`
}

// StockSummaryRowDTO agregado por producto para el dashboard de stock.
type StockSummaryRowDTO struct {
	ProductID     string          `json:"product_id"`
	ProductName   string          `json:"product_name"`
	Brand         string          `json:"brand,omitempty"`
	TotalReceived decimal.Decimal `json:"total_received"`
	TotalConsumed decimal.Decimal `json:"total_consumed"`
	Available     decimal.Decimal `json:"available"`
}
