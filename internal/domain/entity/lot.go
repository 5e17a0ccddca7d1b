package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del ciclo de vida de un lote de stock.
const (
	LotStatusRunning   = "RUNNING"   // con cantidad disponible
	LotStatusCompleted = "COMPLETED" // totalmente consumido
)

// Lot representa un lote de stock recibido en una fecha, con sus precios
// unitarios propios. Invariante: Status = COMPLETED sii
// QuantityReceived - QuantityConsumed <= epsilon. Los lotes nunca se borran;
// solo el motor de consumo FIFO incrementa QuantityConsumed.
type Lot struct {
	ID               string
	ProductID        string
	ReceivedDate     time.Time
	QuantityReceived decimal.Decimal
	QuantityConsumed decimal.Decimal
	ActualUnitCost   decimal.Decimal
	SellingUnitPrice decimal.Decimal
	Status           string
	Notes            string
	CreatedAt        time.Time
}

// Available devuelve la cantidad aún no consumida del lote.
func (l *Lot) Available() decimal.Decimal {
	return l.QuantityReceived.Sub(l.QuantityConsumed)
}

// LotPrices par de precios (costo real y precio de venta) de un lote.
// Se usa para la validación de consistencia de precios por producto.
type LotPrices struct {
	ActualUnitCost   decimal.Decimal
	SellingUnitPrice decimal.Decimal
}
