package inventory

import (
	"fmt"

	"github.com/jhoicas/salon-pos-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Epsilon tolerancia de cantidades: un lote con disponible <= Epsilon se
// considera agotado.
var Epsilon = decimal.NewFromFloat(0.001)

// PriceTolerance tolerancia de comparación de precios entre lotes del
// mismo producto.
var PriceTolerance = decimal.NewFromFloat(0.01)

// PriceMismatchError indica que los precios propuestos para un lote nuevo
// difieren de los históricos del producto. Lleva ambos pares para que el
// caller pueda mostrar el detalle y pedir confirmación humana. La única
// resolución soportada es conservar los precios históricos: cambiar de
// precio exige retirar el producto y crear uno nuevo.
type PriceMismatchError struct {
	ProductID       string
	HistoricalCost  decimal.Decimal
	HistoricalPrice decimal.Decimal
	ProposedCost    decimal.Decimal
	ProposedPrice   decimal.Decimal
}

func (e *PriceMismatchError) Error() string {
	return fmt.Sprintf("precios distintos a los históricos del producto %s: costo %s vs %s, venta %s vs %s",
		e.ProductID,
		e.ProposedCost.StringFixed(2), e.HistoricalCost.StringFixed(2),
		e.ProposedPrice.StringFixed(2), e.HistoricalPrice.StringFixed(2))
}

// CheckPriceConsistency compara los precios propuestos contra los del
// último lote registrado (cualquier estado, para que la historia de
// precios sobreviva al agotamiento). Si alguno difiere en más de
// PriceTolerance devuelve *PriceMismatchError; si historical es nil (primer
// lote del producto) siempre acepta.
func CheckPriceConsistency(productID string, historical *entity.LotPrices, proposedCost, proposedPrice decimal.Decimal) error {
	if historical == nil {
		return nil
	}
	costDiff := proposedCost.Sub(historical.ActualUnitCost).Abs()
	priceDiff := proposedPrice.Sub(historical.SellingUnitPrice).Abs()
	if costDiff.GreaterThan(PriceTolerance) || priceDiff.GreaterThan(PriceTolerance) {
		return &PriceMismatchError{
			ProductID:       productID,
			HistoricalCost:  historical.ActualUnitCost,
			HistoricalPrice: historical.SellingUnitPrice,
			ProposedCost:    proposedCost,
			ProposedPrice:   proposedPrice,
		}
	}
	return nil
}
