package inventory

import (
	"github.com/jhoicas/salon-pos-api/internal/domain/entity"
	"github.com/jhoicas/salon-pos-api/internal/domain/inventory"
	"github.com/jhoicas/salon-pos-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// depleteFIFO consume lotes RUNNING del producto en orden estricto FIFO
// (received_date ASC, id ASC) hasta cubrir qty. Las filas candidatas se
// leen con FOR UPDATE, de modo que dos ventas concurrentes del mismo
// producto se serializan en la base de datos.
//
// Por cada lote: si su disponible <= epsilon se auto-repara marcándolo
// COMPLETED y se continúa (estado inconsistente heredado); si lo pendiente
// cubre todo el lote se consume completo (consumed = received, COMPLETED);
// si no, consumo parcial (consumed += pendiente, sigue RUNNING). Un lote
// más nuevo jamás se toca mientras uno más viejo tenga disponible.
//
// Devuelve la cantidad que no pudo consumirse. El caller decide si eso
// implica rollback (venta/uso) o no; aquí no se escribe en el libro.
func depleteFIFO(lotRepo repository.LotRepository, productID string, qty decimal.Decimal) (decimal.Decimal, error) {
	lots, err := lotRepo.ListRunningForUpdate(productID)
	if err != nil {
		return qty, err
	}

	remaining := qty
	for _, lot := range lots {
		if remaining.LessThanOrEqual(inventory.Epsilon) {
			break
		}
		available := lot.Available()

		if available.LessThanOrEqual(inventory.Epsilon) {
			// Auto-reparación: lote sin disponible que quedó RUNNING.
			if err := lotRepo.MarkConsumed(lot.ID, lot.QuantityReceived, entity.LotStatusCompleted); err != nil {
				return remaining, err
			}
			continue
		}

		if remaining.GreaterThanOrEqual(available) {
			if err := lotRepo.MarkConsumed(lot.ID, lot.QuantityReceived, entity.LotStatusCompleted); err != nil {
				return remaining, err
			}
			remaining = remaining.Sub(available)
		} else {
			if err := lotRepo.MarkConsumed(lot.ID, lot.QuantityConsumed.Add(remaining), entity.LotStatusRunning); err != nil {
				return remaining, err
			}
			remaining = decimal.Zero
		}
	}
	return remaining, nil
}

// Depleted true si la cantidad pendiente se considera cubierta.
func Depleted(remaining decimal.Decimal) bool {
	return remaining.LessThanOrEqual(inventory.Epsilon)
}
