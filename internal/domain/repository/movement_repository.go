package repository

import (
	"github.com/jhoicas/salon-pos-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// MovementRepository define el puerto del libro de movimientos
// (append-only). Append no valida suficiencia de stock: eso es
// responsabilidad del orquestador antes de escribir.
type MovementRepository interface {
	Append(m *entity.Movement) error
	ListAll(limit, offset int) ([]*entity.Movement, error)
	ListByType(movementType string, limit, offset int) ([]*entity.Movement, error)
	ListByProduct(productID string, limit, offset int) ([]*entity.Movement, error)
	// OutflowTotal suma |cantidades negativas| del producto, cualquier
	// tipo: toda entrada negativa del libro consume lotes (SALE, USAGE y
	// ajustes a la baja). Solo auditoría y conciliación; la
	// disponibilidad sale de los lotes.
	OutflowTotal(productID string) (decimal.Decimal, error)
}
