package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento del libro de stock.
const (
	MovementTypeSale       = "SALE"       // venta (negativo, referencia a factura)
	MovementTypeUsage      = "USAGE"      // consumo interno (negativo)
	MovementTypeRestock    = "RESTOCK"    // entrada de lote (positivo, auditoría)
	MovementTypeAdjustment = "ADJUSTMENT" // corrección manual (signado)
)

// IsMovementType valida que el tipo pertenezca al catálogo.
func IsMovementType(t string) bool {
	switch t {
	case MovementTypeSale, MovementTypeUsage, MovementTypeRestock, MovementTypeAdjustment:
		return true
	}
	return false
}

// Movement es una entrada del libro de movimientos de stock: append-only,
// inmutable una vez escrita. QuantityChanged lleva el signo del cambio:
// negativo en SALE, USAGE y ajustes a la baja (todos consumen lotes),
// positivo en RESTOCK y ajustes al alza. ReferenceID enlaza una venta
// con su factura; ActorID puede estar vacío (movimiento del sistema).
type Movement struct {
	ID              string
	ProductID       string
	MovementDate    time.Time
	QuantityChanged decimal.Decimal
	Type            string
	ReferenceID     string
	ActorID         string
	Remarks         string
}
