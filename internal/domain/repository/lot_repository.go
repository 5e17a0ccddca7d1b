package repository

import (
	"github.com/jhoicas/salon-pos-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// LotRepository define el puerto del almacén de lotes. El orden de
// ListRunning/ListRunningForUpdate es el contrato FIFO: received_date ASC
// con desempate por id ASC (total y estable aunque dos lotes compartan
// fecha). MarkConsumed es el único mutador; los lotes jamás se borran.
type LotRepository interface {
	Create(lot *entity.Lot) error
	GetByID(id string) (*entity.Lot, error)
	ListRunning(productID string) ([]*entity.Lot, error)
	// ListRunningForUpdate bloquea las filas candidatas (SELECT FOR UPDATE)
	// para serializar el consumo por producto dentro de la transacción.
	ListRunningForUpdate(productID string) ([]*entity.Lot, error)
	// LatestPrices devuelve los precios del lote más reciente sin filtrar
	// por estado, para que la validación de precios sobreviva al agotamiento.
	LatestPrices(productID string) (*entity.LotPrices, error)
	MarkConsumed(lotID string, consumed decimal.Decimal, status string) error
	// AvailableStock = SUM(quantity_received - quantity_consumed) del
	// producto. Fuente de verdad única de disponibilidad.
	AvailableStock(productID string) (decimal.Decimal, error)
	ListByProduct(productID string) ([]*entity.Lot, error)
	ListAll(limit, offset int) ([]*entity.Lot, error)
	ListRecent(n int) ([]*entity.Lot, error)
}
