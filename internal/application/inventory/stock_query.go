package inventory

import (
	"context"

	"github.com/jhoicas/salon-pos-api/internal/domain"
	"github.com/jhoicas/salon-pos-api/internal/domain/entity"
	"github.com/jhoicas/salon-pos-api/internal/domain/inventory"
	"github.com/jhoicas/salon-pos-api/internal/domain/repository"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// StockQueryUseCase lecturas de stock para UI y reportes. La disponibilidad
// se deriva exclusivamente de los lotes (fuente de verdad única); el libro
// de movimientos queda como pista de auditoría.
type StockQueryUseCase struct {
	lotRepo       repository.LotRepository
	movRepo       repository.MovementRepository
	analyticsRepo repository.AnalyticsRepository
}

// NewStockQueryUseCase construye el caso de uso.
func NewStockQueryUseCase(lotRepo repository.LotRepository, movRepo repository.MovementRepository, analyticsRepo repository.AnalyticsRepository) *StockQueryUseCase {
	return &StockQueryUseCase{lotRepo: lotRepo, movRepo: movRepo, analyticsRepo: analyticsRepo}
}

// AvailableStock disponibilidad del producto desde los lotes.
func (uc *StockQueryUseCase) AvailableStock(productID string) (decimal.Decimal, error) {
	if productID == "" {
		return decimal.Zero, domain.ErrInvalidInput
	}
	return uc.lotRepo.AvailableStock(productID)
}

// ListRunningLots lotes RUNNING del producto en orden FIFO.
func (uc *StockQueryUseCase) ListRunningLots(productID string) ([]*entity.Lot, error) {
	if productID == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.lotRepo.ListRunning(productID)
}

// ListLotsByProduct todos los lotes del producto, cualquier estado.
func (uc *StockQueryUseCase) ListLotsByProduct(productID string) ([]*entity.Lot, error) {
	if productID == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.lotRepo.ListByProduct(productID)
}

// ListAllLots proyección de todos los lotes (paginada).
func (uc *StockQueryUseCase) ListAllLots(limit, offset int) ([]*entity.Lot, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return uc.lotRepo.ListAll(limit, offset)
}

// ListRecentLots los n lotes más recientes.
func (uc *StockQueryUseCase) ListRecentLots(n int) ([]*entity.Lot, error) {
	if n <= 0 || n > 500 {
		n = 20
	}
	return uc.lotRepo.ListRecent(n)
}

// ListMovements entradas del libro, opcionalmente filtradas por tipo.
func (uc *StockQueryUseCase) ListMovements(movementType string, limit, offset int) ([]*entity.Movement, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	if movementType == "" {
		return uc.movRepo.ListAll(limit, offset)
	}
	if !entity.IsMovementType(movementType) {
		return nil, domain.ErrInvalidInput
	}
	return uc.movRepo.ListByType(movementType, limit, offset)
}

// ListMovementsByProduct historial del libro para un producto.
func (uc *StockQueryUseCase) ListMovementsByProduct(productID string, limit, offset int) ([]*entity.Movement, error) {
	if productID == "" {
		return nil, domain.ErrInvalidInput
	}
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return uc.movRepo.ListByProduct(productID, limit, offset)
}

// StockSummary agregado recibido/usado/disponible por producto. Cuando la
// salida acumulada del libro difiere del consumo de lotes en más de la
// tolerancia se deja constancia en el log: es deriva de auditoría, no
// afecta la disponibilidad reportada.
func (uc *StockQueryUseCase) StockSummary(ctx context.Context) ([]repository.StockSummaryRow, error) {
	rows, err := uc.analyticsRepo.StockSummary(ctx)
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		drift := row.TotalConsumed.Sub(row.LedgerOutflow).Abs()
		if drift.GreaterThan(inventory.Epsilon) {
			log.Warn().
				Str("product_id", row.ProductID).
				Str("lot_consumed", row.TotalConsumed.String()).
				Str("ledger_outflow", row.LedgerOutflow.String()).
				Msg("deriva entre consumo de lotes y libro de movimientos")
		}
	}
	return rows, nil
}
