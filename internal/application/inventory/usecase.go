package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/salon-pos-api/internal/domain"
	"github.com/jhoicas/salon-pos-api/internal/domain/entity"
	"github.com/jhoicas/salon-pos-api/internal/domain/inventory"
	"github.com/jhoicas/salon-pos-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// StockUseCase motor de stock: entradas de lotes con validación de precios,
// consumo FIFO transaccional y registro en el libro de movimientos.
type StockUseCase struct {
	txRunner    TxRunner
	lotRepo     repository.LotRepository
	productRepo repository.ProductRepository
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(txRunner TxRunner, lotRepo repository.LotRepository, productRepo repository.ProductRepository) *StockUseCase {
	return &StockUseCase{txRunner: txRunner, lotRepo: lotRepo, productRepo: productRepo}
}

// RestockInput entrada para registrar un lote nuevo.
// ConfirmHistoricalPrices: el usuario ya vio el aviso de precios distintos
// y acepta conservar los históricos (los propuestos se descartan).
type RestockInput struct {
	ProductID               string
	ReceivedDate            time.Time
	Quantity                decimal.Decimal
	ActualUnitCost          decimal.Decimal
	SellingUnitPrice        decimal.Decimal
	Notes                   string
	ConfirmHistoricalPrices bool
}

// Restock valida precios contra la historia del producto y crea el lote
// junto con su entrada RESTOCK en el libro, en una sola transacción.
// No cierra lotes RUNNING anteriores: varios lotes RUNNING por producto
// son válidos; el cierre ocurre solo vía consumo FIFO.
//
// Si los precios difieren de los históricos en más de la tolerancia y el
// caller no confirmó, devuelve *inventory.PriceMismatchError con ambos
// pares y no escribe nada. Con confirmación, persiste los históricos.
func (uc *StockUseCase) Restock(ctx context.Context, actorID string, in RestockInput) (*entity.Lot, error) {
	if in.ProductID == "" || !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if in.ActualUnitCost.LessThan(decimal.Zero) || in.SellingUnitPrice.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil || product == nil {
		return nil, domain.ErrNotFound
	}
	if product.Discontinued {
		return nil, domain.ErrConflict
	}

	// Historia de precios: cualquier estado, para que sobreviva al agotamiento.
	historical, err := uc.lotRepo.LatestPrices(in.ProductID)
	if err != nil {
		return nil, err
	}
	cost, price := in.ActualUnitCost, in.SellingUnitPrice
	if err := inventory.CheckPriceConsistency(in.ProductID, historical, cost, price); err != nil {
		if !in.ConfirmHistoricalPrices {
			return nil, err
		}
		// Confirmado: se conservan los precios históricos, nunca los nuevos.
		cost, price = historical.ActualUnitCost, historical.SellingUnitPrice
	}

	now := time.Now()
	receivedDate := in.ReceivedDate
	if receivedDate.IsZero() {
		receivedDate = now
	}
	lot := &entity.Lot{
		ID:               uuid.New().String(),
		ProductID:        in.ProductID,
		ReceivedDate:     receivedDate,
		QuantityReceived: in.Quantity,
		QuantityConsumed: decimal.Zero,
		ActualUnitCost:   cost,
		SellingUnitPrice: price,
		Status:           entity.LotStatusRunning,
		Notes:            in.Notes,
		CreatedAt:        now,
	}

	err = uc.txRunner.Run(ctx, func(
		lotRepo repository.LotRepository,
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
	) error {
		if err := lotRepo.Create(lot); err != nil {
			return err
		}
		mov := &entity.Movement{
			ID:              uuid.New().String(),
			ProductID:       in.ProductID,
			MovementDate:    now,
			QuantityChanged: in.Quantity,
			Type:            entity.MovementTypeRestock,
			ActorID:         actorID,
			Remarks:         in.Notes,
		}
		if err := movRepo.Append(mov); err != nil {
			return err
		}
		return productRepo.BumpRevision(in.ProductID)
	})
	if err != nil {
		return nil, err
	}
	return lot, nil
}

// RecordUsage registra un consumo interno: entrada USAGE negativa en el
// libro más consumo FIFO de lotes, en una transacción. Se rechaza antes de
// escribir si la cantidad supera el disponible (pre-chequeo); el consumo
// fallido dentro de la tx es la segunda línea de defensa y revierte todo.
func (uc *StockUseCase) RecordUsage(ctx context.Context, actorID, productID string, quantity decimal.Decimal, remarks string) error {
	if productID == "" || !quantity.GreaterThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(productID)
	if err != nil || product == nil {
		return domain.ErrNotFound
	}

	available, err := uc.lotRepo.AvailableStock(productID)
	if err != nil {
		return err
	}
	if available.LessThan(quantity) {
		return domain.ErrInsufficientStock
	}

	now := time.Now()
	return uc.txRunner.Run(ctx, func(
		lotRepo repository.LotRepository,
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
	) error {
		mov := &entity.Movement{
			ID:              uuid.New().String(),
			ProductID:       productID,
			MovementDate:    now,
			QuantityChanged: quantity.Neg(),
			Type:            entity.MovementTypeUsage,
			ActorID:         actorID,
			Remarks:         remarks,
		}
		if err := movRepo.Append(mov); err != nil {
			return err
		}
		remaining, err := depleteFIFO(lotRepo, productID, quantity)
		if err != nil {
			return err
		}
		if !Depleted(remaining) {
			// Otro terminal consumió entre el pre-chequeo y el lock:
			// se revierte también la entrada del libro.
			return domain.ErrInsufficientStock
		}
		return productRepo.BumpRevision(productID)
	})
}

// RecordAdjustment registra una corrección manual. Cantidad negativa:
// consume lotes como un uso. Cantidad positiva: crea un lote de corrección
// con los precios históricos del producto (exige historia previa).
func (uc *StockUseCase) RecordAdjustment(ctx context.Context, actorID, productID string, quantity decimal.Decimal, remarks string) error {
	if productID == "" || quantity.IsZero() {
		return domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(productID)
	if err != nil || product == nil {
		return domain.ErrNotFound
	}

	now := time.Now()

	if quantity.LessThan(decimal.Zero) {
		magnitude := quantity.Neg()
		available, err := uc.lotRepo.AvailableStock(productID)
		if err != nil {
			return err
		}
		if available.LessThan(magnitude) {
			return domain.ErrInsufficientStock
		}
		return uc.txRunner.Run(ctx, func(
			lotRepo repository.LotRepository,
			movRepo repository.MovementRepository,
			productRepo repository.ProductRepository,
		) error {
			mov := &entity.Movement{
				ID:              uuid.New().String(),
				ProductID:       productID,
				MovementDate:    now,
				QuantityChanged: quantity,
				Type:            entity.MovementTypeAdjustment,
				ActorID:         actorID,
				Remarks:         remarks,
			}
			if err := movRepo.Append(mov); err != nil {
				return err
			}
			remaining, err := depleteFIFO(lotRepo, productID, magnitude)
			if err != nil {
				return err
			}
			if !Depleted(remaining) {
				return domain.ErrInsufficientStock
			}
			return productRepo.BumpRevision(productID)
		})
	}

	// Ajuste positivo: lote de corrección con precios históricos.
	historical, err := uc.lotRepo.LatestPrices(productID)
	if err != nil {
		return err
	}
	if historical == nil {
		// Sin historia de precios no hay con qué valorar la corrección.
		return domain.ErrConflict
	}
	lot := &entity.Lot{
		ID:               uuid.New().String(),
		ProductID:        productID,
		ReceivedDate:     now,
		QuantityReceived: quantity,
		QuantityConsumed: decimal.Zero,
		ActualUnitCost:   historical.ActualUnitCost,
		SellingUnitPrice: historical.SellingUnitPrice,
		Status:           entity.LotStatusRunning,
		Notes:            remarks,
		CreatedAt:        now,
	}
	return uc.txRunner.Run(ctx, func(
		lotRepo repository.LotRepository,
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
	) error {
		if err := lotRepo.Create(lot); err != nil {
			return err
		}
		mov := &entity.Movement{
			ID:              uuid.New().String(),
			ProductID:       productID,
			MovementDate:    now,
			QuantityChanged: quantity,
			Type:            entity.MovementTypeAdjustment,
			ActorID:         actorID,
			Remarks:         remarks,
		}
		if err := movRepo.Append(mov); err != nil {
			return err
		}
		return productRepo.BumpRevision(productID)
	})
}

// DepleteInTx ejecuta el consumo FIFO con el repositorio de lotes atado a
// la transacción del caller (integración facturación-stock). Devuelve la
// cantidad no cubierta; el caller decide el rollback.
func (uc *StockUseCase) DepleteInTx(lotRepo repository.LotRepository, productID string, quantity decimal.Decimal) (decimal.Decimal, error) {
	return depleteFIFO(lotRepo, productID, quantity)
}
