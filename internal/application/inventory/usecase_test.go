package inventory

import (
	"context"
	"errors"
	"testing"

	"github.com/jhoicas/salon-pos-api/internal/domain"
	"github.com/jhoicas/salon-pos-api/internal/domain/entity"
	"github.com/jhoicas/salon-pos-api/internal/domain/inventory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStockFixture(lots ...*entity.Lot) (*StockUseCase, *fakeLotRepo, *fakeMovementRepo, *fakeProductRepo) {
	lotRepo := newFakeLotRepo(lots...)
	movRepo := &fakeMovementRepo{}
	productRepo := newFakeProductRepo(&entity.Product{ID: "prod-1", Name: "Shampoo Keratina", Brand: "Kativa"})
	runner := &fakeTxRunner{lotRepo: lotRepo, movRepo: movRepo, productRepo: productRepo}
	return NewStockUseCase(runner, lotRepo, productRepo), lotRepo, movRepo, productRepo
}

func TestRestock_PrimerLoteDelProducto(t *testing.T) {
	uc, lotRepo, movRepo, productRepo := newStockFixture()

	lot, err := uc.Restock(context.Background(), "user-1", RestockInput{
		ProductID:        "prod-1",
		Quantity:         decimal.NewFromInt(10),
		ActualUnitCost:   decimal.NewFromInt(10),
		SellingUnitPrice: decimal.NewFromInt(25),
		Notes:            "compra inicial",
	})
	require.NoError(t, err)
	require.NotNil(t, lot)
	assert.Equal(t, entity.LotStatusRunning, lot.Status)

	stored, _ := lotRepo.GetByID(lot.ID)
	require.NotNil(t, stored)

	require.Len(t, movRepo.movements, 1)
	assert.Equal(t, entity.MovementTypeRestock, movRepo.movements[0].Type)
	assert.True(t, movRepo.movements[0].QuantityChanged.Equal(decimal.NewFromInt(10)))
	assert.Equal(t, "user-1", movRepo.movements[0].ActorID)
	assert.Equal(t, 1, productRepo.revisions["prod-1"])
}

func TestRestock_PreciosDistintosSinConfirmarNoEscribeNada(t *testing.T) {
	uc, lotRepo, movRepo, _ := newStockFixture(
		lotOn("lote-a", "prod-1", 10, 10, 10, entity.LotStatusCompleted),
	)

	_, err := uc.Restock(context.Background(), "user-1", RestockInput{
		ProductID:        "prod-1",
		Quantity:         decimal.NewFromInt(5),
		ActualUnitCost:   decimal.NewFromInt(12),
		SellingUnitPrice: decimal.NewFromInt(30),
	})
	require.Error(t, err)

	var mismatch *inventory.PriceMismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.True(t, mismatch.HistoricalCost.Equal(decimal.NewFromInt(10)))
	assert.True(t, mismatch.ProposedCost.Equal(decimal.NewFromInt(12)))

	// Nada persistido: ni lote nuevo ni movimiento.
	assert.Len(t, lotRepo.lots, 1)
	assert.Empty(t, movRepo.movements)
}

func TestRestock_ConfirmadoConservaPreciosHistoricos(t *testing.T) {
	// La historia de precios sobrevive aunque el lote previo esté agotado.
	uc, _, _, _ := newStockFixture(
		lotOn("lote-a", "prod-1", 10, 10, 10, entity.LotStatusCompleted),
	)

	lot, err := uc.Restock(context.Background(), "user-1", RestockInput{
		ProductID:               "prod-1",
		Quantity:                decimal.NewFromInt(5),
		ActualUnitCost:          decimal.NewFromInt(12),
		SellingUnitPrice:        decimal.NewFromInt(30),
		ConfirmHistoricalPrices: true,
	})
	require.NoError(t, err)
	assert.True(t, lot.ActualUnitCost.Equal(decimal.NewFromInt(10)))
	assert.True(t, lot.SellingUnitPrice.Equal(decimal.NewFromInt(25)))
}

func TestRestock_ProductoDescontinuadoRechaza(t *testing.T) {
	uc, _, _, productRepo := newStockFixture()
	productRepo.products["prod-1"].Discontinued = true

	_, err := uc.Restock(context.Background(), "user-1", RestockInput{
		ProductID:        "prod-1",
		Quantity:         decimal.NewFromInt(5),
		ActualUnitCost:   decimal.NewFromInt(10),
		SellingUnitPrice: decimal.NewFromInt(25),
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestRestock_CantidadInvalida(t *testing.T) {
	uc, _, _, _ := newStockFixture()

	_, err := uc.Restock(context.Background(), "user-1", RestockInput{
		ProductID:        "prod-1",
		Quantity:         decimal.Zero,
		ActualUnitCost:   decimal.NewFromInt(10),
		SellingUnitPrice: decimal.NewFromInt(25),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRecordUsage_ConsumeFIFOYRegistraMovimiento(t *testing.T) {
	uc, lotRepo, movRepo, productRepo := newStockFixture(
		lotOn("lote-a", "prod-1", 10, 10, 0, entity.LotStatusRunning),
	)

	err := uc.RecordUsage(context.Background(), "user-1", "prod-1", decimal.NewFromInt(4), "uso en cabina")
	require.NoError(t, err)

	lotA, _ := lotRepo.GetByID("lote-a")
	assert.True(t, lotA.QuantityConsumed.Equal(decimal.NewFromInt(4)))

	require.Len(t, movRepo.movements, 1)
	assert.Equal(t, entity.MovementTypeUsage, movRepo.movements[0].Type)
	assert.True(t, movRepo.movements[0].QuantityChanged.Equal(decimal.NewFromInt(-4)))
	assert.Equal(t, 1, productRepo.revisions["prod-1"])
}

func TestRecordUsage_StockInsuficiente(t *testing.T) {
	uc, _, movRepo, _ := newStockFixture(
		lotOn("lote-a", "prod-1", 10, 10, 8, entity.LotStatusRunning),
	)

	err := uc.RecordUsage(context.Background(), "user-1", "prod-1", decimal.NewFromInt(5), "")
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Empty(t, movRepo.movements)
}

func TestRecordAdjustment_NegativoConsumeLotes(t *testing.T) {
	uc, lotRepo, movRepo, _ := newStockFixture(
		lotOn("lote-a", "prod-1", 10, 10, 0, entity.LotStatusRunning),
	)

	err := uc.RecordAdjustment(context.Background(), "user-1", "prod-1", decimal.NewFromInt(-3), "merma por derrame")
	require.NoError(t, err)

	lotA, _ := lotRepo.GetByID("lote-a")
	assert.True(t, lotA.QuantityConsumed.Equal(decimal.NewFromInt(3)))

	require.Len(t, movRepo.movements, 1)
	assert.Equal(t, entity.MovementTypeAdjustment, movRepo.movements[0].Type)
	assert.True(t, movRepo.movements[0].QuantityChanged.Equal(decimal.NewFromInt(-3)))
}

func TestRecordAdjustment_NegativoConciliaConElLibro(t *testing.T) {
	// Un ajuste a la baja consume lotes igual que una venta: la salida
	// acumulada del libro debe cuadrar con el consumo de lotes, sin deriva.
	uc, lotRepo, movRepo, _ := newStockFixture(
		lotOn("lote-a", "prod-1", 10, 10, 0, entity.LotStatusRunning),
	)

	err := uc.RecordAdjustment(context.Background(), "user-1", "prod-1", decimal.NewFromInt(-4), "merma")
	require.NoError(t, err)

	lotA, _ := lotRepo.GetByID("lote-a")
	outflow, err := movRepo.OutflowTotal("prod-1")
	require.NoError(t, err)
	assert.True(t, outflow.Equal(lotA.QuantityConsumed))
	drift := lotA.QuantityConsumed.Sub(outflow).Abs()
	assert.True(t, drift.LessThanOrEqual(inventory.Epsilon))
}

func TestRecordAdjustment_PositivoCreaLoteConPreciosHistoricos(t *testing.T) {
	uc, lotRepo, _, _ := newStockFixture(
		lotOn("lote-a", "prod-1", 10, 10, 10, entity.LotStatusCompleted),
	)

	err := uc.RecordAdjustment(context.Background(), "user-1", "prod-1", decimal.NewFromInt(2), "conteo físico")
	require.NoError(t, err)

	require.Len(t, lotRepo.lots, 2)
	correction := lotRepo.lots[1]
	assert.Equal(t, entity.LotStatusRunning, correction.Status)
	assert.True(t, correction.QuantityReceived.Equal(decimal.NewFromInt(2)))
	assert.True(t, correction.ActualUnitCost.Equal(decimal.NewFromInt(10)))
	assert.True(t, correction.SellingUnitPrice.Equal(decimal.NewFromInt(25)))
}

func TestRecordAdjustment_PositivoSinHistoriaRechaza(t *testing.T) {
	uc, _, _, _ := newStockFixture()

	err := uc.RecordAdjustment(context.Background(), "user-1", "prod-1", decimal.NewFromInt(2), "")
	assert.ErrorIs(t, err, domain.ErrConflict)
}
