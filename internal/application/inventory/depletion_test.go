package inventory

import (
	"testing"

	"github.com/jhoicas/salon-pos-api/internal/domain/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDepleteFIFO_ConsumeEnOrdenDeRecepcion(t *testing.T) {
	repo := newFakeLotRepo(
		lotOn("lote-b", "prod-1", 20, 10, 0, entity.LotStatusRunning),
		lotOn("lote-a", "prod-1", 10, 10, 0, entity.LotStatusRunning),
	)

	remaining, err := depleteFIFO(repo, "prod-1", decimal.NewFromInt(5))
	require.NoError(t, err)
	assert.True(t, Depleted(remaining))

	// El lote más antiguo (lote-a) se consume primero, el otro queda intacto.
	lotA, _ := repo.GetByID("lote-a")
	lotB, _ := repo.GetByID("lote-b")
	assert.True(t, lotA.QuantityConsumed.Equal(decimal.NewFromInt(5)))
	assert.Equal(t, entity.LotStatusRunning, lotA.Status)
	assert.True(t, lotB.QuantityConsumed.IsZero())
}

func TestDepleteFIFO_CruzaLotes(t *testing.T) {
	// Dos lotes de 10: consumir 15 agota el primero y deja 5 en el segundo.
	repo := newFakeLotRepo(
		lotOn("lote-a", "prod-1", 10, 10, 0, entity.LotStatusRunning),
		lotOn("lote-b", "prod-1", 20, 10, 0, entity.LotStatusRunning),
	)

	remaining, err := depleteFIFO(repo, "prod-1", decimal.NewFromInt(15))
	require.NoError(t, err)
	assert.True(t, Depleted(remaining))

	lotA, _ := repo.GetByID("lote-a")
	lotB, _ := repo.GetByID("lote-b")
	assert.Equal(t, entity.LotStatusCompleted, lotA.Status)
	assert.True(t, lotA.QuantityConsumed.Equal(lotA.QuantityReceived))
	assert.Equal(t, entity.LotStatusRunning, lotB.Status)
	assert.True(t, lotB.QuantityConsumed.Equal(decimal.NewFromInt(5)))
}

func TestDepleteFIFO_ConsumoExactoCompletaElLote(t *testing.T) {
	repo := newFakeLotRepo(
		lotOn("lote-a", "prod-1", 10, 10, 4, entity.LotStatusRunning),
	)

	remaining, err := depleteFIFO(repo, "prod-1", decimal.NewFromInt(6))
	require.NoError(t, err)
	assert.True(t, Depleted(remaining))

	lotA, _ := repo.GetByID("lote-a")
	assert.Equal(t, entity.LotStatusCompleted, lotA.Status)
	assert.True(t, lotA.QuantityConsumed.Equal(decimal.NewFromInt(10)))
}

func TestDepleteFIFO_StockInsuficienteDevuelveFaltante(t *testing.T) {
	repo := newFakeLotRepo(
		lotOn("lote-a", "prod-1", 10, 10, 0, entity.LotStatusRunning),
	)

	remaining, err := depleteFIFO(repo, "prod-1", decimal.NewFromInt(12))
	require.NoError(t, err)
	assert.False(t, Depleted(remaining))
	assert.True(t, remaining.Equal(decimal.NewFromInt(2)))

	// Lo que había se consume igual; el llamador decide el rollback.
	lotA, _ := repo.GetByID("lote-a")
	assert.Equal(t, entity.LotStatusCompleted, lotA.Status)
}

func TestDepleteFIFO_SinLotesRunningNoMutaNada(t *testing.T) {
	repo := newFakeLotRepo(
		lotOn("lote-a", "prod-1", 10, 10, 10, entity.LotStatusCompleted),
	)

	remaining, err := depleteFIFO(repo, "prod-1", decimal.NewFromInt(7))
	require.NoError(t, err)
	assert.False(t, Depleted(remaining))
	assert.True(t, remaining.Equal(decimal.NewFromInt(7)))

	// Los lotes COMPLETED nunca se revisitan.
	lotA, _ := repo.GetByID("lote-a")
	assert.True(t, lotA.QuantityConsumed.Equal(decimal.NewFromInt(10)))
	assert.Equal(t, entity.LotStatusCompleted, lotA.Status)
}

func TestDepleteFIFO_AutoReparaLotesVaciosEnRunning(t *testing.T) {
	// lote-a quedó RUNNING pero sin disponible: debe cerrarse y saltarse.
	repo := newFakeLotRepo(
		lotOn("lote-a", "prod-1", 10, 10, 10, entity.LotStatusRunning),
		lotOn("lote-b", "prod-1", 20, 10, 0, entity.LotStatusRunning),
	)

	remaining, err := depleteFIFO(repo, "prod-1", decimal.NewFromInt(3))
	require.NoError(t, err)
	assert.True(t, Depleted(remaining))

	lotA, _ := repo.GetByID("lote-a")
	lotB, _ := repo.GetByID("lote-b")
	assert.Equal(t, entity.LotStatusCompleted, lotA.Status)
	assert.True(t, lotB.QuantityConsumed.Equal(decimal.NewFromInt(3)))
}

func TestDepleteFIFO_DesempataPorIDConMismaFecha(t *testing.T) {
	repo := newFakeLotRepo(
		lotOn("lote-2", "prod-1", 10, 5, 0, entity.LotStatusRunning),
		lotOn("lote-1", "prod-1", 10, 5, 0, entity.LotStatusRunning),
	)

	remaining, err := depleteFIFO(repo, "prod-1", decimal.NewFromInt(5))
	require.NoError(t, err)
	assert.True(t, Depleted(remaining))

	lot1, _ := repo.GetByID("lote-1")
	lot2, _ := repo.GetByID("lote-2")
	assert.Equal(t, entity.LotStatusCompleted, lot1.Status)
	assert.Equal(t, entity.LotStatusRunning, lot2.Status)
	assert.True(t, lot2.QuantityConsumed.IsZero())
}

func TestDepleted_UmbralEpsilon(t *testing.T) {
	assert.True(t, Depleted(decimal.Zero))
	assert.True(t, Depleted(decimal.NewFromFloat(0.0005)))
	assert.True(t, Depleted(decimal.NewFromFloat(0.001)))
	assert.False(t, Depleted(decimal.NewFromFloat(0.002)))
}
