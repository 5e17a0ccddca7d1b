package inventory

import (
	"errors"
	"testing"

	"github.com/jhoicas/salon-pos-api/internal/domain/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func prices(cost, price float64) *entity.LotPrices {
	return &entity.LotPrices{
		ActualUnitCost:   decimal.NewFromFloat(cost),
		SellingUnitPrice: decimal.NewFromFloat(price),
	}
}

func TestCheckPriceConsistency_PrimerLoteSiempreAcepta(t *testing.T) {
	err := CheckPriceConsistency("prod-1", nil, decimal.NewFromInt(10), decimal.NewFromInt(25))
	assert.NoError(t, err)
}

func TestCheckPriceConsistency_DentroDeToleranciaAcepta(t *testing.T) {
	historical := prices(10.00, 25.00)

	err := CheckPriceConsistency("prod-1", historical,
		decimal.NewFromFloat(10.01), decimal.NewFromFloat(24.99))
	assert.NoError(t, err)
}

func TestCheckPriceConsistency_CostoDistintoDevuelveMismatch(t *testing.T) {
	historical := prices(10.00, 25.00)

	err := CheckPriceConsistency("prod-1", historical,
		decimal.NewFromFloat(12.50), decimal.NewFromFloat(25.00))
	require.Error(t, err)

	var mismatch *PriceMismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, "prod-1", mismatch.ProductID)
	assert.True(t, mismatch.HistoricalCost.Equal(decimal.NewFromFloat(10.00)))
	assert.True(t, mismatch.ProposedCost.Equal(decimal.NewFromFloat(12.50)))
}

func TestCheckPriceConsistency_PrecioVentaDistintoDevuelveMismatch(t *testing.T) {
	historical := prices(10.00, 25.00)

	err := CheckPriceConsistency("prod-1", historical,
		decimal.NewFromFloat(10.00), decimal.NewFromFloat(30.00))
	require.Error(t, err)

	var mismatch *PriceMismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.True(t, mismatch.HistoricalPrice.Equal(decimal.NewFromFloat(25.00)))
	assert.True(t, mismatch.ProposedPrice.Equal(decimal.NewFromFloat(30.00)))
}

func TestCheckPriceConsistency_ErrorIncluyeAmbosPares(t *testing.T) {
	historical := prices(10.00, 25.00)

	err := CheckPriceConsistency("prod-1", historical,
		decimal.NewFromFloat(11.00), decimal.NewFromFloat(26.00))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "prod-1")
	assert.Contains(t, err.Error(), "11.00")
	assert.Contains(t, err.Error(), "10.00")
}
