package kernel_test

import (
	"testing"

	"settlement/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("should create money with amount and currency", func(t *testing.T) {
		m, err := kernel.NewMoney(decimal.RequireFromString("20500"), "IRR")

		require.NoError(t, err)
		require.NoError(t, m.Validate())
		assert.Equal(t, "IRR", m.Currency())
		assert.Equal(t, "20500.00 IRR", m.String())
	})

	t.Run("should fail without currency", func(t *testing.T) {
		_, err := kernel.NewMoney(decimal.NewFromInt(100), "")

		require.Error(t, err)
		assert.Equal(t, kernel.ErrCurrencyIsRequired, err)
	})

	t.Run("should allow negative amounts", func(t *testing.T) {
		m, err := kernel.NewMoney(decimal.NewFromInt(-2000), "IRR")

		require.NoError(t, err)
		assert.False(t, m.IsPositive())
	})
}

func TestMoney_Round(t *testing.T) {
	t.Run("should round only at presentation scale", func(t *testing.T) {
		m, _ := kernel.NewMoney(decimal.RequireFromString("1234.5678"), "IRR")

		rounded := m.Round()

		assert.Equal(t, "1234.57 IRR", rounded.String())
		// the original is untouched
		assert.Equal(t, "1234.5678", m.Amount().String())
	})
}

func TestMoney_Validate(t *testing.T) {
	t.Run("should fail for zero value money", func(t *testing.T) {
		var m kernel.Money

		err := m.Validate()

		require.Error(t, err)
		assert.Equal(t, kernel.ErrMoneyIsNotConstructed, err)
	})
}
