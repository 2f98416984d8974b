package tariff_test

import (
	"testing"

	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/core/domain/model/tariff"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func weight(t *testing.T, value string) kernel.Weight {
	t.Helper()
	w, err := kernel.NewWeightFromString(value)
	require.NoError(t, err)
	return w
}

func TestNewRate(t *testing.T) {
	t.Run("should create rate with positive amount", func(t *testing.T) {
		r, err := tariff.NewRate(decimal.NewFromInt(1500), "IRR")

		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(1500).Equal(r.Amount()))
		assert.Equal(t, "IRR", r.Currency())
	})

	t.Run("should reject zero and negative amounts", func(t *testing.T) {
		_, err := tariff.NewRate(decimal.Zero, "IRR")
		require.Error(t, err)

		_, err = tariff.NewRate(decimal.NewFromInt(-10), "IRR")
		require.Error(t, err)
	})

	t.Run("should reject empty currency", func(t *testing.T) {
		_, err := tariff.NewRate(decimal.NewFromInt(100), "")

		require.Error(t, err)
	})
}

func TestNewPayoutTier(t *testing.T) {
	t.Run("should create bounded and open-ended tiers", func(t *testing.T) {
		bounded, err := tariff.NewPayoutTier(1, intPtr(10), decimal.NewFromInt(100))
		require.NoError(t, err)
		assert.Equal(t, 1, bounded.MinVisits())
		require.NotNil(t, bounded.MaxVisits())
		assert.Equal(t, 10, *bounded.MaxVisits())

		open, err := tariff.NewPayoutTier(21, nil, decimal.NewFromInt(300))
		require.NoError(t, err)
		assert.Nil(t, open.MaxVisits())
	})

	t.Run("should reject minVisits below one", func(t *testing.T) {
		_, err := tariff.NewPayoutTier(0, nil, decimal.NewFromInt(100))

		require.Error(t, err)
	})

	t.Run("should reject maxVisits below minVisits", func(t *testing.T) {
		_, err := tariff.NewPayoutTier(10, intPtr(5), decimal.NewFromInt(100))

		require.Error(t, err)
	})

	t.Run("should reject negative rate", func(t *testing.T) {
		_, err := tariff.NewPayoutTier(1, nil, decimal.NewFromInt(-1))

		require.Error(t, err)
	})
}

func TestSnapshot_MinimumFor(t *testing.T) {
	m1, err := tariff.NewRangeMinimum("5-10", weight(t, "5"))
	require.NoError(t, err)
	m2, err := tariff.NewRangeMinimum("10-20", weight(t, "10"))
	require.NoError(t, err)
	snapshot := tariff.NewSnapshot(nil, []tariff.RangeMinimum{m1, m2}, nil)

	t.Run("should find minimum for known label", func(t *testing.T) {
		minimum, ok := snapshot.MinimumFor("10-20")

		require.True(t, ok)
		assert.True(t, weight(t, "10").IsEqual(minimum))
	})

	t.Run("should report absence for unknown label", func(t *testing.T) {
		_, ok := snapshot.MinimumFor("20-50")

		assert.False(t, ok)
	})

	t.Run("should report absence when no minimums configured", func(t *testing.T) {
		_, ok := tariff.NewSnapshot(nil, nil, nil).MinimumFor("5-10")

		assert.False(t, ok)
	})
}

func TestSnapshot_DriverRateFor(t *testing.T) {
	t1, err := tariff.NewPayoutTier(1, intPtr(10), decimal.NewFromInt(100))
	require.NoError(t, err)
	t2, err := tariff.NewPayoutTier(11, intPtr(20), decimal.NewFromInt(200))
	require.NoError(t, err)
	t3, err := tariff.NewPayoutTier(21, nil, decimal.NewFromInt(300))
	require.NoError(t, err)
	snapshot := tariff.NewSnapshot(nil, nil, []tariff.PayoutTier{t1, t2, t3})

	tests := []struct {
		name       string
		visitCount int
		want       decimal.Decimal
	}{
		{"first visit hits first tier", 1, decimal.NewFromInt(100)},
		{"tenth visit still first tier", 10, decimal.NewFromInt(100)},
		{"eleventh visit hits second tier", 11, decimal.NewFromInt(200)},
		{"open-ended tier matches high counts", 25, decimal.NewFromInt(300)},
		{"zero visits match nothing", 0, decimal.Zero},
	}
	for _, tt := range tests {
		t.Run("should return rate when "+tt.name, func(t *testing.T) {
			got := snapshot.DriverRateFor(tt.visitCount)

			assert.True(t, tt.want.Equal(got), "want %s, got %s", tt.want, got)
		})
	}

	t.Run("should return zero when no tiers configured", func(t *testing.T) {
		got := tariff.NewSnapshot(nil, nil, nil).DriverRateFor(5)

		assert.True(t, got.IsZero())
	})
}

func TestSnapshot_Rate(t *testing.T) {
	t.Run("should return configured rate", func(t *testing.T) {
		r, err := tariff.NewRate(decimal.NewFromInt(1500), "IRR")
		require.NoError(t, err)
		snapshot := tariff.NewSnapshot(&r, nil, nil)

		got, ok := snapshot.Rate()

		require.True(t, ok)
		assert.Equal(t, "IRR", got.Currency())
	})

	t.Run("should report absence when rate missing", func(t *testing.T) {
		_, ok := tariff.NewSnapshot(nil, nil, nil).Rate()

		assert.False(t, ok)
	})
}
