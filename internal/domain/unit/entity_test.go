//go:build unit

package unit_test

import (
	"testing"

	"villabook/internal/domain/unit"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUnit(t *testing.T) {
	rate := decimal.RequireFromString("5000")

	t.Run("valid room", func(t *testing.T) {
		u, err := unit.NewUnit("Room A", unit.KindRoom, unit.MealPricingPerGuest,
			rate, decimal.Zero, decimal.RequireFromString("350"), decimal.RequireFromString("450"), 4)
		require.NoError(t, err)
		assert.NotEqual(t, [16]byte{}, [16]byte(u.ID()))
		assert.Equal(t, "Room A", u.Name())
		assert.False(t, u.IsWholeProperty())
		assert.Equal(t, 4, u.MaxGuests())
	})

	t.Run("property unit blocks the whole villa", func(t *testing.T) {
		u, err := unit.NewUnit("Entire Villa", unit.KindProperty, unit.MealPricingPackage,
			decimal.RequireFromString("30000"), decimal.RequireFromString("36000"), decimal.Zero, decimal.Zero, 18)
		require.NoError(t, err)
		assert.True(t, u.IsWholeProperty())
	})

	t.Run("empty name", func(t *testing.T) {
		_, err := unit.NewUnit("", unit.KindRoom, unit.MealPricingPerGuest,
			rate, decimal.Zero, decimal.Zero, decimal.Zero, 4)
		assert.ErrorIs(t, err, unit.ErrInvalidName)
	})

	t.Run("non-positive capacity", func(t *testing.T) {
		_, err := unit.NewUnit("Room A", unit.KindRoom, unit.MealPricingPerGuest,
			rate, decimal.Zero, decimal.Zero, decimal.Zero, 0)
		assert.ErrorIs(t, err, unit.ErrInvalidCapacity)
	})

	t.Run("negative rate", func(t *testing.T) {
		_, err := unit.NewUnit("Room A", unit.KindRoom, unit.MealPricingPerGuest,
			decimal.RequireFromString("-1"), decimal.Zero, decimal.Zero, decimal.Zero, 4)
		assert.ErrorIs(t, err, unit.ErrNegativeRate)
	})
}
