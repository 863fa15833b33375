//go:build unit

package booking_test

import (
	"testing"

	"villabook/internal/domain/booking"
	"villabook/internal/domain/daterange"
	"villabook/internal/domain/unit"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func stay(from, to string) daterange.Range {
	r, err := daterange.Parse(from, to)
	if err != nil {
		panic(err)
	}
	return r
}

func perGuestRoom() *unit.Unit {
	return unit.ReconstructUnit(
		uuid.New(), "Room A", unit.KindRoom, unit.MealPricingPerGuest,
		d("5000"), decimal.Zero, d("350"), d("450"), 4,
	)
}

func packageVilla() *unit.Unit {
	return unit.ReconstructUnit(
		uuid.New(), "Entire Villa", unit.KindProperty, unit.MealPricingPackage,
		d("30000"), d("36000"), decimal.Zero, decimal.Zero, 18,
	)
}

func comp(adults, children int) booking.GuestComposition {
	c, err := booking.NewGuestComposition(adults, children)
	if err != nil {
		panic(err)
	}
	return c
}

func TestCalculatorQuote_PerGuest(t *testing.T) {
	calc := booking.NewCalculator(decimal.Zero, "INR")

	t.Run("room only", func(t *testing.T) {
		q, err := calc.Quote(perGuestRoom(), stay("2026-10-01", "2026-10-04"), comp(2, 0),
			booking.MealSelection{}, false)
		require.NoError(t, err)

		assert.Equal(t, 3, q.Nights)
		assert.True(t, q.PerNight.Equal(d("5000")))
		assert.True(t, q.RoomTotal.Equal(d("15000")))
		assert.True(t, q.MealTotal.IsZero())
		assert.True(t, q.GrandTotal.Equal(d("15000")))
		assert.Equal(t, "INR", q.Currency)
	})

	t.Run("itemized meals", func(t *testing.T) {
		meal := booking.MealSelection{WantsMeal: true, VegCount: 2, NonVegCount: 1}
		q, err := calc.Quote(perGuestRoom(), stay("2026-10-01", "2026-10-04"), comp(2, 1), meal, false)
		require.NoError(t, err)

		// (2*350 + 1*450) * 3 nights
		assert.True(t, q.MealTotal.Equal(d("3450")))
		assert.True(t, q.GrandTotal.Equal(d("18450")))
	})

	t.Run("plates must equal guests", func(t *testing.T) {
		meal := booking.MealSelection{WantsMeal: true, VegCount: 2, NonVegCount: 2}
		_, err := calc.Quote(perGuestRoom(), stay("2026-10-01", "2026-10-04"), comp(2, 1), meal, false)
		assert.ErrorIs(t, err, booking.ErrMealCompositionInvalid)
	})
}

func TestCalculatorQuote_Package(t *testing.T) {
	calc := booking.NewCalculator(decimal.Zero, "INR")

	t.Run("meals switch the nightly rate", func(t *testing.T) {
		meal := booking.MealSelection{WantsMeal: true, VegCount: 4, NonVegCount: 2}
		q, err := calc.Quote(packageVilla(), stay("2026-10-01", "2026-10-03"), comp(4, 2), meal, false)
		require.NoError(t, err)

		assert.True(t, q.PerNight.Equal(d("36000")))
		assert.True(t, q.RoomTotal.Equal(d("72000")))
		assert.True(t, q.MealTotal.IsZero())
	})

	t.Run("no meals uses base rate", func(t *testing.T) {
		q, err := calc.Quote(packageVilla(), stay("2026-10-01", "2026-10-03"), comp(4, 2),
			booking.MealSelection{}, false)
		require.NoError(t, err)
		assert.True(t, q.PerNight.Equal(d("30000")))
	})

	t.Run("package plates may be fewer than guests", func(t *testing.T) {
		meal := booking.MealSelection{WantsMeal: true, VegCount: 2, NonVegCount: 0}
		_, err := calc.Quote(packageVilla(), stay("2026-10-01", "2026-10-03"), comp(4, 2), meal, false)
		assert.NoError(t, err)
	})

	t.Run("strict mode requires a plate per guest", func(t *testing.T) {
		meal := booking.MealSelection{WantsMeal: true, VegCount: 2, NonVegCount: 0}
		_, err := calc.Quote(packageVilla(), stay("2026-10-01", "2026-10-03"), comp(4, 2), meal, true)
		assert.ErrorIs(t, err, booking.ErrMealCompositionInvalid)
	})
}

func TestCalculatorQuote_Tax(t *testing.T) {
	calc := booking.NewCalculator(d("12"), "INR")

	meal := booking.MealSelection{WantsMeal: true, VegCount: 2, NonVegCount: 0}
	q, err := calc.Quote(perGuestRoom(), stay("2026-10-01", "2026-10-03"), comp(2, 0), meal, false)
	require.NoError(t, err)

	// Tax is additive over room + meals, never folded into the rate.
	subtotal := q.RoomTotal.Add(q.MealTotal)
	assert.True(t, q.TaxAmount.Equal(subtotal.Mul(d("12")).Div(d("100")).Round(2)))
	assert.True(t, q.GrandTotal.Equal(subtotal.Add(q.TaxAmount)))
}

func TestCalculatorQuote_Validation(t *testing.T) {
	calc := booking.NewCalculator(decimal.Zero, "INR")

	tests := []struct {
		name  string
		stay  daterange.Range
		comp  booking.GuestComposition
		errIs error
	}{
		{
			name:  "checkout must be after checkin",
			stay:  stay("2026-10-01", "2026-10-01"),
			comp:  comp(2, 0),
			errIs: booking.ErrInvalidRange,
		},
		{
			name:  "capacity exceeded",
			stay:  stay("2026-10-01", "2026-10-03"),
			comp:  comp(3, 2),
			errIs: booking.ErrCapacityExceeded,
		},
		{
			name:  "capacity boundary ok",
			stay:  stay("2026-10-01", "2026-10-03"),
			comp:  comp(2, 2),
			errIs: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := calc.Quote(perGuestRoom(), tt.stay, tt.comp, booking.MealSelection{}, false)
			if tt.errIs != nil {
				assert.ErrorIs(t, err, tt.errIs)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
