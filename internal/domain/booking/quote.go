package booking

import (
	"errors"

	"villabook/internal/domain/daterange"
	"villabook/internal/domain/unit"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidRange     = errors.New("check-out must be after check-in")
	ErrCapacityExceeded = errors.New("guest count exceeds unit capacity")
)

// Quote is a computed, not-yet-persisted price breakdown for a candidate
// stay. GrandTotal = RoomTotal + MealTotal + TaxAmount; tax is an additive
// step, never folded into the per-night rate.
type Quote struct {
	Nights     int
	PerNight   decimal.Decimal
	RoomTotal  decimal.Decimal
	MealTotal  decimal.Decimal
	TaxAmount  decimal.Decimal
	GrandTotal decimal.Decimal
	Currency   string
}

// Calculator prices stays. TaxPercent of zero disables the tax step.
type Calculator struct {
	TaxPercent decimal.Decimal
	Currency   string
}

func NewCalculator(taxPercent decimal.Decimal, currency string) *Calculator {
	return &Calculator{TaxPercent: taxPercent, Currency: currency}
}

// Quote validates the inputs and computes the price breakdown for a stay on
// the given unit. strictMeals requires one plate per guest (operator-created
// stays); itemized per-guest pricing is strict regardless.
func (c *Calculator) Quote(
	u *unit.Unit,
	stay daterange.Range,
	comp GuestComposition,
	meal MealSelection,
	strictMeals bool,
) (Quote, error) {
	if !stay.To().After(stay.From()) {
		return Quote{}, ErrInvalidRange
	}
	if comp.Adults < 1 {
		return Quote{}, ErrNoAdults
	}
	if comp.Total() > u.MaxGuests() {
		return Quote{}, ErrCapacityExceeded
	}

	strict := strictMeals || u.MealPricing() == unit.MealPricingPerGuest
	if err := meal.Validate(comp.Total(), strict); err != nil {
		return Quote{}, err
	}

	nights := decimal.NewFromInt(int64(stay.Nights()))

	var perNight, roomTotal, mealTotal decimal.Decimal
	switch u.MealPricing() {
	case unit.MealPricingPackage:
		perNight = u.BaseRatePerNight()
		if meal.WantsMeal && u.PackageRatePerNight().IsPositive() {
			perNight = u.PackageRatePerNight()
		}
		roomTotal = perNight.Mul(nights)
		mealTotal = decimal.Zero
	default: // unit.MealPricingPerGuest
		perNight = u.BaseRatePerNight()
		roomTotal = perNight.Mul(nights)
		mealTotal = decimal.Zero
		if meal.WantsMeal {
			perDay := u.MealRateVeg().Mul(decimal.NewFromInt(int64(meal.VegCount))).
				Add(u.MealRateNonVeg().Mul(decimal.NewFromInt(int64(meal.NonVegCount))))
			mealTotal = perDay.Mul(nights)
		}
	}

	subtotal := roomTotal.Add(mealTotal)
	tax := decimal.Zero
	if c.TaxPercent.IsPositive() {
		tax = subtotal.Mul(c.TaxPercent).Div(decimal.NewFromInt(100)).Round(2)
	}

	return Quote{
		Nights:     stay.Nights(),
		PerNight:   perNight,
		RoomTotal:  roomTotal,
		MealTotal:  mealTotal,
		TaxAmount:  tax,
		GrandTotal: subtotal.Add(tax),
		Currency:   c.Currency,
	}, nil
}
