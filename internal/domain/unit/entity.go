package unit

import (
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidName     = errors.New("unit name is required")
	ErrInvalidCapacity = errors.New("unit capacity must be positive")
	ErrNegativeRate    = errors.New("unit rates cannot be negative")
)

// Kind distinguishes an individual room from the whole-property villa mode.
// A confirmed villa stay blocks every room and vice versa.
type Kind string

const (
	KindRoom     Kind = "room"
	KindProperty Kind = "property"
)

func (k Kind) IsValid() bool {
	return k == KindRoom || k == KindProperty
}

// MealPricing selects how meals are priced for a unit. Package mode charges a
// flat meals-included per-night rate; per-guest mode itemizes veg/non-veg
// plates per night on top of the base room rate.
type MealPricing string

const (
	MealPricingPackage  MealPricing = "package"
	MealPricingPerGuest MealPricing = "per_guest"
)

func (m MealPricing) IsValid() bool {
	return m == MealPricingPackage || m == MealPricingPerGuest
}

type Unit struct {
	id                  uuid.UUID
	name                string
	kind                Kind
	mealPricing         MealPricing
	baseRatePerNight    decimal.Decimal
	packageRatePerNight decimal.Decimal
	mealRateVeg         decimal.Decimal
	mealRateNonVeg      decimal.Decimal
	maxGuests           int
}

func NewUnit(
	name string,
	kind Kind,
	mealPricing MealPricing,
	baseRatePerNight decimal.Decimal,
	packageRatePerNight decimal.Decimal,
	mealRateVeg decimal.Decimal,
	mealRateNonVeg decimal.Decimal,
	maxGuests int,
) (*Unit, error) {
	if name == "" {
		return nil, ErrInvalidName
	}
	if maxGuests <= 0 {
		return nil, ErrInvalidCapacity
	}
	for _, rate := range []decimal.Decimal{baseRatePerNight, packageRatePerNight, mealRateVeg, mealRateNonVeg} {
		if rate.IsNegative() {
			return nil, ErrNegativeRate
		}
	}

	return &Unit{
		id:                  uuid.New(),
		name:                name,
		kind:                kind,
		mealPricing:         mealPricing,
		baseRatePerNight:    baseRatePerNight,
		packageRatePerNight: packageRatePerNight,
		mealRateVeg:         mealRateVeg,
		mealRateNonVeg:      mealRateNonVeg,
		maxGuests:           maxGuests,
	}, nil
}

func ReconstructUnit(
	id uuid.UUID,
	name string,
	kind Kind,
	mealPricing MealPricing,
	baseRatePerNight decimal.Decimal,
	packageRatePerNight decimal.Decimal,
	mealRateVeg decimal.Decimal,
	mealRateNonVeg decimal.Decimal,
	maxGuests int,
) *Unit {
	return &Unit{
		id:                  id,
		name:                name,
		kind:                kind,
		mealPricing:         mealPricing,
		baseRatePerNight:    baseRatePerNight,
		packageRatePerNight: packageRatePerNight,
		mealRateVeg:         mealRateVeg,
		mealRateNonVeg:      mealRateNonVeg,
		maxGuests:           maxGuests,
	}
}

func (u *Unit) ID() uuid.UUID                        { return u.id }
func (u *Unit) Name() string                         { return u.name }
func (u *Unit) Kind() Kind                           { return u.kind }
func (u *Unit) MealPricing() MealPricing             { return u.mealPricing }
func (u *Unit) BaseRatePerNight() decimal.Decimal    { return u.baseRatePerNight }
func (u *Unit) PackageRatePerNight() decimal.Decimal { return u.packageRatePerNight }
func (u *Unit) MealRateVeg() decimal.Decimal         { return u.mealRateVeg }
func (u *Unit) MealRateNonVeg() decimal.Decimal      { return u.mealRateNonVeg }
func (u *Unit) MaxGuests() int                       { return u.maxGuests }

// IsWholeProperty reports whether a confirmed stay on this unit blocks the
// entire property.
func (u *Unit) IsWholeProperty() bool {
	return u.kind == KindProperty
}
