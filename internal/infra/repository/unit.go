package repository

import (
	"context"

	"villabook/internal/domain/unit"
	"villabook/internal/infra"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type UnitRepository struct {
	db *pgxpool.Pool
}

func NewUnitRepository(db *pgxpool.Pool) *UnitRepository {
	return &UnitRepository{db: db}
}

const unitByIDQuery = `
SELECT id, name, kind, meal_pricing,
       base_rate_per_night::text, package_rate_per_night::text,
       meal_rate_veg::text, meal_rate_nonveg::text, max_guests
FROM units
WHERE id = $1`

func (r *UnitRepository) FindByID(ctx context.Context, id uuid.UUID) (*unit.Unit, error) {
	var (
		unitID                             uuid.UUID
		name, kind, mealPricing            string
		baseRate, pkgRate, vegRate, nvRate string
		maxGuests                          int
	)

	err := r.db.QueryRow(ctx, unitByIDQuery, id).Scan(
		&unitID, &name, &kind, &mealPricing,
		&baseRate, &pkgRate, &vegRate, &nvRate, &maxGuests,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, infra.WrapRepoErr("unit not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find unit", err)
	}

	rates := make([]decimal.Decimal, 4)
	for i, raw := range []string{baseRate, pkgRate, vegRate, nvRate} {
		d, parseErr := decimal.NewFromString(raw)
		if parseErr != nil {
			return nil, infra.WrapRepoErr("invalid rate stored for unit", parseErr)
		}
		rates[i] = d
	}

	return unit.ReconstructUnit(
		unitID, name, unit.Kind(kind), unit.MealPricing(mealPricing),
		rates[0], rates[1], rates[2], rates[3], maxGuests,
	), nil
}
