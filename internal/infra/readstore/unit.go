package readstore

import (
	"context"

	"villabook/internal/infra"
	"villabook/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type UnitReadStore struct {
	db *pgxpool.Pool
}

func NewUnitReadStore(db *pgxpool.Pool) *UnitReadStore {
	return &UnitReadStore{db: db}
}

const unitViewColumns = `
    id, name, kind, meal_pricing,
    base_rate_per_night::text, package_rate_per_night::text,
    meal_rate_veg::text, meal_rate_nonveg::text, max_guests`

func (s *UnitReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.UnitView, error) {
	row := s.db.QueryRow(ctx, `SELECT`+unitViewColumns+` FROM units WHERE id = $1`, id)
	view, err := scanUnitView(row)
	if err != nil {
		if isNoRows(err) {
			return nil, infra.WrapRepoErr("unit not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find unit", err)
	}
	return view, nil
}

func (s *UnitReadStore) List(ctx context.Context) ([]*queries.UnitView, error) {
	rows, err := s.db.Query(ctx, `SELECT`+unitViewColumns+` FROM units ORDER BY kind DESC, name`)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list units", err)
	}
	defer rows.Close()

	var views []*queries.UnitView
	for rows.Next() {
		view, err := scanUnitView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan unit", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read units", err)
	}
	return views, nil
}

func scanUnitView(row pgx.Row) (*queries.UnitView, error) {
	var (
		view                               queries.UnitView
		baseRate, pkgRate, vegRate, nvRate string
	)
	err := row.Scan(
		&view.ID, &view.Name, &view.Kind, &view.MealPricing,
		&baseRate, &pkgRate, &vegRate, &nvRate, &view.MaxGuests,
	)
	if err != nil {
		return nil, err
	}

	for _, bind := range []struct {
		raw string
		dst *decimal.Decimal
	}{
		{baseRate, &view.BaseRatePerNight},
		{pkgRate, &view.PackageRatePerNight},
		{vegRate, &view.MealRateVeg},
		{nvRate, &view.MealRateNonVeg},
	} {
		d, parseErr := decimal.NewFromString(bind.raw)
		if parseErr != nil {
			return nil, parseErr
		}
		*bind.dst = d
	}
	return &view, nil
}
