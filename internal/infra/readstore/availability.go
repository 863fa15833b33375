package readstore

import (
	"context"
	"time"

	"villabook/internal/domain/daterange"
	"villabook/internal/infra"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AvailabilityReadStore struct {
	db *pgxpool.Pool
}

func NewAvailabilityReadStore(db *pgxpool.Pool) *AvailabilityReadStore {
	return &AvailabilityReadStore{db: db}
}

// Stays on the unit itself plus whole-property stays, which block every room.
const staysForUnitQuery = `
SELECT r.check_in, r.check_out
FROM reservations r
JOIN units ru ON ru.id = r.unit_id
WHERE r.status = 'confirmed'
  AND (r.unit_id = $1 OR ru.kind = 'property')
ORDER BY r.check_in`

const allStaysQuery = `
SELECT check_in, check_out
FROM reservations
WHERE status = 'confirmed'
ORDER BY check_in`

// Unit-scoped blackouts plus global ones (unit_id IS NULL).
const blackoutsForUnitQuery = `
SELECT start_day, end_day
FROM blackouts
WHERE unit_id = $1 OR unit_id IS NULL
ORDER BY start_day`

const allBlackoutsQuery = `
SELECT start_day, end_day
FROM blackouts
ORDER BY start_day`

func (s *AvailabilityReadStore) StaysForUnit(ctx context.Context, unitID uuid.UUID) ([]daterange.Range, error) {
	return s.queryRanges(ctx, staysForUnitQuery, unitID)
}

func (s *AvailabilityReadStore) AllStays(ctx context.Context) ([]daterange.Range, error) {
	return s.queryRanges(ctx, allStaysQuery)
}

func (s *AvailabilityReadStore) BlackoutsForUnit(ctx context.Context, unitID uuid.UUID) ([]daterange.Range, error) {
	return s.queryRanges(ctx, blackoutsForUnitQuery, unitID)
}

func (s *AvailabilityReadStore) AllBlackouts(ctx context.Context) ([]daterange.Range, error) {
	return s.queryRanges(ctx, allBlackoutsQuery)
}

func (s *AvailabilityReadStore) queryRanges(ctx context.Context, query string, args ...any) ([]daterange.Range, error) {
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query date ranges", err)
	}
	defer rows.Close()

	var ranges []daterange.Range
	for rows.Next() {
		var from, to time.Time
		if err := rows.Scan(&from, &to); err != nil {
			return nil, infra.WrapRepoErr("failed to scan date range", err)
		}
		rng, err := daterange.New(from, to)
		if err != nil {
			return nil, infra.WrapRepoErr("invalid date range stored", err)
		}
		ranges = append(ranges, rng)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read date ranges", err)
	}
	return ranges, nil
}
