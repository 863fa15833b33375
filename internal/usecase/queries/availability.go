package queries

import (
	"context"

	"villabook/internal/domain/daterange"
	"villabook/internal/infra"
	"villabook/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrUnitNotFound = errs.New("unit not found")
)

// AvailabilityReadStore returns raw, unmerged ranges from the persistence
// layer. StaysForUnit includes whole-property stays, which block every room.
// BlackoutsForUnit includes global blackouts.
type AvailabilityReadStore interface {
	StaysForUnit(ctx context.Context, unitID uuid.UUID) ([]daterange.Range, error)
	AllStays(ctx context.Context) ([]daterange.Range, error)
	BlackoutsForUnit(ctx context.Context, unitID uuid.UUID) ([]daterange.Range, error)
	AllBlackouts(ctx context.Context) ([]daterange.Range, error)
}

type UnitReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*UnitView, error)
	List(ctx context.Context) ([]*UnitView, error)
}

// AvailabilityQueries aggregates confirmed stays and blackouts into a merged,
// sorted set of unavailable intervals. Pure read: a unit with nothing booked
// returns an empty set. Past days are excluded at booking validation, not
// here, so historical occupancy views stay intact.
type AvailabilityQueries interface {
	UnavailableForUnit(ctx context.Context, unitID uuid.UUID) ([]daterange.Range, error)
	UnavailableForProperty(ctx context.Context) ([]daterange.Range, error)
}

type availabilityQueriesImpl struct {
	store AvailabilityReadStore
	units UnitReadStore
}

func NewAvailabilityQueries(store AvailabilityReadStore, units UnitReadStore) AvailabilityQueries {
	return &availabilityQueriesImpl{store: store, units: units}
}

func (q *availabilityQueriesImpl) UnavailableForUnit(ctx context.Context, unitID uuid.UUID) ([]daterange.Range, error) {
	unitView, err := q.units.FindByID(ctx, unitID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrUnitNotFound
		}
		return nil, err
	}

	// A stay on the whole-property unit conflicts with everything, so its
	// unavailable view is the global one.
	if unitView.Kind == "property" {
		return q.UnavailableForProperty(ctx)
	}

	stays, err := q.store.StaysForUnit(ctx, unitID)
	if err != nil {
		return nil, err
	}
	blackouts, err := q.store.BlackoutsForUnit(ctx, unitID)
	if err != nil {
		return nil, err
	}

	return daterange.Merge(append(stays, blackouts...)), nil
}

func (q *availabilityQueriesImpl) UnavailableForProperty(ctx context.Context) ([]daterange.Range, error) {
	stays, err := q.store.AllStays(ctx)
	if err != nil {
		return nil, err
	}
	blackouts, err := q.store.AllBlackouts(ctx)
	if err != nil {
		return nil, err
	}

	return daterange.Merge(append(stays, blackouts...)), nil
}
