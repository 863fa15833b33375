package queries

import (
	"context"

	"villabook/internal/infra"
	"villabook/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrReservationNotFound = errs.New("reservation not found")

type ReservationReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	List(ctx context.Context, limit int) ([]*ReservationView, error)
}

type BlackoutReadStore interface {
	List(ctx context.Context) ([]*BlackoutView, error)
}

type BookingQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	List(ctx context.Context, limit int) ([]*ReservationView, error)
	ListBlackouts(ctx context.Context) ([]*BlackoutView, error)
}

type bookingQueriesImpl struct {
	reservations ReservationReadStore
	blackouts    BlackoutReadStore
}

func NewBookingQueries(reservations ReservationReadStore, blackouts BlackoutReadStore) BookingQueries {
	return &bookingQueriesImpl{reservations: reservations, blackouts: blackouts}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*ReservationView, error) {
	view, err := q.reservations.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	return view, nil
}

func (q *bookingQueriesImpl) List(ctx context.Context, limit int) ([]*ReservationView, error) {
	if limit <= 0 {
		limit = 50
	}
	return q.reservations.List(ctx, limit)
}

func (q *bookingQueriesImpl) ListBlackouts(ctx context.Context) ([]*BlackoutView, error) {
	return q.blackouts.List(ctx)
}
