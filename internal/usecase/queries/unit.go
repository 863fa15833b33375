package queries

import (
	"context"

	"villabook/internal/infra"

	"github.com/google/uuid"
)

type UnitQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*UnitView, error)
	List(ctx context.Context) ([]*UnitView, error)
}

type unitQueriesImpl struct {
	store UnitReadStore
}

func NewUnitQueries(store UnitReadStore) UnitQueries {
	return &unitQueriesImpl{store: store}
}

func (q *unitQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*UnitView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrUnitNotFound
		}
		return nil, err
	}
	return view, nil
}

func (q *unitQueriesImpl) List(ctx context.Context) ([]*UnitView, error) {
	return q.store.List(ctx)
}
