package readstore

import (
	"context"
	"time"

	"villabook/internal/domain/daterange"
	"villabook/internal/infra"
	"villabook/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
)

type BlackoutReadStore struct {
	db *pgxpool.Pool
}

func NewBlackoutReadStore(db *pgxpool.Pool) *BlackoutReadStore {
	return &BlackoutReadStore{db: db}
}

func (s *BlackoutReadStore) List(ctx context.Context) ([]*queries.BlackoutView, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, unit_id, start_day, end_day, note, created_at FROM blackouts ORDER BY start_day`)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list blackouts", err)
	}
	defer rows.Close()

	var views []*queries.BlackoutView
	for rows.Next() {
		var (
			view     queries.BlackoutView
			from, to time.Time
		)
		if err := rows.Scan(&view.ID, &view.UnitID, &from, &to, &view.Note, &view.CreatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan blackout", err)
		}
		view.From = from.Format(daterange.DayFormat)
		view.To = to.Format(daterange.DayFormat)
		views = append(views, &view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read blackouts", err)
	}
	return views, nil
}
