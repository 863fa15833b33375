package repository

import (
	"context"

	"villabook/internal/domain/daterange"
	"villabook/internal/infra"
	"villabook/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BlackoutRepository struct {
	db *pgxpool.Pool
}

func NewBlackoutRepository(db *pgxpool.Pool) *BlackoutRepository {
	return &BlackoutRepository{db: db}
}

func (r *BlackoutRepository) Create(ctx context.Context, id uuid.UUID, unitID *uuid.UUID, rng daterange.Range, note string) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO blackouts (id, unit_id, start_day, end_day, note) VALUES ($1, $2, $3, $4, $5)`,
		id, unitID, rng.From(), rng.To(), note,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create blackout", err)
	}
	return nil
}

func (r *BlackoutRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM blackouts WHERE id = $1`, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete blackout", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("blackout not found", errs.New("no rows deleted"), infra.KindNotFound)
	}
	return nil
}
