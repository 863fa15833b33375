package readstore

import (
	"context"

	"villabook/internal/infra"
	"villabook/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
)

type OperatorReadStore struct {
	db *pgxpool.Pool
}

func NewOperatorReadStore(db *pgxpool.Pool) *OperatorReadStore {
	return &OperatorReadStore{db: db}
}

func (s *OperatorReadStore) FindByEmail(ctx context.Context, email string) (*queries.OperatorView, error) {
	var view queries.OperatorView
	err := s.db.QueryRow(ctx,
		`SELECT id, email, role, password_hash FROM operators WHERE email = $1`, email,
	).Scan(&view.ID, &view.Email, &view.Role, &view.PasswordHash)
	if err != nil {
		if isNoRows(err) {
			return nil, infra.WrapRepoErr("operator not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find operator", err)
	}
	return &view, nil
}
