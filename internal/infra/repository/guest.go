package repository

import (
	"context"
	"time"

	"villabook/internal/domain/guest"
	"villabook/internal/infra"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type GuestRepository struct {
	db *pgxpool.Pool
}

func NewGuestRepository(db *pgxpool.Pool) *GuestRepository {
	return &GuestRepository{db: db}
}

func (r *GuestRepository) FindByPhone(ctx context.Context, phone string) (*guest.Guest, error) {
	var (
		id                    uuid.UUID
		name, phoneNum, email string
		createdAt             time.Time
	)
	err := r.db.QueryRow(ctx,
		`SELECT id, name, phone, email, created_at FROM guests WHERE phone = $1`, phone,
	).Scan(&id, &name, &phoneNum, &email, &createdAt)
	if err != nil {
		if isNoRows(err) {
			return nil, infra.WrapRepoErr("guest not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find guest", err)
	}
	return guest.ReconstructGuest(id, name, phoneNum, email, createdAt), nil
}

func (r *GuestRepository) Create(ctx context.Context, g *guest.Guest) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO guests (id, name, phone, email) VALUES ($1, $2, $3, $4)`,
		g.ID(), g.Name(), g.Phone(), g.Email(),
	)
	if err != nil {
		if isPgCode(err, pgErrCodeUniqueViolation) {
			return infra.WrapRepoErr("guest phone already registered", err, infra.KindDuplicateKey)
		}
		return infra.WrapRepoErr("failed to create guest", err)
	}
	return nil
}
