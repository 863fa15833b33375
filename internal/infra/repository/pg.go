package repository

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgErrCodeUniqueViolation    = "23505"
	pgErrCodeExclusionViolation = "23P01"
)

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

func isPgCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == code
	}
	return false
}
