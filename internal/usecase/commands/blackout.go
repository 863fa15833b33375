package commands

import (
	"context"

	"villabook/internal/domain/daterange"
	"villabook/internal/infra"
	"villabook/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrBlackoutNotFound = errs.New("blackout not found")

type CreateBlackoutInput struct {
	UnitID *uuid.UUID // nil blocks the entire property
	Range  daterange.Range
	Note   string
}

type BlackoutCommands interface {
	Create(ctx context.Context, in CreateBlackoutInput) (uuid.UUID, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type blackoutCommandsImpl struct {
	blackouts BlackoutRepository
	units     UnitRepository
}

func NewBlackoutCommands(blackouts BlackoutRepository, units UnitRepository) BlackoutCommands {
	return &blackoutCommandsImpl{blackouts: blackouts, units: units}
}

func (c *blackoutCommandsImpl) Create(ctx context.Context, in CreateBlackoutInput) (uuid.UUID, error) {
	if in.Range.IsZero() {
		return uuid.Nil, ErrInvalidRange
	}

	if in.UnitID != nil {
		if _, err := c.units.FindByID(ctx, *in.UnitID); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return uuid.Nil, ErrUnitNotFound
			}
			return uuid.Nil, errs.Mark(err, ErrDatabaseOperation)
		}
	}

	id := uuid.New()
	if err := c.blackouts.Create(ctx, id, in.UnitID, in.Range, in.Note); err != nil {
		return uuid.Nil, errs.Mark(err, ErrDatabaseOperation)
	}
	return id, nil
}

func (c *blackoutCommandsImpl) Delete(ctx context.Context, id uuid.UUID) error {
	if err := c.blackouts.Delete(ctx, id); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return ErrBlackoutNotFound
		}
		return errs.Mark(err, ErrDatabaseOperation)
	}
	return nil
}
