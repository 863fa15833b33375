package commands

import (
	"context"

	"villabook/internal/domain/booking"
	"villabook/internal/domain/daterange"
	"villabook/internal/infra"
	"villabook/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrReservationNotFound = errs.New("reservation not found")
	ErrAlreadyStarted      = errs.New("stay has already started")
	ErrInvalidRefundStatus = errs.New("invalid refund status")
	ErrNotCancelled        = errs.New("reservation is not cancelled")
)

type CancelResult struct {
	ReservationID     uuid.UUID       `json:"reservation_id"`
	DaysBeforeCheckin int             `json:"days_before_checkin"`
	RefundPercent     int64           `json:"refund_percent"`
	RefundAmount      decimal.Decimal `json:"refund_amount"`
	RefundStatus      string          `json:"refund_status"`
}

type CancellationCommands interface {
	// Cancel is idempotent: cancelling an already-cancelled reservation
	// returns the existing cancellation record without a second transition.
	Cancel(ctx context.Context, id uuid.UUID, by, reason string) (*CancelResult, error)
	SetRefundStatus(ctx context.Context, id uuid.UUID, status string) error
}

type cancellationCommandsImpl struct {
	reservations ReservationRepository
	notifier     Notifier
	tiers        []booking.RefundTier
	clock        Clock
}

func NewCancellationCommands(
	reservations ReservationRepository,
	notifier Notifier,
	clock Clock,
) CancellationCommands {
	return &cancellationCommandsImpl{
		reservations: reservations,
		notifier:     notifier,
		tiers:        booking.DefaultRefundTiers,
		clock:        clock,
	}
}

func (c *cancellationCommandsImpl) Cancel(ctx context.Context, id uuid.UUID, by, reason string) (*CancelResult, error) {
	res, err := c.reservations.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperation)
	}

	wasCancelled := res.IsCancelled()

	cancellation, err := res.Cancel(c.clock.Today(), by, reason, c.tiers)
	if err != nil {
		if errs.Is(err, booking.ErrAlreadyStarted) {
			return nil, ErrAlreadyStarted
		}
		return nil, err
	}

	if !wasCancelled {
		if err := c.reservations.SaveCancellation(ctx, res); err != nil {
			return nil, errs.Mark(err, ErrDatabaseOperation)
		}

		c.notifier.Notify(ctx, "booking.cancelled", map[string]any{
			"reservation_id":      res.ID(),
			"unit_id":             res.UnitID(),
			"check_in":            res.Stay().From().Format(daterange.DayFormat),
			"days_before_checkin": cancellation.DaysBeforeCheckin,
			"refund_percent":      cancellation.RefundPercent,
			"refund_amount":       cancellation.RefundAmount,
			"reason":              reason,
		})
	}

	return &CancelResult{
		ReservationID:     res.ID(),
		DaysBeforeCheckin: cancellation.DaysBeforeCheckin,
		RefundPercent:     cancellation.RefundPercent,
		RefundAmount:      cancellation.RefundAmount,
		RefundStatus:      cancellation.RefundStatus.String(),
	}, nil
}

func (c *cancellationCommandsImpl) SetRefundStatus(ctx context.Context, id uuid.UUID, status string) error {
	refundStatus := booking.RefundStatus(status)
	if !refundStatus.IsValid() {
		return ErrInvalidRefundStatus
	}

	res, err := c.reservations.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return ErrReservationNotFound
		}
		return errs.Mark(err, ErrDatabaseOperation)
	}

	if err := res.UpdateRefundStatus(refundStatus); err != nil {
		if errs.Is(err, booking.ErrRefundTransitionInvalid) {
			return errs.Mark(err, ErrInvalidRefundStatus)
		}
		return errs.Mark(err, ErrNotCancelled)
	}

	if err := c.reservations.UpdateRefundStatus(ctx, id, refundStatus); err != nil {
		return errs.Mark(err, ErrDatabaseOperation)
	}
	return nil
}
