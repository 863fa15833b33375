package booking

import (
	"errors"
	"time"

	"villabook/internal/domain/daterange"

	"github.com/google/uuid"
)

var (
	ErrAlreadyStarted          = errors.New("stay has already started")
	ErrNotConfirmed            = errors.New("reservation is not confirmed")
	ErrNotCancelled            = errors.New("reservation is not cancelled")
	ErrRefundTransitionInvalid = errors.New("refund status can only progress from pending to approved or rejected")
)

// Reservation is the durable booking record. It is created exactly once, at
// the Confirmed transition, with its payment attestation attached; Cancelled
// is the only other reachable state and is terminal. Deletion is not
// supported.
type Reservation struct {
	id           uuid.UUID
	unitID       uuid.UUID
	stay         daterange.Range
	nights       int
	guests       GuestComposition
	meal         MealSelection
	quote        Quote
	contact      Contact
	guestID      *uuid.UUID
	attestation  PaymentAttestation
	status       Status
	cancellation *Cancellation
	createdAt    time.Time
	updatedAt    time.Time
}

// NewConfirmed builds a confirmed reservation from a verified quote and
// attestation. Availability and attestation checks happen before this is
// called; persistence-level conflict arbitration happens after.
func NewConfirmed(
	unitID uuid.UUID,
	stay daterange.Range,
	guests GuestComposition,
	meal MealSelection,
	quote Quote,
	contact Contact,
	guestID *uuid.UUID,
	attestation PaymentAttestation,
) *Reservation {
	return &Reservation{
		id:          uuid.New(),
		unitID:      unitID,
		stay:        stay,
		nights:      quote.Nights,
		guests:      guests,
		meal:        meal,
		quote:       quote,
		contact:     contact,
		guestID:     guestID,
		attestation: attestation,
		status:      StatusConfirmed,
	}
}

func Reconstruct(
	id, unitID uuid.UUID,
	stay daterange.Range,
	nights int,
	guests GuestComposition,
	meal MealSelection,
	quote Quote,
	contact Contact,
	guestID *uuid.UUID,
	attestation PaymentAttestation,
	status Status,
	cancellation *Cancellation,
	createdAt, updatedAt time.Time,
) *Reservation {
	return &Reservation{
		id:           id,
		unitID:       unitID,
		stay:         stay,
		nights:       nights,
		guests:       guests,
		meal:         meal,
		quote:        quote,
		contact:      contact,
		guestID:      guestID,
		attestation:  attestation,
		status:       status,
		cancellation: cancellation,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

// Cancel transitions a confirmed reservation to Cancelled and stamps the
// audit record. A stay that has already started cannot be cancelled.
// Cancelling an already-cancelled reservation is idempotent: the existing
// record is returned unchanged so retries are safe.
func (r *Reservation) Cancel(today time.Time, by, reason string, tiers []RefundTier) (*Cancellation, error) {
	if r.status == StatusCancelled {
		return r.cancellation, nil
	}
	if r.status != StatusConfirmed {
		return nil, ErrNotConfirmed
	}

	days := daterange.DaysUntil(today, r.stay.From())
	if days <= 0 {
		return nil, ErrAlreadyStarted
	}

	percent := RefundPercent(tiers, days)
	refundStatus := RefundRejected
	if percent > 0 {
		refundStatus = RefundPending
	}

	r.cancellation = &Cancellation{
		At:                today,
		By:                by,
		Reason:            reason,
		DaysBeforeCheckin: days,
		RefundPercent:     percent,
		RefundAmount:      RefundAmount(r.quote.GrandTotal, percent),
		RefundStatus:      refundStatus,
	}
	r.status = StatusCancelled
	return r.cancellation, nil
}

// UpdateRefundStatus progresses the refund of a cancelled reservation. This
// is the only mutation permitted after cancellation, and it moves in one
// direction: a pending refund settles as approved or rejected, and a settled
// refund never reopens.
func (r *Reservation) UpdateRefundStatus(status RefundStatus) error {
	if r.status != StatusCancelled || r.cancellation == nil {
		return ErrNotCancelled
	}
	if status != RefundApproved && status != RefundRejected {
		return ErrRefundTransitionInvalid
	}
	if r.cancellation.RefundStatus != RefundPending {
		return ErrRefundTransitionInvalid
	}
	r.cancellation.RefundStatus = status
	return nil
}

func (r *Reservation) IsConfirmed() bool { return r.status == StatusConfirmed }
func (r *Reservation) IsCancelled() bool { return r.status == StatusCancelled }

func (r *Reservation) ID() uuid.UUID                   { return r.id }
func (r *Reservation) UnitID() uuid.UUID               { return r.unitID }
func (r *Reservation) Stay() daterange.Range           { return r.stay }
func (r *Reservation) Nights() int                     { return r.nights }
func (r *Reservation) Guests() GuestComposition        { return r.guests }
func (r *Reservation) Meal() MealSelection             { return r.meal }
func (r *Reservation) Quote() Quote                    { return r.quote }
func (r *Reservation) Contact() Contact                { return r.contact }
func (r *Reservation) GuestID() *uuid.UUID             { return r.guestID }
func (r *Reservation) Attestation() PaymentAttestation { return r.attestation }
func (r *Reservation) Status() Status                  { return r.status }
func (r *Reservation) Cancellation() *Cancellation     { return r.cancellation }
func (r *Reservation) CreatedAt() time.Time            { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time            { return r.updatedAt }
