package repository

import (
	"context"
	"time"

	"villabook/internal/domain/booking"
	"villabook/internal/domain/daterange"
	"villabook/internal/infra"
	"villabook/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type ReservationRepository struct {
	db *pgxpool.Pool
}

func NewReservationRepository(db *pgxpool.Pool) *ReservationRepository {
	return &ReservationRepository{db: db}
}

// conflictExistsQuery finds a confirmed stay that overlaps the candidate
// range and competes for the same physical space. A whole-property stay
// conflicts with every unit, a candidate whole-property stay conflicts with
// every confirmed stay, and otherwise only the same unit conflicts.
const conflictExistsQuery = `
SELECT EXISTS (
    SELECT 1
    FROM reservations r
    JOIN units ru ON ru.id = r.unit_id
    WHERE r.status = 'confirmed'
      AND daterange(r.check_in, r.check_out, '[]') && daterange($2::date, $3::date, '[]')
      AND (r.unit_id = $1 OR ru.kind = 'property' OR $4::boolean)
)`

const blackoutExistsQuery = `
SELECT EXISTS (
    SELECT 1
    FROM blackouts b
    WHERE daterange(b.start_day, b.end_day, '[]') && daterange($2::date, $3::date, '[]')
      AND (b.unit_id IS NULL OR b.unit_id = $1 OR $4::boolean)
)`

const insertReservationQuery = `
INSERT INTO reservations (
    id, unit_id, check_in, check_out, nights,
    adults, children, wants_meal, veg_count, nonveg_count,
    per_night, room_total, meal_total, tax_amount, grand_total, currency,
    contact_name, contact_email, contact_phone, guest_id,
    provider, order_ref, payment_ref, signature, status
) VALUES (
    $1, $2, $3, $4, $5,
    $6, $7, $8, $9, $10,
    $11, $12, $13, $14, $15, $16,
    $17, $18, $19, $20,
    $21, $22, $23, $24, $25
)`

// CreateConfirmed inserts the reservation inside a transaction guarded by an
// advisory lock. The lock serializes cross-unit arbitration (a villa stay
// must see in-flight room stays and vice versa), which the per-unit exclusion
// constraint alone cannot express; the constraint remains the backstop for
// same-unit races.
func (r *ReservationRepository) CreateConfirmed(ctx context.Context, res *booking.Reservation) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return infra.WrapRepoErr("failed to begin transaction", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext('villabook:reservations'))`); err != nil {
		return infra.WrapRepoErr("failed to take reservation lock", err)
	}

	var wholeProperty bool
	err = tx.QueryRow(ctx, `SELECT kind = 'property' FROM units WHERE id = $1`, res.UnitID()).Scan(&wholeProperty)
	if err != nil {
		if isNoRows(err) {
			return infra.WrapRepoErr("unit not found", err, infra.KindNotFound)
		}
		return infra.WrapRepoErr("failed to load unit kind", err)
	}

	checkIn := res.Stay().From()
	checkOut := res.Stay().To()

	var conflict bool
	err = tx.QueryRow(ctx, conflictExistsQuery, res.UnitID(), checkIn, checkOut, wholeProperty).Scan(&conflict)
	if err != nil {
		return infra.WrapRepoErr("failed to check stay conflicts", err)
	}
	if !conflict {
		err = tx.QueryRow(ctx, blackoutExistsQuery, res.UnitID(), checkIn, checkOut, wholeProperty).Scan(&conflict)
		if err != nil {
			return infra.WrapRepoErr("failed to check blackouts", err)
		}
	}
	if conflict {
		return infra.WrapRepoErr("stay overlaps an existing booking or blackout",
			errs.New("reservation conflict"), infra.KindConflict)
	}

	att := res.Attestation()
	q := res.Quote()
	_, err = tx.Exec(ctx, insertReservationQuery,
		res.ID(), res.UnitID(), checkIn, checkOut, res.Nights(),
		res.Guests().Adults, res.Guests().Children,
		res.Meal().WantsMeal, res.Meal().VegCount, res.Meal().NonVegCount,
		q.PerNight, q.RoomTotal, q.MealTotal, q.TaxAmount, q.GrandTotal, q.Currency,
		res.Contact().Name, res.Contact().Email, res.Contact().Phone, res.GuestID(),
		att.Provider, att.OrderRef, att.PaymentRef, att.Signature, string(res.Status()),
	)
	if err != nil {
		switch {
		case isPgCode(err, pgErrCodeExclusionViolation):
			return infra.WrapRepoErr("stay overlaps a confirmed booking", err, infra.KindConflict)
		case isPgCode(err, pgErrCodeUniqueViolation):
			return infra.WrapRepoErr("order already confirmed", err, infra.KindDuplicateKey)
		default:
			return infra.WrapRepoErr("failed to insert reservation", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return infra.WrapRepoErr("failed to commit reservation", err)
	}
	return nil
}

const reservationColumns = `
    id, unit_id, check_in, check_out, nights,
    adults, children, wants_meal, veg_count, nonveg_count,
    per_night::text, room_total::text, meal_total::text, tax_amount::text, grand_total::text, currency,
    contact_name, contact_email, contact_phone, guest_id,
    provider, order_ref, payment_ref, signature, status,
    cancelled_at, cancelled_by, cancel_reason, days_before_checkin,
    refund_percent, refund_amount::text, refund_status,
    created_at, updated_at`

func (r *ReservationRepository) FindByID(ctx context.Context, id uuid.UUID) (*booking.Reservation, error) {
	row := r.db.QueryRow(ctx, `SELECT`+reservationColumns+` FROM reservations WHERE id = $1`, id)
	return scanReservation(row)
}

func (r *ReservationRepository) FindByOrderRef(ctx context.Context, orderRef string) (*booking.Reservation, error) {
	row := r.db.QueryRow(ctx, `SELECT`+reservationColumns+` FROM reservations WHERE order_ref = $1`, orderRef)
	return scanReservation(row)
}

func scanReservation(row pgx.Row) (*booking.Reservation, error) {
	var (
		id, unitID                                uuid.UUID
		checkIn, checkOut                         time.Time
		nights, adults, children                  int
		wantsMeal                                 bool
		vegCount, nonVegCount                     int
		perNight, roomTotal, mealTotal            string
		taxAmount, grandTotal                     string
		currency                                  string
		contactName, contactEmail, contactPhone   string
		guestID                                   *uuid.UUID
		provider, orderRef, paymentRef, signature string
		status                                    string
		cancelledAt                               *time.Time
		cancelledBy, cancelReason                 *string
		daysBeforeCheckin                         *int
		refundPercent                             *int64
		refundAmount, refundStatus                *string
		createdAt, updatedAt                      time.Time
	)

	err := row.Scan(
		&id, &unitID, &checkIn, &checkOut, &nights,
		&adults, &children, &wantsMeal, &vegCount, &nonVegCount,
		&perNight, &roomTotal, &mealTotal, &taxAmount, &grandTotal, &currency,
		&contactName, &contactEmail, &contactPhone, &guestID,
		&provider, &orderRef, &paymentRef, &signature, &status,
		&cancelledAt, &cancelledBy, &cancelReason, &daysBeforeCheckin,
		&refundPercent, &refundAmount, &refundStatus,
		&createdAt, &updatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation", err)
	}

	stay, err := daterange.New(checkIn, checkOut)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid stay range stored", err)
	}

	amounts := make([]decimal.Decimal, 5)
	for i, raw := range []string{perNight, roomTotal, mealTotal, taxAmount, grandTotal} {
		d, parseErr := decimal.NewFromString(raw)
		if parseErr != nil {
			return nil, infra.WrapRepoErr("invalid amount stored for reservation", parseErr)
		}
		amounts[i] = d
	}

	quote := booking.Quote{
		Nights:     nights,
		PerNight:   amounts[0],
		RoomTotal:  amounts[1],
		MealTotal:  amounts[2],
		TaxAmount:  amounts[3],
		GrandTotal: amounts[4],
		Currency:   currency,
	}

	var cancellation *booking.Cancellation
	if cancelledAt != nil {
		c := booking.Cancellation{At: *cancelledAt}
		if cancelledBy != nil {
			c.By = *cancelledBy
		}
		if cancelReason != nil {
			c.Reason = *cancelReason
		}
		if daysBeforeCheckin != nil {
			c.DaysBeforeCheckin = *daysBeforeCheckin
		}
		if refundPercent != nil {
			c.RefundPercent = *refundPercent
		}
		if refundAmount != nil {
			d, parseErr := decimal.NewFromString(*refundAmount)
			if parseErr != nil {
				return nil, infra.WrapRepoErr("invalid refund amount stored", parseErr)
			}
			c.RefundAmount = d
		}
		if refundStatus != nil {
			c.RefundStatus = booking.RefundStatus(*refundStatus)
		}
		cancellation = &c
	}

	return booking.Reconstruct(
		id, unitID, stay, nights,
		booking.GuestComposition{Adults: adults, Children: children},
		booking.MealSelection{WantsMeal: wantsMeal, VegCount: vegCount, NonVegCount: nonVegCount},
		quote,
		booking.Contact{Name: contactName, Email: contactEmail, Phone: contactPhone},
		guestID,
		booking.PaymentAttestation{Provider: provider, OrderRef: orderRef, PaymentRef: paymentRef, Signature: signature},
		booking.Status(status),
		cancellation,
		createdAt, updatedAt,
	), nil
}

const saveCancellationQuery = `
UPDATE reservations
SET status = 'cancelled',
    cancelled_at = $2,
    cancelled_by = $3,
    cancel_reason = $4,
    days_before_checkin = $5,
    refund_percent = $6,
    refund_amount = $7,
    refund_status = $8,
    updated_at = now()
WHERE id = $1 AND status = 'confirmed'`

// SaveCancellation writes the cancellation stamped on the entity. The status
// guard makes retried cancellations a no-op at the storage layer too.
func (r *ReservationRepository) SaveCancellation(ctx context.Context, res *booking.Reservation) error {
	c := res.Cancellation()
	if c == nil {
		return infra.WrapRepoErr("reservation has no cancellation", errs.New("missing cancellation"))
	}

	_, err := r.db.Exec(ctx, saveCancellationQuery,
		res.ID(), c.At, c.By, c.Reason, c.DaysBeforeCheckin,
		c.RefundPercent, c.RefundAmount, string(c.RefundStatus),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to save cancellation", err)
	}
	return nil
}

const updateRefundStatusQuery = `
UPDATE reservations
SET refund_status = $2, updated_at = now()
WHERE id = $1 AND status = 'cancelled'`

func (r *ReservationRepository) UpdateRefundStatus(ctx context.Context, id uuid.UUID, status booking.RefundStatus) error {
	tag, err := r.db.Exec(ctx, updateRefundStatusQuery, id, string(status))
	if err != nil {
		return infra.WrapRepoErr("failed to update refund status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("cancelled reservation not found", errs.New("no rows updated"), infra.KindNotFound)
	}
	return nil
}
