package readstore

import (
	"context"
	"time"

	"villabook/internal/domain/daterange"
	"villabook/internal/infra"
	"villabook/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type ReservationReadStore struct {
	db *pgxpool.Pool
}

func NewReservationReadStore(db *pgxpool.Pool) *ReservationReadStore {
	return &ReservationReadStore{db: db}
}

const reservationViewColumns = `
    r.id, r.unit_id, u.name,
    r.check_in, r.check_out, r.nights,
    r.adults, r.children, r.wants_meal, r.veg_count, r.nonveg_count,
    r.per_night::text, r.room_total::text, r.meal_total::text,
    r.tax_amount::text, r.grand_total::text, r.currency,
    r.contact_name, r.contact_email, r.contact_phone, r.guest_id,
    r.provider, r.order_ref, r.payment_ref, r.status,
    r.cancelled_at, r.cancelled_by, r.cancel_reason, r.days_before_checkin,
    r.refund_percent, r.refund_amount::text, r.refund_status,
    r.created_at, r.updated_at`

const reservationViewFrom = ` FROM reservations r JOIN units u ON u.id = r.unit_id`

func (s *ReservationReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	row := s.db.QueryRow(ctx, `SELECT`+reservationViewColumns+reservationViewFrom+` WHERE r.id = $1`, id)
	view, err := scanReservationView(row)
	if err != nil {
		if isNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation", err)
	}
	return view, nil
}

func (s *ReservationReadStore) List(ctx context.Context, limit int) ([]*queries.ReservationView, error) {
	rows, err := s.db.Query(ctx,
		`SELECT`+reservationViewColumns+reservationViewFrom+` ORDER BY r.created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservations", err)
	}
	defer rows.Close()

	var views []*queries.ReservationView
	for rows.Next() {
		view, err := scanReservationView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan reservation", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read reservations", err)
	}
	return views, nil
}

func scanReservationView(row pgx.Row) (*queries.ReservationView, error) {
	var (
		view                           queries.ReservationView
		checkIn, checkOut              time.Time
		perNight, roomTotal, mealTotal string
		taxAmount, grandTotal          string
		cancelledAt                    *time.Time
		cancelledBy, cancelReason      *string
		daysBeforeCheckin              *int
		refundPercent                  *int64
		refundAmount, refundStatus     *string
	)

	err := row.Scan(
		&view.ID, &view.UnitID, &view.UnitName,
		&checkIn, &checkOut, &view.Nights,
		&view.Adults, &view.Children, &view.WantsMeal, &view.VegCount, &view.NonVegCount,
		&perNight, &roomTotal, &mealTotal,
		&taxAmount, &grandTotal, &view.Currency,
		&view.ContactName, &view.ContactEmail, &view.ContactPhone, &view.GuestID,
		&view.Provider, &view.OrderRef, &view.PaymentRef, &view.Status,
		&cancelledAt, &cancelledBy, &cancelReason, &daysBeforeCheckin,
		&refundPercent, &refundAmount, &refundStatus,
		&view.CreatedAt, &view.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	view.CheckIn = checkIn.Format(daterange.DayFormat)
	view.CheckOut = checkOut.Format(daterange.DayFormat)

	for _, bind := range []struct {
		raw string
		dst *decimal.Decimal
	}{
		{perNight, &view.PerNight},
		{roomTotal, &view.RoomTotal},
		{mealTotal, &view.MealTotal},
		{taxAmount, &view.TaxAmount},
		{grandTotal, &view.GrandTotal},
	} {
		d, parseErr := decimal.NewFromString(bind.raw)
		if parseErr != nil {
			return nil, parseErr
		}
		*bind.dst = d
	}

	if cancelledAt != nil {
		c := queries.CancellationView{At: *cancelledAt}
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
				return nil, parseErr
			}
			c.RefundAmount = d
		}
		if refundStatus != nil {
			c.RefundStatus = *refundStatus
		}
		view.Cancellation = &c
	}

	return &view, nil
}
