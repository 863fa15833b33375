//go:build unit

package booking_test

import (
	"testing"
	"time"

	"villabook/internal/domain/booking"
	"villabook/internal/domain/daterange"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, err := daterange.ParseDay(s)
	if err != nil {
		panic(err)
	}
	return t
}

func confirmedReservation(t *testing.T, from, to string) *booking.Reservation {
	t.Helper()

	contact, err := booking.NewContact("Asha Rao", "asha@example.com", "+919876543210")
	require.NoError(t, err)

	quote := booking.Quote{
		Nights:     stay(from, to).Nights(),
		PerNight:   decimal.RequireFromString("5000"),
		RoomTotal:  decimal.RequireFromString("15000"),
		MealTotal:  decimal.Zero,
		TaxAmount:  decimal.Zero,
		GrandTotal: decimal.RequireFromString("15000"),
		Currency:   "INR",
	}

	return booking.NewConfirmed(
		uuid.New(), stay(from, to), comp(2, 0), booking.MealSelection{},
		quote, contact, nil,
		booking.PaymentAttestation{
			Provider:   "razorpay",
			OrderRef:   "order_x",
			PaymentRef: "pay_x",
			Signature:  "sig",
		},
	)
}

func TestNewConfirmed(t *testing.T) {
	res := confirmedReservation(t, "2026-10-20", "2026-10-23")

	assert.True(t, res.IsConfirmed())
	assert.False(t, res.IsCancelled())
	assert.Nil(t, res.Cancellation())
	assert.Equal(t, 3, res.Nights())
	assert.Equal(t, "razorpay", res.Attestation().Provider)
}

func TestCancel(t *testing.T) {
	tiers := booking.DefaultRefundTiers

	t.Run("full refund tier", func(t *testing.T) {
		res := confirmedReservation(t, "2026-10-20", "2026-10-23")

		c, err := res.Cancel(day("2026-10-10"), "operator-1", "guest request", tiers)
		require.NoError(t, err)

		assert.True(t, res.IsCancelled())
		assert.Equal(t, 10, c.DaysBeforeCheckin)
		assert.Equal(t, int64(100), c.RefundPercent)
		assert.True(t, c.RefundAmount.Equal(decimal.RequireFromString("15000")))
		assert.Equal(t, booking.RefundPending, c.RefundStatus)
	})

	t.Run("half refund tier", func(t *testing.T) {
		res := confirmedReservation(t, "2026-10-20", "2026-10-23")

		c, err := res.Cancel(day("2026-10-13"), "operator-1", "", tiers)
		require.NoError(t, err)

		assert.Equal(t, 7, c.DaysBeforeCheckin)
		assert.Equal(t, int64(50), c.RefundPercent)
		assert.True(t, c.RefundAmount.Equal(decimal.RequireFromString("7500")))
		assert.Equal(t, booking.RefundPending, c.RefundStatus)
	})

	t.Run("no refund marks rejected", func(t *testing.T) {
		res := confirmedReservation(t, "2026-10-20", "2026-10-23")

		c, err := res.Cancel(day("2026-10-18"), "operator-1", "", tiers)
		require.NoError(t, err)

		assert.Equal(t, int64(0), c.RefundPercent)
		assert.True(t, c.RefundAmount.IsZero())
		assert.Equal(t, booking.RefundRejected, c.RefundStatus)
	})

	t.Run("cannot cancel on checkin day or later", func(t *testing.T) {
		res := confirmedReservation(t, "2026-10-20", "2026-10-23")

		_, err := res.Cancel(day("2026-10-20"), "operator-1", "", tiers)
		assert.ErrorIs(t, err, booking.ErrAlreadyStarted)

		_, err = res.Cancel(day("2026-10-22"), "operator-1", "", tiers)
		assert.ErrorIs(t, err, booking.ErrAlreadyStarted)
	})

	t.Run("idempotent", func(t *testing.T) {
		res := confirmedReservation(t, "2026-10-20", "2026-10-23")

		first, err := res.Cancel(day("2026-10-10"), "operator-1", "guest request", tiers)
		require.NoError(t, err)

		// A later retry returns the original record, not a recomputed one.
		second, err := res.Cancel(day("2026-10-18"), "operator-2", "retry", tiers)
		require.NoError(t, err)
		assert.Same(t, first, second)
		assert.Equal(t, int64(100), second.RefundPercent)
	})
}

func TestUpdateRefundStatus(t *testing.T) {
	res := confirmedReservation(t, "2026-10-20", "2026-10-23")

	t.Run("rejected while confirmed", func(t *testing.T) {
		err := res.UpdateRefundStatus(booking.RefundApproved)
		assert.ErrorIs(t, err, booking.ErrNotCancelled)
	})

	t.Run("progresses after cancellation", func(t *testing.T) {
		_, err := res.Cancel(day("2026-10-10"), "operator-1", "", booking.DefaultRefundTiers)
		require.NoError(t, err)

		require.NoError(t, res.UpdateRefundStatus(booking.RefundApproved))
		assert.Equal(t, booking.RefundApproved, res.Cancellation().RefundStatus)
	})

	t.Run("settled refund never reopens", func(t *testing.T) {
		err := res.UpdateRefundStatus(booking.RefundPending)
		assert.ErrorIs(t, err, booking.ErrRefundTransitionInvalid)
		assert.Equal(t, booking.RefundApproved, res.Cancellation().RefundStatus)
	})

	t.Run("settled refund cannot flip", func(t *testing.T) {
		err := res.UpdateRefundStatus(booking.RefundRejected)
		assert.ErrorIs(t, err, booking.ErrRefundTransitionInvalid)
		assert.Equal(t, booking.RefundApproved, res.Cancellation().RefundStatus)
	})

	t.Run("pending is never a target", func(t *testing.T) {
		other := confirmedReservation(t, "2026-11-20", "2026-11-23")
		_, err := other.Cancel(day("2026-11-01"), "operator-1", "", booking.DefaultRefundTiers)
		require.NoError(t, err)

		err = other.UpdateRefundStatus(booking.RefundPending)
		assert.ErrorIs(t, err, booking.ErrRefundTransitionInvalid)
		assert.Equal(t, booking.RefundPending, other.Cancellation().RefundStatus)
	})
}

func TestReceiptDigest(t *testing.T) {
	unitID := uuid.New()
	s := stay("2026-10-20", "2026-10-23")
	meal := booking.MealSelection{WantsMeal: true, VegCount: 2, NonVegCount: 1}

	a := booking.ReceiptDigest(unitID, s, comp(2, 1), meal)
	b := booking.ReceiptDigest(unitID, s, comp(2, 1), meal)
	assert.Equal(t, a, b)
	assert.Len(t, a, 64)

	// Any price-determining input changes the digest.
	assert.NotEqual(t, a, booking.ReceiptDigest(uuid.New(), s, comp(2, 1), meal))
	assert.NotEqual(t, a, booking.ReceiptDigest(unitID, stay("2026-10-20", "2026-10-24"), comp(2, 1), meal))
	assert.NotEqual(t, a, booking.ReceiptDigest(unitID, s, comp(3, 0), meal))
	assert.NotEqual(t, a, booking.ReceiptDigest(unitID, s, comp(2, 1), booking.MealSelection{}))
}
