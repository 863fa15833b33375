package commands

import (
	"context"
	"log/slog"

	"villabook/internal/domain/booking"
	"villabook/internal/domain/daterange"
	"villabook/internal/domain/guest"
	"villabook/internal/domain/unit"
	"villabook/internal/infra"
	"villabook/internal/pkg/errs"
	"villabook/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrUnitNotFound           = errs.New("unit not found")
	ErrInvalidRange           = errs.New("invalid date range")
	ErrCapacityExceeded       = errs.New("guest count exceeds unit capacity")
	ErrMealCompositionInvalid = errs.New("invalid meal composition")
	ErrGuestInvalid           = errs.New("invalid guest details")
	ErrUnitUnavailable        = errs.New("unit unavailable for the requested range")
	// ErrUnavailableAfterPayment is the dangerous variant: payment already
	// succeeded upstream but the slot was claimed in the meantime. Requires
	// manual refund reconciliation and is surfaced loudly, never swallowed.
	ErrUnavailableAfterPayment = errs.New("unit unavailable after payment: manual refund required")
	ErrPaymentGateway          = errs.New("payment gateway error")
	ErrSignatureMismatch       = errs.New("payment signature mismatch")
	ErrReceiptMismatch         = errs.New("order receipt does not match booking inputs")
	ErrDatabaseOperation       = errs.New("database operation failed")
)

// StayInput carries every input that determines a booking's price and
// availability. Each creation path (self-service gateway, operator gateway,
// operator cash) wraps it with exactly the extra fields it needs.
type StayInput struct {
	UnitID  uuid.UUID
	Stay    daterange.Range
	Guests  booking.GuestComposition
	Meal    booking.MealSelection
	Contact booking.Contact
}

type OpenOrderResult struct {
	OrderRef    string
	ProviderKey string
	Receipt     string
	Quote       booking.Quote
}

// ConfirmInput presents the gateway attestation together with the original
// stay inputs; totals are always recomputed server-side, never trusted from
// the client.
type ConfirmInput struct {
	StayInput
	OrderRef   string
	PaymentRef string
	Signature  string
	GuestID    *uuid.UUID
}

// OperatorBookingInput is the manual booking variant. Guest identity is
// resolved by phone before any order is opened.
type OperatorBookingInput struct {
	StayInput
	Mode       booking.PaymentMode
	GuestName  string
	GuestPhone string
	GuestEmail string
	CreatedBy  string
}

type OperatorBookingResult struct {
	// Reservation is set for cash bookings, which confirm synchronously.
	Reservation *queries.ReservationView
	// Order is set for online bookings, which confirm later through
	// VerifyAndConfirm with GuestID echoed back.
	Order   *OpenOrderResult
	GuestID *uuid.UUID
}

type BookingCommands interface {
	Quote(ctx context.Context, in StayInput) (booking.Quote, error)
	OpenOrder(ctx context.Context, in StayInput) (*OpenOrderResult, error)
	VerifyAndConfirm(ctx context.Context, in ConfirmInput) (*queries.ReservationView, error)
	CreateOperatorBooking(ctx context.Context, in OperatorBookingInput) (*OperatorBookingResult, error)
}

type bookingCommandsImpl struct {
	reservations ReservationRepository
	units        UnitRepository
	guests       GuestRepository
	availability queries.AvailabilityQueries
	views        queries.BookingQueries
	gateway      PaymentGateway
	notifier     Notifier
	calculator   *booking.Calculator
	clock        Clock
}

func NewBookingCommands(
	reservations ReservationRepository,
	units UnitRepository,
	guests GuestRepository,
	availability queries.AvailabilityQueries,
	views queries.BookingQueries,
	gateway PaymentGateway,
	notifier Notifier,
	calculator *booking.Calculator,
	clock Clock,
) BookingCommands {
	return &bookingCommandsImpl{
		reservations: reservations,
		units:        units,
		guests:       guests,
		availability: availability,
		views:        views,
		gateway:      gateway,
		notifier:     notifier,
		calculator:   calculator,
		clock:        clock,
	}
}

func (c *bookingCommandsImpl) Quote(ctx context.Context, in StayInput) (booking.Quote, error) {
	u, err := c.findUnit(ctx, in.UnitID)
	if err != nil {
		return booking.Quote{}, err
	}
	return c.quoteFor(u, in, false)
}

// OpenOrder re-validates availability at call time (first-line defense, not
// sufficient alone), prices the stay and registers a gateway order carrying
// the grand total plus a receipt digest of every price-determining input.
func (c *bookingCommandsImpl) OpenOrder(ctx context.Context, in StayInput) (*OpenOrderResult, error) {
	u, err := c.findUnit(ctx, in.UnitID)
	if err != nil {
		return nil, err
	}

	if err := c.checkAvailable(ctx, in.UnitID, in.Stay); err != nil {
		return nil, err
	}

	quote, err := c.quoteFor(u, in, false)
	if err != nil {
		return nil, err
	}

	receipt := booking.ReceiptDigest(in.UnitID, in.Stay, in.Guests, in.Meal)
	order, err := c.gateway.CreateOrder(ctx, toMinorUnits(quote.GrandTotal), quote.Currency, receipt)
	if err != nil {
		// Not retried automatically: a silent retry risks duplicate orders.
		return nil, errs.Mark(err, ErrPaymentGateway)
	}

	return &OpenOrderResult{
		OrderRef:    order.OrderRef,
		ProviderKey: order.ProviderKey,
		Receipt:     receipt,
		Quote:       quote,
	}, nil
}

// VerifyAndConfirm closes the order: attestation first, then a second
// availability check covering the window between order-open and payment
// completion, then a server-side quote recompute, then the conflict-guarded
// insert. The persistence conflict check is the real guarantee; the
// in-process re-check is a fast path.
func (c *bookingCommandsImpl) VerifyAndConfirm(ctx context.Context, in ConfirmInput) (*queries.ReservationView, error) {
	if !c.gateway.VerifySignature(in.OrderRef, in.PaymentRef, in.Signature) {
		return nil, ErrSignatureMismatch
	}

	u, err := c.findUnit(ctx, in.UnitID)
	if err != nil {
		return nil, err
	}

	quote, err := c.quoteFor(u, in.StayInput, in.GuestID != nil)
	if err != nil {
		return nil, err
	}

	stored, err := c.gateway.FetchOrderReceipt(ctx, in.OrderRef)
	if err != nil {
		return nil, errs.Mark(err, ErrPaymentGateway)
	}
	if stored != booking.ReceiptDigest(in.UnitID, in.Stay, in.Guests, in.Meal) {
		return nil, ErrReceiptMismatch
	}

	if err := c.checkAvailable(ctx, in.UnitID, in.Stay); err != nil {
		return nil, c.paymentTaken(ctx, in, err)
	}

	res := booking.NewConfirmed(
		in.UnitID, in.Stay, in.Guests, in.Meal, quote, in.Contact, in.GuestID,
		booking.PaymentAttestation{
			Provider:   c.gateway.Provider(),
			OrderRef:   in.OrderRef,
			PaymentRef: in.PaymentRef,
			Signature:  in.Signature,
		},
	)

	if err := c.reservations.CreateConfirmed(ctx, res); err != nil {
		switch {
		case infra.IsKind(err, infra.KindDuplicateKey):
			// Retried confirm for an order already persisted: replay the
			// stored reservation instead of failing.
			existing, findErr := c.reservations.FindByOrderRef(ctx, in.OrderRef)
			if findErr != nil {
				return nil, errs.Mark(findErr, ErrDatabaseOperation)
			}
			return c.views.GetByID(ctx, existing.ID())
		case infra.IsKind(err, infra.KindConflict):
			return nil, c.paymentTaken(ctx, in, ErrUnitUnavailable)
		default:
			return nil, errs.Mark(err, ErrDatabaseOperation)
		}
	}

	c.notifier.Notify(ctx, "booking.confirmed", map[string]any{
		"reservation_id": res.ID(),
		"unit_id":        res.UnitID(),
		"check_in":       res.Stay().From().Format(daterange.DayFormat),
		"check_out":      res.Stay().To().Format(daterange.DayFormat),
	})

	return c.views.GetByID(ctx, res.ID())
}

func (c *bookingCommandsImpl) CreateOperatorBooking(ctx context.Context, in OperatorBookingInput) (*OperatorBookingResult, error) {
	g, err := c.resolveGuest(ctx, in)
	if err != nil {
		return nil, err
	}

	u, err := c.findUnit(ctx, in.UnitID)
	if err != nil {
		return nil, err
	}

	// Operator-created stays require a plate for every guest.
	quote, err := c.quoteFor(u, in.StayInput, true)
	if err != nil {
		return nil, err
	}

	if err := c.checkAvailable(ctx, in.UnitID, in.Stay); err != nil {
		return nil, err
	}

	if in.Mode == booking.PaymentModeOnline {
		receipt := booking.ReceiptDigest(in.UnitID, in.Stay, in.Guests, in.Meal)
		order, orderErr := c.gateway.CreateOrder(ctx, toMinorUnits(quote.GrandTotal), quote.Currency, receipt)
		if orderErr != nil {
			return nil, errs.Mark(orderErr, ErrPaymentGateway)
		}
		id := g.ID()
		return &OperatorBookingResult{
			Order: &OpenOrderResult{
				OrderRef:    order.OrderRef,
				ProviderKey: order.ProviderKey,
				Receipt:     receipt,
				Quote:       quote,
			},
			GuestID: &id,
		}, nil
	}

	// Cash: no gateway round-trip, confirm synchronously.
	guestID := g.ID()
	res := booking.NewConfirmed(
		in.UnitID, in.Stay, in.Guests, in.Meal, quote, in.Contact, &guestID,
		booking.OfflineAttestation(),
	)

	if err := c.reservations.CreateConfirmed(ctx, res); err != nil {
		if infra.IsKind(err, infra.KindConflict) {
			return nil, ErrUnitUnavailable
		}
		return nil, errs.Mark(err, ErrDatabaseOperation)
	}

	view, err := c.views.GetByID(ctx, res.ID())
	if err != nil {
		return nil, err
	}
	return &OperatorBookingResult{Reservation: view}, nil
}

func (c *bookingCommandsImpl) resolveGuest(ctx context.Context, in OperatorBookingInput) (*guest.Guest, error) {
	g, err := c.guests.FindByPhone(ctx, in.GuestPhone)
	if err == nil {
		return g, nil
	}
	if !infra.IsKind(err, infra.KindNotFound) {
		return nil, errs.Mark(err, ErrDatabaseOperation)
	}

	g, err = guest.NewGuest(in.GuestName, in.GuestPhone, in.GuestEmail)
	if err != nil {
		return nil, errs.Mark(err, ErrGuestInvalid)
	}
	if err := c.guests.Create(ctx, g); err != nil {
		// A concurrent booking for the same phone won the insert; reuse
		// that identity instead of failing the booking.
		if infra.IsKind(err, infra.KindDuplicateKey) {
			existing, findErr := c.guests.FindByPhone(ctx, in.GuestPhone)
			if findErr != nil {
				return nil, errs.Mark(findErr, ErrDatabaseOperation)
			}
			return existing, nil
		}
		return nil, errs.Mark(err, ErrDatabaseOperation)
	}
	return g, nil
}

func (c *bookingCommandsImpl) findUnit(ctx context.Context, id uuid.UUID) (*unit.Unit, error) {
	u, err := c.units.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrUnitNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperation)
	}
	return u, nil
}

func (c *bookingCommandsImpl) quoteFor(u *unit.Unit, in StayInput, strictMeals bool) (booking.Quote, error) {
	if in.Stay.From().Before(c.clock.Today()) {
		return booking.Quote{}, ErrInvalidRange
	}

	quote, err := c.calculator.Quote(u, in.Stay, in.Guests, in.Meal, strictMeals)
	if err != nil {
		switch {
		case errs.Is(err, booking.ErrInvalidRange):
			return booking.Quote{}, errs.Mark(err, ErrInvalidRange)
		case errs.Is(err, booking.ErrCapacityExceeded):
			return booking.Quote{}, errs.Mark(err, ErrCapacityExceeded)
		case errs.Is(err, booking.ErrMealCompositionInvalid):
			return booking.Quote{}, errs.Mark(err, ErrMealCompositionInvalid)
		case errs.Is(err, booking.ErrNoAdults), errs.Is(err, booking.ErrInvalidGuestCount):
			return booking.Quote{}, errs.Mark(err, ErrGuestInvalid)
		default:
			return booking.Quote{}, err
		}
	}
	return quote, nil
}

func (c *bookingCommandsImpl) checkAvailable(ctx context.Context, unitID uuid.UUID, stay daterange.Range) error {
	blocked, err := c.availability.UnavailableForUnit(ctx, unitID)
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperation)
	}
	for _, r := range blocked {
		if r.Overlaps(stay) {
			return ErrUnitUnavailable
		}
	}
	return nil
}

// paymentTaken converts an availability failure discovered after a verified
// payment into the loud reconciliation error and alerts the ops channel.
func (c *bookingCommandsImpl) paymentTaken(ctx context.Context, in ConfirmInput, cause error) error {
	slog.Error("confirmed payment lost the slot; manual refund required",
		"order_ref", in.OrderRef,
		"payment_ref", in.PaymentRef,
		"unit_id", in.UnitID,
		"stay", in.Stay.String(),
	)
	c.notifier.Notify(ctx, "booking.reconciliation_required", map[string]any{
		"order_ref":   in.OrderRef,
		"payment_ref": in.PaymentRef,
		"unit_id":     in.UnitID,
		"check_in":    in.Stay.From().Format(daterange.DayFormat),
		"check_out":   in.Stay.To().Format(daterange.DayFormat),
	})
	return errs.Mark(cause, ErrUnavailableAfterPayment)
}

func toMinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).IntPart()
}
