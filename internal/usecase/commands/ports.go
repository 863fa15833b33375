package commands

import (
	"context"
	"time"

	"villabook/internal/domain/booking"
	"villabook/internal/domain/daterange"
	"villabook/internal/domain/guest"
	"villabook/internal/domain/unit"
	"villabook/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReservationRepository interface {
	// CreateConfirmed persists a confirmed reservation. The write-time
	// conflict check is the real backstop against concurrent confirmations;
	// a losing write surfaces as a CONFLICT repository error.
	CreateConfirmed(ctx context.Context, res *booking.Reservation) error
	FindByID(ctx context.Context, id uuid.UUID) (*booking.Reservation, error)
	// FindByOrderRef resolves a reservation by its gateway order reference.
	// Confirm retries replay through here instead of inserting twice.
	FindByOrderRef(ctx context.Context, orderRef string) (*booking.Reservation, error)
	SaveCancellation(ctx context.Context, res *booking.Reservation) error
	UpdateRefundStatus(ctx context.Context, id uuid.UUID, status booking.RefundStatus) error
}

type UnitRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*unit.Unit, error)
}

type GuestRepository interface {
	FindByPhone(ctx context.Context, phone string) (*guest.Guest, error)
	Create(ctx context.Context, g *guest.Guest) error
}

type BlackoutRepository interface {
	Create(ctx context.Context, id uuid.UUID, unitID *uuid.UUID, rng daterange.Range, note string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type OperatorReadStore interface {
	FindByEmail(ctx context.Context, email string) (*queries.OperatorView, error)
}

// PaymentOrder is the handle returned by the external gateway when an order
// is opened. ProviderKey is the public key the client checkout needs.
type PaymentOrder struct {
	OrderRef    string
	ProviderKey string
}

type PaymentGateway interface {
	Provider() string
	CreateOrder(ctx context.Context, amountMinorUnits int64, currency, receipt string) (PaymentOrder, error)
	// FetchOrderReceipt returns the receipt recorded on the gateway order.
	// Confirm compares it against a server-side recompute so the paid order
	// is bound to the exact stay inputs it was opened for.
	FetchOrderReceipt(ctx context.Context, orderRef string) (string, error)
	// VerifySignature recomputes the HMAC over orderRef|paymentRef and
	// compares it byte-for-byte against the presented signature.
	VerifySignature(orderRef, paymentRef, signature string) bool
}

// Notifier is fire-and-forget: delivery failure is logged by the
// implementation and never blocks the calling transaction.
type Notifier interface {
	Notify(ctx context.Context, eventType string, payload map[string]any)
}

type TokenIssuer interface {
	GenerateToken(userID uuid.UUID, role guest.Role) (string, error)
}

// Clock is the subset of pkg/clock the commands need.
type Clock interface {
	Now() time.Time
	Today() time.Time
}
