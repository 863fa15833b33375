package booking

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNoAdults               = errors.New("at least one adult is required")
	ErrInvalidGuestCount      = errors.New("guest counts cannot be negative")
	ErrMealCompositionInvalid = errors.New("meal composition does not match guest count")
	ErrInvalidContact         = errors.New("contact name and phone are required")
)

// GuestComposition is the adults/children split for a stay. Total is always
// adults + children; the operator invariant adults + children == total is
// structural here rather than re-validated.
type GuestComposition struct {
	Adults   int
	Children int
}

func NewGuestComposition(adults, children int) (GuestComposition, error) {
	if adults < 0 || children < 0 {
		return GuestComposition{}, ErrInvalidGuestCount
	}
	if adults < 1 {
		return GuestComposition{}, ErrNoAdults
	}
	return GuestComposition{Adults: adults, Children: children}, nil
}

func (g GuestComposition) Total() int {
	return g.Adults + g.Children
}

// MealSelection carries the veg/non-veg plate counts when meals are wanted.
type MealSelection struct {
	WantsMeal   bool
	VegCount    int
	NonVegCount int
}

// Validate checks the selection against the party size. In strict mode every
// guest must have exactly one plate (itemized pricing, and all
// operator-created stays); otherwise plates may not exceed guests.
func (m MealSelection) Validate(totalGuests int, strict bool) error {
	if !m.WantsMeal {
		return nil
	}
	if m.VegCount < 0 || m.NonVegCount < 0 {
		return ErrMealCompositionInvalid
	}
	plates := m.VegCount + m.NonVegCount
	if strict {
		if plates != totalGuests {
			return ErrMealCompositionInvalid
		}
		return nil
	}
	if plates > totalGuests {
		return ErrMealCompositionInvalid
	}
	return nil
}

// Contact is the self-service guest's details, entered per booking.
type Contact struct {
	Name  string
	Email string
	Phone string
}

func NewContact(name, email, phone string) (Contact, error) {
	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)
	if name == "" || phone == "" {
		return Contact{}, ErrInvalidContact
	}
	return Contact{Name: name, Email: strings.TrimSpace(email), Phone: phone}, nil
}

// PaymentAttestation is the gateway-issued proof that payment succeeded.
// Provider is "offline" for cash and operator-recorded stays.
type PaymentAttestation struct {
	Provider   string
	OrderRef   string
	PaymentRef string
	Signature  string
}

func OfflineAttestation() PaymentAttestation {
	return PaymentAttestation{Provider: ProviderOffline}
}

// Cancellation is the append-only audit record stamped at the Cancelled
// transition. Only RefundStatus may change afterwards.
type Cancellation struct {
	At                time.Time
	By                string
	Reason            string
	DaysBeforeCheckin int
	RefundPercent     int64
	RefundAmount      decimal.Decimal
	RefundStatus      RefundStatus
}
