package queries

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Read models (DTO for read side)

type UnitView struct {
	ID                  uuid.UUID       `json:"id"`
	Name                string          `json:"name"`
	Kind                string          `json:"kind"`
	MealPricing         string          `json:"meal_pricing"`
	BaseRatePerNight    decimal.Decimal `json:"base_rate_per_night"`
	PackageRatePerNight decimal.Decimal `json:"package_rate_per_night"`
	MealRateVeg         decimal.Decimal `json:"meal_rate_veg"`
	MealRateNonVeg      decimal.Decimal `json:"meal_rate_nonveg"`
	MaxGuests           int             `json:"max_guests"`
}

type ReservationView struct {
	ID           uuid.UUID         `json:"id"`
	UnitID       uuid.UUID         `json:"unit_id"`
	UnitName     string            `json:"unit_name"`
	CheckIn      string            `json:"check_in"`
	CheckOut     string            `json:"check_out"`
	Nights       int               `json:"nights"`
	Adults       int               `json:"adults"`
	Children     int               `json:"children"`
	WantsMeal    bool              `json:"wants_meal"`
	VegCount     int               `json:"veg_count"`
	NonVegCount  int               `json:"nonveg_count"`
	PerNight     decimal.Decimal   `json:"per_night"`
	RoomTotal    decimal.Decimal   `json:"room_total"`
	MealTotal    decimal.Decimal   `json:"meal_total"`
	TaxAmount    decimal.Decimal   `json:"tax_amount"`
	GrandTotal   decimal.Decimal   `json:"grand_total"`
	Currency     string            `json:"currency"`
	ContactName  string            `json:"contact_name"`
	ContactEmail string            `json:"contact_email,omitempty"`
	ContactPhone string            `json:"contact_phone"`
	GuestID      *uuid.UUID        `json:"guest_id,omitempty"`
	Provider     string            `json:"provider"`
	OrderRef     string            `json:"order_ref,omitempty"`
	PaymentRef   string            `json:"payment_ref,omitempty"`
	Status       string            `json:"status"`
	Cancellation *CancellationView `json:"cancellation,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

type CancellationView struct {
	At                time.Time       `json:"at"`
	By                string          `json:"by"`
	Reason            string          `json:"reason"`
	DaysBeforeCheckin int             `json:"days_before_checkin"`
	RefundPercent     int64           `json:"refund_percent"`
	RefundAmount      decimal.Decimal `json:"refund_amount"`
	RefundStatus      string          `json:"refund_status"`
}

type BlackoutView struct {
	ID        uuid.UUID  `json:"id"`
	UnitID    *uuid.UUID `json:"unit_id,omitempty"`
	From      string     `json:"from"`
	To        string     `json:"to"`
	Note      string     `json:"note,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

type OperatorView struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	PasswordHash string    `json:"-"`
}
