package request

import (
	"villabook/internal/domain/booking"
	"villabook/internal/domain/daterange"
	"villabook/internal/usecase/commands"

	"github.com/google/uuid"
)

// StayRequest carries every price-determining input of a candidate stay.
// Dates are date-only strings; a time component is rejected by parsing.
type StayRequest struct {
	UnitID      uuid.UUID `json:"unit_id" binding:"required"`
	CheckIn     string    `json:"check_in" binding:"required"`
	CheckOut    string    `json:"check_out" binding:"required"`
	Adults      int       `json:"adults" binding:"required,min=1"`
	Children    int       `json:"children" binding:"min=0"`
	WantsMeal   bool      `json:"wants_meal"`
	VegCount    int       `json:"veg_count" binding:"min=0"`
	NonVegCount int       `json:"nonveg_count" binding:"min=0"`
	// Contact fields. Validated by NewContact so the operator variant can
	// fall back to the guest identity fields first.
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

func (r StayRequest) ToStayInput() (commands.StayInput, error) {
	stay, err := daterange.Parse(r.CheckIn, r.CheckOut)
	if err != nil {
		return commands.StayInput{}, err
	}

	comp, err := booking.NewGuestComposition(r.Adults, r.Children)
	if err != nil {
		return commands.StayInput{}, err
	}

	contact, err := booking.NewContact(r.Name, r.Email, r.Phone)
	if err != nil {
		return commands.StayInput{}, err
	}

	return commands.StayInput{
		UnitID: r.UnitID,
		Stay:   stay,
		Guests: comp,
		Meal: booking.MealSelection{
			WantsMeal:   r.WantsMeal,
			VegCount:    r.VegCount,
			NonVegCount: r.NonVegCount,
		},
		Contact: contact,
	}, nil
}

type ConfirmRequest struct {
	StayRequest
	OrderRef   string     `json:"order_ref" binding:"required"`
	PaymentRef string     `json:"payment_ref" binding:"required"`
	Signature  string     `json:"signature" binding:"required"`
	GuestID    *uuid.UUID `json:"guest_id,omitempty"`
}

func (r ConfirmRequest) ToConfirmInput() (commands.ConfirmInput, error) {
	stay, err := r.ToStayInput()
	if err != nil {
		return commands.ConfirmInput{}, err
	}
	return commands.ConfirmInput{
		StayInput:  stay,
		OrderRef:   r.OrderRef,
		PaymentRef: r.PaymentRef,
		Signature:  r.Signature,
		GuestID:    r.GuestID,
	}, nil
}

// OperatorBookingRequest is the manual booking variant. Guest identity fields
// feed the phone-keyed guest lookup; contact falls back to them when blank.
type OperatorBookingRequest struct {
	StayRequest
	Mode       string `json:"mode" binding:"required,oneof=cash online"`
	GuestName  string `json:"guest_name" binding:"required"`
	GuestPhone string `json:"guest_phone" binding:"required"`
	GuestEmail string `json:"guest_email"`
}

func (r OperatorBookingRequest) ToOperatorInput(createdBy string) (commands.OperatorBookingInput, error) {
	if r.Name == "" {
		r.Name = r.GuestName
	}
	if r.Phone == "" {
		r.Phone = r.GuestPhone
	}
	if r.Email == "" {
		r.Email = r.GuestEmail
	}

	stay, err := r.ToStayInput()
	if err != nil {
		return commands.OperatorBookingInput{}, err
	}
	return commands.OperatorBookingInput{
		StayInput:  stay,
		Mode:       booking.PaymentMode(r.Mode),
		GuestName:  r.GuestName,
		GuestPhone: r.GuestPhone,
		GuestEmail: r.GuestEmail,
		CreatedBy:  createdBy,
	}, nil
}

type CancelRequest struct {
	Reason string `json:"reason"`
}

type RefundStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=approved rejected"`
}
