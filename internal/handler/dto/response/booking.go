package response

import (
	"villabook/internal/domain/booking"
	"villabook/internal/usecase/commands"
	"villabook/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type QuoteResponse struct {
	Nights     int             `json:"nights"`
	PerNight   decimal.Decimal `json:"per_night"`
	RoomTotal  decimal.Decimal `json:"room_total"`
	MealTotal  decimal.Decimal `json:"meal_total"`
	TaxAmount  decimal.Decimal `json:"tax_amount"`
	GrandTotal decimal.Decimal `json:"grand_total"`
	Currency   string          `json:"currency"`
}

func FromQuote(q booking.Quote) QuoteResponse {
	return QuoteResponse{
		Nights:     q.Nights,
		PerNight:   q.PerNight,
		RoomTotal:  q.RoomTotal,
		MealTotal:  q.MealTotal,
		TaxAmount:  q.TaxAmount,
		GrandTotal: q.GrandTotal,
		Currency:   q.Currency,
	}
}

type OrderResponse struct {
	OrderRef    string        `json:"order_ref"`
	ProviderKey string        `json:"provider_key"`
	Receipt     string        `json:"receipt"`
	Quote       QuoteResponse `json:"quote"`
}

func FromOrder(o *commands.OpenOrderResult) OrderResponse {
	return OrderResponse{
		OrderRef:    o.OrderRef,
		ProviderKey: o.ProviderKey,
		Receipt:     o.Receipt,
		Quote:       FromQuote(o.Quote),
	}
}

// OperatorBookingResponse carries exactly one of reservation (cash, confirmed
// synchronously) or order (online, confirmed later).
type OperatorBookingResponse struct {
	Reservation *queries.ReservationView `json:"reservation,omitempty"`
	Order       *OrderResponse           `json:"order,omitempty"`
	GuestID     *uuid.UUID               `json:"guest_id,omitempty"`
}

func FromOperatorBooking(r *commands.OperatorBookingResult) OperatorBookingResponse {
	resp := OperatorBookingResponse{
		Reservation: r.Reservation,
		GuestID:     r.GuestID,
	}
	if r.Order != nil {
		order := FromOrder(r.Order)
		resp.Order = &order
	}
	return resp
}
