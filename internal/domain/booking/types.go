package booking

// Status is the reservation lifecycle state. Pending exists only transiently
// while a gateway order is open and is never persisted; the durable record is
// created at the Confirmed transition.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return true
	default:
		return false
	}
}

// RefundStatus progresses pending -> approved|rejected and is the only field
// of a cancelled reservation that remains mutable.
type RefundStatus string

const (
	RefundPending  RefundStatus = "pending"
	RefundApproved RefundStatus = "approved"
	RefundRejected RefundStatus = "rejected"
)

func (s RefundStatus) String() string {
	return string(s)
}

func (s RefundStatus) IsValid() bool {
	switch s {
	case RefundPending, RefundApproved, RefundRejected:
		return true
	default:
		return false
	}
}

// PaymentMode tags the operator booking variant.
type PaymentMode string

const (
	PaymentModeCash   PaymentMode = "cash"
	PaymentModeOnline PaymentMode = "online"
)

func (m PaymentMode) IsValid() bool {
	return m == PaymentModeCash || m == PaymentModeOnline
}

// ProviderOffline marks attestations for cash and operator-recorded stays
// that never touched the payment gateway.
const ProviderOffline = "offline"
