package booking

import "github.com/shopspring/decimal"

// RefundTier maps a minimum days-before-checkin to a refund percentage.
type RefundTier struct {
	MinDaysBefore int
	Percent       int64
}

// DefaultRefundTiers is the house cancellation policy, evaluated in
// descending order with first match winning. Anything under the last tier
// refunds nothing.
var DefaultRefundTiers = []RefundTier{
	{MinDaysBefore: 10, Percent: 100},
	{MinDaysBefore: 5, Percent: 50},
}

// RefundPercent resolves the refund percentage for a cancellation made the
// given number of whole calendar days before check-in.
func RefundPercent(tiers []RefundTier, daysBeforeCheckin int) int64 {
	for _, tier := range tiers {
		if daysBeforeCheckin >= tier.MinDaysBefore {
			return tier.Percent
		}
	}
	return 0
}

// RefundAmount applies the percentage to the paid total, rounded to paise.
func RefundAmount(grandTotal decimal.Decimal, percent int64) decimal.Decimal {
	if percent <= 0 {
		return decimal.Zero
	}
	return grandTotal.Mul(decimal.NewFromInt(percent)).Div(decimal.NewFromInt(100)).Round(2)
}
