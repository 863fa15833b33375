package booking

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"villabook/internal/domain/daterange"

	"github.com/google/uuid"
)

// ReceiptDigest binds a gateway order to every input that determined its
// price. OpenOrder embeds it as the order receipt; VerifyAndConfirm
// recomputes it from the presented inputs and rejects a mismatch before
// trusting anything else in the request.
func ReceiptDigest(unitID uuid.UUID, stay daterange.Range, comp GuestComposition, meal MealSelection) string {
	canonical := fmt.Sprintf("%s|%s|%s|a=%d,c=%d|m=%t,v=%d,n=%d",
		unitID,
		stay.From().Format(daterange.DayFormat),
		stay.To().Format(daterange.DayFormat),
		comp.Adults, comp.Children,
		meal.WantsMeal, meal.VegCount, meal.NonVegCount,
	)
	sum := sha256.Sum256([]byte(canonical))
	return hex.EncodeToString(sum[:])
}
