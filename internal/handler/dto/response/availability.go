package response

import (
	"villabook/internal/domain/daterange"
)

// UnavailableRange is a merged blocked interval, both ends inclusive.
type UnavailableRange struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type UnavailableResponse struct {
	Unavailable []UnavailableRange `json:"unavailable"`
}

func FromRanges(ranges []daterange.Range) UnavailableResponse {
	out := make([]UnavailableRange, len(ranges))
	for i, r := range ranges {
		out[i] = UnavailableRange{
			From: r.From().Format(daterange.DayFormat),
			To:   r.To().Format(daterange.DayFormat),
		}
	}
	return UnavailableResponse{Unavailable: out}
}
