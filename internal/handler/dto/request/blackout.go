package request

import (
	"villabook/internal/domain/daterange"
	"villabook/internal/usecase/commands"

	"github.com/google/uuid"
)

// CreateBlackoutRequest blocks a range for maintenance or private use.
// A nil unit_id blocks the entire property.
type CreateBlackoutRequest struct {
	UnitID *uuid.UUID `json:"unit_id,omitempty"`
	From   string     `json:"from" binding:"required"`
	To     string     `json:"to" binding:"required"`
	Note   string     `json:"note"`
}

func (r CreateBlackoutRequest) ToInput() (commands.CreateBlackoutInput, error) {
	rng, err := daterange.Parse(r.From, r.To)
	if err != nil {
		return commands.CreateBlackoutInput{}, err
	}
	return commands.CreateBlackoutInput{
		UnitID: r.UnitID,
		Range:  rng,
		Note:   r.Note,
	}, nil
}
