package request

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
)

type CreateCompetitorRequest struct {
	Name       string    `json:"name"`
	BirthDate  time.Time `json:"birth_date"`
	Handicap   int       `json:"handicap"`
	Sex        string    `json:"sex"`
	City       string    `json:"city,omitempty"`
	State      string    `json:"state,omitempty"`
	CategoryID *uint     `json:"category_id,omitempty"`
}

func (req *CreateCompetitorRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.BirthDate, validation.Required),
		validation.Field(&req.Handicap, validation.Min(0), validation.Max(7)),
		validation.Field(&req.Sex, validation.Required, validation.In("M", "F")),
		validation.Field(&req.State, validation.Length(0, 2)),
	)
}

type UpdateCompetitorRequest struct {
	CreateCompetitorRequest

	Active bool `json:"active"`
}
