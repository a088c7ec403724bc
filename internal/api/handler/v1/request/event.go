package request

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
)

type CreateEventRequest struct {
	Name            string    `json:"name"`
	Date            time.Time `json:"date"`
	Ranch           string    `json:"ranch,omitempty"`
	City            string    `json:"city,omitempty"`
	State           string    `json:"state,omitempty"`
	EntryFee        float64   `json:"entry_fee,omitempty"`
	DiscountPercent float64   `json:"discount_percent,omitempty"`
}

func (req *CreateEventRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.Date, validation.Required),
		validation.Field(&req.EntryFee, validation.Min(0.0)),
		validation.Field(&req.DiscountPercent, validation.Min(0.0), validation.Max(100.0)),
	)
}

type UpsertRunConfigRequest struct {
	CategoryID           uint    `json:"category_id"`
	MaxRunsPerTrio       int     `json:"max_runs_per_trio"`
	MaxRunsPerCompetitor int     `json:"max_runs_per_competitor"`
	TimeLimit            float64 `json:"time_limit,omitempty"`
}

func (req *UpsertRunConfigRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.CategoryID, validation.Required),
		validation.Field(&req.MaxRunsPerTrio, validation.Required, validation.Min(1)),
		validation.Field(&req.MaxRunsPerCompetitor, validation.Required, validation.Min(1)),
		validation.Field(&req.TimeLimit, validation.Min(0.0)),
	)
}
