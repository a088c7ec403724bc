package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type OpenResultRequest struct {
	TrioID uint `json:"trio_id"`
}

func (req *OpenResultRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.TrioID, validation.Required),
	)
}

// RecordRunRequest carries one attempt. A nil time is a no-time run.
type RecordRunRequest struct {
	Time   *float64 `json:"time"`
	Status string   `json:"status,omitempty"`
}

func (req *RecordRunRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Time, validation.By(func(value interface{}) error {
			t, _ := value.(*float64)
			if t != nil {
				return validation.Validate(*t, validation.Min(0.0))
			}
			return nil
		})),
		validation.Field(&req.Status, validation.In("active", "no_time", "disqualified")),
	)
}

type UpdatePrizeRequest struct {
	PrizeValue float64 `json:"prize_value"`
}

func (req *UpdatePrizeRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.PrizeValue, validation.Min(0.0)),
	)
}
