package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type CreateTrioRequest struct {
	EventID       uint   `json:"event_id"`
	CategoryID    uint   `json:"category_id"`
	CompetitorIDs []uint `json:"competitor_ids"`
}

func (req *CreateTrioRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.EventID, validation.Required),
		validation.Field(&req.CategoryID, validation.Required),
		validation.Field(&req.CompetitorIDs, validation.Required, validation.Length(3, 3)),
	)
}

type DrawTriosRequest struct {
	EventID    uint `json:"event_id"`
	CategoryID uint `json:"category_id"`
}

func (req *DrawTriosRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.EventID, validation.Required),
		validation.Field(&req.CategoryID, validation.Required),
	)
}

type UpdateTrioStatusRequest struct {
	Status string `json:"status"`
}

func (req *UpdateTrioStatusRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Status, validation.Required, validation.In("active", "no_time", "disqualified")),
	)
}
