package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type CreateQuotaRequest struct {
	CompetitorID uint `json:"competitor_id"`
	EventID      uint `json:"event_id"`
	CategoryID   uint `json:"category_id"`
}

func (req *CreateQuotaRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.CompetitorID, validation.Required),
		validation.Field(&req.EventID, validation.Required),
		validation.Field(&req.CategoryID, validation.Required),
	)
}

type BlockQuotaRequest struct {
	Reason string `json:"reason"`
}

func (req *BlockQuotaRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Reason, validation.Required, validation.Length(3, 200)),
	)
}

type AutoProvisionRequest struct {
	CompetitorIDs []uint `json:"competitor_ids"`
}

func (req *AutoProvisionRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.CompetitorIDs, validation.Required),
	)
}
