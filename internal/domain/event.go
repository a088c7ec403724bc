package domain

import "time"

// Event is a prova: one day of competition at one ranch.
type Event struct {
	ID              uint      `json:"id"`
	Name            string    `json:"name"`
	Date            time.Time `json:"date"`
	Ranch           string    `json:"ranch,omitempty"`
	City            string    `json:"city,omitempty"`
	State           string    `json:"state,omitempty"`
	EntryFee        float64   `json:"entry_fee,omitempty"`
	DiscountPercent float64   `json:"discount_percent"`
	Active          bool      `json:"active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// RunConfig is the per event+category run setup: how many runs each trio
// makes and how many runs a single competitor may accumulate across trios.
type RunConfig struct {
	ID                   uint    `json:"id"`
	EventID              uint    `json:"event_id"`
	CategoryID           uint    `json:"category_id"`
	MaxRunsPerTrio       int     `json:"max_runs_per_trio"`
	MaxRunsPerCompetitor int     `json:"max_runs_per_competitor"`
	TimeLimit            float64 `json:"time_limit"`
}
