package domain

import "time"

type QuotaState string

const (
	QuotaActive    QuotaState = "active"
	QuotaExhausted QuotaState = "exhausted"
	QuotaBlocked   QuotaState = "blocked"
)

// ParticipationQuota caps how many runs a competitor may execute in one
// event+category. RunsExecuted only ever moves forward.
type ParticipationQuota struct {
	ID           uint       `json:"id"`
	CompetitorID uint       `json:"competitor_id"`
	EventID      uint       `json:"event_id"`
	CategoryID   uint       `json:"category_id"`
	MaxRuns      int        `json:"max_runs"`
	RunsExecuted int        `json:"runs_executed"`
	MayCompete   bool       `json:"may_compete"`
	BlockReason  string     `json:"block_reason,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (q ParticipationQuota) RunsRemaining() int {
	remaining := q.MaxRuns - q.RunsExecuted
	if remaining < 0 {
		return 0
	}
	return remaining
}

func (q ParticipationQuota) State() QuotaState {
	if !q.MayCompete {
		return QuotaBlocked
	}
	if q.RunsExecuted >= q.MaxRuns {
		return QuotaExhausted
	}
	return QuotaActive
}
