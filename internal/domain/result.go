package domain

import "time"

// RunResult holds a trio's recorded attempts for one event+category, the
// derived average and the placement assigned after ranking.
type RunResult struct {
	ID           uint       `json:"id"`
	EventID      uint       `json:"event_id"`
	CategoryID   uint       `json:"category_id"`
	TrioID       uint       `json:"trio_id"`
	Attempts     []*float64 `json:"attempts"`
	AverageTime  *float64   `json:"average_time,omitempty"`
	Status       TrioStatus `json:"status"`
	Placement    *int       `json:"placement,omitempty"`
	PrizeValue   float64    `json:"prize_value"`
	Notes        string     `json:"notes,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// ComputeAverage averages the recorded attempts, skipping unrecorded ones.
// With a single attempt the average is that attempt. Returns nil when
// nothing was recorded.
func (r RunResult) ComputeAverage() *float64 {
	var sum float64
	var n int
	for _, a := range r.Attempts {
		if a == nil {
			continue
		}
		sum += *a
		n++
	}
	if n == 0 {
		return nil
	}
	avg := sum / float64(n)
	return &avg
}

// BestAttempt returns the lowest recorded attempt, or nil when none exist.
func (r RunResult) BestAttempt() *float64 {
	var best *float64
	for _, a := range r.Attempts {
		if a == nil {
			continue
		}
		if best == nil || *a < *best {
			v := *a
			best = &v
		}
	}
	return best
}

// Excluded reports whether the result sits outside the timed standings:
// no-time and disqualified trios close the field and earn no placement
// points.
func (r RunResult) Excluded() bool {
	return r.Status == TrioNoTime || r.Status == TrioDisqualified
}
