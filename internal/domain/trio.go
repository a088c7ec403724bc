package domain

import "time"

const TrioSize = 3

type TrioStatus string

const (
	TrioActive       TrioStatus = "active"
	TrioNoTime       TrioStatus = "no_time"
	TrioDisqualified TrioStatus = "disqualified"
)

type Trio struct {
	ID            uint         `json:"id"`
	EventID       uint         `json:"event_id"`
	CategoryID    uint         `json:"category_id"`
	Number        int          `json:"number"`
	Status        TrioStatus   `json:"status"`
	TotalHandicap int          `json:"total_handicap"`
	TotalAge      int          `json:"total_age"`
	Drawn         bool         `json:"drawn"`
	Members       []TrioMember `json:"members,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

type TrioMember struct {
	ID           uint        `json:"id"`
	TrioID       uint        `json:"trio_id"`
	CompetitorID uint        `json:"competitor_id"`
	Order        int         `json:"order"`
	Competitor   *Competitor `json:"competitor,omitempty"`
}

// MemberIDs returns the competitor ids in member order.
func (t Trio) MemberIDs() []uint {
	ids := make([]uint, 0, len(t.Members))
	for _, m := range t.Members {
		ids = append(ids, m.CompetitorID)
	}
	return ids
}
