package domain

import "time"

// ScoreRecord is one competitor's championship points earned at one
// event+category: placement points off the scoring curve plus the prize
// share converted to points.
type ScoreRecord struct {
	ID              uint      `json:"id"`
	CompetitorID    uint      `json:"competitor_id"`
	EventID         uint      `json:"event_id"`
	CategoryID      uint      `json:"category_id"`
	TrioID          uint      `json:"trio_id"`
	Placement       int       `json:"placement"`
	PlacementPoints float64   `json:"placement_points"`
	PrizePoints     float64   `json:"prize_points"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (s ScoreRecord) TotalPoints() float64 {
	return s.PlacementPoints + s.PrizePoints
}

// RankingEntry is one line of the aggregated championship ranking.
type RankingEntry struct {
	CompetitorID   uint    `json:"competitor_id"`
	CompetitorName string  `json:"competitor_name"`
	Events         int     `json:"events"`
	TotalPoints    float64 `json:"total_points"`
	Position       int     `json:"position"`
}
