package domain

import "time"

const (
	SexMale   = "M"
	SexFemale = "F"
)

// Handicap bounds shared by every category rule.
const (
	MinHandicap = 0
	MaxHandicap = 7
)

type Competitor struct {
	ID         uint      `json:"id"`
	Name       string    `json:"name"`
	BirthDate  time.Time `json:"birth_date"`
	Handicap   int       `json:"handicap"`
	Sex        string    `json:"sex"`
	City       string    `json:"city,omitempty"`
	State      string    `json:"state,omitempty"`
	Active     bool      `json:"active"`
	CategoryID *uint     `json:"category_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// AgeOn returns the competitor's age in full years on the given date.
func (c Competitor) AgeOn(date time.Time) int {
	age := date.Year() - c.BirthDate.Year()
	if date.Month() < c.BirthDate.Month() ||
		(date.Month() == c.BirthDate.Month() && date.Day() < c.BirthDate.Day()) {
		age--
	}
	return age
}

func (c Competitor) HasValidHandicap() bool {
	return c.Handicap >= MinHandicap && c.Handicap <= MaxHandicap
}
