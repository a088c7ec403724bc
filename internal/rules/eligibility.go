package rules

import (
	"fmt"
	"time"

	"github.com/lctp-br/lctp-api/internal/domain"
)

// Verdict is the outcome of an eligibility check. Reason is set only when
// the trio is rejected.
type Verdict struct {
	Eligible bool   `json:"eligible"`
	Reason   string `json:"reason,omitempty"`
}

func accept() Verdict { return Verdict{Eligible: true} }

func reject(format string, args ...any) Verdict {
	return Verdict{Reason: fmt.Sprintf(format, args...)}
}

// Validator checks trio compositions against a rule book. Ages are taken
// as of the event date.
type Validator struct {
	book *RuleBook
}

func NewValidator(book *RuleBook) *Validator {
	return &Validator{book: book}
}

// Rules exposes the rule set behind a category type.
func (v *Validator) Rules(categoryType domain.CategoryType) (RuleSet, error) {
	return v.book.RulesFor(categoryType)
}

// Validate checks whether the three competitors form an eligible trio for
// the category type on the given event date. Checks run in a fixed order:
// distinct members, individual age bounds, combined age, combined handicap,
// then sex. The verdict carries the first failure only.
//
// The result depends on the member set, never on member order.
func (v *Validator) Validate(categoryType domain.CategoryType, eventDate time.Time, a, b, c domain.Competitor) (Verdict, error) {
	set, err := v.book.RulesFor(categoryType)
	if err != nil {
		return Verdict{}, fmt.Errorf("v.book.RulesFor -> %w", err)
	}

	members := [domain.TrioSize]domain.Competitor{a, b, c}

	if a.ID == b.ID || a.ID == c.ID || b.ID == c.ID {
		return reject("trio members must be three distinct competitors"), nil
	}

	for _, m := range members {
		if !m.HasValidHandicap() {
			return reject("competitor %d has handicap %d outside the %d..%d range",
				m.ID, m.Handicap, domain.MinHandicap, domain.MaxHandicap), nil
		}
	}

	if set.HasAgeBound() {
		for _, m := range members {
			age := m.AgeOn(eventDate)
			if set.MinAge > 0 && age < set.MinAge {
				return reject("competitor %d is %d, minimum age for %s is %d", m.ID, age, set.Type, set.MinAge), nil
			}
			if set.MaxAge > 0 && age > set.MaxAge {
				return reject("competitor %d is %d, maximum age for %s is %d", m.ID, age, set.Type, set.MaxAge), nil
			}
		}
	}

	if set.HasCombinedAge() {
		total := 0
		for _, m := range members {
			total += m.AgeOn(eventDate)
		}
		if total > set.MaxCombinedAge {
			return reject("combined age %d exceeds the %s limit of %d", total, set.Type, set.MaxCombinedAge), nil
		}
	}

	if set.HasCombinedHandicap() {
		total := a.Handicap + b.Handicap + c.Handicap
		if total > set.MaxCombinedHandicap {
			return reject("combined handicap %d exceeds the %s limit of %d", total, set.Type, set.MaxCombinedHandicap), nil
		}
	}

	if set.WomenOnly {
		for _, m := range members {
			if m.Sex != domain.SexFemale {
				return reject("competitor %d is not eligible, %s accepts women only", m.ID, set.Type), nil
			}
		}
	}

	return accept(), nil
}

// CombinedHandicap is the trio's handicap sum, used for display and for
// trio records.
func CombinedHandicap(a, b, c domain.Competitor) int {
	return a.Handicap + b.Handicap + c.Handicap
}

// CombinedAge is the trio's age sum as of the given date.
func CombinedAge(date time.Time, a, b, c domain.Competitor) int {
	return a.AgeOn(date) + b.AgeOn(date) + c.AgeOn(date)
}
