package rules

import (
	"errors"
	"fmt"

	"github.com/lctp-br/lctp-api/internal/domain"
)

var ErrUnknownCategoryType = errors.New("unknown category type")

// DrawMode says how trios are formed in a category.
type DrawMode string

const (
	DrawNone    DrawMode = "none"
	DrawFull    DrawMode = "full"
	DrawPartial DrawMode = "partial"
)

// RuleSet holds the eligibility constraints of one category type. Zero
// values mean the constraint does not apply (ages and sums are never
// legitimately zero-bounded).
type RuleSet struct {
	Type                domain.CategoryType
	MinAge              int
	MaxAge              int
	MaxCombinedAge      int
	MaxCombinedHandicap int
	WomenOnly           bool
	Draw                DrawMode
	MinDrawEntrants     int
	MaxDrawEntrants     int
}

func (r RuleSet) HasAgeBound() bool         { return r.MinAge > 0 || r.MaxAge > 0 }
func (r RuleSet) HasCombinedAge() bool      { return r.MaxCombinedAge > 0 }
func (r RuleSet) HasCombinedHandicap() bool { return r.MaxCombinedHandicap > 0 }

// RuleBook maps every known category type to its rule set. Built once at
// startup and treated as immutable afterwards.
type RuleBook struct {
	sets map[domain.CategoryType]RuleSet
}

// NewRuleBook builds a rule book from the given sets. Every set must carry
// a known category type.
func NewRuleBook(sets ...RuleSet) (*RuleBook, error) {
	book := &RuleBook{sets: make(map[domain.CategoryType]RuleSet, len(sets))}
	for _, s := range sets {
		if !s.Type.Known() {
			return nil, fmt.Errorf("rule set for %q: %w", s.Type, ErrUnknownCategoryType)
		}
		book.sets[s.Type] = s
	}
	return book, nil
}

// DefaultRuleBook is the standard LCTP rule book: baby up to 12 with a full
// draw, kids 13 to 17, mirim combined age up to 36, feminina women only,
// aberta unrestricted and soma11 capped at a combined handicap of 11.
func DefaultRuleBook() *RuleBook {
	book, _ := NewRuleBook(
		RuleSet{Type: domain.CategoryBaby, MaxAge: 12, Draw: DrawFull, MinDrawEntrants: 3, MaxDrawEntrants: 9},
		RuleSet{Type: domain.CategoryKids, MinAge: 13, MaxAge: 17, Draw: DrawPartial, MinDrawEntrants: 3, MaxDrawEntrants: 9},
		RuleSet{Type: domain.CategoryMirim, MaxCombinedAge: 36},
		RuleSet{Type: domain.CategoryFeminina, WomenOnly: true, Draw: DrawPartial, MinDrawEntrants: 3, MaxDrawEntrants: 9},
		RuleSet{Type: domain.CategoryAberta},
		RuleSet{Type: domain.CategorySoma11, MaxCombinedHandicap: 11},
	)
	return book
}

// RulesFor returns the rule set of the given category type.
func (b *RuleBook) RulesFor(categoryType domain.CategoryType) (RuleSet, error) {
	set, ok := b.sets[categoryType]
	if !ok {
		return RuleSet{}, fmt.Errorf("rules for %q: %w", categoryType, ErrUnknownCategoryType)
	}
	return set, nil
}

// Types lists the category types the book knows about.
func (b *RuleBook) Types() []domain.CategoryType {
	types := make([]domain.CategoryType, 0, len(b.sets))
	for _, t := range domain.CategoryTypes() {
		if _, ok := b.sets[t]; ok {
			types = append(types, t)
		}
	}
	return types
}
