package rules

import (
	"errors"
	"fmt"

	"github.com/lctp-br/lctp-api/internal/domain"
)

var ErrInvalidPlacement = errors.New("invalid placement")

// ScoringTable maps placements to championship points. Placements past the
// end of the curve score zero.
type ScoringTable []float64

// ContepTable is the standard curve: 1st place earns 10 points down to
// 1 point for 10th.
func ContepTable() ScoringTable {
	return ScoringTable{10, 9, 8, 7, 6, 5, 4, 3, 2, 1}
}

// PointsFor returns the points of a placement, zero when the placement is
// beyond the curve.
func (t ScoringTable) PointsFor(placement int) float64 {
	if placement < 1 || placement > len(t) {
		return 0
	}
	return t[placement-1]
}

// PrizePointsPerReal converts prize money into points: every hundred reais
// of a competitor's prize share is worth one point.
const PrizePointsPerReal = 1.0 / 100.0

// Scorer turns placements and prize money into per competitor score
// records. Tables may be overridden per category type; everything else
// falls back to the default table.
type Scorer struct {
	defaultTable ScoringTable
	overrides    map[domain.CategoryType]ScoringTable
}

func NewScorer(defaultTable ScoringTable, overrides map[domain.CategoryType]ScoringTable) *Scorer {
	return &Scorer{defaultTable: defaultTable, overrides: overrides}
}

// DefaultScorer applies the standard curve to every category.
func DefaultScorer() *Scorer {
	return NewScorer(ContepTable(), nil)
}

func (s *Scorer) tableFor(categoryType domain.CategoryType) ScoringTable {
	if t, ok := s.overrides[categoryType]; ok {
		return t
	}
	return s.defaultTable
}

// Score computes the placement points for one trio. fieldSize is the number
// of placed trios; a placement below one or past the field is rejected.
func (s *Scorer) Score(categoryType domain.CategoryType, placement, fieldSize int) (float64, error) {
	if placement < 1 || placement > fieldSize {
		return 0, fmt.Errorf("placement %d with field of %d: %w", placement, fieldSize, ErrInvalidPlacement)
	}
	return s.tableFor(categoryType).PointsFor(placement), nil
}

// PrizePoints converts a trio's prize value into per member points: the
// prize splits evenly across the three members before conversion.
func PrizePoints(prizeValue float64) float64 {
	if prizeValue <= 0 {
		return 0
	}
	return prizeValue / domain.TrioSize * PrizePointsPerReal
}

// ScoreAll turns placed results into score records, one per trio member.
// No-time and disqualified trios hold placements at the bottom of the field
// and earn zero placement points, but their prize share still converts.
// Results without a placement produce no records. memberIDs maps each trio
// to its competitors. ScoreAll is deterministic for a given input, so
// recomputing after a recompute of placements yields identical records.
func (s *Scorer) ScoreAll(categoryType domain.CategoryType, results []domain.RunResult, memberIDs map[uint][]uint) ([]domain.ScoreRecord, error) {
	fieldSize := 0
	for _, r := range results {
		if r.Placement != nil {
			fieldSize++
		}
	}

	records := make([]domain.ScoreRecord, 0, fieldSize*domain.TrioSize)
	for _, r := range results {
		if r.Placement == nil {
			continue
		}
		if *r.Placement < 1 || *r.Placement > fieldSize {
			return nil, fmt.Errorf("placement %d with field of %d for trio %d: %w", *r.Placement, fieldSize, r.TrioID, ErrInvalidPlacement)
		}
		var points float64
		if !r.Excluded() {
			points = s.tableFor(categoryType).PointsFor(*r.Placement)
		}
		prize := PrizePoints(r.PrizeValue)
		for _, competitorID := range memberIDs[r.TrioID] {
			records = append(records, domain.ScoreRecord{
				CompetitorID:    competitorID,
				EventID:         r.EventID,
				CategoryID:      r.CategoryID,
				TrioID:          r.TrioID,
				Placement:       *r.Placement,
				PlacementPoints: points,
				PrizePoints:     prize,
			})
		}
	}
	return records, nil
}
