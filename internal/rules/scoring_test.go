package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lctp-br/lctp-api/internal/domain"
)

func TestContepCurve(t *testing.T) {
	table := ContepTable()

	assert.InDelta(t, 10, table.PointsFor(1), 1e-9)
	assert.InDelta(t, 9, table.PointsFor(2), 1e-9)
	assert.InDelta(t, 1, table.PointsFor(10), 1e-9)
	assert.Zero(t, table.PointsFor(11), "placements past the curve score zero")
	assert.Zero(t, table.PointsFor(0))
}

func TestScoreBounds(t *testing.T) {
	s := DefaultScorer()

	points, err := s.Score(domain.CategoryAberta, 1, 5)
	require.NoError(t, err)
	assert.InDelta(t, 10, points, 1e-9)

	_, err = s.Score(domain.CategoryAberta, 0, 5)
	assert.ErrorIs(t, err, ErrInvalidPlacement)

	_, err = s.Score(domain.CategoryAberta, 6, 5)
	assert.ErrorIs(t, err, ErrInvalidPlacement)
}

func TestScoreCategoryOverride(t *testing.T) {
	s := NewScorer(ContepTable(), map[domain.CategoryType]ScoringTable{
		domain.CategoryBaby: {5, 3, 1},
	})

	points, err := s.Score(domain.CategoryBaby, 1, 3)
	require.NoError(t, err)
	assert.InDelta(t, 5, points, 1e-9)

	points, err = s.Score(domain.CategoryAberta, 1, 3)
	require.NoError(t, err)
	assert.InDelta(t, 10, points, 1e-9)
}

func TestPrizePoints(t *testing.T) {
	assert.InDelta(t, 1.0, PrizePoints(300), 1e-9, "R$300 splits to R$100 per member, one point each")
	assert.InDelta(t, 0.5, PrizePoints(150), 1e-9)
	assert.Zero(t, PrizePoints(0))
	assert.Zero(t, PrizePoints(-10))
}

func TestScoreAll(t *testing.T) {
	s := DefaultScorer()

	one, two, three := 1, 2, 3
	results := []domain.RunResult{
		{TrioID: 10, EventID: 1, CategoryID: 2, Placement: &one, PrizeValue: 300},
		{TrioID: 11, EventID: 1, CategoryID: 2, Placement: &two},
		{TrioID: 12, EventID: 1, CategoryID: 2, Status: domain.TrioNoTime, Placement: &three, PrizeValue: 150},
	}
	members := map[uint][]uint{
		10: {100, 101, 102},
		11: {103, 104, 105},
		12: {106, 107, 108},
	}

	records, err := s.ScoreAll(domain.CategoryAberta, results, members)
	require.NoError(t, err)
	require.Len(t, records, 9, "every placed trio produces records")

	byCompetitor := make(map[uint]domain.ScoreRecord, len(records))
	for _, r := range records {
		byCompetitor[r.CompetitorID] = r
	}

	winner := byCompetitor[100]
	assert.Equal(t, 1, winner.Placement)
	assert.InDelta(t, 10, winner.PlacementPoints, 1e-9)
	assert.InDelta(t, 1, winner.PrizePoints, 1e-9)
	assert.InDelta(t, 11, winner.TotalPoints(), 1e-9)

	second := byCompetitor[104]
	assert.Equal(t, 2, second.Placement)
	assert.InDelta(t, 9, second.PlacementPoints, 1e-9)
	assert.Zero(t, second.PrizePoints)

	noTime := byCompetitor[107]
	assert.Equal(t, 3, noTime.Placement)
	assert.Zero(t, noTime.PlacementPoints, "a no-time trio earns no placement points")
	assert.InDelta(t, 0.5, noTime.PrizePoints, 1e-9, "its prize share still converts")
}

func TestScoreAllDeterministic(t *testing.T) {
	s := DefaultScorer()

	one := 1
	results := []domain.RunResult{
		{TrioID: 10, EventID: 1, CategoryID: 2, Placement: &one, PrizeValue: 150},
	}
	members := map[uint][]uint{10: {100, 101, 102}}

	first, err := s.ScoreAll(domain.CategoryAberta, results, members)
	require.NoError(t, err)
	second, err := s.ScoreAll(domain.CategoryAberta, results, members)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestScoreAllRejectsPlacementPastField(t *testing.T) {
	s := DefaultScorer()

	three := 3
	results := []domain.RunResult{
		{TrioID: 10, EventID: 1, CategoryID: 2, Placement: &three},
	}

	_, err := s.ScoreAll(domain.CategoryAberta, results, map[uint][]uint{10: {1, 2, 3}})
	assert.ErrorIs(t, err, ErrInvalidPlacement)
}
