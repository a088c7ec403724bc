package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lctp-br/lctp-api/internal/domain"
	"github.com/lctp-br/lctp-api/internal/rules"
)

type fakeScoreRepo struct {
	mu      sync.Mutex
	records map[string][]domain.ScoreRecord
}

func newFakeScoreRepo() *fakeScoreRepo {
	return &fakeScoreRepo{records: make(map[string][]domain.ScoreRecord)}
}

func scoreKey(eventID, categoryID uint) string {
	return fmt.Sprintf("%d/%d", eventID, categoryID)
}

func (f *fakeScoreRepo) Replace(_ context.Context, eventID, categoryID uint, records []domain.ScoreRecord) ([]domain.ScoreRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.records[scoreKey(eventID, categoryID)] = records
	return records, nil
}

func (f *fakeScoreRepo) FindByEventAndCategory(_ context.Context, eventID, categoryID uint) ([]domain.ScoreRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.records[scoreKey(eventID, categoryID)], nil
}

func (f *fakeScoreRepo) Ranking(_ context.Context, categoryID uint) ([]domain.RankingEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	totals := make(map[uint]float64)
	for _, records := range f.records {
		for _, r := range records {
			if categoryID != 0 && r.CategoryID != categoryID {
				continue
			}
			totals[r.CompetitorID] += r.TotalPoints()
		}
	}

	var entries []domain.RankingEntry
	for competitorID, total := range totals {
		entries = append(entries, domain.RankingEntry{CompetitorID: competitorID, TotalPoints: total})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].TotalPoints > entries[j].TotalPoints })
	for i := range entries {
		entries[i].Position = i + 1
	}
	return entries, nil
}

func newScoreFixture() (*ScoreService, *fakeResultRepo, *fakeScoreRepo) {
	one, two := 1, 2
	resultRepo := newFakeResultRepo(
		domain.RunResult{ID: 1, EventID: 1, CategoryID: 7, TrioID: 10, Status: domain.TrioActive, Attempts: []*float64{ptr(39.8)}, AverageTime: ptr(39.8), Placement: &one, PrizeValue: 300},
		domain.RunResult{ID: 2, EventID: 1, CategoryID: 7, TrioID: 11, Status: domain.TrioActive, Attempts: []*float64{ptr(42.1)}, AverageTime: ptr(42.1), Placement: &two},
	)
	trioRepo := newFakeTrioRepo(
		trioWithMembers(10, 100, 101, 102),
		trioWithMembers(11, 103, 104, 105),
	)
	categoryRepo := newFakeCategoryRepo(domain.Category{ID: 7, Name: "aberta", Type: domain.CategoryAberta, Active: true})
	eventRepo := newFakeEventRepo(domain.Event{ID: 1, Name: "Etapa", Date: time.Now(), DiscountPercent: 5, Active: true})
	scoreRepo := newFakeScoreRepo()

	s := NewScoreService(scoreRepo, resultRepo, trioRepo, categoryRepo, eventRepo, rules.DefaultScorer())
	return s, resultRepo, scoreRepo
}

func TestScoreServiceCompute(t *testing.T) {
	s, _, _ := newScoreFixture()

	records, err := s.Compute(context.Background(), 1, 7)
	require.NoError(t, err)
	require.Len(t, records, 6)

	byCompetitor := make(map[uint]domain.ScoreRecord)
	for _, r := range records {
		byCompetitor[r.CompetitorID] = r
	}

	winner := byCompetitor[100]
	assert.Equal(t, 1, winner.Placement)
	assert.InDelta(t, 10, winner.PlacementPoints, 1e-9)
	// R$300 less the 5% discount splits to R$95 per member.
	assert.InDelta(t, 0.95, winner.PrizePoints, 1e-9)

	second := byCompetitor[103]
	assert.InDelta(t, 9, second.PlacementPoints, 1e-9)
	assert.Zero(t, second.PrizePoints)
}

func TestScoreServiceComputeIncludesNoTimeTrio(t *testing.T) {
	one, two, three := 1, 2, 3
	resultRepo := newFakeResultRepo(
		domain.RunResult{ID: 1, EventID: 1, CategoryID: 7, TrioID: 10, Status: domain.TrioActive, Attempts: []*float64{ptr(39.8)}, AverageTime: ptr(39.8), Placement: &one},
		domain.RunResult{ID: 2, EventID: 1, CategoryID: 7, TrioID: 11, Status: domain.TrioActive, Attempts: []*float64{ptr(42.1)}, AverageTime: ptr(42.1), Placement: &two},
		domain.RunResult{ID: 3, EventID: 1, CategoryID: 7, TrioID: 12, Status: domain.TrioNoTime, Placement: &three, PrizeValue: 100},
	)
	trioRepo := newFakeTrioRepo(
		trioWithMembers(10, 100, 101, 102),
		trioWithMembers(11, 103, 104, 105),
		trioWithMembers(12, 106, 107, 108),
	)
	categoryRepo := newFakeCategoryRepo(domain.Category{ID: 7, Name: "aberta", Type: domain.CategoryAberta, Active: true})
	eventRepo := newFakeEventRepo(domain.Event{ID: 1, Name: "Etapa", Date: time.Now(), Active: true})

	s := NewScoreService(newFakeScoreRepo(), resultRepo, trioRepo, categoryRepo, eventRepo, rules.DefaultScorer())

	records, err := s.Compute(context.Background(), 1, 7)
	require.NoError(t, err)
	require.Len(t, records, 9, "a no-time trio still lands in the score sheet")

	byCompetitor := make(map[uint]domain.ScoreRecord)
	for _, r := range records {
		byCompetitor[r.CompetitorID] = r
	}

	noTime := byCompetitor[106]
	assert.Equal(t, 3, noTime.Placement)
	assert.Zero(t, noTime.PlacementPoints)
	assert.InDelta(t, 1.0/3.0, noTime.PrizePoints, 1e-9, "the prize share converts even without placement points")
}

func TestScoreServiceComputeIdempotent(t *testing.T) {
	s, _, _ := newScoreFixture()

	first, err := s.Compute(context.Background(), 1, 7)
	require.NoError(t, err)
	second, err := s.Compute(context.Background(), 1, 7)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestScoreServiceComputeRequiresPlacements(t *testing.T) {
	s, resultRepo, _ := newScoreFixture()

	r, err := resultRepo.FindByID(context.Background(), 1)
	require.NoError(t, err)
	r.Placement = nil
	resultRepo.results[1] = r

	_, err = s.Compute(context.Background(), 1, 7)
	assert.ErrorIs(t, err, ErrPlacementsMissing)
}

func TestScoreServiceRanking(t *testing.T) {
	s, _, _ := newScoreFixture()

	_, err := s.Compute(context.Background(), 1, 7)
	require.NoError(t, err)

	entries, err := s.Ranking(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, entries, 6)

	assert.Equal(t, 1, entries[0].Position)
	assert.Contains(t, []uint{100, 101, 102}, entries[0].CompetitorID, "a winning trio member leads the ranking")
}
