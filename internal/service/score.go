package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/lctp-br/lctp-api/internal/domain"
	"github.com/lctp-br/lctp-api/internal/rules"
)

var (
	ErrInvalidPlacement  = rules.ErrInvalidPlacement
	ErrPlacementsMissing = errors.New("placements have not been computed")
)

type ScoreRepository interface {
	Replace(ctx context.Context, eventID, categoryID uint, records []domain.ScoreRecord) ([]domain.ScoreRecord, error)
	FindByEventAndCategory(ctx context.Context, eventID, categoryID uint) ([]domain.ScoreRecord, error)
	Ranking(ctx context.Context, categoryID uint) ([]domain.RankingEntry, error)
}

type ScoreService struct {
	repo         ScoreRepository
	resultRepo   ResultRepository
	trioRepo     TrioRepository
	categoryRepo CategoryRepository
	eventRepo    EventRepository
	scorer       *rules.Scorer

	computeLocks *keyedMutex
}

func NewScoreService(
	repo ScoreRepository,
	resultRepo ResultRepository,
	trioRepo TrioRepository,
	categoryRepo CategoryRepository,
	eventRepo EventRepository,
	scorer *rules.Scorer,
) *ScoreService {
	return &ScoreService{
		repo:         repo,
		resultRepo:   resultRepo,
		trioRepo:     trioRepo,
		categoryRepo: categoryRepo,
		eventRepo:    eventRepo,
		scorer:       scorer,
		computeLocks: newKeyedMutex(),
	}
}

// Compute turns the event+category's stored placements into championship
// score records, replacing whatever was computed before. Prize money is
// discounted by the event's percentage before it converts to points.
// Re-running over unchanged placements yields identical records.
func (s *ScoreService) Compute(ctx context.Context, eventID, categoryID uint) ([]domain.ScoreRecord, error) {
	unlock := s.computeLocks.lock(eventID, categoryID)
	defer unlock()

	category, err := s.categoryRepo.FindByID(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("s.categoryRepo.FindByID -> %w", err)
	}

	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("s.eventRepo.FindByID -> %w", err)
	}

	results, err := s.resultRepo.FindByEventAndCategory(ctx, eventID, categoryID)
	if err != nil {
		return nil, fmt.Errorf("s.resultRepo.FindByEventAndCategory -> %w", err)
	}

	for i, r := range results {
		if r.Placement == nil {
			return nil, fmt.Errorf("result %d: %w", r.ID, ErrPlacementsMissing)
		}

		results[i].PrizeValue = r.PrizeValue * (1 - event.DiscountPercent/100)
	}

	trios, err := s.trioRepo.FindByEventAndCategory(ctx, eventID, categoryID)
	if err != nil {
		return nil, fmt.Errorf("s.trioRepo.FindByEventAndCategory -> %w", err)
	}

	memberIDs := make(map[uint][]uint, len(trios))
	for _, t := range trios {
		memberIDs[t.ID] = t.MemberIDs()
	}

	records, err := s.scorer.ScoreAll(category.Type, results, memberIDs)
	if err != nil {
		return nil, fmt.Errorf("s.scorer.ScoreAll -> %w", err)
	}

	saved, err := s.repo.Replace(ctx, eventID, categoryID, records)
	if err != nil {
		return nil, fmt.Errorf("s.repo.Replace -> %w", err)
	}

	zap.L().Info("computed scores",
		zap.Uint("event_id", eventID),
		zap.Uint("category_id", categoryID),
		zap.Int("records", len(saved)))

	return saved, nil
}

func (s *ScoreService) FindByEventAndCategory(ctx context.Context, eventID, categoryID uint) ([]domain.ScoreRecord, error) {
	records, err := s.repo.FindByEventAndCategory(ctx, eventID, categoryID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByEventAndCategory -> %w", err)
	}

	return records, nil
}

// Ranking aggregates every competitor's points for a category across all
// events. A zero categoryID returns the overall ranking.
func (s *ScoreService) Ranking(ctx context.Context, categoryID uint) ([]domain.RankingEntry, error) {
	entries, err := s.repo.Ranking(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.Ranking -> %w", err)
	}

	return entries, nil
}
