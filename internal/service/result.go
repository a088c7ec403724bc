package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/lctp-br/lctp-api/internal/domain"
	"github.com/lctp-br/lctp-api/internal/repository"
	"github.com/lctp-br/lctp-api/internal/rules"
)

// DefaultMaxRunsPerTrio caps a trio's attempts when the event carries no
// run config for the category.
const DefaultMaxRunsPerTrio = 2

var (
	ErrResultNotFound      = repository.ErrResultNotFound
	ErrResultExists        = repository.ErrResultExists
	ErrInconsistentResults = errors.New("results are inconsistent with their trios")
	ErrTrioNotActive       = errors.New("trio cannot record further runs")
	ErrRunLimitReached     = errors.New("trio already ran its maximum attempts")
)

type ResultRepository interface {
	Create(ctx context.Context, result domain.RunResult) (domain.RunResult, error)
	FindByID(ctx context.Context, id uint) (domain.RunResult, error)
	FindByEventAndCategory(ctx context.Context, eventID, categoryID uint) ([]domain.RunResult, error)
	AppendAttempt(ctx context.Context, resultID uint, attemptTime *float64, average *float64, status domain.TrioStatus) (domain.RunResult, error)
	ApplyPlacements(ctx context.Context, updates []repository.PlacementUpdate) error
	UpdatePrize(ctx context.Context, id uint, prizeValue float64) error
}

type ResultService struct {
	repo      ResultRepository
	trioRepo  TrioRepository
	quotaRepo QuotaRepository
	eventRepo EventRepository

	recomputeLocks *keyedMutex
}

func NewResultService(repo ResultRepository, trioRepo TrioRepository, quotaRepo QuotaRepository, eventRepo EventRepository) *ResultService {
	return &ResultService{
		repo:           repo,
		trioRepo:       trioRepo,
		quotaRepo:      quotaRepo,
		eventRepo:      eventRepo,
		recomputeLocks: newKeyedMutex(),
	}
}

// Open creates the result sheet for a trio before its first run.
func (s *ResultService) Open(ctx context.Context, trioID uint) (domain.RunResult, error) {
	trio, err := s.trioRepo.FindByID(ctx, trioID)
	if err != nil {
		return domain.RunResult{}, fmt.Errorf("s.trioRepo.FindByID -> %w", err)
	}

	created, err := s.repo.Create(ctx, domain.RunResult{
		EventID:    trio.EventID,
		CategoryID: trio.CategoryID,
		TrioID:     trio.ID,
		Status:     domain.TrioActive,
	})
	if err != nil {
		return domain.RunResult{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *ResultService) FindByID(ctx context.Context, id uint) (domain.RunResult, error) {
	found, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.RunResult{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return found, nil
}

func (s *ResultService) FindByEventAndCategory(ctx context.Context, eventID, categoryID uint) ([]domain.RunResult, error) {
	results, err := s.repo.FindByEventAndCategory(ctx, eventID, categoryID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByEventAndCategory -> %w", err)
	}

	return results, nil
}

// RecordRun stores one attempt for the trio and consumes one run from every
// member's quota. A nil time marks a no-time attempt; status lets the judge
// flag the trio along the way. The quota decrement is conditional, so a
// blocked or exhausted member stops the run before anything is written, and
// runs consumed before a later failure are given back.
func (s *ResultService) RecordRun(ctx context.Context, resultID uint, attemptTime *float64, status domain.TrioStatus) (domain.RunResult, error) {
	result, err := s.repo.FindByID(ctx, resultID)
	if err != nil {
		return domain.RunResult{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if result.Status == domain.TrioDisqualified {
		return domain.RunResult{}, ErrTrioNotActive
	}

	trio, err := s.trioRepo.FindByID(ctx, result.TrioID)
	if err != nil {
		return domain.RunResult{}, fmt.Errorf("s.trioRepo.FindByID -> %w", err)
	}

	maxRuns := s.maxTrioRunsFor(ctx, trio.EventID, trio.CategoryID)
	if len(result.Attempts) >= maxRuns {
		return domain.RunResult{}, fmt.Errorf("trio %d already ran %d of %d: %w", trio.ID, len(result.Attempts), maxRuns, ErrRunLimitReached)
	}

	// Check every member first so one blocked teammate fails the run before
	// any quota is consumed.
	for _, competitorID := range trio.MemberIDs() {
		quota, err := s.quotaRepo.FindByKey(ctx, competitorID, trio.EventID, trio.CategoryID)
		if err != nil {
			return domain.RunResult{}, fmt.Errorf("s.quotaRepo.FindByKey competitor %d -> %w", competitorID, err)
		}
		switch quota.State() {
		case domain.QuotaBlocked:
			return domain.RunResult{}, fmt.Errorf("competitor %d: %w", competitorID, ErrQuotaBlocked)
		case domain.QuotaExhausted:
			return domain.RunResult{}, fmt.Errorf("competitor %d: %w", competitorID, ErrQuotaExhausted)
		}
	}

	// The check above can race a concurrent registration, so any run consumed
	// before a member fails is released again.
	consumed := make([]uint, 0, domain.TrioSize)
	release := func() {
		for _, competitorID := range consumed {
			if err := s.quotaRepo.ReleaseRun(ctx, competitorID, trio.EventID, trio.CategoryID); err != nil {
				zap.L().Error("failed to release consumed run",
					zap.Uint("competitor_id", competitorID),
					zap.Uint("event_id", trio.EventID),
					zap.Uint("category_id", trio.CategoryID),
					zap.Error(err))
			}
		}
	}

	for _, competitorID := range trio.MemberIDs() {
		if _, err = s.quotaRepo.RegisterRun(ctx, competitorID, trio.EventID, trio.CategoryID); err != nil {
			release()
			return domain.RunResult{}, fmt.Errorf("s.quotaRepo.RegisterRun competitor %d -> %w", competitorID, err)
		}
		consumed = append(consumed, competitorID)
	}

	if status == "" {
		status = result.Status
	}

	updated := result
	updated.Attempts = append(updated.Attempts, attemptTime)
	average := updated.ComputeAverage()

	saved, err := s.repo.AppendAttempt(ctx, resultID, attemptTime, average, status)
	if err != nil {
		release()
		return domain.RunResult{}, fmt.Errorf("s.repo.AppendAttempt -> %w", err)
	}

	return saved, nil
}

func (s *ResultService) maxTrioRunsFor(ctx context.Context, eventID, categoryID uint) int {
	conf, err := s.eventRepo.FindRunConfig(ctx, eventID, categoryID)
	if err != nil || conf.MaxRunsPerTrio <= 0 {
		return DefaultMaxRunsPerTrio
	}

	return conf.MaxRunsPerTrio
}

func (s *ResultService) UpdatePrize(ctx context.Context, id uint, prizeValue float64) error {
	if err := s.repo.UpdatePrize(ctx, id, prizeValue); err != nil {
		return fmt.Errorf("s.repo.UpdatePrize -> %w", err)
	}

	return nil
}

// RecomputePlacements re-ranks every result of the event+category and
// writes the standings in one batch. Runs for the same event+category are
// serialized; the whole recompute aborts when any result no longer matches
// its trio, leaving stored placements untouched.
func (s *ResultService) RecomputePlacements(ctx context.Context, eventID, categoryID uint) ([]domain.RunResult, error) {
	unlock := s.recomputeLocks.lock(eventID, categoryID)
	defer unlock()

	results, err := s.repo.FindByEventAndCategory(ctx, eventID, categoryID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByEventAndCategory -> %w", err)
	}
	if len(results) == 0 {
		return nil, nil
	}

	if err = s.checkConsistency(ctx, eventID, categoryID, results); err != nil {
		return nil, err
	}

	ranked := rules.Rank(results)

	updates := make([]repository.PlacementUpdate, 0, len(ranked))
	for _, r := range ranked {
		updates = append(updates, repository.PlacementUpdate{
			ResultID:    r.ID,
			Placement:   r.Placement,
			AverageTime: r.AverageTime,
		})
	}

	if err = s.repo.ApplyPlacements(ctx, updates); err != nil {
		return nil, fmt.Errorf("s.repo.ApplyPlacements -> %w", err)
	}

	zap.L().Info("recomputed placements",
		zap.Uint("event_id", eventID),
		zap.Uint("category_id", categoryID),
		zap.Int("results", len(ranked)))

	return ranked, nil
}

// checkConsistency verifies every result still points at a trio of the same
// event+category and carries that trio's current status.
func (s *ResultService) checkConsistency(ctx context.Context, eventID, categoryID uint, results []domain.RunResult) error {
	trios, err := s.trioRepo.FindByEventAndCategory(ctx, eventID, categoryID)
	if err != nil {
		return fmt.Errorf("s.trioRepo.FindByEventAndCategory -> %w", err)
	}

	byID := make(map[uint]domain.Trio, len(trios))
	for _, t := range trios {
		byID[t.ID] = t
	}

	for _, r := range results {
		trio, ok := byID[r.TrioID]
		if !ok {
			return fmt.Errorf("result %d references trio %d outside the event: %w", r.ID, r.TrioID, ErrInconsistentResults)
		}
		if trio.Status == domain.TrioDisqualified && r.Status != domain.TrioDisqualified {
			return fmt.Errorf("result %d disagrees with disqualified trio %d: %w", r.ID, r.TrioID, ErrInconsistentResults)
		}
	}

	return nil
}
