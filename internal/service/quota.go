package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/lctp-br/lctp-api/internal/domain"
	"github.com/lctp-br/lctp-api/internal/repository"
)

// DefaultMaxRuns applies when the event carries no run config for the
// category.
const DefaultMaxRuns = 5

var (
	ErrQuotaNotFound  = repository.ErrQuotaNotFound
	ErrQuotaExists    = repository.ErrQuotaExists
	ErrQuotaExhausted = repository.ErrQuotaExhausted
	ErrQuotaBlocked   = repository.ErrQuotaBlocked
)

type QuotaRepository interface {
	Create(ctx context.Context, quota domain.ParticipationQuota) (domain.ParticipationQuota, error)
	FindByID(ctx context.Context, id uint) (domain.ParticipationQuota, error)
	FindByKey(ctx context.Context, competitorID, eventID, categoryID uint) (domain.ParticipationQuota, error)
	FindByEvent(ctx context.Context, eventID uint) ([]domain.ParticipationQuota, error)
	RegisterRun(ctx context.Context, competitorID, eventID, categoryID uint) (domain.ParticipationQuota, error)
	ReleaseRun(ctx context.Context, competitorID, eventID, categoryID uint) error
	SetBlocked(ctx context.Context, id uint, blocked bool, reason string) error
	ExistingKeys(ctx context.Context, eventID, categoryID uint, competitorIDs []uint) (map[uint]bool, error)
}

type QuotaService struct {
	repo           QuotaRepository
	eventRepo      EventRepository
	competitorRepo CompetitorRepository
	now            func() time.Time
}

func NewQuotaService(repo QuotaRepository, eventRepo EventRepository, competitorRepo CompetitorRepository) *QuotaService {
	return &QuotaService{
		repo:           repo,
		eventRepo:      eventRepo,
		competitorRepo: competitorRepo,
		now:            time.Now,
	}
}

// Create provisions a quota for one competitor. The cap comes from the
// event's run config, falling back to the default.
func (s *QuotaService) Create(ctx context.Context, competitorID, eventID, categoryID uint) (domain.ParticipationQuota, error) {
	if _, err := s.competitorRepo.FindByID(ctx, competitorID); err != nil {
		return domain.ParticipationQuota{}, fmt.Errorf("s.competitorRepo.FindByID -> %w", err)
	}
	if _, err := s.eventRepo.FindByID(ctx, eventID); err != nil {
		return domain.ParticipationQuota{}, fmt.Errorf("s.eventRepo.FindByID -> %w", err)
	}

	created, err := s.repo.Create(ctx, domain.ParticipationQuota{
		CompetitorID: competitorID,
		EventID:      eventID,
		CategoryID:   categoryID,
		MaxRuns:      s.maxRunsFor(ctx, eventID, categoryID),
		MayCompete:   true,
	})
	if err != nil {
		return domain.ParticipationQuota{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *QuotaService) FindByID(ctx context.Context, id uint) (domain.ParticipationQuota, error) {
	found, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.ParticipationQuota{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return found, nil
}

func (s *QuotaService) FindByEvent(ctx context.Context, eventID uint) ([]domain.ParticipationQuota, error) {
	quotas, err := s.repo.FindByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByEvent -> %w", err)
	}

	return quotas, nil
}

// RegisterRun consumes one run. The decrement happens in a single
// conditional update, so two concurrent calls can never take the last slot
// twice.
func (s *QuotaService) RegisterRun(ctx context.Context, competitorID, eventID, categoryID uint) (domain.ParticipationQuota, error) {
	quota, err := s.repo.RegisterRun(ctx, competitorID, eventID, categoryID)
	if err != nil {
		return domain.ParticipationQuota{}, fmt.Errorf("s.repo.RegisterRun -> %w", err)
	}

	return quota, nil
}

func (s *QuotaService) Block(ctx context.Context, id uint, reason string) error {
	if err := s.repo.SetBlocked(ctx, id, true, reason); err != nil {
		return fmt.Errorf("s.repo.SetBlocked -> %w", err)
	}

	return nil
}

func (s *QuotaService) Unblock(ctx context.Context, id uint) error {
	if err := s.repo.SetBlocked(ctx, id, false, ""); err != nil {
		return fmt.Errorf("s.repo.SetBlocked -> %w", err)
	}

	return nil
}

// AutoProvision creates quotas for the given competitors across every
// upcoming active event, each under the competitor's assigned category.
// Competitors without an assigned category are skipped, as are competitors
// already holding a quota, so re-running is safe. Returns how many quotas
// were created.
func (s *QuotaService) AutoProvision(ctx context.Context, competitorIDs []uint) (int, error) {
	if len(competitorIDs) == 0 {
		return 0, nil
	}

	competitors, err := s.competitorRepo.FindByIDs(ctx, competitorIDs)
	if err != nil {
		return 0, fmt.Errorf("s.competitorRepo.FindByIDs -> %w", err)
	}

	byCategory := make(map[uint][]uint)
	for _, c := range competitors {
		if c.CategoryID == nil {
			continue
		}
		byCategory[*c.CategoryID] = append(byCategory[*c.CategoryID], c.ID)
	}
	if len(byCategory) == 0 {
		return 0, nil
	}

	events, err := s.eventRepo.FindActiveFrom(ctx, s.now().Truncate(24*time.Hour))
	if err != nil {
		return 0, fmt.Errorf("s.eventRepo.FindActiveFrom -> %w", err)
	}

	created := 0
	for _, event := range events {
		for categoryID, ids := range byCategory {
			existing, err := s.repo.ExistingKeys(ctx, event.ID, categoryID, ids)
			if err != nil {
				return created, fmt.Errorf("s.repo.ExistingKeys -> %w", err)
			}

			maxRuns := s.maxRunsFor(ctx, event.ID, categoryID)

			for _, competitorID := range ids {
				if existing[competitorID] {
					continue
				}

				_, err = s.repo.Create(ctx, domain.ParticipationQuota{
					CompetitorID: competitorID,
					EventID:      event.ID,
					CategoryID:   categoryID,
					MaxRuns:      maxRuns,
					MayCompete:   true,
				})
				if err != nil {
					return created, fmt.Errorf("s.repo.Create -> %w", err)
				}
				created++
			}
		}

		zap.L().Info("provisioned participation quotas",
			zap.Uint("event_id", event.ID),
			zap.Int("created", created))
	}

	return created, nil
}

func (s *QuotaService) maxRunsFor(ctx context.Context, eventID, categoryID uint) int {
	conf, err := s.eventRepo.FindRunConfig(ctx, eventID, categoryID)
	if err != nil || conf.MaxRunsPerCompetitor <= 0 {
		return DefaultMaxRuns
	}

	return conf.MaxRunsPerCompetitor
}
