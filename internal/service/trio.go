package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"go.uber.org/zap"

	"github.com/lctp-br/lctp-api/internal/domain"
	"github.com/lctp-br/lctp-api/internal/repository"
	"github.com/lctp-br/lctp-api/internal/rules"
)

var (
	ErrTrioNotFound         = repository.ErrTrioNotFound
	ErrTrioNotEligible      = errors.New("trio is not eligible")
	ErrDrawNotSupported     = errors.New("category does not support drawing")
	ErrNotEnoughCompetitors = errors.New("not enough competitors for a draw")
)

type TrioRepository interface {
	Create(ctx context.Context, trio domain.Trio) (domain.Trio, error)
	CreateBatch(ctx context.Context, trios []domain.Trio) ([]domain.Trio, error)
	FindByID(ctx context.Context, id uint) (domain.Trio, error)
	FindByEventAndCategory(ctx context.Context, eventID, categoryID uint) ([]domain.Trio, error)
	UpdateStatus(ctx context.Context, id uint, status domain.TrioStatus) error
	CountMemberships(ctx context.Context, eventID, categoryID uint, competitorIDs []uint) (map[uint]int, error)
}

type TrioService struct {
	repo           TrioRepository
	competitorRepo CompetitorRepository
	categoryRepo   CategoryRepository
	eventRepo      EventRepository
	validator      *rules.Validator

	// shuffle is swapped for a no-op in tests.
	shuffle func(n int, swap func(i, j int))
}

func NewTrioService(
	repo TrioRepository,
	competitorRepo CompetitorRepository,
	categoryRepo CategoryRepository,
	eventRepo EventRepository,
	validator *rules.Validator,
) *TrioService {
	return &TrioService{
		repo:           repo,
		competitorRepo: competitorRepo,
		categoryRepo:   categoryRepo,
		eventRepo:      eventRepo,
		validator:      validator,
		shuffle:        rand.Shuffle,
	}
}

// Validate checks a candidate trio without persisting anything.
func (s *TrioService) Validate(ctx context.Context, eventID, categoryID uint, memberIDs [domain.TrioSize]uint) (rules.Verdict, error) {
	category, event, members, err := s.loadTrioContext(ctx, eventID, categoryID, memberIDs)
	if err != nil {
		return rules.Verdict{}, err
	}

	verdict, err := s.validator.Validate(category.Type, event.Date, members[0], members[1], members[2])
	if err != nil {
		return rules.Verdict{}, fmt.Errorf("s.validator.Validate -> %w", err)
	}

	return verdict, nil
}

// Create validates the composition and registers the trio. The trio number
// is assigned on insert.
func (s *TrioService) Create(ctx context.Context, eventID, categoryID uint, memberIDs [domain.TrioSize]uint) (domain.Trio, error) {
	category, event, members, err := s.loadTrioContext(ctx, eventID, categoryID, memberIDs)
	if err != nil {
		return domain.Trio{}, err
	}

	verdict, err := s.validator.Validate(category.Type, event.Date, members[0], members[1], members[2])
	if err != nil {
		return domain.Trio{}, fmt.Errorf("s.validator.Validate -> %w", err)
	}
	if !verdict.Eligible {
		return domain.Trio{}, fmt.Errorf("%s: %w", verdict.Reason, ErrTrioNotEligible)
	}

	trio := s.buildTrio(event, categoryID, members, false)

	created, err := s.repo.Create(ctx, trio)
	if err != nil {
		return domain.Trio{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

// Draw forms trios at random from the competitors not yet entered in the
// event+category. Full draw categories pair everyone; partial draw keeps
// hand-picked trios and only draws the remainder, within the category's pool
// bounds. Compositions that fail eligibility are skipped.
func (s *TrioService) Draw(ctx context.Context, eventID, categoryID uint) ([]domain.Trio, error) {
	category, err := s.categoryRepo.FindByID(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("s.categoryRepo.FindByID -> %w", err)
	}

	set, err := s.validator.Rules(category.Type)
	if err != nil {
		return nil, fmt.Errorf("s.validator.Rules -> %w", err)
	}
	if set.Draw == rules.DrawNone {
		return nil, fmt.Errorf("category %s: %w", category.Type, ErrDrawNotSupported)
	}

	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("s.eventRepo.FindByID -> %w", err)
	}

	pool, err := s.drawPool(ctx, eventID, categoryID)
	if err != nil {
		return nil, err
	}

	minEntrants := set.MinDrawEntrants
	if minEntrants < domain.TrioSize {
		minEntrants = domain.TrioSize
	}
	if len(pool) < minEntrants {
		return nil, fmt.Errorf("%d in the pool, need %d: %w", len(pool), minEntrants, ErrNotEnoughCompetitors)
	}

	s.shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })

	if set.MaxDrawEntrants > 0 && len(pool) > set.MaxDrawEntrants {
		pool = pool[:set.MaxDrawEntrants]
	}

	var trios []domain.Trio
	for i := 0; i+domain.TrioSize <= len(pool); i += domain.TrioSize {
		members := [domain.TrioSize]domain.Competitor{pool[i], pool[i+1], pool[i+2]}

		verdict, err := s.validator.Validate(category.Type, event.Date, members[0], members[1], members[2])
		if err != nil {
			return nil, fmt.Errorf("s.validator.Validate -> %w", err)
		}
		if !verdict.Eligible {
			zap.L().Warn("skipping drawn trio",
				zap.Uint("event_id", eventID),
				zap.Uint("category_id", categoryID),
				zap.String("reason", verdict.Reason))
			continue
		}

		trios = append(trios, s.buildTrio(event, categoryID, members, true))
	}

	if len(trios) == 0 {
		return nil, ErrNotEnoughCompetitors
	}

	created, err := s.repo.CreateBatch(ctx, trios)
	if err != nil {
		return nil, fmt.Errorf("s.repo.CreateBatch -> %w", err)
	}

	return created, nil
}

func (s *TrioService) FindByID(ctx context.Context, id uint) (domain.Trio, error) {
	found, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Trio{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return found, nil
}

func (s *TrioService) FindByEventAndCategory(ctx context.Context, eventID, categoryID uint) ([]domain.Trio, error) {
	trios, err := s.repo.FindByEventAndCategory(ctx, eventID, categoryID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByEventAndCategory -> %w", err)
	}

	return trios, nil
}

func (s *TrioService) UpdateStatus(ctx context.Context, id uint, status domain.TrioStatus) error {
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return fmt.Errorf("s.repo.UpdateStatus -> %w", err)
	}

	return nil
}

// drawPool is every active competitor not yet entered in a trio for the
// event+category.
func (s *TrioService) drawPool(ctx context.Context, eventID, categoryID uint) ([]domain.Competitor, error) {
	competitors, err := s.competitorRepo.FindAll(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("s.competitorRepo.FindAll -> %w", err)
	}

	ids := make([]uint, 0, len(competitors))
	for _, c := range competitors {
		ids = append(ids, c.ID)
	}

	counts, err := s.repo.CountMemberships(ctx, eventID, categoryID, ids)
	if err != nil {
		return nil, fmt.Errorf("s.repo.CountMemberships -> %w", err)
	}

	pool := make([]domain.Competitor, 0, len(competitors))
	for _, c := range competitors {
		if counts[c.ID] == 0 {
			pool = append(pool, c)
		}
	}

	return pool, nil
}

func (s *TrioService) buildTrio(event domain.Event, categoryID uint, members [domain.TrioSize]domain.Competitor, drawn bool) domain.Trio {
	trioMembers := make([]domain.TrioMember, 0, domain.TrioSize)
	for i, m := range members {
		trioMembers = append(trioMembers, domain.TrioMember{
			CompetitorID: m.ID,
			Order:        i + 1,
		})
	}

	return domain.Trio{
		EventID:       event.ID,
		CategoryID:    categoryID,
		Status:        domain.TrioActive,
		TotalHandicap: rules.CombinedHandicap(members[0], members[1], members[2]),
		TotalAge:      rules.CombinedAge(event.Date, members[0], members[1], members[2]),
		Drawn:         drawn,
		Members:       trioMembers,
	}
}

func (s *TrioService) loadTrioContext(ctx context.Context, eventID, categoryID uint, memberIDs [domain.TrioSize]uint) (domain.Category, domain.Event, [domain.TrioSize]domain.Competitor, error) {
	var members [domain.TrioSize]domain.Competitor

	category, err := s.categoryRepo.FindByID(ctx, categoryID)
	if err != nil {
		return domain.Category{}, domain.Event{}, members, fmt.Errorf("s.categoryRepo.FindByID -> %w", err)
	}

	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return domain.Category{}, domain.Event{}, members, fmt.Errorf("s.eventRepo.FindByID -> %w", err)
	}

	found, err := s.competitorRepo.FindByIDs(ctx, memberIDs[:])
	if err != nil {
		return domain.Category{}, domain.Event{}, members, fmt.Errorf("s.competitorRepo.FindByIDs -> %w", err)
	}

	byID := make(map[uint]domain.Competitor, len(found))
	for _, c := range found {
		byID[c.ID] = c
	}

	for i, id := range memberIDs {
		c, ok := byID[id]
		if !ok {
			return domain.Category{}, domain.Event{}, members, fmt.Errorf("competitor %d: %w", id, ErrCompetitorNotFound)
		}
		members[i] = c
	}

	return category, event, members, nil
}
