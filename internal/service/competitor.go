package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/lctp-br/lctp-api/internal/domain"
	"github.com/lctp-br/lctp-api/internal/repository"
)

var (
	ErrCompetitorNotFound = repository.ErrCompetitorNotFound
	ErrInvalidHandicap    = errors.New("handicap out of range")
	ErrInvalidSex         = errors.New("sex must be M or F")
)

type CompetitorRepository interface {
	Create(ctx context.Context, competitor domain.Competitor) (domain.Competitor, error)
	FindByID(ctx context.Context, id uint) (domain.Competitor, error)
	FindByIDs(ctx context.Context, ids []uint) ([]domain.Competitor, error)
	FindAll(ctx context.Context, onlyActive bool) ([]domain.Competitor, error)
	Update(ctx context.Context, competitor domain.Competitor) (domain.Competitor, error)
	Deactivate(ctx context.Context, id uint) error
}

type CompetitorService struct {
	repo CompetitorRepository
}

func NewCompetitorService(repo CompetitorRepository) *CompetitorService {
	return &CompetitorService{
		repo: repo,
	}
}

func (s *CompetitorService) Create(ctx context.Context, competitor domain.Competitor) (domain.Competitor, error) {
	if err := validateCompetitor(competitor); err != nil {
		return domain.Competitor{}, err
	}

	competitor.Active = true

	created, err := s.repo.Create(ctx, competitor)
	if err != nil {
		return domain.Competitor{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *CompetitorService) FindByID(ctx context.Context, id uint) (domain.Competitor, error) {
	found, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Competitor{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return found, nil
}

func (s *CompetitorService) FindAll(ctx context.Context, onlyActive bool) ([]domain.Competitor, error) {
	competitors, err := s.repo.FindAll(ctx, onlyActive)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return competitors, nil
}

func (s *CompetitorService) Update(ctx context.Context, competitor domain.Competitor) (domain.Competitor, error) {
	if err := validateCompetitor(competitor); err != nil {
		return domain.Competitor{}, err
	}

	if _, err := s.repo.FindByID(ctx, competitor.ID); err != nil {
		return domain.Competitor{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	updated, err := s.repo.Update(ctx, competitor)
	if err != nil {
		return domain.Competitor{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *CompetitorService) Deactivate(ctx context.Context, id uint) error {
	if err := s.repo.Deactivate(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Deactivate -> %w", err)
	}

	return nil
}

func validateCompetitor(competitor domain.Competitor) error {
	if !competitor.HasValidHandicap() {
		return fmt.Errorf("handicap %d: %w", competitor.Handicap, ErrInvalidHandicap)
	}
	if competitor.Sex != domain.SexMale && competitor.Sex != domain.SexFemale {
		return ErrInvalidSex
	}

	return nil
}
