package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lctp-br/lctp-api/internal/domain"
	"github.com/lctp-br/lctp-api/internal/repository"
)

// DefaultDiscountPercent is withheld from prize money before it converts to
// championship points.
const DefaultDiscountPercent = 5

var (
	ErrEventNotFound     = repository.ErrEventNotFound
	ErrRunConfigNotFound = repository.ErrRunConfigNotFound
	ErrEventInPast       = errors.New("event date is in the past")
)

type EventRepository interface {
	Create(ctx context.Context, event domain.Event) (domain.Event, error)
	FindByID(ctx context.Context, id uint) (domain.Event, error)
	FindAll(ctx context.Context) ([]domain.Event, error)
	FindActiveFrom(ctx context.Context, from time.Time) ([]domain.Event, error)
	Update(ctx context.Context, event domain.Event) (domain.Event, error)
	UpsertRunConfig(ctx context.Context, conf domain.RunConfig) (domain.RunConfig, error)
	FindRunConfig(ctx context.Context, eventID, categoryID uint) (domain.RunConfig, error)
}

type EventService struct {
	repo EventRepository
	now  func() time.Time
}

func NewEventService(repo EventRepository) *EventService {
	return &EventService{
		repo: repo,
		now:  time.Now,
	}
}

func (s *EventService) Create(ctx context.Context, event domain.Event) (domain.Event, error) {
	if event.Date.Before(s.now().Truncate(24 * time.Hour)) {
		return domain.Event{}, ErrEventInPast
	}

	if event.DiscountPercent == 0 {
		event.DiscountPercent = DefaultDiscountPercent
	}
	event.Active = true

	created, err := s.repo.Create(ctx, event)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *EventService) FindByID(ctx context.Context, id uint) (domain.Event, error) {
	found, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return found, nil
}

func (s *EventService) FindAll(ctx context.Context) ([]domain.Event, error) {
	events, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return events, nil
}

func (s *EventService) Update(ctx context.Context, event domain.Event) (domain.Event, error) {
	if _, err := s.repo.FindByID(ctx, event.ID); err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	updated, err := s.repo.Update(ctx, event)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *EventService) UpsertRunConfig(ctx context.Context, conf domain.RunConfig) (domain.RunConfig, error) {
	if _, err := s.repo.FindByID(ctx, conf.EventID); err != nil {
		return domain.RunConfig{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	saved, err := s.repo.UpsertRunConfig(ctx, conf)
	if err != nil {
		return domain.RunConfig{}, fmt.Errorf("s.repo.UpsertRunConfig -> %w", err)
	}

	return saved, nil
}

func (s *EventService) FindRunConfig(ctx context.Context, eventID, categoryID uint) (domain.RunConfig, error) {
	conf, err := s.repo.FindRunConfig(ctx, eventID, categoryID)
	if err != nil {
		return domain.RunConfig{}, fmt.Errorf("s.repo.FindRunConfig -> %w", err)
	}

	return conf, nil
}
