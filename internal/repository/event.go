package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/lctp-br/lctp-api/internal/domain"
	"github.com/lctp-br/lctp-api/internal/repository/dao"
)

var (
	ErrEventNotFound     = dao.ErrEventNotFound
	ErrRunConfigNotFound = dao.ErrRunConfigNotFound
)

type EventDAO interface {
	Insert(ctx context.Context, event dao.Event) (dao.Event, error)
	FindByID(ctx context.Context, id uint) (dao.Event, error)
	FindAll(ctx context.Context) ([]dao.Event, error)
	FindActiveFrom(ctx context.Context, from time.Time) ([]dao.Event, error)
	Update(ctx context.Context, event dao.Event) (dao.Event, error)
	UpsertRunConfig(ctx context.Context, conf dao.RunConfig) (dao.RunConfig, error)
	FindRunConfig(ctx context.Context, eventID, categoryID uint) (dao.RunConfig, error)
}

type EventRepository struct {
	dao EventDAO
}

func NewEventRepository(dao EventDAO) *EventRepository {
	return &EventRepository{
		dao: dao,
	}
}

func (r *EventRepository) Create(ctx context.Context, event domain.Event) (domain.Event, error) {
	created, err := r.dao.Insert(ctx, eventDomainToDAO(event))
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return eventDAOToDomain(created), nil
}

func (r *EventRepository) FindByID(ctx context.Context, id uint) (domain.Event, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return eventDAOToDomain(found), nil
}

func (r *EventRepository) FindAll(ctx context.Context) ([]domain.Event, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	events := make([]domain.Event, 0, len(found))
	for _, e := range found {
		events = append(events, eventDAOToDomain(e))
	}

	return events, nil
}

func (r *EventRepository) FindActiveFrom(ctx context.Context, from time.Time) ([]domain.Event, error) {
	found, err := r.dao.FindActiveFrom(ctx, from)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindActiveFrom -> %w", err)
	}

	events := make([]domain.Event, 0, len(found))
	for _, e := range found {
		events = append(events, eventDAOToDomain(e))
	}

	return events, nil
}

func (r *EventRepository) Update(ctx context.Context, event domain.Event) (domain.Event, error) {
	updated, err := r.dao.Update(ctx, eventDomainToDAO(event))
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return eventDAOToDomain(updated), nil
}

func (r *EventRepository) UpsertRunConfig(ctx context.Context, conf domain.RunConfig) (domain.RunConfig, error) {
	saved, err := r.dao.UpsertRunConfig(ctx, dao.RunConfig{
		ID:                   conf.ID,
		EventID:              conf.EventID,
		CategoryID:           conf.CategoryID,
		MaxRunsPerTrio:       conf.MaxRunsPerTrio,
		MaxRunsPerCompetitor: conf.MaxRunsPerCompetitor,
		TimeLimit:            conf.TimeLimit,
	})
	if err != nil {
		return domain.RunConfig{}, fmt.Errorf("r.dao.UpsertRunConfig -> %w", err)
	}

	return runConfigDAOToDomain(saved), nil
}

func (r *EventRepository) FindRunConfig(ctx context.Context, eventID, categoryID uint) (domain.RunConfig, error) {
	found, err := r.dao.FindRunConfig(ctx, eventID, categoryID)
	if err != nil {
		return domain.RunConfig{}, fmt.Errorf("r.dao.FindRunConfig -> %w", err)
	}

	return runConfigDAOToDomain(found), nil
}

func eventDAOToDomain(e dao.Event) domain.Event {
	return domain.Event{
		ID:              e.ID,
		Name:            e.Name,
		Date:            e.Date,
		Ranch:           e.Ranch,
		City:            e.City,
		State:           e.State,
		EntryFee:        e.EntryFee,
		DiscountPercent: e.DiscountPercent,
		Active:          e.Active,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}
}

func eventDomainToDAO(e domain.Event) dao.Event {
	return dao.Event{
		ID:              e.ID,
		Name:            e.Name,
		Date:            e.Date,
		Ranch:           e.Ranch,
		City:            e.City,
		State:           e.State,
		EntryFee:        e.EntryFee,
		DiscountPercent: e.DiscountPercent,
		Active:          e.Active,
	}
}

func runConfigDAOToDomain(c dao.RunConfig) domain.RunConfig {
	return domain.RunConfig{
		ID:                   c.ID,
		EventID:              c.EventID,
		CategoryID:           c.CategoryID,
		MaxRunsPerTrio:       c.MaxRunsPerTrio,
		MaxRunsPerCompetitor: c.MaxRunsPerCompetitor,
		TimeLimit:            c.TimeLimit,
	}
}
