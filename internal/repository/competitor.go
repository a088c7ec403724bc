package repository

import (
	"context"
	"fmt"

	"github.com/lctp-br/lctp-api/internal/domain"
	"github.com/lctp-br/lctp-api/internal/repository/dao"
)

var ErrCompetitorNotFound = dao.ErrCompetitorNotFound

type CompetitorDAO interface {
	Insert(ctx context.Context, competitor dao.Competitor) (dao.Competitor, error)
	FindByID(ctx context.Context, id uint) (dao.Competitor, error)
	FindByIDs(ctx context.Context, ids []uint) ([]dao.Competitor, error)
	FindAll(ctx context.Context, onlyActive bool) ([]dao.Competitor, error)
	Update(ctx context.Context, competitor dao.Competitor) (dao.Competitor, error)
	Deactivate(ctx context.Context, id uint) error
}

type CompetitorRepository struct {
	dao CompetitorDAO
}

func NewCompetitorRepository(dao CompetitorDAO) *CompetitorRepository {
	return &CompetitorRepository{
		dao: dao,
	}
}

func (r *CompetitorRepository) Create(ctx context.Context, competitor domain.Competitor) (domain.Competitor, error) {
	created, err := r.dao.Insert(ctx, competitorDomainToDAO(competitor))
	if err != nil {
		return domain.Competitor{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return competitorDAOToDomain(created), nil
}

func (r *CompetitorRepository) FindByID(ctx context.Context, id uint) (domain.Competitor, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Competitor{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return competitorDAOToDomain(found), nil
}

func (r *CompetitorRepository) FindByIDs(ctx context.Context, ids []uint) ([]domain.Competitor, error) {
	found, err := r.dao.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByIDs -> %w", err)
	}

	competitors := make([]domain.Competitor, 0, len(found))
	for _, c := range found {
		competitors = append(competitors, competitorDAOToDomain(c))
	}

	return competitors, nil
}

func (r *CompetitorRepository) FindAll(ctx context.Context, onlyActive bool) ([]domain.Competitor, error) {
	found, err := r.dao.FindAll(ctx, onlyActive)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	competitors := make([]domain.Competitor, 0, len(found))
	for _, c := range found {
		competitors = append(competitors, competitorDAOToDomain(c))
	}

	return competitors, nil
}

func (r *CompetitorRepository) Update(ctx context.Context, competitor domain.Competitor) (domain.Competitor, error) {
	updated, err := r.dao.Update(ctx, competitorDomainToDAO(competitor))
	if err != nil {
		return domain.Competitor{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return competitorDAOToDomain(updated), nil
}

func (r *CompetitorRepository) Deactivate(ctx context.Context, id uint) error {
	if err := r.dao.Deactivate(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Deactivate -> %w", err)
	}

	return nil
}

func competitorDAOToDomain(c dao.Competitor) domain.Competitor {
	return domain.Competitor{
		ID:         c.ID,
		Name:       c.Name,
		BirthDate:  c.BirthDate,
		Handicap:   c.Handicap,
		Sex:        c.Sex,
		City:       c.City,
		State:      c.State,
		Active:     c.Active,
		CategoryID: c.CategoryID,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}

func competitorDomainToDAO(c domain.Competitor) dao.Competitor {
	return dao.Competitor{
		ID:         c.ID,
		Name:       c.Name,
		BirthDate:  c.BirthDate,
		Handicap:   c.Handicap,
		Sex:        c.Sex,
		City:       c.City,
		State:      c.State,
		Active:     c.Active,
		CategoryID: c.CategoryID,
	}
}
