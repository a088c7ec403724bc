package repository

import (
	"context"
	"fmt"

	"github.com/lctp-br/lctp-api/internal/domain"
	"github.com/lctp-br/lctp-api/internal/repository/dao"
)

var (
	ErrCategoryNotFound   = dao.ErrCategoryNotFound
	ErrCategoryNameExists = dao.ErrCategoryNameExists
)

type CategoryDAO interface {
	Insert(ctx context.Context, category dao.Category) (dao.Category, error)
	FindByID(ctx context.Context, id uint) (dao.Category, error)
	FindAll(ctx context.Context, onlyActive bool) ([]dao.Category, error)
	Update(ctx context.Context, category dao.Category) (dao.Category, error)
}

type CategoryRepository struct {
	dao CategoryDAO
}

func NewCategoryRepository(dao CategoryDAO) *CategoryRepository {
	return &CategoryRepository{
		dao: dao,
	}
}

func (r *CategoryRepository) Create(ctx context.Context, category domain.Category) (domain.Category, error) {
	created, err := r.dao.Insert(ctx, categoryDomainToDAO(category))
	if err != nil {
		return domain.Category{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return categoryDAOToDomain(created), nil
}

func (r *CategoryRepository) FindByID(ctx context.Context, id uint) (domain.Category, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Category{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return categoryDAOToDomain(found), nil
}

func (r *CategoryRepository) FindAll(ctx context.Context, onlyActive bool) ([]domain.Category, error) {
	found, err := r.dao.FindAll(ctx, onlyActive)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	categories := make([]domain.Category, 0, len(found))
	for _, c := range found {
		categories = append(categories, categoryDAOToDomain(c))
	}

	return categories, nil
}

func (r *CategoryRepository) Update(ctx context.Context, category domain.Category) (domain.Category, error) {
	updated, err := r.dao.Update(ctx, categoryDomainToDAO(category))
	if err != nil {
		return domain.Category{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return categoryDAOToDomain(updated), nil
}

func categoryDAOToDomain(c dao.Category) domain.Category {
	return domain.Category{
		ID:          c.ID,
		Name:        c.Name,
		Type:        domain.CategoryType(c.Type),
		Description: c.Description,
		Active:      c.Active,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func categoryDomainToDAO(c domain.Category) dao.Category {
	return dao.Category{
		ID:          c.ID,
		Name:        c.Name,
		Type:        string(c.Type),
		Description: c.Description,
		Active:      c.Active,
	}
}
