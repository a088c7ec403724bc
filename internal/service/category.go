package service

import (
	"context"
	"fmt"

	"github.com/lctp-br/lctp-api/internal/domain"
	"github.com/lctp-br/lctp-api/internal/repository"
	"github.com/lctp-br/lctp-api/internal/rules"
)

var (
	ErrCategoryNotFound    = repository.ErrCategoryNotFound
	ErrCategoryNameExists  = repository.ErrCategoryNameExists
	ErrUnknownCategoryType = rules.ErrUnknownCategoryType
)

type CategoryRepository interface {
	Create(ctx context.Context, category domain.Category) (domain.Category, error)
	FindByID(ctx context.Context, id uint) (domain.Category, error)
	FindAll(ctx context.Context, onlyActive bool) ([]domain.Category, error)
	Update(ctx context.Context, category domain.Category) (domain.Category, error)
}

type CategoryService struct {
	repo CategoryRepository
	book *rules.RuleBook
}

func NewCategoryService(repo CategoryRepository, book *rules.RuleBook) *CategoryService {
	return &CategoryService{
		repo: repo,
		book: book,
	}
}

func (s *CategoryService) Create(ctx context.Context, category domain.Category) (domain.Category, error) {
	if _, err := s.book.RulesFor(category.Type); err != nil {
		return domain.Category{}, fmt.Errorf("s.book.RulesFor -> %w", err)
	}

	category.Active = true

	created, err := s.repo.Create(ctx, category)
	if err != nil {
		return domain.Category{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *CategoryService) FindByID(ctx context.Context, id uint) (domain.Category, error) {
	found, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Category{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return found, nil
}

func (s *CategoryService) FindAll(ctx context.Context, onlyActive bool) ([]domain.Category, error) {
	categories, err := s.repo.FindAll(ctx, onlyActive)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return categories, nil
}

func (s *CategoryService) Update(ctx context.Context, category domain.Category) (domain.Category, error) {
	if _, err := s.book.RulesFor(category.Type); err != nil {
		return domain.Category{}, fmt.Errorf("s.book.RulesFor -> %w", err)
	}

	if _, err := s.repo.FindByID(ctx, category.ID); err != nil {
		return domain.Category{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	updated, err := s.repo.Update(ctx, category)
	if err != nil {
		return domain.Category{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

// RulesFor exposes the rule set of a category type for read-only display.
func (s *CategoryService) RulesFor(categoryType domain.CategoryType) (rules.RuleSet, error) {
	set, err := s.book.RulesFor(categoryType)
	if err != nil {
		return rules.RuleSet{}, fmt.Errorf("s.book.RulesFor -> %w", err)
	}

	return set, nil
}
