package repository

import (
	"context"
	"fmt"

	"github.com/lctp-br/lctp-api/internal/domain"
	"github.com/lctp-br/lctp-api/internal/repository/dao"
)

var (
	ErrResultNotFound = dao.ErrResultNotFound
	ErrResultExists   = dao.ErrResultExists
)

// PlacementUpdate mirrors one trio's recomputed standing for the batch
// write.
type PlacementUpdate struct {
	ResultID    uint
	Placement   *int
	AverageTime *float64
}

type ResultDAO interface {
	Insert(ctx context.Context, result dao.RunResult) (dao.RunResult, error)
	FindByID(ctx context.Context, id uint) (dao.RunResult, error)
	FindByEventAndCategory(ctx context.Context, eventID, categoryID uint) ([]dao.RunResult, error)
	AppendAttempt(ctx context.Context, resultID uint, attemptTime *float64, average *float64, status string) (dao.RunResult, error)
	ApplyPlacements(ctx context.Context, updates []dao.PlacementUpdate) error
	UpdatePrize(ctx context.Context, id uint, prizeValue float64) error
}

type ResultRepository struct {
	dao ResultDAO
}

func NewResultRepository(dao ResultDAO) *ResultRepository {
	return &ResultRepository{
		dao: dao,
	}
}

func (r *ResultRepository) Create(ctx context.Context, result domain.RunResult) (domain.RunResult, error) {
	created, err := r.dao.Insert(ctx, resultDomainToDAO(result))
	if err != nil {
		return domain.RunResult{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return resultDAOToDomain(created), nil
}

func (r *ResultRepository) FindByID(ctx context.Context, id uint) (domain.RunResult, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.RunResult{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return resultDAOToDomain(found), nil
}

func (r *ResultRepository) FindByEventAndCategory(ctx context.Context, eventID, categoryID uint) ([]domain.RunResult, error) {
	found, err := r.dao.FindByEventAndCategory(ctx, eventID, categoryID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByEventAndCategory -> %w", err)
	}

	results := make([]domain.RunResult, 0, len(found))
	for _, res := range found {
		results = append(results, resultDAOToDomain(res))
	}

	return results, nil
}

func (r *ResultRepository) AppendAttempt(ctx context.Context, resultID uint, attemptTime *float64, average *float64, status domain.TrioStatus) (domain.RunResult, error) {
	updated, err := r.dao.AppendAttempt(ctx, resultID, attemptTime, average, string(status))
	if err != nil {
		return domain.RunResult{}, fmt.Errorf("r.dao.AppendAttempt -> %w", err)
	}

	return resultDAOToDomain(updated), nil
}

func (r *ResultRepository) ApplyPlacements(ctx context.Context, updates []PlacementUpdate) error {
	batch := make([]dao.PlacementUpdate, 0, len(updates))
	for _, u := range updates {
		batch = append(batch, dao.PlacementUpdate{
			ResultID:    u.ResultID,
			Placement:   u.Placement,
			AverageTime: u.AverageTime,
		})
	}

	if err := r.dao.ApplyPlacements(ctx, batch); err != nil {
		return fmt.Errorf("r.dao.ApplyPlacements -> %w", err)
	}

	return nil
}

func (r *ResultRepository) UpdatePrize(ctx context.Context, id uint, prizeValue float64) error {
	if err := r.dao.UpdatePrize(ctx, id, prizeValue); err != nil {
		return fmt.Errorf("r.dao.UpdatePrize -> %w", err)
	}

	return nil
}

func resultDAOToDomain(r dao.RunResult) domain.RunResult {
	attempts := make([]*float64, 0, len(r.Attempts))
	for _, a := range r.Attempts {
		attempts = append(attempts, a.Time)
	}

	return domain.RunResult{
		ID:          r.ID,
		EventID:     r.EventID,
		CategoryID:  r.CategoryID,
		TrioID:      r.TrioID,
		Attempts:    attempts,
		AverageTime: r.AverageTime,
		Status:      domain.TrioStatus(r.Status),
		Placement:   r.Placement,
		PrizeValue:  r.PrizeValue,
		Notes:       r.Notes,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func resultDomainToDAO(r domain.RunResult) dao.RunResult {
	attempts := make([]dao.RunAttempt, 0, len(r.Attempts))
	for i, a := range r.Attempts {
		attempts = append(attempts, dao.RunAttempt{
			Number: i + 1,
			Time:   a,
		})
	}

	return dao.RunResult{
		ID:          r.ID,
		EventID:     r.EventID,
		CategoryID:  r.CategoryID,
		TrioID:      r.TrioID,
		AverageTime: r.AverageTime,
		Status:      string(r.Status),
		Placement:   r.Placement,
		PrizeValue:  r.PrizeValue,
		Notes:       r.Notes,
		Attempts:    attempts,
	}
}
