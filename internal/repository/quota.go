package repository

import (
	"context"
	"fmt"

	"github.com/lctp-br/lctp-api/internal/domain"
	"github.com/lctp-br/lctp-api/internal/repository/dao"
)

var (
	ErrQuotaNotFound  = dao.ErrQuotaNotFound
	ErrQuotaExists    = dao.ErrQuotaExists
	ErrQuotaExhausted = dao.ErrQuotaExhausted
	ErrQuotaBlocked   = dao.ErrQuotaBlocked
)

type QuotaDAO interface {
	Insert(ctx context.Context, quota dao.ParticipationQuota) (dao.ParticipationQuota, error)
	FindByID(ctx context.Context, id uint) (dao.ParticipationQuota, error)
	FindByKey(ctx context.Context, competitorID, eventID, categoryID uint) (dao.ParticipationQuota, error)
	FindByEvent(ctx context.Context, eventID uint) ([]dao.ParticipationQuota, error)
	RegisterRun(ctx context.Context, competitorID, eventID, categoryID uint) (dao.ParticipationQuota, error)
	ReleaseRun(ctx context.Context, competitorID, eventID, categoryID uint) error
	SetBlocked(ctx context.Context, id uint, blocked bool, reason string) error
	ExistingKeys(ctx context.Context, eventID, categoryID uint, competitorIDs []uint) (map[uint]bool, error)
}

type QuotaRepository struct {
	dao QuotaDAO
}

func NewQuotaRepository(dao QuotaDAO) *QuotaRepository {
	return &QuotaRepository{
		dao: dao,
	}
}

func (r *QuotaRepository) Create(ctx context.Context, quota domain.ParticipationQuota) (domain.ParticipationQuota, error) {
	created, err := r.dao.Insert(ctx, quotaDomainToDAO(quota))
	if err != nil {
		return domain.ParticipationQuota{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return quotaDAOToDomain(created), nil
}

func (r *QuotaRepository) FindByID(ctx context.Context, id uint) (domain.ParticipationQuota, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.ParticipationQuota{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return quotaDAOToDomain(found), nil
}

func (r *QuotaRepository) FindByKey(ctx context.Context, competitorID, eventID, categoryID uint) (domain.ParticipationQuota, error) {
	found, err := r.dao.FindByKey(ctx, competitorID, eventID, categoryID)
	if err != nil {
		return domain.ParticipationQuota{}, fmt.Errorf("r.dao.FindByKey -> %w", err)
	}

	return quotaDAOToDomain(found), nil
}

func (r *QuotaRepository) FindByEvent(ctx context.Context, eventID uint) ([]domain.ParticipationQuota, error) {
	found, err := r.dao.FindByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByEvent -> %w", err)
	}

	quotas := make([]domain.ParticipationQuota, 0, len(found))
	for _, q := range found {
		quotas = append(quotas, quotaDAOToDomain(q))
	}

	return quotas, nil
}

func (r *QuotaRepository) RegisterRun(ctx context.Context, competitorID, eventID, categoryID uint) (domain.ParticipationQuota, error) {
	updated, err := r.dao.RegisterRun(ctx, competitorID, eventID, categoryID)
	if err != nil {
		return domain.ParticipationQuota{}, fmt.Errorf("r.dao.RegisterRun -> %w", err)
	}

	return quotaDAOToDomain(updated), nil
}

func (r *QuotaRepository) ReleaseRun(ctx context.Context, competitorID, eventID, categoryID uint) error {
	if err := r.dao.ReleaseRun(ctx, competitorID, eventID, categoryID); err != nil {
		return fmt.Errorf("r.dao.ReleaseRun -> %w", err)
	}

	return nil
}

func (r *QuotaRepository) SetBlocked(ctx context.Context, id uint, blocked bool, reason string) error {
	if err := r.dao.SetBlocked(ctx, id, blocked, reason); err != nil {
		return fmt.Errorf("r.dao.SetBlocked -> %w", err)
	}

	return nil
}

func (r *QuotaRepository) ExistingKeys(ctx context.Context, eventID, categoryID uint, competitorIDs []uint) (map[uint]bool, error) {
	existing, err := r.dao.ExistingKeys(ctx, eventID, categoryID, competitorIDs)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ExistingKeys -> %w", err)
	}

	return existing, nil
}

func quotaDAOToDomain(q dao.ParticipationQuota) domain.ParticipationQuota {
	return domain.ParticipationQuota{
		ID:           q.ID,
		CompetitorID: q.CompetitorID,
		EventID:      q.EventID,
		CategoryID:   q.CategoryID,
		MaxRuns:      q.MaxRuns,
		RunsExecuted: q.RunsExecuted,
		MayCompete:   q.MayCompete,
		BlockReason:  q.BlockReason,
		CreatedAt:    q.CreatedAt,
		UpdatedAt:    q.UpdatedAt,
	}
}

func quotaDomainToDAO(q domain.ParticipationQuota) dao.ParticipationQuota {
	return dao.ParticipationQuota{
		ID:           q.ID,
		CompetitorID: q.CompetitorID,
		EventID:      q.EventID,
		CategoryID:   q.CategoryID,
		MaxRuns:      q.MaxRuns,
		RunsExecuted: q.RunsExecuted,
		MayCompete:   q.MayCompete,
		BlockReason:  q.BlockReason,
	}
}
