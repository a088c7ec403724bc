package repository

import (
	"context"
	"fmt"

	"github.com/lctp-br/lctp-api/internal/domain"
	"github.com/lctp-br/lctp-api/internal/repository/dao"
)

var ErrTrioNotFound = dao.ErrTrioNotFound

type TrioDAO interface {
	Insert(ctx context.Context, trio dao.Trio) (dao.Trio, error)
	InsertBatch(ctx context.Context, trios []dao.Trio) ([]dao.Trio, error)
	FindByID(ctx context.Context, id uint) (dao.Trio, error)
	FindByEventAndCategory(ctx context.Context, eventID, categoryID uint) ([]dao.Trio, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
	CountMemberships(ctx context.Context, eventID, categoryID uint, competitorIDs []uint) (map[uint]int, error)
}

type TrioRepository struct {
	dao TrioDAO
}

func NewTrioRepository(dao TrioDAO) *TrioRepository {
	return &TrioRepository{
		dao: dao,
	}
}

func (r *TrioRepository) Create(ctx context.Context, trio domain.Trio) (domain.Trio, error) {
	created, err := r.dao.Insert(ctx, trioDomainToDAO(trio))
	if err != nil {
		return domain.Trio{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return trioDAOToDomain(created), nil
}

func (r *TrioRepository) CreateBatch(ctx context.Context, trios []domain.Trio) ([]domain.Trio, error) {
	batch := make([]dao.Trio, 0, len(trios))
	for _, t := range trios {
		batch = append(batch, trioDomainToDAO(t))
	}

	created, err := r.dao.InsertBatch(ctx, batch)
	if err != nil {
		return nil, fmt.Errorf("r.dao.InsertBatch -> %w", err)
	}

	out := make([]domain.Trio, 0, len(created))
	for _, t := range created {
		out = append(out, trioDAOToDomain(t))
	}

	return out, nil
}

func (r *TrioRepository) FindByID(ctx context.Context, id uint) (domain.Trio, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Trio{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return trioDAOToDomain(found), nil
}

func (r *TrioRepository) FindByEventAndCategory(ctx context.Context, eventID, categoryID uint) ([]domain.Trio, error) {
	found, err := r.dao.FindByEventAndCategory(ctx, eventID, categoryID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByEventAndCategory -> %w", err)
	}

	trios := make([]domain.Trio, 0, len(found))
	for _, t := range found {
		trios = append(trios, trioDAOToDomain(t))
	}

	return trios, nil
}

func (r *TrioRepository) UpdateStatus(ctx context.Context, id uint, status domain.TrioStatus) error {
	if err := r.dao.UpdateStatus(ctx, id, string(status)); err != nil {
		return fmt.Errorf("r.dao.UpdateStatus -> %w", err)
	}

	return nil
}

func (r *TrioRepository) CountMemberships(ctx context.Context, eventID, categoryID uint, competitorIDs []uint) (map[uint]int, error) {
	counts, err := r.dao.CountMemberships(ctx, eventID, categoryID, competitorIDs)
	if err != nil {
		return nil, fmt.Errorf("r.dao.CountMemberships -> %w", err)
	}

	return counts, nil
}

func trioDAOToDomain(t dao.Trio) domain.Trio {
	members := make([]domain.TrioMember, 0, len(t.Members))
	for _, m := range t.Members {
		member := domain.TrioMember{
			ID:           m.ID,
			TrioID:       m.TrioID,
			CompetitorID: m.CompetitorID,
			Order:        m.Order,
		}
		if m.Competitor.ID != 0 {
			competitor := competitorDAOToDomain(m.Competitor)
			member.Competitor = &competitor
		}
		members = append(members, member)
	}

	return domain.Trio{
		ID:            t.ID,
		EventID:       t.EventID,
		CategoryID:    t.CategoryID,
		Number:        t.Number,
		Status:        domain.TrioStatus(t.Status),
		TotalHandicap: t.TotalHandicap,
		TotalAge:      t.TotalAge,
		Drawn:         t.Drawn,
		Members:       members,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}

func trioDomainToDAO(t domain.Trio) dao.Trio {
	members := make([]dao.TrioMember, 0, len(t.Members))
	for _, m := range t.Members {
		members = append(members, dao.TrioMember{
			CompetitorID: m.CompetitorID,
			Order:        m.Order,
		})
	}

	return dao.Trio{
		ID:            t.ID,
		EventID:       t.EventID,
		CategoryID:    t.CategoryID,
		Number:        t.Number,
		Status:        string(t.Status),
		TotalHandicap: t.TotalHandicap,
		TotalAge:      t.TotalAge,
		Drawn:         t.Drawn,
		Members:       members,
	}
}
