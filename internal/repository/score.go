package repository

import (
	"context"
	"fmt"

	"github.com/lctp-br/lctp-api/internal/domain"
	"github.com/lctp-br/lctp-api/internal/repository/dao"
)

type ScoreDAO interface {
	Replace(ctx context.Context, eventID, categoryID uint, records []dao.ScoreRecord) ([]dao.ScoreRecord, error)
	FindByEventAndCategory(ctx context.Context, eventID, categoryID uint) ([]dao.ScoreRecord, error)
	Ranking(ctx context.Context, categoryID uint) ([]dao.RankingRow, error)
}

type ScoreRepository struct {
	dao ScoreDAO
}

func NewScoreRepository(dao ScoreDAO) *ScoreRepository {
	return &ScoreRepository{
		dao: dao,
	}
}

// Replace swaps the stored scores of an event+category for the given batch.
func (r *ScoreRepository) Replace(ctx context.Context, eventID, categoryID uint, records []domain.ScoreRecord) ([]domain.ScoreRecord, error) {
	batch := make([]dao.ScoreRecord, 0, len(records))
	for _, rec := range records {
		batch = append(batch, scoreDomainToDAO(rec))
	}

	saved, err := r.dao.Replace(ctx, eventID, categoryID, batch)
	if err != nil {
		return nil, fmt.Errorf("r.dao.Replace -> %w", err)
	}

	out := make([]domain.ScoreRecord, 0, len(saved))
	for _, rec := range saved {
		out = append(out, scoreDAOToDomain(rec))
	}

	return out, nil
}

func (r *ScoreRepository) FindByEventAndCategory(ctx context.Context, eventID, categoryID uint) ([]domain.ScoreRecord, error) {
	found, err := r.dao.FindByEventAndCategory(ctx, eventID, categoryID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByEventAndCategory -> %w", err)
	}

	records := make([]domain.ScoreRecord, 0, len(found))
	for _, rec := range found {
		records = append(records, scoreDAOToDomain(rec))
	}

	return records, nil
}

func (r *ScoreRepository) Ranking(ctx context.Context, categoryID uint) ([]domain.RankingEntry, error) {
	rows, err := r.dao.Ranking(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.Ranking -> %w", err)
	}

	entries := make([]domain.RankingEntry, 0, len(rows))
	for i, row := range rows {
		entries = append(entries, domain.RankingEntry{
			CompetitorID:   row.CompetitorID,
			CompetitorName: row.CompetitorName,
			Events:         row.Events,
			TotalPoints:    row.TotalPoints,
			Position:       i + 1,
		})
	}

	return entries, nil
}

func scoreDAOToDomain(s dao.ScoreRecord) domain.ScoreRecord {
	return domain.ScoreRecord{
		ID:              s.ID,
		CompetitorID:    s.CompetitorID,
		EventID:         s.EventID,
		CategoryID:      s.CategoryID,
		TrioID:          s.TrioID,
		Placement:       s.Placement,
		PlacementPoints: s.PlacementPoints,
		PrizePoints:     s.PrizePoints,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

func scoreDomainToDAO(s domain.ScoreRecord) dao.ScoreRecord {
	return dao.ScoreRecord{
		ID:              s.ID,
		CompetitorID:    s.CompetitorID,
		EventID:         s.EventID,
		CategoryID:      s.CategoryID,
		TrioID:          s.TrioID,
		Placement:       s.Placement,
		PlacementPoints: s.PlacementPoints,
		PrizePoints:     s.PrizePoints,
	}
}
