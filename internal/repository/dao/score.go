package dao

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type ScoreRecord struct {
	ID uint `gorm:"primaryKey"`

	CompetitorID uint       `gorm:"not null;uniqueIndex:idx_scores_competitor_event_category"`
	Competitor   Competitor `gorm:"foreignKey:CompetitorID"`
	EventID      uint       `gorm:"not null;uniqueIndex:idx_scores_competitor_event_category"`
	CategoryID   uint       `gorm:"not null;uniqueIndex:idx_scores_competitor_event_category"`
	TrioID       uint       `gorm:"not null"`

	Placement       int     `gorm:"not null"`
	PlacementPoints float64 `gorm:"not null"`
	PrizePoints     float64 `gorm:"not null"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type ScoreDAO struct {
	db *gorm.DB
}

func NewScoreDAO(db *gorm.DB) *ScoreDAO {
	return &ScoreDAO{
		db: db,
	}
}

// Replace swaps the event+category's score records for the given batch in
// one transaction, which makes score computation safe to re-run.
func (d *ScoreDAO) Replace(ctx context.Context, eventID, categoryID uint, records []ScoreRecord) ([]ScoreRecord, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ? AND category_id = ?", eventID, categoryID).
			Delete(&ScoreRecord{}).Error; err != nil {
			return err
		}

		if len(records) == 0 {
			return nil
		}

		return tx.Create(&records).Error
	})
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (d *ScoreDAO) FindByEventAndCategory(ctx context.Context, eventID, categoryID uint) ([]ScoreRecord, error) {
	var records []ScoreRecord

	result := d.db.WithContext(ctx).
		Where("event_id = ? AND category_id = ?", eventID, categoryID).
		Order("placement, competitor_id").
		Find(&records)
	if result.Error != nil {
		return nil, result.Error
	}

	return records, nil
}

// RankingRow is one aggregated line of the championship ranking query.
type RankingRow struct {
	CompetitorID   uint
	CompetitorName string
	Events         int
	TotalPoints    float64
}

// Ranking aggregates total points per competitor for a category across all
// events, best total first. A zero categoryID aggregates every category.
func (d *ScoreDAO) Ranking(ctx context.Context, categoryID uint) ([]RankingRow, error) {
	query := d.db.WithContext(ctx).
		Model(&ScoreRecord{}).
		Select("score_records.competitor_id AS competitor_id," +
			" competitors.name AS competitor_name," +
			" COUNT(DISTINCT score_records.event_id) AS events," +
			" SUM(score_records.placement_points + score_records.prize_points) AS total_points").
		Joins("JOIN competitors ON competitors.id = score_records.competitor_id").
		Group("score_records.competitor_id, competitors.name").
		Order("total_points DESC, competitor_name")

	if categoryID != 0 {
		query = query.Where("score_records.category_id = ?", categoryID)
	}

	var rows []RankingRow
	if result := query.Scan(&rows); result.Error != nil {
		return nil, result.Error
	}

	return rows, nil
}
