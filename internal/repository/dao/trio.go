package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrTrioNotFound = errors.New("trio not found")

type Trio struct {
	ID uint `gorm:"primaryKey"`

	EventID    uint     `gorm:"not null;index:idx_trios_event_category"`
	Event      Event    `gorm:"foreignKey:EventID"`
	CategoryID uint     `gorm:"not null;index:idx_trios_event_category"`
	Category   Category `gorm:"foreignKey:CategoryID"`

	Number        int    `gorm:"not null"`
	Status        string `gorm:"not null;default:active"` // "active", "no_time", or "disqualified"
	TotalHandicap int    `gorm:"not null"`
	TotalAge      int    `gorm:"not null"`
	Drawn         bool   `gorm:"not null;default:false"`

	Members []TrioMember `gorm:"foreignKey:TrioID"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type TrioMember struct {
	ID uint `gorm:"primaryKey"`

	TrioID       uint       `gorm:"not null;index"`
	CompetitorID uint       `gorm:"not null;index"`
	Competitor   Competitor `gorm:"foreignKey:CompetitorID"`
	Order        int        `gorm:"not null;column:member_order"`
}

type TrioDAO struct {
	db *gorm.DB
}

func NewTrioDAO(db *gorm.DB) *TrioDAO {
	return &TrioDAO{
		db: db,
	}
}

// Insert stores the trio and its members in one transaction, assigning the
// next free number within the event+category.
func (d *TrioDAO) Insert(ctx context.Context, trio Trio) (Trio, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var maxNumber int
		if err := tx.Model(&Trio{}).
			Where("event_id = ? AND category_id = ?", trio.EventID, trio.CategoryID).
			Select("COALESCE(MAX(number), 0)").
			Scan(&maxNumber).Error; err != nil {
			return err
		}

		trio.Number = maxNumber + 1

		return tx.Create(&trio).Error
	})
	if err != nil {
		return Trio{}, err
	}

	return trio, nil
}

// InsertBatch stores several trios at once, numbering them sequentially.
// Used by the draw.
func (d *TrioDAO) InsertBatch(ctx context.Context, trios []Trio) ([]Trio, error) {
	if len(trios) == 0 {
		return nil, nil
	}

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var maxNumber int
		if err := tx.Model(&Trio{}).
			Where("event_id = ? AND category_id = ?", trios[0].EventID, trios[0].CategoryID).
			Select("COALESCE(MAX(number), 0)").
			Scan(&maxNumber).Error; err != nil {
			return err
		}

		for i := range trios {
			trios[i].Number = maxNumber + i + 1
		}

		return tx.Create(&trios).Error
	})
	if err != nil {
		return nil, err
	}

	return trios, nil
}

func (d *TrioDAO) FindByID(ctx context.Context, id uint) (Trio, error) {
	var trio Trio

	result := d.db.WithContext(ctx).
		Preload("Members", func(db *gorm.DB) *gorm.DB { return db.Order("member_order") }).
		Preload("Members.Competitor").
		First(&trio, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Trio{}, ErrTrioNotFound
		}

		return Trio{}, result.Error
	}

	return trio, nil
}

func (d *TrioDAO) FindByEventAndCategory(ctx context.Context, eventID, categoryID uint) ([]Trio, error) {
	var trios []Trio

	result := d.db.WithContext(ctx).
		Preload("Members", func(db *gorm.DB) *gorm.DB { return db.Order("member_order") }).
		Preload("Members.Competitor").
		Where("event_id = ? AND category_id = ?", eventID, categoryID).
		Order("number").
		Find(&trios)
	if result.Error != nil {
		return nil, result.Error
	}

	return trios, nil
}

func (d *TrioDAO) UpdateStatus(ctx context.Context, id uint, status string) error {
	result := d.db.WithContext(ctx).Model(&Trio{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTrioNotFound
	}

	return nil
}

// CountMemberships returns how many trios each of the given competitors is
// already registered in for the event+category. Used by the draw to prefer
// competitors with fewer entries.
func (d *TrioDAO) CountMemberships(ctx context.Context, eventID, categoryID uint, competitorIDs []uint) (map[uint]int, error) {
	type row struct {
		CompetitorID uint
		N            int
	}

	var rows []row
	result := d.db.WithContext(ctx).
		Model(&TrioMember{}).
		Select("trio_members.competitor_id AS competitor_id, COUNT(*) AS n").
		Joins("JOIN trios ON trios.id = trio_members.trio_id").
		Where("trios.event_id = ? AND trios.category_id = ?", eventID, categoryID).
		Where("trio_members.competitor_id IN ?", competitorIDs).
		Group("trio_members.competitor_id").
		Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	counts := make(map[uint]int, len(rows))
	for _, r := range rows {
		counts[r.CompetitorID] = r.N
	}

	return counts, nil
}
