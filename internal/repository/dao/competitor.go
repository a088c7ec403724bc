package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrCompetitorNotFound = errors.New("competitor not found")

type Competitor struct {
	ID uint `gorm:"primaryKey"`

	Name      string    `gorm:"not null;index"`
	BirthDate time.Time `gorm:"not null"`
	Handicap  int       `gorm:"not null"`
	Sex       string    `gorm:"not null"` // "M" or "F"
	City      string
	State     string
	Active    bool `gorm:"not null;default:true"`

	CategoryID *uint `gorm:"index"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type CompetitorDAO struct {
	db *gorm.DB
}

func NewCompetitorDAO(db *gorm.DB) *CompetitorDAO {
	return &CompetitorDAO{
		db: db,
	}
}

func (d *CompetitorDAO) Insert(ctx context.Context, competitor Competitor) (Competitor, error) {
	result := d.db.WithContext(ctx).Create(&competitor)
	if result.Error != nil {
		return Competitor{}, result.Error
	}

	return competitor, nil
}

func (d *CompetitorDAO) FindByID(ctx context.Context, id uint) (Competitor, error) {
	var competitor Competitor

	result := d.db.WithContext(ctx).First(&competitor, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Competitor{}, ErrCompetitorNotFound
		}

		return Competitor{}, result.Error
	}

	return competitor, nil
}

func (d *CompetitorDAO) FindByIDs(ctx context.Context, ids []uint) ([]Competitor, error) {
	var competitors []Competitor

	result := d.db.WithContext(ctx).Where("id IN ?", ids).Find(&competitors)
	if result.Error != nil {
		return nil, result.Error
	}

	return competitors, nil
}

func (d *CompetitorDAO) FindAll(ctx context.Context, onlyActive bool) ([]Competitor, error) {
	var competitors []Competitor

	query := d.db.WithContext(ctx).Order("name")
	if onlyActive {
		query = query.Where("active = ?", true)
	}

	result := query.Find(&competitors)
	if result.Error != nil {
		return nil, result.Error
	}

	return competitors, nil
}

func (d *CompetitorDAO) Update(ctx context.Context, competitor Competitor) (Competitor, error) {
	result := d.db.WithContext(ctx).Save(&competitor)
	if result.Error != nil {
		return Competitor{}, result.Error
	}

	return competitor, nil
}

// Deactivate flips the active flag instead of deleting, past results must
// stay attributable.
func (d *CompetitorDAO) Deactivate(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Model(&Competitor{}).Where("id = ?", id).Update("active", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCompetitorNotFound
	}

	return nil
}
