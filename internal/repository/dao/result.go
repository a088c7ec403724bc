package dao

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrResultNotFound = errors.New("run result not found")
	ErrResultExists   = errors.New("run result already exists for trio")
)

type RunResult struct {
	ID uint `gorm:"primaryKey"`

	EventID    uint `gorm:"not null;index:idx_results_event_category"`
	CategoryID uint `gorm:"not null;index:idx_results_event_category"`
	TrioID     uint `gorm:"not null;uniqueIndex:idx_results_trio"`
	Trio       Trio `gorm:"foreignKey:TrioID"`

	AverageTime *float64
	Status      string `gorm:"not null;default:active"`
	Placement   *int
	PrizeValue  float64 `gorm:"not null;default:0"`
	Notes       string

	Attempts []RunAttempt `gorm:"foreignKey:ResultID"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type RunAttempt struct {
	ID uint `gorm:"primaryKey"`

	ResultID uint `gorm:"not null;index"`
	Number   int  `gorm:"not null"`
	Time     *float64

	CreatedAt time.Time `gorm:"not null"`
}

type ResultDAO struct {
	db *gorm.DB
}

func NewResultDAO(db *gorm.DB) *ResultDAO {
	return &ResultDAO{
		db: db,
	}
}

func (d *ResultDAO) Insert(ctx context.Context, result RunResult) (RunResult, error) {
	res := d.db.WithContext(ctx).Create(&result)
	if res.Error != nil {
		var err *pgconn.PgError
		if errors.As(res.Error, &err) && err.Code == pgerrcode.UniqueViolation {
			return RunResult{}, ErrResultExists
		}

		return RunResult{}, res.Error
	}

	return result, nil
}

func (d *ResultDAO) FindByID(ctx context.Context, id uint) (RunResult, error) {
	var result RunResult

	res := d.db.WithContext(ctx).
		Preload("Attempts", func(db *gorm.DB) *gorm.DB { return db.Order("number") }).
		First(&result, id)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return RunResult{}, ErrResultNotFound
		}

		return RunResult{}, res.Error
	}

	return result, nil
}

func (d *ResultDAO) FindByEventAndCategory(ctx context.Context, eventID, categoryID uint) ([]RunResult, error) {
	var results []RunResult

	res := d.db.WithContext(ctx).
		Preload("Attempts", func(db *gorm.DB) *gorm.DB { return db.Order("number") }).
		Where("event_id = ? AND category_id = ?", eventID, categoryID).
		Order("id").
		Find(&results)
	if res.Error != nil {
		return nil, res.Error
	}

	return results, nil
}

// AppendAttempt stores one more attempt for the result and recomputes the
// stored average, all inside one transaction.
func (d *ResultDAO) AppendAttempt(ctx context.Context, resultID uint, attemptTime *float64, average *float64, status string) (RunResult, error) {
	var out RunResult

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var result RunResult
		if err := tx.First(&result, resultID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrResultNotFound
			}
			return err
		}

		var nextNumber int
		if err := tx.Model(&RunAttempt{}).
			Where("result_id = ?", resultID).
			Select("COALESCE(MAX(number), 0)").
			Scan(&nextNumber).Error; err != nil {
			return err
		}

		attempt := RunAttempt{
			ResultID: resultID,
			Number:   nextNumber + 1,
			Time:     attemptTime,
		}
		if err := tx.Create(&attempt).Error; err != nil {
			return err
		}

		if err := tx.Model(&result).
			Updates(map[string]any{"average_time": average, "status": status}).Error; err != nil {
			return err
		}

		out = result
		return nil
	})
	if err != nil {
		return RunResult{}, err
	}

	return d.FindByID(ctx, out.ID)
}

// PlacementUpdate carries one trio's recomputed standing.
type PlacementUpdate struct {
	ResultID    uint
	Placement   *int
	AverageTime *float64
}

// ApplyPlacements writes a whole recompute in one transaction. Either every
// standing lands or none does.
func (d *ResultDAO) ApplyPlacements(ctx context.Context, updates []PlacementUpdate) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, u := range updates {
			res := tx.Model(&RunResult{}).
				Where("id = ?", u.ResultID).
				Updates(map[string]any{"placement": u.Placement, "average_time": u.AverageTime})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return ErrResultNotFound
			}
		}

		return nil
	})
}

func (d *ResultDAO) UpdatePrize(ctx context.Context, id uint, prizeValue float64) error {
	result := d.db.WithContext(ctx).
		Model(&RunResult{}).
		Where("id = ?", id).
		Update("prize_value", prizeValue)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrResultNotFound
	}

	return nil
}
