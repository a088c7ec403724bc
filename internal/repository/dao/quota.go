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
	ErrQuotaNotFound  = errors.New("participation quota not found")
	ErrQuotaExists    = errors.New("participation quota already exists")
	ErrQuotaExhausted = errors.New("participation quota exhausted")
	ErrQuotaBlocked   = errors.New("competitor is blocked from competing")
)

type ParticipationQuota struct {
	ID uint `gorm:"primaryKey"`

	CompetitorID uint       `gorm:"not null;uniqueIndex:idx_quotas_competitor_event_category"`
	Competitor   Competitor `gorm:"foreignKey:CompetitorID"`
	EventID      uint       `gorm:"not null;uniqueIndex:idx_quotas_competitor_event_category"`
	CategoryID   uint       `gorm:"not null;uniqueIndex:idx_quotas_competitor_event_category"`

	MaxRuns      int    `gorm:"not null"`
	RunsExecuted int    `gorm:"not null;default:0"`
	MayCompete   bool   `gorm:"not null;default:true"`
	BlockReason  string

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type QuotaDAO struct {
	db *gorm.DB
}

func NewQuotaDAO(db *gorm.DB) *QuotaDAO {
	return &QuotaDAO{
		db: db,
	}
}

func (d *QuotaDAO) Insert(ctx context.Context, quota ParticipationQuota) (ParticipationQuota, error) {
	result := d.db.WithContext(ctx).Create(&quota)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) && err.Code == pgerrcode.UniqueViolation {
			return ParticipationQuota{}, ErrQuotaExists
		}

		return ParticipationQuota{}, result.Error
	}

	return quota, nil
}

func (d *QuotaDAO) FindByID(ctx context.Context, id uint) (ParticipationQuota, error) {
	var quota ParticipationQuota

	result := d.db.WithContext(ctx).First(&quota, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return ParticipationQuota{}, ErrQuotaNotFound
		}

		return ParticipationQuota{}, result.Error
	}

	return quota, nil
}

func (d *QuotaDAO) FindByKey(ctx context.Context, competitorID, eventID, categoryID uint) (ParticipationQuota, error) {
	var quota ParticipationQuota

	result := d.db.WithContext(ctx).
		Where("competitor_id = ? AND event_id = ? AND category_id = ?", competitorID, eventID, categoryID).
		First(&quota)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return ParticipationQuota{}, ErrQuotaNotFound
		}

		return ParticipationQuota{}, result.Error
	}

	return quota, nil
}

func (d *QuotaDAO) FindByEvent(ctx context.Context, eventID uint) ([]ParticipationQuota, error) {
	var quotas []ParticipationQuota

	result := d.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("competitor_id").
		Find(&quotas)
	if result.Error != nil {
		return nil, result.Error
	}

	return quotas, nil
}

// RegisterRun consumes one run from the quota with a single conditional
// update, so concurrent registrations never overshoot the cap. When the
// update matches no row the quota is re-read to tell blocked, exhausted and
// missing apart.
func (d *QuotaDAO) RegisterRun(ctx context.Context, competitorID, eventID, categoryID uint) (ParticipationQuota, error) {
	result := d.db.WithContext(ctx).
		Model(&ParticipationQuota{}).
		Where("competitor_id = ? AND event_id = ? AND category_id = ?", competitorID, eventID, categoryID).
		Where("may_compete = ?", true).
		Where("runs_executed < max_runs").
		Update("runs_executed", gorm.Expr("runs_executed + 1"))
	if result.Error != nil {
		return ParticipationQuota{}, result.Error
	}

	if result.RowsAffected == 0 {
		quota, err := d.FindByKey(ctx, competitorID, eventID, categoryID)
		if err != nil {
			return ParticipationQuota{}, err
		}
		if !quota.MayCompete {
			return ParticipationQuota{}, ErrQuotaBlocked
		}

		return ParticipationQuota{}, ErrQuotaExhausted
	}

	return d.FindByKey(ctx, competitorID, eventID, categoryID)
}

// ReleaseRun gives one consumed run back, used to undo a registration when
// a later step of the same run fails. The decrement is conditional so a
// quota that never consumed anything stays at zero.
func (d *QuotaDAO) ReleaseRun(ctx context.Context, competitorID, eventID, categoryID uint) error {
	result := d.db.WithContext(ctx).
		Model(&ParticipationQuota{}).
		Where("competitor_id = ? AND event_id = ? AND category_id = ?", competitorID, eventID, categoryID).
		Where("runs_executed > 0").
		Update("runs_executed", gorm.Expr("runs_executed - 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrQuotaNotFound
	}

	return nil
}

func (d *QuotaDAO) SetBlocked(ctx context.Context, id uint, blocked bool, reason string) error {
	result := d.db.WithContext(ctx).
		Model(&ParticipationQuota{}).
		Where("id = ?", id).
		Updates(map[string]any{"may_compete": !blocked, "block_reason": reason})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrQuotaNotFound
	}

	return nil
}

// ExistingKeys reports which of the given competitors already hold a quota
// for the event+category. Used by auto provisioning to stay idempotent.
func (d *QuotaDAO) ExistingKeys(ctx context.Context, eventID, categoryID uint, competitorIDs []uint) (map[uint]bool, error) {
	var ids []uint

	result := d.db.WithContext(ctx).
		Model(&ParticipationQuota{}).
		Where("event_id = ? AND category_id = ?", eventID, categoryID).
		Where("competitor_id IN ?", competitorIDs).
		Pluck("competitor_id", &ids)
	if result.Error != nil {
		return nil, result.Error
	}

	existing := make(map[uint]bool, len(ids))
	for _, id := range ids {
		existing[id] = true
	}

	return existing, nil
}
