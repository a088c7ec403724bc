package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrEventNotFound     = errors.New("event not found")
	ErrRunConfigNotFound = errors.New("run config not found")
)

type Event struct {
	ID uint `gorm:"primaryKey"`

	Name            string    `gorm:"not null"`
	Date            time.Time `gorm:"not null;index"`
	Ranch           string
	City            string
	State           string
	EntryFee        float64
	DiscountPercent float64 `gorm:"not null;default:5"`
	Active          bool    `gorm:"not null;default:true"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type RunConfig struct {
	ID uint `gorm:"primaryKey"`

	EventID    uint  `gorm:"not null;uniqueIndex:idx_run_configs_event_category"`
	Event      Event `gorm:"foreignKey:EventID"`
	CategoryID uint  `gorm:"not null;uniqueIndex:idx_run_configs_event_category"`

	MaxRunsPerTrio       int `gorm:"not null"`
	MaxRunsPerCompetitor int `gorm:"not null"`
	TimeLimit            float64
}

type EventDAO struct {
	db *gorm.DB
}

func NewEventDAO(db *gorm.DB) *EventDAO {
	return &EventDAO{
		db: db,
	}
}

func (d *EventDAO) Insert(ctx context.Context, event Event) (Event, error) {
	result := d.db.WithContext(ctx).Create(&event)
	if result.Error != nil {
		return Event{}, result.Error
	}

	return event, nil
}

func (d *EventDAO) FindByID(ctx context.Context, id uint) (Event, error) {
	var event Event

	result := d.db.WithContext(ctx).First(&event, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Event{}, ErrEventNotFound
		}

		return Event{}, result.Error
	}

	return event, nil
}

func (d *EventDAO) FindAll(ctx context.Context) ([]Event, error) {
	var events []Event

	result := d.db.WithContext(ctx).Order("date").Find(&events)
	if result.Error != nil {
		return nil, result.Error
	}

	return events, nil
}

// FindActiveFrom returns active events dated on or after the given day.
func (d *EventDAO) FindActiveFrom(ctx context.Context, from time.Time) ([]Event, error) {
	var events []Event

	result := d.db.WithContext(ctx).
		Where("active = ? AND date >= ?", true, from).
		Order("date").
		Find(&events)
	if result.Error != nil {
		return nil, result.Error
	}

	return events, nil
}

func (d *EventDAO) Update(ctx context.Context, event Event) (Event, error) {
	result := d.db.WithContext(ctx).Save(&event)
	if result.Error != nil {
		return Event{}, result.Error
	}

	return event, nil
}

func (d *EventDAO) UpsertRunConfig(ctx context.Context, conf RunConfig) (RunConfig, error) {
	var existing RunConfig

	err := d.db.WithContext(ctx).
		Where("event_id = ? AND category_id = ?", conf.EventID, conf.CategoryID).
		First(&existing).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return RunConfig{}, err
		}

		if result := d.db.WithContext(ctx).Create(&conf); result.Error != nil {
			return RunConfig{}, result.Error
		}
		return conf, nil
	}

	conf.ID = existing.ID
	if result := d.db.WithContext(ctx).Save(&conf); result.Error != nil {
		return RunConfig{}, result.Error
	}

	return conf, nil
}

func (d *EventDAO) FindRunConfig(ctx context.Context, eventID, categoryID uint) (RunConfig, error) {
	var conf RunConfig

	result := d.db.WithContext(ctx).
		Where("event_id = ? AND category_id = ?", eventID, categoryID).
		First(&conf)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return RunConfig{}, ErrRunConfigNotFound
		}

		return RunConfig{}, result.Error
	}

	return conf, nil
}
