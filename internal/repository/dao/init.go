package dao

import "gorm.io/gorm"

func InitTables(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Competitor{},
		&Category{},
		&Event{},
		&RunConfig{},
		&Trio{},
		&TrioMember{},
		&ParticipationQuota{},
		&RunResult{},
		&RunAttempt{},
		&ScoreRecord{},
	)
}
