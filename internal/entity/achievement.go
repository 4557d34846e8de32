package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	AchievementTypeStreak       = "streak"
	AchievementTypeVariety      = "variety"
	AchievementTypeGlobalStreak = "global_streak"
	AchievementTypeGroupStreak  = "group_streak"
	AchievementTypeSocial       = "social"
	AchievementTypeCreativity   = "creativity"
)

// Achievement rows are append-only. GroupID is nil for global badges.
// A unique index on (user_id, group_id, type, title) with NULLS NOT DISTINCT
// backs the award-if-not-exists insert; it is created in bootstrap.Migrate
// because GORM tags cannot express the NULLS NOT DISTINCT clause.
type Achievement struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	GroupID     *uuid.UUID `gorm:"type:uuid" json:"group_id,omitempty"`
	User        User       `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Type        string     `gorm:"size:30;not null" json:"type"`
	Title       string     `gorm:"size:120;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	EarnedAt    time.Time  `gorm:"autoCreateTime" json:"earned_at"`
}

func (a *Achievement) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == uuid.Nil {
		a.ID, err = uuid.NewV7()
	}
	return
}
