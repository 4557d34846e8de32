package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ActivityTypeExercise   = "exercise"
	ActivityTypeExcuse     = "excuse"
	ActivityTypeAutoExcuse = "auto_excuse"

	ActivityStatusPending = "pending"
	ActivityStatusValid   = "valid"
	ActivityStatusInvalid = "invalid"
)

// Activity is one daily workout or excuse record, subject to peer voting.
// Date is a calendar day (YYYY-MM-DD); the time part is always midnight UTC.
type Activity struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	GroupID         uuid.UUID `gorm:"type:uuid;not null;index:idx_activities_group_user_date,priority:1" json:"group_id"`
	UserID          uuid.UUID `gorm:"type:uuid;not null;index:idx_activities_group_user_date,priority:2" json:"user_id"`
	Group           Group     `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	User            User      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Type            string    `gorm:"size:20;not null" json:"type"`
	ExerciseType    *string   `gorm:"size:50" json:"exercise_type,omitempty"`
	DurationMinutes *int      `json:"duration_minutes,omitempty"`
	ExcuseCategory  *string   `gorm:"size:50" json:"excuse_category,omitempty"`
	ExcuseText      *string   `gorm:"type:text" json:"excuse_text,omitempty"`
	Date            time.Time `gorm:"type:date;not null;index:idx_activities_group_user_date,priority:3" json:"date"`
	Status          string    `gorm:"size:20;not null;default:'pending';index" json:"status"`
	CreatedAt       time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

func (a *Activity) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == uuid.Nil {
		a.ID, err = uuid.NewV7()
	}
	return
}
