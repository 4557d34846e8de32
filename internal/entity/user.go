package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name               string    `gorm:"size:100;not null" json:"name"`
	Email              string    `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash       string    `gorm:"size:255;not null" json:"-"`
	AvatarURL          *string   `gorm:"type:text" json:"avatar_url,omitempty"`
	NotificationToken  *string   `gorm:"size:255" json:"-"`
	GlobalStreakDays   int       `gorm:"default:0" json:"global_streak_days"`
	GlobalStreakRecord int       `gorm:"default:0" json:"global_streak_record"`
	CreatedAt          time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == uuid.Nil {
		u.ID, err = uuid.NewV7()
	}
	return
}
