package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	NotificationTypeAchievement = "achievement"
	NotificationTypeAutoExcuse  = "auto_excuse"
	NotificationTypeVoteResult  = "vote_result"
)

type Notification struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	GroupID   *uuid.UUID `gorm:"type:uuid" json:"group_id,omitempty"`
	User      *User      `gorm:"foreignKey:UserID" json:"-"`
	Type      string     `gorm:"size:30;not null" json:"type"`
	Title     string     `gorm:"size:120;not null" json:"title"`
	Body      string     `gorm:"type:text" json:"body"`
	Read      bool       `gorm:"default:false" json:"read"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) (err error) {
	if n.ID == uuid.Nil {
		n.ID, err = uuid.NewV7()
	}
	return
}
