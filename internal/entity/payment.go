package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PaymentHistory records a penalty owed after an activity is voted invalid.
type PaymentHistory struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	GroupID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"group_id"`
	ActivityID  *uuid.UUID `gorm:"type:uuid" json:"activity_id,omitempty"`
	FromUserID  uuid.UUID  `gorm:"type:uuid;not null" json:"from_user_id"`
	ToUserID    uuid.UUID  `gorm:"type:uuid;not null" json:"to_user_id"`
	FromUser    User       `gorm:"foreignKey:FromUserID" json:"-"`
	ToUser      User       `gorm:"foreignKey:ToUserID" json:"-"`
	Reason      string     `gorm:"size:120" json:"reason"`
	AmountCents int        `gorm:"not null" json:"amount_cents"`
	CreatedAt   time.Time  `gorm:"autoCreateTime;index" json:"created_at"`
}

func (p *PaymentHistory) TableName() string {
	return "payment_history"
}

func (p *PaymentHistory) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID, err = uuid.NewV7()
	}
	return
}
