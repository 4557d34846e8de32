package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Canned vote comments shown alongside a vote.
const (
	CommentGoodJob    = "good_job"
	CommentWeakExcuse = "weak_excuse"
	CommentTomorrow   = "tomorrow"
	CommentUnderstand = "understand"
	CommentRespect    = "respect"
)

// Vote is immutable once cast. The unique index on (activity_id, voter_id)
// guarantees one vote per member per activity.
type Vote struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ActivityID  uuid.UUID `gorm:"type:uuid;not null;index:idx_votes_unique,unique,priority:1" json:"activity_id"`
	VoterID     uuid.UUID `gorm:"type:uuid;not null;index:idx_votes_unique,unique,priority:2" json:"voter_id"`
	Activity    Activity  `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Voter       User      `gorm:"foreignKey:VoterID;constraint:OnDelete:CASCADE" json:"-"`
	IsValid     bool      `gorm:"not null" json:"is_valid"`
	CommentType *string   `gorm:"size:30" json:"comment_type,omitempty"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (v *Vote) BeforeCreate(tx *gorm.DB) (err error) {
	if v.ID == uuid.Nil {
		v.ID, err = uuid.NewV7()
	}
	return
}
