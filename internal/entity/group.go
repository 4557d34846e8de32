package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Group struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name       string    `gorm:"size:100;not null" json:"name"`
	Emoji      string    `gorm:"size:10" json:"emoji"`
	ThemeColor string    `gorm:"size:20" json:"theme_color"`
	Timezone   string    `gorm:"size:64;not null;default:'America/Sao_Paulo'" json:"timezone"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (g *Group) BeforeCreate(tx *gorm.DB) (err error) {
	if g.ID == uuid.Nil {
		g.ID, err = uuid.NewV7()
	}
	return
}

const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

type GroupMember struct {
	GroupID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"group_id"`
	UserID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	Group      Group     `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	User       User      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Role       string    `gorm:"size:20;not null;default:'member'" json:"role"`
	StreakDays int       `gorm:"default:0" json:"streak_days"`
	Points     int       `gorm:"default:0" json:"points"`
	JoinedAt   time.Time `gorm:"autoCreateTime" json:"joined_at"`
}

func (GroupMember) TableName() string {
	return "group_members"
}
