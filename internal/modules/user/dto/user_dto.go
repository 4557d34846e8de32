package dto

import "github.com/google/uuid"

type GroupStreak struct {
	GroupID    uuid.UUID `json:"group_id"`
	GroupName  string    `json:"group_name"`
	StreakDays int       `json:"streak_days"`
	Points     int       `json:"points"`
}

// ProfileStats is the profile screen's summary block.
type ProfileStats struct {
	UserID             uuid.UUID     `json:"user_id"`
	Name               string        `json:"name"`
	AvatarURL          *string       `json:"avatar_url,omitempty"`
	GlobalStreakDays   int           `json:"global_streak_days"`
	GlobalStreakRecord int           `json:"global_streak_record"`
	TotalActivities    int64         `json:"total_activities"`
	TotalAchievements  int64         `json:"total_achievements"`
	GroupStreaks       []GroupStreak `json:"group_streaks"`
}
