package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateActivityRequest struct {
	GroupIDs        []string `json:"group_ids" binding:"required,min=1,dive,uuid"`
	Type            string   `json:"type" binding:"required,oneof=exercise excuse"`
	ExerciseType    string   `json:"exercise_type" binding:"omitempty,oneof=walking running cycling swimming gym yoga other"`
	DurationMinutes int      `json:"duration_minutes" binding:"omitempty,min=1,max=1440"`
	ExcuseCategory  string   `json:"excuse_category" binding:"omitempty,oneof=medical travel event tired other"`
	ExcuseText      string   `json:"excuse_text" binding:"omitempty,max=500"`
	Date            string   `json:"date" binding:"omitempty,datetime=2006-01-02"`
}

type FeedQuery struct {
	Cursor  string `form:"cursor"`
	GroupID string `form:"group_id" binding:"omitempty,uuid"`
	Limit   int    `form:"limit" binding:"omitempty,min=1,max=50"`
}

// FeedItem is one activity in the home feed, with its running vote tally.
type FeedItem struct {
	ID              uuid.UUID `json:"id"`
	GroupID         uuid.UUID `json:"group_id"`
	UserID          uuid.UUID `json:"user_id"`
	Type            string    `json:"type"`
	ExerciseType    *string   `json:"exercise_type,omitempty"`
	DurationMinutes *int      `json:"duration_minutes,omitempty"`
	ExcuseCategory  *string   `json:"excuse_category,omitempty"`
	ExcuseText      *string   `json:"excuse_text,omitempty"`
	Date            string    `json:"date"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	GroupName       string    `json:"group_name"`
	GroupEmoji      string    `json:"group_emoji"`
	GroupColor      string    `json:"group_color"`
	UserName        string    `json:"user_name"`
	UserAvatar      *string   `json:"user_avatar,omitempty"`
	VoteCount       int       `json:"vote_count"`
	ValidVotes      int       `json:"valid_votes"`
	InvalidVotes    int       `json:"invalid_votes"`
}

type FeedResponse struct {
	Data       []FeedItem `json:"data"`
	NextCursor *string    `json:"next_cursor,omitempty"`
}
