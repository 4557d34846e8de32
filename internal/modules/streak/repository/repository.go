package repository

import (
	"context"
	"time"

	"github.com/fitvibes/fitvibes-server/internal/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StreakRepository interface {
	// ApplyGlobalStreak advances or resets the user's global streak in a
	// single conditional UPDATE and returns the new value. The record column
	// is a monotone max maintained in the same statement.
	ApplyGlobalStreak(ctx context.Context, userID uuid.UUID, increment bool) (int, error)
	// ApplyGroupStreak advances or resets one member's streak within a group,
	// same single-UPDATE shape as ApplyGlobalStreak.
	ApplyGroupStreak(ctx context.Context, groupID, userID uuid.UUID, increment bool) (int, error)
	GetGlobalStreak(ctx context.Context, userID uuid.UUID) (days int, record int, err error)
	// ResetGroupStreaks zeroes streak_days for members of the group who have
	// no activity dated missedDate. Returns the number of members reset.
	ResetGroupStreaks(ctx context.Context, groupID uuid.UUID, missedDate time.Time) (int64, error)
	// ResetGlobalStreaks zeroes global_streak_days for users whose most
	// recent activity is older than cutoff.
	ResetGlobalStreaks(ctx context.Context, cutoff time.Time) (int64, error)
}

type streakRepository struct {
	db *gorm.DB
}

func NewStreakRepository(db *gorm.DB) StreakRepository {
	return &streakRepository{db: db}
}

func (r *streakRepository) ApplyGlobalStreak(ctx context.Context, userID uuid.UUID, increment bool) (int, error) {
	var newStreak int
	var query string
	if increment {
		query = `UPDATE users
			SET global_streak_days = global_streak_days + 1,
			    global_streak_record = GREATEST(global_streak_record, global_streak_days + 1)
			WHERE id = ?
			RETURNING global_streak_days`
	} else {
		query = `UPDATE users
			SET global_streak_days = 1,
			    global_streak_record = GREATEST(global_streak_record, 1)
			WHERE id = ?
			RETURNING global_streak_days`
	}

	err := r.db.WithContext(ctx).Raw(query, userID).Scan(&newStreak).Error
	return newStreak, err
}

func (r *streakRepository) ApplyGroupStreak(ctx context.Context, groupID, userID uuid.UUID, increment bool) (int, error) {
	var newStreak int
	var query string
	if increment {
		query = `UPDATE group_members
			SET streak_days = streak_days + 1
			WHERE group_id = ? AND user_id = ?
			RETURNING streak_days`
	} else {
		query = `UPDATE group_members
			SET streak_days = 1
			WHERE group_id = ? AND user_id = ?
			RETURNING streak_days`
	}

	err := r.db.WithContext(ctx).Raw(query, groupID, userID).Scan(&newStreak).Error
	return newStreak, err
}

func (r *streakRepository) GetGlobalStreak(ctx context.Context, userID uuid.UUID) (int, int, error) {
	var user entity.User
	err := r.db.WithContext(ctx).
		Select("global_streak_days", "global_streak_record").
		First(&user, "id = ?", userID).Error
	if err != nil {
		return 0, 0, err
	}
	return user.GlobalStreakDays, user.GlobalStreakRecord, nil
}

func (r *streakRepository) ResetGroupStreaks(ctx context.Context, groupID uuid.UUID, missedDate time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&entity.GroupMember{}).
		Where("group_id = ? AND streak_days > 0", groupID).
		Where("user_id NOT IN (?)", r.db.Model(&entity.Activity{}).
			Select("user_id").
			Where("group_id = ? AND date = ?", groupID, missedDate.Format("2006-01-02"))).
		Update("streak_days", 0)
	return result.RowsAffected, result.Error
}

func (r *streakRepository) ResetGlobalStreaks(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&entity.User{}).
		Where("global_streak_days > 0").
		Where("id NOT IN (?)", r.db.Model(&entity.Activity{}).
			Select("user_id").
			Where("date >= ?", cutoff.Format("2006-01-02"))).
		Update("global_streak_days", 0)
	return result.RowsAffected, result.Error
}
