package repository

import (
	"context"
	"time"

	"github.com/fitvibes/fitvibes-server/internal/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ActivityRepository interface {
	// CreateForGroups inserts one activity row per group in a single
	// transaction; either all groups get the post or none do.
	CreateForGroups(ctx context.Context, activities []*entity.Activity) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Activity, error)
	HasActivityOnDate(ctx context.Context, groupID, userID uuid.UUID, date time.Time) (bool, error)
	CountForUserOnDate(ctx context.Context, userID uuid.UUID, date time.Time) (int64, error)
	LastActivityDateBefore(ctx context.Context, userID uuid.UUID, date time.Time) (*time.Time, error)
	CountForUserInGroup(ctx context.Context, groupID, userID uuid.UUID) (int64, error)
	DistinctExerciseTypes(ctx context.Context, groupID, userID uuid.UUID) ([]string, error)
	Feed(ctx context.Context, groupIDs []uuid.UUID, groupFilter *uuid.UUID, cursor *time.Time, limit int) ([]FeedRow, error)
	PendingForVoter(ctx context.Context, groupID, voterID uuid.UUID, date time.Time) ([]entity.Activity, error)
}

// FeedRow is the raw feed projection: activity columns joined with group and
// author metadata plus aggregated vote counts.
type FeedRow struct {
	entity.Activity
	GroupName    string
	GroupEmoji   string
	GroupColor   string
	UserName     string
	UserAvatar   *string
	VoteCount    int
	ValidVotes   int
	InvalidVotes int
}

type activityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) CreateForGroups(ctx context.Context, activities []*entity.Activity) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, activity := range activities {
			if err := tx.Create(activity).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *activityRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Activity, error) {
	var activities []entity.Activity
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		Limit(1).
		Find(&activities).Error
	if err != nil {
		return nil, err
	}
	if len(activities) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &activities[0], nil
}

func (r *activityRepository) HasActivityOnDate(ctx context.Context, groupID, userID uuid.UUID, date time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Activity{}).
		Where("group_id = ? AND user_id = ? AND date = ?", groupID, userID, date.Format("2006-01-02")).
		Count(&count).Error
	return count > 0, err
}

func (r *activityRepository) CountForUserOnDate(ctx context.Context, userID uuid.UUID, date time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Activity{}).
		Where("user_id = ? AND date = ?", userID, date.Format("2006-01-02")).
		Count(&count).Error
	return count, err
}

func (r *activityRepository) LastActivityDateBefore(ctx context.Context, userID uuid.UUID, date time.Time) (*time.Time, error) {
	var rows []entity.Activity
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND date < ?", userID, date.Format("2006-01-02")).
		Order("date desc").
		Limit(1).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0].Date, nil
}

func (r *activityRepository) CountForUserInGroup(ctx context.Context, groupID, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Activity{}).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		Count(&count).Error
	return count, err
}

func (r *activityRepository) DistinctExerciseTypes(ctx context.Context, groupID, userID uuid.UUID) ([]string, error) {
	var types []string
	err := r.db.WithContext(ctx).
		Model(&entity.Activity{}).
		Distinct("exercise_type").
		Where("group_id = ? AND user_id = ? AND type = ? AND exercise_type IS NOT NULL",
			groupID, userID, entity.ActivityTypeExercise).
		Pluck("exercise_type", &types).Error
	return types, err
}

func (r *activityRepository) Feed(ctx context.Context, groupIDs []uuid.UUID, groupFilter *uuid.UUID, cursor *time.Time, limit int) ([]FeedRow, error) {
	query := r.db.WithContext(ctx).
		Model(&entity.Activity{}).
		Select(`activities.*,
			groups.name as group_name, groups.emoji as group_emoji, groups.theme_color as group_color,
			users.name as user_name, users.avatar_url as user_avatar,
			count(votes.id) as vote_count,
			count(votes.id) filter (where votes.is_valid) as valid_votes,
			count(votes.id) filter (where not votes.is_valid) as invalid_votes`).
		Joins("JOIN groups ON groups.id = activities.group_id").
		Joins("JOIN users ON users.id = activities.user_id").
		Joins("LEFT JOIN votes ON votes.activity_id = activities.id").
		Where("activities.group_id IN ?", groupIDs).
		Group("activities.id, groups.name, groups.emoji, groups.theme_color, users.name, users.avatar_url").
		Order("activities.created_at desc").
		Limit(limit)

	if cursor != nil {
		query = query.Where("activities.created_at < ?", *cursor)
	}
	if groupFilter != nil {
		query = query.Where("activities.group_id = ?", *groupFilter)
	}

	var rows []FeedRow
	err := query.Scan(&rows).Error
	return rows, err
}

func (r *activityRepository) PendingForVoter(ctx context.Context, groupID, voterID uuid.UUID, date time.Time) ([]entity.Activity, error) {
	var activities []entity.Activity
	err := r.db.WithContext(ctx).
		Where("group_id = ? AND date = ? AND status = ? AND user_id <> ?",
			groupID, date.Format("2006-01-02"), entity.ActivityStatusPending, voterID).
		Where("id NOT IN (?)", r.db.Model(&entity.Vote{}).Select("activity_id").Where("voter_id = ?", voterID)).
		Order("created_at asc").
		Find(&activities).Error
	return activities, err
}
