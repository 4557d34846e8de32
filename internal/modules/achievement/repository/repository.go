package repository

import (
	"context"

	"github.com/fitvibes/fitvibes-server/internal/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AchievementRepository interface {
	// AwardIfNotExists inserts the achievement unless an identical one
	// (user, group, type, title) is already stored. Returns true when a new
	// row was inserted. The insert relies on ON CONFLICT DO NOTHING, so
	// concurrent calls cannot double-award.
	AwardIfNotExists(ctx context.Context, achievement *entity.Achievement) (bool, error)
	FindByUser(ctx context.Context, userID uuid.UUID, groupID *uuid.UUID) ([]entity.Achievement, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)
}

type achievementRepository struct {
	db *gorm.DB
}

func NewAchievementRepository(db *gorm.DB) AchievementRepository {
	return &achievementRepository{db: db}
}

func (r *achievementRepository) AwardIfNotExists(ctx context.Context, achievement *entity.Achievement) (bool, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(achievement)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *achievementRepository) FindByUser(ctx context.Context, userID uuid.UUID, groupID *uuid.UUID) ([]entity.Achievement, error) {
	query := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("earned_at desc")
	if groupID != nil {
		query = query.Where("group_id = ?", *groupID)
	}

	var achievements []entity.Achievement
	err := query.Find(&achievements).Error
	return achievements, err
}

func (r *achievementRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Achievement{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}
