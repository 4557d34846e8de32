package repository

import (
	"context"

	"github.com/fitvibes/fitvibes-server/internal/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	CountActivities(ctx context.Context, userID uuid.UUID) (int64, error)
	FindMemberships(ctx context.Context, userID uuid.UUID) ([]entity.GroupMember, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var user entity.User
	err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) CountActivities(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Activity{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (r *userRepository) FindMemberships(ctx context.Context, userID uuid.UUID) ([]entity.GroupMember, error) {
	var memberships []entity.GroupMember
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Group").
		Find(&memberships).Error
	return memberships, err
}
