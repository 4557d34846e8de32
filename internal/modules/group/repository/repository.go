package repository

import (
	"context"

	"github.com/fitvibes/fitvibes-server/internal/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GroupRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Group, error)
	FindAll(ctx context.Context) ([]entity.Group, error)
	FindGroupsForUser(ctx context.Context, userID uuid.UUID) ([]entity.Group, error)
	FindMembers(ctx context.Context, groupID uuid.UUID) ([]entity.GroupMember, error)
	IsMember(ctx context.Context, groupID, userID uuid.UUID) (bool, error)
	FindMember(ctx context.Context, groupID, userID uuid.UUID) (*entity.GroupMember, error)
	FindAdmin(ctx context.Context, groupID uuid.UUID) (*entity.GroupMember, error)
}

type groupRepository struct {
	db *gorm.DB
}

func NewGroupRepository(db *gorm.DB) GroupRepository {
	return &groupRepository{db: db}
}

func (r *groupRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Group, error) {
	var group entity.Group
	err := r.db.WithContext(ctx).First(&group, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &group, nil
}

func (r *groupRepository) FindAll(ctx context.Context) ([]entity.Group, error) {
	var groups []entity.Group
	err := r.db.WithContext(ctx).Find(&groups).Error
	return groups, err
}

func (r *groupRepository) FindGroupsForUser(ctx context.Context, userID uuid.UUID) ([]entity.Group, error) {
	var groups []entity.Group
	err := r.db.WithContext(ctx).
		Joins("JOIN group_members ON group_members.group_id = groups.id").
		Where("group_members.user_id = ?", userID).
		Order("groups.name asc").
		Find(&groups).Error
	return groups, err
}

func (r *groupRepository) FindMembers(ctx context.Context, groupID uuid.UUID) ([]entity.GroupMember, error) {
	var members []entity.GroupMember
	err := r.db.WithContext(ctx).
		Where("group_id = ?", groupID).
		Preload("User").
		Find(&members).Error
	return members, err
}

func (r *groupRepository) IsMember(ctx context.Context, groupID, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.GroupMember{}).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *groupRepository) FindMember(ctx context.Context, groupID, userID uuid.UUID) (*entity.GroupMember, error) {
	// Use Find with slice to avoid "record not found" log noise from GORM's First()
	var members []entity.GroupMember
	err := r.db.WithContext(ctx).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		Limit(1).
		Find(&members).Error
	if err != nil {
		return nil, err
	}
	if len(members) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &members[0], nil
}

func (r *groupRepository) FindAdmin(ctx context.Context, groupID uuid.UUID) (*entity.GroupMember, error) {
	var members []entity.GroupMember
	err := r.db.WithContext(ctx).
		Where("group_id = ? AND role = ?", groupID, entity.RoleAdmin).
		Limit(1).
		Find(&members).Error
	if err != nil {
		return nil, err
	}
	if len(members) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &members[0], nil
}
