package service

import (
	"context"

	"github.com/fitvibes/fitvibes-server/internal/entity"
	groupRepo "github.com/fitvibes/fitvibes-server/internal/modules/group/repository"
	"github.com/google/uuid"
)

type GroupService interface {
	// GetGroupsForPosting returns the groups where the user can post an
	// activity (the post screen's group picker).
	GetGroupsForPosting(ctx context.Context, userID uuid.UUID) ([]entity.Group, error)
}

type groupService struct {
	repo groupRepo.GroupRepository
}

func NewGroupService(repo groupRepo.GroupRepository) GroupService {
	return &groupService{repo: repo}
}

func (s *groupService) GetGroupsForPosting(ctx context.Context, userID uuid.UUID) ([]entity.Group, error) {
	return s.repo.FindGroupsForUser(ctx, userID)
}
