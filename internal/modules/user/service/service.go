package service

import (
	"context"
	"errors"

	achievementRepo "github.com/fitvibes/fitvibes-server/internal/modules/achievement/repository"
	userDto "github.com/fitvibes/fitvibes-server/internal/modules/user/dto"
	userRepo "github.com/fitvibes/fitvibes-server/internal/modules/user/repository"
	"github.com/fitvibes/fitvibes-server/pkg/apperror"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserService interface {
	GetProfileStats(ctx context.Context, userID uuid.UUID) (*userDto.ProfileStats, error)
}

type userService struct {
	repo            userRepo.UserRepository
	achievementRepo achievementRepo.AchievementRepository
}

func NewUserService(repo userRepo.UserRepository, achievementRepo achievementRepo.AchievementRepository) UserService {
	return &userService{
		repo:            repo,
		achievementRepo: achievementRepo,
	}
}

func (s *userService) GetProfileStats(ctx context.Context, userID uuid.UUID) (*userDto.ProfileStats, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	activityCount, err := s.repo.CountActivities(ctx, userID)
	if err != nil {
		return nil, err
	}

	achievementCount, err := s.achievementRepo.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	memberships, err := s.repo.FindMemberships(ctx, userID)
	if err != nil {
		return nil, err
	}

	groupStreaks := make([]userDto.GroupStreak, 0, len(memberships))
	for _, membership := range memberships {
		groupStreaks = append(groupStreaks, userDto.GroupStreak{
			GroupID:    membership.GroupID,
			GroupName:  membership.Group.Name,
			StreakDays: membership.StreakDays,
			Points:     membership.Points,
		})
	}

	return &userDto.ProfileStats{
		UserID:             user.ID,
		Name:               user.Name,
		AvatarURL:          user.AvatarURL,
		GlobalStreakDays:   user.GlobalStreakDays,
		GlobalStreakRecord: user.GlobalStreakRecord,
		TotalActivities:    activityCount,
		TotalAchievements:  achievementCount,
		GroupStreaks:       groupStreaks,
	}, nil
}
