package service

import (
	"context"
	"log"
	"time"

	"github.com/fitvibes/fitvibes-server/internal/entity"
	achievement "github.com/fitvibes/fitvibes-server/internal/modules/achievement/service"
	activityDto "github.com/fitvibes/fitvibes-server/internal/modules/activity/dto"
	activityRepo "github.com/fitvibes/fitvibes-server/internal/modules/activity/repository"
	groupRepo "github.com/fitvibes/fitvibes-server/internal/modules/group/repository"
	notifService "github.com/fitvibes/fitvibes-server/internal/modules/notification/service"
	streak "github.com/fitvibes/fitvibes-server/internal/modules/streak/service"
	"github.com/fitvibes/fitvibes-server/pkg/apperror"
	"github.com/google/uuid"
)

const defaultFeedLimit = 20

type ActivityService interface {
	// PostActivity creates the activity in every requested group (one
	// transaction), then credits the daily global streak and runs the
	// achievement evaluator. The post itself does not wait for peer
	// validation.
	PostActivity(ctx context.Context, userID uuid.UUID, req activityDto.CreateActivityRequest) ([]entity.Activity, error)
	GetFeed(ctx context.Context, userID uuid.UUID, query activityDto.FeedQuery) (*activityDto.FeedResponse, error)
	GetPendingForVoter(ctx context.Context, groupID, voterID uuid.UUID) ([]entity.Activity, error)
}

type activityService struct {
	repo          activityRepo.ActivityRepository
	groupRepo     groupRepo.GroupRepository
	streakService streak.StreakService
	evaluator     achievement.EvaluatorService
	notifService  notifService.NotificationService
}

func NewActivityService(repo activityRepo.ActivityRepository, groupRepo groupRepo.GroupRepository, streakService streak.StreakService, evaluator achievement.EvaluatorService, notifService notifService.NotificationService) ActivityService {
	return &activityService{
		repo:          repo,
		groupRepo:     groupRepo,
		streakService: streakService,
		evaluator:     evaluator,
		notifService:  notifService,
	}
}

func (s *activityService) PostActivity(ctx context.Context, userID uuid.UUID, req activityDto.CreateActivityRequest) ([]entity.Activity, error) {
	date := time.Now()
	if req.Date != "" {
		parsed, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			return nil, apperror.ErrInvalidInput
		}
		date = parsed
	}
	date = truncateToDay(date)

	groupIDs := make([]uuid.UUID, 0, len(req.GroupIDs))
	for _, raw := range req.GroupIDs {
		groupID, err := uuid.Parse(raw)
		if err != nil {
			return nil, apperror.ErrInvalidInput
		}
		groupIDs = append(groupIDs, groupID)
	}

	for _, groupID := range groupIDs {
		isMember, err := s.groupRepo.IsMember(ctx, groupID, userID)
		if err != nil {
			return nil, err
		}
		if !isMember {
			return nil, apperror.ErrNotGroupMember
		}

		exists, err := s.repo.HasActivityOnDate(ctx, groupID, userID, date)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, apperror.ErrDuplicateActivity
		}
	}

	activities := make([]*entity.Activity, 0, len(groupIDs))
	for _, groupID := range groupIDs {
		activity := &entity.Activity{
			GroupID: groupID,
			UserID:  userID,
			Type:    req.Type,
			Date:    date,
			Status:  entity.ActivityStatusPending,
		}
		switch req.Type {
		case entity.ActivityTypeExercise:
			if req.ExerciseType == "" {
				return nil, apperror.ErrInvalidInput
			}
			exerciseType := req.ExerciseType
			activity.ExerciseType = &exerciseType
			if req.DurationMinutes > 0 {
				duration := req.DurationMinutes
				activity.DurationMinutes = &duration
			}
		case entity.ActivityTypeExcuse:
			if req.ExcuseCategory == "" {
				return nil, apperror.ErrInvalidInput
			}
			category := req.ExcuseCategory
			activity.ExcuseCategory = &category
			if req.ExcuseText != "" {
				text := req.ExcuseText
				activity.ExcuseText = &text
			}
		}
		activities = append(activities, activity)
	}

	if err := s.repo.CreateForGroups(ctx, activities); err != nil {
		return nil, err
	}

	// Streaks and badges are credited immediately on post, before any peer
	// votes land.
	globalStreak, updated, err := s.streakService.UpdateGlobalStreakOnPost(ctx, userID, date, len(activities))
	if err != nil {
		log.Printf("Failed to update global streak for user %s: %v", userID, err)
		globalStreak, updated = 0, false
	}

	created := make([]entity.Activity, 0, len(activities))
	for _, activity := range activities {
		created = append(created, *activity)

		if _, err := s.streakService.UpdateGroupStreakOnPost(ctx, activity.GroupID, userID, date); err != nil {
			log.Printf("Failed to update group streak for user %s in group %s: %v", userID, activity.GroupID, err)
		}

		event := achievement.ActivityEvent{
			UserID:       userID,
			GroupID:      activity.GroupID,
			Type:         activity.Type,
			ExerciseType: activity.ExerciseType,
			Date:         date,
		}
		if updated {
			event.GlobalStreak = globalStreak
		}

		awarded, err := s.evaluator.EvaluateActivityPosted(ctx, event)
		if err != nil {
			log.Printf("Achievement evaluation failed for user %s in group %s: %v", userID, activity.GroupID, err)
			continue
		}
		s.dispatchAchievements(awarded)
	}

	return created, nil
}

// dispatchAchievements turns newly earned badges into notification records,
// in the background so the post response does not wait on them.
func (s *activityService) dispatchAchievements(awarded []achievement.Awarded) {
	if len(awarded) == 0 {
		return
	}

	go func() {
		ctx := context.Background()
		for _, a := range awarded {
			notif := &entity.Notification{
				UserID:  a.UserID,
				GroupID: a.GroupID,
				Type:    entity.NotificationTypeAchievement,
				Title:   "New achievement!",
				Body:    "Congratulations! " + a.Description,
			}
			if err := s.notifService.CreateNotification(ctx, notif); err != nil {
				log.Printf("Failed to send achievement notification to user %s: %v", a.UserID, err)
			}
		}
	}()
}

func (s *activityService) GetFeed(ctx context.Context, userID uuid.UUID, query activityDto.FeedQuery) (*activityDto.FeedResponse, error) {
	groups, err := s.groupRepo.FindGroupsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(groups) == 0 {
		return &activityDto.FeedResponse{Data: []activityDto.FeedItem{}}, nil
	}

	groupIDs := make([]uuid.UUID, 0, len(groups))
	for _, group := range groups {
		groupIDs = append(groupIDs, group.ID)
	}

	limit := query.Limit
	if limit == 0 {
		limit = defaultFeedLimit
	}

	var cursor *time.Time
	if query.Cursor != "" {
		parsed, err := time.Parse(time.RFC3339Nano, query.Cursor)
		if err != nil {
			return nil, apperror.ErrInvalidInput
		}
		cursor = &parsed
	}

	var groupFilter *uuid.UUID
	if query.GroupID != "" {
		parsed, err := uuid.Parse(query.GroupID)
		if err != nil {
			return nil, apperror.ErrInvalidInput
		}
		groupFilter = &parsed
	}

	rows, err := s.repo.Feed(ctx, groupIDs, groupFilter, cursor, limit)
	if err != nil {
		return nil, err
	}

	items := make([]activityDto.FeedItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, activityDto.FeedItem{
			ID:              row.ID,
			GroupID:         row.GroupID,
			UserID:          row.UserID,
			Type:            row.Type,
			ExerciseType:    row.ExerciseType,
			DurationMinutes: row.DurationMinutes,
			ExcuseCategory:  row.ExcuseCategory,
			ExcuseText:      row.ExcuseText,
			Date:            row.Date.Format("2006-01-02"),
			Status:          row.Status,
			CreatedAt:       row.CreatedAt,
			GroupName:       row.GroupName,
			GroupEmoji:      row.GroupEmoji,
			GroupColor:      row.GroupColor,
			UserName:        row.UserName,
			UserAvatar:      row.UserAvatar,
			VoteCount:       row.VoteCount,
			ValidVotes:      row.ValidVotes,
			InvalidVotes:    row.InvalidVotes,
		})
	}

	response := &activityDto.FeedResponse{Data: items}
	if len(rows) == limit {
		next := rows[len(rows)-1].CreatedAt.Format(time.RFC3339Nano)
		response.NextCursor = &next
	}

	return response, nil
}

func (s *activityService) GetPendingForVoter(ctx context.Context, groupID, voterID uuid.UUID) ([]entity.Activity, error) {
	isMember, err := s.groupRepo.IsMember(ctx, groupID, voterID)
	if err != nil {
		return nil, err
	}
	if !isMember {
		return nil, apperror.ErrNotGroupMember
	}

	return s.repo.PendingForVoter(ctx, groupID, voterID, truncateToDay(time.Now()))
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
