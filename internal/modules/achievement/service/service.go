package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/fitvibes/fitvibes-server/internal/entity"
	achievementRepo "github.com/fitvibes/fitvibes-server/internal/modules/achievement/repository"
	activityRepo "github.com/fitvibes/fitvibes-server/internal/modules/activity/repository"
	groupRepo "github.com/fitvibes/fitvibes-server/internal/modules/group/repository"
	"github.com/google/uuid"
)

var (
	groupStreakThresholds  = []int{1, 14, 30, 60, 100}
	globalStreakThresholds = []int{1, 7, 14, 30, 60, 100}
	varietyThresholds      = []int{1, 5, 10}
)

// ActivityEvent describes one freshly posted activity in one group, the
// input to achievement evaluation.
type ActivityEvent struct {
	UserID       uuid.UUID
	GroupID      uuid.UUID
	Type         string
	ExerciseType *string
	Date         time.Time
	// GlobalStreak is the user's global streak after this post, or 0 when
	// the post did not advance it (not the first post of the day).
	GlobalStreak int
}

// Awarded is one newly earned badge. The evaluator only records badges;
// notification dispatch is driven by the returned slice.
type Awarded struct {
	UserID      uuid.UUID
	GroupID     *uuid.UUID
	Type        string
	Title       string
	Description string
}

type EvaluatorService interface {
	// EvaluateActivityPosted checks every badge rule against the event and
	// awards idempotently. Per-rule failures are logged and skipped; the
	// returned slice holds only badges that were actually inserted now.
	EvaluateActivityPosted(ctx context.Context, event ActivityEvent) ([]Awarded, error)
	GetUserAchievements(ctx context.Context, userID uuid.UUID, groupID *uuid.UUID) ([]entity.Achievement, error)
}

type evaluatorService struct {
	repo         achievementRepo.AchievementRepository
	activityRepo activityRepo.ActivityRepository
	groupRepo    groupRepo.GroupRepository
}

func NewEvaluatorService(repo achievementRepo.AchievementRepository, activityRepo activityRepo.ActivityRepository, groupRepo groupRepo.GroupRepository) EvaluatorService {
	return &evaluatorService{
		repo:         repo,
		activityRepo: activityRepo,
		groupRepo:    groupRepo,
	}
}

func (s *evaluatorService) EvaluateActivityPosted(ctx context.Context, event ActivityEvent) ([]Awarded, error) {
	var awarded []Awarded

	awarded = append(awarded, s.checkSocial(ctx, event)...)
	awarded = append(awarded, s.checkGroupStreak(ctx, event)...)
	if event.Type == entity.ActivityTypeExercise {
		awarded = append(awarded, s.checkVariety(ctx, event)...)
	}
	if event.GlobalStreak > 0 {
		awarded = append(awarded, s.checkGlobalStreak(ctx, event)...)
	}

	return awarded, nil
}

func (s *evaluatorService) GetUserAchievements(ctx context.Context, userID uuid.UUID, groupID *uuid.UUID) ([]entity.Achievement, error) {
	return s.repo.FindByUser(ctx, userID, groupID)
}

// checkSocial awards the one-time first-activity badge for the group.
func (s *evaluatorService) checkSocial(ctx context.Context, event ActivityEvent) []Awarded {
	count, err := s.activityRepo.CountForUserInGroup(ctx, event.GroupID, event.UserID)
	if err != nil {
		log.Printf("Failed to count activities for social badge (user %s): %v", event.UserID, err)
		return nil
	}
	if count != 1 {
		return nil
	}

	groupID := event.GroupID
	return s.award(ctx, Awarded{
		UserID:      event.UserID,
		GroupID:     &groupID,
		Type:        entity.AchievementTypeSocial,
		Title:       "First activity",
		Description: "You posted your first activity in this group!",
	})
}

func (s *evaluatorService) checkGroupStreak(ctx context.Context, event ActivityEvent) []Awarded {
	member, err := s.groupRepo.FindMember(ctx, event.GroupID, event.UserID)
	if err != nil {
		log.Printf("Failed to load member streak (user %s, group %s): %v", event.UserID, event.GroupID, err)
		return nil
	}

	var awarded []Awarded
	groupID := event.GroupID
	for _, threshold := range groupStreakThresholds {
		if member.StreakDays < threshold {
			break
		}
		awarded = append(awarded, s.award(ctx, Awarded{
			UserID:      event.UserID,
			GroupID:     &groupID,
			Type:        entity.AchievementTypeStreak,
			Title:       fmt.Sprintf("Streak: %d days", threshold),
			Description: fmt.Sprintf("You worked out %d days in a row!", threshold),
		})...)
	}
	return awarded
}

func (s *evaluatorService) checkVariety(ctx context.Context, event ActivityEvent) []Awarded {
	types, err := s.activityRepo.DistinctExerciseTypes(ctx, event.GroupID, event.UserID)
	if err != nil {
		log.Printf("Failed to count exercise variety (user %s): %v", event.UserID, err)
		return nil
	}

	var awarded []Awarded
	groupID := event.GroupID
	for _, threshold := range varietyThresholds {
		if len(types) < threshold {
			break
		}
		awarded = append(awarded, s.award(ctx, Awarded{
			UserID:      event.UserID,
			GroupID:     &groupID,
			Type:        entity.AchievementTypeVariety,
			Title:       fmt.Sprintf("Variety: %d types", threshold),
			Description: fmt.Sprintf("You tried %d different kinds of exercise: %s", threshold, formatTypeList(types)),
		})...)
	}
	return awarded
}

func (s *evaluatorService) checkGlobalStreak(ctx context.Context, event ActivityEvent) []Awarded {
	var awarded []Awarded
	for _, threshold := range globalStreakThresholds {
		if event.GlobalStreak < threshold {
			break
		}
		awarded = append(awarded, s.award(ctx, Awarded{
			UserID:      event.UserID,
			GroupID:     nil,
			Type:        entity.AchievementTypeGlobalStreak,
			Title:       fmt.Sprintf("Global streak: %d days", threshold),
			Description: fmt.Sprintf("You stayed active %d days in a row across all your groups!", threshold),
		})...)
	}
	return awarded
}

func (s *evaluatorService) award(ctx context.Context, a Awarded) []Awarded {
	inserted, err := s.repo.AwardIfNotExists(ctx, &entity.Achievement{
		UserID:      a.UserID,
		GroupID:     a.GroupID,
		Type:        a.Type,
		Title:       a.Title,
		Description: a.Description,
	})
	if err != nil {
		log.Printf("Failed to award achievement %q to user %s: %v", a.Title, a.UserID, err)
		return nil
	}
	if !inserted {
		return nil
	}

	log.Printf("🏅 Achievement awarded to user %s: %s", a.UserID, a.Title)
	return []Awarded{a}
}

func formatTypeList(types []string) string {
	switch len(types) {
	case 0:
		return ""
	case 1:
		return types[0]
	case 2:
		return types[0] + " and " + types[1]
	default:
		head := types[:len(types)-1]
		out := ""
		for i, t := range head {
			if i > 0 {
				out += ", "
			}
			out += t
		}
		return out + " and " + types[len(types)-1]
	}
}
