package service

import (
	"context"
	"fmt"
	"log"
	"time"

	activityRepo "github.com/fitvibes/fitvibes-server/internal/modules/activity/repository"
	streakRepo "github.com/fitvibes/fitvibes-server/internal/modules/streak/repository"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// dayLockTTL keeps the per-(user, date) lock alive well past the day it
// guards, so late retries on the same date still see it.
const dayLockTTL = 48 * time.Hour

type StreakService interface {
	// UpdateGlobalStreakOnPost credits the user's daily global streak right
	// after an activity post. postedRows is how many rows the post just
	// inserted (one per group). The credit runs at most once per user per
	// calendar day; repeat calls (later posts, double taps) return the
	// current streak with updated=false.
	UpdateGlobalStreakOnPost(ctx context.Context, userID uuid.UUID, today time.Time, postedRows int) (newStreak int, updated bool, err error)
	// UpdateGroupStreakOnPost advances the member's streak in one group:
	// +1 when they also posted there yesterday, back to 1 otherwise.
	UpdateGroupStreakOnPost(ctx context.Context, groupID, userID uuid.UUID, today time.Time) (int, error)
}

type streakService struct {
	repo         streakRepo.StreakRepository
	activityRepo activityRepo.ActivityRepository
	redisClient  *redis.Client
}

func NewStreakService(repo streakRepo.StreakRepository, activityRepo activityRepo.ActivityRepository, redisClient *redis.Client) StreakService {
	return &streakService{
		repo:         repo,
		activityRepo: activityRepo,
		redisClient:  redisClient,
	}
}

func (s *streakService) UpdateGlobalStreakOnPost(ctx context.Context, userID uuid.UUID, today time.Time, postedRows int) (int, bool, error) {
	first, err := s.isFirstPostOfDay(ctx, userID, today, postedRows)
	if err != nil {
		return 0, false, err
	}
	if !first {
		days, _, err := s.repo.GetGlobalStreak(ctx, userID)
		return days, false, err
	}

	prior, err := s.activityRepo.LastActivityDateBefore(ctx, userID, today)
	if err != nil {
		return 0, false, err
	}

	yesterday := today.AddDate(0, 0, -1)
	increment := prior != nil && sameDay(*prior, yesterday)

	newStreak, err := s.repo.ApplyGlobalStreak(ctx, userID, increment)
	if err != nil {
		return 0, false, err
	}

	if !increment {
		log.Printf("🔁 Global streak reset to 1 for user %s", userID)
	}

	return newStreak, true, nil
}

func (s *streakService) UpdateGroupStreakOnPost(ctx context.Context, groupID, userID uuid.UUID, today time.Time) (int, error) {
	yesterday := today.AddDate(0, 0, -1)
	postedYesterday, err := s.activityRepo.HasActivityOnDate(ctx, groupID, userID, yesterday)
	if err != nil {
		return 0, err
	}

	return s.repo.ApplyGroupStreak(ctx, groupID, userID, postedYesterday)
}

// isFirstPostOfDay takes a Redis SETNX day-lock so concurrent posts by the
// same user on the same day credit the streak exactly once. Without Redis it
// falls back to counting today's rows: the post that finds only its own
// freshly inserted rows was the first.
func (s *streakService) isFirstPostOfDay(ctx context.Context, userID uuid.UUID, today time.Time, postedRows int) (bool, error) {
	if s.redisClient != nil {
		key := fmt.Sprintf("global_streak_lock:%s:%s", userID, today.Format("2006-01-02"))
		ok, err := s.redisClient.SetNX(ctx, key, 1, dayLockTTL).Result()
		if err == nil {
			return ok, nil
		}
		log.Printf("Redis day-lock failed, falling back to count: %v", err)
	}

	count, err := s.activityRepo.CountForUserOnDate(ctx, userID, today)
	if err != nil {
		return false, err
	}
	return count == int64(postedRows), nil
}

func sameDay(a, b time.Time) bool {
	return a.Format("2006-01-02") == b.Format("2006-01-02")
}
