package service

import (
	"context"
	"testing"
	"time"

	"github.com/fitvibes/fitvibes-server/internal/entity"
	activityRepo "github.com/fitvibes/fitvibes-server/internal/modules/activity/repository"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubStreakRepo struct {
	days         int
	record       int
	applied      []bool
	groupDays    int
	groupApplied []bool
}

func (s *stubStreakRepo) ApplyGlobalStreak(ctx context.Context, userID uuid.UUID, increment bool) (int, error) {
	s.applied = append(s.applied, increment)
	if increment {
		s.days++
	} else {
		s.days = 1
	}
	if s.days > s.record {
		s.record = s.days
	}
	return s.days, nil
}

func (s *stubStreakRepo) ApplyGroupStreak(ctx context.Context, groupID, userID uuid.UUID, increment bool) (int, error) {
	s.groupApplied = append(s.groupApplied, increment)
	if increment {
		s.groupDays++
	} else {
		s.groupDays = 1
	}
	return s.groupDays, nil
}

func (s *stubStreakRepo) GetGlobalStreak(ctx context.Context, userID uuid.UUID) (int, int, error) {
	return s.days, s.record, nil
}

func (s *stubStreakRepo) ResetGroupStreaks(ctx context.Context, groupID uuid.UUID, missedDate time.Time) (int64, error) {
	return 0, nil
}

func (s *stubStreakRepo) ResetGlobalStreaks(ctx context.Context, cutoff time.Time) (int64, error) {
	return 0, nil
}

type stubDayActivities struct {
	countToday      int64
	lastDate        *time.Time
	postedYesterday bool
}

func (s *stubDayActivities) CreateForGroups(ctx context.Context, activities []*entity.Activity) error {
	return nil
}

func (s *stubDayActivities) FindByID(ctx context.Context, id uuid.UUID) (*entity.Activity, error) {
	return nil, gorm.ErrRecordNotFound
}

func (s *stubDayActivities) HasActivityOnDate(ctx context.Context, groupID, userID uuid.UUID, date time.Time) (bool, error) {
	return s.postedYesterday, nil
}

func (s *stubDayActivities) CountForUserOnDate(ctx context.Context, userID uuid.UUID, date time.Time) (int64, error) {
	return s.countToday, nil
}

func (s *stubDayActivities) LastActivityDateBefore(ctx context.Context, userID uuid.UUID, date time.Time) (*time.Time, error) {
	return s.lastDate, nil
}

func (s *stubDayActivities) CountForUserInGroup(ctx context.Context, groupID, userID uuid.UUID) (int64, error) {
	return 0, nil
}

func (s *stubDayActivities) DistinctExerciseTypes(ctx context.Context, groupID, userID uuid.UUID) ([]string, error) {
	return nil, nil
}

func (s *stubDayActivities) Feed(ctx context.Context, groupIDs []uuid.UUID, groupFilter *uuid.UUID, cursor *time.Time, limit int) ([]activityRepo.FeedRow, error) {
	return nil, nil
}

func (s *stubDayActivities) PendingForVoter(ctx context.Context, groupID, voterID uuid.UUID, date time.Time) ([]entity.Activity, error) {
	return nil, nil
}

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestUpdateGlobalStreak_IncrementsAfterConsecutiveDay(t *testing.T) {
	yesterday := day("2025-03-09")
	repo := &stubStreakRepo{days: 4, record: 4}
	activities := &stubDayActivities{countToday: 1, lastDate: &yesterday}

	svc := NewStreakService(repo, activities, nil)
	streak, updated, err := svc.UpdateGlobalStreakOnPost(context.Background(), uuid.New(), day("2025-03-10"), 1)
	require.NoError(t, err)
	require.True(t, updated)
	require.Equal(t, 5, streak)
	require.Equal(t, []bool{true}, repo.applied)
}

func TestUpdateGlobalStreak_ResetsAfterGap(t *testing.T) {
	twoDaysAgo := day("2025-03-08")
	repo := &stubStreakRepo{days: 9, record: 9}
	activities := &stubDayActivities{countToday: 1, lastDate: &twoDaysAgo}

	svc := NewStreakService(repo, activities, nil)
	streak, updated, err := svc.UpdateGlobalStreakOnPost(context.Background(), uuid.New(), day("2025-03-10"), 1)
	require.NoError(t, err)
	require.True(t, updated)
	require.Equal(t, 1, streak)
	require.Equal(t, []bool{false}, repo.applied)
	require.Equal(t, 9, repo.record)
}

func TestUpdateGlobalStreak_FirstEverPostStartsAtOne(t *testing.T) {
	repo := &stubStreakRepo{}
	activities := &stubDayActivities{countToday: 1, lastDate: nil}

	svc := NewStreakService(repo, activities, nil)
	streak, updated, err := svc.UpdateGlobalStreakOnPost(context.Background(), uuid.New(), day("2025-03-10"), 1)
	require.NoError(t, err)
	require.True(t, updated)
	require.Equal(t, 1, streak)
}

func TestUpdateGlobalStreak_MultiGroupPostCreditsOnce(t *testing.T) {
	// A first-of-day post to three groups inserts three rows before the
	// streak update runs; the count fallback must still see it as first.
	yesterday := day("2025-03-09")
	repo := &stubStreakRepo{days: 4, record: 4}
	activities := &stubDayActivities{countToday: 3, lastDate: &yesterday}

	svc := NewStreakService(repo, activities, nil)
	streak, updated, err := svc.UpdateGlobalStreakOnPost(context.Background(), uuid.New(), day("2025-03-10"), 3)
	require.NoError(t, err)
	require.True(t, updated)
	require.Equal(t, 5, streak)
}

func TestUpdateGlobalStreak_SecondPostOfDayIsNoop(t *testing.T) {
	yesterday := day("2025-03-09")
	repo := &stubStreakRepo{days: 5, record: 5}
	// Three rows stored for today but this post only added one, so an
	// earlier post already claimed the day.
	activities := &stubDayActivities{countToday: 3, lastDate: &yesterday}

	svc := NewStreakService(repo, activities, nil)
	streak, updated, err := svc.UpdateGlobalStreakOnPost(context.Background(), uuid.New(), day("2025-03-10"), 1)
	require.NoError(t, err)
	require.False(t, updated)
	require.Equal(t, 5, streak)
	require.Empty(t, repo.applied)
}

func TestUpdateGroupStreak_IncrementsAfterConsecutiveDay(t *testing.T) {
	repo := &stubStreakRepo{groupDays: 6}
	activities := &stubDayActivities{postedYesterday: true}

	svc := NewStreakService(repo, activities, nil)
	streak, err := svc.UpdateGroupStreakOnPost(context.Background(), uuid.New(), uuid.New(), day("2025-03-10"))
	require.NoError(t, err)
	require.Equal(t, 7, streak)
	require.Equal(t, []bool{true}, repo.groupApplied)
}

func TestUpdateGroupStreak_ResetsAfterMissedDay(t *testing.T) {
	repo := &stubStreakRepo{groupDays: 6}
	activities := &stubDayActivities{postedYesterday: false}

	svc := NewStreakService(repo, activities, nil)
	streak, err := svc.UpdateGroupStreakOnPost(context.Background(), uuid.New(), uuid.New(), day("2025-03-10"))
	require.NoError(t, err)
	require.Equal(t, 1, streak)
	require.Equal(t, []bool{false}, repo.groupApplied)
}

func TestSameDay(t *testing.T) {
	require.True(t, sameDay(day("2025-03-10"), day("2025-03-10").Add(23*time.Hour)))
	require.False(t, sameDay(day("2025-03-10"), day("2025-03-11")))
}
