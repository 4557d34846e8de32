package jobs

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

type stubGroupRepo struct {
	groups  []entity.Group
	members map[uuid.UUID][]entity.GroupMember
}

func (s *stubGroupRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Group, error) {
	return nil, gorm.ErrRecordNotFound
}

func (s *stubGroupRepo) FindAll(ctx context.Context) ([]entity.Group, error) {
	return s.groups, nil
}

func (s *stubGroupRepo) FindGroupsForUser(ctx context.Context, userID uuid.UUID) ([]entity.Group, error) {
	return nil, nil
}

func (s *stubGroupRepo) FindMembers(ctx context.Context, groupID uuid.UUID) ([]entity.GroupMember, error) {
	return s.members[groupID], nil
}

func (s *stubGroupRepo) IsMember(ctx context.Context, groupID, userID uuid.UUID) (bool, error) {
	return false, nil
}

func (s *stubGroupRepo) FindMember(ctx context.Context, groupID, userID uuid.UUID) (*entity.GroupMember, error) {
	return nil, gorm.ErrRecordNotFound
}

func (s *stubGroupRepo) FindAdmin(ctx context.Context, groupID uuid.UUID) (*entity.GroupMember, error) {
	return nil, gorm.ErrRecordNotFound
}

type stubStreakRepo struct {
	groupResets  []uuid.UUID
	globalResets []time.Time
}

func (s *stubStreakRepo) ApplyGlobalStreak(ctx context.Context, userID uuid.UUID, increment bool) (int, error) {
	return 0, nil
}

func (s *stubStreakRepo) ApplyGroupStreak(ctx context.Context, groupID, userID uuid.UUID, increment bool) (int, error) {
	return 0, nil
}

func (s *stubStreakRepo) GetGlobalStreak(ctx context.Context, userID uuid.UUID) (int, int, error) {
	return 0, 0, nil
}

func (s *stubStreakRepo) ResetGroupStreaks(ctx context.Context, groupID uuid.UUID, missedDate time.Time) (int64, error) {
	s.groupResets = append(s.groupResets, groupID)
	return 1, nil
}

func (s *stubStreakRepo) ResetGlobalStreaks(ctx context.Context, cutoff time.Time) (int64, error) {
	s.globalResets = append(s.globalResets, cutoff)
	return 1, nil
}

type stubActivityRepo struct {
	posted  map[string]bool // "<groupID>|<userID>"
	created []*entity.Activity
}

func activityKey(groupID, userID uuid.UUID) string {
	return groupID.String() + "|" + userID.String()
}

func (s *stubActivityRepo) CreateForGroups(ctx context.Context, activities []*entity.Activity) error {
	s.created = append(s.created, activities...)
	return nil
}

func (s *stubActivityRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Activity, error) {
	return nil, gorm.ErrRecordNotFound
}

func (s *stubActivityRepo) HasActivityOnDate(ctx context.Context, groupID, userID uuid.UUID, date time.Time) (bool, error) {
	return s.posted[activityKey(groupID, userID)], nil
}

func (s *stubActivityRepo) CountForUserOnDate(ctx context.Context, userID uuid.UUID, date time.Time) (int64, error) {
	return 0, nil
}

func (s *stubActivityRepo) LastActivityDateBefore(ctx context.Context, userID uuid.UUID, date time.Time) (*time.Time, error) {
	return nil, nil
}

func (s *stubActivityRepo) CountForUserInGroup(ctx context.Context, groupID, userID uuid.UUID) (int64, error) {
	return 0, nil
}

func (s *stubActivityRepo) DistinctExerciseTypes(ctx context.Context, groupID, userID uuid.UUID) ([]string, error) {
	return nil, nil
}

func (s *stubActivityRepo) Feed(ctx context.Context, groupIDs []uuid.UUID, groupFilter *uuid.UUID, cursor *time.Time, limit int) ([]activityRepo.FeedRow, error) {
	return nil, nil
}

func (s *stubActivityRepo) PendingForVoter(ctx context.Context, groupID, voterID uuid.UUID, date time.Time) ([]entity.Activity, error) {
	return nil, nil
}

func TestStreakReset_RunsInsideMidnightWindow(t *testing.T) {
	group := entity.Group{ID: uuid.New(), Name: "Night Owls", Timezone: "UTC"}
	groups := &stubGroupRepo{groups: []entity.Group{group}}
	streaks := &stubStreakRepo{}

	job := NewStreakResetJob(groups, streaks, "*/30 * * * *")
	job.now = func() time.Time {
		return time.Date(2025, 3, 10, 0, 10, 0, 0, time.UTC)
	}

	summary, err := job.Execute(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, summary["groups"])
	require.Equal(t, []uuid.UUID{group.ID}, streaks.groupResets)

	require.Len(t, streaks.globalResets, 1)
	require.Equal(t, time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC), streaks.globalResets[0])
}

func TestStreakReset_SkipsOutsideMidnightWindow(t *testing.T) {
	group := entity.Group{ID: uuid.New(), Name: "Day Crew", Timezone: "UTC"}
	groups := &stubGroupRepo{groups: []entity.Group{group}}
	streaks := &stubStreakRepo{}

	job := NewStreakResetJob(groups, streaks, "*/30 * * * *")
	job.now = func() time.Time {
		return time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)
	}

	_, err := job.Execute(context.Background())
	require.NoError(t, err)
	require.Empty(t, streaks.groupResets)
	require.Empty(t, streaks.globalResets)
}

func TestStreakReset_GlobalResetOncePerTimezone(t *testing.T) {
	groups := &stubGroupRepo{groups: []entity.Group{
		{ID: uuid.New(), Name: "A", Timezone: "UTC"},
		{ID: uuid.New(), Name: "B", Timezone: "UTC"},
	}}
	streaks := &stubStreakRepo{}

	job := NewStreakResetJob(groups, streaks, "*/30 * * * *")
	job.now = func() time.Time {
		return time.Date(2025, 3, 10, 0, 5, 0, 0, time.UTC)
	}

	_, err := job.Execute(context.Background())
	require.NoError(t, err)
	require.Len(t, streaks.groupResets, 2)
	require.Len(t, streaks.globalResets, 1)
}

func TestStreakReset_InvalidTimezoneReported(t *testing.T) {
	group := entity.Group{ID: uuid.New(), Name: "Lost", Timezone: "Mars/Olympus"}
	groups := &stubGroupRepo{groups: []entity.Group{group}}
	streaks := &stubStreakRepo{}

	job := NewStreakResetJob(groups, streaks, "*/30 * * * *")
	summary, err := job.Execute(context.Background())
	require.NoError(t, err)
	require.Empty(t, streaks.groupResets)

	resets, ok := summary["resets"].([]map[string]interface{})
	require.True(t, ok)
	require.Len(t, resets, 1)
	require.Contains(t, resets[0]["error"], "invalid timezone")
}

func TestAutoExcuse_CreatesExcusesForMissingMembers(t *testing.T) {
	group := entity.Group{ID: uuid.New(), Name: "Morning Crew", Timezone: "UTC"}
	active := entity.GroupMember{GroupID: group.ID, UserID: uuid.New()}
	slacker := entity.GroupMember{GroupID: group.ID, UserID: uuid.New()}

	groups := &stubGroupRepo{
		groups:  []entity.Group{group},
		members: map[uuid.UUID][]entity.GroupMember{group.ID: {active, slacker}},
	}
	activities := &stubActivityRepo{
		posted: map[string]bool{activityKey(group.ID, active.UserID): true},
	}

	job := NewAutoExcuseJob(groups, activities, nil, "0 6 * * *")
	summary, err := job.Execute(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, summary["created"])

	require.Len(t, activities.created, 1)
	created := activities.created[0]
	require.Equal(t, slacker.UserID, created.UserID)
	require.Equal(t, group.ID, created.GroupID)
	require.Equal(t, entity.ActivityTypeAutoExcuse, created.Type)
	require.Equal(t, entity.ActivityStatusPending, created.Status)
	require.NotNil(t, created.ExcuseText)
	require.Contains(t, autoExcuseMessages, *created.ExcuseText)
}

func TestAutoExcuse_NoMissingMembersCreatesNothing(t *testing.T) {
	group := entity.Group{ID: uuid.New(), Name: "Diligent", Timezone: "UTC"}
	member := entity.GroupMember{GroupID: group.ID, UserID: uuid.New()}

	groups := &stubGroupRepo{
		groups:  []entity.Group{group},
		members: map[uuid.UUID][]entity.GroupMember{group.ID: {member}},
	}
	activities := &stubActivityRepo{
		posted: map[string]bool{activityKey(group.ID, member.UserID): true},
	}

	job := NewAutoExcuseJob(groups, activities, nil, "0 6 * * *")
	summary, err := job.Execute(context.Background())
	require.NoError(t, err)
	require.Equal(t, 0, summary["created"])
	require.Empty(t, activities.created)
}
