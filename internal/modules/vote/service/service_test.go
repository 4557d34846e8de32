package service

import (
	"context"
	"testing"
	"time"

	"github.com/fitvibes/fitvibes-server/internal/entity"
	activityRepo "github.com/fitvibes/fitvibes-server/internal/modules/activity/repository"
	voteDto "github.com/fitvibes/fitvibes-server/internal/modules/vote/dto"
	voteRepo "github.com/fitvibes/fitvibes-server/internal/modules/vote/repository"
	"github.com/fitvibes/fitvibes-server/pkg/apperror"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubVoteRepo struct {
	tally  *voteRepo.Tally
	err    error
	casted []*entity.Vote
}

func (s *stubVoteRepo) CastAndFinalize(ctx context.Context, vote *entity.Vote) (*voteRepo.Tally, error) {
	s.casted = append(s.casted, vote)
	if s.err != nil {
		return nil, s.err
	}
	return s.tally, nil
}

type stubActivityRepo struct {
	activity *entity.Activity
	err      error
}

func (s *stubActivityRepo) CreateForGroups(ctx context.Context, activities []*entity.Activity) error {
	return nil
}

func (s *stubActivityRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Activity, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.activity, nil
}

func (s *stubActivityRepo) HasActivityOnDate(ctx context.Context, groupID, userID uuid.UUID, date time.Time) (bool, error) {
	return false, nil
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

type stubGroupRepo struct {
	member bool
}

func (s *stubGroupRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Group, error) {
	return nil, gorm.ErrRecordNotFound
}

func (s *stubGroupRepo) FindAll(ctx context.Context) ([]entity.Group, error) { return nil, nil }

func (s *stubGroupRepo) FindGroupsForUser(ctx context.Context, userID uuid.UUID) ([]entity.Group, error) {
	return nil, nil
}

func (s *stubGroupRepo) FindMembers(ctx context.Context, groupID uuid.UUID) ([]entity.GroupMember, error) {
	return nil, nil
}

func (s *stubGroupRepo) IsMember(ctx context.Context, groupID, userID uuid.UUID) (bool, error) {
	return s.member, nil
}

func (s *stubGroupRepo) FindMember(ctx context.Context, groupID, userID uuid.UUID) (*entity.GroupMember, error) {
	return nil, gorm.ErrRecordNotFound
}

func (s *stubGroupRepo) FindAdmin(ctx context.Context, groupID uuid.UUID) (*entity.GroupMember, error) {
	return nil, gorm.ErrRecordNotFound
}

func boolPtr(v bool) *bool { return &v }

func pendingActivity(authorID uuid.UUID) *entity.Activity {
	return &entity.Activity{
		ID:      uuid.New(),
		UserID:  authorID,
		GroupID: uuid.New(),
		Type:    entity.ActivityTypeExercise,
		Status:  entity.ActivityStatusPending,
	}
}

func TestCastVote_ActivityNotFound(t *testing.T) {
	svc := NewVoteService(
		&stubVoteRepo{},
		&stubActivityRepo{err: gorm.ErrRecordNotFound},
		&stubGroupRepo{member: true},
		nil, nil,
	)

	_, err := svc.CastVote(context.Background(), uuid.New(), uuid.New(), voteDto.CastVoteRequest{IsValid: boolPtr(true)})
	require.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestCastVote_SelfVoteRejected(t *testing.T) {
	voterID := uuid.New()
	svc := NewVoteService(
		&stubVoteRepo{},
		&stubActivityRepo{activity: pendingActivity(voterID)},
		&stubGroupRepo{member: true},
		nil, nil,
	)

	_, err := svc.CastVote(context.Background(), voterID, uuid.New(), voteDto.CastVoteRequest{IsValid: boolPtr(true)})
	require.ErrorIs(t, err, apperror.ErrSelfVote)
}

func TestCastVote_FinalizedActivityRejected(t *testing.T) {
	activity := pendingActivity(uuid.New())
	activity.Status = entity.ActivityStatusValid

	svc := NewVoteService(
		&stubVoteRepo{},
		&stubActivityRepo{activity: activity},
		&stubGroupRepo{member: true},
		nil, nil,
	)

	_, err := svc.CastVote(context.Background(), uuid.New(), uuid.New(), voteDto.CastVoteRequest{IsValid: boolPtr(true)})
	require.ErrorIs(t, err, apperror.ErrActivityFinal)
}

func TestCastVote_NonMemberRejected(t *testing.T) {
	svc := NewVoteService(
		&stubVoteRepo{},
		&stubActivityRepo{activity: pendingActivity(uuid.New())},
		&stubGroupRepo{member: false},
		nil, nil,
	)

	_, err := svc.CastVote(context.Background(), uuid.New(), uuid.New(), voteDto.CastVoteRequest{IsValid: boolPtr(true)})
	require.ErrorIs(t, err, apperror.ErrNotGroupMember)
}

func TestCastVote_DuplicateVoteSurfaces(t *testing.T) {
	svc := NewVoteService(
		&stubVoteRepo{err: apperror.ErrAlreadyVoted},
		&stubActivityRepo{activity: pendingActivity(uuid.New())},
		&stubGroupRepo{member: true},
		nil, nil,
	)

	_, err := svc.CastVote(context.Background(), uuid.New(), uuid.New(), voteDto.CastVoteRequest{IsValid: boolPtr(true)})
	require.ErrorIs(t, err, apperror.ErrAlreadyVoted)
}

func TestCastVote_RecordsVoteWithComment(t *testing.T) {
	repo := &stubVoteRepo{tally: &voteRepo.Tally{TotalVotes: 1, ValidVotes: 0, EligibleVoters: 3, Status: entity.ActivityStatusPending}}
	svc := NewVoteService(
		repo,
		&stubActivityRepo{activity: pendingActivity(uuid.New())},
		&stubGroupRepo{member: true},
		nil, nil,
	)

	resp, err := svc.CastVote(context.Background(), uuid.New(), uuid.New(), voteDto.CastVoteRequest{
		IsValid:     boolPtr(false),
		CommentType: entity.CommentWeakExcuse,
	})
	require.NoError(t, err)
	require.False(t, resp.Finalized)
	require.Equal(t, entity.ActivityStatusPending, resp.Status)
	require.Equal(t, 1, resp.TotalVotes)
	require.Equal(t, 3, resp.EligibleVoters)

	require.Len(t, repo.casted, 1)
	require.False(t, repo.casted[0].IsValid)
	require.NotNil(t, repo.casted[0].CommentType)
	require.Equal(t, entity.CommentWeakExcuse, *repo.casted[0].CommentType)
}
