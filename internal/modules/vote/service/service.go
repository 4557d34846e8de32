package service

import (
	"context"
	"errors"
	"log"

	"github.com/fitvibes/fitvibes-server/internal/entity"
	activityRepo "github.com/fitvibes/fitvibes-server/internal/modules/activity/repository"
	groupRepo "github.com/fitvibes/fitvibes-server/internal/modules/group/repository"
	notifService "github.com/fitvibes/fitvibes-server/internal/modules/notification/service"
	paymentService "github.com/fitvibes/fitvibes-server/internal/modules/payment/service"
	voteDto "github.com/fitvibes/fitvibes-server/internal/modules/vote/dto"
	voteRepo "github.com/fitvibes/fitvibes-server/internal/modules/vote/repository"
	"github.com/fitvibes/fitvibes-server/pkg/apperror"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VoteService interface {
	// CastVote records one member's verdict on a pending activity and
	// finalizes the activity once every eligible voter has spoken.
	CastVote(ctx context.Context, voterID, activityID uuid.UUID, req voteDto.CastVoteRequest) (*voteDto.CastVoteResponse, error)
}

type voteService struct {
	repo           voteRepo.VoteRepository
	activityRepo   activityRepo.ActivityRepository
	groupRepo      groupRepo.GroupRepository
	notifService   notifService.NotificationService
	paymentService paymentService.PaymentService
}

func NewVoteService(repo voteRepo.VoteRepository, activityRepo activityRepo.ActivityRepository, groupRepo groupRepo.GroupRepository, notifService notifService.NotificationService, paymentService paymentService.PaymentService) VoteService {
	return &voteService{
		repo:           repo,
		activityRepo:   activityRepo,
		groupRepo:      groupRepo,
		notifService:   notifService,
		paymentService: paymentService,
	}
}

func (s *voteService) CastVote(ctx context.Context, voterID, activityID uuid.UUID, req voteDto.CastVoteRequest) (*voteDto.CastVoteResponse, error) {
	activity, err := s.activityRepo.FindByID(ctx, activityID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	if activity.UserID == voterID {
		return nil, apperror.ErrSelfVote
	}
	if activity.Status != entity.ActivityStatusPending {
		return nil, apperror.ErrActivityFinal
	}

	isMember, err := s.groupRepo.IsMember(ctx, activity.GroupID, voterID)
	if err != nil {
		return nil, err
	}
	if !isMember {
		return nil, apperror.ErrNotGroupMember
	}

	vote := &entity.Vote{
		ActivityID: activityID,
		VoterID:    voterID,
		IsValid:    *req.IsValid,
	}
	if req.CommentType != "" {
		vote.CommentType = &req.CommentType
	}

	tally, err := s.repo.CastAndFinalize(ctx, vote)
	if err != nil {
		return nil, err
	}

	if tally.Finalized {
		log.Printf("🗳️ Activity %s finalized as %s (%d/%d valid)", activityID, tally.Status, tally.ValidVotes, tally.TotalVotes)
		s.dispatchVerdict(activity, tally.Status)
	}

	return &voteDto.CastVoteResponse{
		Status:         tally.Status,
		Finalized:      tally.Finalized,
		TotalVotes:     tally.TotalVotes,
		ValidVotes:     tally.ValidVotes,
		EligibleVoters: tally.EligibleVoters,
	}, nil
}

// dispatchVerdict handles finalization side effects in the background:
// notify the author, and book the penalty when the activity was rejected.
func (s *voteService) dispatchVerdict(activity *entity.Activity, status string) {
	go func() {
		ctx := context.Background()

		groupID := activity.GroupID
		title := "Your activity was approved!"
		body := "The group voted your activity as valid. Keep it up! 💪"
		if status == entity.ActivityStatusInvalid {
			title = "Your activity was rejected"
			body = "The group voted your activity as invalid. Time to pay up! 💸"
		}

		notif := &entity.Notification{
			UserID:  activity.UserID,
			GroupID: &groupID,
			Type:    entity.NotificationTypeVoteResult,
			Title:   title,
			Body:    body,
		}
		if err := s.notifService.CreateNotification(ctx, notif); err != nil {
			log.Printf("Failed to send vote result notification to user %s: %v", activity.UserID, err)
		}

		if status == entity.ActivityStatusInvalid && s.paymentService != nil {
			if err := s.paymentService.RecordInvalidActivityPenalty(ctx, activity); err != nil {
				log.Printf("Failed to record penalty for activity %s: %v", activity.ID, err)
			}
		}
	}()
}
