package service

import (
	"context"
	"log"
	"time"

	"github.com/fitvibes/fitvibes-server/internal/entity"
	groupRepo "github.com/fitvibes/fitvibes-server/internal/modules/group/repository"
	paymentRepo "github.com/fitvibes/fitvibes-server/internal/modules/payment/repository"
	"github.com/fitvibes/fitvibes-server/pkg/apperror"
	"github.com/google/uuid"
)

// DefaultPenaltyCents is charged when an activity is voted invalid.
const DefaultPenaltyCents = 500

type PaymentService interface {
	// RecordInvalidActivityPenalty books the penalty owed by the author of
	// an invalid activity to the group's admin.
	RecordInvalidActivityPenalty(ctx context.Context, activity *entity.Activity) error
	GetHistory(ctx context.Context, requesterID, groupID uuid.UUID, cycleStart, cycleEnd *time.Time) ([]entity.PaymentHistory, error)
}

type paymentService struct {
	repo      paymentRepo.PaymentRepository
	groupRepo groupRepo.GroupRepository
}

func NewPaymentService(repo paymentRepo.PaymentRepository, groupRepo groupRepo.GroupRepository) PaymentService {
	return &paymentService{
		repo:      repo,
		groupRepo: groupRepo,
	}
}

func (s *paymentService) RecordInvalidActivityPenalty(ctx context.Context, activity *entity.Activity) error {
	admin, err := s.groupRepo.FindAdmin(ctx, activity.GroupID)
	if err != nil {
		return err
	}
	if admin.UserID == activity.UserID {
		// The admin's own invalid activity has no counterparty.
		log.Printf("Skipping penalty for group admin %s", admin.UserID)
		return nil
	}

	activityID := activity.ID
	return s.repo.Create(ctx, &entity.PaymentHistory{
		GroupID:     activity.GroupID,
		ActivityID:  &activityID,
		FromUserID:  activity.UserID,
		ToUserID:    admin.UserID,
		Reason:      "invalid activity",
		AmountCents: DefaultPenaltyCents,
	})
}

func (s *paymentService) GetHistory(ctx context.Context, requesterID, groupID uuid.UUID, cycleStart, cycleEnd *time.Time) ([]entity.PaymentHistory, error) {
	isMember, err := s.groupRepo.IsMember(ctx, groupID, requesterID)
	if err != nil {
		return nil, err
	}
	if !isMember {
		return nil, apperror.ErrNotGroupMember
	}

	return s.repo.FindByGroup(ctx, groupID, cycleStart, cycleEnd)
}
