package service

import (
	"context"
	"testing"
	"time"

	"github.com/fitvibes/fitvibes-server/internal/entity"
	"github.com/fitvibes/fitvibes-server/pkg/apperror"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubPaymentRepo struct {
	created []*entity.PaymentHistory
}

func (s *stubPaymentRepo) Create(ctx context.Context, payment *entity.PaymentHistory) error {
	s.created = append(s.created, payment)
	return nil
}

func (s *stubPaymentRepo) FindByGroup(ctx context.Context, groupID uuid.UUID, cycleStart, cycleEnd *time.Time) ([]entity.PaymentHistory, error) {
	out := make([]entity.PaymentHistory, 0, len(s.created))
	for _, p := range s.created {
		out = append(out, *p)
	}
	return out, nil
}

type stubGroupRepo struct {
	adminID uuid.UUID
	member  bool
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
	return &entity.GroupMember{GroupID: groupID, UserID: s.adminID, Role: entity.RoleAdmin}, nil
}

func TestRecordPenalty_BooksToGroupAdmin(t *testing.T) {
	adminID := uuid.New()
	authorID := uuid.New()
	repo := &stubPaymentRepo{}
	svc := NewPaymentService(repo, &stubGroupRepo{adminID: adminID, member: true})

	activity := &entity.Activity{
		ID:      uuid.New(),
		GroupID: uuid.New(),
		UserID:  authorID,
		Status:  entity.ActivityStatusInvalid,
	}
	require.NoError(t, svc.RecordInvalidActivityPenalty(context.Background(), activity))

	require.Len(t, repo.created, 1)
	payment := repo.created[0]
	require.Equal(t, authorID, payment.FromUserID)
	require.Equal(t, adminID, payment.ToUserID)
	require.Equal(t, DefaultPenaltyCents, payment.AmountCents)
	require.NotNil(t, payment.ActivityID)
	require.Equal(t, activity.ID, *payment.ActivityID)
}

func TestRecordPenalty_SkipsWhenAuthorIsAdmin(t *testing.T) {
	adminID := uuid.New()
	repo := &stubPaymentRepo{}
	svc := NewPaymentService(repo, &stubGroupRepo{adminID: adminID, member: true})

	activity := &entity.Activity{
		ID:      uuid.New(),
		GroupID: uuid.New(),
		UserID:  adminID,
		Status:  entity.ActivityStatusInvalid,
	}
	require.NoError(t, svc.RecordInvalidActivityPenalty(context.Background(), activity))
	require.Empty(t, repo.created)
}

func TestGetHistory_RequiresMembership(t *testing.T) {
	svc := NewPaymentService(&stubPaymentRepo{}, &stubGroupRepo{member: false})

	_, err := svc.GetHistory(context.Background(), uuid.New(), uuid.New(), nil, nil)
	require.ErrorIs(t, err, apperror.ErrNotGroupMember)
}
