package repository

import (
	"context"
	"errors"

	"github.com/fitvibes/fitvibes-server/internal/entity"
	"github.com/fitvibes/fitvibes-server/pkg/apperror"
	"gorm.io/gorm"
)

// FinalStatus decides a completed tally: strict majority of valid votes is
// required for "valid"; an exact split resolves to "invalid".
func FinalStatus(validVotes, totalVotes int) string {
	if validVotes > totalVotes/2 {
		return entity.ActivityStatusValid
	}
	return entity.ActivityStatusInvalid
}

// Tally is the vote count and finalization outcome after a cast.
type Tally struct {
	TotalVotes     int
	ValidVotes     int
	EligibleVoters int
	Finalized      bool
	Status         string
}

type VoteRepository interface {
	// CastAndFinalize inserts the vote and, when every eligible voter has
	// voted, finalizes the activity's status — all inside one transaction.
	// The status write is conditional on status still being 'pending', so a
	// concurrent final vote cannot overwrite an earlier decision.
	CastAndFinalize(ctx context.Context, vote *entity.Vote) (*Tally, error)
}

type voteRepository struct {
	db *gorm.DB
}

func NewVoteRepository(db *gorm.DB) VoteRepository {
	return &voteRepository{db: db}
}

func (r *voteRepository) CastAndFinalize(ctx context.Context, vote *entity.Vote) (*Tally, error) {
	var tally Tally

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(vote).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperror.ErrAlreadyVoted
			}
			return err
		}

		var activity entity.Activity
		if err := tx.First(&activity, "id = ?", vote.ActivityID).Error; err != nil {
			return err
		}

		var memberCount int64
		if err := tx.Model(&entity.GroupMember{}).
			Where("group_id = ?", activity.GroupID).
			Count(&memberCount).Error; err != nil {
			return err
		}
		tally.EligibleVoters = int(memberCount) - 1

		var total, valid int64
		if err := tx.Model(&entity.Vote{}).
			Where("activity_id = ?", vote.ActivityID).
			Count(&total).Error; err != nil {
			return err
		}
		if err := tx.Model(&entity.Vote{}).
			Where("activity_id = ? AND is_valid", vote.ActivityID).
			Count(&valid).Error; err != nil {
			return err
		}
		tally.TotalVotes = int(total)
		tally.ValidVotes = int(valid)
		tally.Status = activity.Status

		if tally.EligibleVoters <= 0 || tally.TotalVotes < tally.EligibleVoters {
			return nil
		}

		status := FinalStatus(tally.ValidVotes, tally.TotalVotes)

		result := tx.Model(&entity.Activity{}).
			Where("id = ? AND status = ?", vote.ActivityID, entity.ActivityStatusPending).
			Update("status", status)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected > 0 {
			tally.Finalized = true
			tally.Status = status
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &tally, nil
}
