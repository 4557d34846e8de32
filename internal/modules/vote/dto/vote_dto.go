package dto

type CastVoteRequest struct {
	IsValid     *bool  `json:"is_valid" binding:"required"`
	CommentType string `json:"comment_type" binding:"omitempty,oneof=good_job weak_excuse tomorrow understand respect"`
}

// CastVoteResponse reports the activity's state after the vote.
type CastVoteResponse struct {
	Status         string `json:"status"`
	Finalized      bool   `json:"finalized"`
	TotalVotes     int    `json:"total_votes"`
	ValidVotes     int    `json:"valid_votes"`
	EligibleVoters int    `json:"eligible_voters"`
}
