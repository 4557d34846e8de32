package handler

import (
	"net/http"

	voteDto "github.com/fitvibes/fitvibes-server/internal/modules/vote/dto"
	vote "github.com/fitvibes/fitvibes-server/internal/modules/vote/service"
	"github.com/fitvibes/fitvibes-server/pkg/response"
	"github.com/fitvibes/fitvibes-server/pkg/validator"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type VoteHandler struct {
	service vote.VoteService
}

func NewVoteHandler(service vote.VoteService) *VoteHandler {
	return &VoteHandler{service: service}
}

func (h *VoteHandler) CastVote(c *gin.Context) {
	activityID, err := uuid.Parse(c.Param("activity_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid activity id"})
		return
	}

	var req voteDto.CastVoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	voterID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	result, err := h.service.CastVote(c.Request.Context(), voterID, activityID, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}
