package handler

import (
	"net/http"

	achievement "github.com/fitvibes/fitvibes-server/internal/modules/achievement/service"
	"github.com/fitvibes/fitvibes-server/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AchievementHandler struct {
	service achievement.EvaluatorService
}

func NewAchievementHandler(service achievement.EvaluatorService) *AchievementHandler {
	return &AchievementHandler{service: service}
}

func (h *AchievementHandler) GetMyAchievements(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var groupID *uuid.UUID
	if raw := c.Query("group_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid group id"})
			return
		}
		groupID = &parsed
	}

	achievements, err := h.service.GetUserAchievements(c.Request.Context(), userID, groupID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": achievements})
}
