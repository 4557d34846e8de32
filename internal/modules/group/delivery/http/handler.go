package handler

import (
	"net/http"

	group "github.com/fitvibes/fitvibes-server/internal/modules/group/service"
	"github.com/fitvibes/fitvibes-server/pkg/response"
	"github.com/gin-gonic/gin"
)

type GroupHandler struct {
	service group.GroupService
}

func NewGroupHandler(service group.GroupService) *GroupHandler {
	return &GroupHandler{service: service}
}

func (h *GroupHandler) GetGroupsForPosting(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	groups, err := h.service.GetGroupsForPosting(c.Request.Context(), userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": groups})
}
