package handler

import (
	"net/http"
	"time"

	payment "github.com/fitvibes/fitvibes-server/internal/modules/payment/service"
	"github.com/fitvibes/fitvibes-server/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PaymentHandler struct {
	service payment.PaymentService
}

func NewPaymentHandler(service payment.PaymentService) *PaymentHandler {
	return &PaymentHandler{service: service}
}

func (h *PaymentHandler) GetHistory(c *gin.Context) {
	groupID, err := uuid.Parse(c.Param("group_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid group id"})
		return
	}

	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var cycleStart, cycleEnd *time.Time
	if raw := c.Query("cycle_start"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid cycle_start"})
			return
		}
		cycleStart = &parsed
	}
	if raw := c.Query("cycle_end"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid cycle_end"})
			return
		}
		cycleEnd = &parsed
	}

	payments, err := h.service.GetHistory(c.Request.Context(), userID, groupID, cycleStart, cycleEnd)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": payments})
}
