package jobs

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handler exposes manual HTTP triggers for the scheduled jobs.
type Handler struct {
	autoExcuse  Job
	streakReset Job
}

func NewHandler(autoExcuse, streakReset Job) *Handler {
	return &Handler{
		autoExcuse:  autoExcuse,
		streakReset: streakReset,
	}
}

func (h *Handler) RunAutoExcuse(c *gin.Context) {
	h.run(c, h.autoExcuse)
}

func (h *Handler) RunStreakReset(c *gin.Context) {
	h.run(c, h.streakReset)
}

func (h *Handler) run(c *gin.Context, job Job) {
	summary, err := job.Execute(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, summary)
}
