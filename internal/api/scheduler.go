package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/corp-smtk/armada-pintar-bandung-sub001/internal/scheduler"
)

// SchedulerHandler exposes scheduler state and manual control
type SchedulerHandler struct {
	sched *scheduler.Scheduler
}

// NewSchedulerHandler creates a new scheduler handler
func NewSchedulerHandler(sched *scheduler.Scheduler) *SchedulerHandler {
	return &SchedulerHandler{sched: sched}
}

// GetStatus returns the scheduler status snapshot
func (h *SchedulerHandler) GetStatus(c *gin.Context) {
	status := h.sched.Status(c.Request.Context())
	lastCheck := h.sched.LastCheckInfo(c.Request.Context())

	c.JSON(http.StatusOK, gin.H{
		"scheduler": status,
		"lastCheck": lastCheck,
	})
}

// RunCheck triggers the daily check immediately. Runs in the background; a
// check already in flight makes this a no-op.
func (h *SchedulerHandler) RunCheck(c *gin.Context) {
	// Detached from the request context: the check outlives the response
	go h.sched.RunManualCheck(context.Background())
	c.JSON(http.StatusAccepted, gin.H{"status": "check triggered"})
}

// Restart restarts the poll loop, picking up a changed trigger time
func (h *SchedulerHandler) Restart(c *gin.Context) {
	h.sched.Restart()
	c.JSON(http.StatusOK, gin.H{"status": "scheduler restarted"})
}
