package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// RunSync triggers one synchronous sync cycle and returns the aggregate
// counts. Per-account failures are reported inside the result; only an
// unreachable registry yields an error response.
func (h *Handlers) RunSync(c *gin.Context) {
	result, err := h.runner.RunCycle(c.Request.Context())
	if err != nil {
		logrus.Errorf("Triggered sync cycle failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"cycle_id":   result.CycleID,
		"accounts":   result.Accounts,
		"accepted":   result.Accepted,
		"rejected":   result.Rejected,
		"duplicates": result.Duplicates,
		"skipped":    result.Skipped,
		"failed":     result.Failed,
		"elapsed_ms": result.Elapsed.Milliseconds(),
	})
}

// StartScheduler starts the sync scheduler
func (h *Handlers) StartScheduler(c *gin.Context) {
	if err := h.scheduler.Start(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusOK)
}

// StopScheduler stops the sync scheduler
func (h *Handlers) StopScheduler(c *gin.Context) {
	if err := h.scheduler.Stop(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusOK)
}

// GetSchedulerStatus returns scheduler status
func (h *Handlers) GetSchedulerStatus(c *gin.Context) {
	status := "stopped"
	if h.scheduler.IsRunning() {
		status = "running"
	}
	c.JSON(http.StatusOK, gin.H{
		"status":   status,
		"next_run": h.scheduler.GetNextRun(),
		"last_run": h.scheduler.GetLastRun(),
	})
}
