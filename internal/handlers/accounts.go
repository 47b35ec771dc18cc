package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ListAccounts returns every registered account. Refresh tokens are never
// serialized.
func (h *Handlers) ListAccounts(c *gin.Context) {
	accounts, err := h.registry.ListAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"accounts": accounts})
}

// UnlockAccount clears a stuck busy flag. A crash mid-sync leaves the
// persisted flag set; this is the operational reset for it.
func (h *Handlers) UnlockAccount(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid account id"})
		return
	}

	if err := h.registry.ReleaseBusy(c.Request.Context(), uint(id)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	logrus.Infof("Busy flag cleared for account %d", id)
	c.Status(http.StatusOK)
}
