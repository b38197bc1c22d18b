package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	logx "github.com/malcolmcuady/portfolio-server/pkg/logger"
)

// handleCleanupMemories removes expired memory entries. The endpoint is meant
// for a scheduler, so it is gated by a shared secret rather than user auth.
func (s *Server) handleCleanupMemories(c *gin.Context) {
	if c.GetHeader("Authorization") != "Bearer "+s.cfg.CronSecret {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	deleted, errCount, err := s.repo.Cleanup(c.Request.Context())
	if err != nil {
		logx.Error().Err(err).Msg("memory cleanup failed")
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"deleted":   deleted,
		"errors":    errCount,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
