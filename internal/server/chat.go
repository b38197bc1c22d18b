package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/malcolmcuady/portfolio-server/internal/agent/model"
	logx "github.com/malcolmcuady/portfolio-server/pkg/logger"
)

type chatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"sessionId"`
}

type statusEvent struct {
	Type   string `json:"type"`
	Status string `json:"status"`
	Detail string `json:"detail,omitempty"`
}

type responseEvent struct {
	Type     string `json:"type"`
	Response string `json:"response"`
}

// handleChat streams one answer turn as server-sent events: any number of
// status events followed by exactly one response event. The stream always
// terminates with a response; pipeline failures surface as the fallback
// answer, never as a broken stream.
func (s *Server) handleChat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message is required"})
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message is required"})
		return
	}
	if strings.TrimSpace(req.SessionID) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Session ID is required"})
		return
	}

	requestID := uuid.NewString()
	logx.Info().Str("request_id", requestID).Str("session_id", req.SessionID).Msg("chat turn started")

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.WriteHeader(http.StatusOK)

	started := time.Now()

	writeEvent(c, statusEvent{Type: "status", Status: "thinking", Detail: "Analyzing your question..."})

	answer := s.runner.Invoke(c.Request.Context(), model.QueryInput{
		SessionID: req.SessionID,
		Message:   req.Message,
		OnStatus: func(ctx context.Context, status, detail string) error {
			return writeEvent(c, statusEvent{Type: "status", Status: status, Detail: detail})
		},
	})

	writeEvent(c, responseEvent{Type: "response", Response: answer})

	logx.Info().
		Str("request_id", requestID).
		Str("session_id", req.SessionID).
		Dur("elapsed", time.Since(started)).
		Msg("chat turn complete")
}

// writeEvent marshals one event onto the SSE stream and flushes it so the
// client sees progress immediately.
func writeEvent(c *gin.Context, event any) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	if _, err := fmt.Fprintf(c.Writer, "data: %s\n\n", payload); err != nil {
		return fmt.Errorf("write event: %w", err)
	}
	c.Writer.Flush()
	return nil
}
