package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/malcolmcuady/portfolio-server/internal/agent/model"
	"github.com/malcolmcuady/portfolio-server/internal/core"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubRunner struct {
	answer   string
	statuses [][2]string
}

func (r *stubRunner) Invoke(ctx context.Context, in model.QueryInput) string {
	if in.OnStatus != nil {
		for _, s := range r.statuses {
			_ = in.OnStatus(ctx, s[0], s[1])
		}
	}
	return r.answer
}

type stubRepo struct {
	deleted int
	errs    int
	err     error
}

func (s *stubRepo) Search(ctx context.Context, query string, opts model.SearchOptions) ([]model.MemoryRecord, error) {
	return nil, nil
}

func (s *stubRepo) Add(ctx context.Context, turns []model.TurnMessage, opts model.AddOptions) error {
	return nil
}

func (s *stubRepo) Cleanup(ctx context.Context) (int, int, error) {
	return s.deleted, s.errs, s.err
}

func newTestServer(runner *stubRunner, repo *stubRepo) *Server {
	return New(Config{Port: 0, CronSecret: "test-secret"}, core.Testing, runner, repo)
}

func parseEvents(t *testing.T, body string) []map[string]any {
	t.Helper()
	var events []map[string]any
	for _, line := range strings.Split(body, "\n") {
		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		var ev map[string]any
		require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &ev))
		events = append(events, ev)
	}
	return events
}

func TestChatStreamsStatusesThenResponse(t *testing.T) {
	runner := &stubRunner{
		answer: "I mostly work in Go.",
		statuses: [][2]string{
			{model.StatusAnalyzing, "Understanding your question..."},
			{model.StatusComplete, "Answer ready!"},
		},
	}
	srv := newTestServer(runner, &stubRepo{})

	req := httptest.NewRequest(http.MethodPost, "/api/chat",
		strings.NewReader(`{"message":"What languages do you use?","sessionId":"s-1"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))

	events := parseEvents(t, rec.Body.String())
	require.NotEmpty(t, events)

	// first event is always the initial thinking status
	assert.Equal(t, "status", events[0]["type"])
	assert.Equal(t, "thinking", events[0]["status"])

	// last event is exactly one response carrying the answer
	last := events[len(events)-1]
	assert.Equal(t, "response", last["type"])
	assert.Equal(t, "I mostly work in Go.", last["response"])

	var responses int
	for _, ev := range events {
		if ev["type"] == "response" {
			responses++
		}
	}
	assert.Equal(t, 1, responses)

	// pipeline statuses are relayed in order between the two
	assert.Equal(t, model.StatusAnalyzing, events[1]["status"])
	assert.Equal(t, model.StatusComplete, events[2]["status"])
}

func TestChatRejectsMissingFields(t *testing.T) {
	srv := newTestServer(&stubRunner{answer: "x"}, &stubRepo{})

	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{name: "missing message", body: `{"sessionId":"s-1"}`, wantErr: "Message is required"},
		{name: "blank message", body: `{"message":"   ","sessionId":"s-1"}`, wantErr: "Message is required"},
		{name: "missing session", body: `{"message":"hi"}`, wantErr: "Session ID is required"},
		{name: "invalid json", body: `{`, wantErr: "Message is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			srv.Handler().ServeHTTP(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantErr)
		})
	}
}

func TestCleanupRequiresSecret(t *testing.T) {
	srv := newTestServer(&stubRunner{}, &stubRepo{})

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{name: "no header", header: "", want: http.StatusUnauthorized},
		{name: "wrong secret", header: "Bearer wrong", want: http.StatusUnauthorized},
		{name: "right secret", header: "Bearer test-secret", want: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/cron/cleanup-memories", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			srv.Handler().ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestCleanupReportsCounts(t *testing.T) {
	srv := newTestServer(&stubRunner{}, &stubRepo{deleted: 4, errs: 1})

	req := httptest.NewRequest(http.MethodGet, "/api/cron/cleanup-memories", nil)
	req.Header.Set("Authorization", "Bearer test-secret")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success   bool   `json:"success"`
		Deleted   int    `json:"deleted"`
		Errors    int    `json:"errors"`
		Timestamp string `json:"timestamp"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, 4, body.Deleted)
	assert.Equal(t, 1, body.Errors)
	assert.NotEmpty(t, body.Timestamp)
}
