// Package server exposes the answer pipeline over HTTP: a server-sent-events
// chat endpoint and a secret-gated memory cleanup endpoint for scheduled jobs.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/malcolmcuady/portfolio-server/internal/agent/graph"
	"github.com/malcolmcuady/portfolio-server/internal/agent/model"
	"github.com/malcolmcuady/portfolio-server/internal/core"
	logx "github.com/malcolmcuady/portfolio-server/pkg/logger"
)

// Config holds the HTTP listener settings.
type Config struct {
	Port            int    `envconfig:"SERVER_PORT" default:"8080"`
	CronSecret      string `envconfig:"CRON_SECRET"`
	ShutdownTimeout string `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"10s"`
}

// Server routes HTTP traffic to the pipeline and the memory store.
type Server struct {
	cfg    Config
	engine *gin.Engine
	runner graph.Runner
	repo   model.MemoryRepository
}

// New wires the routes. The runner must already be compiled.
func New(cfg Config, env core.Environment, runner graph.Runner, repo model.MemoryRepository) *Server {
	if env.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())

	s := &Server{
		cfg:    cfg,
		engine: engine,
		runner: runner,
		repo:   repo,
	}

	engine.POST("/api/chat", s.handleChat)
	engine.GET("/api/cron/cleanup-memories", s.handleCleanupMemories)

	return s
}

// Handler exposes the underlying router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until the context is canceled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", s.cfg.Port),
		Handler: s.engine,
	}

	errCh := make(chan error, 1)
	go func() {
		logx.Info().Int("port", s.cfg.Port).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	timeout, err := time.ParseDuration(s.cfg.ShutdownTimeout)
	if err != nil {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	logx.Info().Msg("HTTP server shutting down")
	return srv.Shutdown(shutdownCtx)
}
