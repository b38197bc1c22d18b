package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/malcolmcuady/portfolio-server/internal/agent/graph"
	"github.com/malcolmcuady/portfolio-server/internal/agent/model"
	"github.com/malcolmcuady/portfolio-server/internal/agent/repo"
	"github.com/malcolmcuady/portfolio-server/internal/core"
	"github.com/malcolmcuady/portfolio-server/internal/corpus"
	"github.com/malcolmcuady/portfolio-server/internal/server"
	logx "github.com/malcolmcuady/portfolio-server/pkg/logger"
	pkgredis "github.com/malcolmcuady/portfolio-server/pkg/redis"
)

// AppConfig defines all configurable parameters for the portfolio server,
// sourced from environment variables (loaded from .env for local runs).
type AppConfig struct {
	Environment string `envconfig:"ENVIRONMENT" default:"development"`

	// Infrastructure
	Redis  pkgredis.Config
	Server server.Config

	// LLM provider
	APIKey  string `envconfig:"GEMINI_API_KEY" required:"true"`
	BaseURL string `envconfig:"GEMINI_BASE_URL"`

	// Pipeline configs
	Analysis model.AnalysisModelConfig
	Response model.ResponseModelConfig
	Persona  model.PersonaConfig
	Pipeline model.PipelineConfig
	Memory   model.MemoryConfig
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	// Load structured config from env
	var envCfg AppConfig
	if err := envconfig.Process("", &envCfg); err != nil {
		log.Fatalf("Failed to process environment config: %v", err)
	}

	env := core.ParseEnvironment(envCfg.Environment)
	logx.Init(logx.LoggerOpts{Environment: env})

	rdb, err := envCfg.Redis.New()
	if err != nil {
		logx.Fatal().Err(err).Msg("Failed to initialise Redis client")
	}
	defer rdb.Close()
	logx.Info().Msg("Connected to Redis successfully")

	ttl, err := time.ParseDuration(envCfg.Memory.TTL)
	if err != nil {
		logx.Fatal().Err(err).Str("ttl", envCfg.Memory.TTL).Msg("Invalid MEMORY_TTL")
	}

	embedder, err := repo.NewGeminiEmbedder(ctx, envCfg.APIKey, envCfg.BaseURL, envCfg.Memory.EmbeddingModel)
	if err != nil {
		logx.Fatal().Err(err).Msg("Failed to initialise embedder")
	}
	memoryRepo := repo.NewRedisMemoryRepository(rdb, embedder, ttl)

	runner, err := graph.BuildPipeline(ctx, graph.Config{
		APIKey:        envCfg.APIKey,
		BaseURL:       envCfg.BaseURL,
		AnalysisModel: envCfg.Analysis,
		ResponseModel: envCfg.Response,
		Persona:       envCfg.Persona,
		Pipeline:      envCfg.Pipeline,
		Memory:        envCfg.Memory,
		MemoryRepo:    memoryRepo,
		Corpus:        corpus.Default(),
	})
	if err != nil {
		logx.Fatal().Err(err).Msg("Failed to build answer pipeline")
	}

	srv := server.New(envCfg.Server, env, runner, memoryRepo)
	if err := srv.Run(ctx); err != nil {
		logx.Fatal().Err(err).Msg("HTTP server failed")
	}
}
