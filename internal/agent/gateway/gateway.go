// Package gateway wraps the hosted generation capability behind a small
// interface: a prompt goes in, raw model text comes out. Schema conformance
// of that text is enforced by the parsers package before anything downstream
// trusts it.
package gateway

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino-ext/components/model/gemini"
	"github.com/cloudwego/eino/schema"
	"google.golang.org/genai"

	errx "github.com/malcolmcuady/portfolio-server/internal/core/error"
	"github.com/malcolmcuady/portfolio-server/internal/agent/model"
	logx "github.com/malcolmcuady/portfolio-server/pkg/logger"
)

// Result is one raw generation: content plus usage for cost accounting.
type Result struct {
	Content string
	Model   string
	Usage   *schema.TokenUsage
}

// Generator is the pipeline's view of the generation capability. Analysis is
// the low-temperature model (classify, retrieve, validate, rewrite); Response
// is the warmer model (draft, general conversation).
type Generator interface {
	Analysis(ctx context.Context, system, user string) (*Result, error)
	Response(ctx context.Context, system, user string) (*Result, error)
}

// Config holds what is needed to construct both chat models.
type Config struct {
	APIKey   string
	BaseURL  string
	Analysis *model.AnalysisModelConfig
	Response *model.ResponseModelConfig
}

// ChatGateway is the Gemini-backed Generator.
type ChatGateway struct {
	analysis     *gemini.ChatModel
	response     *gemini.ChatModel
	analysisName string
	responseName string
}

var _ Generator = (*ChatGateway)(nil)

// New creates the Gemini client and both chat models.
func New(ctx context.Context, cfg Config) (*ChatGateway, error) {
	if cfg.Analysis == nil || cfg.Response == nil {
		return nil, fmt.Errorf("gateway model configs are nil")
	}

	clientCfg := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions.BaseURL = cfg.BaseURL
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		logx.Error().Err(err).Msg("Error creating Gemini client")
		return nil, fmt.Errorf("error creating Gemini client: %w", err)
	}

	analysis, err := gemini.NewChatModel(ctx, &gemini.Config{
		Client:      client,
		Model:       cfg.Analysis.Model,
		Temperature: &cfg.Analysis.Temperature,
		MaxTokens:   &cfg.Analysis.MaxTokens,
	})
	if err != nil {
		logx.Error().Err(err).Msg("Error creating analysis model")
		return nil, fmt.Errorf("error creating analysis model: %w", err)
	}

	response, err := gemini.NewChatModel(ctx, &gemini.Config{
		Client:      client,
		Model:       cfg.Response.Model,
		Temperature: &cfg.Response.Temperature,
		MaxTokens:   &cfg.Response.MaxTokens,
	})
	if err != nil {
		logx.Error().Err(err).Msg("Error creating response model")
		return nil, fmt.Errorf("error creating response model: %w", err)
	}

	return &ChatGateway{
		analysis:     analysis,
		response:     response,
		analysisName: cfg.Analysis.Model,
		responseName: cfg.Response.Model,
	}, nil
}

func (g *ChatGateway) Analysis(ctx context.Context, system, user string) (*Result, error) {
	return g.generate(ctx, g.analysis, g.analysisName, system, user)
}

func (g *ChatGateway) Response(ctx context.Context, system, user string) (*Result, error) {
	return g.generate(ctx, g.response, g.responseName, system, user)
}

func (g *ChatGateway) generate(ctx context.Context, cm *gemini.ChatModel, name, system, user string) (*Result, error) {
	messages := []*schema.Message{
		schema.SystemMessage(system),
		schema.UserMessage(user),
	}

	out, err := cm.Generate(ctx, messages)
	if err != nil {
		logx.Error().Err(err).Str("model", name).Msg("generation failed")
		return nil, errx.WrapGateway(err)
	}
	if out == nil || strings.TrimSpace(out.Content) == "" {
		return nil, errx.WrapGateway(fmt.Errorf("model %s returned empty content", name))
	}

	res := &Result{Content: out.Content, Model: name}
	if out.ResponseMeta != nil {
		res.Usage = out.ResponseMeta.Usage
	}
	return res, nil
}
