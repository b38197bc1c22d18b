package graph

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/compose"

	"github.com/malcolmcuady/portfolio-server/internal/agent/gateway"
	"github.com/malcolmcuady/portfolio-server/internal/agent/graph/memory"
	"github.com/malcolmcuady/portfolio-server/internal/agent/graph/nodes"
	"github.com/malcolmcuady/portfolio-server/internal/agent/graph/observers"
	"github.com/malcolmcuady/portfolio-server/internal/agent/model"
	"github.com/malcolmcuady/portfolio-server/internal/corpus"
	logx "github.com/malcolmcuady/portfolio-server/pkg/logger"
)

// Runner is a thin wrapper to execute the compiled graph with the public QueryInput.
// Invoke never fails: every internal error collapses to the fixed fallback
// answer so callers always have something to show.
type Runner interface {
	Invoke(ctx context.Context, in model.QueryInput) string
}

// Config holds everything needed to compose the full answer pipeline end-to-end.
// This is a convenience layer over GraphConfig that also constructs the
// gateway and the memory manager.
type Config struct {
	APIKey  string
	BaseURL string

	AnalysisModel model.AnalysisModelConfig
	ResponseModel model.ResponseModelConfig
	Persona       model.PersonaConfig
	Pipeline      model.PipelineConfig
	Memory        model.MemoryConfig

	MemoryRepo model.MemoryRepository
	Corpus     *corpus.Corpus
}

// GraphConfig holds all configuration needed to build the graph.
type GraphConfig struct {
	Generator   gateway.Generator
	Memory      *memory.Manager
	Persona     model.PersonaConfig
	Corpus      *corpus.Corpus
	MaxAttempts int
}

// GraphBuilder handles the construction of the answer pipeline graph.
type GraphBuilder struct {
	config *GraphConfig
	graph  *compose.Graph[model.QueryInput, string]
}

type pipelineRunner struct {
	runnable compose.Runnable[model.QueryInput, string]
}

func (r *pipelineRunner) Invoke(ctx context.Context, in model.QueryInput) string {
	out, err := r.runnable.Invoke(ctx, in, compose.WithCallbacks(observers.NewAllCallbacks()))
	if err != nil {
		logx.Error().Err(err).Str("session_id", in.SessionID).Msg("pipeline run failed; returning fallback answer")
		return model.FallbackAnswer
	}
	if out == "" {
		logx.Warn().Str("session_id", in.SessionID).Msg("pipeline produced empty answer; returning fallback answer")
		return model.FallbackAnswer
	}
	return out
}

// BuildPipeline composes the gateway, the memory manager, builds the graph,
// and returns a Runner.
func BuildPipeline(ctx context.Context, cfg Config) (Runner, error) {
	if cfg.MemoryRepo == nil {
		return nil, fmt.Errorf("memory repo is nil")
	}
	if cfg.Corpus == nil {
		return nil, fmt.Errorf("corpus is nil")
	}

	gen, err := gateway.New(ctx, gateway.Config{
		APIKey:   cfg.APIKey,
		BaseURL:  cfg.BaseURL,
		Analysis: &cfg.AnalysisModel,
		Response: &cfg.ResponseModel,
	})
	if err != nil {
		return nil, err
	}

	mm := memory.NewManager(cfg.MemoryRepo, gen, cfg.Memory)

	runnable, err := BuildGraph(ctx, &GraphConfig{
		Generator:   gen,
		Memory:      mm,
		Persona:     cfg.Persona,
		Corpus:      cfg.Corpus,
		MaxAttempts: cfg.Pipeline.MaxAttempts,
	})
	if err != nil {
		return nil, err
	}

	logx.Debug().Msg("Answer pipeline built successfully")
	return &pipelineRunner{runnable: runnable}, nil
}

// BuildGraph constructs and returns the compiled answer pipeline graph.
func BuildGraph(ctx context.Context, config *GraphConfig) (compose.Runnable[model.QueryInput, string], error) {
	if config == nil {
		return nil, fmt.Errorf("graph config is nil")
	}
	if config.Generator == nil {
		return nil, fmt.Errorf("generator is nil")
	}
	if config.Memory == nil {
		return nil, fmt.Errorf("memory manager is nil")
	}
	if config.Corpus == nil {
		return nil, fmt.Errorf("corpus is nil")
	}

	builder := &GraphBuilder{
		config: config,
		graph: compose.NewGraph[model.QueryInput, string](
			compose.WithGenLocalState(func(ctx context.Context) *model.AppState {
				return &model.AppState{}
			}),
		),
	}

	builder.addNodes()
	builder.addEdges()

	if err := builder.addBranches(); err != nil {
		return nil, err
	}

	return builder.compile(ctx)
}

// addNodes adds all processing nodes to the graph
func (b *GraphBuilder) addNodes() {
	b.graph.AddLambdaNode(nodes.NodeClassifier,
		nodes.NewClassifierNode(b.config.Generator, b.config.Persona),
		compose.WithStatePreHandler(nodes.NewClassifierPreHandler()),
	)

	b.graph.AddLambdaNode(nodes.NodeMemory,
		nodes.NewMemoryNode(b.config.Memory),
	)

	b.graph.AddLambdaNode(nodes.NodeRetriever,
		nodes.NewRetrieverNode(b.config.Generator, b.config.Persona, b.config.Corpus),
		compose.WithStatePreHandler(nodes.NewRetrieverPreHandler()),
	)

	b.graph.AddLambdaNode(nodes.NodeDrafter,
		nodes.NewDrafterNode(b.config.Generator, b.config.Persona),
	)

	b.graph.AddLambdaNode(nodes.NodeValidator,
		nodes.NewValidatorNode(b.config.Generator),
	)

	b.graph.AddLambdaNode(nodes.NodeGeneralResponder,
		nodes.NewGeneralResponderNode(b.config.Generator, b.config.Memory, b.config.Persona),
	)

	b.graph.AddLambdaNode(nodes.NodeScopeRedirect,
		nodes.NewScopeRedirectNode(),
	)

	b.graph.AddLambdaNode(nodes.NodeContactRedirect,
		nodes.NewContactRedirectNode(),
	)

	b.graph.AddLambdaNode(nodes.NodeFinalizer,
		nodes.NewFinalizerNode(b.config.Memory),
	)
}

// addEdges creates the main flow connections between nodes
func (b *GraphBuilder) addEdges() {
	edges := [][2]string{
		{compose.START, nodes.NodeClassifier},
		{nodes.NodeRetriever, nodes.NodeDrafter},
		{nodes.NodeDrafter, nodes.NodeValidator},
		{nodes.NodeGeneralResponder, compose.END},
		{nodes.NodeScopeRedirect, compose.END},
		{nodes.NodeContactRedirect, compose.END},
		{nodes.NodeFinalizer, compose.END},
	}

	for _, edge := range edges {
		b.graph.AddEdge(edge[0], edge[1])
	}
}

// addBranches creates conditional routing branches
func (b *GraphBuilder) addBranches() error {
	routeBranch := compose.NewGraphBranch(
		nodes.NewRouteCondition(),
		map[string]bool{
			nodes.NodeMemory:          true,
			nodes.NodeScopeRedirect:   true,
			nodes.NodeContactRedirect: true,
		},
	)
	if err := b.graph.AddBranch(nodes.NodeClassifier, routeBranch); err != nil {
		logx.Error().Err(err).Msg("Error adding workflow route branch")
		return fmt.Errorf("error adding workflow route branch: %w", err)
	}

	memoryBranch := compose.NewGraphBranch(
		nodes.NewMemoryRouteCondition(),
		map[string]bool{
			nodes.NodeRetriever:        true,
			nodes.NodeGeneralResponder: true,
		},
	)
	if err := b.graph.AddBranch(nodes.NodeMemory, memoryBranch); err != nil {
		logx.Error().Err(err).Msg("Error adding memory route branch")
		return fmt.Errorf("error adding memory route branch: %w", err)
	}

	acceptBranch := compose.NewGraphBranch(
		nodes.NewAcceptCondition(b.config.MaxAttempts),
		map[string]bool{
			nodes.NodeFinalizer: true,
			nodes.NodeRetriever: true,
		},
	)
	if err := b.graph.AddBranch(nodes.NodeValidator, acceptBranch); err != nil {
		logx.Error().Err(err).Msg("Error adding accept branch")
		return fmt.Errorf("error adding accept branch: %w", err)
	}

	return nil
}

// compile finalizes and compiles the graph
func (b *GraphBuilder) compile(ctx context.Context) (compose.Runnable[model.QueryInput, string], error) {
	// Limit total run steps to bound the validate-retrieve loop
	maxAttempts := b.config.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = nodes.DefaultMaxAttempts
	}
	maxSteps := 10 + maxAttempts*4
	if maxSteps < 20 {
		maxSteps = 20
	}

	runnable, err := b.graph.Compile(ctx, compose.WithMaxRunSteps(maxSteps))
	if err != nil {
		logx.Error().Err(err).Msg("Error compiling graph")
		return nil, fmt.Errorf("error compiling graph: %w", err)
	}

	logx.Debug().Msg("Graph compiled successfully")
	return runnable, nil
}
