package nodes

import (
	"context"

	"github.com/cloudwego/eino/compose"

	"github.com/malcolmcuady/portfolio-server/internal/agent/gateway"
	"github.com/malcolmcuady/portfolio-server/internal/agent/model"
	logx "github.com/malcolmcuady/portfolio-server/pkg/logger"
)

// Node names used when wiring the graph.
const (
	NodeClassifier       = "intent_classifier"
	NodeMemory           = "memory_context"
	NodeRetriever        = "knowledge_retriever"
	NodeDrafter          = "answer_drafter"
	NodeValidator        = "answer_validator"
	NodeGeneralResponder = "general_responder"
	NodeScopeRedirect    = "scope_redirect"
	NodeContactRedirect  = "contact_redirect"
	NodeFinalizer        = "finalizer"
)

const DefaultMaxAttempts = 3

// normalizeMaxAttempts returns a sane default when the provided value is invalid.
func normalizeMaxAttempts(n int) int {
	if n <= 0 {
		return DefaultMaxAttempts
	}
	return n
}

// emitStatus pushes one progress event through the turn's status callback.
// Emission is awaited, but a failing callback only logs: progress events are
// one-way and never abort the turn.
func emitStatus(ctx context.Context, status, detail string) {
	var fn model.StatusFunc
	_ = compose.ProcessState(ctx, func(_ context.Context, s *model.AppState) error {
		fn = s.OnStatus
		return nil
	})
	if fn == nil {
		return
	}
	if err := fn(ctx, status, detail); err != nil {
		logx.Warn().Err(err).Str("status", status).Msg("status emission failed")
	}
}

// recordUsage converts a generation's token usage into USD and accumulates it
// on the turn state.
func recordUsage(ctx context.Context, node string, res *gateway.Result) {
	if !model.CostEnabled() || res == nil || res.Usage == nil {
		return
	}
	pricing := model.ResolvePricing(res.Model)
	inC, outC, totalC := model.ComputeCost(res.Usage, pricing)

	var sessionID string
	var runningTotal float64
	_ = compose.ProcessState(ctx, func(_ context.Context, s *model.AppState) error {
		s.TotalCostUSD += totalC
		sessionID = s.SessionID
		runningTotal = s.TotalCostUSD
		return nil
	})

	logx.Debug().
		Str("session_id", sessionID).
		Str("node", node).
		Str("model", res.Model).
		Int("prompt_tokens", res.Usage.PromptTokens).
		Int("completion_tokens", res.Usage.CompletionTokens).
		Int("total_tokens", res.Usage.TotalTokens).
		Float64("input_cost_usd", inC).
		Float64("output_cost_usd", outC).
		Float64("total_cost_usd", runningTotal).
		Msg("LLM usage")
}
