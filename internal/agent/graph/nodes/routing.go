package nodes

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/compose"

	"github.com/malcolmcuady/portfolio-server/internal/agent/gateway"
	"github.com/malcolmcuady/portfolio-server/internal/agent/graph/memory"
	"github.com/malcolmcuady/portfolio-server/internal/agent/graph/parsers"
	"github.com/malcolmcuady/portfolio-server/internal/agent/graph/prompts"
	"github.com/malcolmcuady/portfolio-server/internal/agent/model"
	logx "github.com/malcolmcuady/portfolio-server/pkg/logger"
)

// NewRouteCondition branches a classified turn to its workflow handler.
// Redirect routes terminate immediately; the knowledge and general routes
// first pass through the memory node, then split again.
func NewRouteCondition() func(context.Context, *model.Turn) (string, error) {
	return func(ctx context.Context, t *model.Turn) (string, error) {
		switch t.Intent.WorkflowType {
		case model.WorkflowKnowledgeQuery, model.WorkflowGeneral:
			return NodeMemory, nil
		case model.WorkflowContact:
			return NodeContactRedirect, nil
		case model.WorkflowOutOfScope:
			return NodeScopeRedirect, nil
		default:
			// the parser rejects unknown routes; keep a safe landing anyway
			logx.Warn().Str("workflow", string(t.Intent.WorkflowType)).Msg("unknown workflow route")
			return NodeScopeRedirect, nil
		}
	}
}

// NewMemoryRouteCondition splits the memory-enriched turn between the
// knowledge loop and the general responder.
func NewMemoryRouteCondition() func(context.Context, *model.Turn) (string, error) {
	return func(ctx context.Context, t *model.Turn) (string, error) {
		if t.Intent.WorkflowType == model.WorkflowGeneral {
			return NodeGeneralResponder, nil
		}
		return NodeRetriever, nil
	}
}

// NewScopeRedirectNode answers out-of-scope turns with the fixed redirect.
// No memory write happens on this path.
func NewScopeRedirectNode() *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, t *model.Turn) (string, error) {
		emitStatus(ctx, model.StatusComplete, "Request out of scope")
		return model.ScopeRedirectAnswer, nil
	})
}

// NewContactRedirectNode answers contact turns with the fixed redirect. No
// memory write and no further model call happen on this path.
func NewContactRedirectNode() *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, t *model.Turn) (string, error) {
		emitStatus(ctx, model.StatusComplete, "Contact information")
		return model.ContactRedirectAnswer, nil
	})
}

// NewGeneralResponderNode handles small talk and conversational follow-ups,
// surfacing remembered facts directly. A responder failure is fatal for the
// turn; the turn is persisted only on success.
func NewGeneralResponderNode(gen gateway.Generator, mm *memory.Manager, persona model.PersonaConfig) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, t *model.Turn) (string, error) {
		emitStatus(ctx, model.StatusDrafting, "Responding...")

		system, err := prompts.RenderResponderSystem(ctx, persona, t.Intent.Sentiment, t.MemoryPrompt)
		if err != nil {
			return "", fmt.Errorf("render responder prompt: %w", err)
		}

		res, err := gen.Response(ctx, system, t.Message)
		if err != nil {
			return "", fmt.Errorf("general response: %w", err)
		}
		recordUsage(ctx, NodeGeneralResponder, res)

		reply, err := parsers.ParseGeneralReply(res.Content)
		if err != nil {
			return "", fmt.Errorf("parse general reply: %w", err)
		}

		mm.Add(ctx, t.SessionID, t.Message, reply.Answer, model.TurnMetadata{
			Intent:    t.Intent.Intent,
			Sentiment: t.Intent.Sentiment,
			Sources:   []string{},
			Attempts:  1,
		})

		emitStatus(ctx, model.StatusComplete, "Response ready!")
		return reply.Answer, nil
	})
}

// NewAcceptCondition decides whether a validated draft ends the loop. The
// accept condition is `isValid || !needsRetrieval`: an imperfect answer is
// still usable as long as the validator does not judge retrieval itself
// inadequate. Exhausting the attempt limit fails the turn.
func NewAcceptCondition(maxAttempts int) func(context.Context, *model.Turn) (string, error) {
	maxAttempts = normalizeMaxAttempts(maxAttempts)
	return func(ctx context.Context, t *model.Turn) (string, error) {
		if t.Validation.IsValid || !t.Validation.NeedsRetrieval {
			return NodeFinalizer, nil
		}

		if t.Attempts >= maxAttempts {
			logx.Warn().
				Str("session_id", t.SessionID).
				Int("attempts", t.Attempts).
				Msg("retrieval loop exhausted without a validated answer")
			return "", fmt.Errorf("no validated answer after %d attempts", t.Attempts)
		}

		logx.Debug().Int("attempt", t.Attempts).Msg("validator requested fresh retrieval")
		emitStatus(ctx, model.StatusRetrying, "Refining answer...")
		return NodeRetriever, nil
	}
}
