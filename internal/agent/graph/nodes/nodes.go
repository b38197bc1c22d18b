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
	"github.com/malcolmcuady/portfolio-server/internal/corpus"
	logx "github.com/malcolmcuady/portfolio-server/pkg/logger"
)

// NewClassifierPreHandler seeds the graph state from the raw input at the
// start of every turn.
func NewClassifierPreHandler() func(context.Context, model.QueryInput, *model.AppState) (model.QueryInput, error) {
	return func(ctx context.Context, in model.QueryInput, s *model.AppState) (model.QueryInput, error) {
		s.SessionID = in.SessionID
		s.Message = in.Message
		s.OnStatus = in.OnStatus
		// Reset per-turn counters
		s.Attempts = 0
		s.TotalCostUSD = 0
		return in, nil
	}
}

// NewClassifierNode classifies the message into a workflow route plus a
// sentiment label. A failure here is fatal for the turn.
func NewClassifierNode(gen gateway.Generator, persona model.PersonaConfig) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, in model.QueryInput) (*model.Turn, error) {
		emitStatus(ctx, model.StatusAnalyzing, "Understanding your question...")

		system, err := prompts.RenderClassifierSystem(ctx, persona)
		if err != nil {
			return nil, fmt.Errorf("render classifier prompt: %w", err)
		}

		res, err := gen.Analysis(ctx, system, in.Message)
		if err != nil {
			return nil, fmt.Errorf("classify intent: %w", err)
		}
		recordUsage(ctx, NodeClassifier, res)

		intent, err := parsers.ParseIntentResult(res.Content)
		if err != nil {
			return nil, fmt.Errorf("parse intent result: %w", err)
		}

		logx.Debug().
			Str("intent", intent.Intent).
			Str("workflow", string(intent.WorkflowType)).
			Str("sentiment", string(intent.Sentiment)).
			Float64("confidence", intent.Confidence).
			Msg("message classified")

		emitStatus(ctx, model.StatusAnalyzed, "Understood: "+intent.Intent)

		return &model.Turn{
			SessionID: in.SessionID,
			Message:   in.Message,
			Intent:    *intent,
		}, nil
	})
}

// NewMemoryNode builds the turn's memory context. Memory is best-effort; the
// manager already collapses every failure to an empty context.
func NewMemoryNode(mm *memory.Manager) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, t *model.Turn) (*model.Turn, error) {
		emitStatus(ctx, model.StatusMemory, "Checking conversation history...")

		t.Memory = mm.Retrieve(ctx, t.SessionID, t.Message)
		t.MemoryPrompt = memory.FormatForPrompt(t.Memory)

		if !t.Memory.Empty() {
			logx.Debug().Str("session_id", t.SessionID).Msg("memory context populated")
		}
		return t, nil
	})
}

// NewRetrieverPreHandler counts loop attempts on the graph state and mirrors
// the count onto the turn.
func NewRetrieverPreHandler() func(context.Context, *model.Turn, *model.AppState) (*model.Turn, error) {
	return func(ctx context.Context, t *model.Turn, s *model.AppState) (*model.Turn, error) {
		s.Attempts++
		t.Attempts = s.Attempts
		logx.Debug().
			Str("session_id", s.SessionID).
			Int("attempt", s.Attempts).
			Msg("knowledge retrieval attempt")
		return t, nil
	}
}

// NewRetrieverNode extracts the corpus subset relevant to the question. The
// corpus serialization is computed once at build time.
func NewRetrieverNode(gen gateway.Generator, persona model.PersonaConfig, c *corpus.Corpus) *compose.Lambda {
	corpusText := c.PromptText()
	sections := corpus.SectionNames()

	return compose.InvokableLambda(func(ctx context.Context, t *model.Turn) (*model.Turn, error) {
		emitStatus(ctx, model.StatusRetrieving, "Searching through my knowledge base...")

		system, err := prompts.RenderRetrieverSystem(ctx, persona, corpusText, sections, t.MemoryPrompt)
		if err != nil {
			return nil, fmt.Errorf("render retriever prompt: %w", err)
		}

		// 2nd+ attempts carry the memory context inline with the query so the
		// model steers away from sources that already failed.
		query := t.Message
		if t.MemoryPrompt != "" {
			query = t.Message + t.MemoryPrompt
		}

		res, err := gen.Analysis(ctx, system, query)
		if err != nil {
			return nil, fmt.Errorf("retrieve knowledge: %w", err)
		}
		recordUsage(ctx, NodeRetriever, res)

		info, err := parsers.ParseRetrievedInfo(res.Content)
		if err != nil {
			return nil, fmt.Errorf("parse retrieved info: %w", err)
		}
		t.Retrieved = *info

		emitStatus(ctx, model.StatusRetrieved, fmt.Sprintf("Found info from %d source(s)", len(info.Sources)))
		return t, nil
	})
}

// NewDrafterNode turns retrieved facts into a first-person answer.
func NewDrafterNode(gen gateway.Generator, persona model.PersonaConfig) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, t *model.Turn) (*model.Turn, error) {
		emitStatus(ctx, model.StatusDrafting, "Writing your answer...")

		system, err := prompts.RenderDrafterSystem(ctx, persona,
			t.Retrieved.RelevantData, t.Retrieved.Sources, t.Intent.Sentiment, t.MemoryPrompt)
		if err != nil {
			return nil, fmt.Errorf("render drafter prompt: %w", err)
		}

		res, err := gen.Response(ctx, system, t.Message)
		if err != nil {
			return nil, fmt.Errorf("draft answer: %w", err)
		}
		recordUsage(ctx, NodeDrafter, res)

		draft, err := parsers.ParseDraftedAnswer(res.Content, t.Retrieved.Sources)
		if err != nil {
			return nil, fmt.Errorf("parse drafted answer: %w", err)
		}
		t.Draft = *draft

		emitStatus(ctx, model.StatusDrafted, "Answer written")
		return t, nil
	})
}

// NewValidatorNode checks the draft against the retrieved facts and produces
// the loop's terminal artifact.
func NewValidatorNode(gen gateway.Generator) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, t *model.Turn) (*model.Turn, error) {
		emitStatus(ctx, model.StatusValidating, "Checking answer quality...")

		system, err := prompts.RenderValidatorSystem(ctx, t.Retrieved.RelevantData, t.Retrieved.Sources)
		if err != nil {
			return nil, fmt.Errorf("render validator prompt: %w", err)
		}

		user := fmt.Sprintf("User question: %q\n\nDrafted answer:\n%s", t.Message, t.Draft.Answer)

		res, err := gen.Analysis(ctx, system, user)
		if err != nil {
			return nil, fmt.Errorf("validate answer: %w", err)
		}
		recordUsage(ctx, NodeValidator, res)

		validation, err := parsers.ParseValidatedAnswer(res.Content)
		if err != nil {
			return nil, fmt.Errorf("parse validated answer: %w", err)
		}
		t.Validation = *validation

		logx.Debug().
			Bool("is_valid", validation.IsValid).
			Bool("needs_retrieval", validation.NeedsRetrieval).
			Float64("confidence", validation.Confidence).
			Str("notes", validation.ValidationNotes).
			Msg("draft validated")
		return t, nil
	})
}

// NewFinalizerNode persists the accepted turn and returns the final answer.
func NewFinalizerNode(mm *memory.Manager) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, t *model.Turn) (string, error) {
		mm.Add(ctx, t.SessionID, t.Message, t.Validation.FinalAnswer, model.TurnMetadata{
			Intent:    t.Intent.Intent,
			Sentiment: t.Intent.Sentiment,
			Sources:   t.Retrieved.Sources,
			Attempts:  t.Attempts,
		})

		emitStatus(ctx, model.StatusComplete, "Answer ready!")
		return t.Validation.FinalAnswer, nil
	})
}
