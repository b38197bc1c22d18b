// Package memory builds the per-turn memory context from the external store
// and appends finished turns back to it. Everything here is best-effort:
// memory personalizes a turn but never blocks or fails one.
package memory

import (
	"context"
	"regexp"
	"strings"

	"github.com/malcolmcuady/portfolio-server/internal/agent/gateway"
	"github.com/malcolmcuady/portfolio-server/internal/agent/graph/parsers"
	"github.com/malcolmcuady/portfolio-server/internal/agent/graph/prompts"
	"github.com/malcolmcuady/portfolio-server/internal/agent/model"
	logx "github.com/malcolmcuady/portfolio-server/pkg/logger"
)

type Manager struct {
	repo  model.MemoryRepository
	gen   gateway.Generator
	limit int

	preferenceKeywords    []string
	clarificationKeywords []string
	attemptKeywords       []string
	attemptPattern        *regexp.Regexp
}

func NewManager(repo model.MemoryRepository, gen gateway.Generator, cfg model.MemoryConfig) *Manager {
	attempts := splitKeywords(cfg.AttemptKeywords)
	return &Manager{
		repo:                  repo,
		gen:                   gen,
		limit:                 cfg.SearchLimit,
		preferenceKeywords:    splitKeywords(cfg.PreferenceKeywords),
		clarificationKeywords: splitKeywords(cfg.ClarificationKeywords),
		attemptKeywords:       attempts,
		attemptPattern:        buildAttemptPattern(attempts),
	}
}

func splitKeywords(csv string) []string {
	var out []string
	for _, k := range strings.Split(csv, ",") {
		k = strings.TrimSpace(strings.ToLower(k))
		if k != "" {
			out = append(out, k)
		}
	}
	return out
}

// buildAttemptPattern matches "<keyword> <token>" so the token after an
// attempt keyword can be lifted out as a source name.
func buildAttemptPattern(keywords []string) *regexp.Regexp {
	if len(keywords) == 0 {
		return nil
	}
	quoted := make([]string, len(keywords))
	for i, k := range keywords {
		quoted[i] = regexp.QuoteMeta(k)
	}
	return regexp.MustCompile(`(?i)\b(?:` + strings.Join(quoted, "|") + `)\s+(\w+)`)
}

// Retrieve rewrites the message into a search query, searches the store
// scoped to the session, and classifies each hit into exactly one bucket.
// Any failure along the way collapses to an empty context.
func (m *Manager) Retrieve(ctx context.Context, sessionID, userMessage string) model.MemoryContext {
	searchQuery := m.rewriteQuery(ctx, userMessage)

	records, err := m.repo.Search(ctx, searchQuery, model.SearchOptions{
		ScopeID: sessionID,
		Limit:   m.limit,
	})
	if err != nil {
		logx.Debug().Err(err).Str("session_id", sessionID).Msg("memory search failed; continuing without context")
		return model.MemoryContext{}
	}
	if len(records) == 0 {
		return model.MemoryContext{}
	}

	return m.classify(records)
}

// rewriteQuery asks the analysis model for a search-optimized form of the
// message. Failure degrades to the raw message.
func (m *Manager) rewriteQuery(ctx context.Context, userMessage string) string {
	system, err := prompts.RenderRewriterSystem(ctx)
	if err != nil {
		logx.Debug().Err(err).Msg("rewriter prompt render failed; using raw message")
		return userMessage
	}

	res, err := m.gen.Analysis(ctx, system, userMessage)
	if err != nil {
		logx.Debug().Err(err).Msg("query rewrite failed; using raw message")
		return userMessage
	}

	rewritten, err := parsers.ParseRewrittenQuery(res.Content)
	if err != nil {
		logx.Debug().Err(err).Msg("query rewrite unparseable; using raw message")
		return userMessage
	}

	logx.Debug().
		Str("query", rewritten.RewrittenQuery).
		Str("reasoning", rewritten.Reasoning).
		Msg("memory search query rewritten")
	return rewritten.RewrittenQuery
}

// classify lands each memory text in exactly one bucket, checked in priority
// order: preferences, clarifications, attempted sources, then generic
// conversation context. Buckets are joined with "; ".
func (m *Manager) classify(records []model.MemoryRecord) model.MemoryContext {
	var preferences, clarifications, conversation []string
	var ctxOut model.MemoryContext

	for _, rec := range records {
		text := rec.Text
		if strings.TrimSpace(text) == "" {
			continue
		}
		lower := strings.ToLower(text)

		switch {
		case containsAny(lower, m.preferenceKeywords):
			preferences = append(preferences, text)
		case containsAny(lower, m.clarificationKeywords):
			clarifications = append(clarifications, text)
		case containsAny(lower, m.attemptKeywords):
			if m.attemptPattern != nil {
				if match := m.attemptPattern.FindStringSubmatch(text); match != nil {
					ctxOut.AttemptedDocs = append(ctxOut.AttemptedDocs, match[1])
				}
			}
		default:
			conversation = append(conversation, text)
		}
	}

	ctxOut.UserPreferences = strings.Join(preferences, "; ")
	ctxOut.PreviousClarifications = strings.Join(clarifications, "; ")
	ctxOut.ConversationContext = strings.Join(conversation, "; ")
	return ctxOut
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

// Add appends the finished turn pair to the store. The write happens on a
// goroutine detached from the request context: the caller gets no failure
// channel, and a canceled request does not abandon the write mid-flight.
func (m *Manager) Add(ctx context.Context, sessionID, userMessage, finalAnswer string, meta model.TurnMetadata) {
	turns := []model.TurnMessage{
		{Role: "user", Content: userMessage},
		{Role: "assistant", Content: finalAnswer},
	}
	detached := context.WithoutCancel(ctx)

	go func() {
		if err := m.repo.Add(detached, turns, model.AddOptions{ScopeID: sessionID, Metadata: meta}); err != nil {
			logx.Warn().Err(err).Str("session_id", sessionID).Msg("memory append failed; turn not persisted")
			return
		}
		logx.Debug().Str("session_id", sessionID).Int("attempts", meta.Attempts).Msg("turn persisted to memory")
	}()
}

// FormatForPrompt serializes whichever context fields are populated, one
// labeled line per field, for inclusion in downstream prompts. An empty
// context serializes to the empty string.
func FormatForPrompt(ctxt model.MemoryContext) string {
	var parts []string

	if ctxt.UserPreferences != "" {
		parts = append(parts, "User preferences: "+ctxt.UserPreferences)
	}
	if ctxt.PreviousClarifications != "" {
		parts = append(parts, "Previous clarifications: "+ctxt.PreviousClarifications)
	}
	if len(ctxt.AttemptedDocs) > 0 {
		parts = append(parts, "Previously tried sources: "+strings.Join(ctxt.AttemptedDocs, ", "))
	}
	if ctxt.ConversationContext != "" {
		parts = append(parts, "Conversation context: "+ctxt.ConversationContext)
	}

	if len(parts) == 0 {
		return ""
	}
	return "\n\nMemory Context:\n" + strings.Join(parts, "\n")
}
