package model

import (
	"context"
	"time"
)

// MemoryContext is the per-turn summary of relevant prior conversation,
// rebuilt fresh from a memory search on every turn. Only the raw turns that
// back it are ever persisted.
type MemoryContext struct {
	UserPreferences        string
	PreviousClarifications string
	AttemptedDocs          []string
	ConversationContext    string
}

// Empty reports whether no bucket was populated.
func (m MemoryContext) Empty() bool {
	return m.UserPreferences == "" &&
		m.PreviousClarifications == "" &&
		len(m.AttemptedDocs) == 0 &&
		m.ConversationContext == ""
}

// MemoryRecord is one stored memory with its metadata.
type MemoryRecord struct {
	Text      string         `json:"text"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	Embedding []float32      `json:"embedding,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// TurnMessage is one side of a conversation turn handed to the store.
type TurnMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// TurnMetadata is attached to every appended turn pair.
type TurnMetadata struct {
	Intent    string    `json:"intent"`
	Sentiment Sentiment `json:"sentiment"`
	Sources   []string  `json:"sources"`
	Attempts  int       `json:"attempts"`
}

// SearchOptions scope and bound a memory search.
type SearchOptions struct {
	ScopeID string
	Limit   int
}

// AddOptions scope an append and carry its metadata.
type AddOptions struct {
	ScopeID  string
	Metadata TurnMetadata
}

// MemoryRepository is the external per-session associative store. Search is
// semantic (search-by-text); Add appends a turn pair. Both may fail and both
// failures are non-fatal to the pipeline.
type MemoryRepository interface {
	Search(ctx context.Context, query string, opts SearchOptions) ([]MemoryRecord, error)
	Add(ctx context.Context, turns []TurnMessage, opts AddOptions) error

	// Cleanup removes expired memories and reports counts. Expiry itself is
	// owned by the store's retention policy; implementations may report zeros.
	Cleanup(ctx context.Context) (deleted int, errs int, err error)
}
