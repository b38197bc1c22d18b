package model

import "context"

// StatusFunc receives progress events during one turn. Emission is awaited
// before the matching unit of work proceeds, but delivery is best-effort: a
// failing callback is logged and never aborts the turn.
type StatusFunc func(ctx context.Context, status, detail string) error

// QueryInput is the public input of the pipeline graph.
type QueryInput struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`

	OnStatus StatusFunc `json:"-"`
}

// AppState stores per-invocation state for the Eino Graph.
// Concurrency model:
//   - This struct is registered as Graph Local State via compose.WithGenLocalState.
//   - All reads/writes happen only inside Eino state handlers:
//     WithStatePreHandler, WithStatePostHandler, or compose.ProcessState.
//   - Eino serializes access to state within these handlers, so no additional
//     mutex/atomic is required as long as you never touch it outside handlers.
type AppState struct {
	SessionID string
	Message   string
	OnStatus  StatusFunc

	// Attempts counts retrieve-draft-validate iterations for this turn.
	Attempts int

	// Accumulated total LLM cost (USD) across model invocations for this turn.
	TotalCostUSD float64
}

// Turn carries the per-invocation pipeline artifacts between nodes. Each node
// fills in its own field and passes the turn along; nothing in it survives
// past the invocation.
type Turn struct {
	SessionID string
	Message   string

	Intent       IntentResult
	Memory       MemoryContext
	MemoryPrompt string

	Retrieved  RetrievedInfo
	Draft      DraftedAnswer
	Validation ValidatedAnswer
	Attempts   int
}
