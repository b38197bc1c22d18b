package model

// WorkflowType selects which branch of the pipeline handles a turn.
type WorkflowType string

const (
	WorkflowKnowledgeQuery WorkflowType = "knowledge_query"
	WorkflowContact        WorkflowType = "contact"
	WorkflowGeneral        WorkflowType = "general"
	WorkflowOutOfScope     WorkflowType = "out_of_scope"
)

// Valid reports whether the workflow type is one of the four known routes.
func (w WorkflowType) Valid() bool {
	switch w {
	case WorkflowKnowledgeQuery, WorkflowContact, WorkflowGeneral, WorkflowOutOfScope:
		return true
	}
	return false
}

// Sentiment is the three-way sentiment label attached to a classified turn.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// Valid reports whether the sentiment is a known label.
func (s Sentiment) Valid() bool {
	switch s {
	case SentimentPositive, SentimentNeutral, SentimentNegative:
		return true
	}
	return false
}

// IntentResult is the classifier's verdict for one turn. Produced once per
// turn and immutable thereafter.
type IntentResult struct {
	Intent       string       `json:"intent"`
	Sentiment    Sentiment    `json:"sentiment"`
	Confidence   float64      `json:"confidence"`
	WorkflowType WorkflowType `json:"workflowType"`
}

// RetrievedInfo is the extract of the fact corpus relevant to one question.
// Regenerated on every retry attempt.
type RetrievedInfo struct {
	RelevantData string   `json:"relevantData"`
	Sources      []string `json:"sources"`
	Confidence   float64  `json:"confidence"`
}

// DraftedAnswer is the first-person draft produced from retrieved facts.
type DraftedAnswer struct {
	Answer      string   `json:"answer"`
	UsedSources []string `json:"usedSources"`
}

// ValidatedAnswer is the terminal artifact of the retrieve-draft-validate
// loop. NeedsRetrieval is the only signal that triggers another attempt.
type ValidatedAnswer struct {
	IsValid         bool    `json:"isValid"`
	FinalAnswer     string  `json:"finalAnswer"`
	ValidationNotes string  `json:"validationNotes"`
	Confidence      float64 `json:"confidence"`
	NeedsRetrieval  bool    `json:"needsRetrieval"`
}

// RewrittenQuery is the query-rewriter output used for memory search.
type RewrittenQuery struct {
	RewrittenQuery string `json:"rewrittenQuery"`
	Reasoning      string `json:"reasoning"`
}

// GeneralReply is the general-conversation responder output.
type GeneralReply struct {
	Answer string `json:"answer"`
}

// Status tags emitted over the progress stream, in pipeline order.
const (
	StatusAnalyzing  = "analyzing"
	StatusAnalyzed   = "analyzed"
	StatusMemory     = "memory"
	StatusRetrieving = "retrieving"
	StatusRetrieved  = "retrieved"
	StatusDrafting   = "drafting"
	StatusDrafted    = "drafted"
	StatusValidating = "validating"
	StatusRetrying   = "retrying"
	StatusComplete   = "complete"
)

// Fixed user-visible answers. These are returned verbatim; no model output is
// ever mixed into them.
const (
	ScopeRedirectAnswer = "I appreciate your question, but I'm here specifically to share information about " +
		"my professional background, experience, skills, and projects. Is there anything you'd like to know " +
		"about my work or experience?"

	ContactRedirectAnswer = "I'd love to connect! You can reach me through the contact information on my " +
		"portfolio, or feel free to connect with me on LinkedIn or GitHub. What would you like to discuss?"

	FallbackAnswer = "I apologize, but I encountered an error while processing your request. Please try again."
)
