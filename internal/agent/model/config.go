package model

// ================ Config ================

// AnalysisModelConfig drives the low-temperature model used for
// classification, retrieval, validation and query rewriting.
type AnalysisModelConfig struct {
	Model       string  `envconfig:"ANALYSIS_MODEL" default:"gemini-2.5-flash-lite"`
	MaxTokens   int     `envconfig:"ANALYSIS_MAX_TOKENS" default:"2000"`
	Temperature float32 `envconfig:"ANALYSIS_TEMPERATURE" default:"0.1"`
}

// ResponseModelConfig drives the model used for drafting answers and general
// conversation, where a warmer register is wanted.
type ResponseModelConfig struct {
	Model       string  `envconfig:"RESPONSE_MODEL" default:"gemini-2.5-flash"`
	MaxTokens   int     `envconfig:"RESPONSE_MAX_TOKENS" default:"2000"`
	Temperature float32 `envconfig:"RESPONSE_TEMPERATURE" default:"0.6"`
}

// PersonaConfig names the subject the pipeline answers as.
type PersonaConfig struct {
	Name      string `envconfig:"PERSONA_NAME" default:"Malcolm"`
	ShortName string `envconfig:"PERSONA_SHORT_NAME" default:"Malcolm"`
}

// PipelineConfig bounds the retrieve-draft-validate loop.
type PipelineConfig struct {
	MaxAttempts int `envconfig:"PIPELINE_MAX_ATTEMPTS" default:"3"`
}

// MemoryConfig controls the cross-session memory layer. The bucket keyword
// lists are deliberately configuration, not code: the bucketing heuristic is
// expected to be tuned without a redeploy of logic.
type MemoryConfig struct {
	TTL            string `envconfig:"MEMORY_TTL" default:"720h"`
	SearchLimit    int    `envconfig:"MEMORY_SEARCH_LIMIT" default:"10"`
	EmbeddingModel string `envconfig:"MEMORY_EMBEDDING_MODEL" default:"gemini-embedding-001"`

	PreferenceKeywords    string `envconfig:"MEMORY_PREFERENCE_KEYWORDS" default:"prefers,likes,dislikes"`
	ClarificationKeywords string `envconfig:"MEMORY_CLARIFICATION_KEYWORDS" default:"clarified,specified"`
	AttemptKeywords       string `envconfig:"MEMORY_ATTEMPT_KEYWORDS" default:"tried,attempted"`
}
