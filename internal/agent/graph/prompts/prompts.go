package prompts

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"

	"github.com/malcolmcuady/portfolio-server/internal/agent/model"
)

//go:embed template/classifier_prompt.txt
var classifierSystemPrompt string

//go:embed template/retriever_prompt.txt
var retrieverSystemPrompt string

//go:embed template/drafter_prompt.txt
var drafterSystemPrompt string

//go:embed template/validator_prompt.txt
var validatorSystemPrompt string

//go:embed template/responder_prompt.txt
var responderSystemPrompt string

//go:embed template/rewriter_prompt.txt
var rewriterSystemPrompt string

// renderSystem substitutes known tokens only (the templates contain literal
// JSON braces, so no format engine runs over the content), then wraps the
// result through the Eino prompt component so prompt callbacks fire.
func renderSystem(ctx context.Context, template string, oldnew ...string) (string, error) {
	content := strings.NewReplacer(oldnew...).Replace(template)

	tpl := prompt.FromMessages(
		schema.FString,
		schema.MessagesPlaceholder("system_messages", false),
	)
	msgs, err := tpl.Format(ctx, map[string]any{
		"system_messages": []*schema.Message{schema.SystemMessage(content)},
	})
	if err != nil {
		return "", fmt.Errorf("prompt callbacks: %w", err)
	}
	if len(msgs) == 0 || msgs[0] == nil {
		return "", fmt.Errorf("prompt callbacks: empty result")
	}
	return msgs[0].Content, nil
}

// RenderClassifierSystem renders the intent/sentiment classifier prompt.
func RenderClassifierSystem(ctx context.Context, persona model.PersonaConfig) (string, error) {
	return renderSystem(ctx, classifierSystemPrompt,
		"{persona}", persona.Name,
	)
}

// RenderRetrieverSystem renders the knowledge-retriever prompt around the
// serialized corpus. memoryContext may be empty.
func RenderRetrieverSystem(ctx context.Context, persona model.PersonaConfig, corpusText string, sections []string, memoryContext string) (string, error) {
	return renderSystem(ctx, retrieverSystemPrompt,
		"{persona}", persona.Name,
		"{corpus}", corpusText,
		"{sections}", strings.Join(sections, ", "),
		"{memory_context}", memoryContext,
	)
}

// RenderDrafterSystem renders the answer-drafter prompt.
func RenderDrafterSystem(ctx context.Context, persona model.PersonaConfig, retrievedData string, sources []string, sentiment model.Sentiment, memoryContext string) (string, error) {
	return renderSystem(ctx, drafterSystemPrompt,
		"{persona}", persona.Name,
		"{retrieved_data}", retrievedData,
		"{sources}", strings.Join(sources, ", "),
		"{sentiment}", string(sentiment),
		"{tone_guidance}", DraftToneGuidance(sentiment),
		"{memory_context}", memoryContext,
	)
}

// RenderValidatorSystem renders the answer-validator prompt.
func RenderValidatorSystem(ctx context.Context, retrievedData string, sources []string) (string, error) {
	return renderSystem(ctx, validatorSystemPrompt,
		"{retrieved_data}", retrievedData,
		"{sources}", strings.Join(sources, ", "),
	)
}

// RenderResponderSystem renders the general-conversation prompt.
func RenderResponderSystem(ctx context.Context, persona model.PersonaConfig, sentiment model.Sentiment, memoryContext string) (string, error) {
	return renderSystem(ctx, responderSystemPrompt,
		"{persona}", persona.Name,
		"{sentiment}", string(sentiment),
		"{tone_guidance}", ConversationToneGuidance(sentiment),
		"{memory_context}", memoryContext,
	)
}

// RenderRewriterSystem renders the memory-search query-rewriter prompt.
func RenderRewriterSystem(ctx context.Context) (string, error) {
	return renderSystem(ctx, rewriterSystemPrompt)
}

// DraftToneGuidance maps sentiment to the drafting register.
func DraftToneGuidance(s model.Sentiment) string {
	switch s {
	case model.SentimentPositive:
		return "Match the user's positive energy with enthusiasm and warmth."
	case model.SentimentNegative:
		return "Be empathetic and helpful, addressing any concerns with care."
	default:
		return "Maintain a professional and informative tone."
	}
}

// ConversationToneGuidance maps sentiment to the small-talk register.
func ConversationToneGuidance(s model.Sentiment) string {
	switch s {
	case model.SentimentPositive:
		return "Match the user's positive energy with enthusiasm and warmth."
	case model.SentimentNegative:
		return "Be empathetic and supportive."
	default:
		return "Maintain a friendly and conversational tone."
	}
}
