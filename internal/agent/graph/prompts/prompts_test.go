package prompts

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/malcolmcuady/portfolio-server/internal/agent/model"
)

var persona = model.PersonaConfig{Name: "Malcolm", ShortName: "Malcolm"}

func TestRenderClassifierSystem(t *testing.T) {
	got, err := RenderClassifierSystem(context.Background(), persona)
	require.NoError(t, err)
	assert.Contains(t, got, "Malcolm")
	assert.NotContains(t, got, "{persona}", "all tokens must be substituted")
	assert.Contains(t, got, "knowledge_query")
	assert.Contains(t, got, "out_of_scope")
}

func TestRenderRetrieverSystem(t *testing.T) {
	got, err := RenderRetrieverSystem(context.Background(), persona,
		`{"profile":{"name":"Malcolm"}}`,
		[]string{"profile", "skills"},
		"\n\nMemory Context:\nPreviously tried sources: projects",
	)
	require.NoError(t, err)
	assert.Contains(t, got, `{"profile":{"name":"Malcolm"}}`)
	assert.Contains(t, got, "profile, skills")
	assert.Contains(t, got, "Previously tried sources: projects")
	assert.NotContains(t, got, "{corpus}")
	assert.NotContains(t, got, "{sections}")
	assert.NotContains(t, got, "{memory_context}")
}

func TestRenderDrafterSystemCarriesToneGuidance(t *testing.T) {
	got, err := RenderDrafterSystem(context.Background(), persona,
		"Go and TypeScript experience", []string{"skills"}, model.SentimentNegative, "")
	require.NoError(t, err)
	assert.Contains(t, got, "Go and TypeScript experience")
	assert.Contains(t, got, DraftToneGuidance(model.SentimentNegative))
	assert.NotContains(t, got, "{tone_guidance}")
}

func TestRenderValidatorSystem(t *testing.T) {
	got, err := RenderValidatorSystem(context.Background(), "retrieved facts", []string{"work", "skills"})
	require.NoError(t, err)
	assert.Contains(t, got, "retrieved facts")
	assert.Contains(t, got, "work, skills")
}

func TestRenderResponderSystem(t *testing.T) {
	got, err := RenderResponderSystem(context.Background(), persona, model.SentimentPositive, "")
	require.NoError(t, err)
	assert.Contains(t, got, "Malcolm")
	assert.Contains(t, got, ConversationToneGuidance(model.SentimentPositive))
}

func TestRenderRewriterSystem(t *testing.T) {
	got, err := RenderRewriterSystem(context.Background())
	require.NoError(t, err)
	assert.Contains(t, got, "rewrittenQuery")
}

func TestToneGuidanceVariesBySentiment(t *testing.T) {
	assert.NotEqual(t, DraftToneGuidance(model.SentimentPositive), DraftToneGuidance(model.SentimentNegative))
	assert.NotEqual(t, ConversationToneGuidance(model.SentimentNegative), ConversationToneGuidance(model.SentimentNeutral))
}
