package repo

import (
	"context"
	"fmt"
	"math"

	"google.golang.org/genai"

	errx "github.com/malcolmcuady/portfolio-server/internal/core/error"
	logx "github.com/malcolmcuady/portfolio-server/pkg/logger"
)

// Embedder turns text into a vector for semantic memory search.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// GeminiEmbedder embeds text with the Gemini embedding API.
type GeminiEmbedder struct {
	client *genai.Client
	model  string
}

var _ Embedder = (*GeminiEmbedder)(nil)

// NewGeminiEmbedder creates its own genai client; the embedder lives in the
// storage layer and is wired independently of the chat gateway.
func NewGeminiEmbedder(ctx context.Context, apiKey, baseURL, model string) (*GeminiEmbedder, error) {
	clientCfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if baseURL != "" {
		clientCfg.HTTPOptions.BaseURL = baseURL
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		logx.Error().Err(err).Msg("Error creating embedding client")
		return nil, fmt.Errorf("error creating embedding client: %w", err)
	}

	return &GeminiEmbedder{client: client, model: model}, nil
}

func (e *GeminiEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	resp, err := e.client.Models.EmbedContent(ctx, e.model, genai.Text(text), nil)
	if err != nil {
		return nil, errx.WrapGateway(err)
	}
	if resp == nil || len(resp.Embeddings) == 0 || len(resp.Embeddings[0].Values) == 0 {
		return nil, errx.WrapGateway(fmt.Errorf("embedding response for model %s is empty", e.model))
	}
	return resp.Embeddings[0].Values, nil
}

// cosineSimilarity returns the cosine of the angle between two vectors, or 0
// when either vector is degenerate or the lengths differ.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
