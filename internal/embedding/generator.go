// Package embedding converts text into fixed-length vectors. The
// primary path calls the OpenAI embeddings API; any failure falls back
// to a deterministic local hash embedding so callers always receive a
// usable vector.
package embedding

import (
	"context"
	"log"

	"github.com/habitflow/coach-api/internal/domain"
	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
)

// DefaultModel is the fixed embedding model identifier.
const DefaultModel = openai.EmbeddingModelTextEmbedding3Small

// Generator produces embedding vectors for arbitrary text.
// Generate never fails; degraded output is still a valid vector.
type Generator interface {
	Generate(ctx context.Context, text string) domain.Vector
}

type generator struct {
	client *openai.Client
	model  openai.EmbeddingModel
}

// New creates a Generator. With an empty API key the generator runs in
// fallback-only mode.
func New(apiKey, model string) Generator {
	g := &generator{model: DefaultModel}
	if model != "" {
		g.model = openai.EmbeddingModel(model)
	}
	if apiKey == "" {
		log.Println("Warning: OpenAI API key not configured, embeddings use local fallback only")
		return g
	}
	client := openai.NewClient(option.WithAPIKey(apiKey))
	g.client = &client
	return g
}

// Generate returns the model embedding for text, or the deterministic
// fallback on any failure. A single failure switches to fallback
// immediately; there are no retries.
func (g *generator) Generate(ctx context.Context, text string) domain.Vector {
	if g.client == nil {
		return Fallback(text)
	}

	resp, err := g.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Input: openai.EmbeddingNewParamsInputUnion{
			OfString: openai.String(text),
		},
		Model:      g.model,
		Dimensions: openai.Int(domain.EmbeddingDimensions),
	})
	if err != nil {
		log.Printf("embedding request failed, using fallback: %v", err)
		return Fallback(text)
	}
	if len(resp.Data) == 0 || len(resp.Data[0].Embedding) != domain.EmbeddingDimensions {
		log.Printf("embedding response malformed, using fallback")
		return Fallback(text)
	}

	vec := make(domain.Vector, domain.EmbeddingDimensions)
	copy(vec, resp.Data[0].Embedding)
	return vec.Normalized()
}
