package ai

import (
	"context"

	"github.com/Shreekar11/insura-ai-sub005/model"
)

// Embedder generates vector embeddings from text for similarity search.
// Implementations must be safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates embeddings for multiple texts in a batch. The
	// returned slice is in input order.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// GenerationRequest carries everything a generator needs to produce an
// answer: the user query, the assembled document context and the sampling
// temperature chosen for the query intent.
type GenerationRequest struct {
	Query       string       `json:"query"`
	Intent      model.Intent `json:"intent"`
	Context     string       `json:"context"`
	SourceIDs   []string     `json:"source_ids"`
	Temperature float64      `json:"temperature"`
}

// GenerationResult is the generator's answer text plus the subset of
// context sources it actually cited.
type GenerationResult struct {
	Text           string   `json:"text"`
	CitedSourceIDs []string `json:"cited_source_ids"`
}

// Generator produces an answer from an assembled context. Implementations
// wrap an external language model service and must be safe for concurrent
// use.
type Generator interface {
	Generate(ctx context.Context, request GenerationRequest) (GenerationResult, error)
}
