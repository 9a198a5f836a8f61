package mock

import (
	"context"
	"hash/fnv"
)

// MockEmbedder is a test double for ai.Embedder. If a function field is
// set it is called instead of the default deterministic behavior.
type MockEmbedder struct {
	EmbedTextFunc  func(ctx context.Context, text string) ([]float32, error)
	EmbedTextsFunc func(ctx context.Context, texts []string) ([][]float32, error)

	callCount int
}

// NewMockEmbedder creates a mock embedder producing 384-dimensional
// deterministic vectors.
func NewMockEmbedder() *MockEmbedder {
	return &MockEmbedder{}
}

// EmbedText generates a deterministic embedding based on the text hash.
func (m *MockEmbedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	m.callCount++
	if m.EmbedTextFunc != nil {
		return m.EmbedTextFunc(ctx, text)
	}
	return deterministicVector(text, 384), nil
}

// EmbedTexts generates deterministic embeddings for multiple texts.
func (m *MockEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	m.callCount++
	if m.EmbedTextsFunc != nil {
		return m.EmbedTextsFunc(ctx, texts)
	}
	embeddings := make([][]float32, len(texts))
	for i, text := range texts {
		embeddings[i] = deterministicVector(text, 384)
	}
	return embeddings, nil
}

// CallCount returns how many times any embed method was called.
func (m *MockEmbedder) CallCount() int {
	return m.callCount
}

// deterministicVector creates a unit-norm vector seeded by an FNV hash of
// the text, so identical texts always embed identically.
func deterministicVector(text string, dim int) []float32 {
	h := fnv.New32a()
	h.Write([]byte(text))
	seed := h.Sum32()

	vector := make([]float32, dim)
	var sumSquares float32
	for i := 0; i < dim; i++ {
		seed = seed*1664525 + 1013904223
		vector[i] = float32(seed%1000) / 1000.0
		sumSquares += vector[i] * vector[i]
	}
	if sumSquares > 0 {
		norm := 1.0 / float32(sumSquares)
		for i := range vector {
			vector[i] *= norm
		}
	}
	return vector
}
