// Package local provides an in-process ai.Embedder backed by an ONNX
// sentence transformer model run through hugot's Go backend.
package local

import (
	"context"
	"fmt"
	"sync"

	"github.com/Shreekar11/insura-ai-sub005/helper"
	"github.com/knights-analytics/hugot"
	"github.com/knights-analytics/hugot/pipelines"
)

// DefaultModelName is the sentence transformer used when none is given.
// It produces 384-dimensional embeddings.
const DefaultModelName = "sentence-transformers/all-MiniLM-L6-v2"

// Embedder runs a feature extraction pipeline locally. The underlying
// session is not safe for concurrent pipeline runs, so calls serialize on
// a mutex.
type Embedder struct {
	session  *hugot.Session
	pipeline *pipelines.FeatureExtractionPipeline
	mu       sync.Mutex
}

// NewEmbedder downloads the named model if needed and initializes a hugot
// session for it. Close must be called to release the session.
func NewEmbedder(modelName string) (*Embedder, error) {
	if modelName == "" {
		modelName = DefaultModelName
	}
	modelPath, err := helper.PrepareModel(modelName, "onnx/model.onnx")
	if err != nil {
		return nil, helper.NewError("NewEmbedder.PrepareModel", err)
	}

	session, err := hugot.NewGoSession()
	if err != nil {
		return nil, helper.NewError("NewEmbedder.NewGoSession", err)
	}

	config := hugot.FeatureExtractionConfig{
		ModelPath: modelPath,
		Name:      "query-embedder",
	}
	pipeline, err := hugot.NewPipeline(session, config)
	if err != nil {
		if destroyErr := session.Destroy(); destroyErr != nil {
			return nil, helper.NewError("NewEmbedder.NewPipeline", fmt.Errorf("%w (cleanup error: %v)", err, destroyErr))
		}
		return nil, helper.NewError("NewEmbedder.NewPipeline", err)
	}

	return &Embedder{session: session, pipeline: pipeline}, nil
}

// EmbedText generates an embedding for a single text.
func (e *Embedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	embeddings, err := e.EmbedTexts(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return embeddings[0], nil
}

// EmbedTexts generates embeddings for a batch of texts in input order.
func (e *Embedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, helper.NewError("EmbedTexts", err)
	}

	e.mu.Lock()
	result, err := e.pipeline.RunPipeline(texts)
	e.mu.Unlock()
	if err != nil {
		return nil, helper.NewError("EmbedTexts.RunPipeline", err)
	}
	if len(result.Embeddings) != len(texts) {
		return nil, helper.NewError("EmbedTexts", fmt.Errorf("expected %d embeddings, got %d", len(texts), len(result.Embeddings)))
	}
	return result.Embeddings, nil
}

// Close releases the hugot session.
func (e *Embedder) Close() error {
	if e.session == nil {
		return nil
	}
	if err := e.session.Destroy(); err != nil {
		return helper.NewError("Close.Destroy", err)
	}
	e.session = nil
	return nil
}
