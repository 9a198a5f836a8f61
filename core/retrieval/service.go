package retrieval

import (
	"context"
	"errors"
	"sort"

	"github.com/Shreekar11/insura-ai-sub005/ai"
	"github.com/Shreekar11/insura-ai-sub005/helper"
	"github.com/Shreekar11/insura-ai-sub005/model"
	"github.com/google/uuid"
)

var errEmbeddingCount = errors.New("embedding count does not match query count")

// VectorStore is the similarity search contract with the embedding store.
// Given a query vector and a workflow scope it returns up to TopK nearest
// chunks with a similarity score, already filtered by the threshold.
type VectorStore interface {
	SelectChunksBySimilarity(ctx context.Context, workflowID uuid.UUID, embedding []float32, queryText string, config *model.RetrievalConfig) ([]*model.VectorCandidate, error)
}

// Service performs multi-query vector retrieval: every expanded query is
// embedded and searched, and the union is deduplicated by chunk identity
// keeping the best similarity per chunk.
type Service struct {
	store    VectorStore
	embedder ai.Embedder
	config   *model.RetrievalConfig
}

// NewService creates a new vector retrieval service.
func NewService(store VectorStore, embedder ai.Embedder, config *model.RetrievalConfig) *Service {
	return &Service{
		store:    store,
		embedder: embedder,
		config:   config,
	}
}

// Retrieve searches the store with every query and returns the merged
// candidates ordered by similarity descending, capped at TopK. An empty
// result is not an error here; the caller decides how to react.
func (s *Service) Retrieve(ctx context.Context, workflowID uuid.UUID, queries []string) ([]*model.VectorCandidate, error) {
	if len(queries) == 0 {
		return nil, nil
	}

	embeddings, err := s.embedder.EmbedTexts(ctx, queries)
	if err != nil {
		return nil, helper.NewError("Retrieve.EmbedTexts", err)
	}
	if len(embeddings) != len(queries) {
		return nil, helper.NewError("Retrieve", errEmbeddingCount)
	}

	best := make(map[uuid.UUID]*model.VectorCandidate)
	for i, embedding := range embeddings {
		storeCtx, cancel := s.storeContext(ctx)
		candidates, err := s.store.SelectChunksBySimilarity(storeCtx, workflowID, embedding, queries[i], s.config)
		cancel()
		if err != nil {
			return nil, helper.NewError("Retrieve.SelectChunksBySimilarity", err)
		}
		for _, candidate := range candidates {
			existing, seen := best[candidate.ID]
			if !seen || candidate.Similarity > existing.Similarity {
				best[candidate.ID] = candidate
			}
		}
	}

	results := make([]*model.VectorCandidate, 0, len(best))
	for _, candidate := range best {
		results = append(results, candidate)
	}
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Similarity != results[j].Similarity {
			return results[i].Similarity > results[j].Similarity
		}
		return results[i].ID.String() < results[j].ID.String()
	})

	if s.config.TopK > 0 && len(results) > s.config.TopK {
		results = results[:s.config.TopK]
	}

	return results, nil
}

func (s *Service) storeContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.config.StoreTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.config.StoreTimeout)
}
