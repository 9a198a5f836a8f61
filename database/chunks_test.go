package database

import (
	"context"
	"testing"
	"time"

	"github.com/Shreekar11/insura-ai-sub005/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func similarityTestConfig() *model.RetrievalConfig {
	config := model.DefaultRetrievalConfig()
	config.TopK = 10
	config.SimilarityThreshold = 0.1
	config.SemanticWeight = 0.7
	config.KeywordWeight = 0.3
	return &config
}

func TestInsertAndSelectChunk(t *testing.T) {
	db := initDB(t)
	defer db.Close()
	handlers := initHandlers(t, db)
	ctx := context.Background()

	workflow := insertTestWorkflow(t, handlers, "chunk-roundtrip")

	t.Run("Insert chunk", func(t *testing.T) {
		updatedAt := time.Now().Add(-24 * time.Hour).UTC().Truncate(time.Second)
		chunk := &model.Chunk{
			WorkflowID: workflow.ID,
			Content:    "Windstorm deductible of 5 percent applies to coastal locations.",
			Section:    model.SectionConditions,
			EntityType: "deductible",
			Embedding:  []float32{0.5, 0.5, 0.5, 0.5},
			Metadata:   model.Metadata{"page": "12"},
			UpdatedAt:  &updatedAt,
		}

		err := handlers.chunks.InsertChunk(ctx, chunk)
		require.NoError(t, err)
		assert.NotEqual(t, "", chunk.ID.String())
		assert.Equal(t, workflow.ID, chunk.WorkflowID)
		assert.Equal(t, model.SectionConditions, chunk.Section)
		assert.Equal(t, "deductible", chunk.EntityType)
		require.NotNil(t, chunk.UpdatedAt)
		assert.Equal(t, updatedAt.Unix(), chunk.UpdatedAt.Unix())
		assert.False(t, chunk.CreatedAt.IsZero())
	})

	t.Run("Insert chunk without optional fields", func(t *testing.T) {
		chunk := &model.Chunk{
			WorkflowID: workflow.ID,
			Content:    "Definitions of named insured and additional insured.",
			Section:    model.SectionDefinitions,
			Embedding:  []float32{0.1, 0.1, 0.1, 0.1},
		}

		err := handlers.chunks.InsertChunk(ctx, chunk)
		require.NoError(t, err)
		assert.Equal(t, "", chunk.EntityType)
		assert.Nil(t, chunk.UpdatedAt)
	})

	t.Run("Select chunk", func(t *testing.T) {
		chunk := &model.Chunk{
			WorkflowID: workflow.ID,
			Content:    "Endorsement END-04 amends the flood exclusion.",
			Section:    model.SectionEndorsements,
			Embedding:  []float32{0.2, 0.4, 0.6, 0.8},
		}
		err := handlers.chunks.InsertChunk(ctx, chunk)
		require.NoError(t, err)

		selected, err := handlers.chunks.SelectChunk(ctx, workflow.ID, chunk.ID)
		require.NoError(t, err)
		assert.Equal(t, chunk.ID, selected.ID)
		assert.Equal(t, chunk.Content, selected.Content)
		assert.Equal(t, model.SectionEndorsements, selected.Section)
	})
}

func TestSelectChunksByWorkflow(t *testing.T) {
	db := initDB(t)
	defer db.Close()
	handlers := initHandlers(t, db)
	ctx := context.Background()

	workflow := insertTestWorkflow(t, handlers, "chunk-list")
	other := insertTestWorkflow(t, handlers, "chunk-list-other")

	for _, content := range []string{"first chunk", "second chunk", "third chunk"} {
		err := handlers.chunks.InsertChunk(ctx, &model.Chunk{
			WorkflowID: workflow.ID,
			Content:    content,
			Section:    model.SectionOther,
			Embedding:  []float32{0.1, 0.2, 0.3, 0.4},
		})
		require.NoError(t, err)
	}
	err := handlers.chunks.InsertChunk(ctx, &model.Chunk{
		WorkflowID: other.ID,
		Content:    "chunk in another workflow",
		Section:    model.SectionOther,
		Embedding:  []float32{0.1, 0.2, 0.3, 0.4},
	})
	require.NoError(t, err)

	chunks, err := handlers.chunks.SelectChunksByWorkflow(ctx, workflow.ID)
	require.NoError(t, err)
	require.Len(t, chunks, 3)
	assert.Equal(t, "first chunk", chunks[0].Content)
	assert.Equal(t, "third chunk", chunks[2].Content)
}

func TestSelectChunksBySimilarity(t *testing.T) {
	db := initDB(t)
	defer db.Close()
	handlers := initHandlers(t, db)
	ctx := context.Background()

	workflow := insertTestWorkflow(t, handlers, "chunk-similarity")
	config := similarityTestConfig()

	matching := &model.Chunk{
		WorkflowID: workflow.ID,
		Content:    "Hurricane deductible applies to windstorm losses at coastal locations.",
		Section:    model.SectionConditions,
		EntityType: "deductible",
		Embedding:  []float32{1, 0, 0, 0},
	}
	orthogonal := &model.Chunk{
		WorkflowID: workflow.ID,
		Content:    "Premium payment schedule for the annual policy term.",
		Section:    model.SectionDeclarations,
		Embedding:  []float32{0, 1, 0, 0},
	}
	require.NoError(t, handlers.chunks.InsertChunk(ctx, matching))
	require.NoError(t, handlers.chunks.InsertChunk(ctx, orthogonal))

	t.Run("Ranks closest embedding first", func(t *testing.T) {
		candidates, err := handlers.chunks.SelectChunksBySimilarity(ctx, workflow.ID, []float32{1, 0, 0, 0}, "hurricane deductible", config)
		require.NoError(t, err)
		require.NotEmpty(t, candidates)
		assert.Equal(t, matching.ID, candidates[0].ID)
		assert.Equal(t, "deductible", candidates[0].EntityType)
		assert.Greater(t, candidates[0].Similarity, 0.5)
	})

	t.Run("Threshold filters distant chunks", func(t *testing.T) {
		strict := similarityTestConfig()
		strict.SimilarityThreshold = 0.6
		candidates, err := handlers.chunks.SelectChunksBySimilarity(ctx, workflow.ID, []float32{1, 0, 0, 0}, "", strict)
		require.NoError(t, err)
		require.Len(t, candidates, 1)
		assert.Equal(t, matching.ID, candidates[0].ID)
	})

	t.Run("Keyword match contributes without embedding match", func(t *testing.T) {
		candidates, err := handlers.chunks.SelectChunksBySimilarity(ctx, workflow.ID, []float32{0, 0, 1, 0}, "hurricane deductible coastal", config)
		require.NoError(t, err)
		for _, c := range candidates {
			if c.ID == matching.ID {
				assert.Greater(t, c.Similarity, 0.0)
				return
			}
		}
		t.Fatal("expected keyword match to surface the hurricane chunk")
	})

	t.Run("Scoped to workflow", func(t *testing.T) {
		empty := insertTestWorkflow(t, handlers, "chunk-similarity-empty")
		candidates, err := handlers.chunks.SelectChunksBySimilarity(ctx, empty.ID, []float32{1, 0, 0, 0}, "hurricane", config)
		require.NoError(t, err)
		assert.Empty(t, candidates)
	})

	t.Run("TopK limits results", func(t *testing.T) {
		limited := similarityTestConfig()
		limited.TopK = 1
		candidates, err := handlers.chunks.SelectChunksBySimilarity(ctx, workflow.ID, []float32{1, 0, 0, 0}, "", limited)
		require.NoError(t, err)
		assert.Len(t, candidates, 1)
	})
}

func TestDeleteChunk(t *testing.T) {
	db := initDB(t)
	defer db.Close()
	handlers := initHandlers(t, db)
	ctx := context.Background()

	workflow := insertTestWorkflow(t, handlers, "chunk-delete")

	chunk := &model.Chunk{
		WorkflowID: workflow.ID,
		Content:    "Chunk to delete.",
		Section:    model.SectionOther,
		Embedding:  []float32{0.3, 0.3, 0.3, 0.3},
	}
	require.NoError(t, handlers.chunks.InsertChunk(ctx, chunk))

	err := handlers.chunks.DeleteChunk(ctx, workflow.ID, chunk.ID)
	require.NoError(t, err)

	_, err = handlers.chunks.SelectChunk(ctx, workflow.ID, chunk.ID)
	assert.Error(t, err)
}

func TestChangeIndexType(t *testing.T) {
	db := initDB(t)
	defer db.Close()
	handlers := initHandlers(t, db)
	ctx := context.Background()

	t.Run("Change to ivfflat", func(t *testing.T) {
		err := handlers.chunks.ChangeIndexType(ctx, "ivfflat", map[string]interface{}{"lists": 10})
		require.NoError(t, err)
	})

	t.Run("Change back to hnsw", func(t *testing.T) {
		err := handlers.chunks.ChangeIndexType(ctx, "hnsw", map[string]interface{}{"m": 16, "ef_construction": 64})
		require.NoError(t, err)
	})

	t.Run("Unsupported type", func(t *testing.T) {
		err := handlers.chunks.ChangeIndexType(ctx, "btree", nil)
		assert.Error(t, err)
	})
}
