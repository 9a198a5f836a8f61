package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/Shreekar11/insura-ai-sub005/helper"
	"github.com/Shreekar11/insura-ai-sub005/model"
	loadSql "github.com/Shreekar11/insura-ai-sub005/sql"
	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

// ChunksDBHandlerFunctions defines the interface for Chunks database operations.
type ChunksDBHandlerFunctions interface {
	InsertChunk(ctx context.Context, chunk *model.Chunk) error
	SelectChunk(ctx context.Context, workflowID uuid.UUID, id uuid.UUID) (*model.Chunk, error)
	SelectChunksByWorkflow(ctx context.Context, workflowID uuid.UUID) ([]*model.Chunk, error)
	SelectChunksBySimilarity(ctx context.Context, workflowID uuid.UUID, embedding []float32, queryText string, config *model.RetrievalConfig) ([]*model.VectorCandidate, error)
	DeleteChunk(ctx context.Context, workflowID uuid.UUID, id uuid.UUID) error
}

// ChunksDBHandler handles chunk-related database operations
type ChunksDBHandler struct {
	db *helper.Database
}

// NewChunksDBHandler creates a new chunks database handler.
// It initializes the database connection and loads chunk-related SQL functions.
// If force is true, it will reload the SQL functions even if they already exist.
func NewChunksDBHandler(db *helper.Database, embeddingDim int, force bool) (*ChunksDBHandler, error) {
	if db == nil {
		return nil, helper.NewError("database connection validation", fmt.Errorf("database connection is nil"))
	}

	chunksDbHandler := &ChunksDBHandler{
		db: db,
	}

	err := loadSql.Init(chunksDbHandler.db.Instance)
	if err != nil {
		return nil, helper.NewError("init extensions", err)
	}

	err = loadSql.LoadChunksSql(chunksDbHandler.db.Instance, force)
	if err != nil {
		return nil, helper.NewError("load chunks sql", err)
	}

	err = chunksDbHandler.CreateTable(embeddingDim)
	if err != nil {
		return nil, helper.NewError("create table", err)
	}

	db.Logger.Info("Initialized ChunksDBHandler")

	return chunksDbHandler, nil
}

// CreateTable creates the 'chunks' table in the database.
// If the table already exists, it does not create it again.
// It also creates all necessary indexes.
func (h *ChunksDBHandler) CreateTable(embeddingDim int) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := h.db.Instance.ExecContext(ctx, `SELECT init_chunks($1);`, embeddingDim)
	if err != nil {
		log.Panicf("error initializing chunks table: %#v", err)
	}

	h.db.Logger.Info("Checked/created table chunks")

	return nil
}

// InsertChunk inserts a new chunk and fills in the generated fields
func (h *ChunksDBHandler) InsertChunk(ctx context.Context, chunk *model.Chunk) error {
	var embedding interface{}
	if len(chunk.Embedding) > 0 {
		embedding = pgvector.NewVector(chunk.Embedding)
	}

	entityType := sql.NullString{String: chunk.EntityType, Valid: chunk.EntityType != ""}

	row := h.db.Instance.QueryRowContext(
		ctx,
		`SELECT * FROM insert_chunk($1, $2, $3, $4, $5, $6, $7)`,
		chunk.WorkflowID,
		chunk.Content,
		string(chunk.Section),
		entityType,
		embedding,
		chunk.Metadata,
		chunk.UpdatedAt,
	)

	return scanChunkRow(row, chunk)
}

// SelectChunk retrieves a chunk by ID within a workflow
func (h *ChunksDBHandler) SelectChunk(ctx context.Context, workflowID uuid.UUID, id uuid.UUID) (*model.Chunk, error) {
	row := h.db.Instance.QueryRowContext(
		ctx,
		`SELECT * FROM select_chunk($1, $2)`,
		workflowID,
		id,
	)

	chunk := &model.Chunk{}
	err := scanChunkRow(row, chunk)
	if err != nil {
		return nil, err
	}

	return chunk, nil
}

// SelectChunksByWorkflow retrieves all chunks of a workflow ordered by creation time
func (h *ChunksDBHandler) SelectChunksByWorkflow(ctx context.Context, workflowID uuid.UUID) ([]*model.Chunk, error) {
	rows, err := h.db.Instance.QueryContext(
		ctx,
		`SELECT * FROM select_chunks_by_workflow($1)`,
		workflowID,
	)
	if err != nil {
		return nil, helper.NewError("query", err)
	}
	defer rows.Close()

	var chunks []*model.Chunk
	for rows.Next() {
		chunk := &model.Chunk{}
		err := scanChunkRow(rows, chunk)
		if err != nil {
			return nil, err
		}

		chunks = append(chunks, chunk)
	}

	err = rows.Err()
	if err != nil {
		return nil, helper.NewError("rows error", err)
	}

	return chunks, nil
}

// SelectChunksBySimilarity performs blended semantic and keyword search
// scoped to one workflow. Results come back ordered by similarity and
// already filtered by the configured threshold.
func (h *ChunksDBHandler) SelectChunksBySimilarity(
	ctx context.Context,
	workflowID uuid.UUID,
	embedding []float32,
	queryText string,
	config *model.RetrievalConfig,
) ([]*model.VectorCandidate, error) {
	embeddingVector := pgvector.NewVector(embedding)

	rows, err := h.db.Instance.QueryContext(
		ctx,
		`SELECT * FROM select_chunks_by_similarity($1, $2, $3, $4, $5, $6, $7)`,
		workflowID,
		embeddingVector,
		queryText,
		config.TopK,
		config.SimilarityThreshold,
		config.SemanticWeight,
		config.KeywordWeight,
	)
	if err != nil {
		return nil, helper.NewError("query", err)
	}
	defer rows.Close()

	var candidates []*model.VectorCandidate
	for rows.Next() {
		candidate := &model.VectorCandidate{}

		var entityType sql.NullString
		var updatedAt sql.NullTime
		err := rows.Scan(
			&candidate.ID,
			&candidate.WorkflowID,
			&candidate.Content,
			&candidate.Section,
			&entityType,
			&candidate.Metadata,
			&updatedAt,
			new(time.Time),
			&candidate.Similarity,
		)
		if err != nil {
			return nil, helper.NewError("scan", err)
		}

		candidate.EntityType = entityType.String
		if updatedAt.Valid {
			t := updatedAt.Time
			candidate.UpdatedAt = &t
		}

		candidates = append(candidates, candidate)
	}

	err = rows.Err()
	if err != nil {
		return nil, helper.NewError("rows error", err)
	}

	return candidates, nil
}

// DeleteChunk deletes a chunk by ID within a workflow
func (h *ChunksDBHandler) DeleteChunk(ctx context.Context, workflowID uuid.UUID, id uuid.UUID) error {
	_, err := h.db.Instance.ExecContext(
		ctx,
		`SELECT delete_chunk($1, $2)`,
		workflowID,
		id,
	)
	if err != nil {
		return helper.NewError("exec", err)
	}
	return nil
}

// rowScanner covers *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanChunkRow(row rowScanner, chunk *model.Chunk) error {
	var entityType sql.NullString
	var updatedAt sql.NullTime
	err := row.Scan(
		&chunk.ID,
		&chunk.WorkflowID,
		&chunk.Content,
		&chunk.Section,
		&entityType,
		&chunk.Metadata,
		&updatedAt,
		&chunk.CreatedAt,
	)
	if err != nil {
		return helper.NewError("scan", err)
	}

	chunk.EntityType = entityType.String
	if updatedAt.Valid {
		t := updatedAt.Time
		chunk.UpdatedAt = &t
	} else {
		chunk.UpdatedAt = nil
	}

	return nil
}
