package model

import (
	"time"

	"github.com/google/uuid"
)

// VectorCandidate is a chunk returned by similarity search.
// Similarity is the raw store score in [0,1] (higher is closer);
// Score carries the reranked score once boosts are applied.
type VectorCandidate struct {
	ID         uuid.UUID   `json:"id"`
	WorkflowID uuid.UUID   `json:"workflow_id"`
	Content    string      `json:"content"`
	Section    SectionType `json:"section"`
	EntityType string      `json:"entity_type,omitempty"`
	Metadata   Metadata    `json:"metadata,omitempty"`
	UpdatedAt  *time.Time  `json:"updated_at,omitempty"`
	Similarity float64     `json:"similarity"`
	Score      float64     `json:"score"`
}

// ResultKind distinguishes how a merged result was retrieved.
type ResultKind string

const (
	ResultKindVector ResultKind = "vector"
	ResultKindGraph  ResultKind = "graph"
)

// MergedResult is the union element of vector candidates and graph nodes
// after dedup by source identity. It keeps enough provenance to explain
// why the item was retrieved.
type MergedResult struct {
	SourceID      string     `json:"source_id"`
	Kind          ResultKind `json:"kind"`
	Content       string     `json:"content"`
	Score         float64    `json:"score"`
	Section       SectionType `json:"section,omitempty"`
	GraphDistance int        `json:"graph_distance,omitempty"`
	RelationChain []EdgeType `json:"relation_chain,omitempty"`
}
