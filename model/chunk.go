package model

import (
	"time"

	"github.com/google/uuid"
)

// Chunk is a stored document fragment with its embedding. Section and
// EntityType feed the intent reranker; UpdatedAt feeds the recency boost.
type Chunk struct {
	ID         uuid.UUID   `json:"id"`
	WorkflowID uuid.UUID   `json:"workflow_id"`
	Content    string      `json:"content"`
	Section    SectionType `json:"section"`
	EntityType string      `json:"entity_type,omitempty"`
	Embedding  []float32   `json:"embedding,omitempty"`
	Metadata   Metadata    `json:"metadata,omitempty"`
	UpdatedAt  *time.Time  `json:"updated_at,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
}
