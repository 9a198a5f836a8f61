package model

import (
	"time"

	"github.com/google/uuid"
)

// EdgeType represents the type of relationship between graph nodes.
type EdgeType string

const (
	EdgeTypeCovers     EdgeType = "covers"
	EdgeTypeExcludes   EdgeType = "excludes"
	EdgeTypeAmends     EdgeType = "amends"
	EdgeTypeReferences EdgeType = "references"
	EdgeTypeInsures    EdgeType = "insures"
	EdgeTypeSupersedes EdgeType = "supersedes"
	EdgeTypeEvidencedBy EdgeType = "evidenced_by"
)

// Edge represents a single relationship between two graph nodes.
type Edge struct {
	ID            uuid.UUID `json:"id"`
	WorkflowID    uuid.UUID `json:"workflow_id"`
	SourceNodeID  uuid.UUID `json:"source_node_id"`
	TargetNodeID  uuid.UUID `json:"target_node_id"`
	EdgeType      EdgeType  `json:"edge_type"`
	Weight        float64   `json:"weight"`
	Bidirectional bool      `json:"bidirectional"`
	Metadata      Metadata  `json:"metadata,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// GraphNode is a knowledge graph node, optionally annotated with traversal
// provenance: the hop distance from the seed set and the ordered chain of
// relationship types traversed to reach it.
type GraphNode struct {
	ID         uuid.UUID `json:"id"`
	WorkflowID uuid.UUID `json:"workflow_id"`
	Labels     []string  `json:"labels"`
	Properties Metadata  `json:"properties,omitempty"`
	BridgedIDs []uuid.UUID `json:"bridged_ids,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	// Traversal provenance
	Distance      int        `json:"distance,omitempty"`
	RelationChain []EdgeType `json:"relation_chain,omitempty"`
}

// Text returns the best textual rendering of the node for context assembly.
// It prefers an explicit text property, then name, then the label list.
func (n *GraphNode) Text() string {
	if s := n.Properties.String("text"); s != "" {
		return s
	}
	if s := n.Properties.String("name"); s != "" {
		return s
	}
	if len(n.Labels) > 0 {
		return n.Labels[0]
	}
	return ""
}

// TraversalConfig is the per-intent traversal policy. A nil EdgeTypes slice
// means unrestricted traversal.
type TraversalConfig struct {
	MaxDepth  int        `json:"max_depth"`
	EdgeTypes []EdgeType `json:"edge_types,omitempty"`
	MaxNodes  int        `json:"max_nodes"`
}

// Unrestricted reports whether the config allows every edge type.
func (c TraversalConfig) Unrestricted() bool {
	return len(c.EdgeTypes) == 0
}

// Allows reports whether the config permits traversing the given edge type.
func (c TraversalConfig) Allows(t EdgeType) bool {
	if c.Unrestricted() {
		return true
	}
	for _, allowed := range c.EdgeTypes {
		if allowed == t {
			return true
		}
	}
	return false
}
