package database

import (
	"context"
	"fmt"

	"github.com/Shreekar11/insura-ai-sub005/helper"
	"github.com/Shreekar11/insura-ai-sub005/model"
	"github.com/google/uuid"
)

// GraphDBHandler composes the node and edge handlers into the store view
// the traversal code expects.
type GraphDBHandler struct {
	Nodes *NodesDBHandler
	Edges *EdgesDBHandler
}

// NewGraphDBHandler creates a graph store backed by the given node and edge handlers.
func NewGraphDBHandler(nodes *NodesDBHandler, edges *EdgesDBHandler) (*GraphDBHandler, error) {
	if nodes == nil {
		return nil, helper.NewError("graph handler validation", fmt.Errorf("nodes handler is nil"))
	}
	if edges == nil {
		return nil, helper.NewError("graph handler validation", fmt.Errorf("edges handler is nil"))
	}

	return &GraphDBHandler{
		Nodes: nodes,
		Edges: edges,
	}, nil
}

// SelectNodesByBridgedIDs returns nodes whose bridged identifier set
// intersects the given chunk identifiers.
func (h *GraphDBHandler) SelectNodesByBridgedIDs(ctx context.Context, workflowID uuid.UUID, bridgedIDs []uuid.UUID) ([]*model.GraphNode, error) {
	return h.Nodes.SelectNodesByBridgedIDs(ctx, workflowID, bridgedIDs)
}

// SelectNode returns a single node by id.
func (h *GraphDBHandler) SelectNode(ctx context.Context, workflowID uuid.UUID, nodeID uuid.UUID) (*model.GraphNode, error) {
	return h.Nodes.SelectNode(ctx, workflowID, nodeID)
}

// SelectEdgesFromNode returns edges leaving the node, including
// bidirectional edges pointing at it.
func (h *GraphDBHandler) SelectEdgesFromNode(ctx context.Context, workflowID uuid.UUID, nodeID uuid.UUID) ([]*model.Edge, error) {
	return h.Edges.SelectEdgesFromNode(ctx, workflowID, nodeID)
}
