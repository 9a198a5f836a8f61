package graph

import (
	"context"

	"github.com/Shreekar11/insura-ai-sub005/helper"
	"github.com/Shreekar11/insura-ai-sub005/model"
	"github.com/google/uuid"
)

// Store defines the graph store operations used by expansion. All calls
// are scoped to a workflow.
type Store interface {
	// SelectNodesByBridgedIDs returns nodes whose bridged identifier set
	// intersects the given chunk identifiers.
	SelectNodesByBridgedIDs(ctx context.Context, workflowID uuid.UUID, bridgedIDs []uuid.UUID) ([]*model.GraphNode, error)
	// SelectNode returns a single node by id.
	SelectNode(ctx context.Context, workflowID uuid.UUID, nodeID uuid.UUID) (*model.GraphNode, error)
	// SelectEdgesFromNode returns edges leaving the node, including
	// bidirectional edges pointing at it.
	SelectEdgesFromNode(ctx context.Context, workflowID uuid.UUID, nodeID uuid.UUID) ([]*model.Edge, error)
}

// step is one BFS frontier entry.
type step struct {
	nodeID   uuid.UUID
	distance int
	chain    []model.EdgeType
}

// Traverse performs breadth-first traversal outward from the seed nodes,
// restricted to the configured edge-type allowlist and depth. The seeds
// themselves are excluded from the result. Results are ordered by
// ascending hop distance and capped at MaxNodes; each carries the ordered
// chain of relationship types traversed to reach it.
func Traverse(ctx context.Context, store Store, workflowID uuid.UUID, seeds []*model.GraphNode, config model.TraversalConfig) ([]*model.GraphNode, error) {
	if len(seeds) == 0 || config.MaxDepth <= 0 {
		return nil, nil
	}

	visited := make(map[uuid.UUID]bool, len(seeds))
	queue := make([]step, 0, len(seeds))
	for _, seed := range seeds {
		if visited[seed.ID] {
			continue
		}
		visited[seed.ID] = true
		queue = append(queue, step{nodeID: seed.ID, distance: 0})
	}

	var results []*model.GraphNode
	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, helper.NewError("Traverse", err)
		}
		current := queue[0]
		queue = queue[1:]

		if current.distance >= config.MaxDepth {
			continue
		}

		edges, err := store.SelectEdgesFromNode(ctx, workflowID, current.nodeID)
		if err != nil {
			return nil, helper.NewError("Traverse.SelectEdgesFromNode", err)
		}

		for _, edge := range edges {
			if !config.Allows(edge.EdgeType) {
				continue
			}

			var targetID uuid.UUID
			switch {
			case edge.SourceNodeID == current.nodeID:
				targetID = edge.TargetNodeID
			case edge.Bidirectional && edge.TargetNodeID == current.nodeID:
				targetID = edge.SourceNodeID
			default:
				continue
			}

			if visited[targetID] {
				continue
			}
			visited[targetID] = true

			target, err := store.SelectNode(ctx, workflowID, targetID)
			if err != nil {
				// Dangling edge, skip the target.
				continue
			}

			chain := make([]model.EdgeType, len(current.chain), len(current.chain)+1)
			copy(chain, current.chain)
			chain = append(chain, edge.EdgeType)

			target.Distance = current.distance + 1
			target.RelationChain = chain
			results = append(results, target)

			if config.MaxNodes > 0 && len(results) >= config.MaxNodes {
				return results, nil
			}

			queue = append(queue, step{
				nodeID:   targetID,
				distance: current.distance + 1,
				chain:    chain,
			})
		}
	}

	return results, nil
}
