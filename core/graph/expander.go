package graph

import (
	"context"
	"log/slog"

	"github.com/Shreekar11/insura-ai-sub005/model"
	"github.com/google/uuid"
)

// Expansion is the outcome of graph expansion for one query. It never
// carries an error: any store failure degrades the state to skipped and
// the pipeline continues vector-only.
type Expansion struct {
	State    model.GraphState
	Nodes    []*model.GraphNode
	Warnings []string
}

// Expander maps vector candidates onto graph nodes and traverses outward
// from them according to the intent's traversal policy.
type Expander struct {
	store  Store
	config *model.RetrievalConfig
	logger *slog.Logger
}

// NewExpander creates a new graph expander.
func NewExpander(store Store, config *model.RetrievalConfig, logger *slog.Logger) *Expander {
	if logger == nil {
		logger = slog.Default()
	}
	return &Expander{store: store, config: config, logger: logger}
}

// Expand runs node mapping followed by traversal. The state machine is
// not_attempted, then mapped once seed lookup succeeds, then expanded once
// traversal succeeds. Any step failure transitions to skipped with the
// results gathered so far.
func (e *Expander) Expand(ctx context.Context, workflowID uuid.UUID, candidates []*model.VectorCandidate, intent model.Intent) Expansion {
	expansion := Expansion{State: model.GraphNotAttempted}
	if len(candidates) == 0 {
		return expansion
	}

	seedCount := e.config.MaxSeedNodes
	if seedCount <= 0 || seedCount > len(candidates) {
		seedCount = len(candidates)
	}
	candidateIDs := make([]uuid.UUID, 0, seedCount)
	for _, candidate := range candidates[:seedCount] {
		candidateIDs = append(candidateIDs, candidate.ID)
	}

	mapCtx, cancel := e.storeContext(ctx)
	seeds, err := e.store.SelectNodesByBridgedIDs(mapCtx, workflowID, candidateIDs)
	cancel()
	if err != nil {
		e.logger.Warn("graph node mapping failed, continuing vector-only",
			slog.String("workflow_id", workflowID.String()),
			slog.Any("error", err))
		expansion.State = model.GraphSkipped
		expansion.Warnings = append(expansion.Warnings, "graph node mapping failed: "+err.Error())
		return expansion
	}

	expansion.State = model.GraphMapped
	if len(seeds) == 0 {
		expansion.Warnings = append(expansion.Warnings, "no graph nodes mapped to vector candidates")
		return expansion
	}

	traversalConfig := e.config.TraversalConfigFor(intent)
	traverseCtx, cancel := e.storeContext(ctx)
	nodes, err := Traverse(traverseCtx, e.store, workflowID, seeds, traversalConfig)
	cancel()
	if err != nil {
		e.logger.Warn("graph traversal failed, continuing vector-only",
			slog.String("workflow_id", workflowID.String()),
			slog.Any("error", err))
		expansion.State = model.GraphSkipped
		expansion.Warnings = append(expansion.Warnings, "graph traversal failed: "+err.Error())
		return expansion
	}

	expansion.State = model.GraphExpanded
	expansion.Nodes = nodes
	return expansion
}

func (e *Expander) storeContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if e.config.StoreTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, e.config.StoreTimeout)
}
