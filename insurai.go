package insurai

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/Shreekar11/insura-ai-sub005/ai"
	"github.com/Shreekar11/insura-ai-sub005/core/assembly"
	"github.com/Shreekar11/insura-ai-sub005/core/graph"
	"github.com/Shreekar11/insura-ai-sub005/core/retrieval"
	"github.com/Shreekar11/insura-ai-sub005/core/understanding"
	"github.com/Shreekar11/insura-ai-sub005/database"
	"github.com/Shreekar11/insura-ai-sub005/helper"
	"github.com/Shreekar11/insura-ai-sub005/model"
	"github.com/google/uuid"
)

// WorkflowStore is the workflow lookup the retriever needs to validate the
// scope of a query.
type WorkflowStore interface {
	SelectWorkflow(ctx context.Context, id uuid.UUID) (*model.Workflow, error)
}

// Retriever provides a unified interface to the retrieval pipeline:
// query understanding, vector search, graph expansion, context assembly
// and answer generation.
type Retriever struct {
	DB        *helper.Database
	Workflows *database.WorkflowsDBHandler
	Chunks    *database.ChunksDBHandler
	Nodes     *database.NodesDBHandler
	Edges     *database.EdgesDBHandler

	workflows     WorkflowStore
	classifier    *understanding.Classifier
	extractor     *understanding.Extractor
	queryExpander *understanding.Expander
	search        *retrieval.Service
	reranker      *retrieval.Reranker
	graphExpander *graph.Expander
	assembler     *assembly.Assembler
	generator     ai.Generator
	config        *model.RetrievalConfig
	cache         *responseCache
	// Logging
	log *slog.Logger
}

// NewRetriever creates a Retriever with all database handlers initialized.
// The embedder turns queries into vectors, the generator produces the final
// answer text from the assembled context.
func NewRetriever(dbConfig *helper.DatabaseConfiguration, embeddingDim int, embedder ai.Embedder, generator ai.Generator, config *model.RetrievalConfig) (*Retriever, error) {
	// Logger
	opts := helper.PrettyHandlerOptions{
		SlogOpts: slog.HandlerOptions{
			Level: slog.LevelInfo,
		},
	}
	logger := slog.New(helper.NewPrettyHandler(os.Stdout, opts))

	db := helper.NewDatabase("insurai", dbConfig, logger)

	// Create all handlers in foreign key order (workflows first)
	// force=false to not reload if functions already exist
	workflows, err := database.NewWorkflowsDBHandler(db, false)
	if err != nil {
		return nil, helper.NewError("create workflows handler", err)
	}

	chunks, err := database.NewChunksDBHandler(db, embeddingDim, false)
	if err != nil {
		return nil, helper.NewError("create chunks handler", err)
	}

	nodes, err := database.NewNodesDBHandler(db, false)
	if err != nil {
		return nil, helper.NewError("create nodes handler", err)
	}

	edges, err := database.NewEdgesDBHandler(db, false)
	if err != nil {
		return nil, helper.NewError("create edges handler", err)
	}

	graphStore, err := database.NewGraphDBHandler(nodes, edges)
	if err != nil {
		return nil, helper.NewError("create graph handler", err)
	}

	retriever := newRetriever(workflows, chunks, graphStore, embedder, generator, config, logger)
	retriever.DB = db
	retriever.Workflows = workflows
	retriever.Chunks = chunks
	retriever.Nodes = nodes
	retriever.Edges = edges

	return retriever, nil
}

// NewRetrieverWithStores creates a Retriever on top of caller-provided
// stores. Used for tests and for callers that bring their own storage.
func NewRetrieverWithStores(workflows WorkflowStore, vectorStore retrieval.VectorStore, graphStore graph.Store, embedder ai.Embedder, generator ai.Generator, config *model.RetrievalConfig, logger *slog.Logger) *Retriever {
	if logger == nil {
		logger = slog.Default()
	}
	return newRetriever(workflows, vectorStore, graphStore, embedder, generator, config, logger)
}

func newRetriever(workflows WorkflowStore, vectorStore retrieval.VectorStore, graphStore graph.Store, embedder ai.Embedder, generator ai.Generator, config *model.RetrievalConfig, logger *slog.Logger) *Retriever {
	if config == nil {
		defaultConfig := model.DefaultRetrievalConfig()
		config = &defaultConfig
	}

	vocab := understanding.DefaultVocabulary()

	return &Retriever{
		workflows:     workflows,
		classifier:    understanding.NewClassifier(config.MinIntentConfidence),
		extractor:     understanding.NewExtractor(vocab),
		queryExpander: understanding.NewExpander(vocab),
		search:        retrieval.NewService(vectorStore, embedder, config),
		reranker:      retrieval.NewReranker(config),
		graphExpander: graph.NewExpander(graphStore, config, logger),
		assembler:     assembly.NewAssembler(assembly.NewTiktokenCounter(logger), config),
		generator:     generator,
		config:        config,
		cache:         newResponseCache(config.CacheTTL),
		log:           logger,
	}
}

// Close closes the database connection
func (r *Retriever) Close() error {
	if r.DB != nil && r.DB.Instance != nil {
		return r.DB.Instance.Close()
	}
	return nil
}

// Config returns the active pipeline configuration.
func (r *Retriever) Config() *model.RetrievalConfig {
	return r.config
}

// Classify returns the intent classification for a query without running
// the rest of the pipeline.
func (r *Retriever) Classify(query string) model.Classification {
	return r.classifier.Classify(truncateQuery(query, r.config.MaxQueryChars))
}

// Extract returns the structured entities found in a query.
func (r *Retriever) Extract(query string) model.ExtractedEntities {
	return r.extractor.Extract(truncateQuery(query, r.config.MaxQueryChars))
}

// ExpandQuery returns the query plus its vocabulary-driven variants.
func (r *Retriever) ExpandQuery(query string) []string {
	return r.queryExpander.Expand(truncateQuery(query, r.config.MaxQueryChars), r.config.MaxExpansions)
}

// Search runs retrieval up to the merged result list without generation:
// expansion, vector search, reranking, graph expansion and merging.
func (r *Retriever) Search(ctx context.Context, workflowID uuid.UUID, query string) ([]*model.MergedResult, graph.Expansion, error) {
	query = truncateQuery(query, r.config.MaxQueryChars)

	classification := r.classifier.Classify(query)
	entities := r.extractor.Extract(query)
	queries := r.queryExpander.Expand(query, r.config.MaxExpansions)

	candidates, err := r.search.Retrieve(ctx, workflowID, queries)
	if err != nil {
		return nil, graph.Expansion{State: model.GraphNotAttempted}, helper.NewError("vector retrieve", err)
	}

	reranked := r.reranker.Rerank(candidates, classification.Intent, entities, time.Now())
	expansion := r.graphExpander.Expand(ctx, workflowID, reranked, classification.Intent)
	merged := retrieval.Merge(reranked, expansion.Nodes, r.config.GraphWeight)

	return merged, expansion, nil
}

func truncateQuery(query string, maxChars int) string {
	if maxChars <= 0 || len(query) <= maxChars {
		return query
	}
	runes := []rune(query)
	if len(runes) <= maxChars {
		return query
	}
	return string(runes[:maxChars])
}
