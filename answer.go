package insurai

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Shreekar11/insura-ai-sub005/ai"
	"github.com/Shreekar11/insura-ai-sub005/core/retrieval"
	"github.com/Shreekar11/insura-ai-sub005/helper"
	"github.com/Shreekar11/insura-ai-sub005/model"
	"github.com/google/uuid"
)

// AnswerQuery runs the full pipeline for one query: scope validation,
// intent classification, entity extraction, query expansion, vector
// retrieval, reranking, graph expansion, merging, context assembly and
// generation. Graph failures degrade to a vector-only answer; an empty
// retrieval result is an error so callers never get a fabricated answer.
func (r *Retriever) AnswerQuery(ctx context.Context, workflowID uuid.UUID, query string) (*model.Answer, error) {
	if r.generator == nil {
		return nil, helper.NewError("answer query", fmt.Errorf("generator not set"))
	}

	truncated := truncateQuery(query, r.config.MaxQueryChars)
	if truncated != query {
		r.log.Debug("Query truncated", slog.Int("max_chars", r.config.MaxQueryChars))
	}
	query = truncated

	if r.config.EnableCache {
		if answer, ok := r.cache.Get(workflowID, query); ok {
			r.log.Debug("Answer served from cache", slog.String("workflow_id", workflowID.String()))
			return answer, nil
		}
	}

	_, err := r.workflows.SelectWorkflow(ctx, workflowID)
	if err != nil {
		return nil, err
	}

	classification := r.classifier.Classify(query)
	entities := r.extractor.Extract(query)
	queries := r.queryExpander.Expand(query, r.config.MaxExpansions)

	r.log.Info("Classified query",
		slog.String("intent", string(classification.Intent)),
		slog.Float64("confidence", classification.Confidence),
		slog.Int("expansions", len(queries)))

	candidates, err := r.search.Retrieve(ctx, workflowID, queries)
	if err != nil {
		return nil, helper.NewError("vector retrieve", err)
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w: workflow %s", model.ErrNoRelevantInformation, workflowID)
	}

	reranked := r.reranker.Rerank(candidates, classification.Intent, entities, time.Now())

	expansion := r.graphExpander.Expand(ctx, workflowID, reranked, classification.Intent)

	merged := retrieval.Merge(reranked, expansion.Nodes, r.config.GraphWeight)

	assembled, err := r.assembler.Assemble(merged)
	if err != nil {
		return nil, err
	}

	request := ai.GenerationRequest{
		Query:       query,
		Intent:      classification.Intent,
		Context:     assembled.Text(),
		SourceIDs:   assembled.SourceIDs,
		Temperature: r.config.TemperatureFor(classification.Intent),
	}

	result, err := r.generator.Generate(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrGeneration, err)
	}

	answer := &model.Answer{
		Text:       result.Text,
		Citations:  result.CitedSourceIDs,
		Intent:     classification.Intent,
		Confidence: classification.Confidence,
		GraphState: expansion.State,
		Warnings:   expansion.Warnings,
	}

	if r.config.EnableCache {
		r.cache.Set(workflowID, query, answer)
	}

	return answer, nil
}
