package main

import (
	"context"
	"fmt"
	"log"
	"time"

	insurai "github.com/Shreekar11/insura-ai-sub005"
	"github.com/Shreekar11/insura-ai-sub005/ai/mock"
	"github.com/Shreekar11/insura-ai-sub005/helper"
	"github.com/Shreekar11/insura-ai-sub005/model"
	"github.com/google/uuid"
)

const embeddingDim = 384

var sampleChunks = []struct {
	content string
	section model.SectionType
	entity  string
}{
	{
		content: "Commercial general liability coverage with a limit of 1,000,000 per occurrence and 2,000,000 aggregate.",
		section: model.SectionCoverages,
		entity:  "coverage",
	},
	{
		content: "A windstorm deductible of 5 percent of the total insured value applies to all coastal locations.",
		section: model.SectionConditions,
		entity:  "deductible",
	},
	{
		content: "Endorsement END-04 dated 2024-03-15 amends the flood exclusion to include surface water backup.",
		section: model.SectionEndorsements,
		entity:  "endorsement",
	},
	{
		content: "Loss run for policy POL-12345: three claims in the prior term totaling 85,000.",
		section: model.SectionLossRun,
		entity:  "claim",
	},
}

func main() {
	// Start a test PostgreSQL container
	teardown, dbPort, err := helper.MustStartPostgresContainer()
	if err != nil {
		log.Fatalf("Failed to start PostgreSQL container: %v", err)
	}
	defer teardown(context.Background())

	// Create database configuration using the container port
	dbConfig := &helper.DatabaseConfiguration{
		Host:     "localhost",
		Port:     dbPort,
		Database: "database",
		Username: "user",
		Password: "password",
		Schema:   "public",
		SSLMode:  "disable",
	}

	// Deterministic embedder and a canned generator keep the example
	// self-contained. Production callers plug in real collaborators,
	// for example the ONNX embedder from ai/local and an LLM client.
	embedder := &mock.MockEmbedder{}
	generator := mock.NewMockGenerator()

	// Deterministic embeddings carry no semantics, so let the keyword
	// component of the blended score do the ranking.
	config := model.DefaultRetrievalConfig()
	config.SimilarityThreshold = 0.0

	retriever, err := insurai.NewRetriever(dbConfig, embeddingDim, embedder, generator, &config)
	if err != nil {
		log.Fatalf("Failed to create retriever: %v", err)
	}
	defer retriever.Close()

	ctx := context.Background()

	// Create the workflow scope and ingest sample policy chunks
	workflow, err := retriever.Workflows.InsertWorkflow(ctx, "commercial-property-renewal", model.Metadata{
		"insured": "Acme Widgets Inc",
	})
	if err != nil {
		log.Fatalf("Failed to insert workflow: %v", err)
	}
	fmt.Printf("Created workflow %s\n", workflow.ID)

	chunkIDs := make([]uuid.UUID, 0, len(sampleChunks))
	for _, sample := range sampleChunks {
		embedding, err := embedder.EmbedText(ctx, sample.content)
		if err != nil {
			log.Fatalf("Failed to embed chunk: %v", err)
		}

		updatedAt := time.Now().Add(-30 * 24 * time.Hour)
		chunk := &model.Chunk{
			WorkflowID: workflow.ID,
			Content:    sample.content,
			Section:    sample.section,
			EntityType: sample.entity,
			Embedding:  embedding,
			UpdatedAt:  &updatedAt,
		}
		if err := retriever.Chunks.InsertChunk(ctx, chunk); err != nil {
			log.Fatalf("Failed to insert chunk: %v", err)
		}
		chunkIDs = append(chunkIDs, chunk.ID)
	}
	fmt.Printf("Inserted %d chunks\n", len(chunkIDs))

	// Build a small knowledge graph bridged to the ingested chunks
	policy := &model.GraphNode{
		WorkflowID: workflow.ID,
		Labels:     []string{"Policy", "POL-12345"},
		Properties: model.Metadata{"name": "Policy POL-12345"},
		BridgedIDs: []uuid.UUID{chunkIDs[0], chunkIDs[1]},
	}
	endorsement := &model.GraphNode{
		WorkflowID: workflow.ID,
		Labels:     []string{"Endorsement", "END-04"},
		Properties: model.Metadata{"text": "Endorsement END-04 amending the flood exclusion."},
		BridgedIDs: []uuid.UUID{chunkIDs[2]},
	}
	lossRun := &model.GraphNode{
		WorkflowID: workflow.ID,
		Labels:     []string{"LossRun"},
		Properties: model.Metadata{"text": "Prior term loss run with three claims."},
		BridgedIDs: []uuid.UUID{chunkIDs[3]},
	}
	for _, node := range []*model.GraphNode{policy, endorsement, lossRun} {
		if err := retriever.Nodes.InsertNode(ctx, node); err != nil {
			log.Fatalf("Failed to insert node: %v", err)
		}
	}

	edges := []*model.Edge{
		{
			WorkflowID:   workflow.ID,
			SourceNodeID: endorsement.ID,
			TargetNodeID: policy.ID,
			EdgeType:     model.EdgeTypeAmends,
			Weight:       1.0,
		},
		{
			WorkflowID:   workflow.ID,
			SourceNodeID: lossRun.ID,
			TargetNodeID: policy.ID,
			EdgeType:     model.EdgeTypeEvidencedBy,
			Weight:       1.0,
		},
	}
	for _, edge := range edges {
		if err := retriever.Edges.InsertEdge(ctx, edge); err != nil {
			log.Fatalf("Failed to insert edge: %v", err)
		}
	}
	fmt.Println("Built knowledge graph: 3 nodes, 2 edges")

	// Ask questions with different intents
	queries := []string{
		"What is the general liability limit?",
		"Compare the windstorm deductible with the flood endorsement",
		"Trace the provenance of endorsement END-04",
	}

	for _, query := range queries {
		fmt.Printf("\nQuerying: %s\n", query)

		answer, err := retriever.AnswerQuery(ctx, workflow.ID, query)
		if err != nil {
			log.Fatalf("Failed to answer query: %v", err)
		}

		fmt.Printf("Intent: %s (confidence %.2f)\n", answer.Intent, answer.Confidence)
		fmt.Printf("Graph state: %s\n", answer.GraphState)
		fmt.Printf("Answer: %s\n", answer.Text)
		fmt.Printf("Citations: %d sources\n", len(answer.Citations))
		for _, warning := range answer.Warnings {
			fmt.Printf("Warning: %s\n", warning)
		}
	}

	fmt.Println("\nBasic example completed successfully!")
}
