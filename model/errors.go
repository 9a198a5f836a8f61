package model

import "errors"

var (
	// ErrWorkflowNotFound is returned when the workflow scope of a query
	// does not exist. Distinct from "no results".
	ErrWorkflowNotFound = errors.New("workflow not found")

	// ErrNoRelevantInformation is returned when similarity search yields no
	// candidates for a valid scope. Graph expansion and generation are not
	// attempted in that case.
	ErrNoRelevantInformation = errors.New("no relevant information found")

	// ErrContextAssembly is returned when a merged result carries a
	// malformed payload. Retryable by the caller.
	ErrContextAssembly = errors.New("context assembly failed")

	// ErrGeneration is returned when the generation collaborator fails.
	// Retry policy belongs to the collaborator, not the retrieval core.
	ErrGeneration = errors.New("answer generation failed")
)
