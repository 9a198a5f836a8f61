package model

// GraphState tracks how far graph expansion got for a query.
type GraphState string

const (
	GraphNotAttempted GraphState = "not_attempted"
	GraphMapped       GraphState = "mapped"
	GraphExpanded     GraphState = "expanded"
	GraphSkipped      GraphState = "skipped"
)

// Answer is the final response for a query: the generated text, the source
// identifiers actually cited, and the classification that drove retrieval.
type Answer struct {
	Text       string     `json:"text"`
	Citations  []string   `json:"citations"`
	Intent     Intent     `json:"intent"`
	Confidence float64    `json:"confidence"`
	GraphState GraphState `json:"graph_state"`
	Warnings   []string   `json:"warnings,omitempty"`
}
