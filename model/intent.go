package model

// Intent is the coarse category of a query. It drives the graph traversal
// depth, the edge-type allowlist and the per-section score boosts.
type Intent string

const (
	IntentQA       Intent = "qa"
	IntentAnalysis Intent = "analysis"
	IntentAudit    Intent = "audit"
)

// Depth returns the recommended graph traversal depth for the intent.
func (i Intent) Depth() int {
	switch i {
	case IntentAnalysis:
		return 2
	case IntentAudit:
		return 3
	default:
		return 1
	}
}

// Classification is the result of intent classification for a query.
// It is immutable once produced.
type Classification struct {
	Intent     Intent  `json:"intent"`
	Confidence float64 `json:"confidence"`
	Depth      int     `json:"depth"`
}
