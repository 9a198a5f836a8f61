package assembly

import (
	"fmt"
	"sort"

	"github.com/Shreekar11/insura-ai-sub005/model"
)

// Assembler builds the token-bounded context handed to generation. The
// budget is a hard limit: the assembled context never exceeds it, even by
// one item.
type Assembler struct {
	counter TokenCounter
	config  *model.RetrievalConfig
}

// NewAssembler creates a new context assembler.
func NewAssembler(counter TokenCounter, config *model.RetrievalConfig) *Assembler {
	return &Assembler{counter: counter, config: config}
}

// Assemble orders merged results by score descending, includes the top
// FullTextCount results at full length and the remainder in summarized
// form capped at SummaryMaxTokens, stopping before the cumulative count
// would exceed MaxContextTokens. The last item is truncated or dropped to
// fit.
func (a *Assembler) Assemble(results []*model.MergedResult) (*model.AssembledContext, error) {
	ordered := make([]*model.MergedResult, len(results))
	copy(ordered, results)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Score > ordered[j].Score
	})

	assembled := &model.AssembledContext{}
	budget := a.config.MaxContextTokens

	for i, result := range ordered {
		if result.SourceID == "" {
			return nil, fmt.Errorf("%w: result %d has no source identifier", model.ErrContextAssembly, i)
		}
		if result.Content == "" {
			continue
		}

		remaining := budget - assembled.TotalTokens
		if remaining <= 0 {
			break
		}

		text := result.Content
		summarized := false
		if i >= a.config.FullTextCount {
			summaryLimit := a.config.SummaryMaxTokens
			if a.counter.Count(text) > summaryLimit {
				text = truncateToTokens(text, summaryLimit, a.counter)
				summarized = true
			}
		}

		tokens := a.counter.Count(text)
		if tokens > remaining {
			text = truncateToTokens(text, remaining, a.counter)
			if text == "" {
				break
			}
			tokens = a.counter.Count(text)
			summarized = true
		}

		assembled.Segments = append(assembled.Segments, model.ContextSegment{
			SourceID:   result.SourceID,
			Text:       text,
			Summarized: summarized,
			Tokens:     tokens,
		})
		assembled.TotalTokens += tokens
		assembled.SourceIDs = append(assembled.SourceIDs, result.SourceID)
	}

	return assembled, nil
}
