package retrieval

import (
	"sort"

	"github.com/Shreekar11/insura-ai-sub005/model"
	"github.com/google/uuid"
)

// Merge unions reranked vector candidates with graph traversal results
// into a single ranked list. Graph nodes score graphWeight/(distance+1),
// so a one-hop node ranks below a direct hit but above distant hops.
// Nodes bridged to a chunk that is already present as a vector candidate
// are dropped; the vector representation carries the better evidence.
func Merge(candidates []*model.VectorCandidate, nodes []*model.GraphNode, graphWeight float64) []*model.MergedResult {
	merged := make([]*model.MergedResult, 0, len(candidates)+len(nodes))
	seenChunks := make(map[uuid.UUID]bool, len(candidates))
	seenSources := make(map[string]bool, len(candidates)+len(nodes))

	for _, candidate := range candidates {
		sourceID := candidate.ID.String()
		if seenSources[sourceID] {
			continue
		}
		seenSources[sourceID] = true
		seenChunks[candidate.ID] = true
		merged = append(merged, &model.MergedResult{
			SourceID: sourceID,
			Kind:     model.ResultKindVector,
			Content:  candidate.Content,
			Score:    candidate.Score,
			Section:  candidate.Section,
		})
	}

	for _, node := range nodes {
		sourceID := node.ID.String()
		if seenSources[sourceID] || bridgesSeenChunk(node, seenChunks) {
			continue
		}
		seenSources[sourceID] = true
		merged = append(merged, &model.MergedResult{
			SourceID:      sourceID,
			Kind:          model.ResultKindGraph,
			Content:       node.Text(),
			Score:         graphWeight / float64(node.Distance+1),
			GraphDistance: node.Distance,
			RelationChain: node.RelationChain,
		})
	}

	sort.SliceStable(merged, func(i, j int) bool {
		if merged[i].Score != merged[j].Score {
			return merged[i].Score > merged[j].Score
		}
		return merged[i].Kind == model.ResultKindVector && merged[j].Kind == model.ResultKindGraph
	})

	return merged
}

func bridgesSeenChunk(node *model.GraphNode, seenChunks map[uuid.UUID]bool) bool {
	for _, bridged := range node.BridgedIDs {
		if seenChunks[bridged] {
			return true
		}
	}
	return false
}
