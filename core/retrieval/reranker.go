package retrieval

import (
	"sort"
	"strings"
	"time"

	"github.com/Shreekar11/insura-ai-sub005/model"
)

// Reranker reorders vector candidates using intent-specific section
// boosts, entity overlap and recency. All boosts are additive on top of
// the raw similarity; no final-score cap is enforced.
type Reranker struct {
	config *model.RetrievalConfig
}

// NewReranker creates a new intent reranker.
func NewReranker(config *model.RetrievalConfig) *Reranker {
	return &Reranker{config: config}
}

// Rerank scores every candidate and returns them ordered by final score
// descending. The input slice is not modified; candidate Score fields are
// set on the returned copies.
func (r *Reranker) Rerank(candidates []*model.VectorCandidate, intent model.Intent, entities model.ExtractedEntities, now time.Time) []*model.VectorCandidate {
	scored := make([]*model.VectorCandidate, 0, len(candidates))
	for _, candidate := range candidates {
		copied := *candidate
		copied.Score = candidate.Similarity +
			r.sectionBoost(intent, candidate.Section) +
			r.entityBoost(candidate, entities) +
			r.recencyBoost(candidate.UpdatedAt, now)
		scored = append(scored, &copied)
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Similarity > scored[j].Similarity
	})

	return scored
}

func (r *Reranker) sectionBoost(intent model.Intent, section model.SectionType) float64 {
	boosts, ok := r.config.SectionBoosts[intent]
	if !ok {
		return 0
	}
	return boosts[section]
}

// entityBoost applies the fixed increment once if the candidate's type or
// content overlaps any extracted entity.
func (r *Reranker) entityBoost(candidate *model.VectorCandidate, entities model.ExtractedEntities) float64 {
	if entities.IsEmpty() {
		return 0
	}
	if candidate.EntityType != "" {
		for _, value := range entities.All() {
			if strings.EqualFold(candidate.EntityType, value) {
				return r.config.EntityMatchBoost
			}
		}
	}
	if entities.Matches(candidate.Content) {
		return r.config.EntityMatchBoost
	}
	return 0
}

// recencyBoost decays linearly from RecencyMaxBoost to zero over the
// recency window. Items without a timestamp get no boost; timestamps in
// the future count as age zero.
func (r *Reranker) recencyBoost(updatedAt *time.Time, now time.Time) float64 {
	if updatedAt == nil || r.config.RecencyWindow <= 0 {
		return 0
	}
	age := now.Sub(*updatedAt)
	if age < 0 {
		age = 0
	}
	if age >= r.config.RecencyWindow {
		return 0
	}
	remaining := 1.0 - float64(age)/float64(r.config.RecencyWindow)
	return r.config.RecencyMaxBoost * remaining
}
