package understanding

import (
	"strings"
)

// maxVariantsPerTerm caps how many alternative phrasings a single matched
// term may contribute, so one overloaded term cannot crowd out the rest.
const maxVariantsPerTerm = 3

// Expander rewrites a query into alternative phrasings by substituting
// matched domain terms with their vocabulary synonyms.
type Expander struct {
	vocab *Vocabulary
}

// NewExpander returns an expander backed by the given vocabulary.
func NewExpander(vocab *Vocabulary) *Expander {
	return &Expander{vocab: vocab}
}

// Expand returns the original query first, followed by up to maxExpansions
// rewritten variants. Variants are deduplicated case-insensitively against
// each other and the original. A query with no matching domain terms comes
// back as a one-element list.
func (e *Expander) Expand(query string, maxExpansions int) []string {
	expanded := []string{query}
	if maxExpansions <= 0 {
		return expanded
	}

	seen := map[string]bool{strings.ToLower(query): true}
	generated := 0

	for _, match := range e.vocab.FindTerms(query) {
		matched := query[match.Start:match.End]
		variants := 0
		for _, synonym := range e.vocab.Expansions[match.Term] {
			if strings.EqualFold(synonym, matched) {
				continue
			}
			if variants >= maxVariantsPerTerm {
				break
			}
			variant := query[:match.Start] + synonym + query[match.End:]
			lower := strings.ToLower(variant)
			if seen[lower] {
				continue
			}
			seen[lower] = true
			expanded = append(expanded, variant)
			variants++
			generated++
			if generated >= maxExpansions {
				return expanded
			}
		}
	}

	return expanded
}
