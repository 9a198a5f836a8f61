package understanding

import (
	"regexp"
	"sort"

	"github.com/Shreekar11/insura-ai-sub005/model"
)

// Vocabulary is the static insurance domain knowledge used for query
// expansion, coverage extraction and section hinting. It is built once and
// never mutated.
type Vocabulary struct {
	// Expansions maps a lowercase domain term to its alternative phrasings.
	Expansions map[string][]string
	// CoverageAbbreviations maps a lowercase abbreviation to the canonical
	// coverage name.
	CoverageAbbreviations map[string]string
	// CoverageNames lists the full coverage names matched verbatim.
	CoverageNames []string
	// SectionKeywords maps a lowercase keyword to the section it implies.
	SectionKeywords map[string]model.SectionType

	// Compiled whole-word matchers, keyed like Expansions.
	termPatterns map[string]*regexp.Regexp
	// Deterministic iteration order over expansion terms.
	termOrder []string
}

// DefaultVocabulary returns the built-in insurance vocabulary.
func DefaultVocabulary() *Vocabulary {
	v := &Vocabulary{
		Expansions: map[string][]string{
			"bi":          {"bodily injury", "bodily injury liability"},
			"pd":          {"property damage", "property damage liability"},
			"gl":          {"general liability", "commercial general liability"},
			"cgl":         {"commercial general liability"},
			"wc":          {"workers compensation", "workers comp"},
			"um":          {"uninsured motorist"},
			"uim":         {"underinsured motorist"},
			"e&o":         {"errors and omissions"},
			"d&o":         {"directors and officers liability"},
			"epli":        {"employment practices liability"},
			"bop":         {"business owners policy"},
			"ded":         {"deductible"},
			"limits":      {"limits of liability", "coverage limits"},
			"loss run":    {"loss history", "claims history"},
			"endorsement": {"policy amendment", "rider"},
			"exclusion":   {"coverage exclusion"},
			"premium":     {"policy premium"},
		},
		CoverageAbbreviations: map[string]string{
			"bi":   "bodily injury",
			"pd":   "property damage",
			"gl":   "general liability",
			"cgl":  "commercial general liability",
			"wc":   "workers compensation",
			"um":   "uninsured motorist",
			"uim":  "underinsured motorist",
			"e&o":  "errors and omissions",
			"d&o":  "directors and officers",
			"epli": "employment practices liability",
			"pip":  "personal injury protection",
		},
		CoverageNames: []string{
			"bodily injury",
			"property damage",
			"general liability",
			"commercial general liability",
			"workers compensation",
			"professional liability",
			"errors and omissions",
			"directors and officers",
			"employment practices liability",
			"personal injury protection",
			"auto liability",
			"umbrella",
			"excess liability",
			"collision",
			"comprehensive",
			"medical payments",
			"uninsured motorist",
			"underinsured motorist",
			"business interruption",
			"cyber liability",
			"flood",
			"earthquake",
		},
		SectionKeywords: map[string]model.SectionType{
			"coverage":     model.SectionCoverages,
			"coverages":    model.SectionCoverages,
			"covered":      model.SectionCoverages,
			"exclusion":    model.SectionExclusions,
			"exclusions":   model.SectionExclusions,
			"excluded":     model.SectionExclusions,
			"endorsement":  model.SectionEndorsements,
			"endorsements": model.SectionEndorsements,
			"rider":        model.SectionEndorsements,
			"premium":      model.SectionDeclarations,
			"deductible":   model.SectionDeclarations,
			"declarations": model.SectionDeclarations,
			"condition":    model.SectionConditions,
			"conditions":   model.SectionConditions,
			"definition":   model.SectionDefinitions,
			"definitions":  model.SectionDefinitions,
			"claim":        model.SectionLossRun,
			"claims":       model.SectionLossRun,
			"loss run":     model.SectionLossRun,
			"loss history": model.SectionLossRun,
			"certificate":  model.SectionEvidence,
			"evidence":     model.SectionEvidence,
			"schedule":     model.SectionSchedule,
		},
	}

	v.termPatterns = make(map[string]*regexp.Regexp, len(v.Expansions))
	v.termOrder = make([]string, 0, len(v.Expansions))
	for term := range v.Expansions {
		v.termPatterns[term] = wholeWordPattern(term)
		v.termOrder = append(v.termOrder, term)
	}
	sort.Strings(v.termOrder)

	return v
}

// TermMatch is an expansion term found in a query, with its location.
type TermMatch struct {
	Term  string
	Start int
	End   int
}

// FindTerms returns every distinct expansion term present in the query,
// ordered by first occurrence position.
func (v *Vocabulary) FindTerms(query string) []TermMatch {
	var matches []TermMatch
	for _, term := range v.termOrder {
		loc := v.termPatterns[term].FindStringIndex(query)
		if loc != nil {
			matches = append(matches, TermMatch{Term: term, Start: loc[0], End: loc[1]})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Start < matches[j].Start
	})
	return matches
}

// wholeWordPattern compiles a case-insensitive whole-word matcher for a
// term that may contain spaces or non-word characters like "&".
func wholeWordPattern(term string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(term) + `\b`)
}
