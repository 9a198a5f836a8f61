package understanding

import (
	"regexp"
	"sort"
	"strings"

	"github.com/Shreekar11/insura-ai-sub005/model"
)

const (
	categoryPolicyNumber = "policy_number"
	categoryDate         = "date"
	categoryAmount       = "amount"
	categoryLocation     = "location"
	categoryName         = "name"
)

// entityPattern binds an entity category to its matcher. The normalizer
// produces the deduplication key; the originally-cased match is what gets
// stored.
type entityPattern struct {
	category  string
	pattern   *regexp.Regexp
	normalize func(string) string
}

// Extractor pulls structured insurance entities out of free-form query
// text. Extraction is purely lexical, no store access.
type Extractor struct {
	vocab    *Vocabulary
	patterns []entityPattern

	coverageNames  []*regexp.Regexp
	abbrevOrder    []string
	coverageAbbrev map[string]*regexp.Regexp
	sectionWords   map[string]*regexp.Regexp
}

// NewExtractor returns an extractor backed by the given vocabulary.
func NewExtractor(vocab *Vocabulary) *Extractor {
	e := &Extractor{
		vocab: vocab,
		patterns: []entityPattern{
			{
				category:  categoryPolicyNumber,
				pattern:   regexp.MustCompile(`\b[A-Z]{2,}[A-Z0-9]*-[A-Z0-9][A-Z0-9-]{2,}\b`),
				normalize: strings.ToUpper,
			},
			{
				category:  categoryDate,
				pattern:   regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b`),
				normalize: identity,
			},
			{
				category:  categoryDate,
				pattern:   regexp.MustCompile(`\b\d{1,2}/\d{1,2}/\d{2,4}\b`),
				normalize: identity,
			},
			{
				category:  categoryDate,
				pattern:   regexp.MustCompile(`(?i)\b(january|february|march|april|may|june|july|august|september|october|november|december)\s+\d{1,2}(,)?\s+\d{4}\b`),
				normalize: strings.ToLower,
			},
			{
				category:  categoryAmount,
				pattern:   regexp.MustCompile(`(?i)\$\s?\d[\d,]*(\.\d+)?(\s?(million|thousand|billion|mm|k))?`),
				normalize: compactLower,
			},
			{
				category:  categoryAmount,
				pattern:   regexp.MustCompile(`(?i)\b\d+(\.\d+)?\s(million|thousand|billion)\b`),
				normalize: compactLower,
			},
			{
				category:  categoryLocation,
				pattern:   regexp.MustCompile(`\b[A-Z][a-z]+( [A-Z][a-z]+)?,\s?[A-Z]{2}\b`),
				normalize: strings.ToLower,
			},
			{
				category:  categoryLocation,
				pattern:   regexp.MustCompile(`(?i)\b\d+\s[A-Za-z]+(\s[A-Za-z]+)?\s(street|st|avenue|ave|road|rd|boulevard|blvd|drive|dr|lane|ln|way)\b`),
				normalize: strings.ToLower,
			},
			{
				category:  categoryName,
				pattern:   regexp.MustCompile(`\b[A-Z][a-z]+(\s[A-Z][a-z]+)+(\s(Inc|LLC|Ltd|Corp|Co|Company|Insurance|Mutual|Group))?\b`),
				normalize: strings.ToLower,
			},
		},
		coverageAbbrev: make(map[string]*regexp.Regexp, len(vocab.CoverageAbbreviations)),
		sectionWords:   make(map[string]*regexp.Regexp, len(vocab.SectionKeywords)),
	}
	for _, name := range vocab.CoverageNames {
		e.coverageNames = append(e.coverageNames, wholeWordPattern(name))
	}
	for abbrev := range vocab.CoverageAbbreviations {
		e.abbrevOrder = append(e.abbrevOrder, abbrev)
		e.coverageAbbrev[abbrev] = wholeWordPattern(abbrev)
	}
	sort.Strings(e.abbrevOrder)
	for keyword := range vocab.SectionKeywords {
		e.sectionWords[keyword] = wholeWordPattern(keyword)
	}
	return e
}

// Extract returns every entity found in the query. Values in each category
// are deduplicated by their normalized form, keeping the first occurrence.
func (e *Extractor) Extract(query string) model.ExtractedEntities {
	entities := model.ExtractedEntities{}
	seen := make(map[string]bool)

	for _, ep := range e.patterns {
		for _, match := range ep.pattern.FindAllString(query, -1) {
			key := ep.category + "|" + ep.normalize(match)
			if seen[key] {
				continue
			}
			seen[key] = true
			switch ep.category {
			case categoryPolicyNumber:
				entities.PolicyNumbers = append(entities.PolicyNumbers, match)
			case categoryDate:
				entities.Dates = append(entities.Dates, match)
			case categoryAmount:
				entities.Amounts = append(entities.Amounts, match)
			case categoryLocation:
				entities.Locations = append(entities.Locations, match)
			case categoryName:
				entities.Names = append(entities.Names, match)
			}
		}
	}

	entities.CoverageTypes = e.extractCoverages(query, seen)
	entities.Names = e.filterCoverageNames(entities.Names, entities.CoverageTypes)
	entities.SectionHints = e.extractSectionHints(query)

	return entities
}

// extractCoverages matches full coverage names verbatim and resolves
// abbreviations to their canonical names.
func (e *Extractor) extractCoverages(query string, seen map[string]bool) []string {
	var coverages []string
	add := func(value string) {
		key := "coverage|" + strings.ToLower(value)
		if seen[key] {
			return
		}
		seen[key] = true
		coverages = append(coverages, value)
	}

	for _, pattern := range e.coverageNames {
		if match := pattern.FindString(query); match != "" {
			add(match)
		}
	}
	for _, abbrev := range e.abbrevOrder {
		if e.coverageAbbrev[abbrev].MatchString(query) {
			add(e.vocab.CoverageAbbreviations[abbrev])
		}
	}
	return coverages
}

// filterCoverageNames drops name candidates that are really coverage names
// picked up by the capitalized-phrase heuristic.
func (e *Extractor) filterCoverageNames(names, coverages []string) []string {
	if len(names) == 0 || len(coverages) == 0 {
		return names
	}
	kept := names[:0]
	for _, name := range names {
		isCoverage := false
		for _, coverage := range coverages {
			if strings.EqualFold(name, coverage) {
				isCoverage = true
				break
			}
		}
		if !isCoverage {
			kept = append(kept, name)
		}
	}
	return kept
}

// extractSectionHints maps keyword occurrences to section types in a
// stable order, deduplicated.
func (e *Extractor) extractSectionHints(query string) []model.SectionType {
	hintSet := make(map[model.SectionType]bool)
	for keyword, pattern := range e.sectionWords {
		if pattern.MatchString(query) {
			hintSet[e.vocab.SectionKeywords[keyword]] = true
		}
	}
	if len(hintSet) == 0 {
		return nil
	}
	ordered := []model.SectionType{
		model.SectionDeclarations,
		model.SectionCoverages,
		model.SectionExclusions,
		model.SectionConditions,
		model.SectionEndorsements,
		model.SectionDefinitions,
		model.SectionSchedule,
		model.SectionLossRun,
		model.SectionEvidence,
	}
	var hints []model.SectionType
	for _, section := range ordered {
		if hintSet[section] {
			hints = append(hints, section)
		}
	}
	return hints
}

func identity(s string) string { return s }

func compactLower(s string) string {
	return strings.ToLower(strings.ReplaceAll(s, " ", ""))
}
