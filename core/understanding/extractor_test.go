package understanding

import (
	"testing"

	"github.com/Shreekar11/insura-ai-sub005/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewExtractor(t *testing.T) {
	t.Run("Create new extractor", func(t *testing.T) {
		extractor := NewExtractor(DefaultVocabulary())
		require.NotNil(t, extractor, "Expected NewExtractor to return a non-nil instance")
		assert.NotEmpty(t, extractor.patterns, "Expected extractor to have entity patterns")
	})
}

func TestExtract(t *testing.T) {
	extractor := NewExtractor(DefaultVocabulary())

	t.Run("Policy numbers from comparison query", func(t *testing.T) {
		entities := extractor.Extract("Compare BI and PD limits between policy POL-12345 and POL-67890")
		assert.Equal(t, []string{"POL-12345", "POL-67890"}, entities.PolicyNumbers, "Expected both policy numbers")
		assert.Contains(t, entities.CoverageTypes, "bodily injury", "Expected bi abbreviation resolved")
		assert.Contains(t, entities.CoverageTypes, "property damage", "Expected pd abbreviation resolved")
	})

	t.Run("Mentioning the phrase policy number extracts nothing", func(t *testing.T) {
		entities := extractor.Extract("What is the policy number?")
		assert.Empty(t, entities.PolicyNumbers, "Expected no policy numbers from the bare phrase")
		assert.Empty(t, entities.SectionHints, "Expected no section hints")
	})

	t.Run("Dates in multiple formats", func(t *testing.T) {
		entities := extractor.Extract("coverage effective 2024-01-15, renewed 3/1/2025 and expiring March 1, 2026")
		assert.Contains(t, entities.Dates, "2024-01-15", "Expected ISO date")
		assert.Contains(t, entities.Dates, "3/1/2025", "Expected slash date")
		assert.Contains(t, entities.Dates, "March 1, 2026", "Expected written date")
	})

	t.Run("Monetary amounts", func(t *testing.T) {
		entities := extractor.Extract("Is the $1,000,000 limit enough or do we need 2 million")
		assert.Contains(t, entities.Amounts, "$1,000,000", "Expected currency amount")
		assert.Contains(t, entities.Amounts, "2 million", "Expected spelled-out amount")
	})

	t.Run("Duplicate values are kept once", func(t *testing.T) {
		entities := extractor.Extract("Does POL-12345 supersede pol-12345 or POL-12345?")
		assert.Equal(t, []string{"POL-12345"}, entities.PolicyNumbers, "Expected normalized deduplication")
	})

	t.Run("Coverage names are not reported as names", func(t *testing.T) {
		entities := extractor.Extract("Does the General Liability policy of Acme Widgets Inc cover flooding")
		assert.Contains(t, entities.CoverageTypes, "General Liability", "Expected full coverage name as written")
		assert.NotContains(t, entities.Names, "General Liability", "Expected coverage name filtered from names")
		require.NotEmpty(t, entities.Names, "Expected the insured name to be extracted")
		assert.Contains(t, entities.Names[0], "Acme Widgets", "Expected capitalized company name")
	})

	t.Run("Section hints from keywords", func(t *testing.T) {
		entities := extractor.Extract("List the exclusions and endorsements for this schedule")
		assert.Equal(t,
			[]model.SectionType{model.SectionExclusions, model.SectionEndorsements, model.SectionSchedule},
			entities.SectionHints,
			"Expected hints in canonical section order")
	})

	t.Run("Locations", func(t *testing.T) {
		entities := extractor.Extract("the insured property at 123 Main Street in Springfield, IL")
		assert.Contains(t, entities.Locations, "123 Main Street", "Expected street address")
		assert.Contains(t, entities.Locations, "Springfield, IL", "Expected city and state")
	})
}
