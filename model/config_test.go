package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRetrievalConfig(t *testing.T) {
	config := DefaultRetrievalConfig()

	t.Run("Traversal depth matches intent depth", func(t *testing.T) {
		for _, intent := range []Intent{IntentQA, IntentAnalysis, IntentAudit} {
			tc, ok := config.TraversalConfigs[intent]
			require.True(t, ok, "Expected a traversal config for every intent")
			assert.Equal(t, intent.Depth(), tc.MaxDepth, "Expected traversal depth to match intent depth")
		}
	})

	t.Run("Audit traversal is unrestricted", func(t *testing.T) {
		tc := config.TraversalConfigFor(IntentAudit)
		assert.True(t, tc.Unrestricted(), "Expected AUDIT traversal to allow all edge types")
		assert.True(t, tc.Allows(EdgeTypeSupersedes), "Expected unrestricted config to allow any edge type")
	})

	t.Run("QA traversal follows allowlist", func(t *testing.T) {
		tc := config.TraversalConfigFor(IntentQA)
		assert.False(t, tc.Unrestricted(), "Expected QA traversal allowlist to be non-empty")
		assert.True(t, tc.Allows(EdgeTypeCovers), "Expected QA allowlist to contain covers")
		assert.False(t, tc.Allows(EdgeTypeSupersedes), "Expected QA allowlist to exclude supersedes")
	})

	t.Run("Unknown intent falls back to QA traversal", func(t *testing.T) {
		tc := config.TraversalConfigFor(Intent("unknown"))
		assert.Equal(t, config.TraversalConfigs[IntentQA], tc, "Expected fallback to the QA policy")
	})

	t.Run("QA generation is deterministic", func(t *testing.T) {
		assert.Equal(t, 0.0, config.TemperatureFor(IntentQA), "Expected temperature 0 for QA")
	})

	t.Run("Section boosts exist per intent", func(t *testing.T) {
		boosts := config.SectionBoosts
		assert.Contains(t, boosts[IntentQA], SectionDeclarations, "Expected QA to boost declarations")
		assert.Contains(t, boosts[IntentAudit], SectionEndorsements, "Expected AUDIT to boost endorsements")
		assert.Contains(t, boosts[IntentAudit], SectionLossRun, "Expected AUDIT to boost loss runs")
	})
}

func TestIntentDepth(t *testing.T) {
	assert.Equal(t, 1, IntentQA.Depth())
	assert.Equal(t, 2, IntentAnalysis.Depth())
	assert.Equal(t, 3, IntentAudit.Depth())
	assert.Equal(t, 1, Intent("something else").Depth(), "Expected unknown intents to default to depth 1")
}
