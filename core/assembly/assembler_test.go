package assembly

import (
	"strings"
	"testing"

	"github.com/Shreekar11/insura-ai-sub005/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assemblyConfig(maxTokens, fullText, summaryMax int) *model.RetrievalConfig {
	config := model.DefaultRetrievalConfig()
	config.MaxContextTokens = maxTokens
	config.FullTextCount = fullText
	config.SummaryMaxTokens = summaryMax
	return &config
}

func result(sourceID, content string, score float64) *model.MergedResult {
	return &model.MergedResult{SourceID: sourceID, Kind: model.ResultKindVector, Content: content, Score: score}
}

func TestAssemble(t *testing.T) {
	counter := EstimateCounter{}

	t.Run("Top results included at full length", func(t *testing.T) {
		assembler := NewAssembler(counter, assemblyConfig(1000, 2, 10))
		long := strings.Repeat("coverage terms apply here ", 20)

		assembled, err := assembler.Assemble([]*model.MergedResult{
			result("a", long, 0.9),
			result("b", long, 0.8),
			result("c", long, 0.7),
		})
		require.NoError(t, err)
		require.Len(t, assembled.Segments, 3)
		assert.False(t, assembled.Segments[0].Summarized, "Expected first result at full length")
		assert.False(t, assembled.Segments[1].Summarized, "Expected second result at full length")
		assert.True(t, assembled.Segments[2].Summarized, "Expected third result summarized")
		assert.LessOrEqual(t, assembled.Segments[2].Tokens, 10, "Expected summary capped at summary token length")
	})

	t.Run("Budget is never exceeded", func(t *testing.T) {
		assembler := NewAssembler(counter, assemblyConfig(50, 3, 120))
		long := strings.Repeat("policy wording ", 30)

		assembled, err := assembler.Assemble([]*model.MergedResult{
			result("a", long, 0.9),
			result("b", long, 0.8),
			result("c", long, 0.7),
		})
		require.NoError(t, err)
		assert.LessOrEqual(t, assembled.TotalTokens, 50, "Expected hard budget honored")
		require.NotEmpty(t, assembled.Segments)
		assert.True(t, assembled.Segments[len(assembled.Segments)-1].Summarized, "Expected last item truncated to fit")
	})

	t.Run("Results ordered by score before inclusion", func(t *testing.T) {
		assembler := NewAssembler(counter, assemblyConfig(1000, 3, 120))
		assembled, err := assembler.Assemble([]*model.MergedResult{
			result("low", "low score text", 0.1),
			result("high", "high score text", 0.9),
		})
		require.NoError(t, err)
		require.Len(t, assembled.SourceIDs, 2)
		assert.Equal(t, "high", assembled.SourceIDs[0], "Expected highest score first")
	})

	t.Run("Truncation happens at word boundaries", func(t *testing.T) {
		assembler := NewAssembler(counter, assemblyConfig(5, 0, 5))
		assembled, err := assembler.Assemble([]*model.MergedResult{
			result("a", "endorsement seven amends the liability limits of the policy", 0.9),
		})
		require.NoError(t, err)
		require.Len(t, assembled.Segments, 1)
		text := assembled.Segments[0].Text
		assert.NotContains(t, text, "  ", "Expected clean joining")
		assert.True(t, strings.HasPrefix("endorsement seven amends the liability limits of the policy", text),
			"Expected a word-boundary prefix, got %q", text)
		assert.LessOrEqual(t, assembled.TotalTokens, 5)
	})

	t.Run("Missing source identifier is a malformed payload", func(t *testing.T) {
		assembler := NewAssembler(counter, assemblyConfig(100, 3, 120))
		_, err := assembler.Assemble([]*model.MergedResult{result("", "text", 0.9)})
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrContextAssembly, "Expected the context assembly sentinel")
	})

	t.Run("Empty content is skipped without error", func(t *testing.T) {
		assembler := NewAssembler(counter, assemblyConfig(100, 3, 120))
		assembled, err := assembler.Assemble([]*model.MergedResult{
			result("empty", "", 0.9),
			result("full", "real text", 0.8),
		})
		require.NoError(t, err)
		require.Len(t, assembled.Segments, 1)
		assert.Equal(t, "full", assembled.Segments[0].SourceID)
	})

	t.Run("No results assembles an empty context", func(t *testing.T) {
		assembler := NewAssembler(counter, assemblyConfig(100, 3, 120))
		assembled, err := assembler.Assemble(nil)
		require.NoError(t, err)
		assert.True(t, assembled.Empty())
		assert.Zero(t, assembled.TotalTokens)
	})
}

func TestTokenCounting(t *testing.T) {
	t.Run("Estimate rounds up", func(t *testing.T) {
		assert.Equal(t, 0, EstimateTokens(""))
		assert.Equal(t, 1, EstimateTokens("abc"))
		assert.Equal(t, 1, EstimateTokens("abcd"))
		assert.Equal(t, 2, EstimateTokens("abcde"))
	})

	t.Run("Truncate returns full text when it fits", func(t *testing.T) {
		text := "short text"
		assert.Equal(t, text, truncateToTokens(text, 100, EstimateCounter{}))
	})

	t.Run("Truncate to zero budget is empty", func(t *testing.T) {
		assert.Equal(t, "", truncateToTokens("anything at all", 0, EstimateCounter{}))
	})
}
