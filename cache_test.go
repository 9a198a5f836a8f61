package insurai

import (
	"testing"
	"time"

	"github.com/Shreekar11/insura-ai-sub005/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponseCache(t *testing.T) {
	workflowID := uuid.New()
	answer := &model.Answer{Text: "cached answer", Intent: model.IntentQA}

	t.Run("Set and get", func(t *testing.T) {
		cache := newResponseCache(time.Minute)
		cache.Set(workflowID, "what is the deductible", answer)

		got, ok := cache.Get(workflowID, "what is the deductible")
		require.True(t, ok)
		assert.Equal(t, "cached answer", got.Text)
		assert.Equal(t, 1, cache.Len())
	})

	t.Run("Miss on different query or workflow", func(t *testing.T) {
		cache := newResponseCache(time.Minute)
		cache.Set(workflowID, "what is the deductible", answer)

		_, ok := cache.Get(workflowID, "what is the limit")
		assert.False(t, ok)
		_, ok = cache.Get(uuid.New(), "what is the deductible")
		assert.False(t, ok)
	})

	t.Run("Expired entry dropped", func(t *testing.T) {
		cache := newResponseCache(time.Nanosecond)
		cache.Set(workflowID, "what is the deductible", answer)
		time.Sleep(time.Millisecond)

		_, ok := cache.Get(workflowID, "what is the deductible")
		assert.False(t, ok)
		assert.Equal(t, 0, cache.Len())
	})

	t.Run("Zero TTL never stores", func(t *testing.T) {
		cache := newResponseCache(0)
		cache.Set(workflowID, "what is the deductible", answer)
		assert.Equal(t, 0, cache.Len())
	})
}
