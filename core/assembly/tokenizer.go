package assembly

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

// TokenCounter estimates how many tokens a text occupies. Exactness is
// not required, boundedness is; callers treat the count as a budget unit.
type TokenCounter interface {
	Count(text string) int
}

// TiktokenCounter counts tokens with a tiktoken encoding, lazily
// initialized on first use. If the encoding cannot be loaded it falls
// back to the character estimate and keeps working.
type TiktokenCounter struct {
	encoding string
	logger   *slog.Logger

	once    sync.Once
	enc     *tiktoken.Tiktoken
	initErr error
}

// NewTiktokenCounter creates a counter for the cl100k_base encoding.
func NewTiktokenCounter(logger *slog.Logger) *TiktokenCounter {
	if logger == nil {
		logger = slog.Default()
	}
	return &TiktokenCounter{encoding: "cl100k_base", logger: logger}
}

// Count returns the token count of the text, or the character estimate if
// the encoding is unavailable.
func (t *TiktokenCounter) Count(text string) int {
	if text == "" {
		return 0
	}
	t.once.Do(func() {
		enc, err := tiktoken.GetEncoding(t.encoding)
		if err != nil {
			t.initErr = err
			t.logger.Warn("tiktoken encoding unavailable, falling back to character estimate",
				slog.String("encoding", t.encoding),
				slog.Any("error", err))
			return
		}
		t.enc = enc
	})
	if t.initErr != nil {
		return EstimateTokens(text)
	}
	return len(t.enc.Encode(text, nil, nil))
}

// EstimateCounter is a TokenCounter using the characters/4 approximation.
// It needs no model data and is fully deterministic, which makes it the
// default for tests.
type EstimateCounter struct{}

// Count returns the character-based token estimate.
func (EstimateCounter) Count(text string) int {
	return EstimateTokens(text)
}

// EstimateTokens approximates the token count as len(text)/4, rounding up
// so non-empty text never counts as zero tokens.
func EstimateTokens(text string) int {
	if text == "" {
		return 0
	}
	n := (len(text) + 3) / 4
	return n
}

// truncateToTokens shortens text at a word boundary so it fits within
// maxTokens according to the counter. Returns the empty string when not
// even one word fits.
func truncateToTokens(text string, maxTokens int, counter TokenCounter) string {
	if maxTokens <= 0 {
		return ""
	}
	if counter.Count(text) <= maxTokens {
		return text
	}

	words := strings.Fields(text)
	low, high := 0, len(words)
	for low < high {
		mid := (low + high + 1) / 2
		candidate := strings.Join(words[:mid], " ")
		if counter.Count(candidate) <= maxTokens {
			low = mid
		} else {
			high = mid - 1
		}
	}
	if low == 0 {
		return ""
	}
	return strings.Join(words[:low], " ")
}
