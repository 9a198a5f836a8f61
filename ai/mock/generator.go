package mock

import (
	"context"

	"github.com/Shreekar11/insura-ai-sub005/ai"
)

// MockGenerator is a test double for ai.Generator. If GenerateFunc is set
// it is called instead of the default canned answer.
type MockGenerator struct {
	GenerateFunc func(ctx context.Context, request ai.GenerationRequest) (ai.GenerationResult, error)

	// Response is the default answer text. Empty means a generic one.
	Response string

	callCount   int
	lastRequest ai.GenerationRequest
}

// NewMockGenerator creates a mock generator answering with a canned
// response that cites every provided source.
func NewMockGenerator() *MockGenerator {
	return &MockGenerator{}
}

// Generate records the request and returns the canned answer.
func (m *MockGenerator) Generate(ctx context.Context, request ai.GenerationRequest) (ai.GenerationResult, error) {
	m.callCount++
	m.lastRequest = request
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, request)
	}
	text := m.Response
	if text == "" {
		text = "Answer based on the provided policy context."
	}
	return ai.GenerationResult{
		Text:           text,
		CitedSourceIDs: request.SourceIDs,
	}, nil
}

// CallCount returns how many times Generate was called.
func (m *MockGenerator) CallCount() int {
	return m.callCount
}

// LastRequest returns the most recent generation request, for assertions
// on temperature and context content.
func (m *MockGenerator) LastRequest() ai.GenerationRequest {
	return m.lastRequest
}
