package engine

import (
	"context"

	"github.com/sweeply/sweep/internal/llm"
)

// MockClient is a test double for the model backend. Responses are consumed
// in order; when they run out the last one repeats.
type MockClient struct {
	Responses []llm.BatchResponse
	Err       error
	Calls     int
	Prompts   []string
}

// ClassifyFiles returns the next canned response.
func (m *MockClient) ClassifyFiles(_ context.Context, prompt string) (llm.BatchResponse, error) {
	m.Calls++
	m.Prompts = append(m.Prompts, prompt)
	if m.Err != nil {
		return llm.BatchResponse{}, m.Err
	}
	if len(m.Responses) == 0 {
		return llm.BatchResponse{}, nil
	}
	idx := m.Calls - 1
	if idx >= len(m.Responses) {
		idx = len(m.Responses) - 1
	}
	return m.Responses[idx], nil
}

// Provider identifies the mock in logs.
func (m *MockClient) Provider() string { return "mock" }
