// Package llm provides the model backends used for file categorization.
//
// Backends form a closed set (local runtime, OpenAI, Hugging Face inference
// API) behind one Client interface. Detect probes availability once at
// startup; a run never mixes backends within a batch.
package llm

import (
	"context"
	"time"
)

// Client defines the interface for model backends.
type Client interface {
	// ClassifyFiles sends a batch prompt and returns one label per file,
	// in prompt order.
	ClassifyFiles(ctx context.Context, prompt string) (BatchResponse, error)
	// Provider identifies the backend for logging and run summaries.
	Provider() string
}

// BatchResponse contains the backend's classification result.
type BatchResponse struct {
	// Labels holds one raw category label per prompt line, positionally
	// matched to the batch. Normalization happens in the engine.
	Labels []string
	// Raw is the unparsed model output, kept for diagnostics.
	Raw string
}

// Config holds configuration for the model backends.
type Config struct {
	Provider    string
	APIKey      string
	Model       string
	BaseURL     string
	Timeout     time.Duration
	Temperature float64
	MaxTokens   int
}
