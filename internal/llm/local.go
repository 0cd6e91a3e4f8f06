package llm

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// defaultLocalBaseURL targets an OpenAI-compatible local runtime
// (Ollama, llama.cpp server and friends all expose this surface).
const defaultLocalBaseURL = "http://localhost:11434/v1"

// newLocalClient creates a client for a local OpenAI-compatible model
// server. The local runtime needs no API key.
func newLocalClient(cfg Config) (Client, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultLocalBaseURL
	}

	model := cfg.Model
	if model == "" {
		model = "llama3.2"
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		// Local inference on CPU can be slow; be generous.
		timeout = 120 * time.Second
	}

	inner, err := newOpenAIClient(Config{
		APIKey:      "local",
		Model:       model,
		BaseURL:     baseURL,
		Timeout:     timeout,
		Temperature: cfg.Temperature,
		MaxTokens:   cfg.MaxTokens,
	})
	if err != nil {
		return nil, err
	}
	return &localClient{Client: inner, baseURL: baseURL}, nil
}

// localClient wraps the OpenAI-compatible client with a local identity.
type localClient struct {
	Client
	baseURL string
}

func (c *localClient) Provider() string { return "local" }

// probeLocal checks whether a local model server is answering. The probe is
// a cheap GET against the models listing with a short deadline so startup
// never hangs on an absent runtime.
func probeLocal(ctx context.Context, baseURL string) bool {
	if baseURL == "" {
		baseURL = defaultLocalBaseURL
	}
	probeCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	url := strings.TrimSuffix(baseURL, "/") + "/models"
	req, err := http.NewRequestWithContext(probeCtx, http.MethodGet, url, nil)
	if err != nil {
		return false
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return false
	}
	defer func() { _ = resp.Body.Close() }()

	return resp.StatusCode < http.StatusInternalServerError
}
