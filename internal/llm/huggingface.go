package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const huggingFaceEndpoint = "https://api-inference.huggingface.co/models/"

// defaultHFModel is a small instruct model the free inference tier serves.
const defaultHFModel = "microsoft/Phi-3-mini-4k-instruct"

// huggingFaceClient implements the Client interface for the Hugging Face
// inference API.
type huggingFaceClient struct {
	httpClient *http.Client
	baseURL    string
	token      string
	model      string
}

// newHuggingFaceClient creates a new Hugging Face inference API client.
func newHuggingFaceClient(cfg Config) (Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("Hugging Face API token is required")
	}

	model := cfg.Model
	if model == "" {
		model = defaultHFModel
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = huggingFaceEndpoint
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}

	return &huggingFaceClient{
		token:   cfg.APIKey,
		model:   model,
		baseURL: strings.TrimSuffix(baseURL, "/") + "/",
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

func (c *huggingFaceClient) Provider() string { return "huggingface" }

// ClassifyFiles sends a batch classification request to the inference API.
// A 503 means the model is still loading on the free tier; one warmup wait
// and retry is performed before giving up.
func (c *huggingFaceClient) ClassifyFiles(ctx context.Context, prompt string) (BatchResponse, error) {
	formatted := fmt.Sprintf("<|system|>\n%s<|end|>\n<|user|>\n%s<|end|>\n<|assistant|>\n",
		classifySystemPrompt, prompt)

	payload := map[string]any{
		"inputs": formatted,
		"parameters": map[string]any{
			"max_new_tokens":   500,
			"temperature":      0.3,
			"return_full_text": false,
		},
	}

	body, err := c.post(ctx, payload)
	if err != nil {
		return BatchResponse{}, err
	}

	content, err := extractGeneratedText(body)
	if err != nil {
		return BatchResponse{}, err
	}

	labels, err := parseLabels(content)
	if err != nil {
		return BatchResponse{}, err
	}

	return BatchResponse{Labels: labels, Raw: content}, nil
}

func (c *huggingFaceClient) post(ctx context.Context, payload map[string]any) ([]byte, error) {
	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	doRequest := func() (*http.Response, error) {
		req, reqErr := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+c.model, strings.NewReader(string(jsonBody)))
		if reqErr != nil {
			return nil, fmt.Errorf("failed to create request: %w", reqErr)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+c.token)
		return c.httpClient.Do(req)
	}

	resp, err := doRequest()
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	if resp.StatusCode == http.StatusServiceUnavailable {
		_ = resp.Body.Close()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(10 * time.Second):
		}
		resp, err = doRequest()
		if err != nil {
			return nil, fmt.Errorf("request failed after warmup: %w", err)
		}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Hugging Face API error (status %d): %s", resp.StatusCode, string(body))
	}

	return body, nil
}

// extractGeneratedText handles both response shapes the inference API
// returns: a list of generation objects or a single object.
func extractGeneratedText(body []byte) (string, error) {
	var list []struct {
		GeneratedText string `json:"generated_text"`
	}
	if err := json.Unmarshal(body, &list); err == nil && len(list) > 0 {
		return list[0].GeneratedText, nil
	}

	var single struct {
		GeneratedText string `json:"generated_text"`
	}
	if err := json.Unmarshal(body, &single); err == nil && single.GeneratedText != "" {
		return single.GeneratedText, nil
	}

	return "", fmt.Errorf("unrecognized inference API response: %s", truncate(string(body), 200))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
