package llm

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// NewClient creates a model backend client for an explicit provider.
func NewClient(cfg Config) (Client, error) {
	switch strings.ToLower(cfg.Provider) {
	case "local":
		return newLocalClient(cfg)
	case "openai":
		return newOpenAIClient(cfg)
	case "huggingface":
		return newHuggingFaceClient(cfg)
	default:
		return nil, fmt.Errorf("unsupported model provider: %s", cfg.Provider)
	}
}

// Detect selects a backend once per run by an explicit availability probe,
// in fixed order: local runtime, then OpenAI, then the Hugging Face
// inference API. A nil client means no backend is available and the run is
// rule-based. Credentials come from the environment unless the config
// already carries them.
func Detect(ctx context.Context, cfg Config, logger *slog.Logger) Client {
	if logger == nil {
		logger = slog.Default()
	}

	if cfg.Provider != "" && cfg.Provider != "auto" {
		client, err := NewClient(cfg)
		if err != nil {
			logger.Warn("configured model backend unavailable, falling back to rules",
				"provider", cfg.Provider, "error", err)
			return nil
		}
		return client
	}

	if probeLocal(ctx, cfg.BaseURL) {
		client, err := newLocalClient(cfg)
		if err == nil {
			logger.Info("using local model runtime", "model", cfg.Model)
			return client
		}
		logger.Warn("local runtime probe succeeded but client setup failed", "error", err)
	}

	if key := firstNonEmpty(cfg.APIKey, os.Getenv("OPENAI_API_KEY")); key != "" {
		client, err := newOpenAIClient(Config{
			APIKey:      key,
			Model:       cfg.Model,
			Timeout:     cfg.Timeout,
			Temperature: cfg.Temperature,
			MaxTokens:   cfg.MaxTokens,
		})
		if err == nil {
			logger.Info("using OpenAI backend")
			return client
		}
		logger.Warn("OpenAI backend unavailable", "error", err)
	}

	if token := os.Getenv("HUGGINGFACE_API_TOKEN"); token != "" {
		client, err := newHuggingFaceClient(Config{
			APIKey:  token,
			Model:   firstNonEmpty(cfg.Model, os.Getenv("HUGGINGFACE_MODEL")),
			Timeout: cfg.Timeout,
		})
		if err == nil {
			logger.Info("using Hugging Face inference API")
			return client
		}
		logger.Warn("Hugging Face backend unavailable", "error", err)
	}

	logger.Info("no model backend configured, using rule-based categorization")
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
