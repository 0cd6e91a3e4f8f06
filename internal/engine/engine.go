// Package engine drives file categorization: preference store first, then
// the selected model backend, with the rule table as the total fallback.
package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/sweeply/sweep/internal/common"
	"github.com/sweeply/sweep/internal/llm"
	"github.com/sweeply/sweep/internal/model"
	"github.com/sweeply/sweep/internal/prefs"
)

// DefaultBatchSize is how many files are submitted to the model backend in
// one prompt. Batching amortizes call overhead; it is not a concurrency
// mechanism.
const DefaultBatchSize = 20

// Options configures the categorizer engine.
type Options struct {
	BatchSize int
	Retry     common.RetryOptions
}

// Engine assigns exactly one category per file per run.
type Engine struct {
	client llm.Client
	store  *prefs.Store
	logger *slog.Logger
	opts   Options

	modelCalls int
}

// New creates a categorizer engine. A nil client means rule-based mode; the
// store may be nil for runs that should not consult or learn preferences.
func New(client llm.Client, store *prefs.Store, logger *slog.Logger, opts Options) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = DefaultBatchSize
	}
	if opts.Retry.MaxAttempts == 0 {
		opts.Retry = common.RetryOptions{
			MaxAttempts:  3,
			InitialDelay: time.Second,
			MaxDelay:     30 * time.Second,
			Multiplier:   2.0,
		}
	}
	return &Engine{
		client: client,
		store:  store,
		logger: logger,
		opts:   opts,
	}
}

// Provider reports which backend this run uses ("rules" when none).
func (e *Engine) Provider() string {
	if e.client == nil {
		return "rules"
	}
	return e.client.Provider()
}

// ModelCalls reports how many backend calls were made, for run summaries
// and tests.
func (e *Engine) ModelCalls() int {
	return e.modelCalls
}

// Categorize produces exactly one CategoryAssignment per input record, in
// input order. The preference store short-circuits the backend per file;
// the remainder of each batch goes to the backend in one prompt; any file
// the backend cannot label falls back to the rule table.
func (e *Engine) Categorize(ctx context.Context, files []model.FileRecord) []model.CategoryAssignment {
	assignments := make([]model.CategoryAssignment, len(files))

	for start := 0; start < len(files); start += e.opts.BatchSize {
		end := start + e.opts.BatchSize
		if end > len(files) {
			end = len(files)
		}
		e.categorizeBatch(ctx, files[start:end], assignments[start:end])
	}

	return assignments
}

func (e *Engine) categorizeBatch(ctx context.Context, batch []model.FileRecord, out []model.CategoryAssignment) {
	// Preference hits first; they never hit the backend.
	pending := make([]int, 0, len(batch))
	for i, rec := range batch {
		if e.store != nil {
			if cat, ok := e.store.Lookup(rec); ok {
				out[i] = model.CategoryAssignment{
					FilePath: rec.Path,
					Category: cat,
					Source:   model.SourceCache,
				}
				continue
			}
		}
		pending = append(pending, i)
	}

	if len(pending) == 0 {
		return
	}

	if e.client == nil {
		e.applyRules(batch, out, pending)
		return
	}

	sub := make([]model.FileRecord, len(pending))
	for n, i := range pending {
		sub[n] = batch[i]
	}

	resp, err := e.classifyWithRetry(ctx, sub)
	if err != nil {
		e.logger.Warn("model batch failed, falling back to rule table",
			"provider", e.client.Provider(),
			"files", len(sub),
			"error", err)
		e.applyRules(batch, out, pending)
		return
	}

	if len(resp.Labels) != len(sub) {
		// Positional matching only holds for the lines we got; the
		// unmatched remainder takes the rule table.
		e.logger.Warn("model response line count does not match batch",
			"expected", len(sub),
			"got", len(resp.Labels))
	}

	for n, i := range pending {
		if n < len(resp.Labels) {
			cat := model.NormalizeCategory(resp.Labels[n])
			out[i] = model.CategoryAssignment{
				FilePath:     batch[i].Path,
				Category:     cat,
				Source:       model.SourceModel,
				RawModelText: resp.Labels[n],
			}
			if e.store != nil && batch[i].Ext != "" {
				e.store.Record(batch[i].Ext, cat)
			}
		} else {
			out[i] = model.CategoryAssignment{
				FilePath: batch[i].Path,
				Category: RuleCategory(batch[i]),
				Source:   model.SourceRule,
			}
		}
	}
}

func (e *Engine) classifyWithRetry(ctx context.Context, files []model.FileRecord) (llm.BatchResponse, error) {
	prompt := llm.BuildBatchPrompt(files)

	var resp llm.BatchResponse
	err := common.WithRetry(ctx, func() error {
		e.modelCalls++
		r, callErr := e.client.ClassifyFiles(ctx, prompt)
		if callErr != nil {
			return &common.RetryableError{Err: callErr, Retryable: true}
		}
		resp = r
		return nil
	}, e.opts.Retry)

	return resp, err
}

func (e *Engine) applyRules(batch []model.FileRecord, out []model.CategoryAssignment, indexes []int) {
	for _, i := range indexes {
		out[i] = model.CategoryAssignment{
			FilePath: batch[i].Path,
			Category: RuleCategory(batch[i]),
			Source:   model.SourceRule,
		}
	}
}
