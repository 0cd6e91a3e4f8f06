package engine

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sweeply/sweep/internal/common"
	"github.com/sweeply/sweep/internal/llm"
	"github.com/sweeply/sweep/internal/model"
	"github.com/sweeply/sweep/internal/prefs"
)

func records(names ...string) []model.FileRecord {
	recs := make([]model.FileRecord, len(names))
	for i, n := range names {
		recs[i] = model.FileRecord{
			Path: "/scan/" + n,
			Name: n,
			Ext:  filepath.Ext(n),
		}
	}
	return recs
}

func fastRetry() common.RetryOptions {
	return common.RetryOptions{MaxAttempts: 2, InitialDelay: time.Millisecond, MaxDelay: time.Millisecond}
}

func TestCategorize_RuleOnlyMode(t *testing.T) {
	e := New(nil, nil, nil, Options{})

	files := records("report.pdf", "photo.jpg", "mystery.unknownext")
	assignments := e.Categorize(context.Background(), files)

	require.Len(t, assignments, 3)
	assert.Equal(t, model.CategoryDocuments, assignments[0].Category)
	assert.Equal(t, model.CategoryImages, assignments[1].Category)
	assert.Equal(t, model.CategoryOther, assignments[2].Category)
	for _, a := range assignments {
		assert.Equal(t, model.SourceRule, a.Source)
	}
	assert.Equal(t, 0, e.ModelCalls(), "rule-based mode must not call the model")
}

func TestCategorize_ModelBackend(t *testing.T) {
	mock := &MockClient{Responses: []llm.BatchResponse{
		{Labels: []string{"Documents", "Images"}},
	}}
	e := New(mock, nil, nil, Options{Retry: fastRetry()})

	assignments := e.Categorize(context.Background(), records("a.dat", "b.dat"))

	require.Len(t, assignments, 2)
	assert.Equal(t, model.CategoryDocuments, assignments[0].Category)
	assert.Equal(t, model.CategoryImages, assignments[1].Category)
	assert.Equal(t, model.SourceModel, assignments[0].Source)
	assert.Equal(t, "Documents", assignments[0].RawModelText)
	assert.Equal(t, 1, mock.Calls)
}

func TestCategorize_MismatchFallsBackForRemainder(t *testing.T) {
	// Three files, model returns two labels: the third gets the rule table.
	mock := &MockClient{Responses: []llm.BatchResponse{
		{Labels: []string{"documents", "images"}},
	}}
	e := New(mock, nil, nil, Options{Retry: fastRetry()})

	assignments := e.Categorize(context.Background(), records("a.dat", "b.dat", "c.mp3"))

	require.Len(t, assignments, 3)
	assert.Equal(t, model.SourceModel, assignments[0].Source)
	assert.Equal(t, model.SourceModel, assignments[1].Source)
	assert.Equal(t, model.SourceRule, assignments[2].Source)
	assert.Equal(t, model.CategoryAudio, assignments[2].Category)
}

func TestCategorize_BackendErrorFallsBackToRules(t *testing.T) {
	mock := &MockClient{Err: errors.New("backend down")}
	e := New(mock, nil, nil, Options{Retry: fastRetry()})

	assignments := e.Categorize(context.Background(), records("a.pdf", "b.jpg"))

	require.Len(t, assignments, 2)
	assert.Equal(t, model.CategoryDocuments, assignments[0].Category)
	assert.Equal(t, model.CategoryImages, assignments[1].Category)
	for _, a := range assignments {
		assert.Equal(t, model.SourceRule, a.Source)
	}
}

func TestCategorize_PreferenceStoreShortCircuits(t *testing.T) {
	store, err := prefs.Load(filepath.Join(t.TempDir(), "preferences.json"))
	require.NoError(t, err)
	store.Record(".blend", model.CategoryCode)

	mock := &MockClient{Responses: []llm.BatchResponse{{Labels: []string{"images"}}}}
	e := New(mock, store, nil, Options{Retry: fastRetry()})

	assignments := e.Categorize(context.Background(), records("scene.blend", "photo.raw"))

	require.Len(t, assignments, 2)
	assert.Equal(t, model.SourceCache, assignments[0].Source)
	assert.Equal(t, model.CategoryCode, assignments[0].Category)
	assert.Equal(t, model.SourceModel, assignments[1].Source)

	// Only the cache miss went to the backend.
	require.Len(t, mock.Prompts, 1)
	assert.Contains(t, mock.Prompts[0], "photo.raw")
	assert.NotContains(t, mock.Prompts[0], "scene.blend")
}

func TestCategorize_AllCacheHitsSkipBackend(t *testing.T) {
	store, err := prefs.Load(filepath.Join(t.TempDir(), "preferences.json"))
	require.NoError(t, err)
	store.Record(".pdf", model.CategoryDocuments)

	mock := &MockClient{}
	e := New(mock, store, nil, Options{Retry: fastRetry()})

	assignments := e.Categorize(context.Background(), records("a.pdf", "b.pdf"))

	require.Len(t, assignments, 2)
	assert.Equal(t, 0, mock.Calls)
}

func TestCategorize_ModelResultsLearnedIntoStore(t *testing.T) {
	store, err := prefs.Load(filepath.Join(t.TempDir(), "preferences.json"))
	require.NoError(t, err)

	mock := &MockClient{Responses: []llm.BatchResponse{{Labels: []string{"audio"}}}}
	e := New(mock, store, nil, Options{Retry: fastRetry()})

	e.Categorize(context.Background(), records("track.opus"))

	cat, ok := store.Lookup(model.FileRecord{Name: "other.opus", Ext: ".opus"})
	require.True(t, ok, "model decision should be written back as a preference")
	assert.Equal(t, model.CategoryAudio, cat)
}

func TestCategorize_Batching(t *testing.T) {
	labels := make([]string, 2)
	for i := range labels {
		labels[i] = "other"
	}
	mock := &MockClient{Responses: []llm.BatchResponse{{Labels: labels}}}
	e := New(mock, nil, nil, Options{BatchSize: 2, Retry: fastRetry()})

	e.Categorize(context.Background(), records("a.x", "b.x", "c.x", "d.x", "e.x"))

	// 5 files at batch size 2 → 3 backend calls.
	assert.Equal(t, 3, mock.Calls)
}

func TestCategorize_EveryFileGetsExactlyOneAssignment(t *testing.T) {
	// Mismatched, erratic model output must still leave no file unassigned.
	mock := &MockClient{Responses: []llm.BatchResponse{
		{Labels: []string{"nonsense-label"}},
	}}
	e := New(mock, nil, nil, Options{Retry: fastRetry()})

	files := records("a.q", "b.q", "c.q", "d.q")
	assignments := e.Categorize(context.Background(), files)

	require.Len(t, assignments, len(files))
	for i, a := range assignments {
		assert.Equal(t, files[i].Path, a.FilePath)
		assert.NotEmpty(t, a.Category)
		assert.NotEmpty(t, a.Source)
	}
}
