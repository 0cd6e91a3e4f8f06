package organize

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sweeply/sweep/internal/model"
)

func record(t *testing.T, dir, name, content string) model.FileRecord {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	info, err := os.Stat(path)
	require.NoError(t, err)
	return model.FileRecord{
		Path:    path,
		Name:    filepath.Base(name),
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}
}

func assign(rec model.FileRecord, cat model.Category) model.CategoryAssignment {
	return model.CategoryAssignment{FilePath: rec.Path, Category: cat, Source: model.SourceRule}
}

func TestPlan_FlatMode(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	rec := record(t, src, "report.pdf", "pdf")

	o := New(nil)
	plan := o.Plan([]model.FileRecord{rec},
		[]model.CategoryAssignment{assign(rec, model.CategoryDocuments)},
		Options{Root: dst, Mode: ModeFlat})

	require.Len(t, plan, 1)
	assert.Equal(t, filepath.Join(dst, "documents", "report.pdf"), plan[0].Destination)
}

func TestPlan_DateMode(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	rec := record(t, src, "photo.jpg", "jpg")
	rec.ModTime = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	o := New(nil)
	plan := o.Plan([]model.FileRecord{rec},
		[]model.CategoryAssignment{assign(rec, model.CategoryImages)},
		Options{Root: dst, Mode: ModeDate})

	require.Len(t, plan, 1)
	assert.Equal(t, filepath.Join(dst, "images", "2026-03", "photo.jpg"), plan[0].Destination)
}

func TestPlan_ProjectModeHeuristic(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	rec := record(t, src, "website-redesign/mock.png", "png")

	o := New(nil)
	plan := o.Plan([]model.FileRecord{rec},
		[]model.CategoryAssignment{assign(rec, model.CategoryImages)},
		Options{Root: dst, Mode: ModeProject})

	require.Len(t, plan, 1)
	assert.Equal(t, filepath.Join(dst, "images", "website-redesign", "mock.png"), plan[0].Destination)
}

func TestPlan_ProjectModeExplicitTag(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	rec := record(t, src, "mock.png", "png")

	o := New(nil)
	plan := o.Plan([]model.FileRecord{rec},
		[]model.CategoryAssignment{assign(rec, model.CategoryImages)},
		Options{Root: dst, Mode: ModeProject, Project: "client-x"})

	require.Len(t, plan, 1)
	assert.Equal(t, filepath.Join(dst, "images", "client-x", "mock.png"), plan[0].Destination)
}

func TestPlan_OnlyMovesAssignedFiles(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	rec := record(t, src, "a.txt", "a")

	o := New(nil)
	// Assignment references a path that was never scanned.
	plan := o.Plan([]model.FileRecord{rec},
		[]model.CategoryAssignment{{FilePath: "/elsewhere/b.txt", Category: model.CategoryOther}},
		Options{Root: dst})

	assert.Empty(t, plan)
}

func TestApply_MovesFiles(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	rec := record(t, src, "report.pdf", "content")

	o := New(nil)
	plan := o.Plan([]model.FileRecord{rec},
		[]model.CategoryAssignment{assign(rec, model.CategoryDocuments)},
		Options{Root: dst})
	results := o.Apply(context.Background(), plan, "run-1")

	require.Len(t, results, 1)
	assert.Equal(t, model.MoveStatusMoved, results[0].Status)

	moved, err := os.ReadFile(results[0].Destination)
	require.NoError(t, err)
	assert.Equal(t, "content", string(moved))

	_, err = os.Stat(rec.Path)
	assert.True(t, os.IsNotExist(err), "source should be gone after move")
}

func TestApply_CollisionNeverOverwrites(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	rec := record(t, src, "notes.txt", "new content")

	occupant := filepath.Join(dst, "documents", "notes.txt")
	require.NoError(t, os.MkdirAll(filepath.Dir(occupant), 0o755))
	require.NoError(t, os.WriteFile(occupant, []byte("original occupant"), 0o644))

	o := New(nil)
	plan := o.Plan([]model.FileRecord{rec},
		[]model.CategoryAssignment{assign(rec, model.CategoryDocuments)},
		Options{Root: dst})
	results := o.Apply(context.Background(), plan, "run-1")

	require.Len(t, results, 1)
	require.Equal(t, model.MoveStatusMoved, results[0].Status)
	assert.Equal(t, filepath.Join(dst, "documents", "notes (1).txt"), results[0].Destination)

	// Occupant untouched, moved content intact.
	orig, err := os.ReadFile(occupant)
	require.NoError(t, err)
	assert.Equal(t, "original occupant", string(orig))

	moved, err := os.ReadFile(results[0].Destination)
	require.NoError(t, err)
	assert.Equal(t, "new content", string(moved))
}

func TestApply_SuffixIncrementsUntilFree(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	rec := record(t, src, "a.txt", "third copy")

	docDir := filepath.Join(dst, "documents")
	require.NoError(t, os.MkdirAll(docDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(docDir, "a.txt"), []byte("1"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(docDir, "a (1).txt"), []byte("2"), 0o644))

	o := New(nil)
	plan := o.Plan([]model.FileRecord{rec},
		[]model.CategoryAssignment{assign(rec, model.CategoryDocuments)},
		Options{Root: dst})
	results := o.Apply(context.Background(), plan, "run-1")

	require.Len(t, results, 1)
	assert.Equal(t, filepath.Join(docDir, "a (2).txt"), results[0].Destination)
}

func TestApply_FailureDoesNotAbortBatch(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	good := record(t, src, "good.txt", "ok")

	o := New(nil)
	plan := []PlannedMove{
		{Source: filepath.Join(src, "missing.txt"), Destination: filepath.Join(dst, "other", "missing.txt"), Category: model.CategoryOther},
		{Source: good.Path, Destination: filepath.Join(dst, "documents", "good.txt"), Category: model.CategoryDocuments},
	}
	results := o.Apply(context.Background(), plan, "run-1")

	require.Len(t, results, 2)
	assert.Equal(t, model.MoveStatusFailed, results[0].Status)
	assert.NotEmpty(t, results[0].Reason)
	assert.Equal(t, model.MoveStatusMoved, results[1].Status)
}

func TestDryRunPlanMatchesLivePlan(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	recs := []model.FileRecord{
		record(t, src, "a.pdf", "a"),
		record(t, src, "b.jpg", "b"),
	}
	assignments := []model.CategoryAssignment{
		assign(recs[0], model.CategoryDocuments),
		assign(recs[1], model.CategoryImages),
	}

	o := New(nil)
	opts := Options{Root: dst, Mode: ModeFlat}

	dryPlan := o.Plan(recs, assignments, opts)
	livePlan := o.Plan(recs, assignments, opts)
	assert.Equal(t, dryPlan, livePlan)

	// Planning must not create anything under the destination root.
	entries, err := os.ReadDir(dst)
	require.NoError(t, err)
	assert.Empty(t, entries, "planning alone must not touch the filesystem")

	// Sources unchanged.
	for _, r := range recs {
		_, err := os.Stat(r.Path)
		require.NoError(t, err)
	}
}

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"normal.txt", "normal.txt"},
		{`bad<>:"/\|?*.txt`, "bad_________.txt"},
		{"  .dotted.  ", "dotted"},
		{"", "unnamed"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, sanitizeName(tt.in))
	}
}

func TestRollback_RestoresOriginalPaths(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	rec := record(t, src, "report.pdf", "content")

	o := New(nil)
	plan := o.Plan([]model.FileRecord{rec},
		[]model.CategoryAssignment{assign(rec, model.CategoryDocuments)},
		Options{Root: dst})
	applied := o.Apply(context.Background(), plan, "run-1")
	require.Equal(t, model.MoveStatusMoved, applied[0].Status)

	records := []model.MoveRecord{{
		Source:      rec.Path,
		Destination: applied[0].Destination,
		Category:    model.CategoryDocuments,
		RunID:       "run-1",
	}}
	results := o.Rollback(context.Background(), records)

	require.Len(t, results, 1)
	assert.Equal(t, model.MoveStatusMoved, results[0].Status)

	restored, err := os.ReadFile(rec.Path)
	require.NoError(t, err)
	assert.Equal(t, "content", string(restored))
	_, err = os.Stat(applied[0].Destination)
	assert.True(t, os.IsNotExist(err))
}

func TestRollback_MissingDestinationFails(t *testing.T) {
	o := New(nil)
	results := o.Rollback(context.Background(), []model.MoveRecord{{
		Source:      filepath.Join(t.TempDir(), "a.txt"),
		Destination: filepath.Join(t.TempDir(), "gone.txt"),
		Category:    model.CategoryOther,
	}})

	require.Len(t, results, 1)
	assert.Equal(t, model.MoveStatusFailed, results[0].Status)
}

type fakeMoveLog struct {
	runID   string
	records []model.MoveRecord
}

func (f *fakeMoveLog) SaveMoves(_ context.Context, runID string, records []model.MoveRecord) error {
	f.runID = runID
	f.records = append(f.records, records...)
	return nil
}

func TestApply_RecordsMovesInLog(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	rec := record(t, src, "a.txt", "a")

	log := &fakeMoveLog{}
	o := New(nil)
	o.MoveLog = log

	plan := o.Plan([]model.FileRecord{rec},
		[]model.CategoryAssignment{assign(rec, model.CategoryDocuments)},
		Options{Root: dst})
	o.Apply(context.Background(), plan, "run-42")

	assert.Equal(t, "run-42", log.runID)
	require.Len(t, log.records, 1)
	assert.Equal(t, rec.Path, log.records[0].Source)
	assert.Equal(t, model.CategoryDocuments, log.records[0].Category)
}
