// Package organize computes destination paths for categorized files and
// performs the moves.
package organize

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/sweeply/sweep/internal/model"
)

// Mode selects the organized folder layout.
type Mode string

// Layout modes.
const (
	// ModeFlat lays out root/category.
	ModeFlat Mode = "flat"
	// ModeDate lays out root/category/2006-01 using the file's ModTime.
	ModeDate Mode = "date"
	// ModeProject lays out root/category/project.
	ModeProject Mode = "project"
)

// ParseMode validates a mode string.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeFlat, ModeDate, ModeProject:
		return Mode(s), nil
	case "":
		return ModeFlat, nil
	default:
		return "", fmt.Errorf("invalid organize mode: %q (want flat, date or project)", s)
	}
}

// Options configures destination computation.
type Options struct {
	// Root is the destination root directory.
	Root string
	// Mode selects the folder layout.
	Mode Mode
	// Project overrides the per-file project heuristic in ModeProject.
	Project string
}

// PlannedMove is one computed move. Plans are pure data: computing them
// never touches the filesystem, so a dry run and a live run share the
// exact same plan.
type PlannedMove struct {
	Source      string         `json:"source"`
	Destination string         `json:"destination"`
	Category    model.Category `json:"category"`
}

// Organizer plans and applies file moves.
type Organizer struct {
	logger *slog.Logger
	// MoveLog receives a record per successful move; nil disables logging.
	MoveLog MoveLogger
}

// MoveLogger persists move records for audit and rollback.
type MoveLogger interface {
	SaveMoves(ctx context.Context, runID string, records []model.MoveRecord) error
}

// NewRunID returns a sortable identifier for one organize run.
func NewRunID() string {
	return "run-" + time.Now().UTC().Format("20060102-150405")
}

// New creates an Organizer.
func New(logger *slog.Logger) *Organizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Organizer{logger: logger}
}

// Plan computes one PlannedMove per assignment. Files already at their
// computed destination are omitted.
func (o *Organizer) Plan(files []model.FileRecord, assignments []model.CategoryAssignment, opts Options) []PlannedMove {
	byPath := make(map[string]model.FileRecord, len(files))
	for _, f := range files {
		byPath[f.Path] = f
	}

	var plan []PlannedMove
	for _, a := range assignments {
		rec, ok := byPath[a.FilePath]
		if !ok {
			// A file may only be moved with a matching assignment; the
			// reverse also holds.
			continue
		}

		destDir := o.destinationDir(rec, a, opts)
		dest := filepath.Join(destDir, sanitizeName(rec.Name))
		if dest == rec.Path {
			continue
		}
		plan = append(plan, PlannedMove{
			Source:      rec.Path,
			Destination: dest,
			Category:    a.Category,
		})
	}
	return plan
}

func (o *Organizer) destinationDir(rec model.FileRecord, a model.CategoryAssignment, opts Options) string {
	dir := filepath.Join(opts.Root, a.Category.FolderName())

	switch opts.Mode {
	case ModeDate:
		dir = filepath.Join(dir, rec.ModTime.Format("2006-01"))
	case ModeProject:
		project := opts.Project
		if project == "" {
			project = projectTag(rec.Path)
		}
		if project != "" {
			dir = filepath.Join(dir, sanitizeName(project))
		}
	}
	return dir
}

// genericDirs are parent directories that carry no project meaning.
var genericDirs = map[string]bool{
	"downloads": true,
	"desktop":   true,
	"documents": true,
	"pictures":  true,
	"music":     true,
	"videos":    true,
	"tmp":       true,
	"temp":      true,
	"home":      true,
}

// projectTag derives a project name from the file's immediate parent
// directory, unless that parent is a generic location.
func projectTag(path string) string {
	parent := filepath.Base(filepath.Dir(path))
	if parent == "." || parent == string(os.PathSeparator) {
		return ""
	}
	if genericDirs[strings.ToLower(parent)] {
		return ""
	}
	return parent
}

// Apply performs the planned moves, best-effort: an individual failure is
// recorded and the batch continues. Successful moves are appended to the
// move log under runID.
func (o *Organizer) Apply(ctx context.Context, plan []PlannedMove, runID string) []model.MoveResult {
	results := make([]model.MoveResult, 0, len(plan))
	var records []model.MoveRecord

	for _, pm := range plan {
		if err := ctx.Err(); err != nil {
			results = append(results, model.MoveResult{
				Source: pm.Source, Destination: pm.Destination,
				Category: pm.Category, Status: model.MoveStatusSkipped, Reason: err.Error(),
			})
			continue
		}

		dest, err := o.moveFile(pm.Source, pm.Destination)
		if err != nil {
			o.logger.Warn("move failed", "source", pm.Source, "dest", pm.Destination, "error", err)
			results = append(results, model.MoveResult{
				Source: pm.Source, Destination: pm.Destination,
				Category: pm.Category, Status: model.MoveStatusFailed, Reason: err.Error(),
			})
			continue
		}

		results = append(results, model.MoveResult{
			Source: pm.Source, Destination: dest,
			Category: pm.Category, Status: model.MoveStatusMoved,
		})
		records = append(records, model.MoveRecord{
			Source:      pm.Source,
			Destination: dest,
			Category:    pm.Category,
			RunID:       runID,
			MovedAt:     time.Now(),
		})
	}

	if o.MoveLog != nil && len(records) > 0 {
		if err := o.MoveLog.SaveMoves(ctx, runID, records); err != nil {
			o.logger.Warn("failed to persist move log", "run_id", runID, "error", err)
		}
	}

	return results
}

// Rollback moves previously recorded moves back to their original
// locations, newest first. Like Apply it is best-effort per item.
func (o *Organizer) Rollback(ctx context.Context, records []model.MoveRecord) []model.MoveResult {
	results := make([]model.MoveResult, 0, len(records))

	for i := len(records) - 1; i >= 0; i-- {
		r := records[i]
		if err := ctx.Err(); err != nil {
			results = append(results, model.MoveResult{
				Source: r.Destination, Destination: r.Source,
				Category: r.Category, Status: model.MoveStatusSkipped, Reason: err.Error(),
			})
			continue
		}

		dest, err := o.moveFile(r.Destination, r.Source)
		if err != nil {
			o.logger.Warn("rollback failed", "source", r.Destination, "dest", r.Source, "error", err)
			results = append(results, model.MoveResult{
				Source: r.Destination, Destination: r.Source,
				Category: r.Category, Status: model.MoveStatusFailed, Reason: err.Error(),
			})
			continue
		}
		results = append(results, model.MoveResult{
			Source: r.Destination, Destination: dest,
			Category: r.Category, Status: model.MoveStatusMoved,
		})
	}
	return results
}

// moveFile moves source to the destination path, resolving collisions with
// a numeric suffix and falling back to copy+remove across filesystems.
// Returns the final destination, which may differ from the requested one.
func (o *Organizer) moveFile(source, destination string) (string, error) {
	if err := os.MkdirAll(filepath.Dir(destination), 0o755); err != nil {
		return "", fmt.Errorf("failed to create destination directory: %w", err)
	}

	dest, err := resolveCollision(source, destination)
	if err != nil {
		return "", err
	}
	if dest == "" {
		// Destination already is this very file; nothing to do.
		return destination, nil
	}

	if err := os.Rename(source, dest); err != nil {
		var linkErr *os.LinkError
		if errors.As(err, &linkErr) && errors.Is(linkErr.Err, syscall.EXDEV) {
			if copyErr := copyFile(source, dest); copyErr != nil {
				return "", fmt.Errorf("cross-device copy failed: %w", copyErr)
			}
			if rmErr := os.Remove(source); rmErr != nil {
				o.logger.Warn("failed to remove source after cross-device copy", "source", source, "error", rmErr)
			}
			return dest, nil
		}
		return "", fmt.Errorf("failed to move file: %w", err)
	}
	return dest, nil
}

// resolveCollision returns a destination path that does not clobber an
// existing distinct file, appending " (n)" before the extension until a
// free name is found. Returns "" when the occupant is the source itself.
func resolveCollision(source, destination string) (string, error) {
	const maxAttempts = 10000

	info, err := os.Stat(destination)
	if errors.Is(err, os.ErrNotExist) {
		return destination, nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to stat destination: %w", err)
	}

	if srcInfo, serr := os.Stat(source); serr == nil && os.SameFile(srcInfo, info) {
		return "", nil
	}

	ext := filepath.Ext(destination)
	stem := strings.TrimSuffix(destination, ext)

	for n := 1; n <= maxAttempts; n++ {
		candidate := fmt.Sprintf("%s (%d)%s", stem, n, ext)
		if _, err := os.Stat(candidate); errors.Is(err, os.ErrNotExist) {
			return candidate, nil
		} else if err != nil {
			return "", err
		}
	}
	return "", fmt.Errorf("exhausted collision suffixes for %s", destination)
}

// sanitizeName makes a file or folder name filesystem-safe: invalid
// characters become underscores, surrounding dots and spaces are trimmed,
// and over-long names are capped.
func sanitizeName(name string) string {
	const maxLen = 200

	var b strings.Builder
	for _, r := range name {
		switch r {
		case '<', '>', ':', '"', '/', '\\', '|', '?', '*':
			b.WriteRune('_')
		default:
			b.WriteRune(r)
		}
	}

	cleaned := strings.Trim(b.String(), " .")
	if cleaned == "" {
		cleaned = "unnamed"
	}
	if len(cleaned) > maxLen {
		cleaned = cleaned[:maxLen]
	}
	return cleaned
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer func() { _ = out.Close() }()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}
