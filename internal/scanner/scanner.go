// Package scanner walks directories and produces FileRecords for the rest
// of the pipeline.
package scanner

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/sweeply/sweep/internal/model"
)

// Warning reports a path that could not be scanned. Warnings never fail a
// run; they are surfaced to the user alongside the results.
type Warning struct {
	Path   string
	Reason string
}

// Options controls scanning behavior.
type Options struct {
	// IncludeHidden scans dotfiles and dot-directories. Off by default to
	// match the organizer's focus on user-visible clutter.
	IncludeHidden bool
}

// Scanner enumerates files under a set of directory roots.
type Scanner struct {
	logger *slog.Logger
	opts   Options
}

// New creates a Scanner. A nil logger falls back to the default.
func New(opts Options, logger *slog.Logger) *Scanner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scanner{opts: opts, logger: logger}
}

// Scan walks each root and returns one FileRecord per regular file found.
// Unreadable paths are reported as warnings. Symlinked directories are
// resolved and visited at most once so cycles cannot loop the walk.
// Output ordering is traversal order and is not guaranteed stable.
func (s *Scanner) Scan(ctx context.Context, roots []string) ([]model.FileRecord, []Warning) {
	var (
		files    []model.FileRecord
		warnings []Warning
	)
	visited := make(map[string]bool)

	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil || !info.IsDir() {
			warnings = append(warnings, Warning{Path: root, Reason: "directory not accessible"})
			s.logger.Warn("skipping scan root", "root", root, "error", err)
			continue
		}
		if real, err := filepath.EvalSymlinks(root); err == nil {
			if visited[real] {
				continue
			}
			visited[real] = true
		}

		walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if err != nil {
				warnings = append(warnings, Warning{Path: path, Reason: err.Error()})
				if d != nil && d.IsDir() {
					return fs.SkipDir
				}
				return nil
			}

			name := d.Name()
			if d.IsDir() {
				if path != root && !s.opts.IncludeHidden && strings.HasPrefix(name, ".") {
					return fs.SkipDir
				}
				// Resolve symlinked directories once; revisiting a real
				// path means a cycle.
				if d.Type()&fs.ModeSymlink != 0 {
					return fs.SkipDir
				}
				if real, rerr := filepath.EvalSymlinks(path); rerr == nil {
					if path != root && visited[real] {
						return fs.SkipDir
					}
					visited[real] = true
				}
				return nil
			}

			if !d.Type().IsRegular() {
				return nil
			}
			if !s.opts.IncludeHidden && strings.HasPrefix(name, ".") {
				return nil
			}

			rec, rerr := s.record(path, d)
			if rerr != nil {
				warnings = append(warnings, Warning{Path: path, Reason: rerr.Error()})
				return nil
			}
			files = append(files, rec)
			return nil
		})
		if walkErr != nil && walkErr != ctx.Err() {
			warnings = append(warnings, Warning{Path: root, Reason: walkErr.Error()})
		}
		if ctx.Err() != nil {
			break
		}
	}

	s.logger.Info("scan complete",
		"roots", len(roots),
		"files", len(files),
		"warnings", len(warnings))

	return files, warnings
}

func (s *Scanner) record(path string, d fs.DirEntry) (model.FileRecord, error) {
	info, err := d.Info()
	if err != nil {
		return model.FileRecord{}, err
	}

	rec := model.FileRecord{
		Path:    path,
		Name:    d.Name(),
		Size:    info.Size(),
		ModTime: info.ModTime(),
		Ext:     strings.ToLower(filepath.Ext(path)),
	}

	// MIME sniffing is best-effort; a file we cannot open still gets a
	// record, the categorizer falls back to the extension.
	if mt, merr := mimetype.DetectFile(path); merr == nil {
		rec.MIME = mt.String()
	}

	return rec, nil
}
