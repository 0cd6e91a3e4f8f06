// Package dedup finds files with identical content.
//
// Files are grouped by size first; only sizes shared by two or more files
// are hashed, so unique-sized files never cost a read. Hash equality is
// treated as proof of duplication with no byte-level confirmation — with
// SHA-256 the collision risk is accepted as negligible for this tool.
package dedup

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"

	"github.com/sweeply/sweep/internal/model"
)

// Detector groups files by content hash.
type Detector struct {
	logger    *slog.Logger
	hashCalls int
	// Progress enables a terminal progress bar over the hash set.
	Progress bool
}

// New creates a duplicate detector.
func New(logger *slog.Logger) *Detector {
	if logger == nil {
		logger = slog.Default()
	}
	return &Detector{logger: logger}
}

// HashCalls reports how many files were actually hashed, observable for
// the size-prefilter behavior.
func (d *Detector) HashCalls() int {
	return d.hashCalls
}

// FindDuplicates returns one group per content hash shared by two or more
// files. Unreadable files are skipped with a warning. Groups are sorted by
// reclaimable bytes, largest first.
func (d *Detector) FindDuplicates(ctx context.Context, files []model.FileRecord) ([]model.DuplicateGroup, error) {
	bySize := make(map[int64][]model.FileRecord)
	for _, f := range files {
		bySize[f.Size] = append(bySize[f.Size], f)
	}

	var candidates []model.FileRecord
	for _, group := range bySize {
		if len(group) > 1 {
			candidates = append(candidates, group...)
		}
	}

	var bar *progressbar.ProgressBar
	if d.Progress && len(candidates) > 0 {
		bar = progressbar.Default(int64(len(candidates)), "hashing")
	}

	byHash := make(map[string][]model.FileRecord)
	for _, f := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		sum, err := d.hashFile(f.Path)
		if bar != nil {
			_ = bar.Add(1)
		}
		if err != nil {
			d.logger.Warn("skipping unhashable file", "path", f.Path, "error", err)
			continue
		}
		byHash[sum] = append(byHash[sum], f)
	}

	var groups []model.DuplicateGroup
	for sum, members := range byHash {
		if len(members) < 2 {
			continue
		}
		var reclaimable int64
		for _, m := range members[1:] {
			reclaimable += m.Size
		}
		groups = append(groups, model.DuplicateGroup{
			Hash:             sum,
			Files:            members,
			ReclaimableBytes: reclaimable,
		})
	}

	sort.Slice(groups, func(i, j int) bool {
		if groups[i].ReclaimableBytes != groups[j].ReclaimableBytes {
			return groups[i].ReclaimableBytes > groups[j].ReclaimableBytes
		}
		return groups[i].Hash < groups[j].Hash
	})

	d.logger.Info("duplicate detection complete",
		"files", len(files),
		"hashed", d.hashCalls,
		"groups", len(groups))

	return groups, nil
}

func (d *Detector) hashFile(path string) (string, error) {
	d.hashCalls++

	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("failed to hash %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Summarize aggregates group stats for display.
func Summarize(groups []model.DuplicateGroup) model.DuplicateSummary {
	s := model.DuplicateSummary{Groups: len(groups)}
	for _, g := range groups {
		s.DuplicateFiles += len(g.Files) - 1
		s.ReclaimableBytes += g.ReclaimableBytes
	}
	return s
}

// SuggestCleanup recommends one file to keep per group: the copy in the
// deepest directory (most organized location), then the newest.
func SuggestCleanup(groups []model.DuplicateGroup) []model.CleanupSuggestion {
	suggestions := make([]model.CleanupSuggestion, 0, len(groups))

	for _, g := range groups {
		members := make([]model.FileRecord, len(g.Files))
		copy(members, g.Files)

		sort.Slice(members, func(i, j int) bool {
			di := strings.Count(members[i].Path, string(os.PathSeparator))
			dj := strings.Count(members[j].Path, string(os.PathSeparator))
			if di != dj {
				return di > dj
			}
			return members[i].ModTime.After(members[j].ModTime)
		})

		keep := members[0]
		suggestions = append(suggestions, model.CleanupSuggestion{
			Keep:   keep,
			Remove: members[1:],
			Reason: fmt.Sprintf("keep %s (most organized location, modified %s, %s)",
				keep.Path,
				keep.ModTime.Format("2006-01-02"),
				humanize.Bytes(uint64(keep.Size))),
		})
	}

	return suggestions
}
