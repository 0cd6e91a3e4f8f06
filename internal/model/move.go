package model

import "time"

// MoveStatus is the per-item outcome of an organize run.
type MoveStatus string

// Move status constants.
const (
	MoveStatusPlanned MoveStatus = "planned"
	MoveStatusMoved   MoveStatus = "moved"
	MoveStatusSkipped MoveStatus = "skipped"
	MoveStatusFailed  MoveStatus = "failed"
)

// MoveRecord is an audit entry for a completed move. Records are append-only
// and never mutated after write.
type MoveRecord struct {
	MovedAt     time.Time `json:"moved_at"`
	Source      string    `json:"source"`
	Destination string    `json:"destination"`
	Category    Category  `json:"category"`
	RunID       string    `json:"run_id"`
}

// MoveResult reports the outcome of one planned move. Failures carry a
// reason instead of aborting the batch.
type MoveResult struct {
	Source      string     `json:"source"`
	Destination string     `json:"destination"`
	Category    Category   `json:"category"`
	Status      MoveStatus `json:"status"`
	Reason      string     `json:"reason,omitempty"`
}

// RunSummary aggregates per-item move results into run totals.
type RunSummary struct {
	Total   int `json:"total"`
	Moved   int `json:"moved"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
}

// Summarize tallies move results into a RunSummary.
func Summarize(results []MoveResult) RunSummary {
	s := RunSummary{Total: len(results)}
	for _, r := range results {
		switch r.Status {
		case MoveStatusMoved, MoveStatusPlanned:
			s.Moved++
		case MoveStatusSkipped:
			s.Skipped++
		case MoveStatusFailed:
			s.Failed++
		}
	}
	return s
}
