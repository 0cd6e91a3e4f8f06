package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sweeply/sweep/internal/common"
	"github.com/sweeply/sweep/internal/model"
)

// SaveMoves appends move records for a run. Implements organize.MoveLogger.
func (m *MoveLog) SaveMoves(ctx context.Context, runID string, records []model.MoveRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO moves (run_id, source, destination, category, moved_at)
		 VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, r := range records {
		if _, err := stmt.ExecContext(ctx, runID, r.Source, r.Destination, string(r.Category), r.MovedAt); err != nil {
			return fmt.Errorf("failed to insert move record: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit move records: %w", err)
	}
	return nil
}

// MovesByRun returns the move records for a run, oldest first.
func (m *MoveLog) MovesByRun(ctx context.Context, runID string) ([]model.MoveRecord, error) {
	rows, err := m.db.QueryContext(ctx,
		`SELECT run_id, source, destination, category, moved_at
		 FROM moves WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query moves: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []model.MoveRecord
	for rows.Next() {
		var r model.MoveRecord
		var category string
		if err := rows.Scan(&r.RunID, &r.Source, &r.Destination, &category, &r.MovedAt); err != nil {
			return nil, fmt.Errorf("failed to scan move record: %w", err)
		}
		r.Category = model.Category(category)
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate moves: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("run %s: %w", runID, common.ErrNotFound)
	}
	return records, nil
}

// LatestRunID returns the run ID of the most recent recorded move.
func (m *MoveLog) LatestRunID(ctx context.Context) (string, error) {
	var runID string
	err := m.db.QueryRowContext(ctx,
		`SELECT run_id FROM moves ORDER BY id DESC LIMIT 1`).Scan(&runID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("no recorded runs: %w", common.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("failed to query latest run: %w", err)
	}
	return runID, nil
}

// RunIDs returns the distinct run IDs, most recent first, capped at limit.
func (m *MoveLog) RunIDs(ctx context.Context, limit int) ([]string, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := m.db.QueryContext(ctx,
		`SELECT run_id FROM moves GROUP BY run_id ORDER BY MAX(id) DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan run id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
