package store

import (
	"context"
	"database/sql"
	"fmt"
)

// WriteRun records a simulation run. The run's seq is assigned by the
// store and returned. The scene referenced by SceneID must exist (foreign
// key constraint), and Samples must hold Channels*SampleCount values.
func (s *Store) WriteRun(ctx context.Context, run Run) (int64, error) {
	if run.Channels < 0 || run.SampleCount < 0 || len(run.Samples) != run.Channels*run.SampleCount {
		return 0, fmt.Errorf("write run: %d samples do not fill %d channels x %d samples",
			len(run.Samples), run.Channels, run.SampleCount)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("write run: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	var seq int64
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) + 1 FROM runs`).Scan(&seq); err != nil {
		return 0, fmt.Errorf("write run: next seq: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs
		(id, scene_id, channels, sample_rate, sample_count, samples, tool_version, seq)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		run.ID,
		run.SceneID,
		run.Channels,
		run.SampleRate,
		run.SampleCount,
		encodeSamples(run.Samples),
		run.ToolVersion,
		seq,
	)
	if err != nil {
		return 0, fmt.Errorf("write run: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("write run: commit: %w", err)
	}
	return seq, nil
}

// ReadRun returns the run with the given ID.
// Returns sql.ErrNoRows if not found.
func (s *Store) ReadRun(ctx context.Context, id string) (Run, error) {
	return scanRun(s.db.QueryRowContext(ctx, `
		SELECT id, scene_id, channels, sample_rate, sample_count, samples, tool_version, seq
		FROM runs WHERE id = ?
	`, id))
}

// ReadRuns returns every run of a scene ordered by seq ASC, id ASC.
// Returns an empty slice (not nil) if the scene has no runs.
func (s *Store) ReadRuns(ctx context.Context, sceneID string) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, scene_id, channels, sample_rate, sample_count, samples, tool_version, seq
		FROM runs
		WHERE scene_id = ?
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`, sceneID)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// CountRuns returns the number of runs recorded for a scene.
func (s *Store) CountRuns(ctx context.Context, sceneID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM runs WHERE scene_id = ?
	`, sceneID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count runs: %w", err)
	}
	return count, nil
}

func scanRun(row rowScanner) (Run, error) {
	var (
		run     Run
		samples []byte
	)
	err := row.Scan(&run.ID, &run.SceneID, &run.Channels, &run.SampleRate,
		&run.SampleCount, &samples, &run.ToolVersion, &run.Seq)
	if err == sql.ErrNoRows {
		return Run{}, err
	}
	if err != nil {
		return Run{}, fmt.Errorf("scan run: %w", err)
	}
	run.Samples, err = decodeSamples(samples)
	if err != nil {
		return Run{}, fmt.Errorf("run %s: %w", run.ID, err)
	}
	return run, nil
}
