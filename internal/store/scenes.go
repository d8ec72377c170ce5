package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/roach88/roomsim/internal/ir"
)

// minPrefix is the shortest ID prefix FindScene accepts.
const minPrefix = 4

// PutScene stores a configuration under its content hash.
// Returns the stored record and whether a new row was inserted. Storing a
// configuration that is already present returns the existing record, with
// its original name and seq.
func (s *Store) PutScene(ctx context.Context, name string, cfg *ir.Nested) (Scene, bool, error) {
	id, err := ir.SceneID(cfg)
	if err != nil {
		return Scene{}, false, fmt.Errorf("put scene: %w", err)
	}
	configJSON, err := marshalConfig(cfg)
	if err != nil {
		return Scene{}, false, fmt.Errorf("put scene: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Scene{}, false, fmt.Errorf("put scene: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	result, err := tx.ExecContext(ctx, `
		INSERT INTO scenes (id, name, config, ir_version, seq)
		VALUES (?, ?, ?, ?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM scenes))
		ON CONFLICT(id) DO NOTHING
	`, id, name, configJSON, ir.SchemaVersion)
	if err != nil {
		return Scene{}, false, fmt.Errorf("put scene: insert: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return Scene{}, false, fmt.Errorf("put scene: rows affected: %w", err)
	}

	scene, err := scanScene(tx.QueryRowContext(ctx, `
		SELECT id, name, config, ir_version, seq FROM scenes WHERE id = ?
	`, id))
	if err != nil {
		return Scene{}, false, fmt.Errorf("put scene: select: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return Scene{}, false, fmt.Errorf("put scene: commit: %w", err)
	}
	return scene, rowsAffected > 0, nil
}

// GetScene returns the scene with the given ID.
// Returns sql.ErrNoRows if not found.
func (s *Store) GetScene(ctx context.Context, id string) (Scene, error) {
	return scanScene(s.db.QueryRowContext(ctx, `
		SELECT id, name, config, ir_version, seq FROM scenes WHERE id = ?
	`, id))
}

// FindScene returns the scene whose ID is id or starts with it.
// Returns sql.ErrNoRows if nothing matches, and an error if the prefix is
// shorter than four characters or matches more than one scene.
func (s *Store) FindScene(ctx context.Context, id string) (Scene, error) {
	scene, err := s.GetScene(ctx, id)
	if err != sql.ErrNoRows {
		return scene, err
	}
	if len(id) < minPrefix {
		return Scene{}, fmt.Errorf("find scene: prefix %q is shorter than %d characters", id, minPrefix)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, config, ir_version, seq FROM scenes
		WHERE substr(id, 1, ?) = ?
		ORDER BY seq ASC, id COLLATE BINARY ASC
		LIMIT 2
	`, len(id), id)
	if err != nil {
		return Scene{}, fmt.Errorf("find scene: %w", err)
	}
	defer rows.Close()

	scenes, err := collectScenes(rows)
	if err != nil {
		return Scene{}, err
	}
	switch len(scenes) {
	case 0:
		return Scene{}, sql.ErrNoRows
	case 1:
		return scenes[0], nil
	}
	return Scene{}, fmt.Errorf("find scene: prefix %q is ambiguous", id)
}

// ListScenes returns every scene ordered by seq ASC, id ASC.
// Returns an empty slice (not nil) if the catalog is empty.
func (s *Store) ListScenes(ctx context.Context) ([]Scene, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, config, ir_version, seq FROM scenes
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query scenes: %w", err)
	}
	defer rows.Close()
	return collectScenes(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanScene(row rowScanner) (Scene, error) {
	var (
		scene      Scene
		configJSON string
	)
	if err := row.Scan(&scene.ID, &scene.Name, &configJSON, &scene.IRVersion, &scene.Seq); err != nil {
		return Scene{}, err
	}
	cfg, err := unmarshalConfig(configJSON)
	if err != nil {
		return Scene{}, fmt.Errorf("scene %s: %w", scene.ID, err)
	}
	scene.Config = cfg
	return scene, nil
}

func collectScenes(rows *sql.Rows) ([]Scene, error) {
	scenes := []Scene{}
	for rows.Next() {
		scene, err := scanScene(rows)
		if err != nil {
			return nil, err
		}
		scenes = append(scenes, scene)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate scenes: %w", err)
	}
	return scenes, nil
}
