package store

import (
	"database/sql"
	_ "embed"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// migrations are applied in order to databases whose user_version is
// below the migration's version. The embedded schema creates the base
// tables; migrations only add to it.
var migrations = []migration{
	{1, "index runs by scene", `CREATE INDEX IF NOT EXISTS idx_runs_scene ON runs(scene_id, seq)`},
	{2, "index scenes by name", `CREATE INDEX IF NOT EXISTS idx_scenes_name ON scenes(name)`},
}

type migration struct {
	version int
	name    string
	stmt    string
}

// schemaVersion is the user_version of a fully migrated catalog.
func schemaVersion() int {
	return migrations[len(migrations)-1].version
}

// memoryPath is the SQLite path of a private in-memory catalog.
const memoryPath = ":memory:"

// Store is the scene catalog: content-addressed scene configurations and
// the simulation runs recorded against them.
type Store struct {
	db *sql.DB
}

// Open creates or opens a catalog database at path. ":memory:" opens a
// private in-memory catalog that disappears on Close.
//
// File catalogs run in WAL mode with NORMAL synchronous writes, a 5 second
// busy timeout and foreign keys enforced. The pool is capped at one
// connection: SQLite allows one writer, and an in-memory database exists
// only on the connection that created it.
//
// Open is idempotent: reopening a migrated catalog changes nothing.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := applyPragmas(db, path == memoryPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}

	if err := applySchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// applyPragmas configures the connection. An in-memory catalog has no
// journal file, so it keeps SQLite's memory journal.
func applyPragmas(db *sql.DB, memory bool) error {
	pragmas := []string{
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}
	if !memory {
		pragmas = append(pragmas,
			"PRAGMA journal_mode = WAL",
			"PRAGMA synchronous = NORMAL",
		)
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}
	return nil
}

// applySchema creates the base tables and brings user_version up to date
// inside one transaction.
func applySchema(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin schema transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	var version int
	if err := tx.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("get user_version: %w", err)
	}
	for _, m := range migrations {
		if m.version <= version {
			continue
		}
		if _, err := tx.Exec(m.stmt); err != nil {
			return fmt.Errorf("migrate to v%d (%s): %w", m.version, m.name, err)
		}
	}
	// PRAGMA does not take bind parameters.
	if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", schemaVersion())); err != nil {
		return fmt.Errorf("set user_version: %w", err)
	}

	return tx.Commit()
}

// pragma reads the current value of a pragma.
func (s *Store) pragma(name string) (string, error) {
	var value string
	if err := s.db.QueryRow("PRAGMA " + name).Scan(&value); err != nil {
		return "", fmt.Errorf("failed to query %s: %w", name, err)
	}
	return value, nil
}
