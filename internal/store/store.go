// Package store keeps the manifest of generated artifacts: their digests
// and the source files they were generated from.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	_ "modernc.org/sqlite"
)

const (
	// Dir is the manifest directory created inside the output directory.
	Dir  = ".routegen"
	File = "manifest.db"
)

// Artifact is one generated file.
type Artifact struct {
	Path        string
	Kind        string
	Module      string
	Digest      string
	GeneratedAt time.Time
	Deps        []string
}

// Store is the sqlite-backed artifact manifest.
type Store struct {
	db *sql.DB
}

// Open creates or opens the manifest below outDir.
func Open(outDir string) (*Store, error) {
	dir := filepath.Join(outDir, Dir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating %s directory: %w", Dir, err)
	}

	dbPath := filepath.Join(dir, File)
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening manifest: %w", err)
	}
	// Pragmas are per connection.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("setting pragma: %w", err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// RecordArtifact inserts or replaces a, including its dependency list.
func (s *Store) RecordArtifact(a *Artifact) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if a.GeneratedAt.IsZero() {
		a.GeneratedAt = time.Now()
	}
	_, err = tx.Exec(`
		INSERT INTO artifacts (path, kind, module, digest, generated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			kind = excluded.kind,
			module = excluded.module,
			digest = excluded.digest,
			generated_at = excluded.generated_at
	`, a.Path, a.Kind, a.Module, a.Digest, a.GeneratedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("recording artifact %s: %w", a.Path, err)
	}

	if _, err := tx.Exec("DELETE FROM artifact_deps WHERE artifact = ?", a.Path); err != nil {
		return fmt.Errorf("clearing deps of %s: %w", a.Path, err)
	}
	for _, dep := range a.Deps {
		_, err := tx.Exec(`
			INSERT INTO artifact_deps (artifact, source) VALUES (?, ?)
			ON CONFLICT(artifact, source) DO NOTHING
		`, a.Path, dep)
		if err != nil {
			return fmt.Errorf("recording dep %s of %s: %w", dep, a.Path, err)
		}
	}
	return tx.Commit()
}

// Digest returns the recorded digest of path. ok is false when path was
// never recorded.
func (s *Store) Digest(path string) (digest string, ok bool, err error) {
	err = s.db.QueryRow("SELECT digest FROM artifacts WHERE path = ?", path).Scan(&digest)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return digest, true, nil
}

// Artifact returns the recorded artifact at path.
func (s *Store) Artifact(path string) (*Artifact, error) {
	a := &Artifact{Path: path}
	var millis int64
	err := s.db.QueryRow(`
		SELECT kind, module, digest, generated_at FROM artifacts WHERE path = ?
	`, path).Scan(&a.Kind, &a.Module, &a.Digest, &millis)
	if err != nil {
		return nil, err
	}
	a.GeneratedAt = time.UnixMilli(millis)

	rows, err := s.db.Query("SELECT source FROM artifact_deps WHERE artifact = ? ORDER BY source", path)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var dep string
		if err := rows.Scan(&dep); err != nil {
			return nil, err
		}
		a.Deps = append(a.Deps, dep)
	}
	return a, rows.Err()
}

// Artifacts returns the paths of every recorded artifact, sorted.
func (s *Store) Artifacts() ([]string, error) {
	return s.strings("SELECT path FROM artifacts ORDER BY path")
}

// ModuleArtifacts returns the paths recorded for module, sorted.
func (s *Store) ModuleArtifacts(module string) ([]string, error) {
	return s.strings("SELECT path FROM artifacts WHERE module = ? ORDER BY path", module)
}

// DependentsOf returns the artifacts generated from any of sources, sorted
// and de-duplicated.
func (s *Store) DependentsOf(sources ...string) ([]string, error) {
	set := map[string]bool{}
	for _, src := range sources {
		paths, err := s.strings("SELECT artifact FROM artifact_deps WHERE source = ?", src)
		if err != nil {
			return nil, err
		}
		for _, p := range paths {
			set[p] = true
		}
	}
	out := make([]string, 0, len(set))
	for p := range set {
		out = append(out, p)
	}
	sort.Strings(out)
	return out, nil
}

// Forget removes path and its dependency list.
func (s *Store) Forget(path string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()
	if _, err := tx.Exec("DELETE FROM artifact_deps WHERE artifact = ?", path); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM artifacts WHERE path = ?", path); err != nil {
		return err
	}
	return tx.Commit()
}

// SetMetadata stores a key-value pair.
func (s *Store) SetMetadata(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO metadata (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	return err
}

// GetMetadata returns the value stored under key, or "" when unset.
func (s *Store) GetMetadata(key string) (string, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM metadata WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return value, err
}

func (s *Store) strings(query string, args ...any) ([]string, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
