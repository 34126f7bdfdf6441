// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package manifest persists conversion outcomes in a SQLite database so
// repeated batch runs can skip sources that have not changed since they
// were last converted.
package manifest

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/texpng/pkg/types"
)

// Record is one manifest row: the last known conversion outcome for a
// source file, keyed by its path relative to the input root.
type Record struct {
	RelPath     string                 `json:"rel_path" yaml:"rel_path"`
	TexPath     string                 `json:"tex_path" yaml:"tex_path"`
	PNGPath     string                 `json:"png_path" yaml:"png_path"`
	Size        int64                  `json:"size" yaml:"size"`
	ModTime     string                 `json:"mod_time" yaml:"mod_time"`
	Status      types.ConversionStatus `json:"status" yaml:"status"`
	Error       string                 `json:"error,omitempty" yaml:"error,omitempty"`
	ConvertedAt string                 `json:"converted_at" yaml:"converted_at"`
}

// Store manages the conversion manifest database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the manifest database at path, creating the schema
// and any missing parent directories.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating manifest directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening manifest database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS conversions (
			rel_path TEXT PRIMARY KEY,
			tex_path TEXT NOT NULL,
			png_path TEXT NOT NULL,
			size INTEGER NOT NULL,
			mod_time TEXT NOT NULL,
			status TEXT NOT NULL,
			error TEXT,
			converted_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_conversions_status ON conversions(status)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// ShouldSkip reports whether relPath is recorded as converted from a source
// with the same size and modification time. Any lookup error counts as "no":
// the file just gets converted again.
func (s *Store) ShouldSkip(relPath string, size int64, modTime time.Time) bool {
	var status string
	var recSize int64
	var recMod string
	err := s.db.QueryRow(
		`SELECT status, size, mod_time FROM conversions WHERE rel_path = ?`, relPath,
	).Scan(&status, &recSize, &recMod)
	if err != nil {
		return false
	}
	return types.ConversionStatus(status) == types.ConversionDone &&
		recSize == size &&
		recMod == modTime.UTC().Format(time.RFC3339Nano)
}

// Record upserts the outcome of one conversion attempt.
func (s *Store) Record(tex types.Texture, size int64, modTime time.Time, status types.ConversionStatus, cause error) error {
	errMsg := ""
	if cause != nil {
		errMsg = cause.Error()
	}

	_, err := s.db.Exec(
		`INSERT INTO conversions (rel_path, tex_path, png_path, size, mod_time, status, error, converted_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(rel_path) DO UPDATE SET
			tex_path = excluded.tex_path,
			png_path = excluded.png_path,
			size = excluded.size,
			mod_time = excluded.mod_time,
			status = excluded.status,
			error = excluded.error,
			converted_at = excluded.converted_at`,
		tex.RelPath, tex.TexPath, tex.PNGPath, size,
		modTime.UTC().Format(time.RFC3339Nano),
		string(status), errMsg,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("recording %s: %w", tex.RelPath, err)
	}
	return nil
}

// List returns every manifest record ordered by relative path.
func (s *Store) List() ([]Record, error) {
	rows, err := s.db.Query(
		`SELECT rel_path, tex_path, png_path, size, mod_time, status, error, converted_at
		 FROM conversions ORDER BY rel_path`,
	)
	if err != nil {
		return nil, fmt.Errorf("querying manifest: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		var errMsg sql.NullString
		if err := rows.Scan(&r.RelPath, &r.TexPath, &r.PNGPath, &r.Size, &r.ModTime, &r.Status, &errMsg, &r.ConvertedAt); err != nil {
			return nil, fmt.Errorf("scanning manifest row: %w", err)
		}
		r.Error = errMsg.String
		records = append(records, r)
	}
	return records, rows.Err()
}
