// Package history keeps a SQLite log of clipboard writes made by clipctl.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

const DefaultMaxEntries = 500

const selectEntries = `SELECT
		id,
		operation,
		format,
		preview,
		items,
		bytes,
		created_at
	FROM entries
	`

// Entry is one recorded clipboard write.
type Entry struct {
	ID        string    `json:"id" yaml:"id"`
	Operation string    `json:"operation" yaml:"operation"`
	Format    string    `json:"format,omitempty" yaml:"format,omitempty"`
	Preview   string    `json:"preview,omitempty" yaml:"preview,omitempty"`
	Items     int       `json:"items" yaml:"items"`
	Bytes     int       `json:"bytes" yaml:"bytes"`
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
}

// Size returns the payload size in human-readable form.
func (e Entry) Size() string {
	return humanize.Bytes(uint64(e.Bytes))
}

// Age returns how long ago the entry was recorded relative to now.
func (e Entry) Age(now time.Time) string {
	return humanize.RelTime(e.CreatedAt, now, "ago", "from now")
}

type Store struct {
	db         *sql.DB
	maxEntries int
}

func Open(dbPath string) (*Store, error) {
	return OpenWithLimit(dbPath, DefaultMaxEntries)
}

// OpenWithLimit opens the database at dbPath, creating it if needed. The
// store keeps at most maxEntries rows.
func OpenWithLimit(dbPath string, maxEntries int) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if maxEntries < 1 {
		maxEntries = DefaultMaxEntries
	}
	s := &Store{db: db, maxEntries: maxEntries}
	if err := s.init(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return s, nil
}

func (s *Store) init() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS entries (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			operation TEXT NOT NULL,
			format TEXT,
			preview TEXT,
			items INTEGER NOT NULL DEFAULT 0,
			bytes INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_entries_operation ON entries(operation)`,
		`CREATE INDEX IF NOT EXISTS idx_entries_created_at ON entries(created_at)`,
	}

	for _, query := range queries {
		if _, err := s.db.Exec(query); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}

	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Record stores e, filling in ID and CreatedAt when unset, and prunes the
// oldest entries beyond the store limit.
func (s *Store) Record(e Entry) (Entry, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	e.CreatedAt = e.CreatedAt.UTC()

	tx, err := s.db.Begin()
	if err != nil {
		return e, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO entries (id, operation, format, preview, items, bytes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, e.ID, e.Operation, e.Format, e.Preview, e.Items, e.Bytes, e.CreatedAt)
	if err != nil {
		return e, fmt.Errorf("failed to insert entry: %w", err)
	}

	_, err = tx.Exec(`
		DELETE FROM entries WHERE seq NOT IN (
			SELECT seq FROM entries ORDER BY seq DESC LIMIT ?
		)
	`, s.maxEntries)
	if err != nil {
		return e, fmt.Errorf("failed to prune entries: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return e, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return e, nil
}

// List returns up to limit entries, newest first. A limit below 1 returns
// every entry.
func (s *Store) List(limit int) ([]Entry, error) {
	query := selectEntries + `ORDER BY seq DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var e Entry
		var format, preview sql.NullString
		if err := rows.Scan(&e.ID, &e.Operation, &format, &preview, &e.Items, &e.Bytes, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		e.Format = format.String
		e.Preview = preview.String
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read entries: %w", err)
	}

	return entries, nil
}

func (s *Store) Count() (int, error) {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM entries").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to query entry count: %w", err)
	}
	return n, nil
}

// Clear deletes every entry and returns how many were removed.
func (s *Store) Clear() (int64, error) {
	res, err := s.db.Exec("DELETE FROM entries")
	if err != nil {
		return 0, fmt.Errorf("failed to clear entries: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count cleared entries: %w", err)
	}
	return n, nil
}
