// sqlite.go implements the SQLite backend. It keeps the same whole-collection
// contract as the file store: SetLinks clears and refills the links table in a
// single transaction.
//
// The table is created with CREATE TABLE IF NOT EXISTS on open; there is no
// schema versioning.

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	"github.com/jpl-au/mystuff/internal/link"

	// Register sqlite driver
	_ "modernc.org/sqlite"
)

// DBFileName is the name of the SQLite database inside the data directory.
const DBFileName = "links.db"

const schema = `
CREATE TABLE IF NOT EXISTS links (
	url         TEXT PRIMARY KEY,
	description TEXT NOT NULL DEFAULT '',
	tags        TEXT NOT NULL DEFAULT '[]'
)`

// SQLite persists links in a single SQLite table.
type SQLite struct {
	db   *sqlx.DB
	path string
}

var _ DataStore = (*SQLite)(nil)

type linkRow struct {
	URL         string `db:"url"`
	Description string `db:"description"`
	Tags        string `db:"tags"`
}

// NewSQLite opens (creating if needed) links.db in dir (DefaultDir when empty).
// The caller should call Close on the returned store.
func NewSQLite(dir string) (*SQLite, error) {
	if dir == "" {
		dir = DefaultDir()
	}
	if err := ensureDir(dir); err != nil {
		return nil, err
	}

	p := filepath.Join(dir, DBFileName)
	db, err := sqlx.Open("sqlite", p)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", ErrStorageInit, p, err)
	}
	// Busy timeout: wait for another process holding the write lock.
	if _, err := db.Exec(`PRAGMA busy_timeout=5000`); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: setting busy timeout: %w", ErrStorageInit, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: create links table: %w", ErrStorageInit, err)
	}
	return &SQLite{db: db, path: p}, nil
}

// Path returns the database file path.
func (s *SQLite) Path() string { return s.path }

// Links loads every row.
func (s *SQLite) Links(ctx context.Context) (link.Collection, error) {
	var rows []linkRow
	if err := s.db.SelectContext(ctx, &rows, `SELECT url, description, tags FROM links ORDER BY url`); err != nil {
		return nil, fmt.Errorf("%w: query links: %w", ErrStorageRead, err)
	}

	links := make(link.Collection, len(rows))
	for _, r := range rows {
		tags := []string{}
		if err := json.Unmarshal([]byte(r.Tags), &tags); err != nil {
			return nil, fmt.Errorf("%w: tags for %s: %w", ErrStorageRead, r.URL, err)
		}
		if tags == nil {
			tags = []string{}
		}
		links[r.URL] = link.Link{URL: r.URL, Description: r.Description, Tags: tags}
	}
	return links, nil
}

// SetLinks replaces the table contents in one transaction.
func (s *SQLite) SetLinks(ctx context.Context, links link.Collection) (err error) {
	if err := checkKeys(links); err != nil {
		return err
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin: %w", ErrStorageWrite, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM links`); err != nil {
		return fmt.Errorf("%w: clear links: %w", ErrStorageWrite, err)
	}
	for _, lk := range links.Sorted() {
		tags := lk.Tags
		if tags == nil {
			tags = []string{}
		}
		var b []byte
		b, err = json.Marshal(tags)
		if err != nil {
			return fmt.Errorf("%w: encode tags for %s: %w", ErrStorageWrite, lk.URL, err)
		}
		row := linkRow{URL: lk.URL, Description: lk.Description, Tags: string(b)}
		if _, err = tx.NamedExecContext(ctx,
			`INSERT INTO links (url, description, tags) VALUES (:url, :description, :tags)`, row); err != nil {
			return fmt.Errorf("%w: insert %s: %w", ErrStorageWrite, lk.URL, err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %w", ErrStorageWrite, err)
	}
	return nil
}

// Close releases the database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}
