// Package store defines link persistence and the DataStore interface.
//
// Every backend stores the whole collection: Links loads all of it and
// SetLinks replaces all of it. There are no partial updates. Concurrent
// writers are not coordinated; the last SetLinks wins.
package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jpl-au/mystuff/internal/link"
)

// Sentinel errors wrapped by every backend. Use errors.Is to test them.
var (
	// ErrStorageInit is returned when the data directory or backing file
	// cannot be created.
	ErrStorageInit = errors.New("storage init failed")
	// ErrStorageRead is returned when the backing medium cannot be read or
	// contains a malformed record.
	ErrStorageRead = errors.New("storage read failed")
	// ErrStorageWrite is returned when the backing medium cannot be written.
	ErrStorageWrite = errors.New("storage write failed")
	// ErrUnknownBackend is returned by Open for an unsupported backend name.
	ErrUnknownBackend = errors.New("unknown storage backend")
)

// DataStore persists the full link collection.
type DataStore interface {
	// Links returns the full current collection. The returned map belongs
	// to the caller.
	Links(ctx context.Context) (link.Collection, error)

	// SetLinks replaces the entire durable collection. Either every entry
	// is replaced or an error is returned and the prior state is kept.
	SetLinks(ctx context.Context, links link.Collection) error

	// Close releases any resources held by the store.
	Close() error
}

// Backend names accepted by Open.
const (
	BackendJSONL  = "jsonl"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Backends lists every supported backend name.
func Backends() []string {
	return []string{BackendJSONL, BackendSQLite, BackendMemory}
}

// DirName is the name of the default data directory under the home directory.
const DirName = ".mystuff"

// DefaultDir returns ~/.mystuff, falling back to a relative .mystuff when
// the home directory cannot be determined.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return DirName
	}
	return filepath.Join(home, DirName)
}

// Open constructs the named backend rooted at dir. An empty backend selects
// the JSONL file store; an empty dir selects DefaultDir.
func Open(backend, dir string) (DataStore, error) {
	switch backend {
	case "", BackendJSONL:
		return NewLocal(dir)
	case BackendSQLite:
		return NewSQLite(dir)
	case BackendMemory:
		return NewMemory(nil), nil
	default:
		return nil, fmt.Errorf("%w: %q (valid: %v)", ErrUnknownBackend, backend, Backends())
	}
}

var (
	errNoURL       = errors.New("record has no url")
	errKeyMismatch = errors.New("collection key does not match link url")
)

// checkKeys rejects collections that could not be read back unchanged: every
// link needs a url, and it must be the key it is stored under.
func checkKeys(links link.Collection) error {
	for k, lk := range links {
		if lk.URL == "" {
			return fmt.Errorf("%w: %w", ErrStorageWrite, errNoURL)
		}
		if k != lk.URL {
			return fmt.Errorf("%w: %w: key %q, url %q", ErrStorageWrite, errKeyMismatch, k, lk.URL)
		}
	}
	return nil
}

// ensureDir creates dir (and parents) if absent.
func ensureDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("%w: create directory %s: %w", ErrStorageInit, dir, err)
	}
	return nil
}
