// local.go implements the file-backed store: one JSON-encoded link per line
// in links.jsonl inside the data directory.
//
// Reads are strict. Any non-blank line that does not decode to a link with a
// url fails the whole load; there is no best-effort partial read. Writes go
// to a temporary file in the same directory which is then renamed over
// links.jsonl, so readers see either the old or the new collection.

package store

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/jpl-au/mystuff/internal/link"
)

// FileName is the name of the backing file inside the data directory.
const FileName = "links.jsonl"

// maxLineLength bounds a single record. Descriptions are free text, so this
// is generous.
const maxLineLength = 10 * 1024 * 1024

// Local persists links as newline-delimited JSON.
type Local struct {
	dir string
}

var _ DataStore = (*Local)(nil)

// NewLocal prepares dir (DefaultDir when empty), creating the directory and
// an empty links.jsonl if either is missing.
func NewLocal(dir string) (*Local, error) {
	if dir == "" {
		dir = DefaultDir()
	}
	if err := ensureDir(dir); err != nil {
		return nil, err
	}

	l := &Local{dir: dir}
	f, err := os.OpenFile(l.Path(), os.O_RDONLY|os.O_CREATE, 0644)
	if err != nil {
		return nil, fmt.Errorf("%w: create %s: %w", ErrStorageInit, l.Path(), err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("%w: create %s: %w", ErrStorageInit, l.Path(), err)
	}
	return l, nil
}

// Dir returns the data directory.
func (l *Local) Dir() string { return l.dir }

// Path returns the full path to links.jsonl.
func (l *Local) Path() string { return filepath.Join(l.dir, FileName) }

// Links reads and decodes every record in links.jsonl.
func (l *Local) Links(ctx context.Context) (link.Collection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(l.Path())
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", ErrStorageRead, l.Path(), err)
	}
	defer f.Close()

	links := make(link.Collection)
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineLength)
	n := 0
	for sc.Scan() {
		n++
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		lk, err := decodeLine(line)
		if err != nil {
			return nil, fmt.Errorf("%w: %s line %d: %w", ErrStorageRead, l.Path(), n, err)
		}
		links[lk.URL] = lk
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrStorageRead, l.Path(), err)
	}
	return links, nil
}

// SetLinks rewrites links.jsonl with the given collection, sorted by url.
func (l *Local) SetLinks(ctx context.Context, links link.Collection) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := checkKeys(links); err != nil {
		return err
	}

	data, err := encode(links)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStorageWrite, err)
	}
	if err := writeFileAtomic(l.Path(), data); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrStorageWrite, l.Path(), err)
	}
	return nil
}

// Close is a no-op; the file is only held open during Links.
func (l *Local) Close() error { return nil }

func decodeLine(line []byte) (link.Link, error) {
	var lk link.Link
	if err := json.Unmarshal(line, &lk); err != nil {
		return link.Link{}, err
	}
	if lk.URL == "" {
		return link.Link{}, errNoURL
	}
	if lk.Tags == nil {
		lk.Tags = []string{}
	}
	return lk, nil
}

// encode serialises links one per line, joined by newlines with no trailing
// delimiter. An empty collection encodes to zero bytes.
func encode(links link.Collection) ([]byte, error) {
	var b bytes.Buffer
	for i, lk := range links.Sorted() {
		line, err := json.Marshal(lk)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", lk.URL, err)
		}
		if i > 0 {
			b.WriteByte('\n')
		}
		b.Write(line)
	}
	return b.Bytes(), nil
}

// writeFileAtomic writes data to a sibling temp file, syncs it and renames
// it over path.
func writeFileAtomic(path string, data []byte) error {
	perm := fs.FileMode(0644)
	if fi, err := os.Stat(path); err == nil {
		perm = fi.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	name := tmp.Name()
	cleanup := func() { _ = os.Remove(name) }

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		cleanup()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		cleanup()
		return err
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return err
	}
	if err := os.Chmod(name, perm); err != nil {
		cleanup()
		return err
	}
	if err := os.Rename(name, path); err != nil {
		cleanup()
		return err
	}
	return nil
}
