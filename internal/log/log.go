// Package log provides centralised audit logging for mystuff operations.
// Entries are stored in <data>/log/mystuff-log.db and record every CLI
// command and MCP tool invocation against that data directory.
//
// # Fluent API
//
// Use the fluent builder API to construct and write log entries:
//
//	log.Event("link:add", "add").
//		Author(cmd.Author()).
//		URL(u).
//		Outcome("added").
//		Write(err)
//
//	log.Event("link:list", "list").
//		Detail("count", len(links)).
//		Write(err)
//
// The source parameter follows the format "{extension}:{command}" for CLI
// commands or "mcp:{tool}" for MCP tools. Examples: "link:add",
// "link:tags", "mcp:mystuff_link_add".
//
// Diagnostics that are not part of the audit trail go through log/slog;
// see [SetVerbose].
package log

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

var (
	global *Logger
	mu     sync.Mutex
)

// Entry represents a single log entry.
type Entry struct {
	Source string // e.g., "link:add", "mcp:mystuff_link_add"
	Author string // who performed the action
	Action string // verb: add, list, tags, config, etc.
	URL    string // input: link url the operation targeted

	// Outcome is populated after the operation succeeds, e.g. "added" or
	// "exists" for an add.
	Outcome string

	// Timing
	Start int64 // unix timestamp when Event() called
	End   int64 // unix timestamp when Write() called

	Success bool           // whether operation succeeded
	Error   string         // error message if failed
	Detail  map[string]any // additional operation-specific data
}

// Builder constructs a log entry using a fluent API.
// Create with [Event], chain methods to set fields, then call [Builder.Write]
// to write the entry.
type Builder struct {
	entry Entry
}

// Event creates a new log entry builder for an operation.
//
// The source identifies where the operation originated:
//   - CLI commands: "{extension}:{command}" (e.g., "link:add", "core:init")
//   - MCP tools: "mcp:{tool}" (e.g., "mcp:mystuff_link_list")
func Event(source, action string) *Builder {
	return &Builder{
		entry: Entry{
			Source: source,
			Action: action,
			Start:  time.Now().Unix(),
		},
	}
}

// Author sets who performed the operation.
//
// For CLI commands, use cmd.Author() which returns the configured author.
// For MCP tools, use "mcp" as the author.
func (b *Builder) Author(author string) *Builder {
	b.entry.Author = author
	return b
}

// URL sets the link url this operation affects.
func (b *Builder) URL(u string) *Builder {
	b.entry.URL = u
	return b
}

// Outcome records what the operation did (output).
func (b *Builder) Outcome(o string) *Builder {
	b.entry.Outcome = o
	return b
}

// Detail adds a key-value pair to the log entry's detail map.
//
// Use for operation-specific data that doesn't fit standard fields:
// tag lists, result counts, config keys, etc.
// Can be called multiple times to add multiple details.
func (b *Builder) Detail(key string, value any) *Builder {
	if b.entry.Detail == nil {
		b.entry.Detail = make(map[string]any)
	}
	b.entry.Detail[key] = value
	return b
}

// Write writes the log entry to the database, deriving success/failure from err.
//
// Example:
//
//	res, err := svc.Add(ctx, u, opts)
//	log.Event("link:add", "add").URL(u).Write(err)
//	if err != nil {
//		return err
//	}
func (b *Builder) Write(err error) {
	b.entry.End = time.Now().Unix()
	b.entry.Success = err == nil
	if err != nil {
		b.entry.Error = err.Error()
	}
	Log(b.entry)
}

// Open initialises the global logger for the data directory dir. Safe to
// call multiple times; only the first call opens a database.
// Errors are returned but callers may choose to ignore them (best-effort logging).
func Open(dir string) error {
	mu.Lock()
	defer mu.Unlock()

	if global != nil {
		return nil
	}

	p := dbPathFunc(dir)
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return err
	}

	db, err := sql.Open("sqlite", p)
	if err != nil {
		return err
	}

	if err := migrate(db); err != nil {
		db.Close()
		return err
	}

	global = &Logger{db: db, path: p, project: hash(dir)}
	return nil
}

// Log writes an entry. Safe to call if logger not initialised (no-op).
func Log(e Entry) {
	mu.Lock()
	l := global
	mu.Unlock()

	if l == nil {
		return
	}
	l.log(e)
}

// DBPath returns the path of the open log database, or "" when closed.
func DBPath() string {
	mu.Lock()
	defer mu.Unlock()
	if global == nil {
		return ""
	}
	return global.path
}

// Close closes the global logger.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.db.Close()
		global = nil
	}
}
