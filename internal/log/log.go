// Package log provides centralised audit logging for arcaide operations.
// Logs are stored in ~/.arcaide/log/arcaide-log.db and track all CLI
// commands, web API requests and MCP tool invocations across databases.
//
// # Fluent API
//
// Use the fluent builder API to construct and write log entries:
//
//	log.Event("arc:rename", "rename").
//		Campaign(campaign).
//		Entity("arc", oldSlug).
//		Resolved(res.NewSlug).
//		Write(err)
//
//	log.Event("search:query", "search").
//		Campaign(campaign).
//		Detail("query", query).
//		Detail("count", len(resp.Results)).
//		Write(err)
//
// The source parameter follows the format "{area}:{command}" for CLI
// commands, "web:{route}" for API handlers or "mcp:{tool}" for MCP tools.
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
	author string
	mu     sync.Mutex
)

// Entry represents a single log entry.
type Entry struct {
	Source   string // e.g., "arc:rename", "web:search", "mcp:arcaide_search"
	Action   string // verb: create, read, update, delete, rename, search
	Author   string // who performed the action (configured author, "web" or "mcp")
	Campaign string // input: campaign slug the operation is scoped to
	Kind     string // input: entity kind (arc, thing) when targeted
	Slug     string // input: entity slug requested

	// Output fields - populated after operation succeeds
	ResolvedSlug string // output: final slug (differs from input after renames)

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
//   - CLI commands: "{area}:{command}" (e.g., "arc:rename", "search:query")
//   - Web handlers: "web:{route}" (e.g., "web:search")
//   - MCP tools: "mcp:{tool}" (e.g., "mcp:arcaide_rename")
//
// The action describes what operation was performed:
//   - "create", "read", "update", "delete", "rename", "search", "list", etc.
func Event(source, action string) *Builder {
	mu.Lock()
	who := author
	mu.Unlock()
	return &Builder{
		entry: Entry{
			Source: source,
			Action: action,
			Author: who,
			Start:  time.Now().Unix(),
		},
	}
}

// SetAuthor sets who subsequent entries are attributed to. The CLI sets the
// configured author.name; the web server and MCP server set "web" and "mcp".
func SetAuthor(who string) {
	mu.Lock()
	author = who
	mu.Unlock()
}

// Campaign sets the campaign slug this operation is scoped to.
// Leave unset for operations above campaign scope (e.g., campaign listing).
func (b *Builder) Campaign(slug string) *Builder {
	b.entry.Campaign = slug
	return b
}

// Entity sets the kind and slug of the entity this operation targets.
//
// Example:
//
//	log.Event("arc:update", "update").Entity("arc", slug)
func (b *Builder) Entity(kind, slug string) *Builder {
	b.entry.Kind = kind
	b.entry.Slug = slug
	return b
}

// Resolved sets the final slug produced by the operation (output).
//
// Use when the resulting slug differs from the input, which is the rename
// case: the input slug is the old one, Resolved carries the new one.
func (b *Builder) Resolved(slug string) *Builder {
	b.entry.ResolvedSlug = slug
	return b
}

// Detail adds a key-value pair to the log entry's detail map.
//
// Use for operation-specific data that doesn't fit standard fields:
// search queries, result counts, rewrite counts, etc.
// Can be called multiple times to add multiple details.
//
// Example:
//
//	log.Event("search:query", "search").
//		Detail("query", query).
//		Detail("count", len(resp.Results))
func (b *Builder) Detail(key string, value any) *Builder {
	if b.entry.Detail == nil {
		b.entry.Detail = make(map[string]any)
	}
	b.entry.Detail[key] = value
	return b
}

// Write writes the log entry to the database, deriving success/failure from err.
//
// If err is nil, the entry is logged as successful.
// If err is non-nil, the entry is logged as failed with the error message.
//
// This is the standard way to complete a log entry after an operation.
//
// Example:
//
//	arc, err := svc.ArcBySlug(ctx, campaign, slug)
//	log.Event("arc:show", "read").Campaign(campaign).Entity("arc", slug).Write(err)
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

// Open initialises the global logger. Safe to call multiple times.
// Errors are returned but callers may choose to ignore them (best-effort logging).
func Open() error {
	mu.Lock()
	defer mu.Unlock()

	if global != nil {
		return nil
	}

	p := dbPath()
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

	global = &Logger{db: db}
	return nil
}

// SetDatabase sets the database identifier for subsequent log entries.
// The path should be the absolute path to the campaign database file.
func SetDatabase(path string) {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.database = hash(path)
	}
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

// Close closes the global logger.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.db.Close()
		global = nil
	}
}
