// sqlite_ops.go provides SQLite connection management and low-level helpers.
//
// Separated to isolate SQLite-specific concerns (pragmas, driver
// registration) from business logic. This is the only file that imports the
// SQLite driver, making it easier to swap implementations if needed.
//
// Design: WAL mode with busy timeout balances concurrency and durability.
// WAL allows readers to proceed while a rename sweep's transaction is open,
// and the busy timeout prevents "database is locked" errors when the web
// server handles overlapping requests.

package store

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/base32"
	"fmt"
	"strings"

	// Register sqlite driver
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using SQLite with WAL mode for concurrent
// access. Full-text search runs on FTS5; the vocabulary nearest-neighbour
// query pre-filters candidates in SQL and scores edit distance in Go, so
// no spellfix extension is required.
type SQLiteStore struct {
	db *sql.DB
}

// Compile-time interface compliance check. If a method is missing or has
// the wrong signature the build fails immediately with a clear error,
// rather than failing at runtime.
var _ Store = (*SQLiteStore)(nil)

// Open opens the SQLite database file at path and returns a configured
// SQLiteStore. The caller should call Close on the returned store.
//
// Pragmas ride in the DSN so every pooled connection gets them, not just
// the first:
//   - WAL mode: readers proceed while a rename sweep's transaction is open.
//     Trade-off: creates -wal and -shm files alongside the db.
//   - busy_timeout 5s: most operations complete in milliseconds; the
//     timeout prevents spurious lock errors when web requests overlap.
//   - synchronous NORMAL: with WAL this is safe against corruption and
//     much faster than FULL. The only risk is losing the last transaction
//     on OS crash, acceptable for a campaign notebook.
//   - foreign_keys ON: campaign deletion cascades through entity tables.
func Open(path string) (*SQLiteStore, error) {
	dsn := path + `?_pragma=journal_mode(WAL)` +
		`&_pragma=busy_timeout(5000)` +
		`&_pragma=synchronous(NORMAL)` +
		`&_pragma=foreign_keys(1)`
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}
	return &SQLiteStore{db: db}, nil
}

// Init creates tables and indexes if they don't exist. Safe to call multiple
// times; the schema uses IF NOT EXISTS throughout.
func (s *SQLiteStore) Init() error {
	return execSchema(s.db)
}

// Close releases the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// DB exposes the underlying connection for callers needing custom queries.
func (s *SQLiteStore) DB() *sql.DB {
	return s.db
}

// scanner abstracts sql.Row and sql.Rows, enabling a single scan function
// to handle both single-row and multi-row queries.
type scanner interface {
	Scan(dest ...any) error
}

// Tx executes fn within a database transaction, handling Begin, Commit and
// Rollback automatically. If fn returns an error the transaction is rolled
// back; otherwise it is committed. Rollback is deferred to handle panics
// and early returns. Context cancellation aborts the transaction at the
// next database call.
func (s *SQLiteStore) Tx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }() // no-op after commit

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// genID creates a unique 8-character identifier using crypto/rand.
// Used for campaign, arc and thing public keys to enable stable external
// references that survive renames.
func genID() (string, error) {
	b := make([]byte, 5) // 5 bytes = 8 base32 chars
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate id: %w", err)
	}
	return strings.ToLower(base32.StdEncoding.EncodeToString(b)), nil
}

// isUniqueViolation reports whether err is SQLite's UNIQUE constraint error,
// used to translate slug collisions into ErrAlreadyExists.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
