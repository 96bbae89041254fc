// schema.go defines the SQLite database schema and provides schema execution
// helpers.
//
// Schema files are embedded from the sql/ directory and executed in
// alphabetical order (hence the numeric prefixes). Each table's schema is
// self-contained and reviewable, diffs stay clean when the schema changes,
// and the numbered prefixes make execution order deterministic.

package store

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"
)

//go:embed sql/*.sql
var schemas embed.FS

var (
	// ErrNotFound indicates the requested campaign, arc or thing does not
	// exist. Callers should check for this to distinguish missing data from
	// other errors.
	ErrNotFound = errors.New("entity not found")
	// ErrAlreadyExists indicates a slug collision within a campaign.
	ErrAlreadyExists = errors.New("entity already exists")
	// ErrUnknownField indicates a rich-text field name outside ArcFieldNames.
	ErrUnknownField = errors.New("unknown field")
)

// ExecEmbedded executes all .sql files from an embedded filesystem in
// alphabetical order. Each .sql file should use IF NOT EXISTS clauses for
// idempotency.
func ExecEmbedded(db *sql.DB, fsys embed.FS, dir string) error {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return fmt.Errorf("read schema directory: %w", err)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := dir + "/" + entry.Name()
		data, err := fsys.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		if _, err := db.Exec(string(data)); err != nil {
			return fmt.Errorf("exec %s: %w", entry.Name(), err)
		}
	}
	return nil
}

// execSchema executes the embedded core schema files.
func execSchema(db *sql.DB) error {
	return ExecEmbedded(db, schemas, "sql")
}
