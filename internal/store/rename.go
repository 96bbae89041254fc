// rename.go implements slug renames with synchronous link propagation.
//
// A rename rewrites [[kind#old-slug]] markers as literal substrings across
// every document in the campaign, in both the serialized document and its
// plain-text shadow, plus the search index content, all inside the same
// transaction as the entity's own row update. Markers are opaque text to
// SQL replace(): the rewrite never parses documents and so cannot corrupt
// surrounding content.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/KeeghanM/arc-aide-sub000/internal/link"
	"github.com/KeeghanM/arc-aide-sub000/internal/slug"
	"github.com/KeeghanM/arc-aide-sub000/internal/validate"
)

// RenameArc renames an arc and sweeps [[arc#oldSlug]] markers campaign-wide.
func (s *SQLiteStore) RenameArc(ctx context.Context, campaignID int64, oldSlug, newName string, opts WriteOptions) (RenameResult, error) {
	return s.rename(ctx, campaignID, KindArc, oldSlug, newName, opts)
}

// RenameThing renames a thing and sweeps [[thing#oldSlug]] markers campaign-wide.
func (s *SQLiteStore) RenameThing(ctx context.Context, campaignID int64, oldSlug, newName string, opts WriteOptions) (RenameResult, error) {
	return s.rename(ctx, campaignID, KindThing, oldSlug, newName, opts)
}

func (s *SQLiteStore) rename(ctx context.Context, campaignID int64, kind, oldSlug, newName string, opts WriteOptions) (RenameResult, error) {
	newName, err := validate.Name(newName, opts.MaxName)
	if err != nil {
		return RenameResult{}, err
	}
	newSlug := slug.Make(newName)
	if err := validate.Slug(newSlug); err != nil {
		return RenameResult{}, err
	}
	res := RenameResult{OldSlug: oldSlug, NewSlug: newSlug}

	table := "arcs"
	if kind == KindThing {
		table = "things"
	}

	err = s.Tx(ctx, func(tx *sql.Tx) error {
		var id int64
		err := tx.QueryRowContext(ctx,
			`SELECT id FROM `+table+` WHERE campaign_id = ? AND slug = ?`,
			campaignID, oldSlug).Scan(&id)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("rename %s %s: %w", kind, oldSlug, err)
		}

		_, err = tx.ExecContext(ctx,
			`UPDATE `+table+` SET name = ?, slug = ?, updated_at = ? WHERE id = ?`,
			newName, newSlug, time.Now().Unix(), id)
		if isUniqueViolation(err) {
			return ErrAlreadyExists
		}
		if err != nil {
			return fmt.Errorf("rename %s %s: %w", kind, oldSlug, err)
		}
		if _, err := tx.ExecContext(ctx,
			`UPDATE search_index SET title = ?, slug = ? WHERE kind = ? AND entity_id = ?`,
			newName, newSlug, kind, id); err != nil {
			return fmt.Errorf("reindex %s %s: %w", kind, newSlug, err)
		}

		if newSlug == oldSlug {
			return nil
		}
		return sweepLinksTx(ctx, tx, campaignID, kind, oldSlug, newSlug, &res)
	})
	if err != nil {
		return RenameResult{}, err
	}
	return res, nil
}

// sweepLinksTx rewrites every [[kind#oldSlug]] marker in the campaign's
// documents to [[kind#newSlug]] and keeps the search index content in step.
func sweepLinksTx(ctx context.Context, tx *sql.Tx, campaignID int64, kind, oldSlug, newSlug string, res *RenameResult) error {
	oldMarker := link.Build(kind, oldSlug)
	newMarker := link.Build(kind, newSlug)
	now := time.Now().Unix()

	// Arc fields: every _doc/_text pair is swept. The serialized document
	// stores marker text byte-for-byte, so replace() on the JSON blob is
	// equivalent to rewriting the editor tree.
	var arcSets []string
	for _, f := range ArcFieldNames {
		arcSets = append(arcSets,
			f+`_doc = replace(`+f+`_doc, ?, ?)`,
			f+`_text = replace(`+f+`_text, ?, ?)`)
	}
	arcArgs := make([]any, 0, len(arcSets)*2+2+len(ArcFieldNames))
	for range arcSets {
		arcArgs = append(arcArgs, oldMarker, newMarker)
	}
	arcArgs = append(arcArgs, now, campaignID)
	for range ArcFieldNames {
		arcArgs = append(arcArgs, oldMarker)
	}
	arcRes, err := tx.ExecContext(ctx,
		`UPDATE arcs SET `+strings.Join(arcSets, ", ")+`, updated_at = ?
		 WHERE campaign_id = ? AND (`+arcMatchClause()+`)`,
		arcArgs...)
	if err != nil {
		return fmt.Errorf("sweep arcs for %s: %w", oldMarker, err)
	}
	res.ArcsRewritten, err = arcRes.RowsAffected()
	if err != nil {
		return fmt.Errorf("sweep arcs for %s: %w", oldMarker, err)
	}

	thingRes, err := tx.ExecContext(ctx,
		`UPDATE things SET
			description_doc = replace(description_doc, ?, ?),
			description_text = replace(description_text, ?, ?),
			updated_at = ?
		 WHERE campaign_id = ? AND instr(description_text, ?) > 0`,
		oldMarker, newMarker, oldMarker, newMarker, now, campaignID, oldMarker)
	if err != nil {
		return fmt.Errorf("sweep things for %s: %w", oldMarker, err)
	}
	res.ThingsRewritten, err = thingRes.RowsAffected()
	if err != nil {
		return fmt.Errorf("sweep things for %s: %w", oldMarker, err)
	}

	// The index stores the concatenated plain text, so it needs the same
	// literal rewrite to stay searchable under the new slug.
	rows, err := tx.QueryContext(ctx,
		`SELECT rowid, content FROM search_index
		 WHERE campaign_id = ? AND instr(content, ?) > 0`,
		campaignID, oldMarker)
	if err != nil {
		return fmt.Errorf("sweep index for %s: %w", oldMarker, err)
	}
	type indexRow struct {
		rowid   int64
		content string
	}
	var stale []indexRow
	for rows.Next() {
		var r indexRow
		if err := rows.Scan(&r.rowid, &r.content); err != nil {
			rows.Close()
			return fmt.Errorf("sweep index for %s: %w", oldMarker, err)
		}
		stale = append(stale, r)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("sweep index for %s: %w", oldMarker, err)
	}
	for _, r := range stale {
		if _, err := tx.ExecContext(ctx,
			`UPDATE search_index SET content = ? WHERE rowid = ?`,
			strings.ReplaceAll(r.content, oldMarker, newMarker), r.rowid); err != nil {
			return fmt.Errorf("sweep index for %s: %w", oldMarker, err)
		}
	}
	return nil
}

// arcMatchClause builds the instr() disjunction over every arc text column.
// Matching on the plain-text shadows is sufficient: a marker present in a
// document is always present in its shadow.
func arcMatchClause() string {
	conds := make([]string, len(ArcFieldNames))
	for i, f := range ArcFieldNames {
		conds[i] = `instr(` + f + `_text, ?) > 0`
	}
	return strings.Join(conds, " OR ")
}

// AffectedByRename lists the documents a rename of kind#oldSlug would
// rewrite, without writing anything. Each arc field with a hit is reported
// separately so previews can diff field by field.
func (s *SQLiteStore) AffectedByRename(ctx context.Context, campaignID int64, kind, oldSlug string) ([]AffectedDoc, error) {
	if err := validate.Kind(kind, false); err != nil {
		return nil, err
	}
	marker := link.Build(kind, oldSlug)

	var out []AffectedDoc
	for _, f := range ArcFieldNames {
		rows, err := s.db.QueryContext(ctx,
			`SELECT slug, `+f+`_text FROM arcs
			 WHERE campaign_id = ? AND instr(`+f+`_text, ?) > 0 ORDER BY slug`,
			campaignID, marker)
		if err != nil {
			return nil, fmt.Errorf("preview rename %s: %w", marker, err)
		}
		for rows.Next() {
			d := AffectedDoc{Kind: KindArc, Field: f}
			if err := rows.Scan(&d.Slug, &d.Text); err != nil {
				rows.Close()
				return nil, fmt.Errorf("preview rename %s: %w", marker, err)
			}
			out = append(out, d)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("preview rename %s: %w", marker, err)
		}
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT slug, description_text FROM things
		 WHERE campaign_id = ? AND instr(description_text, ?) > 0 ORDER BY slug`,
		campaignID, marker)
	if err != nil {
		return nil, fmt.Errorf("preview rename %s: %w", marker, err)
	}
	defer rows.Close()
	for rows.Next() {
		d := AffectedDoc{Kind: KindThing, Field: "description"}
		if err := rows.Scan(&d.Slug, &d.Text); err != nil {
			return nil, fmt.Errorf("preview rename %s: %w", marker, err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
