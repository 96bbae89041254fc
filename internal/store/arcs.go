// arcs.go implements arc CRUD.
//
// Every mutating operation that touches a rich-text field refreshes the
// arc's search index row and the vocabulary inside the same transaction,
// keeping the document, its plain-text shadow and the index consistent.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/KeeghanM/arc-aide-sub000/internal/slug"
	"github.com/KeeghanM/arc-aide-sub000/internal/validate"
)

// arcCols lists the arcs columns in scanArc order.
var arcCols = func() string {
	cols := []string{"id", "key", "campaign_id", "parent_id", "name", "slug"}
	for _, f := range ArcFieldNames {
		cols = append(cols, f+"_doc", f+"_text")
	}
	cols = append(cols, "created_at", "updated_at")
	return strings.Join(cols, ", ")
}()

func scanArc(sc scanner) (Arc, error) {
	var a Arc
	var parent sql.NullInt64
	fields := make([]Field, len(ArcFieldNames))

	dest := []any{&a.ID, &a.Key, &a.CampaignID, &parent, &a.Name, &a.Slug}
	for i := range fields {
		dest = append(dest, &fields[i].Doc, &fields[i].Text)
	}
	dest = append(dest, &a.CreatedAt, &a.UpdatedAt)

	if err := sc.Scan(dest...); err != nil {
		return a, err
	}
	if parent.Valid {
		a.ParentID = &parent.Int64
	}
	a.Fields = make(map[string]Field, len(ArcFieldNames))
	for i, name := range ArcFieldNames {
		a.Fields[name] = fields[i]
	}
	return a, nil
}

// CreateArc inserts an arc with every rich-text field initialised to the
// normalized empty document (a document is never stored empty).
func (s *SQLiteStore) CreateArc(ctx context.Context, campaignID int64, name string, parentID *int64, opts WriteOptions) (*Arc, error) {
	name, err := validate.Name(name, opts.MaxName)
	if err != nil {
		return nil, err
	}
	sl := slug.Make(name)
	if err := validate.Slug(sl); err != nil {
		return nil, err
	}
	id, err := genID()
	if err != nil {
		return nil, err
	}
	emptyDoc, err := emptyDocJSON()
	if err != nil {
		return nil, err
	}

	now := time.Now().Unix()
	arc := &Arc{Key: id, CampaignID: campaignID, ParentID: parentID, Name: name, Slug: sl,
		Fields: make(map[string]Field, len(ArcFieldNames)), CreatedAt: now, UpdatedAt: now}

	err = s.Tx(ctx, func(tx *sql.Tx) error {
		cols := []string{"key", "campaign_id", "parent_id", "name", "slug", "created_at", "updated_at"}
		args := []any{id, campaignID, parentID, name, sl, now, now}
		for _, f := range ArcFieldNames {
			cols = append(cols, f+"_doc", f+"_text")
			args = append(args, emptyDoc, "")
			arc.Fields[f] = Field{Doc: emptyDoc}
		}
		q := `INSERT INTO arcs (` + strings.Join(cols, ", ") + `) VALUES (?` + strings.Repeat(", ?", len(cols)-1) + `)`

		res, err := tx.ExecContext(ctx, q, args...)
		if isUniqueViolation(err) {
			return ErrAlreadyExists
		}
		if err != nil {
			return fmt.Errorf("create arc %q: %w", name, err)
		}
		arc.ID, err = res.LastInsertId()
		if err != nil {
			return fmt.Errorf("create arc %q: %w", name, err)
		}
		return indexArcTx(ctx, tx, arc)
	})
	if err != nil {
		return nil, err
	}
	return arc, nil
}

// ArcBySlug resolves an arc within a campaign.
func (s *SQLiteStore) ArcBySlug(ctx context.Context, campaignID int64, sl string) (*Arc, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+arcCols+` FROM arcs WHERE campaign_id = ? AND slug = ?`, campaignID, sl)
	a, err := scanArc(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("arc %q: %w", sl, err)
	}
	return &a, nil
}

// Arcs lists a campaign's arcs ordered by name. A non-nil parentID limits
// the listing to direct children, enabling tree navigation.
func (s *SQLiteStore) Arcs(ctx context.Context, campaignID int64, parentID *int64) ([]Arc, error) {
	q := `SELECT ` + arcCols + ` FROM arcs WHERE campaign_id = ?`
	args := []any{campaignID}
	if parentID != nil {
		q += ` AND parent_id = ?`
		args = append(args, *parentID)
	}
	q += ` ORDER BY name`

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list arcs: %w", err)
	}
	defer rows.Close()

	var out []Arc
	for rows.Next() {
		a, err := scanArc(rows)
		if err != nil {
			return nil, fmt.Errorf("scan arc: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// UpdateArcField writes one rich-text field. The document blob and its
// plain-text shadow are written together, and the search index and
// vocabulary refresh in the same transaction.
func (s *SQLiteStore) UpdateArcField(ctx context.Context, campaignID int64, sl, field string, content Field, opts WriteOptions) error {
	if !slices.Contains(ArcFieldNames, field) {
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	if err := validate.Content(content.Doc, opts.MaxContent); err != nil {
		return err
	}

	return s.Tx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`UPDATE arcs SET `+field+`_doc = ?, `+field+`_text = ?, updated_at = ?
			 WHERE campaign_id = ? AND slug = ?`,
			content.Doc, content.Text, time.Now().Unix(), campaignID, sl)
		if err != nil {
			return fmt.Errorf("update arc field %s.%s: %w", sl, field, err)
		}
		rows, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("update arc field %s.%s: %w", sl, field, err)
		}
		if rows == 0 {
			return ErrNotFound
		}

		row := tx.QueryRowContext(ctx,
			`SELECT `+arcCols+` FROM arcs WHERE campaign_id = ? AND slug = ?`, campaignID, sl)
		a, err := scanArc(row)
		if err != nil {
			return fmt.Errorf("reload arc %s: %w", sl, err)
		}
		return indexArcTx(ctx, tx, &a)
	})
}

// DeleteArc removes an arc and its index row. Children are re-parented to
// the root by the foreign key; link markers referencing the arc are left
// dangling rather than cleaned up.
func (s *SQLiteStore) DeleteArc(ctx context.Context, campaignID int64, sl string) error {
	return s.Tx(ctx, func(tx *sql.Tx) error {
		var id int64
		err := tx.QueryRowContext(ctx,
			`SELECT id FROM arcs WHERE campaign_id = ? AND slug = ?`, campaignID, sl).Scan(&id)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("delete arc %s: %w", sl, err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM arcs WHERE id = ?`, id); err != nil {
			return fmt.Errorf("delete arc %s: %w", sl, err)
		}
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM search_index WHERE kind = ? AND entity_id = ?`, KindArc, id); err != nil {
			return fmt.Errorf("deindex arc %s: %w", sl, err)
		}
		return nil
	})
}
