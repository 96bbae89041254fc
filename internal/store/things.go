// things.go implements thing and thing-type CRUD plus arc attachment.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/KeeghanM/arc-aide-sub000/internal/slug"
	"github.com/KeeghanM/arc-aide-sub000/internal/validate"
)

const thingCols = `t.id, t.key, t.campaign_id, t.type_id, COALESCE(tt.name, ''), t.name, t.slug,
	t.description_doc, t.description_text, t.created_at, t.updated_at`

const thingFrom = ` FROM things t LEFT JOIN thing_types tt ON tt.id = t.type_id`

func scanThing(sc scanner) (Thing, error) {
	var t Thing
	var typeID sql.NullInt64
	err := sc.Scan(&t.ID, &t.Key, &t.CampaignID, &typeID, &t.TypeName, &t.Name, &t.Slug,
		&t.Description.Doc, &t.Description.Text, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return t, err
	}
	if typeID.Valid {
		t.TypeID = &typeID.Int64
	}
	return t, nil
}

// CreateThingType registers a category label for things in a campaign.
func (s *SQLiteStore) CreateThingType(ctx context.Context, campaignID int64, name string, opts WriteOptions) (*ThingType, error) {
	name, err := validate.Name(name, opts.MaxName)
	if err != nil {
		return nil, err
	}
	now := time.Now().Unix()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO thing_types (campaign_id, name, created_at) VALUES (?, ?, ?)`,
		campaignID, name, now)
	if isUniqueViolation(err) {
		return nil, ErrAlreadyExists
	}
	if err != nil {
		return nil, fmt.Errorf("create thing type %q: %w", name, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("create thing type %q: %w", name, err)
	}
	return &ThingType{ID: id, CampaignID: campaignID, Name: name, CreatedAt: now}, nil
}

// ThingTypes lists a campaign's thing types ordered by name.
func (s *SQLiteStore) ThingTypes(ctx context.Context, campaignID int64) ([]ThingType, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, campaign_id, name, created_at FROM thing_types
		 WHERE campaign_id = ? ORDER BY name`, campaignID)
	if err != nil {
		return nil, fmt.Errorf("list thing types: %w", err)
	}
	defer rows.Close()

	var out []ThingType
	for rows.Next() {
		var tt ThingType
		if err := rows.Scan(&tt.ID, &tt.CampaignID, &tt.Name, &tt.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan thing type: %w", err)
		}
		out = append(out, tt)
	}
	return out, rows.Err()
}

// CreateThing inserts a thing with an empty description.
func (s *SQLiteStore) CreateThing(ctx context.Context, campaignID int64, name string, typeID *int64, opts WriteOptions) (*Thing, error) {
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
	th := &Thing{Key: id, CampaignID: campaignID, TypeID: typeID, Name: name, Slug: sl,
		Description: Field{Doc: emptyDoc}, CreatedAt: now, UpdatedAt: now}

	err = s.Tx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`INSERT INTO things (key, campaign_id, type_id, name, slug, description_doc, description_text, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			id, campaignID, typeID, name, sl, emptyDoc, "", now, now)
		if isUniqueViolation(err) {
			return ErrAlreadyExists
		}
		if err != nil {
			return fmt.Errorf("create thing %q: %w", name, err)
		}
		th.ID, err = res.LastInsertId()
		if err != nil {
			return fmt.Errorf("create thing %q: %w", name, err)
		}
		return indexThingTx(ctx, tx, th)
	})
	if err != nil {
		return nil, err
	}
	return th, nil
}

// ThingBySlug resolves a thing within a campaign.
func (s *SQLiteStore) ThingBySlug(ctx context.Context, campaignID int64, sl string) (*Thing, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+thingCols+thingFrom+` WHERE t.campaign_id = ? AND t.slug = ?`, campaignID, sl)
	t, err := scanThing(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("thing %q: %w", sl, err)
	}
	return &t, nil
}

// Things lists a campaign's things ordered by name, optionally filtered by
// thing type.
func (s *SQLiteStore) Things(ctx context.Context, campaignID int64, typeID *int64) ([]Thing, error) {
	q := `SELECT ` + thingCols + thingFrom + ` WHERE t.campaign_id = ?`
	args := []any{campaignID}
	if typeID != nil {
		q += ` AND t.type_id = ?`
		args = append(args, *typeID)
	}
	q += ` ORDER BY t.name`

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list things: %w", err)
	}
	defer rows.Close()

	var out []Thing
	for rows.Next() {
		t, err := scanThing(rows)
		if err != nil {
			return nil, fmt.Errorf("scan thing: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// UpdateThingDescription writes a thing's description and refreshes its
// search index row in the same transaction.
func (s *SQLiteStore) UpdateThingDescription(ctx context.Context, campaignID int64, sl string, content Field, opts WriteOptions) error {
	if err := validate.Content(content.Doc, opts.MaxContent); err != nil {
		return err
	}
	return s.Tx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`UPDATE things SET description_doc = ?, description_text = ?, updated_at = ?
			 WHERE campaign_id = ? AND slug = ?`,
			content.Doc, content.Text, time.Now().Unix(), campaignID, sl)
		if err != nil {
			return fmt.Errorf("update thing %s: %w", sl, err)
		}
		rows, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("update thing %s: %w", sl, err)
		}
		if rows == 0 {
			return ErrNotFound
		}

		row := tx.QueryRowContext(ctx,
			`SELECT `+thingCols+thingFrom+` WHERE t.campaign_id = ? AND t.slug = ?`, campaignID, sl)
		t, err := scanThing(row)
		if err != nil {
			return fmt.Errorf("reload thing %s: %w", sl, err)
		}
		return indexThingTx(ctx, tx, &t)
	})
}

// DeleteThing removes a thing, its arc attachments and its index row.
func (s *SQLiteStore) DeleteThing(ctx context.Context, campaignID int64, sl string) error {
	return s.Tx(ctx, func(tx *sql.Tx) error {
		var id int64
		err := tx.QueryRowContext(ctx,
			`SELECT id FROM things WHERE campaign_id = ? AND slug = ?`, campaignID, sl).Scan(&id)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("delete thing %s: %w", sl, err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM things WHERE id = ?`, id); err != nil {
			return fmt.Errorf("delete thing %s: %w", sl, err)
		}
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM search_index WHERE kind = ? AND entity_id = ?`, KindThing, id); err != nil {
			return fmt.Errorf("deindex thing %s: %w", sl, err)
		}
		return nil
	})
}

// AttachThing links a thing to an arc. Attaching twice is a no-op.
func (s *SQLiteStore) AttachThing(ctx context.Context, campaignID int64, arcSlug, thingSlug string) error {
	arc, err := s.ArcBySlug(ctx, campaignID, arcSlug)
	if err != nil {
		return err
	}
	th, err := s.ThingBySlug(ctx, campaignID, thingSlug)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO arc_things (arc_id, thing_id, created_at) VALUES (?, ?, ?)`,
		arc.ID, th.ID, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("attach thing %s to arc %s: %w", thingSlug, arcSlug, err)
	}
	return nil
}

// DetachThing removes a thing's attachment to an arc.
func (s *SQLiteStore) DetachThing(ctx context.Context, campaignID int64, arcSlug, thingSlug string) error {
	arc, err := s.ArcBySlug(ctx, campaignID, arcSlug)
	if err != nil {
		return err
	}
	th, err := s.ThingBySlug(ctx, campaignID, thingSlug)
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM arc_things WHERE arc_id = ? AND thing_id = ?`, arc.ID, th.ID)
	if err != nil {
		return fmt.Errorf("detach thing %s from arc %s: %w", thingSlug, arcSlug, err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("detach thing %s from arc %s: %w", thingSlug, arcSlug, err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// ThingsForArc lists the things attached to an arc, ordered by name.
func (s *SQLiteStore) ThingsForArc(ctx context.Context, campaignID int64, arcSlug string) ([]Thing, error) {
	arc, err := s.ArcBySlug(ctx, campaignID, arcSlug)
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+thingCols+thingFrom+`
		 JOIN arc_things at ON at.thing_id = t.id
		 WHERE at.arc_id = ? ORDER BY t.name`, arc.ID)
	if err != nil {
		return nil, fmt.Errorf("things for arc %s: %w", arcSlug, err)
	}
	defer rows.Close()

	var out []Thing
	for rows.Next() {
		t, err := scanThing(rows)
		if err != nil {
			return nil, fmt.Errorf("scan thing: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
