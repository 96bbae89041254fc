// campaigns.go implements campaign CRUD.
//
// Campaign deletion cascades through arcs, things and thing types via
// foreign keys, but the FTS virtual table has no foreign key support, so
// its rows are removed explicitly in the same transaction.

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

const campaignCols = `id, key, name, slug, description_doc, description_text, created_at, updated_at`

func scanCampaign(sc scanner) (Campaign, error) {
	var c Campaign
	err := sc.Scan(&c.ID, &c.Key, &c.Name, &c.Slug,
		&c.Description.Doc, &c.Description.Text, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

// CreateCampaign inserts a campaign with a slug derived from its name.
// Returns ErrAlreadyExists when another campaign already owns that slug.
func (s *SQLiteStore) CreateCampaign(ctx context.Context, name string, opts WriteOptions) (*Campaign, error) {
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

	now := time.Now().Unix()
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO campaigns (key, name, slug, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`,
		id, name, sl, now, now)
	if isUniqueViolation(err) {
		return nil, ErrAlreadyExists
	}
	if err != nil {
		return nil, fmt.Errorf("create campaign %q: %w", name, err)
	}
	rowID, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("create campaign %q: %w", name, err)
	}

	return &Campaign{ID: rowID, Key: id, Name: name, Slug: sl, CreatedAt: now, UpdatedAt: now}, nil
}

// CampaignBySlug resolves a campaign by slug, returning ErrNotFound when
// absent.
func (s *SQLiteStore) CampaignBySlug(ctx context.Context, sl string) (*Campaign, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+campaignCols+` FROM campaigns WHERE slug = ?`, sl)
	c, err := scanCampaign(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("campaign %q: %w", sl, err)
	}
	return &c, nil
}

// Campaigns lists all campaigns ordered by name.
func (s *SQLiteStore) Campaigns(ctx context.Context) ([]Campaign, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+campaignCols+` FROM campaigns ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list campaigns: %w", err)
	}
	defer rows.Close()

	var out []Campaign
	for rows.Next() {
		c, err := scanCampaign(rows)
		if err != nil {
			return nil, fmt.Errorf("scan campaign: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// DeleteCampaign removes a campaign and everything scoped to it. Entity
// tables cascade via foreign keys; search index rows are swept explicitly.
func (s *SQLiteStore) DeleteCampaign(ctx context.Context, id int64) error {
	return s.Tx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM campaigns WHERE id = ?`, id)
		if err != nil {
			return fmt.Errorf("delete campaign %d: %w", id, err)
		}
		rows, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("delete campaign %d: %w", id, err)
		}
		if rows == 0 {
			return ErrNotFound
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM search_index WHERE campaign_id = ?`, id); err != nil {
			return fmt.Errorf("clear search index for campaign %d: %w", id, err)
		}
		return nil
	})
}
