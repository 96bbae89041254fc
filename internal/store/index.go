// index.go maintains the FTS5 search index and the vocabulary alongside
// entity writes. Callers pass the enclosing transaction so an entity and
// its index row never diverge.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/KeeghanM/arc-aide-sub000/internal/document"
	"github.com/KeeghanM/arc-aide-sub000/internal/search"
)

func emptyDocJSON() (string, error) {
	return document.Doc{}.Normalize().JSON()
}

// arcContent joins an arc's field texts in declaration order, separated by
// blank lines, forming the indexed content blob.
func arcContent(a *Arc) string {
	parts := make([]string, 0, len(ArcFieldNames))
	for _, f := range ArcFieldNames {
		parts = append(parts, a.Fields[f].Text)
	}
	return strings.Join(parts, "\n\n")
}

// indexArcTx replaces the arc's search index row and feeds its title and
// content into the vocabulary.
func indexArcTx(ctx context.Context, tx *sql.Tx, a *Arc) error {
	content := arcContent(a)
	if err := replaceIndexRowTx(ctx, tx, KindArc, a.ID, a.CampaignID, a.Name, content, a.Slug); err != nil {
		return fmt.Errorf("index arc %s: %w", a.Slug, err)
	}
	return bumpVocabTx(ctx, tx, a.Name+" "+content)
}

// indexThingTx replaces the thing's search index row and feeds its title
// and description into the vocabulary.
func indexThingTx(ctx context.Context, tx *sql.Tx, t *Thing) error {
	if err := replaceIndexRowTx(ctx, tx, KindThing, t.ID, t.CampaignID, t.Name, t.Description.Text, t.Slug); err != nil {
		return fmt.Errorf("index thing %s: %w", t.Slug, err)
	}
	return bumpVocabTx(ctx, tx, t.Name+" "+t.Description.Text)
}

func replaceIndexRowTx(ctx context.Context, tx *sql.Tx, kind string, entityID, campaignID int64, title, content, sl string) error {
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM search_index WHERE kind = ? AND entity_id = ?`, kind, entityID); err != nil {
		return err
	}
	_, err := tx.ExecContext(ctx,
		`INSERT INTO search_index (kind, entity_id, campaign_id, title, content, slug)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		kind, entityID, campaignID, title, content, sl)
	return err
}

// bumpVocabTx upserts every token of text into the vocabulary, bumping
// frequencies for terms already present.
func bumpVocabTx(ctx context.Context, tx *sql.Tx, text string) error {
	terms := search.Tokenize(text)
	if len(terms) == 0 {
		return nil
	}
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO vocabulary (term, frequency, created_at) VALUES (?, 1, unixepoch())
		 ON CONFLICT(term) DO UPDATE SET frequency = frequency + 1`)
	if err != nil {
		return fmt.Errorf("prepare vocabulary upsert: %w", err)
	}
	defer stmt.Close()
	for _, term := range terms {
		if _, err := stmt.ExecContext(ctx, term); err != nil {
			return fmt.Errorf("upsert vocabulary term %q: %w", term, err)
		}
	}
	return nil
}
