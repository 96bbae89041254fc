// search.go runs ranked full-text queries against the FTS5 index.

package store

import (
	"context"
	"fmt"

	"github.com/KeeghanM/arc-aide-sub000/internal/search"
)

// SearchRank executes an FTS5 MATCH scoped to one campaign, ordered by
// bm25 rank (best first), with a highlighted snippet per hit.
func (s *SQLiteStore) SearchRank(ctx context.Context, q search.IndexQuery) ([]search.Hit, error) {
	sql := `SELECT kind, entity_id, campaign_id, title, content, slug, rank,
		snippet(search_index, 4, '<mark>', '</mark>', '…', 12)
		FROM search_index
		WHERE search_index MATCH ? AND campaign_id = ?`
	args := []any{q.Match, q.CampaignID}
	if q.Kind != search.KindAny {
		sql += ` AND kind = ?`
		args = append(args, q.Kind)
	}
	sql += ` ORDER BY rank`
	if q.Limit > 0 {
		sql += ` LIMIT ?`
		args = append(args, q.Limit)
	}

	rows, err := s.db.QueryContext(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", q.Match, err)
	}
	defer rows.Close()

	var hits []search.Hit
	for rows.Next() {
		var h search.Hit
		if err := rows.Scan(&h.Kind, &h.EntityID, &h.CampaignID, &h.Title, &h.Content, &h.Slug, &h.Rank, &h.Highlight); err != nil {
			return nil, fmt.Errorf("scan search hit: %w", err)
		}
		hits = append(hits, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("search %q: %w", q.Match, err)
	}
	return hits, nil
}
