// vocab.go serves the spell-correction vocabulary. Candidate retrieval
// prefilters by term length so the Levenshtein comparison only sees terms
// that could possibly be within the edit-distance window.

package store

import (
	"context"
	"fmt"

	"github.com/KeeghanM/arc-aide-sub000/internal/search"
)

// TermsNear returns vocabulary terms whose length is within maxDistance of
// the probe term, with their frequencies. The caller computes exact edit
// distances; this is only the cheap length-window cut.
func (s *SQLiteStore) TermsNear(ctx context.Context, term string, maxDistance int) ([]search.Term, error) {
	n := len([]rune(term))
	rows, err := s.db.QueryContext(ctx,
		`SELECT term, frequency FROM vocabulary
		 WHERE length(term) BETWEEN ? AND ?
		 ORDER BY frequency DESC, term`,
		n-maxDistance, n+maxDistance)
	if err != nil {
		return nil, fmt.Errorf("vocabulary near %q: %w", term, err)
	}
	defer rows.Close()

	var out []search.Term
	for rows.Next() {
		var t search.Term
		if err := rows.Scan(&t.Term, &t.Frequency); err != nil {
			return nil, fmt.Errorf("scan vocabulary term: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
