// correct.go implements fuzzy term correction against the vocabulary.
//
// Correction is best-effort by design: an unavailable vocabulary backend
// must never fail the search. The Corrector returns a typed result with a
// Degraded flag instead of an error, and the caller branches explicitly -
// no exception-style suppression.

package search

import (
	"context"
	"sort"
	"strings"
)

// MaxEditDistance is the furthest a vocabulary entry may be from a query
// term and still be offered as a correction.
const MaxEditDistance = 2

// Term is a vocabulary entry: an observed term and how often indexing has
// seen it. Frequency is advisory and only used for tie-breaking.
type Term struct {
	Term      string
	Frequency int64
}

// Vocabulary is the read side of the observed-term index. TermsNear returns
// candidate entries for a lowercased term; implementations may over-return
// (for example by filtering on length only) since the Corrector re-checks
// true edit distance.
type Vocabulary interface {
	TermsNear(ctx context.Context, term string, maxDistance int) ([]Term, error)
}

// Corrections maps each distinct lowercased query term to its best-effort
// corrected spelling. Degraded is set when the vocabulary backend failed
// and every term was mapped to itself; Err then carries the backend error
// so callers can log it.
type Corrections struct {
	ByTerm   map[string]string
	Degraded bool
	Err      error
}

// Corrector proposes spelling corrections for query terms.
type Corrector struct {
	vocab Vocabulary
}

// NewCorrector returns a Corrector reading from the given vocabulary.
func NewCorrector(v Vocabulary) *Corrector {
	return &Corrector{vocab: v}
}

// Correct maps every distinct lowercased term to the vocabulary entry
// minimizing edit distance within MaxEditDistance. Ties break on lowest
// distance, then highest frequency, then lexical order for determinism.
// A term with no candidate in range maps to itself. An exact match always
// wins automatically because distance 0 wins the minimization.
//
// If the vocabulary backend fails, Correct degrades to the identity mapping
// with Degraded set; the caller proceeds with the uncorrected query.
func (c *Corrector) Correct(ctx context.Context, terms []string) Corrections {
	byTerm := make(map[string]string, len(terms))
	for _, raw := range terms {
		term := strings.ToLower(raw)
		if _, done := byTerm[term]; done {
			continue
		}
		candidates, err := c.vocab.TermsNear(ctx, term, MaxEditDistance)
		if err != nil {
			return identity(terms, err)
		}
		byTerm[term] = pickBest(term, candidates)
	}
	return Corrections{ByTerm: byTerm}
}

func pickBest(term string, candidates []Term) string {
	// Sort for deterministic tie-breaking before scanning.
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Frequency != candidates[j].Frequency {
			return candidates[i].Frequency > candidates[j].Frequency
		}
		return candidates[i].Term < candidates[j].Term
	})

	best := term
	bestDist := MaxEditDistance + 1
	for _, cand := range candidates {
		d := levenshtein(term, strings.ToLower(cand.Term))
		if d < bestDist {
			bestDist = d
			best = cand.Term
		}
	}
	return best
}

func identity(terms []string, err error) Corrections {
	byTerm := make(map[string]string, len(terms))
	for _, raw := range terms {
		term := strings.ToLower(raw)
		byTerm[term] = term
	}
	return Corrections{ByTerm: byTerm, Degraded: true, Err: err}
}
