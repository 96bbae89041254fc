// engine.go executes ranked campaign search: sanitize, optionally correct,
// query the index, and annotate the response for "did you mean" UX.

package search

import (
	"context"
	"fmt"
)

// Kind filter values for a search request.
const (
	KindAny   = "any"
	KindArc   = "arc"
	KindThing = "thing"
)

// Hit is one ranked search result. Rank follows the BM25 convention: lower
// (more negative) means more relevant, so results order ascending by Rank.
type Hit struct {
	Kind       string  `json:"type"`
	EntityID   int64   `json:"entityId"`
	CampaignID int64   `json:"campaignId"`
	Title      string  `json:"title"`
	Content    string  `json:"content"`
	Slug       string  `json:"slug"`
	Rank       float64 `json:"rank"`
	Highlight  string  `json:"highlight"`
}

// IndexQuery is the explicit request handed to the index: a
// sanitized match string plus the campaign scope and optional kind filter.
// One storage-layer function renders the final query from it, keeping the
// literal-vs-parameterized boundary auditable.
type IndexQuery struct {
	CampaignID int64
	Kind       string // KindAny, KindArc or KindThing
	Match      string
	Limit      int // 0 means no limit
}

// Index executes ranked full-text queries. Results come back ordered
// ascending by rank (best match first) with highlighted snippets attached.
type Index interface {
	SearchRank(ctx context.Context, q IndexQuery) ([]Hit, error)
}

// Request is one search invocation, scoped to a single campaign.
type Request struct {
	CampaignID int64
	Query      string
	Kind       string // defaults to KindAny; invalid values also fall back
	Fuzzy      bool
	Limit      int
}

// Response carries the ordered results plus the query annotations the UI
// needs. CorrectedQuery is empty unless fuzzy correction produced a query
// that differs from the original.
type Response struct {
	Results        []Hit  `json:"results"`
	OriginalQuery  string `json:"originalQuery"`
	CorrectedQuery string `json:"correctedQuery,omitempty"`

	// Degraded is set when the vocabulary backend was unavailable and the
	// query ran uncorrected. Callers log DegradedErr as a warning; neither
	// field reaches response payloads.
	Degraded    bool  `json:"-"`
	DegradedErr error `json:"-"`
}

// Engine ties the compiler, corrector and index together. Construct with
// NewEngine; the zero value is not usable.
type Engine struct {
	index     Index
	corrector *Corrector
}

// NewEngine returns a search engine over the given index and corrector.
func NewEngine(index Index, corrector *Corrector) *Engine {
	return &Engine{index: index, corrector: corrector}
}

// Search runs one ranked query. The raw query is sanitized before anything
// else; an empty sanitized query is a valid request that yields an empty
// result set rather than an error. Invalid kind filters default to KindAny.
// Fuzzy correction failures degrade to the uncorrected query, with
// Degraded/DegradedErr set on the response for callers to log.
func (e *Engine) Search(ctx context.Context, req Request) (Response, error) {
	resp := Response{OriginalQuery: req.Query}

	match := Sanitize(req.Query)
	if match == "" {
		return resp, nil
	}

	kind := req.Kind
	if kind != KindArc && kind != KindThing {
		kind = KindAny
	}

	if req.Fuzzy {
		if terms, template := ExtractTerms(match); len(terms) > 0 {
			corr := e.corrector.Correct(ctx, terms)
			resp.Degraded = corr.Degraded
			resp.DegradedErr = corr.Err
			if corrected := ApplyCorrections(template, terms, corr.ByTerm); corrected != match {
				match = corrected
				resp.CorrectedQuery = corrected
			}
		}
	}

	hits, err := e.index.SearchRank(ctx, IndexQuery{
		CampaignID: req.CampaignID,
		Kind:       kind,
		Match:      match,
		Limit:      req.Limit,
	})
	if err != nil {
		return resp, fmt.Errorf("execute search: %w", err)
	}
	resp.Results = hits
	return resp, nil
}
