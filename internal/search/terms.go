// Package search implements the campaign search pipeline: extracting
// searchable terms from a raw query, correcting their spelling against the
// observed-term vocabulary, and executing the ranked full-text query.
//
// The pipeline preserves structural query syntax. Boolean operators
// (AND, OR, NOT, NEAR), field qualifiers (title:) and prefix wildcards
// (drag*) pass through untouched; only literal search words are eligible
// for spell correction.
package search

import (
	"regexp"
	"strings"
	"unicode"
)

// wordPattern tokenizes queries into candidate terms: ASCII word characters
// plus high-codepoint script characters, so non-Latin campaign names
// tokenize the same way the index tokenizes them.
var wordPattern = regexp.MustCompile(`[A-Za-z0-9\x{0080}-\x{FFFF}]+`)

// operators are the reserved boolean operators of the underlying query
// language. They are structural, not search words.
var operators = map[string]struct{}{
	"AND": {}, "OR": {}, "NOT": {}, "NEAR": {},
}

// ExtractTerms returns the literal searchable terms of a query in order
// (duplicates preserved) and the template the caller later rewrites via
// ApplyCorrections. Terms are excluded when they are a reserved operator,
// or when the character immediately following them is ':' (field qualifier)
// or '*' (prefix wildcard) - rewriting those would change query semantics.
func ExtractTerms(query string) (terms []string, template string) {
	for _, loc := range wordPattern.FindAllStringIndex(query, -1) {
		term := query[loc[0]:loc[1]]
		if _, reserved := operators[strings.ToUpper(term)]; reserved {
			continue
		}
		if loc[1] < len(query) && (query[loc[1]] == ':' || query[loc[1]] == '*') {
			continue
		}
		terms = append(terms, term)
	}
	return terms, query
}

// ApplyCorrections rewrites the template by replacing every case-insensitive
// whole-word occurrence of each distinct corrected term with its correction.
// Corrections are keyed by lowercased term; a correction that only differs
// in case is skipped. Replacement text is inserted literally so corrected
// spellings cannot be misread as pattern syntax, and word-boundary matching
// keeps adjacent operator syntax intact.
func ApplyCorrections(template string, terms []string, corrections map[string]string) string {
	seen := make(map[string]struct{}, len(terms))
	out := template
	for _, term := range terms {
		lower := strings.ToLower(term)
		if _, done := seen[lower]; done {
			continue
		}
		seen[lower] = struct{}{}

		corrected, ok := corrections[lower]
		if !ok || strings.EqualFold(corrected, term) {
			continue
		}
		re := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(term) + `\b`)
		out = re.ReplaceAllLiteralString(out, corrected)
	}
	return out
}

// Sanitize strips every rune that is not alphanumeric or whitespace and
// trims the result. This is the defensive boundary between user input and
// the index's query language: whatever survives cannot produce quoting or
// grouping syntax.
func Sanitize(query string) string {
	var b strings.Builder
	b.Grow(len(query))
	for _, r := range query {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

// Tokenize lower-cases and splits text with the same tokenizer the query
// compiler uses. The store uses it to feed the vocabulary when indexing.
func Tokenize(text string) []string {
	matches := wordPattern.FindAllString(text, -1)
	for i, m := range matches {
		matches[i] = strings.ToLower(m)
	}
	return matches
}
