// Package search implements the pure parts of the question-answering
// pipeline: keyword extraction, query intent classification, and summary
// generation. Everything here is deterministic and free of side effects so
// it can be tested without a database.
package search

import "strings"

// MaxKeywords caps the number of candidate terms extracted from a query.
const MaxKeywords = 5

// minTokenLength is exclusive: tokens of this length or shorter are dropped.
const minTokenLength = 2

// stopWords is a closed list of articles, prepositions, wh-words and
// conjunctions that never make useful search terms.
var stopWords = map[string]struct{}{
	"the": {}, "is": {}, "at": {}, "which": {}, "on": {},
	"how": {}, "to": {}, "what": {}, "where": {}, "when": {},
	"why": {}, "and": {}, "or": {}, "but": {}, "in": {},
	"with": {}, "for": {},
}

// ExtractKeywords derives up to MaxKeywords candidate search terms from a
// raw query: lower-cased, split on whitespace runs, with short tokens and
// stop words removed. Original token order is preserved; there is no
// stemming and no deduplication. An empty or all-stop-word query yields an
// empty list.
func ExtractKeywords(query string) []string {
	tokens := strings.Fields(strings.ToLower(query))

	keywords := make([]string, 0, MaxKeywords)
	for _, tok := range tokens {
		if len(tok) <= minTokenLength {
			continue
		}
		if _, skip := stopWords[tok]; skip {
			continue
		}
		keywords = append(keywords, tok)
		if len(keywords) == MaxKeywords {
			break
		}
	}
	return keywords
}
