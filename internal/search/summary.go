package search

import (
	"fmt"
	"strings"

	db_models "docuchat-backend/internal/models"
)

const (
	// maxSummarized is how many of the retrieved articles get an excerpt
	// block in the summary.
	maxSummarized = 3
	// excerptLength is the number of content characters shown per article.
	excerptLength = 200
)

// NoResultsMessage is returned verbatim when retrieval found nothing.
const NoResultsMessage = "I couldn't find any articles matching your question. " +
	"Try rephrasing it with different keywords, or contact an admin to have this topic added to the knowledge base."

// Summarize renders a chat-ready text block for a set of retrieved articles
// and the original query. The articles are assumed to arrive in retrieval
// order; the first one defines the dominant category referenced by the
// closing sentence. Pure and total: an empty set yields the fixed
// no-results message regardless of query text.
func Summarize(articles []db_models.Article, query string) string {
	if len(articles) == 0 {
		return NoResultsMessage
	}

	noun := "articles"
	if len(articles) == 1 {
		noun = "article"
	}
	header := fmt.Sprintf("I found %d relevant %s for %q:", len(articles), noun, query)

	top := articles
	if len(top) > maxSummarized {
		top = top[:maxSummarized]
	}

	blocks := make([]string, 0, len(top)+2)
	blocks = append(blocks, header)
	for _, a := range top {
		blocks = append(blocks, fmt.Sprintf("**%s**\nCategory: %s\n%s...", a.Title, a.Category, excerpt(a.Content)))
	}
	blocks = append(blocks, closingSentence(ClassifyQueryIntent(query), top[0].Category))

	return strings.Join(blocks, "\n\n")
}

// excerpt returns the first excerptLength characters of content. Counted in
// runes so multi-byte text is never split mid-character.
func excerpt(content string) string {
	runes := []rune(content)
	if len(runes) > excerptLength {
		runes = runes[:excerptLength]
	}
	return string(runes)
}

// closingSentence picks the contextual remark appended to every non-empty
// summary. All framings reference the dominant category.
func closingSentence(intent QueryIntent, category string) string {
	switch intent {
	case IntentProcedural:
		return fmt.Sprintf("Since you're asking how to do something, the %s material above should walk you through it step by step.", category)
	case IntentDefinitional:
		return fmt.Sprintf("It looks like you're after a definition or overview, so start with the %s material above for the core concepts.", category)
	case IntentTroubleshooting:
		return fmt.Sprintf("If you're running into a problem, the %s material above includes troubleshooting guidance.", category)
	default:
		return fmt.Sprintf("The articles above cover various aspects of %s.", category)
	}
}
