package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	db_models "docuchat-backend/internal/models"
	"docuchat-backend/internal/search"
)

// MaxSearchResults caps how many articles a retrieval returns.
const MaxSearchResults = 5

// ErrRetrievalFailed is the single failure condition surfaced by the
// retriever. Callers get no stage distinction; they should treat it as
// "no results" and report an apology rather than crash.
var ErrRetrievalFailed = errors.New("article retrieval failed")

// ArticleSearcher is the slice of the store the retriever depends on.
type ArticleSearcher interface {
	ListArticlesByKeywordOverlap(ctx context.Context, keywords []string, limit int) ([]db_models.Article, error)
	SearchArticlesByTitle(ctx context.Context, query string, limit int) ([]db_models.Article, error)
}

// SearchService runs the two-stage article retrieval: keyword overlap first,
// full-text search over titles as fallback.
type SearchService struct {
	store ArticleSearcher
}

// NewSearchService creates a new SearchService.
func NewSearchService(s ArticleSearcher) *SearchService {
	return &SearchService{store: s}
}

// Search returns up to MaxSearchResults articles matching the raw query,
// most recently created first.
//
// Stage 1 queries by keyword overlap using the extracted keywords and is
// skipped entirely when extraction yields nothing. Stage 2 falls back to a
// full-text search over titles using the raw query text, and runs only when
// stage 1 returned zero rows without error. A store error from either stage
// aborts the retrieval.
func (s *SearchService) Search(ctx context.Context, query string) ([]db_models.Article, error) {
	keywords := search.ExtractKeywords(query)

	if len(keywords) > 0 {
		articles, err := s.store.ListArticlesByKeywordOverlap(ctx, keywords, MaxSearchResults)
		if err != nil {
			log.Printf("ERROR [SearchService] Search: keyword overlap stage failed for %q: %v", query, err)
			return nil, fmt.Errorf("%w: %v", ErrRetrievalFailed, err)
		}
		if len(articles) > 0 {
			log.Printf("[SearchService] Search: keyword overlap matched %d articles for %q", len(articles), query)
			return articles, nil
		}
	}

	articles, err := s.store.SearchArticlesByTitle(ctx, query, MaxSearchResults)
	if err != nil {
		log.Printf("ERROR [SearchService] Search: full-text stage failed for %q: %v", query, err)
		return nil, fmt.Errorf("%w: %v", ErrRetrievalFailed, err)
	}

	log.Printf("[SearchService] Search: full-text fallback matched %d articles for %q", len(articles), query)
	return articles, nil
}
