package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	api_models "docuchat-backend/internal/models"
	db_models "docuchat-backend/internal/models"
	"docuchat-backend/internal/store"

	"github.com/google/uuid"
)

// Custom errors for the article service
var (
	ErrArticleNotFound   = errors.New("article not found")
	ErrArticleValidation = errors.New("article validation failed")
)

// Defaults applied when an admin omits optional article fields.
const (
	DefaultCategory = "General"
	DefaultAuthor   = "Admin"
)

// ArticleService handles the admin surface for knowledge base articles.
type ArticleService struct {
	store store.Store
}

// NewArticleService creates a new ArticleService.
func NewArticleService(s store.Store) *ArticleService {
	return &ArticleService{store: s}
}

func mapDbArticleToResponse(a *db_models.Article) *api_models.ArticleResponse {
	keywords := a.Keywords
	if keywords == nil {
		keywords = []string{}
	}
	return &api_models.ArticleResponse{
		ID:        a.ID,
		Title:     a.Title,
		Content:   a.Content,
		Keywords:  keywords,
		Category:  a.Category,
		Author:    a.Author,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// normalizeKeywords lowercases keywords and drops blank entries, preserving
// order. The keyword overlap query compares lowercased extracted terms, so
// stored keywords must be lowercase too.
func normalizeKeywords(keywords []string) []string {
	out := make([]string, 0, len(keywords))
	for _, k := range keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k == "" {
			continue
		}
		out = append(out, k)
	}
	return out
}

// CreateArticle validates input and persists a new article.
func (s *ArticleService) CreateArticle(ctx context.Context, req api_models.CreateArticleRequest) (*api_models.ArticleResponse, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, fmt.Errorf("%w: title cannot be empty", ErrArticleValidation)
	}
	if strings.TrimSpace(req.Content) == "" {
		return nil, fmt.Errorf("%w: content cannot be empty", ErrArticleValidation)
	}

	category := DefaultCategory
	if req.Category != nil && strings.TrimSpace(*req.Category) != "" {
		category = *req.Category
	}
	author := DefaultAuthor
	if req.Author != nil && strings.TrimSpace(*req.Author) != "" {
		author = *req.Author
	}

	params := store.CreateArticleParams{
		ID:       uuid.New(),
		Title:    req.Title,
		Content:  req.Content,
		Keywords: normalizeKeywords(req.Keywords),
		Category: category,
		Author:   author,
	}

	dbArticle, err := s.store.CreateArticle(ctx, params)
	if err != nil {
		log.Printf("ERROR [ArticleService] CreateArticle: Store call failed for Title %q: %v", req.Title, err)
		return nil, fmt.Errorf("failed to save article: %w", err)
	}

	resp := mapDbArticleToResponse(dbArticle)
	log.Printf("[ArticleService] CreateArticle: Successfully created article ID %s", resp.ID)
	return resp, nil
}

// GetArticle retrieves a specific article by ID.
func (s *ArticleService) GetArticle(ctx context.Context, id uuid.UUID) (*api_models.ArticleResponse, error) {
	dbArticle, err := s.store.GetArticleByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrArticleNotFound
		}
		log.Printf("ERROR [ArticleService] GetArticle: Store call failed for ID %s: %v", id, err)
		return nil, fmt.Errorf("failed to retrieve article: %w", err)
	}
	return mapDbArticleToResponse(dbArticle), nil
}

// ListArticles retrieves all articles, newest first, optionally filtered by
// category.
func (s *ArticleService) ListArticles(ctx context.Context, category *string) ([]api_models.ArticleResponse, error) {
	dbArticles, err := s.store.ListArticles(ctx, category)
	if err != nil {
		log.Printf("ERROR [ArticleService] ListArticles: Store call failed: %v", err)
		return nil, fmt.Errorf("failed to list articles: %w", err)
	}

	resp := make([]api_models.ArticleResponse, len(dbArticles))
	for i := range dbArticles {
		resp[i] = *mapDbArticleToResponse(&dbArticles[i])
	}
	return resp, nil
}

// UpdateArticle applies a partial update to an existing article.
func (s *ArticleService) UpdateArticle(ctx context.Context, id uuid.UUID, req api_models.UpdateArticleRequest) (*api_models.ArticleResponse, error) {
	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		return nil, fmt.Errorf("%w: title cannot be updated to empty", ErrArticleValidation)
	}
	if req.Content != nil && strings.TrimSpace(*req.Content) == "" {
		return nil, fmt.Errorf("%w: content cannot be updated to empty", ErrArticleValidation)
	}

	params := store.UpdateArticleParams{
		ID:       id,
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
		Author:   req.Author,
	}
	if req.Keywords != nil {
		normalized := normalizeKeywords(*req.Keywords)
		params.Keywords = &normalized
	}

	dbArticle, err := s.store.UpdateArticle(ctx, params)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrArticleNotFound
		}
		log.Printf("ERROR [ArticleService] UpdateArticle: Store call failed for ID %s: %v", id, err)
		return nil, fmt.Errorf("failed to update article: %w", err)
	}

	resp := mapDbArticleToResponse(dbArticle)
	log.Printf("[ArticleService] UpdateArticle: Successfully updated article ID %s", resp.ID)
	return resp, nil
}

// DeleteArticle deletes an article by ID.
func (s *ArticleService) DeleteArticle(ctx context.Context, id uuid.UUID) error {
	err := s.store.DeleteArticle(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrArticleNotFound
		}
		log.Printf("ERROR [ArticleService] DeleteArticle: Store call failed for ID %s: %v", id, err)
		return fmt.Errorf("failed to delete article: %w", err)
	}
	log.Printf("[ArticleService] DeleteArticle: Successfully deleted article ID %s", id)
	return nil
}
