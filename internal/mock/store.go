// Package mock provides hand-written test doubles for the store layer.
// Each method delegates to a function field and records how many times it
// was invoked, so tests can both script behavior and assert call patterns
// (e.g. that the full-text fallback never ran).
package mock

import (
	"context"

	db_models "docuchat-backend/internal/models"
	"docuchat-backend/internal/store"

	"github.com/google/uuid"
)

var _ store.Store = (*Store)(nil)

// Store is a mock implementation of store.Store.
type Store struct {
	GetUserByEmailFn      func(ctx context.Context, email string) (*db_models.User, error)
	GetUserByEmailInvoked int

	CreateUserFn      func(ctx context.Context, user *db_models.User) error
	CreateUserInvoked int

	ListArticlesByKeywordOverlapFn      func(ctx context.Context, keywords []string, limit int) ([]db_models.Article, error)
	ListArticlesByKeywordOverlapInvoked int

	SearchArticlesByTitleFn      func(ctx context.Context, query string, limit int) ([]db_models.Article, error)
	SearchArticlesByTitleInvoked int

	CreateArticleFn      func(ctx context.Context, arg store.CreateArticleParams) (*db_models.Article, error)
	CreateArticleInvoked int

	GetArticleByIDFn      func(ctx context.Context, id uuid.UUID) (*db_models.Article, error)
	GetArticleByIDInvoked int

	ListArticlesFn      func(ctx context.Context, category *string) ([]db_models.Article, error)
	ListArticlesInvoked int

	UpdateArticleFn      func(ctx context.Context, arg store.UpdateArticleParams) (*db_models.Article, error)
	UpdateArticleInvoked int

	DeleteArticleFn      func(ctx context.Context, id uuid.UUID) error
	DeleteArticleInvoked int
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*db_models.User, error) {
	s.GetUserByEmailInvoked++
	return s.GetUserByEmailFn(ctx, email)
}

func (s *Store) CreateUser(ctx context.Context, user *db_models.User) error {
	s.CreateUserInvoked++
	return s.CreateUserFn(ctx, user)
}

func (s *Store) ListArticlesByKeywordOverlap(ctx context.Context, keywords []string, limit int) ([]db_models.Article, error) {
	s.ListArticlesByKeywordOverlapInvoked++
	return s.ListArticlesByKeywordOverlapFn(ctx, keywords, limit)
}

func (s *Store) SearchArticlesByTitle(ctx context.Context, query string, limit int) ([]db_models.Article, error) {
	s.SearchArticlesByTitleInvoked++
	return s.SearchArticlesByTitleFn(ctx, query, limit)
}

func (s *Store) CreateArticle(ctx context.Context, arg store.CreateArticleParams) (*db_models.Article, error) {
	s.CreateArticleInvoked++
	return s.CreateArticleFn(ctx, arg)
}

func (s *Store) GetArticleByID(ctx context.Context, id uuid.UUID) (*db_models.Article, error) {
	s.GetArticleByIDInvoked++
	return s.GetArticleByIDFn(ctx, id)
}

func (s *Store) ListArticles(ctx context.Context, category *string) ([]db_models.Article, error) {
	s.ListArticlesInvoked++
	return s.ListArticlesFn(ctx, category)
}

func (s *Store) UpdateArticle(ctx context.Context, arg store.UpdateArticleParams) (*db_models.Article, error) {
	s.UpdateArticleInvoked++
	return s.UpdateArticleFn(ctx, arg)
}

func (s *Store) DeleteArticle(ctx context.Context, id uuid.UUID) error {
	s.DeleteArticleInvoked++
	return s.DeleteArticleFn(ctx, id)
}
