package store

import (
	"context"
	"errors"

	db_models "docuchat-backend/internal/models"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a specific record is not found.
var ErrNotFound = errors.New("record not found")

// CreateArticleParams contains parameters for creating an article.
// Keywords are expected to be lowercased by the service layer.
type CreateArticleParams struct {
	ID       uuid.UUID
	Title    string
	Content  string
	Keywords []string
	Category string
	Author   string
}

// UpdateArticleParams contains parameters for updating an article.
// Nil pointers mean the field is left unchanged; updated_at is always
// refreshed by the implementation.
type UpdateArticleParams struct {
	ID       uuid.UUID
	Title    *string
	Content  *string
	Keywords *[]string
	Category *string
	Author   *string
}

// Store defines the interface for database operations.
// This allows for mocking in tests and potential DB backend switching.
type Store interface {
	// User operations (admin surface)
	GetUserByEmail(ctx context.Context, email string) (*db_models.User, error)
	CreateUser(ctx context.Context, user *db_models.User) error

	// Article search operations (chat pipeline). Both return results ordered
	// by created_at descending and capped at limit.
	ListArticlesByKeywordOverlap(ctx context.Context, keywords []string, limit int) ([]db_models.Article, error)
	SearchArticlesByTitle(ctx context.Context, query string, limit int) ([]db_models.Article, error)

	// Article admin operations
	CreateArticle(ctx context.Context, arg CreateArticleParams) (*db_models.Article, error)
	GetArticleByID(ctx context.Context, id uuid.UUID) (*db_models.Article, error)
	ListArticles(ctx context.Context, category *string) ([]db_models.Article, error)
	UpdateArticle(ctx context.Context, arg UpdateArticleParams) (*db_models.Article, error)
	DeleteArticle(ctx context.Context, id uuid.UUID) error
}
