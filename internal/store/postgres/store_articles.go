package postgres

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	db_models "docuchat-backend/internal/models"
	"docuchat-backend/internal/store"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// articleColumns is the canonical column list for article SELECTs.
const articleColumns = "id, title, content, keywords, category, author, created_at, updated_at"

// scanArticleRows collects all rows from an article query.
func scanArticleRows(rows pgx.Rows) ([]db_models.Article, error) {
	defer rows.Close()

	articles := []db_models.Article{}
	for rows.Next() {
		a := db_models.Article{}
		if err := rows.Scan(
			&a.ID,
			&a.Title,
			&a.Content,
			&a.Keywords,
			&a.Category,
			&a.Author,
			&a.CreatedAt,
			&a.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("database error scanning article: %w", err)
		}
		articles = append(articles, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("database error after iterating articles: %w", err)
	}
	return articles, nil
}

// --- Chat Pipeline Queries ---

// ListArticlesByKeywordOverlap returns articles whose keyword array shares at
// least one element with the supplied list, newest first.
func (s *PostgresStore) ListArticlesByKeywordOverlap(ctx context.Context, keywords []string, limit int) ([]db_models.Article, error) {
	log.Printf("[PostgresStore] ListArticlesByKeywordOverlap called with keywords=%v limit=%d", keywords, limit)
	query := fmt.Sprintf(`
        SELECT %s
        FROM articles
        WHERE keywords && $1
        ORDER BY created_at DESC
        LIMIT $2`, articleColumns)

	rows, err := s.db.Query(ctx, query, keywords, limit)
	if err != nil {
		log.Printf("ERROR [PostgresStore] ListArticlesByKeywordOverlap: Failed query for keywords %v: %v", keywords, err)
		return nil, fmt.Errorf("database error searching articles by keyword overlap: %w", err)
	}

	articles, err := scanArticleRows(rows)
	if err != nil {
		log.Printf("ERROR [PostgresStore] ListArticlesByKeywordOverlap: %v", err)
		return nil, err
	}

	log.Printf("[PostgresStore] ListArticlesByKeywordOverlap: Found %d articles", len(articles))
	return articles, nil
}

// SearchArticlesByTitle runs a full-text search over the title field using
// the raw query text, newest first. This is the fallback stage when keyword
// overlap yields nothing.
func (s *PostgresStore) SearchArticlesByTitle(ctx context.Context, query string, limit int) ([]db_models.Article, error) {
	log.Printf("[PostgresStore] SearchArticlesByTitle called with query=%q limit=%d", query, limit)
	sql := fmt.Sprintf(`
        SELECT %s
        FROM articles
        WHERE to_tsvector('english', title) @@ plainto_tsquery('english', $1)
        ORDER BY created_at DESC
        LIMIT $2`, articleColumns)

	rows, err := s.db.Query(ctx, sql, query, limit)
	if err != nil {
		log.Printf("ERROR [PostgresStore] SearchArticlesByTitle: Failed query for %q: %v", query, err)
		return nil, fmt.Errorf("database error searching articles by title: %w", err)
	}

	articles, err := scanArticleRows(rows)
	if err != nil {
		log.Printf("ERROR [PostgresStore] SearchArticlesByTitle: %v", err)
		return nil, err
	}

	log.Printf("[PostgresStore] SearchArticlesByTitle: Found %d articles", len(articles))
	return articles, nil
}

// --- Admin Surface Methods ---

// CreateArticle inserts a new article record.
func (s *PostgresStore) CreateArticle(ctx context.Context, arg store.CreateArticleParams) (*db_models.Article, error) {
	log.Printf("[PostgresStore] CreateArticle called for Title: %q", arg.Title)
	query := fmt.Sprintf(`
        INSERT INTO articles (id, title, content, keywords, category, author)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING %s`, articleColumns)

	keywords := arg.Keywords
	if keywords == nil {
		keywords = []string{}
	}

	a := &db_models.Article{}
	err := s.db.QueryRow(ctx, query,
		arg.ID,
		arg.Title,
		arg.Content,
		keywords,
		arg.Category,
		arg.Author,
	).Scan(
		&a.ID,
		&a.Title,
		&a.Content,
		&a.Keywords,
		&a.Category,
		&a.Author,
		&a.CreatedAt,
		&a.UpdatedAt,
	)

	if err != nil {
		log.Printf("ERROR [PostgresStore] CreateArticle: Failed exec/scan for Title %q: %v", arg.Title, err)
		return nil, fmt.Errorf("database error creating article: %w", err)
	}

	log.Printf("[PostgresStore] CreateArticle: Successfully inserted article ID %s", a.ID)
	return a, nil
}

// GetArticleByID retrieves a specific article by its ID.
func (s *PostgresStore) GetArticleByID(ctx context.Context, id uuid.UUID) (*db_models.Article, error) {
	log.Printf("[PostgresStore] GetArticleByID called for ID: %s", id)
	query := fmt.Sprintf(`
        SELECT %s
        FROM articles
        WHERE id = $1`, articleColumns)

	a := &db_models.Article{}
	err := s.db.QueryRow(ctx, query, id).Scan(
		&a.ID,
		&a.Title,
		&a.Content,
		&a.Keywords,
		&a.Category,
		&a.Author,
		&a.CreatedAt,
		&a.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Printf("[PostgresStore] GetArticleByID: Not found for ID %s", id)
			return nil, store.ErrNotFound
		}
		log.Printf("ERROR [PostgresStore] GetArticleByID: Failed query/scan for ID %s: %v", id, err)
		return nil, fmt.Errorf("database error fetching article: %w", err)
	}

	return a, nil
}

// ListArticles retrieves all articles, newest first, optionally filtered by
// category (used by the admin surface).
func (s *PostgresStore) ListArticles(ctx context.Context, category *string) ([]db_models.Article, error) {
	log.Printf("[PostgresStore] ListArticles called (category filter: %v)", category)

	var rows pgx.Rows
	var err error
	if category != nil {
		query := fmt.Sprintf(`
            SELECT %s
            FROM articles
            WHERE category = $1
            ORDER BY created_at DESC`, articleColumns)
		rows, err = s.db.Query(ctx, query, *category)
	} else {
		query := fmt.Sprintf(`
            SELECT %s
            FROM articles
            ORDER BY created_at DESC`, articleColumns)
		rows, err = s.db.Query(ctx, query)
	}
	if err != nil {
		log.Printf("ERROR [PostgresStore] ListArticles: Failed query: %v", err)
		return nil, fmt.Errorf("database error listing articles: %w", err)
	}

	articles, err := scanArticleRows(rows)
	if err != nil {
		log.Printf("ERROR [PostgresStore] ListArticles: %v", err)
		return nil, err
	}

	log.Printf("[PostgresStore] ListArticles: Found %d articles", len(articles))
	return articles, nil
}

// UpdateArticle updates fields for a specific article. Only non-nil fields
// in the args are written; updated_at is always refreshed.
func (s *PostgresStore) UpdateArticle(ctx context.Context, arg store.UpdateArticleParams) (*db_models.Article, error) {
	log.Printf("[PostgresStore] UpdateArticle called for ID: %s", arg.ID)

	// Build query dynamically for partial updates
	setClauses := []string{"updated_at = now()"}
	args := []interface{}{arg.ID} // $1 is the WHERE arg
	argCounter := 2

	if arg.Title != nil {
		setClauses = append(setClauses, fmt.Sprintf("title = $%d", argCounter))
		args = append(args, *arg.Title)
		argCounter++
	}
	if arg.Content != nil {
		setClauses = append(setClauses, fmt.Sprintf("content = $%d", argCounter))
		args = append(args, *arg.Content)
		argCounter++
	}
	if arg.Keywords != nil {
		setClauses = append(setClauses, fmt.Sprintf("keywords = $%d", argCounter))
		args = append(args, *arg.Keywords)
		argCounter++
	}
	if arg.Category != nil {
		setClauses = append(setClauses, fmt.Sprintf("category = $%d", argCounter))
		args = append(args, *arg.Category)
		argCounter++
	}
	if arg.Author != nil {
		setClauses = append(setClauses, fmt.Sprintf("author = $%d", argCounter))
		args = append(args, *arg.Author)
		argCounter++
	}

	query := fmt.Sprintf(`
        UPDATE articles
        SET %s
        WHERE id = $1
        RETURNING %s`,
		strings.Join(setClauses, ", "),
		articleColumns,
	)

	a := &db_models.Article{}
	err := s.db.QueryRow(ctx, query, args...).Scan(
		&a.ID,
		&a.Title,
		&a.Content,
		&a.Keywords,
		&a.Category,
		&a.Author,
		&a.CreatedAt,
		&a.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Printf("[PostgresStore] UpdateArticle: Not found for ID %s", arg.ID)
			return nil, store.ErrNotFound
		}
		log.Printf("ERROR [PostgresStore] UpdateArticle: Failed query/scan for ID %s: %v", arg.ID, err)
		return nil, fmt.Errorf("database error updating article: %w", err)
	}

	log.Printf("[PostgresStore] UpdateArticle: Successfully updated article ID %s", a.ID)
	return a, nil
}

// DeleteArticle deletes a specific article by ID.
func (s *PostgresStore) DeleteArticle(ctx context.Context, id uuid.UUID) error {
	log.Printf("[PostgresStore] DeleteArticle called for ID: %s", id)
	query := `DELETE FROM articles WHERE id = $1`

	cmdTag, err := s.db.Exec(ctx, query, id)
	if err != nil {
		log.Printf("ERROR [PostgresStore] DeleteArticle: Failed exec for ID %s: %v", id, err)
		return fmt.Errorf("database error deleting article: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		log.Printf("[PostgresStore] DeleteArticle: Not found for ID %s", id)
		return store.ErrNotFound
	}

	log.Printf("[PostgresStore] DeleteArticle: Successfully deleted article ID %s", id)
	return nil
}
