package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	db_models "docuchat-backend/internal/models"
	"docuchat-backend/internal/mock"
	"docuchat-backend/internal/search"
	"docuchat-backend/internal/services"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kbArticle(title, category string, keywords ...string) db_models.Article {
	return db_models.Article{
		ID:        uuid.New(),
		Title:     title,
		Content:   title + " content body",
		Keywords:  keywords,
		Category:  category,
		Author:    "Admin",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

func TestSearchService_Search(t *testing.T) {
	t.Parallel()

	t.Run("keyword overlap hit skips full-text fallback", func(t *testing.T) {
		t.Parallel()

		want := []db_models.Article{kbArticle("Docker Deployment Guide", "DevOps", "docker", "deployment")}
		st := &mock.Store{
			ListArticlesByKeywordOverlapFn: func(_ context.Context, keywords []string, limit int) ([]db_models.Article, error) {
				assert.Equal(t, []string{"deploy", "docker"}, keywords)
				assert.Equal(t, services.MaxSearchResults, limit)
				return want, nil
			},
		}
		svc := services.NewSearchService(st)

		got, err := svc.Search(context.Background(), "How do I deploy with Docker")

		require.NoError(t, err)
		assert.Equal(t, want, got)
		assert.Equal(t, 1, st.ListArticlesByKeywordOverlapInvoked)
		assert.Equal(t, 0, st.SearchArticlesByTitleInvoked)
	})

	t.Run("falls back to full-text when overlap returns nothing", func(t *testing.T) {
		t.Parallel()

		want := []db_models.Article{kbArticle("Release Checklist", "Process")}
		st := &mock.Store{
			ListArticlesByKeywordOverlapFn: func(_ context.Context, _ []string, _ int) ([]db_models.Article, error) {
				return nil, nil
			},
			SearchArticlesByTitleFn: func(_ context.Context, query string, limit int) ([]db_models.Article, error) {
				assert.Equal(t, "release checklist steps", query)
				assert.Equal(t, services.MaxSearchResults, limit)
				return want, nil
			},
		}
		svc := services.NewSearchService(st)

		got, err := svc.Search(context.Background(), "release checklist steps")

		require.NoError(t, err)
		assert.Equal(t, want, got)
		assert.Equal(t, 1, st.ListArticlesByKeywordOverlapInvoked)
		assert.Equal(t, 1, st.SearchArticlesByTitleInvoked)
	})

	t.Run("skips overlap stage entirely when no keywords survive extraction", func(t *testing.T) {
		t.Parallel()

		st := &mock.Store{
			SearchArticlesByTitleFn: func(_ context.Context, query string, _ int) ([]db_models.Article, error) {
				assert.Equal(t, "how to", query)
				return nil, nil
			},
		}
		svc := services.NewSearchService(st)

		got, err := svc.Search(context.Background(), "how to")

		require.NoError(t, err)
		assert.Empty(t, got)
		assert.Equal(t, 0, st.ListArticlesByKeywordOverlapInvoked)
		assert.Equal(t, 1, st.SearchArticlesByTitleInvoked)
	})

	t.Run("overlap stage error aborts retrieval", func(t *testing.T) {
		t.Parallel()

		st := &mock.Store{
			ListArticlesByKeywordOverlapFn: func(_ context.Context, _ []string, _ int) ([]db_models.Article, error) {
				return nil, errors.New("connection refused")
			},
		}
		svc := services.NewSearchService(st)

		got, err := svc.Search(context.Background(), "docker deployment")

		require.ErrorIs(t, err, services.ErrRetrievalFailed)
		assert.Nil(t, got)
		assert.Equal(t, 0, st.SearchArticlesByTitleInvoked)
	})

	t.Run("full-text stage error surfaces as retrieval failure", func(t *testing.T) {
		t.Parallel()

		st := &mock.Store{
			ListArticlesByKeywordOverlapFn: func(_ context.Context, _ []string, _ int) ([]db_models.Article, error) {
				return nil, nil
			},
			SearchArticlesByTitleFn: func(_ context.Context, _ string, _ int) ([]db_models.Article, error) {
				return nil, errors.New("query rejected")
			},
		}
		svc := services.NewSearchService(st)

		_, err := svc.Search(context.Background(), "docker deployment")

		require.ErrorIs(t, err, services.ErrRetrievalFailed)
	})

	t.Run("empty result from both stages is not an error", func(t *testing.T) {
		t.Parallel()

		st := &mock.Store{
			ListArticlesByKeywordOverlapFn: func(_ context.Context, _ []string, _ int) ([]db_models.Article, error) {
				return []db_models.Article{}, nil
			},
			SearchArticlesByTitleFn: func(_ context.Context, _ string, _ int) ([]db_models.Article, error) {
				return []db_models.Article{}, nil
			},
		}
		svc := services.NewSearchService(st)

		got, err := svc.Search(context.Background(), "nothing matches this")

		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("docker scenario produces a procedural DevOps summary", func(t *testing.T) {
		t.Parallel()

		docker := kbArticle("Docker Deployment Guide", "DevOps", "docker", "deployment")
		st := &mock.Store{
			ListArticlesByKeywordOverlapFn: func(_ context.Context, keywords []string, _ int) ([]db_models.Article, error) {
				// "how", "do", "i" and "with" are dropped by extraction;
				// "docker" overlaps the stored keyword array.
				assert.Contains(t, keywords, "docker")
				return []db_models.Article{docker}, nil
			},
		}
		svc := services.NewSearchService(st)

		articles, err := svc.Search(context.Background(), "How do I deploy with Docker")
		require.NoError(t, err)

		summary := search.Summarize(articles, "How do I deploy with Docker")

		assert.Contains(t, summary, "Docker Deployment Guide")
		assert.Contains(t, summary, "DevOps")
		assert.Contains(t, summary, "asking how to do something")
		assert.Equal(t, 0, st.SearchArticlesByTitleInvoked)
	})
}
