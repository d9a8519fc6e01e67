package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	api_models "docuchat-backend/internal/models"
	"docuchat-backend/internal/services"
	"docuchat-backend/pkg/httputil"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// ArticleService defines the interface expected from the article service.
type ArticleService interface {
	CreateArticle(ctx context.Context, req api_models.CreateArticleRequest) (*api_models.ArticleResponse, error)
	GetArticle(ctx context.Context, id uuid.UUID) (*api_models.ArticleResponse, error)
	ListArticles(ctx context.Context, category *string) ([]api_models.ArticleResponse, error)
	UpdateArticle(ctx context.Context, id uuid.UUID, req api_models.UpdateArticleRequest) (*api_models.ArticleResponse, error)
	DeleteArticle(ctx context.Context, id uuid.UUID) error
}

type ArticleHandler struct {
	articleService ArticleService
}

func NewArticleHandler(articleSvc ArticleService) *ArticleHandler {
	return &ArticleHandler{
		articleService: articleSvc,
	}
}

// HandleCreateArticle handles POST /v1/articles (authenticated).
func (h *ArticleHandler) HandleCreateArticle(w http.ResponseWriter, r *http.Request) {
	var req api_models.CreateArticleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	resp, err := h.articleService.CreateArticle(r.Context(), req)
	if err != nil {
		log.Printf("ERROR [ArticleHandler] HandleCreateArticle: %v", err)
		if errors.Is(err, services.ErrArticleValidation) {
			httputil.RespondError(w, http.StatusBadRequest, err.Error())
		} else {
			httputil.RespondError(w, http.StatusInternalServerError, "Failed to create article")
		}
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, resp)
}

// HandleListArticles handles GET /v1/articles (public read).
// Accepts an optional ?category= filter for the admin surface.
func (h *ArticleHandler) HandleListArticles(w http.ResponseWriter, r *http.Request) {
	var category *string
	if c := r.URL.Query().Get("category"); c != "" {
		category = &c
	}

	articles, err := h.articleService.ListArticles(r.Context(), category)
	if err != nil {
		log.Printf("ERROR [ArticleHandler] HandleListArticles: %v", err)
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to list articles")
		return
	}

	if articles == nil {
		articles = []api_models.ArticleResponse{}
	}
	httputil.RespondJSON(w, http.StatusOK, api_models.ListArticlesResponse{Articles: articles})
}

// HandleGetArticle handles GET /v1/articles/{articleID} (public read).
func (h *ArticleHandler) HandleGetArticle(w http.ResponseWriter, r *http.Request) {
	articleID, err := uuid.Parse(chi.URLParam(r, "articleID"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid article ID format")
		return
	}

	resp, err := h.articleService.GetArticle(r.Context(), articleID)
	if err != nil {
		log.Printf("ERROR [ArticleHandler] HandleGetArticle for ID %s: %v", articleID, err)
		if errors.Is(err, services.ErrArticleNotFound) {
			httputil.RespondError(w, http.StatusNotFound, err.Error())
		} else {
			httputil.RespondError(w, http.StatusInternalServerError, "Failed to get article")
		}
		return
	}

	httputil.RespondJSON(w, http.StatusOK, resp)
}

// HandleUpdateArticle handles PUT /v1/articles/{articleID} (authenticated).
// Only fields present in the request body are updated.
func (h *ArticleHandler) HandleUpdateArticle(w http.ResponseWriter, r *http.Request) {
	articleID, err := uuid.Parse(chi.URLParam(r, "articleID"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid article ID format")
		return
	}

	var req api_models.UpdateArticleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	resp, err := h.articleService.UpdateArticle(r.Context(), articleID, req)
	if err != nil {
		log.Printf("ERROR [ArticleHandler] HandleUpdateArticle for ID %s: %v", articleID, err)
		switch {
		case errors.Is(err, services.ErrArticleNotFound):
			httputil.RespondError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, services.ErrArticleValidation):
			httputil.RespondError(w, http.StatusBadRequest, err.Error())
		default:
			httputil.RespondError(w, http.StatusInternalServerError, "Failed to update article")
		}
		return
	}

	httputil.RespondJSON(w, http.StatusOK, resp)
}

// HandleDeleteArticle handles DELETE /v1/articles/{articleID} (authenticated).
func (h *ArticleHandler) HandleDeleteArticle(w http.ResponseWriter, r *http.Request) {
	articleID, err := uuid.Parse(chi.URLParam(r, "articleID"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid article ID format")
		return
	}

	if err := h.articleService.DeleteArticle(r.Context(), articleID); err != nil {
		log.Printf("ERROR [ArticleHandler] HandleDeleteArticle for ID %s: %v", articleID, err)
		if errors.Is(err, services.ErrArticleNotFound) {
			httputil.RespondError(w, http.StatusNotFound, err.Error())
		} else {
			httputil.RespondError(w, http.StatusInternalServerError, "Failed to delete article")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
