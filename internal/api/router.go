package api

import (
	"log"
	"net/http"
	"time"

	"docuchat-backend/internal/config"
	"docuchat-backend/internal/handlers"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// RouterDependencies holds all the dependencies required by the router setup,
// primarily handlers and configuration.
type RouterDependencies struct {
	AuthHandler    *handlers.AuthHandler
	ArticleHandler *handlers.ArticleHandler
	ChatHandler    *handlers.ChatHandler
	Config         *config.Config
}

// NewRouter creates and configures the main Chi router for the application.
//
// Access control follows the store boundary rule: anyone may read articles
// and use the chat surface; only authenticated admins may create, update,
// or delete articles.
func NewRouter(deps RouterDependencies) *chi.Mux {
	r := chi.NewRouter()

	// --- Base Middleware Stack ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// --- CORS Configuration ---
	// Adjust AllowedOrigins for your frontend deployment(s)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000", "http://localhost:5173"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token", "X-Requested-With"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// --- Public Routes (No JWT Required) ---
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Route("/v1/auth", func(r chi.Router) {
		if deps.AuthHandler == nil {
			panic("AuthHandler dependency is nil in router setup")
		}
		r.Post("/signup", deps.AuthHandler.HandleSignup)
		r.Post("/login", deps.AuthHandler.HandleLogin)
	})

	// --- Public Article Reads ---
	if deps.ArticleHandler != nil {
		r.Route("/v1/articles", func(r chi.Router) {
			r.Get("/", deps.ArticleHandler.HandleListArticles)
			r.Get("/{articleID}", deps.ArticleHandler.HandleGetArticle)

			// Mutations require an authenticated admin
			r.Group(func(r chi.Router) {
				r.Use(JwtAuthMiddleware(deps.Config.JWTSecret))
				r.Post("/", deps.ArticleHandler.HandleCreateArticle)
				r.Put("/{articleID}", deps.ArticleHandler.HandleUpdateArticle)
				r.Delete("/{articleID}", deps.ArticleHandler.HandleDeleteArticle)
			})
		})
	} else {
		log.Println("WARN: ArticleHandler dependency is nil, skipping /v1/articles routes.")
	}

	// --- Public Chat Routes ---
	if deps.ChatHandler != nil {
		r.Route("/v1/chat/sessions", func(r chi.Router) {
			r.Post("/", deps.ChatHandler.HandleCreateSession)
			r.Get("/{sessionID}", deps.ChatHandler.HandleGetSession)
			r.Post("/{sessionID}/messages", deps.ChatHandler.HandleSubmitMessage)
			r.Delete("/{sessionID}", deps.ChatHandler.HandleCloseSession)
		})
	} else {
		log.Println("WARN: ChatHandler dependency is nil, skipping /v1/chat routes.")
	}

	return r
}
