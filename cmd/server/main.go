package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"docuchat-backend/internal/api"
	"docuchat-backend/internal/config"
	"docuchat-backend/internal/handlers"
	"docuchat-backend/internal/services"
	"docuchat-backend/internal/store/postgres"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	log.Println("Starting DocuChat Backend...")

	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}
	log.Println("Configuration loaded successfully.")

	// 2. Initialize Database Connection Pool
	dbCtx, dbCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer dbCancel()

	dbpool, err := pgxpool.New(dbCtx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("FATAL: Unable to create database connection pool: %v\n", err)
	}
	defer dbpool.Close()

	if err := dbpool.Ping(dbCtx); err != nil {
		log.Fatalf("FATAL: Unable to ping database: %v\n", err)
	}
	log.Println("Database connection pool established and pinged successfully.")

	// 3. Initialize Dependencies (Store, Services, Handlers)
	pgStore := postgres.NewPostgresStore(dbpool)
	if err := pgStore.Bootstrap(dbCtx); err != nil {
		log.Fatalf("FATAL: Failed to bootstrap database schema: %v", err)
	}
	log.Println("Postgres store initialized and schema applied.")

	// --- Initialize Services ---
	authService := services.NewAuthService(pgStore, cfg)
	log.Println("AuthService initialized.")
	articleService := services.NewArticleService(pgStore)
	log.Println("ArticleService initialized.")
	searchService := services.NewSearchService(pgStore)
	log.Println("SearchService initialized.")
	chatService := services.NewChatService(searchService, cfg.SearchTimeout)
	log.Println("ChatService initialized.")

	// --- Initialize Handlers ---
	authHandler := handlers.NewAuthHandler(authService)
	articleHandler := handlers.NewArticleHandler(articleService)
	chatHandler := handlers.NewChatHandler(chatService)
	log.Println("Handlers initialized.")

	// 4. Setup Router & Inject Dependencies
	routerDeps := api.RouterDependencies{
		AuthHandler:    authHandler,
		ArticleHandler: articleHandler,
		ChatHandler:    chatHandler,
		Config:         cfg,
	}
	router := api.NewRouter(routerDeps)
	log.Println("HTTP router configured.")

	// 5. Configure and Start HTTP Server
	server := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
		// Production hardening: Set timeouts to avoid Slowloris attacks
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Channel to listen for OS signals for graceful shutdown
	stopChan := make(chan os.Signal, 1)
	signal.Notify(stopChan, syscall.SIGINT, syscall.SIGTERM)

	// Run server in a goroutine so it doesn't block
	go func() {
		log.Printf("Server starting and listening on port %s", cfg.HTTPPort)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("FATAL: Could not listen on %s: %v\n", cfg.HTTPPort, err)
		}
		log.Println("Server listener routine stopped.")
	}()

	// Wait for interrupt signal
	<-stopChan
	log.Println("Shutdown signal received, initiating graceful shutdown...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("WARN: Server graceful shutdown failed: %v", err)
		log.Fatal("Forcing shutdown due to error.")
	}

	log.Println("Server shutdown complete.")
}
