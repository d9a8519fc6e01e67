package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration values loaded from environment variables.
type Config struct {
	DatabaseURL     string
	JWTSecret       string
	HTTPPort        string
	TokenExpiration time.Duration
	SearchTimeout   time.Duration // Bounds each retrieve-and-summarize cycle
}

// LoadConfig loads configuration from environment variables.
// It looks for a .env file first, then checks actual environment variables.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file (useful for development)
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Could not load .env file. Using environment variables only.", err)
		// Don't fail if .env is not present, might be in production
	}

	port := getEnv("HTTP_PORT", "8080")
	jwtSecret := getEnv("JWT_SECRET", "default-super-secret-key") // CHANGE THIS IN PRODUCTION!
	dbURL := getEnv("DATABASE_URL", "")                           // No default, should fail if not set
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is not set.")
	}

	tokenExpStr := getEnv("JWT_EXPIRATION_HOURS", "24")
	tokenExpHours, err := strconv.Atoi(tokenExpStr)
	if err != nil {
		log.Printf("Warning: Invalid JWT_EXPIRATION_HOURS '%s', using default 24h. Error: %v", tokenExpStr, err)
		tokenExpHours = 24
	}

	searchTimeoutStr := getEnv("SEARCH_TIMEOUT_SECONDS", "15")
	searchTimeoutSecs, err := strconv.Atoi(searchTimeoutStr)
	if err != nil || searchTimeoutSecs <= 0 {
		log.Printf("Warning: Invalid SEARCH_TIMEOUT_SECONDS '%s', using default 15s.", searchTimeoutStr)
		searchTimeoutSecs = 15
	}

	cfg := &Config{
		HTTPPort:        port,
		JWTSecret:       jwtSecret,
		DatabaseURL:     dbURL,
		TokenExpiration: time.Hour * time.Duration(tokenExpHours),
		SearchTimeout:   time.Second * time.Duration(searchTimeoutSecs),
	}

	log.Printf("Loaded config: Port=%s, DB_URL=***, TokenExp=%s, SearchTimeout=%s", cfg.HTTPPort, cfg.TokenExpiration, cfg.SearchTimeout)

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	log.Printf("Env variable %s not set, using default: %s", key, fallback)
	return fallback
}
