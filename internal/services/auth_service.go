package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"docuchat-backend/internal/auth"
	"docuchat-backend/internal/config"
	"docuchat-backend/internal/models"
	"docuchat-backend/internal/store"

	"github.com/google/uuid"
)

// Custom errors for the auth service
var (
	ErrUserAlreadyExists  = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrHashingPassword    = errors.New("failed to hash password")
	ErrCreatingToken      = errors.New("failed to create access token")
	ErrCreatingUser       = errors.New("failed to create user")
	ErrValidation         = errors.New("input validation failed")
)

// AuthService handles admin account signup and login. Only authenticated
// admins may mutate articles; reads stay public.
type AuthService struct {
	store store.Store
	cfg   *config.Config
}

func NewAuthService(s store.Store, cfg *config.Config) *AuthService {
	return &AuthService{
		store: s,
		cfg:   cfg,
	}
}

// Signup creates a new admin user.
func (s *AuthService) Signup(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password cannot be empty", ErrValidation)
	}

	// Check if user already exists
	_, err := s.store.GetUserByEmail(ctx, email)
	if err == nil {
		return nil, ErrUserAlreadyExists
	}
	if !errors.Is(err, store.ErrNotFound) {
		log.Printf("Error checking user existence for %s: %v", email, err)
		return nil, fmt.Errorf("failed to check user existence: %w", err)
	}

	hashedPassword, err := auth.HashPassword(password)
	if err != nil {
		log.Printf("Error hashing password for %s: %v", email, err)
		return nil, ErrHashingPassword
	}

	user := &models.User{
		ID:             uuid.New(),
		Email:          email,
		HashedPassword: hashedPassword,
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		log.Printf("Error creating user for %s: %v", email, err)
		return nil, fmt.Errorf("%w: %v", ErrCreatingUser, err)
	}

	log.Printf("Successfully signed up admin %s (ID: %s)", email, user.ID)
	return user, nil
}

// Login verifies admin credentials and returns an access token and user info.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return "", nil, ErrInvalidCredentials
	}

	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", nil, ErrInvalidCredentials // Don't reveal whether the user exists
		}
		log.Printf("Error retrieving user %s during login: %v", email, err)
		return "", nil, fmt.Errorf("failed to retrieve user: %w", err)
	}

	if !auth.CheckPasswordHash(password, user.HashedPassword) {
		return "", nil, ErrInvalidCredentials
	}

	token, err := auth.NewAccessToken(user.ID, s.cfg.JWTSecret, s.cfg.TokenExpiration)
	if err != nil {
		log.Printf("Error generating JWT for user %s (ID: %s): %v", email, user.ID, err)
		return "", nil, ErrCreatingToken
	}

	log.Printf("Successfully logged in admin %s (ID: %s)", email, user.ID)
	return token, user, nil
}
