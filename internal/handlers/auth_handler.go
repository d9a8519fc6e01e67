package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	api_models "docuchat-backend/internal/models"
	db_models "docuchat-backend/internal/models"
	"docuchat-backend/internal/services"
	"docuchat-backend/pkg/httputil"
)

// AuthService defines the interface expected from the auth service.
// This promotes loose coupling and testability.
type AuthService interface {
	Signup(ctx context.Context, email, password string) (*db_models.User, error)
	Login(ctx context.Context, email, password string) (string, *db_models.User, error)
}

type AuthHandler struct {
	authService AuthService
}

func NewAuthHandler(authSvc AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authSvc,
	}
}

// HandleSignup handles POST /v1/auth/signup.
func (h *AuthHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	var req api_models.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	if req.Email == "" || req.Password == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	user, err := h.authService.Signup(r.Context(), req.Email, req.Password)
	if err != nil {
		log.Printf("Signup handler failed for email %s: %v", req.Email, err)
		switch {
		case errors.Is(err, services.ErrUserAlreadyExists):
			httputil.RespondError(w, http.StatusConflict, err.Error())
		case errors.Is(err, services.ErrValidation):
			httputil.RespondError(w, http.StatusBadRequest, err.Error())
		default:
			httputil.RespondError(w, http.StatusInternalServerError, "Failed to sign up")
		}
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, api_models.UserResponse{
		ID:    user.ID,
		Email: user.Email,
	})
}

// HandleLogin handles POST /v1/auth/login.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req api_models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	token, user, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		log.Printf("Login handler failed for email %s: %v", req.Email, err)
		if errors.Is(err, services.ErrInvalidCredentials) {
			httputil.RespondError(w, http.StatusUnauthorized, err.Error())
		} else {
			httputil.RespondError(w, http.StatusInternalServerError, "Failed to log in")
		}
		return
	}

	httputil.RespondJSON(w, http.StatusOK, api_models.AuthResponse{
		AccessToken: token,
		User: api_models.UserResponse{
			ID:    user.ID,
			Email: user.Email,
		},
	})
}
