package models

import (
	"time"

	"github.com/google/uuid"
)

// --- Auth DTOs ---

// SignupRequest defines the expected body for the admin signup endpoint.
type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest defines the expected body for the admin login endpoint.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse defines the admin user information returned by the API.
// Never include the hashed password here.
type UserResponse struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
}

// AuthResponse defines the response body for successful authentication.
type AuthResponse struct {
	AccessToken string       `json:"access_token"`
	User        UserResponse `json:"user"`
}

// ErrorResponse defines the standard structure for API errors.
type ErrorResponse struct {
	Error string `json:"error"`
}

// --- Article DTOs ---

// CreateArticleRequest defines the body for creating a knowledge base article.
// Category and Author fall back to the store defaults when omitted.
type CreateArticleRequest struct {
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Keywords []string `json:"keywords,omitempty"`
	Category *string  `json:"category,omitempty"`
	Author   *string  `json:"author,omitempty"`
}

// UpdateArticleRequest defines the body for updating an article.
// Only fields present in the request are updated.
type UpdateArticleRequest struct {
	Title    *string   `json:"title"`
	Content  *string   `json:"content"`
	Keywords *[]string `json:"keywords"`
	Category *string   `json:"category"`
	Author   *string   `json:"author"`
}

// ArticleResponse defines the data returned for an article.
type ArticleResponse struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Keywords  []string  `json:"keywords"`
	Category  string    `json:"category"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ListArticlesResponse defines the response structure for listing articles.
type ListArticlesResponse struct {
	Articles []ArticleResponse `json:"articles"`
}

// --- Chat DTOs ---

// TurnRole identifies the author of a chat turn.
type TurnRole string

const (
	TurnRoleUser      TurnRole = "user"
	TurnRoleAssistant TurnRole = "assistant"
)

// ArticleRef is a lightweight reference to an article attached to a turn.
type ArticleRef struct {
	ID       uuid.UUID `json:"id"`
	Title    string    `json:"title"`
	Category string    `json:"category"`
}

// ChatTurn represents a single message in a session log. Turns are created
// at send time and immutable thereafter.
type ChatTurn struct {
	ID        uuid.UUID    `json:"id"`
	Role      TurnRole     `json:"role"`
	Content   string       `json:"content"` // Markdown-rendered on the client
	Timestamp time.Time    `json:"timestamp"`
	Articles  []ArticleRef `json:"articles,omitempty"` // At most 3
}

// SessionStatus is the tri-state lifecycle of a chat session.
type SessionStatus string

const (
	// SessionIdle means the session is accepting new submissions.
	SessionIdle SessionStatus = "idle"
	// SessionBusy means a retrieve-and-summarize cycle is in flight.
	SessionBusy SessionStatus = "busy"
	// SessionError means the last cycle failed. The session still accepts
	// new submissions; the status exists so the UI can surface recovery.
	SessionError SessionStatus = "error"
)

// SessionResponse is a snapshot of a chat session's turn log and status.
type SessionResponse struct {
	ID        uuid.UUID     `json:"id"`
	Status    SessionStatus `json:"status"`
	Turns     []ChatTurn    `json:"turns"`
	CreatedAt time.Time     `json:"created_at"`
}

// SubmitMessageRequest defines the body for submitting a chat query.
type SubmitMessageRequest struct {
	Content string `json:"content"`
}
