package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents an admin user in the database. Admins manage knowledge
// base articles through the authenticated article endpoints.
type User struct {
	ID             uuid.UUID `db:"id"`
	Email          string    `db:"email"`
	HashedPassword string    `db:"hashed_password"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

// Article represents a knowledge base article in the database.
// Title and content are never empty for a persisted article. Keywords is an
// ordered array of lowercase terms with no fixed cardinality.
type Article struct {
	ID        uuid.UUID `db:"id"`
	Title     string    `db:"title"`
	Content   string    `db:"content"` // Markdown
	Keywords  []string  `db:"keywords"`
	Category  string    `db:"category"`
	Author    string    `db:"author"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"` // Refreshed on every mutation
}
