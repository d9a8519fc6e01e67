package postgres

import (
	"context"
	"errors"
	"fmt"
	"log"

	db_models "docuchat-backend/internal/models"
	"docuchat-backend/internal/store"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// --- User Methods ---

// GetUserByEmail retrieves an admin user by email address.
// Returns store.ErrNotFound if the user does not exist.
func (s *PostgresStore) GetUserByEmail(ctx context.Context, email string) (*db_models.User, error) {
	log.Printf("[PostgresStore] GetUserByEmail called for: %s", email)
	query := `
		SELECT id, email, hashed_password, created_at, updated_at
		FROM users
		WHERE email = $1`

	user := &db_models.User{}
	err := s.db.QueryRow(ctx, query, email).Scan(
		&user.ID,
		&user.Email,
		&user.HashedPassword,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Printf("[PostgresStore] GetUserByEmail: User not found for email %s", email)
			return nil, store.ErrNotFound
		}
		log.Printf("ERROR [PostgresStore] GetUserByEmail: Failed query/scan for email %s: %v", email, err)
		return nil, fmt.Errorf("database error fetching user by email: %w", err)
	}

	return user, nil
}

// CreateUser inserts a new admin user record.
func (s *PostgresStore) CreateUser(ctx context.Context, user *db_models.User) error {
	log.Printf("[PostgresStore] CreateUser called for: %s", user.Email)
	query := `
		INSERT INTO users (id, email, hashed_password)
		VALUES ($1, $2, $3)
		RETURNING created_at, updated_at`

	err := s.db.QueryRow(ctx, query,
		user.ID,
		user.Email,
		user.HashedPassword,
	).Scan(&user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation (email)
			log.Printf("WARN [PostgresStore] CreateUser: Duplicate email %s: %v", user.Email, err)
			return fmt.Errorf("user with this email already exists")
		}
		log.Printf("ERROR [PostgresStore] CreateUser: Failed exec for email %s: %v", user.Email, err)
		return fmt.Errorf("database error creating user: %w", err)
	}

	log.Printf("[PostgresStore] CreateUser: Successfully inserted user ID %s", user.ID)
	return nil
}
