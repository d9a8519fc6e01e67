package postgres

import (
	"context"
	_ "embed"
	"fmt"
	"log"

	"docuchat-backend/internal/store"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Compile-time check to ensure PostgresStore implements store.Store
var _ store.Store = (*PostgresStore)(nil)

//go:embed schema.sql
var schemaSQL string

type PostgresStore struct {
	db *pgxpool.Pool
}

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

// Bootstrap applies the embedded schema. All statements are idempotent
// (CREATE ... IF NOT EXISTS) so this is safe to run on every startup.
func (s *PostgresStore) Bootstrap(ctx context.Context) error {
	log.Println("[PostgresStore] Bootstrap: applying schema")
	if _, err := s.db.Exec(ctx, schemaSQL); err != nil {
		log.Printf("ERROR [PostgresStore] Bootstrap: failed to apply schema: %v", err)
		return fmt.Errorf("database error applying schema: %w", err)
	}
	return nil
}
