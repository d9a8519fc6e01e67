package services_test

import (
	"context"
	"testing"
	"time"

	"docuchat-backend/internal/auth"
	"docuchat-backend/internal/config"
	db_models "docuchat-backend/internal/models"
	"docuchat-backend/internal/mock"
	"docuchat-backend/internal/services"
	"docuchat-backend/internal/store"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:       "test-secret",
		TokenExpiration: time.Hour,
	}
}

func TestAuthService_Signup(t *testing.T) {
	t.Parallel()

	t.Run("creates a new admin user", func(t *testing.T) {
		t.Parallel()

		st := &mock.Store{
			GetUserByEmailFn: func(_ context.Context, _ string) (*db_models.User, error) {
				return nil, store.ErrNotFound
			},
			CreateUserFn: func(_ context.Context, user *db_models.User) error {
				assert.Equal(t, "admin@example.com", user.Email)
				assert.NotEmpty(t, user.HashedPassword)
				assert.NotEqual(t, "hunter22", user.HashedPassword)
				return nil
			},
		}
		svc := services.NewAuthService(st, testConfig())

		user, err := svc.Signup(context.Background(), "  Admin@Example.com ", "hunter22")

		require.NoError(t, err)
		assert.Equal(t, "admin@example.com", user.Email)
		assert.Equal(t, 1, st.CreateUserInvoked)
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		t.Parallel()

		st := &mock.Store{
			GetUserByEmailFn: func(_ context.Context, _ string) (*db_models.User, error) {
				return &db_models.User{ID: uuid.New(), Email: "admin@example.com"}, nil
			},
		}
		svc := services.NewAuthService(st, testConfig())

		_, err := svc.Signup(context.Background(), "admin@example.com", "hunter22")

		assert.ErrorIs(t, err, services.ErrUserAlreadyExists)
	})

	t.Run("rejects blank input", func(t *testing.T) {
		t.Parallel()

		svc := services.NewAuthService(&mock.Store{}, testConfig())

		_, err := svc.Signup(context.Background(), "", "")

		assert.ErrorIs(t, err, services.ErrValidation)
	})
}

func TestAuthService_Login(t *testing.T) {
	t.Parallel()

	t.Run("returns a token for valid credentials", func(t *testing.T) {
		t.Parallel()

		hashed, err := auth.HashPassword("hunter22")
		require.NoError(t, err)

		st := &mock.Store{
			GetUserByEmailFn: func(_ context.Context, email string) (*db_models.User, error) {
				assert.Equal(t, "admin@example.com", email)
				return &db_models.User{ID: uuid.New(), Email: email, HashedPassword: hashed}, nil
			},
		}
		svc := services.NewAuthService(st, testConfig())

		token, user, err := svc.Login(context.Background(), "admin@example.com", "hunter22")

		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, "admin@example.com", user.Email)
	})

	t.Run("rejects a wrong password", func(t *testing.T) {
		t.Parallel()

		hashed, err := auth.HashPassword("hunter22")
		require.NoError(t, err)

		st := &mock.Store{
			GetUserByEmailFn: func(_ context.Context, email string) (*db_models.User, error) {
				return &db_models.User{ID: uuid.New(), Email: email, HashedPassword: hashed}, nil
			},
		}
		svc := services.NewAuthService(st, testConfig())

		_, _, err = svc.Login(context.Background(), "admin@example.com", "wrong")

		assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	})

	t.Run("does not reveal whether the user exists", func(t *testing.T) {
		t.Parallel()

		st := &mock.Store{
			GetUserByEmailFn: func(_ context.Context, _ string) (*db_models.User, error) {
				return nil, store.ErrNotFound
			},
		}
		svc := services.NewAuthService(st, testConfig())

		_, _, err := svc.Login(context.Background(), "nobody@example.com", "whatever")

		assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	})
}
