package repository

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/keygate/auth-service/internal/domain"
	"github.com/keygate/auth-service/internal/persistence"
)

// newPostgresRepo connects to POSTGRES_TEST_DSN, migrates, and empties users.
func newPostgresRepo(t *testing.T) UserRepository {
	t.Helper()
	dsn := os.Getenv("POSTGRES_TEST_DSN")
	if dsn == "" {
		t.Skip("POSTGRES_TEST_DSN not set")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, persistence.RunMigrations(ctx, pool, zap.NewNop()))
	_, err = pool.Exec(ctx, "TRUNCATE users")
	require.NoError(t, err)

	return NewUserRepository(pool)
}

func TestPostgresUserRepository(t *testing.T) {
	repo := newPostgresRepo(t)
	ctx := context.Background()

	first := &domain.User{Name: "Ann", Email: "ann@x.com", PasswordHash: "h1"}
	require.NoError(t, repo.Create(ctx, first))
	require.NotEmpty(t, first.ID)
	assert.False(t, first.UpdatedAt.Before(first.CreatedAt))

	second := &domain.User{Name: "Bob", Email: "bob@x.com", PasswordHash: "h2"}
	require.NoError(t, repo.Create(ctx, second))

	t.Run("duplicate email", func(t *testing.T) {
		err := repo.Create(ctx, &domain.User{Name: "Ann2", Email: "ann@x.com", PasswordHash: "h"})
		assert.ErrorIs(t, err, ErrDuplicateEmail)
	})

	t.Run("lookups", func(t *testing.T) {
		byID, err := repo.GetByID(ctx, first.ID)
		require.NoError(t, err)
		assert.Equal(t, "ann@x.com", byID.Email)

		byEmail, err := repo.GetByEmail(ctx, "bob@x.com")
		require.NoError(t, err)
		assert.Equal(t, second.ID, byEmail.ID)
		assert.Equal(t, "h2", byEmail.PasswordHash)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := repo.GetByID(ctx, "00000000-0000-0000-0000-000000000000")
		assert.ErrorIs(t, err, ErrUserNotFound)

		_, err = repo.GetByID(ctx, "not-a-uuid")
		assert.ErrorIs(t, err, ErrUserNotFound)

		_, err = repo.GetByEmail(ctx, "nobody@x.com")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("list newest first", func(t *testing.T) {
		users, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, users, 2)
		assert.Equal(t, second.ID, users[0].ID)
		assert.Equal(t, first.ID, users[1].ID)
	})
}
