package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keygate/auth-service/internal/auth"
	"github.com/keygate/auth-service/internal/domain"
	"github.com/keygate/auth-service/internal/repository"
	apperrors "github.com/keygate/auth-service/pkg/util"
)

func TestUserService_Me(t *testing.T) {
	svc := NewUserService(repository.NewMemoryUserRepository())

	_, err := svc.Me(context.Background())
	assert.True(t, apperrors.IsCode(err, apperrors.CodeUnauthenticated))

	me := domain.PublicUser{ID: "u1", Name: "Ann", Email: "ann@x.com"}
	got, err := svc.Me(auth.WithIdentity(context.Background(), me))
	require.NoError(t, err)
	assert.Equal(t, me, got)
}

func TestUserService_List(t *testing.T) {
	repo := repository.NewMemoryUserRepository()
	ctx := context.Background()
	for _, email := range []string{"a@x.com", "b@x.com"} {
		require.NoError(t, repo.Create(ctx, &domain.User{Name: "n", Email: email, PasswordHash: "h"}))
	}

	users, err := NewUserService(repo).List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "b@x.com", users[0].Email)
}

func TestUserService_ListEmpty(t *testing.T) {
	users, err := NewUserService(repository.NewMemoryUserRepository()).List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, users)
	assert.Empty(t, users)
}

func TestUserService_ListError(t *testing.T) {
	_, err := NewUserService(brokenRepo{}).List(context.Background())
	assert.ErrorIs(t, err, errBoom)
}
