package persistence

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/keygate/auth-service/internal/config"
)

func TestNewPostgres_NoDSN(t *testing.T) {
	pg, err := NewPostgres(context.Background(), config.PostgresConfig{}, zap.NewNop())
	require.NoError(t, err)

	assert.False(t, pg.Enabled())
	assert.Nil(t, pg.PoolHandle())
	assert.Error(t, pg.Ping(context.Background()))
	pg.Close()
}

func TestNewPostgres_BadDSN(t *testing.T) {
	_, err := NewPostgres(context.Background(), config.PostgresConfig{DSN: "postgres://%zz"}, zap.NewNop())
	assert.ErrorContains(t, err, "parse POSTGRES_DSN")
}

func TestRunMigrations_NoPool(t *testing.T) {
	assert.NoError(t, RunMigrations(context.Background(), nil, zap.NewNop()))
}

func TestMigrationsAreEmbedded(t *testing.T) {
	entries, err := migrationsFS.ReadDir(migrationsDir)
	require.NoError(t, err)
	require.NotEmpty(t, entries)
	assert.Equal(t, "00001_create_users.sql", entries[0].Name())
}

func TestNewRedis_Disabled(t *testing.T) {
	r := NewRedis(context.Background(), config.RedisConfig{Enabled: false}, zap.NewNop())

	assert.False(t, r.Enabled())
	assert.Error(t, r.Ping(context.Background()))
	r.Close()
}

func TestNewRedis_Enabled(t *testing.T) {
	mini := miniredis.RunT(t)

	r := NewRedis(context.Background(), config.RedisConfig{Enabled: true, Addr: mini.Addr()}, zap.NewNop())
	defer r.Close()

	assert.True(t, r.Enabled())
	assert.NoError(t, r.Ping(context.Background()))
}
