package observability

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/keygate/auth-service/internal/config"
)

func TestMetrics_Snapshot(t *testing.T) {
	m := NewMetrics()
	m.RecordRequest("/health", "GET", 200, 2*time.Millisecond)
	m.RecordRequest("/health", "GET", 200, 4*time.Millisecond)
	m.RecordError("/api/users", "GET", "UNAUTHENTICATED")
	m.RecordAuthEvent(AuthEventRegistered)

	snap := m.Snapshot()
	assert.Equal(t, int64(2), snap.Requests["/health|GET|200"])
	assert.Equal(t, int64(1), snap.Errors["/api/users|GET|UNAUTHENTICATED"])
	assert.Equal(t, int64(1), snap.AuthEvents[AuthEventRegistered])
	assert.InDelta(t, 3.0, snap.AvgLatencyMsec, 0.001)

	snap.Requests["/health|GET|200"] = 99
	assert.Equal(t, int64(2), m.Snapshot().Requests["/health|GET|200"])
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	m.RecordRequest("/", "GET", 200, time.Millisecond)
	m.RecordError("/", "GET", "X")
	m.RecordAuthEvent(AuthEventLoggedIn)
	assert.Empty(t, m.Snapshot().Requests)
}

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	metrics := NewMetrics()

	app := fiber.New()
	app.Use(RequestLogger(zap.New(core), metrics))
	app.Get("/ok", func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/teapot", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusTeapot) })

	resp, err := app.Test(httptest.NewRequest("GET", "/ok", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/teapot", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTeapot, resp.StatusCode)

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, zap.InfoLevel, entries[0].Level)
	assert.Equal(t, zap.WarnLevel, entries[1].Level)
	assert.Equal(t, "/teapot", entries[1].ContextMap()["path"])

	snap := metrics.Snapshot()
	assert.Equal(t, int64(1), snap.Requests["/ok|GET|200"])
	assert.Equal(t, int64(1), snap.Requests["/teapot|GET|418"])
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger(config.LoggerConfig{Level: "debug"}, config.AppConfig{Name: "auth-service", Env: config.EnvProduction})
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zap.DebugLevel))

	logger, err = NewLogger(config.LoggerConfig{Level: "nonsense"}, config.AppConfig{Env: config.EnvDevelopment})
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zap.DebugLevel))
	assert.True(t, logger.Core().Enabled(zap.InfoLevel))
}
