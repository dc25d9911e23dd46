package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keygate/auth-service/internal/domain"
	"github.com/keygate/auth-service/internal/repository"
	apperrors "github.com/keygate/auth-service/pkg/util"
)

type failingLookup struct{}

func (failingLookup) GetByID(context.Context, string) (*domain.User, error) {
	return nil, errors.New("connection refused")
}

type gateFixture struct {
	app    *fiber.App
	tokens *TokenManager
	clock  *fakeClock
	user   *domain.User
}

func newGateFixture(t *testing.T, lookup UserLookup) *gateFixture {
	t.Helper()
	clock := newClock()
	tokens := NewTokenManager("gate-secret", time.Hour, WithClock(clock.Now))

	repo := repository.NewMemoryUserRepository()
	user := &domain.User{Name: "Ann", Email: "ann@x.com", PasswordHash: "hash"}
	require.NoError(t, repo.Create(context.Background(), user))
	if lookup == nil {
		lookup = repo
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			de := apperrors.ToDomainError(err)
			return c.Status(de.HTTPStatus).JSON(fiber.Map{"code": de.Code, "message": de.Message})
		},
	})
	app.Get("/me", NewAuthMiddleware(tokens, lookup, nil).Handle, func(c *fiber.Ctx) error {
		identity, ok := IdentityFromContext(c.UserContext())
		if !ok {
			return errors.New("identity missing")
		}
		return c.JSON(identity)
	})

	return &gateFixture{app: app, tokens: tokens, clock: clock, user: user}
}

func (f *gateFixture) get(t *testing.T, header string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestAuthMiddleware_AttachesIdentity(t *testing.T) {
	f := newGateFixture(t, nil)
	issued, err := f.tokens.Issue(f.user.ID)
	require.NoError(t, err)

	status, body := f.get(t, "Bearer "+issued.Value)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, f.user.ID, body["id"])
	assert.Equal(t, "ann@x.com", body["email"])
	assert.NotContains(t, body, "password_hash")
}

func TestAuthMiddleware_SchemeIsCaseInsensitive(t *testing.T) {
	f := newGateFixture(t, nil)
	issued, err := f.tokens.Issue(f.user.ID)
	require.NoError(t, err)

	status, _ := f.get(t, "bearer "+issued.Value)
	assert.Equal(t, http.StatusOK, status)
}

func TestAuthMiddleware_RejectsMissingOrMalformedHeader(t *testing.T) {
	f := newGateFixture(t, nil)

	for _, header := range []string{"", "Bearer", "Bearer ", "Basic dXNlcjpwYXNz", "Token abc"} {
		status, body := f.get(t, header)
		assert.Equal(t, http.StatusUnauthorized, status, "header %q", header)
		assert.Equal(t, apperrors.CodeUnauthenticated, body["code"])
		assert.Equal(t, "no token provided", body["message"])
	}
}

func TestAuthMiddleware_RejectsBadTokensUniformly(t *testing.T) {
	f := newGateFixture(t, nil)

	foreign, err := NewTokenManager("other-secret", time.Hour).Issue(f.user.ID)
	require.NoError(t, err)

	expired, err := f.tokens.Issue(f.user.ID)
	require.NoError(t, err)

	cases := map[string]func() string{
		"garbage":      func() string { return "Bearer not.a.jwt" },
		"wrong secret": func() string { return "Bearer " + foreign.Value },
		"expired": func() string {
			f.clock.t = f.clock.t.Add(time.Hour + time.Second)
			return "Bearer " + expired.Value
		},
	}

	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			status, body := f.get(t, header())
			assert.Equal(t, http.StatusUnauthorized, status)
			assert.Equal(t, apperrors.CodeUnauthenticated, body["code"])
			assert.Equal(t, "invalid or expired token", body["message"])
		})
	}
}

func TestAuthMiddleware_TTLBoundary(t *testing.T) {
	f := newGateFixture(t, nil)
	start := f.clock.t
	issued, err := f.tokens.Issue(f.user.ID)
	require.NoError(t, err)

	f.clock.t = start.Add(time.Hour - time.Second)
	status, _ := f.get(t, "Bearer "+issued.Value)
	assert.Equal(t, http.StatusOK, status)

	f.clock.t = start.Add(time.Hour + time.Second)
	status, _ = f.get(t, "Bearer "+issued.Value)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestAuthMiddleware_StaleSubject(t *testing.T) {
	f := newGateFixture(t, nil)
	issued, err := f.tokens.Issue("deleted-user")
	require.NoError(t, err)

	status, body := f.get(t, "Bearer "+issued.Value)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, apperrors.CodeUnauthenticated, body["code"])
}

func TestAuthMiddleware_DirectoryFailure(t *testing.T) {
	f := newGateFixture(t, failingLookup{})
	issued, err := f.tokens.Issue(f.user.ID)
	require.NoError(t, err)

	status, body := f.get(t, "Bearer "+issued.Value)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, apperrors.CodeInternal, body["code"])
}

func TestBearerToken(t *testing.T) {
	tok, ok := bearerToken("Bearer  abc ")
	assert.True(t, ok)
	assert.Equal(t, "abc", tok)

	_, ok = bearerToken("Bearerabc")
	assert.False(t, ok)
}
