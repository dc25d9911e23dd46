package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/keygate/auth-service/internal/domain"
	"github.com/keygate/auth-service/internal/repository"
	apperrors "github.com/keygate/auth-service/pkg/util"
)

const bearerScheme = "Bearer"

// UserLookup resolves token subjects to users.
type UserLookup interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

// AuthMiddleware validates bearer tokens and loads the caller.
type AuthMiddleware struct {
	tokens *TokenManager
	users  UserLookup
	logger *zap.Logger
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager, users UserLookup, logger *zap.Logger) *AuthMiddleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthMiddleware{tokens: tokens, users: users, logger: logger}
}

// Handle enforces authentication for protected routes. On success the
// caller's safe view is attached to c.UserContext().
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	user, err := m.Authenticate(c.UserContext(), c.Get(fiber.HeaderAuthorization))
	if err != nil {
		return err
	}
	c.SetUserContext(WithIdentity(c.UserContext(), user))
	return c.Next()
}

// Authenticate resolves an Authorization header value to a user.
func (m *AuthMiddleware) Authenticate(ctx context.Context, header string) (domain.PublicUser, error) {
	tokenStr, ok := bearerToken(header)
	if !ok {
		return domain.PublicUser{}, apperrors.NewUnauthenticated("no token provided")
	}

	subjectID, err := m.tokens.Verify(tokenStr)
	if err != nil {
		m.logger.Debug("token rejected", zap.Error(err))
		return domain.PublicUser{}, apperrors.NewUnauthenticated("invalid or expired token")
	}

	user, err := m.users.GetByID(ctx, subjectID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			m.logger.Debug("token subject not found", zap.String("user_id", subjectID))
			return domain.PublicUser{}, apperrors.NewUnauthenticated("invalid or expired token")
		}
		return domain.PublicUser{}, apperrors.NewInternalError(err)
	}
	return user.Public(), nil
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], bearerScheme) {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}
	return token, true
}
