package auth

import (
	"context"

	"github.com/keygate/auth-service/internal/domain"
)

type identityKey struct{}

// WithIdentity returns a copy of ctx carrying the authenticated user.
func WithIdentity(ctx context.Context, user domain.PublicUser) context.Context {
	return context.WithValue(ctx, identityKey{}, user)
}

// IdentityFromContext retrieves the user attached by the middleware.
func IdentityFromContext(ctx context.Context) (domain.PublicUser, bool) {
	user, ok := ctx.Value(identityKey{}).(domain.PublicUser)
	return user, ok
}
