package dto

import (
	"time"

	"github.com/keygate/auth-service/internal/domain"
)

// UserRegisterRequest payload for new users.
type UserRegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserLoginRequest payload for login.
type UserLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string            `json:"token"`
	ExpiresAt time.Time         `json:"expires_at"`
	User      domain.PublicUser `json:"user"`
}

// NewAuthResponse flattens a service result for the wire.
func NewAuthResponse(res *domain.AuthResult) AuthResponse {
	return AuthResponse{Token: res.Token.Value, ExpiresAt: res.Token.ExpiresAt, User: res.User}
}

// UserResponse wraps a single safe view.
type UserResponse struct {
	User domain.PublicUser `json:"user"`
}

// UserListResponse wraps a list of safe views.
type UserListResponse struct {
	Users []domain.PublicUser `json:"users"`
	Count int                 `json:"count"`
}
