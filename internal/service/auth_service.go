package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/keygate/auth-service/internal/auth"
	"github.com/keygate/auth-service/internal/domain"
	"github.com/keygate/auth-service/internal/events"
	"github.com/keygate/auth-service/internal/repository"
	apperrors "github.com/keygate/auth-service/pkg/util"
)

// RegisterInput is the registration payload after decoding.
type RegisterInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// LoginInput is the login payload after decoding.
type LoginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthService coordinates registration and login flows.
type AuthService struct {
	users    repository.UserRepository
	hasher   *auth.PasswordHasher
	tokenMgr *auth.TokenManager
	events   events.Dispatcher
	logger   *zap.Logger

	dummyOnce sync.Once
	dummyHash string
}

// AuthDependencies encapsulates collaborators for the auth service.
type AuthDependencies struct {
	UserRepo   repository.UserRepository
	Hasher     *auth.PasswordHasher
	Tokens     *auth.TokenManager
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(deps AuthDependencies) *AuthService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		users:    deps.UserRepo,
		hasher:   deps.Hasher,
		tokenMgr: deps.Tokens,
		events:   deps.Dispatcher,
		logger:   logger,
	}
}

// NormalizeEmail trims and lowercases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a new account and returns a token for it.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*domain.AuthResult, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = NormalizeEmail(in.Email)
	if err := apperrors.ValidateStruct(in); err != nil {
		return nil, err
	}

	if _, err := s.users.GetByEmail(ctx, in.Email); err == nil {
		return nil, apperrors.NewDuplicateEmail()
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, fmt.Errorf("lookup user by email: %w", err)
	}

	hash, err := s.hasher.Hash(ctx, in.Password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooLong) {
			return nil, apperrors.NewValidationError("password must be at most 72 bytes", map[string]any{
				"fields": []apperrors.FieldError{{Field: "password", Message: "must be at most 72 bytes"}},
			})
		}
		return nil, err
	}

	user := &domain.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
	}
	// The unique constraint decides concurrent registrations of the same email.
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, apperrors.NewDuplicateEmail()
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	token, err := s.tokenMgr.Issue(user.ID)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.NewEvent(events.EventUserRegistered, user.ID, events.UserRegisteredPayload{Email: user.Email}))
	return &domain.AuthResult{Token: token, User: user.Public()}, nil
}

// Login authenticates by email and password. Unknown emails and wrong
// passwords produce the same error.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*domain.AuthResult, error) {
	in.Email = NormalizeEmail(in.Email)
	if err := apperrors.ValidateStruct(in); err != nil {
		return nil, err
	}

	user, err := s.users.GetByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			s.burnVerify(ctx, in.Password)
			return nil, apperrors.NewAuthenticationFailed()
		}
		return nil, fmt.Errorf("lookup user by email: %w", err)
	}

	ok, err := s.hasher.Verify(ctx, in.Password, user.PasswordHash)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperrors.NewAuthenticationFailed()
	}

	token, err := s.tokenMgr.Issue(user.ID)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.NewEvent(events.EventUserLoggedIn, user.ID, events.UserLoggedInPayload{TokenExpiresAt: token.ExpiresAt}))
	return &domain.AuthResult{Token: token, User: user.Public()}, nil
}

// burnVerify spends one bcrypt comparison so unknown emails take as long as
// wrong passwords.
func (s *AuthService) burnVerify(ctx context.Context, password string) {
	s.dummyOnce.Do(func() {
		hash, err := s.hasher.Hash(context.Background(), "timing-equalizer")
		if err != nil {
			s.logger.Warn("unable to prepare dummy hash", zap.Error(err))
			return
		}
		s.dummyHash = hash
	})
	if s.dummyHash != "" {
		_, _ = s.hasher.Verify(ctx, password, s.dummyHash)
	}
}

func (s *AuthService) publish(ctx context.Context, event events.Event) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, event); err != nil {
		s.logger.Warn("event handler failed", zap.String("type", string(event.Type)), zap.Error(err))
	}
}
