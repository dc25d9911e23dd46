package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/keygate/auth-service/internal/domain"
)

const userCachePrefix = "auth:user:"

type cachedUserRepository struct {
	UserRepository
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedUserRepository puts a Redis read-through cache in front of
// GetByID. Only the safe view is cached, so users served from the cache have
// an empty PasswordHash. Redis failures fall back to the wrapped repository.
func NewCachedUserRepository(inner UserRepository, client *redis.Client, ttl time.Duration, logger *zap.Logger) UserRepository {
	if client == nil {
		return inner
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &cachedUserRepository{UserRepository: inner, client: client, ttl: ttl, logger: logger}
}

func (r *cachedUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	key := userCachePrefix + id

	raw, err := r.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var cached domain.PublicUser
		if jsonErr := json.Unmarshal(raw, &cached); jsonErr == nil {
			return fromPublic(cached), nil
		}
		r.logger.Warn("discarding corrupt user cache entry", zap.String("key", key))
	case !errors.Is(err, redis.Nil):
		r.logger.Warn("user cache read failed", zap.Error(err))
	}

	user, err := r.UserRepository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(user.Public()); err == nil {
		if err := r.client.Set(ctx, key, payload, r.ttl).Err(); err != nil {
			r.logger.Warn("user cache write failed", zap.Error(err))
		}
	}
	return user, nil
}

func fromPublic(p domain.PublicUser) *domain.User {
	return &domain.User{
		ID:        p.ID,
		Name:      p.Name,
		Email:     p.Email,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
