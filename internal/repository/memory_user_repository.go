package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/keygate/auth-service/internal/domain"
)

// memoryUserRepository keeps users in process memory. It enforces the same
// email uniqueness as the Postgres schema.
type memoryUserRepository struct {
	mu      sync.RWMutex
	byID    map[string]*domain.User
	byEmail map[string]string
	seq     uint64
	seqByID map[string]uint64
	now     func() time.Time
}

// NewMemoryUserRepository returns an in-memory implementation.
func NewMemoryUserRepository() UserRepository {
	return &memoryUserRepository{
		byID:    make(map[string]*domain.User),
		byEmail: make(map[string]string),
		seqByID: make(map[string]uint64),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (r *memoryUserRepository) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[user.Email]; exists {
		return ErrDuplicateEmail
	}

	now := r.now()
	user.ID = uuid.NewString()
	user.CreatedAt = now
	user.UpdatedAt = now

	stored := *user
	r.seq++
	r.byID[stored.ID] = &stored
	r.byEmail[stored.Email] = stored.ID
	r.seqByID[stored.ID] = r.seq
	return nil
}

func (r *memoryUserRepository) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byID[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	out := *user
	return &out, nil
}

func (r *memoryUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	id, ok := r.byEmail[email]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrUserNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *memoryUserRepository) List(_ context.Context) ([]*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]*domain.User, 0, len(r.byID))
	for _, user := range r.byID {
		out := *user
		users = append(users, &out)
	}
	// Insertion order breaks ties between users created in the same instant.
	sort.Slice(users, func(i, j int) bool {
		if !users[i].CreatedAt.Equal(users[j].CreatedAt) {
			return users[i].CreatedAt.After(users[j].CreatedAt)
		}
		return r.seqByID[users[i].ID] > r.seqByID[users[j].ID]
	})
	return users, nil
}
