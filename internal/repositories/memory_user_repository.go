package repositories

import (
	"context"
	"strings"
	"sync"

	"homefinder-listings/internal/models"
)

type memoryUserRepository struct {
	mu     sync.RWMutex
	users  map[string]models.User
	nextID int64
}

func NewMemoryUserRepository() UserRepository {
	return &memoryUserRepository{users: make(map[string]models.User), nextID: 1}
}

func (r *memoryUserRepository) FindByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[strings.ToLower(email)]
	if !ok {
		return nil, ErrUserNotFound
	}
	return &u, nil
}

func (r *memoryUserRepository) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := strings.ToLower(user.Email)
	if _, exists := r.users[key]; exists {
		return ErrEmailTaken
	}
	user.ID = r.nextID
	r.nextID++
	r.users[key] = *user
	return nil
}
