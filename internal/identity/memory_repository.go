package identity

import (
	"context"
	"sync"
)

// MemoryRepository is an in-memory directory for development and tests.
type MemoryRepository struct {
	mu     sync.RWMutex
	users  map[int64]User
	nextID int64
}

// NewMemoryRepository builds an in-memory directory.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{users: make(map[int64]User), nextID: 1}
}

// Add stores a user record, assigning an identifier when none is set, and
// returns the stored record.
func (r *MemoryRepository) Add(user User) User {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.ID == 0 {
		user.ID = r.nextID
		r.nextID++
	} else if user.ID >= r.nextID {
		r.nextID = user.ID + 1
	}
	r.users[user.ID] = user
	return user
}

// Remove deletes a user record when present.
func (r *MemoryRepository) Remove(id int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
}

func (r *MemoryRepository) FindByPhone(_ context.Context, phone string, role Role) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, user := range r.users {
		if user.Phone == phone && user.Role == role {
			return user, nil
		}
	}
	return User{}, ErrNotFound
}

func (r *MemoryRepository) FindByID(_ context.Context, id int64) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[id]
	if !ok {
		return User{}, ErrNotFound
	}
	return user, nil
}
