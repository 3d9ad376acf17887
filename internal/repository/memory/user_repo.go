package memory

import (
	"context"
	"fmt"

	"github.com/BitSparkCode/online-shop-api/internal/domain"
)

type userRepository struct {
	s *Store
}

func (r *userRepository) CreateUser(_ context.Context, user *domain.User) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	row := *user
	row.ID = r.s.users.nextID()
	r.s.users.rows[row.ID] = row

	r.s.log.Debugf("Repository: User created with ID: %d, Username: %s", row.ID, row.Username)
	return &row, nil
}

func (r *userRepository) GetUserByUsername(_ context.Context, username string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var found *domain.User
	for _, u := range r.s.users.rows {
		if u.Username != username {
			continue
		}
		if found == nil || u.ID < found.ID {
			row := u
			found = &row
		}
	}
	if found == nil {
		r.s.log.Debugf("Repository: User with username %s not found", username)
		return nil, fmt.Errorf("user %q: %w", username, domain.ErrNotFound)
	}
	return found, nil
}

func (r *userRepository) UpdatePassword(_ context.Context, username, passwordHash string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var affected int64
	for id, u := range r.s.users.rows {
		if u.Username == username {
			u.PasswordHash = passwordHash
			r.s.users.rows[id] = u
			affected++
		}
	}

	r.s.log.Debugf("Repository: Password updated for username %s (%d rows)", username, affected)
	return affected, nil
}
