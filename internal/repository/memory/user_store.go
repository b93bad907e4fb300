package memory

import (
	"context"
	"strings"

	"efgportal/internal/domain"

	"github.com/google/uuid"
)

type userRepository struct {
	s *Store
}

// NewUserRepository returns a domain.UserRepository backed by s.
func NewUserRepository(s *Store) domain.UserRepository {
	return &userRepository{s: s}
}

func (r *userRepository) Create(_ context.Context, u *domain.User, p *domain.Profile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := strings.ToLower(u.Email)
	if _, ok := r.s.usersByEmail[key]; ok {
		return domain.ErrDuplicateEmail
	}
	u.ID = uuid.NewString()
	p.ID = uuid.NewString()
	p.UserID = u.ID
	stored := *u
	r.s.users[u.ID] = &stored
	r.s.usersByEmail[key] = u.ID
	r.s.profiles[p.ID] = cloneProfile(p)
	return nil
}

func (r *userRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	id, ok := r.s.usersByEmail[strings.ToLower(email)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	u := *r.s.users[id]
	return &u, nil
}
