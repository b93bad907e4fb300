package memory

import (
	"context"
	"sort"

	"efgportal/internal/domain"
)

type profileRepository struct {
	s *Store
}

// NewProfileRepository returns a domain.ProfileRepository backed by s.
func NewProfileRepository(s *Store) domain.ProfileRepository {
	return &profileRepository{s: s}
}

func (r *profileRepository) GetByID(_ context.Context, id string) (*domain.Profile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.profiles[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cloneProfile(p), nil
}

func (r *profileRepository) GetByUserID(_ context.Context, userID string) (*domain.Profile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, p := range r.s.profiles {
		if p.UserID == userID {
			return cloneProfile(p), nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *profileRepository) Update(_ context.Context, p *domain.Profile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.profiles[p.ID]
	if !ok {
		return domain.ErrNotFound
	}
	next := cloneProfile(p)
	next.IsAdmin = cur.IsAdmin
	next.UserID = cur.UserID
	next.CreatedAt = cur.CreatedAt
	r.s.profiles[p.ID] = next
	return nil
}

func (r *profileRepository) SetAdmin(_ context.Context, id string, isAdmin bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.profiles[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.IsAdmin = isAdmin
	return nil
}

func (r *profileRepository) List(_ context.Context, params domain.PaginationParams) ([]*domain.Profile, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	all := make([]*domain.Profile, 0, len(r.s.profiles))
	for _, p := range r.s.profiles {
		all = append(all, p)
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].ID < all[j].ID
	})
	total := len(all)
	start := min(params.Offset(), total)
	end := total
	if params.PageSize > 0 {
		end = min(start+params.PageSize, total)
	}
	out := make([]*domain.Profile, 0, end-start)
	for _, p := range all[start:end] {
		out = append(out, cloneProfile(p))
	}
	return out, total, nil
}

func (r *profileRepository) Count(_ context.Context) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.s.profiles), nil
}
