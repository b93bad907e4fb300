package memory

import (
	"context"
	"sort"

	"efgportal/internal/domain"
)

type lookupRepository struct {
	s *Store
}

// NewLookupRepository returns a domain.LookupRepository backed by s.
func NewLookupRepository(s *Store) domain.LookupRepository {
	return &lookupRepository{s: s}
}

func (r *lookupRepository) ListIndustries(_ context.Context) ([]*domain.Industry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*domain.Industry, 0, len(r.s.industries))
	for _, i := range r.s.industries {
		c := *i
		out = append(out, &c)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Name < out[b].Name })
	return out, nil
}

func (r *lookupRepository) ListInterests(_ context.Context) ([]*domain.Interest, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*domain.Interest, 0, len(r.s.interests))
	for _, i := range r.s.interests {
		c := *i
		out = append(out, &c)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Name < out[b].Name })
	return out, nil
}

func (r *lookupRepository) GetIndustry(_ context.Context, id string) (*domain.Industry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	i, ok := r.s.industries[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	c := *i
	return &c, nil
}

func (r *lookupRepository) MissingInterests(_ context.Context, ids []string) ([]string, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var missing []string
	for _, id := range ids {
		if _, ok := r.s.interests[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing, nil
}
