package memory

import (
	"context"
	"sort"
	"strings"

	"efgportal/internal/domain"

	"github.com/google/uuid"
)

type eventRepository struct {
	s *Store
}

// NewEventRepository returns a domain.EventRepository backed by s.
func NewEventRepository(s *Store) domain.EventRepository {
	return &eventRepository{s: s}
}

func (r *eventRepository) Create(_ context.Context, e *domain.Event) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.events {
		if existing.Slug == e.Slug {
			return domain.NewValidationError("slug", "slug already in use")
		}
	}
	e.ID = uuid.NewString()
	r.s.events[e.ID] = cloneEvent(e)
	return nil
}

func (r *eventRepository) GetByID(_ context.Context, id string) (*domain.Event, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	e, ok := r.s.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cloneEvent(e), nil
}

func (r *eventRepository) GetBySlug(_ context.Context, slug string) (*domain.Event, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, e := range r.s.events {
		if e.Slug == slug {
			return cloneEvent(e), nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *eventRepository) ListActive(_ context.Context) ([]*domain.Event, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*domain.Event, 0)
	for _, e := range r.s.events {
		if e.IsActive {
			out = append(out, cloneEvent(e))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *eventRepository) ListAll(_ context.Context) ([]*domain.Event, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*domain.Event, 0, len(r.s.events))
	for _, e := range r.s.events {
		out = append(out, cloneEvent(e))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *eventRepository) SetFlags(_ context.Context, id string, flags domain.EventFlags) (*domain.Event, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if flags.IsActive != nil {
		e.IsActive = *flags.IsActive
	}
	if flags.RegistrationOpen != nil {
		e.RegistrationOpen = *flags.RegistrationOpen
	}
	return cloneEvent(e), nil
}
