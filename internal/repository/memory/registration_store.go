package memory

import (
	"context"
	"sort"

	"efgportal/internal/domain"

	"github.com/google/uuid"
)

type eventRegistrationRepository struct {
	s *Store
}

// NewEventRegistrationRepository returns a domain.EventRegistrationRepository backed by s.
func NewEventRegistrationRepository(s *Store) domain.EventRegistrationRepository {
	return &eventRegistrationRepository{s: s}
}

func (r *eventRegistrationRepository) Create(_ context.Context, reg *domain.EventRegistration) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := pairKey(reg.EventID, reg.ProfileID)
	if id, ok := r.s.pairs[key]; ok {
		*reg = *cloneRegistration(r.s.registrations[id])
		return false, nil
	}
	reg.ID = uuid.NewString()
	r.s.registrations[reg.ID] = cloneRegistration(reg)
	r.s.pairs[key] = reg.ID
	return true, nil
}

func (r *eventRegistrationRepository) GetByID(_ context.Context, id string) (*domain.EventRegistration, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	reg, ok := r.s.registrations[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cloneRegistration(reg), nil
}

func (r *eventRegistrationRepository) GetByEventAndProfile(_ context.Context, eventID, profileID string) (*domain.EventRegistration, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	id, ok := r.s.pairs[pairKey(eventID, profileID)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cloneRegistration(r.s.registrations[id]), nil
}

func (r *eventRegistrationRepository) ListByProfileID(_ context.Context, profileID string) ([]*domain.EventRegistration, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*domain.EventRegistration, 0)
	for _, reg := range r.s.registrations {
		if reg.ProfileID == profileID {
			out = append(out, cloneRegistration(reg))
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (r *eventRegistrationRepository) List(_ context.Context, filter domain.RegistrationFilter) ([]*domain.RegistrationView, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	matched := make([]*domain.EventRegistration, 0)
	for _, reg := range r.s.registrations {
		if filter.EventID != "" && reg.EventID != filter.EventID {
			continue
		}
		if filter.Status != "" && reg.Status != filter.Status {
			continue
		}
		matched = append(matched, reg)
	}
	sortNewestFirst(matched)
	return r.views(matched), nil
}

func (r *eventRegistrationRepository) ListRecent(_ context.Context, limit int) ([]*domain.RegistrationView, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	all := make([]*domain.EventRegistration, 0, len(r.s.registrations))
	for _, reg := range r.s.registrations {
		all = append(all, reg)
	}
	sortNewestFirst(all)
	if limit >= 0 && len(all) > limit {
		all = all[:limit]
	}
	return r.views(all), nil
}

// views joins registrations with profiles and events. Caller must hold the read lock.
func (r *eventRegistrationRepository) views(regs []*domain.EventRegistration) []*domain.RegistrationView {
	out := make([]*domain.RegistrationView, 0, len(regs))
	for _, reg := range regs {
		v := &domain.RegistrationView{Registration: cloneRegistration(reg)}
		if p, ok := r.s.profiles[reg.ProfileID]; ok {
			v.Profile = domain.RegistrationProfile{
				ID:          p.ID,
				FullName:    p.FullName,
				Email:       p.Email,
				Title:       p.Title,
				Company:     p.Company,
				RoleType:    p.RoleType,
				LinkedInURL: p.LinkedInURL,
				Bio:         p.Bio,
			}
			if p.IndustryID != nil {
				if ind, ok := r.s.industries[*p.IndustryID]; ok {
					name := ind.Name
					v.Profile.IndustryName = &name
				}
			}
		}
		if e, ok := r.s.events[reg.EventID]; ok {
			v.Event = domain.RegistrationEvent{ID: e.ID, Name: e.Name, Date: e.Date}
		}
		out = append(out, v)
	}
	return out
}

func (r *eventRegistrationRepository) UpdateStatus(_ context.Context, change domain.StatusChange) (*domain.EventRegistration, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	reg, ok := r.s.registrations[change.RegistrationID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if reg.Status != change.From {
		return nil, domain.ErrInvalidTransition
	}
	reg.Status = change.To
	if change.ReviewedAt != nil {
		t := *change.ReviewedAt
		reg.ReviewedAt = &t
	}
	if change.AdminNotes != nil {
		n := *change.AdminNotes
		reg.AdminNotes = &n
	}
	return cloneRegistration(reg), nil
}

func (r *eventRegistrationRepository) CountByStatus(_ context.Context) (map[domain.RegistrationStatus]int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	counts := make(map[domain.RegistrationStatus]int, len(domain.RegistrationStatuses))
	for _, s := range domain.RegistrationStatuses {
		counts[s] = 0
	}
	for _, reg := range r.s.registrations {
		counts[reg.Status]++
	}
	return counts, nil
}

func (r *eventRegistrationRepository) CountByEvent(_ context.Context) (map[string]int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	counts := make(map[string]int)
	for _, reg := range r.s.registrations {
		counts[reg.EventID]++
	}
	return counts, nil
}

func sortNewestFirst(regs []*domain.EventRegistration) {
	sort.Slice(regs, func(i, j int) bool {
		if !regs[i].RegisteredAt.Equal(regs[j].RegisteredAt) {
			return regs[i].RegisteredAt.After(regs[j].RegisteredAt)
		}
		return regs[i].ID < regs[j].ID
	})
}
