// Package memory provides in-process implementations of the domain repositories. All repositories
// built from one Store share its tables and its lock, so cross-table reads see a consistent view.
package memory

import (
	"sync"

	"efgportal/internal/domain"

	"github.com/google/uuid"
)

// Store holds every table behind a single RWMutex.
type Store struct {
	mu            sync.RWMutex
	users         map[string]*domain.User
	usersByEmail  map[string]string
	profiles      map[string]*domain.Profile
	industries    map[string]*domain.Industry
	interests     map[string]*domain.Interest
	events        map[string]*domain.Event
	registrations map[string]*domain.EventRegistration
	// pairs indexes registrations by event_id + "/" + profile_id.
	pairs map[string]string
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		users:         make(map[string]*domain.User),
		usersByEmail:  make(map[string]string),
		profiles:      make(map[string]*domain.Profile),
		industries:    make(map[string]*domain.Industry),
		interests:     make(map[string]*domain.Interest),
		events:        make(map[string]*domain.Event),
		registrations: make(map[string]*domain.EventRegistration),
		pairs:         make(map[string]string),
	}
}

// SeedIndustry adds reference data, assigning an ID when empty.
func (s *Store) SeedIndustry(i domain.Industry) *domain.Industry {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	s.industries[i.ID] = &i
	return &i
}

// SeedInterest adds reference data, assigning an ID when empty.
func (s *Store) SeedInterest(i domain.Interest) *domain.Interest {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	s.interests[i.ID] = &i
	return &i
}

// SeedDefaults loads the same industries and interests the postgres seed migration inserts.
func (s *Store) SeedDefaults() {
	for _, i := range []domain.Industry{
		{Name: "Banking & Financial Services", Slug: "banking-financial-services"},
		{Name: "Energy, Oil & Gas", Slug: "energy-oil-gas"},
		{Name: "Government & Public Sector", Slug: "government-public-sector"},
		{Name: "Healthcare", Slug: "healthcare"},
		{Name: "Manufacturing", Slug: "manufacturing"},
		{Name: "Telecommunications", Slug: "telecommunications"},
		{Name: "Technology", Slug: "technology"},
		{Name: "Transport & Logistics", Slug: "transport-logistics"},
		{Name: "Other", Slug: "other"},
	} {
		s.SeedIndustry(i)
	}
	for _, name := range []string{
		"Cloud Security",
		"Identity & Access Management",
		"OT / ICS Security",
		"Threat Intelligence",
		"Data Governance",
		"Artificial Intelligence",
		"Operational Excellence",
		"Digital Transformation",
	} {
		s.SeedInterest(domain.Interest{Name: name})
	}
}

func pairKey(eventID, profileID string) string {
	return eventID + "/" + profileID
}

func cloneProfile(p *domain.Profile) *domain.Profile {
	c := *p
	if p.IndustryID != nil {
		id := *p.IndustryID
		c.IndustryID = &id
	}
	c.Interests = append([]string{}, p.Interests...)
	c.LookingFor = append([]string{}, p.LookingFor...)
	return &c
}

func cloneEvent(e *domain.Event) *domain.Event {
	c := *e
	return &c
}

func cloneRegistration(r *domain.EventRegistration) *domain.EventRegistration {
	c := *r
	if r.ReviewedAt != nil {
		t := *r.ReviewedAt
		c.ReviewedAt = &t
	}
	if r.AdminNotes != nil {
		n := *r.AdminNotes
		c.AdminNotes = &n
	}
	return &c
}
