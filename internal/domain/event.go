package domain

import (
	"context"
	"regexp"
	"strings"
	"time"
)

// Event is a single scheduled conference instance, optionally part of a marketing series.
// swagger:model Event
type Event struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Slug             string    `json:"slug"`
	Series           *string   `json:"series"`
	Date             time.Time `json:"date"`
	Location         string    `json:"location"`
	Venue            *string   `json:"venue"`
	Description      *string   `json:"description"`
	BannerURL        *string   `json:"banner_url"`
	IsActive         bool      `json:"is_active"`
	RegistrationOpen bool      `json:"registration_open"`
	CreatedAt        time.Time `json:"created_at"`
}

// NewEvent returns an active Event open for registration. ID is typically set by the repository on create.
// When slug is empty it is derived from name.
func NewEvent(name, slug string, date time.Time, location string, createdAt time.Time) *Event {
	if slug == "" {
		slug = Slugify(name)
	}
	return &Event{
		Name:             name,
		Slug:             slug,
		Date:             date,
		Location:         location,
		IsActive:         true,
		RegistrationOpen: true,
		CreatedAt:        createdAt,
	}
}

var slugUnsafe = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases s and collapses every run of non-alphanumerics into a single hyphen.
func Slugify(s string) string {
	return strings.Trim(slugUnsafe.ReplaceAllString(strings.ToLower(s), "-"), "-")
}

// EventFlags is a partial update of an event's visibility and registration switches.
type EventFlags struct {
	IsActive         *bool `json:"is_active"`
	RegistrationOpen *bool `json:"registration_open"`
}

// EventWithCount pairs an event with the number of registrations referencing it.
type EventWithCount struct {
	Event             *Event `json:"event"`
	RegistrationCount int    `json:"registration_count"`
}

// EventRepository defines the interface for event storage
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	GetBySlug(ctx context.Context, slug string) (*Event, error)
	// ListActive returns events with is_active = true ordered by date ascending.
	ListActive(ctx context.Context) ([]*Event, error)
	// ListAll returns every event ordered by date descending.
	ListAll(ctx context.Context) ([]*Event, error)
	SetFlags(ctx context.Context, id string, flags EventFlags) (*Event, error)
}

// CatalogService is the read side of the event catalog.
type CatalogService interface {
	ListActiveEvents(ctx context.Context) ([]*Event, error)
	GetEvent(ctx context.Context, id string) (*Event, error)
	GetEventBySlug(ctx context.Context, slug string) (*Event, error)
	GetCountdown(ctx context.Context, slug string, now time.Time) (*EventCountdown, error)
	NextEvent(ctx context.Context, now time.Time) (*EventCountdown, error)
}

// EventCountdown pairs an event with the time remaining until it starts.
type EventCountdown struct {
	Event     *Event    `json:"event"`
	Remaining Remaining `json:"remaining"`
}

// Remaining is a non-negative days/hours/minutes/seconds breakdown of a duration.
type Remaining struct {
	Days    int `json:"days"`
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
	Seconds int `json:"seconds"`
}
