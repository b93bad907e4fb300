package domain

import (
	"context"
	"strings"
	"time"
)

// RegistrationStatus is the state of a registration in the review workflow.
type RegistrationStatus string

const (
	StatusInterested RegistrationStatus = "interested"
	StatusApproved   RegistrationStatus = "approved"
	StatusRejected   RegistrationStatus = "rejected"
	StatusConfirmed  RegistrationStatus = "confirmed"
	StatusAttended   RegistrationStatus = "attended"
)

// RegistrationStatuses lists every status in workflow order.
var RegistrationStatuses = []RegistrationStatus{
	StatusInterested, StatusApproved, StatusRejected, StatusConfirmed, StatusAttended,
}

// Valid reports whether s is a known status.
func (s RegistrationStatus) Valid() bool {
	for _, known := range RegistrationStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Actor identifies who may trigger a transition.
type Actor string

const (
	ActorAdmin    Actor = "admin"
	ActorAttendee Actor = "attendee"
)

// Transition is one edge of the registration state machine.
type Transition struct {
	From  RegistrationStatus
	To    RegistrationStatus
	Actor Actor
	// Review transitions stamp reviewed_at.
	Review bool
}

// Transitions is the full edge list. Creation (-> interested) is not an edge; it only happens on insert.
var Transitions = []Transition{
	{From: StatusInterested, To: StatusApproved, Actor: ActorAdmin, Review: true},
	{From: StatusInterested, To: StatusRejected, Actor: ActorAdmin, Review: true},
	{From: StatusApproved, To: StatusConfirmed, Actor: ActorAttendee},
	{From: StatusConfirmed, To: StatusAttended, Actor: ActorAdmin, Review: true},
}

// TransitionTo returns the edge that ends in to. Every target status has exactly one source.
func TransitionTo(to RegistrationStatus) (Transition, bool) {
	for _, t := range Transitions {
		if t.To == to {
			return t, true
		}
	}
	return Transition{}, false
}

// EventRegistration is the ledger row linking one profile's status to one event.
// swagger:model EventRegistration
type EventRegistration struct {
	ID           string             `json:"id"`
	EventID      string             `json:"event_id"`
	ProfileID    string             `json:"profile_id"`
	Status       RegistrationStatus `json:"status"`
	RegisteredAt time.Time          `json:"registered_at"`
	ReviewedAt   *time.Time         `json:"reviewed_at"`
	AdminNotes   *string            `json:"admin_notes"`
}

// NewEventRegistration creates a registration in the initial interested state.
// ID is typically set by the repository on create.
func NewEventRegistration(eventID, profileID string, registeredAt time.Time) *EventRegistration {
	return &EventRegistration{
		EventID:      eventID,
		ProfileID:    profileID,
		Status:       StatusInterested,
		RegisteredAt: registeredAt,
	}
}

// StatusChange is a conditional status update: it applies only while the row is still in From.
type StatusChange struct {
	RegistrationID string
	From           RegistrationStatus
	To             RegistrationStatus
	// ReviewedAt, when set, overwrites reviewed_at. Nil keeps the stored value.
	ReviewedAt *time.Time
	AdminNotes *string
}

// FilterAll is the sentinel meaning "no filter" for event and status filters.
const FilterAll = "all"

// RegistrationFilter narrows admin registration listings. Empty fields mean no predicate.
type RegistrationFilter struct {
	EventID string
	Status  RegistrationStatus
}

// NewRegistrationFilter maps raw query values to a filter; "" and "all" omit the predicate.
func NewRegistrationFilter(eventID, status string) (RegistrationFilter, error) {
	var f RegistrationFilter
	eventID = strings.TrimSpace(eventID)
	if eventID != "" && eventID != FilterAll {
		f.EventID = eventID
	}
	status = strings.ToLower(strings.TrimSpace(status))
	if status != "" && status != FilterAll {
		s := RegistrationStatus(status)
		if !s.Valid() {
			return RegistrationFilter{}, NewValidationError("status", "unknown status "+status)
		}
		f.Status = s
	}
	return f, nil
}

// RegistrationProfile is the profile slice shown next to a registration in admin views.
type RegistrationProfile struct {
	ID           string  `json:"id"`
	FullName     string  `json:"full_name"`
	Email        string  `json:"email"`
	Title        string  `json:"title"`
	Company      string  `json:"company"`
	RoleType     string  `json:"role_type"`
	IndustryName *string `json:"industry_name"`
	LinkedInURL  string  `json:"linkedin_url"`
	Bio          string  `json:"bio"`
}

// RegistrationEvent is the event slice shown next to a registration in admin views.
type RegistrationEvent struct {
	ID   string    `json:"id"`
	Name string    `json:"name"`
	Date time.Time `json:"date"`
}

// RegistrationView joins a registration with its profile and event.
// swagger:model RegistrationView
type RegistrationView struct {
	Registration *EventRegistration  `json:"registration"`
	Profile      RegistrationProfile `json:"profile"`
	Event        RegistrationEvent   `json:"event"`
}

// EventRegistrationRepository defines storage operations for event registrations.
type EventRegistrationRepository interface {
	// Create inserts reg unless a row for (event_id, profile_id) exists. When one exists, reg is
	// overwritten with the stored row and created is false.
	Create(ctx context.Context, reg *EventRegistration) (created bool, err error)
	GetByID(ctx context.Context, id string) (*EventRegistration, error)
	GetByEventAndProfile(ctx context.Context, eventID, profileID string) (*EventRegistration, error)
	ListByProfileID(ctx context.Context, profileID string) ([]*EventRegistration, error)
	// List returns joined rows ordered by registered_at descending.
	List(ctx context.Context, filter RegistrationFilter) ([]*RegistrationView, error)
	ListRecent(ctx context.Context, limit int) ([]*RegistrationView, error)
	// UpdateStatus applies change atomically. It returns ErrNotFound when the row does not exist and
	// ErrInvalidTransition when the row is no longer in change.From.
	UpdateStatus(ctx context.Context, change StatusChange) (*EventRegistration, error)
	CountByStatus(ctx context.Context) (map[RegistrationStatus]int, error)
	CountByEvent(ctx context.Context) (map[string]int, error)
}

// Caller is the verified identity behind a request, re-derived from storage for every privileged action.
type Caller struct {
	UserID    string
	ProfileID string
	IsAdmin   bool
}

// RegistrationWorkflow governs creation and status transitions of registrations.
type RegistrationWorkflow interface {
	SubmitInterest(ctx context.Context, profile *Profile, eventID string) (*EventRegistration, bool, error)
	Approve(ctx context.Context, caller Caller, registrationID string, notes *string) (*EventRegistration, error)
	Reject(ctx context.Context, caller Caller, registrationID string, notes *string) (*EventRegistration, error)
	Confirm(ctx context.Context, caller Caller, registrationID string) (*EventRegistration, error)
	CheckIn(ctx context.Context, caller Caller, registrationID string) (*EventRegistration, error)
}
