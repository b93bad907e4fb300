package domain

import (
	"context"
	"time"
)

// EventWithStatus is an active event as seen by one attendee: their registration status, if any,
// and the countdown to the start.
// swagger:model EventWithStatus
type EventWithStatus struct {
	Event     *Event              `json:"event"`
	Status    *RegistrationStatus `json:"status"`
	Remaining Remaining           `json:"remaining"`
}

// EventRegistrationWithEvent bundles a registration with its related event.
type EventRegistrationWithEvent struct {
	Registration *EventRegistration `json:"registration"`
	Event        *Event             `json:"event"`
}

// AttendeeService defines attendee-facing operations on the portal.
type AttendeeService interface {
	ListEventsWithStatus(ctx context.Context, userID string, now time.Time) ([]*EventWithStatus, error)
	// ExpressInterest registers the caller's interest in the event. Returns (reg, created, err): created
	// is false when the caller already had a registration for the event.
	ExpressInterest(ctx context.Context, userID, eventID string) (*EventRegistration, bool, error)
	ConfirmAttendance(ctx context.Context, userID, registrationID string) (*EventRegistration, error)
	ListMyRegistrations(ctx context.Context, userID string) ([]*EventRegistrationWithEvent, error)
}
