package domain

import (
	"context"
	"time"
)

// RecentRegistrationsLimit is the number of registrations shown on the admin dashboard.
const RecentRegistrationsLimit = 5

// DashboardStats summarises the ledger for the admin dashboard.
// swagger:model DashboardStats
type DashboardStats struct {
	TotalProfiles       int                        `json:"total_profiles"`
	ActiveEvents        int                        `json:"active_events"`
	StatusCounts        map[RegistrationStatus]int `json:"status_counts"`
	TotalRegistrations  int                        `json:"total_registrations"`
	RecentRegistrations []*RegistrationView        `json:"recent_registrations"`
}

// NewEventInput holds the admin-supplied fields for a new event.
type NewEventInput struct {
	Name        string
	Slug        string
	Series      *string
	Date        time.Time
	Location    string
	Venue       *string
	Description *string
	BannerURL   *string
}

// AdminService covers the admin review console. Every method re-verifies that userID belongs to an
// admin profile before doing anything.
type AdminService interface {
	Dashboard(ctx context.Context, userID string) (*DashboardStats, error)
	ListRegistrations(ctx context.Context, userID string, filter RegistrationFilter) ([]*RegistrationView, error)
	Approve(ctx context.Context, userID, registrationID string, notes *string) (*EventRegistration, error)
	Reject(ctx context.Context, userID, registrationID string, notes *string) (*EventRegistration, error)
	CheckIn(ctx context.Context, userID, registrationID string) (*EventRegistration, error)
	ListEvents(ctx context.Context, userID string) ([]*EventWithCount, error)
	CreateEvent(ctx context.Context, userID string, in NewEventInput) (*Event, error)
	SetEventFlags(ctx context.Context, userID, eventID string, flags EventFlags) (*Event, error)
	ListProfiles(ctx context.Context, userID string, params PaginationParams) ([]*Profile, int, error)
	SetAdmin(ctx context.Context, userID, profileID string, isAdmin bool) (*Profile, error)
}
