package domain

import (
	"context"
	"time"
)

// Role types a profile may declare.
const (
	RoleTypeAttendee   = "attendee"
	RoleTypeSponsorRep = "sponsor_rep"
	RoleTypeSpeaker    = "speaker"
)

// MaxBioLength is the longest bio accepted on a profile.
const MaxBioLength = 500

// CompanySizes lists the accepted company_size values.
var CompanySizes = []string{"1-10", "11-50", "51-200", "201-500", "501-1000", "1000+"}

// RoleTypes lists the accepted role_type values.
var RoleTypes = []string{RoleTypeAttendee, RoleTypeSponsorRep, RoleTypeSpeaker}

// LookingForOptions lists the accepted looking_for tags.
var LookingForOptions = []string{
	"Technology Partners",
	"Solution Vendors",
	"Investment Opportunities",
	"Talent / Hiring",
	"Clients / Sales",
	"Knowledge Sharing",
	"Government Connections",
}

// Profile is the attendee/sponsor/speaker record tied one-to-one to an authenticated user.
// swagger:model Profile
type Profile struct {
	ID               string    `json:"id"`
	UserID           string    `json:"user_id"`
	FullName         string    `json:"full_name"`
	Email            string    `json:"email"`
	Title            string    `json:"title"`
	Company          string    `json:"company"`
	IndustryID       *string   `json:"industry_id"`
	CompanySize      string    `json:"company_size"`
	RoleType         string    `json:"role_type"`
	Phone            string    `json:"phone"`
	LinkedInURL      string    `json:"linkedin_url"`
	Bio              string    `json:"bio"`
	Interests        []string  `json:"interests"`
	LookingFor       []string  `json:"looking_for"`
	OpenToSponsors   bool      `json:"open_to_sponsors"`
	IsAdmin          bool      `json:"is_admin"`
	ProfileCompleted bool      `json:"profile_completed"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// NewProfile returns a fresh, incomplete Profile for a newly signed-up user.
func NewProfile(userID, fullName, email string, createdAt time.Time) *Profile {
	return &Profile{
		UserID:         userID,
		FullName:       fullName,
		Email:          email,
		RoleType:       RoleTypeAttendee,
		Interests:      []string{},
		LookingFor:     []string{},
		OpenToSponsors: true,
		CreatedAt:      createdAt,
		UpdatedAt:      createdAt,
	}
}

// ProfilePatch holds the fields a user may change on their own profile. Nil fields are left unchanged.
type ProfilePatch struct {
	FullName         *string   `json:"full_name"`
	Title            *string   `json:"title"`
	Company          *string   `json:"company"`
	IndustryID       *string   `json:"industry_id"`
	CompanySize      *string   `json:"company_size"`
	RoleType         *string   `json:"role_type"`
	Phone            *string   `json:"phone"`
	LinkedInURL      *string   `json:"linkedin_url"`
	Bio              *string   `json:"bio"`
	Interests        *[]string `json:"interests"`
	LookingFor       *[]string `json:"looking_for"`
	OpenToSponsors   *bool     `json:"open_to_sponsors"`
	ProfileCompleted *bool     `json:"profile_completed"`
}

// Apply copies the non-nil patch fields onto p. An empty industry_id clears the reference.
func (patch ProfilePatch) Apply(p *Profile) {
	if patch.FullName != nil {
		p.FullName = *patch.FullName
	}
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Company != nil {
		p.Company = *patch.Company
	}
	if patch.IndustryID != nil {
		if *patch.IndustryID == "" {
			p.IndustryID = nil
		} else {
			id := *patch.IndustryID
			p.IndustryID = &id
		}
	}
	if patch.CompanySize != nil {
		p.CompanySize = *patch.CompanySize
	}
	if patch.RoleType != nil {
		p.RoleType = *patch.RoleType
	}
	if patch.Phone != nil {
		p.Phone = *patch.Phone
	}
	if patch.LinkedInURL != nil {
		p.LinkedInURL = *patch.LinkedInURL
	}
	if patch.Bio != nil {
		p.Bio = *patch.Bio
	}
	if patch.Interests != nil {
		p.Interests = append([]string{}, (*patch.Interests)...)
	}
	if patch.LookingFor != nil {
		p.LookingFor = append([]string{}, (*patch.LookingFor)...)
	}
	if patch.OpenToSponsors != nil {
		p.OpenToSponsors = *patch.OpenToSponsors
	}
	if patch.ProfileCompleted != nil {
		p.ProfileCompleted = *patch.ProfileCompleted
	}
}

// Industry is seeded reference data.
// swagger:model Industry
type Industry struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Interest is seeded reference data.
// swagger:model Interest
type Interest struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ProfileRepository defines storage operations for profiles.
type ProfileRepository interface {
	GetByID(ctx context.Context, id string) (*Profile, error)
	GetByUserID(ctx context.Context, userID string) (*Profile, error)
	Update(ctx context.Context, p *Profile) error
	SetAdmin(ctx context.Context, id string, isAdmin bool) error
	List(ctx context.Context, params PaginationParams) ([]*Profile, int, error)
	Count(ctx context.Context) (int, error)
}

// LookupRepository reads the industries and interests reference tables.
type LookupRepository interface {
	ListIndustries(ctx context.Context) ([]*Industry, error)
	ListInterests(ctx context.Context) ([]*Interest, error)
	GetIndustry(ctx context.Context, id string) (*Industry, error)
	// MissingInterests returns the ids in ids that do not exist.
	MissingInterests(ctx context.Context, ids []string) ([]string, error)
}

// ProfileService covers reading and editing the caller's own profile.
type ProfileService interface {
	GetMyProfile(ctx context.Context, userID string) (*Profile, error)
	UpdateMyProfile(ctx context.Context, userID string, patch ProfilePatch) (*Profile, error)
	ListIndustries(ctx context.Context) ([]*Industry, error)
	ListInterests(ctx context.Context) ([]*Interest, error)
}
