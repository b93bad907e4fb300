package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"efgportal/internal/domain"

	"github.com/go-playground/validator/v10"
)

// profileRules holds the field constraints checked on every profile save.
type profileRules struct {
	FullName    string   `json:"full_name" validate:"required,max=200"`
	Title       string   `json:"title" validate:"max=200"`
	Company     string   `json:"company" validate:"max=200"`
	IndustryID  string   `json:"industry_id" validate:"omitempty,uuid"`
	CompanySize string   `json:"company_size" validate:"omitempty,company_size"`
	RoleType    string   `json:"role_type" validate:"required,role_type"`
	Phone       string   `json:"phone" validate:"max=40"`
	LinkedInURL string   `json:"linkedin_url" validate:"omitempty,http_url,max=300"`
	Bio         string   `json:"bio" validate:"max=500"`
	LookingFor  []string `json:"looking_for" validate:"dive,looking_for"`
}

type profileService struct {
	profileRepo    domain.ProfileRepository
	lookupRepo     domain.LookupRepository
	validate       *validator.Validate
	contextTimeout time.Duration
}

// NewProfileService creates a ProfileService.
func NewProfileService(profileRepo domain.ProfileRepository, lookupRepo domain.LookupRepository, timeout time.Duration) domain.ProfileService {
	return &profileService{
		profileRepo:    profileRepo,
		lookupRepo:     lookupRepo,
		validate:       newValidator(),
		contextTimeout: timeout,
	}
}

func (s *profileService) GetMyProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()

	p, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return p, nil
}

// UpdateMyProfile applies patch and enforces the completion rule: a profile may only be marked
// completed when title, company, industry_id and role_type are set, and once completed it stays so.
func (s *profileService) UpdateMyProfile(ctx context.Context, userID string, patch domain.ProfilePatch) (*domain.Profile, error) {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()

	current, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}

	next := *current
	trimPatch(&patch)
	patch.Apply(&next)

	verr := &domain.ValidationError{}
	if current.ProfileCompleted && !next.ProfileCompleted {
		verr.Add("profile_completed", "cannot be unset once completed")
	}
	if err := toValidationError(s.validate.StructCtx(ctx, rulesFor(&next))); err != nil {
		var fieldErrs *domain.ValidationError
		if !errors.As(err, &fieldErrs) {
			return nil, fmt.Errorf("validate profile: %w", err)
		}
		for f, m := range fieldErrs.Fields {
			verr.Add(f, m)
		}
	}
	if next.ProfileCompleted {
		if next.Title == "" {
			verr.Add("title", "is required to complete the profile")
		}
		if next.Company == "" {
			verr.Add("company", "is required to complete the profile")
		}
		if next.IndustryID == nil {
			verr.Add("industry_id", "is required to complete the profile")
		}
		if next.RoleType == "" {
			verr.Add("role_type", "is required to complete the profile")
		}
	}
	if !verr.Empty() {
		return nil, verr
	}

	if next.IndustryID != nil && (current.IndustryID == nil || *current.IndustryID != *next.IndustryID) {
		if _, err := s.lookupRepo.GetIndustry(ctx, *next.IndustryID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, domain.NewValidationError("industry_id", "unknown industry")
			}
			return nil, fmt.Errorf("get industry: %w", err)
		}
	}
	if patch.Interests != nil {
		next.Interests = dedupe(next.Interests)
		missing, err := s.lookupRepo.MissingInterests(ctx, next.Interests)
		if err != nil {
			return nil, fmt.Errorf("check interests: %w", err)
		}
		if len(missing) > 0 {
			return nil, domain.NewValidationError("interests", "unknown interest "+strings.Join(missing, ", "))
		}
	}
	if patch.LookingFor != nil {
		next.LookingFor = dedupe(next.LookingFor)
	}

	next.UpdatedAt = time.Now()
	if err := s.profileRepo.Update(ctx, &next); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return &next, nil
}

func (s *profileService) ListIndustries(ctx context.Context) ([]*domain.Industry, error) {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()
	industries, err := s.lookupRepo.ListIndustries(ctx)
	if err != nil {
		return nil, fmt.Errorf("list industries: %w", err)
	}
	return industries, nil
}

func (s *profileService) ListInterests(ctx context.Context) ([]*domain.Interest, error) {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()
	interests, err := s.lookupRepo.ListInterests(ctx)
	if err != nil {
		return nil, fmt.Errorf("list interests: %w", err)
	}
	return interests, nil
}

func rulesFor(p *domain.Profile) profileRules {
	r := profileRules{
		FullName:    p.FullName,
		Title:       p.Title,
		Company:     p.Company,
		CompanySize: p.CompanySize,
		RoleType:    p.RoleType,
		Phone:       p.Phone,
		LinkedInURL: p.LinkedInURL,
		Bio:         p.Bio,
		LookingFor:  p.LookingFor,
	}
	if p.IndustryID != nil {
		r.IndustryID = *p.IndustryID
	}
	return r
}

func trimPatch(p *domain.ProfilePatch) {
	for _, f := range []*string{p.FullName, p.Title, p.Company, p.IndustryID, p.CompanySize, p.RoleType, p.Phone, p.LinkedInURL, p.Bio} {
		if f != nil {
			*f = strings.TrimSpace(*f)
		}
	}
}

func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, v := range in {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
