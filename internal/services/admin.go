package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"efgportal/internal/domain"

	"golang.org/x/sync/errgroup"
)

var errSelfDemotion = fmt.Errorf("%w: admins cannot revoke their own admin flag", domain.ErrPreconditionFailed)

type adminService struct {
	profileRepo      domain.ProfileRepository
	eventRepo        domain.EventRepository
	registrationRepo domain.EventRegistrationRepository
	workflow         domain.RegistrationWorkflow
	contextTimeout   time.Duration
}

// NewAdminService creates the AdminService.
func NewAdminService(
	profileRepo domain.ProfileRepository,
	eventRepo domain.EventRepository,
	registrationRepo domain.EventRegistrationRepository,
	workflow domain.RegistrationWorkflow,
	timeout time.Duration,
) domain.AdminService {
	return &adminService{
		profileRepo:      profileRepo,
		eventRepo:        eventRepo,
		registrationRepo: registrationRepo,
		workflow:         workflow,
		contextTimeout:   timeout,
	}
}

// authorize re-reads the caller's profile so that a revoked admin flag takes effect on the next action.
func (s *adminService) authorize(ctx context.Context, userID string) (domain.Caller, error) {
	p, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Caller{}, domain.ErrForbidden
		}
		return domain.Caller{}, fmt.Errorf("get caller profile: %w", err)
	}
	if !p.IsAdmin {
		return domain.Caller{}, domain.ErrForbidden
	}
	return domain.Caller{UserID: userID, ProfileID: p.ID, IsAdmin: true}, nil
}

func (s *adminService) Dashboard(ctx context.Context, userID string) (*domain.DashboardStats, error) {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()
	if _, err := s.authorize(ctx, userID); err != nil {
		return nil, err
	}

	stats := &domain.DashboardStats{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.profileRepo.Count(gctx)
		if err != nil {
			return fmt.Errorf("count profiles: %w", err)
		}
		stats.TotalProfiles = n
		return nil
	})
	g.Go(func() error {
		events, err := s.eventRepo.ListActive(gctx)
		if err != nil {
			return fmt.Errorf("list active events: %w", err)
		}
		stats.ActiveEvents = len(events)
		return nil
	})
	g.Go(func() error {
		counts, err := s.registrationRepo.CountByStatus(gctx)
		if err != nil {
			return fmt.Errorf("count registrations: %w", err)
		}
		stats.StatusCounts = counts
		return nil
	})
	g.Go(func() error {
		recent, err := s.registrationRepo.ListRecent(gctx, domain.RecentRegistrationsLimit)
		if err != nil {
			return fmt.Errorf("list recent registrations: %w", err)
		}
		stats.RecentRegistrations = recent
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	for _, n := range stats.StatusCounts {
		stats.TotalRegistrations += n
	}
	return stats, nil
}

func (s *adminService) ListRegistrations(ctx context.Context, userID string, filter domain.RegistrationFilter) ([]*domain.RegistrationView, error) {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()
	if _, err := s.authorize(ctx, userID); err != nil {
		return nil, err
	}
	views, err := s.registrationRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	return views, nil
}

func (s *adminService) Approve(ctx context.Context, userID, registrationID string, notes *string) (*domain.EventRegistration, error) {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()
	caller, err := s.authorize(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.workflow.Approve(ctx, caller, registrationID, nonEmpty(notes))
}

func (s *adminService) Reject(ctx context.Context, userID, registrationID string, notes *string) (*domain.EventRegistration, error) {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()
	caller, err := s.authorize(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.workflow.Reject(ctx, caller, registrationID, nonEmpty(notes))
}

func (s *adminService) CheckIn(ctx context.Context, userID, registrationID string) (*domain.EventRegistration, error) {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()
	caller, err := s.authorize(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.workflow.CheckIn(ctx, caller, registrationID)
}

func (s *adminService) ListEvents(ctx context.Context, userID string) ([]*domain.EventWithCount, error) {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()
	if _, err := s.authorize(ctx, userID); err != nil {
		return nil, err
	}
	events, err := s.eventRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	counts, err := s.registrationRepo.CountByEvent(ctx)
	if err != nil {
		return nil, fmt.Errorf("count registrations by event: %w", err)
	}
	result := make([]*domain.EventWithCount, 0, len(events))
	for _, e := range events {
		result = append(result, &domain.EventWithCount{Event: e, RegistrationCount: counts[e.ID]})
	}
	return result, nil
}

func (s *adminService) CreateEvent(ctx context.Context, userID string, in domain.NewEventInput) (*domain.Event, error) {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()
	if _, err := s.authorize(ctx, userID); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(in.Name)
	location := strings.TrimSpace(in.Location)
	slug := domain.Slugify(in.Slug)
	if slug == "" {
		slug = domain.Slugify(name)
	}
	verr := &domain.ValidationError{}
	if name == "" {
		verr.Add("name", "is required")
	}
	if location == "" {
		verr.Add("location", "is required")
	}
	if in.Date.IsZero() {
		verr.Add("date", "is required")
	}
	if name != "" && slug == "" {
		verr.Add("slug", "could not be derived from name")
	}
	if !verr.Empty() {
		return nil, verr
	}

	event := domain.NewEvent(name, slug, in.Date.UTC(), location, time.Now().UTC())
	event.Series = nonEmpty(in.Series)
	event.Venue = nonEmpty(in.Venue)
	event.Description = nonEmpty(in.Description)
	event.BannerURL = nonEmpty(in.BannerURL)
	if err := s.eventRepo.Create(ctx, event); err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return nil, err
		}
		return nil, fmt.Errorf("create event: %w", err)
	}
	return event, nil
}

func (s *adminService) SetEventFlags(ctx context.Context, userID, eventID string, flags domain.EventFlags) (*domain.Event, error) {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()
	if _, err := s.authorize(ctx, userID); err != nil {
		return nil, err
	}
	e, err := s.eventRepo.SetFlags(ctx, eventID, flags)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("set event flags: %w", err)
	}
	return e, nil
}

func (s *adminService) ListProfiles(ctx context.Context, userID string, params domain.PaginationParams) ([]*domain.Profile, int, error) {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()
	if _, err := s.authorize(ctx, userID); err != nil {
		return nil, 0, err
	}
	profiles, total, err := s.profileRepo.List(ctx, domain.NewPaginationParams(params.Page, params.PageSize))
	if err != nil {
		return nil, 0, fmt.Errorf("list profiles: %w", err)
	}
	return profiles, total, nil
}

func (s *adminService) SetAdmin(ctx context.Context, userID, profileID string, isAdmin bool) (*domain.Profile, error) {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()
	caller, err := s.authorize(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profileID == caller.ProfileID && !isAdmin {
		return nil, errSelfDemotion
	}
	if err := s.profileRepo.SetAdmin(ctx, profileID, isAdmin); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("set admin: %w", err)
	}
	p, err := s.profileRepo.GetByID(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return p, nil
}

func nonEmpty(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
