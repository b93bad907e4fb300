package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"efgportal/internal/countdown"
	"efgportal/internal/domain"
)

type attendeeService struct {
	profileRepo      domain.ProfileRepository
	eventRepo        domain.EventRepository
	registrationRepo domain.EventRegistrationRepository
	workflow         domain.RegistrationWorkflow
	contextTimeout   time.Duration
}

// NewAttendeeService creates the portal-facing AttendeeService.
func NewAttendeeService(
	profileRepo domain.ProfileRepository,
	eventRepo domain.EventRepository,
	registrationRepo domain.EventRegistrationRepository,
	workflow domain.RegistrationWorkflow,
	timeout time.Duration,
) domain.AttendeeService {
	return &attendeeService{
		profileRepo:      profileRepo,
		eventRepo:        eventRepo,
		registrationRepo: registrationRepo,
		workflow:         workflow,
		contextTimeout:   timeout,
	}
}

// completedProfile loads the caller's profile and enforces the onboarding gate.
func (s *attendeeService) completedProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	p, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	if !p.ProfileCompleted {
		return nil, domain.ErrProfileIncomplete
	}
	return p, nil
}

func (s *attendeeService) ListEventsWithStatus(ctx context.Context, userID string, now time.Time) ([]*domain.EventWithStatus, error) {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()

	profile, err := s.completedProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	events, err := s.eventRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list active events: %w", err)
	}
	regs, err := s.registrationRepo.ListByProfileID(ctx, profile.ID)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	statusByEvent := make(map[string]domain.RegistrationStatus, len(regs))
	for _, reg := range regs {
		statusByEvent[reg.EventID] = reg.Status
	}

	result := make([]*domain.EventWithStatus, 0, len(events))
	for _, e := range events {
		item := &domain.EventWithStatus{Event: e, Remaining: countdown.TimeUntil(e.Date, now)}
		if st, ok := statusByEvent[e.ID]; ok {
			item.Status = &st
		}
		result = append(result, item)
	}
	return result, nil
}

func (s *attendeeService) ExpressInterest(ctx context.Context, userID, eventID string) (*domain.EventRegistration, bool, error) {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()

	profile, err := s.completedProfile(ctx, userID)
	if err != nil {
		return nil, false, err
	}
	return s.workflow.SubmitInterest(ctx, profile, eventID)
}

func (s *attendeeService) ConfirmAttendance(ctx context.Context, userID, registrationID string) (*domain.EventRegistration, error) {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()

	profile, err := s.completedProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	caller := domain.Caller{UserID: userID, ProfileID: profile.ID, IsAdmin: profile.IsAdmin}
	return s.workflow.Confirm(ctx, caller, registrationID)
}

func (s *attendeeService) ListMyRegistrations(ctx context.Context, userID string) ([]*domain.EventRegistrationWithEvent, error) {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()

	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	regs, err := s.registrationRepo.ListByProfileID(ctx, profile.ID)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}

	eventsByID := make(map[string]*domain.Event)
	result := make([]*domain.EventRegistrationWithEvent, 0, len(regs))
	for _, reg := range regs {
		ev, ok := eventsByID[reg.EventID]
		if !ok {
			ev, err = s.eventRepo.GetByID(ctx, reg.EventID)
			if err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					continue
				}
				return nil, fmt.Errorf("get event for registration: %w", err)
			}
			eventsByID[reg.EventID] = ev
		}
		result = append(result, &domain.EventRegistrationWithEvent{
			Registration: reg,
			Event:        ev,
		})
	}
	return result, nil
}
