package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"efgportal/internal/domain"
)

const notifyTimeout = 10 * time.Second

type registrationWorkflow struct {
	eventRepo        domain.EventRepository
	registrationRepo domain.EventRegistrationRepository
	notifier         domain.RegistrationNotifier
	recorder         Recorder
	logger           *slog.Logger
	now              func() time.Time
}

// NewRegistrationWorkflow creates the RegistrationWorkflow. notifier and recorder may be nil.
func NewRegistrationWorkflow(
	eventRepo domain.EventRepository,
	registrationRepo domain.EventRegistrationRepository,
	notifier domain.RegistrationNotifier,
	recorder Recorder,
	logger *slog.Logger,
) domain.RegistrationWorkflow {
	if recorder == nil {
		recorder = noopRecorder{}
	}
	return &registrationWorkflow{
		eventRepo:        eventRepo,
		registrationRepo: registrationRepo,
		notifier:         notifier,
		recorder:         recorder,
		logger:           logger,
		now:              time.Now,
	}
}

// SubmitInterest creates the interested registration for (profile, event). A second submission for
// the same pair returns the existing registration with created=false.
func (w *registrationWorkflow) SubmitInterest(ctx context.Context, profile *domain.Profile, eventID string) (*domain.EventRegistration, bool, error) {
	if profile == nil || !profile.ProfileCompleted {
		return nil, false, domain.ErrProfileIncomplete
	}
	event, err := w.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, false, err
		}
		return nil, false, fmt.Errorf("get event: %w", err)
	}
	if !event.IsActive || !event.RegistrationOpen {
		return nil, false, domain.ErrRegistrationClosed
	}

	reg := domain.NewEventRegistration(event.ID, profile.ID, w.now().UTC())
	created, err := w.registrationRepo.Create(ctx, reg)
	if err != nil {
		return nil, false, fmt.Errorf("create event registration: %w", err)
	}
	if created {
		w.recorder.RegistrationCreated()
		w.logger.InfoContext(ctx, "registration created", "registration_id", reg.ID, "event_id", event.ID, "profile_id", profile.ID)
	}
	return reg, created, nil
}

func (w *registrationWorkflow) Approve(ctx context.Context, caller domain.Caller, registrationID string, notes *string) (*domain.EventRegistration, error) {
	return w.transition(ctx, caller, registrationID, domain.StatusApproved, notes)
}

func (w *registrationWorkflow) Reject(ctx context.Context, caller domain.Caller, registrationID string, notes *string) (*domain.EventRegistration, error) {
	return w.transition(ctx, caller, registrationID, domain.StatusRejected, notes)
}

// Confirm is the attendee's own acceptance of an approved registration.
func (w *registrationWorkflow) Confirm(ctx context.Context, caller domain.Caller, registrationID string) (*domain.EventRegistration, error) {
	return w.transition(ctx, caller, registrationID, domain.StatusConfirmed, nil)
}

// CheckIn marks a confirmed registration as attended.
func (w *registrationWorkflow) CheckIn(ctx context.Context, caller domain.Caller, registrationID string) (*domain.EventRegistration, error) {
	return w.transition(ctx, caller, registrationID, domain.StatusAttended, nil)
}

// transition checks the actor and source state, then applies a conditional update so that a
// concurrent transition on the same row makes this one fail instead of overwriting it.
func (w *registrationWorkflow) transition(ctx context.Context, caller domain.Caller, registrationID string, to domain.RegistrationStatus, notes *string) (*domain.EventRegistration, error) {
	t, ok := domain.TransitionTo(to)
	if !ok {
		return nil, fmt.Errorf("%w: no transition into %s", domain.ErrInvalidTransition, to)
	}
	if t.Actor == domain.ActorAdmin && !caller.IsAdmin {
		return nil, domain.ErrForbidden
	}

	reg, err := w.registrationRepo.GetByID(ctx, registrationID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get event registration: %w", err)
	}
	if t.Actor == domain.ActorAttendee && reg.ProfileID != caller.ProfileID {
		return nil, domain.ErrNotOwner
	}
	if reg.Status != t.From {
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, reg.Status, to)
	}

	change := domain.StatusChange{
		RegistrationID: reg.ID,
		From:           t.From,
		To:             to,
		AdminNotes:     notes,
	}
	if t.Review {
		now := w.now().UTC()
		change.ReviewedAt = &now
	}
	updated, err := w.registrationRepo.UpdateStatus(ctx, change)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrPreconditionFailed) {
			return nil, err
		}
		return nil, fmt.Errorf("update registration status: %w", err)
	}

	w.recorder.StatusChanged(t.From, to)
	w.logger.InfoContext(ctx, "registration status changed",
		"registration_id", updated.ID, "from", t.From, "to", to, "actor_profile_id", caller.ProfileID)
	w.notify(ctx, domain.RegistrationStatusChanged{
		RegistrationID: updated.ID,
		EventID:        updated.EventID,
		ProfileID:      updated.ProfileID,
		From:           t.From,
		To:             to,
		AdminNotes:     updated.AdminNotes,
		OccurredAt:     w.now().UTC(),
	})
	return updated, nil
}

// notify runs after the transition is committed; failures are logged only.
func (w *registrationWorkflow) notify(ctx context.Context, change domain.RegistrationStatusChanged) {
	if w.notifier == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
	defer cancel()
	if err := w.notifier.Notify(ctx, change); err != nil {
		w.logger.WarnContext(ctx, "registration notification failed",
			"registration_id", change.RegistrationID, "to", change.To, "err", err)
	}
}
