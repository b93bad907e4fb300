package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"efgportal/internal/countdown"
	"efgportal/internal/domain"
)

type catalogService struct {
	eventRepo      domain.EventRepository
	contextTimeout time.Duration
}

// NewCatalogService creates the read-only CatalogService.
func NewCatalogService(eventRepo domain.EventRepository, timeout time.Duration) domain.CatalogService {
	return &catalogService{eventRepo: eventRepo, contextTimeout: timeout}
}

func (s *catalogService) ListActiveEvents(ctx context.Context) ([]*domain.Event, error) {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()
	events, err := s.eventRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list active events: %w", err)
	}
	return events, nil
}

func (s *catalogService) GetEvent(ctx context.Context, id string) (*domain.Event, error) {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()
	e, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return e, nil
}

// GetEventBySlug hides inactive events from the public catalog.
func (s *catalogService) GetEventBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()
	e, err := s.eventRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get event by slug: %w", err)
	}
	if !e.IsActive {
		return nil, domain.ErrNotFound
	}
	return e, nil
}

func (s *catalogService) GetCountdown(ctx context.Context, slug string, now time.Time) (*domain.EventCountdown, error) {
	e, err := s.GetEventBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return &domain.EventCountdown{Event: e, Remaining: countdown.TimeUntil(e.Date, now)}, nil
}

// NextEvent returns the earliest active event that has not started yet.
func (s *catalogService) NextEvent(ctx context.Context, now time.Time) (*domain.EventCountdown, error) {
	events, err := s.ListActiveEvents(ctx)
	if err != nil {
		return nil, err
	}
	for _, e := range events {
		if !countdown.Elapsed(e.Date, now) {
			return &domain.EventCountdown{Event: e, Remaining: countdown.TimeUntil(e.Date, now)}, nil
		}
	}
	return nil, domain.ErrNotFound
}
