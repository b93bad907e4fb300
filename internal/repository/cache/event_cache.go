package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"efgportal/internal/domain"
)

const activeEventsKey = "efg:events:active"

type eventRepository struct {
	domain.EventRepository
	kv     KV
	ttl    time.Duration
	logger *slog.Logger
}

// NewEventRepository caches ListActive in kv for ttl. Create and SetFlags invalidate the entry.
// Cache failures are logged and fall through to next.
func NewEventRepository(next domain.EventRepository, kv KV, ttl time.Duration, logger *slog.Logger) domain.EventRepository {
	return &eventRepository{EventRepository: next, kv: kv, ttl: ttl, logger: logger}
}

func (r *eventRepository) ListActive(ctx context.Context) ([]*domain.Event, error) {
	b, ok, err := r.kv.Get(ctx, activeEventsKey)
	if err != nil {
		r.logger.WarnContext(ctx, "event cache read failed", "err", err)
	}
	if ok {
		var events []*domain.Event
		if err := json.Unmarshal(b, &events); err == nil {
			return events, nil
		}
		r.logger.WarnContext(ctx, "event cache entry undecodable", "key", activeEventsKey)
	}

	events, err := r.EventRepository.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	if b, err := json.Marshal(events); err == nil {
		if err := r.kv.Set(ctx, activeEventsKey, b, r.ttl); err != nil {
			r.logger.WarnContext(ctx, "event cache write failed", "err", err)
		}
	}
	return events, nil
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	if err := r.EventRepository.Create(ctx, e); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

func (r *eventRepository) SetFlags(ctx context.Context, id string, flags domain.EventFlags) (*domain.Event, error) {
	e, err := r.EventRepository.SetFlags(ctx, id, flags)
	if err != nil {
		return nil, err
	}
	r.invalidate(ctx)
	return e, nil
}

func (r *eventRepository) invalidate(ctx context.Context) {
	if err := r.kv.Del(ctx, activeEventsKey); err != nil {
		r.logger.WarnContext(ctx, "event cache invalidation failed", "err", err)
	}
}
