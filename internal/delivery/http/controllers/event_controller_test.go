package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"efgportal/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCatalogService struct {
	events   []*domain.Event
	bySlug   map[string]*domain.Event
	err      error
	lastNow  time.Time
	lastSlug string
}

func (f *fakeCatalogService) ListActiveEvents(context.Context) ([]*domain.Event, error) {
	return f.events, f.err
}

func (f *fakeCatalogService) GetEvent(_ context.Context, id string) (*domain.Event, error) {
	for _, e := range f.events {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeCatalogService) GetEventBySlug(_ context.Context, slug string) (*domain.Event, error) {
	f.lastSlug = slug
	if e, ok := f.bySlug[slug]; ok {
		return e, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeCatalogService) GetCountdown(ctx context.Context, slug string, now time.Time) (*domain.EventCountdown, error) {
	f.lastNow = now
	e, err := f.GetEventBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return &domain.EventCountdown{Event: e, Remaining: domain.Remaining{Days: 1, Hours: 1, Minutes: 1, Seconds: 1}}, nil
}

func (f *fakeCatalogService) NextEvent(_ context.Context, now time.Time) (*domain.EventCountdown, error) {
	f.lastNow = now
	if len(f.events) == 0 {
		return nil, domain.ErrNotFound
	}
	return &domain.EventCountdown{Event: f.events[0]}, nil
}

func TestEventController(t *testing.T) {
	cyber := &domain.Event{ID: testEventID, Name: "Cyber First", Slug: "cyber-first"}
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	svc := &fakeCatalogService{events: []*domain.Event{cyber}, bySlug: map[string]*domain.Event{"cyber-first": cyber}}
	ctrl := NewEventController(testLogger, svc)
	ctrl.Now = func() time.Time { return now }

	w := serve("GET /events", ctrl.ListEvents, http.MethodGet, "/events", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	var events []domain.Event
	require.Nil(t, decodeEnvelope(t, w, &events))
	assert.Len(t, events, 1)

	w = serve("GET /events/{slug}", ctrl.GetEvent, http.MethodGet, "/events/cyber-first", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	w = serve("GET /events/{slug}", ctrl.GetEvent, http.MethodGet, "/events/unknown", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = serve("GET /events/{slug}/countdown", ctrl.GetCountdown, http.MethodGet, "/events/cyber-first/countdown", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"days":1,"hours":1,"minutes":1,"seconds":1}`, extractRemaining(t, w.Body.Bytes()))
	assert.Equal(t, now, svc.lastNow)

	w = serve("GET /events/next", ctrl.NextEvent, http.MethodGet, "/events/next", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	svc.events = nil
	w = serve("GET /events/next", ctrl.NextEvent, http.MethodGet, "/events/next", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = serve("GET /events", ctrl.ListEvents, http.MethodGet, "/events", "", "")
	assert.JSONEq(t, `{"data":[],"error":null}`, w.Body.String())
}

func extractRemaining(t *testing.T, body []byte) string {
	t.Helper()
	var env struct {
		Data struct {
			Remaining json.RawMessage `json:"remaining"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(body, &env))
	return string(env.Data.Remaining)
}
