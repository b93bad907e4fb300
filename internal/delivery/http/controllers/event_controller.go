package controllers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"efgportal/internal/delivery/http/helpers"
	"efgportal/internal/domain"
)

// EventController serves the public event catalog.
type EventController struct {
	Logger  *slog.Logger
	Service domain.CatalogService
	Now     func() time.Time
}

func NewEventController(logger *slog.Logger, svc domain.CatalogService) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
		Now:     time.Now,
	}
}

// ListEventsSuccessResponse is the success response envelope for GET /events (200).
type ListEventsSuccessResponse struct {
	Data  []*domain.Event   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// CountdownSuccessResponse is the success response envelope for the countdown endpoints (200).
type CountdownSuccessResponse struct {
	Data  *domain.EventCountdown `json:"data"`
	Error *helpers.APIError      `json:"error"`
}

// ListEvents godoc
// @Summary List active events
// @Description Returns every active event ordered by date ascending.
// @Tags events
// @Produce json
// @Success 200 {object} controllers.ListEventsSuccessResponse
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Failure 503 {object} helpers.APIResponse "error.code: service_unavailable"
// @Router /events [get]
func (c *EventController) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := c.Service.ListActiveEvents(r.Context())
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	if events == nil {
		events = []*domain.Event{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, events)
}

// GetEvent godoc
// @Summary Get an active event by slug
// @Tags events
// @Produce json
// @Param slug path string true "Event slug"
// @Success 200 {object} helpers.APIResponse "data contains the event"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{slug} [get]
func (c *EventController) GetEvent(w http.ResponseWriter, r *http.Request) {
	slug := strings.TrimSpace(r.PathValue("slug"))
	if slug == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing slug")
		return
	}
	e, err := c.Service.GetEventBySlug(r.Context(), slug)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, e)
}

// GetCountdown godoc
// @Summary Time remaining until an event starts
// @Description Days, hours, minutes and seconds until the event date, clamped at zero once it has started.
// @Tags events
// @Produce json
// @Param slug path string true "Event slug"
// @Success 200 {object} controllers.CountdownSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{slug}/countdown [get]
func (c *EventController) GetCountdown(w http.ResponseWriter, r *http.Request) {
	slug := strings.TrimSpace(r.PathValue("slug"))
	if slug == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing slug")
		return
	}
	cd, err := c.Service.GetCountdown(r.Context(), slug, c.Now())
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, cd)
}

// NextEvent godoc
// @Summary The next upcoming event
// @Description The earliest active event that has not started, with its countdown.
// @Tags events
// @Produce json
// @Success 200 {object} controllers.CountdownSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (no upcoming event)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/next [get]
func (c *EventController) NextEvent(w http.ResponseWriter, r *http.Request) {
	cd, err := c.Service.NextEvent(r.Context(), c.Now())
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, cd)
}
