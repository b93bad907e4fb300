package controllers

import (
	"log/slog"
	"net/http"
	"time"

	"efgportal/internal/delivery/http/helpers"
	"efgportal/internal/delivery/http/middleware"
	"efgportal/internal/domain"
)

// AttendeeController serves the attendee portal.
type AttendeeController struct {
	Logger  *slog.Logger
	Service domain.AttendeeService
	Now     func() time.Time
}

func NewAttendeeController(logger *slog.Logger, svc domain.AttendeeService) *AttendeeController {
	return &AttendeeController{
		Logger:  logger,
		Service: svc,
		Now:     time.Now,
	}
}

// ListPortalEventsSuccessResponse is the success response envelope for GET /portal/events (200).
type ListPortalEventsSuccessResponse struct {
	Data  []*domain.EventWithStatus `json:"data"`
	Error *helpers.APIError         `json:"error"`
}

// RegistrationSuccessResponse is the success response envelope for endpoints returning one registration.
type RegistrationSuccessResponse struct {
	Data  *domain.EventRegistration `json:"data"`
	Error *helpers.APIError         `json:"error"`
}

// ListMyRegistrationsSuccessResponse is the success response envelope for GET /portal/registrations (200).
type ListMyRegistrationsSuccessResponse struct {
	Data  []*domain.EventRegistrationWithEvent `json:"data"`
	Error *helpers.APIError                    `json:"error"`
}

// ListEvents godoc
// @Summary Active events with the caller's registration status
// @Description Each active event with the caller's own status (null when not registered) and the countdown to its start. Requires a completed profile.
// @Tags portal
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.ListPortalEventsSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 409 {object} helpers.APIResponse "error.code: precondition_failed (profile not completed)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /portal/events [get]
func (c *AttendeeController) ListEvents(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	items, err := c.Service.ListEventsWithStatus(r.Context(), userID, c.Now())
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	if items == nil {
		items = []*domain.EventWithStatus{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, items)
}

// ExpressInterest godoc
// @Summary Register interest in an event
// @Description Creates an interested registration for the caller. Idempotent: returns 201 when a new registration is created, 200 with the existing one otherwise.
// @Tags portal
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} controllers.RegistrationSuccessResponse "Already registered"
// @Success 201 {object} controllers.RegistrationSuccessResponse "New registration created"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: precondition_failed (profile incomplete or registration closed)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /portal/events/{eventID}/interest [post]
func (c *AttendeeController) ExpressInterest(w http.ResponseWriter, r *http.Request) {
	eventID, ok := helpers.PathUUID(w, r, "eventID")
	if !ok {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	reg, created, err := c.Service.ExpressInterest(r.Context(), userID, eventID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	if created {
		helpers.WriteJSONSuccess(w, http.StatusCreated, reg)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, reg)
}

// ListMyRegistrations godoc
// @Summary The caller's registrations
// @Tags portal
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.ListMyRegistrationsSuccessResponse "data is an array of registration + event objects"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /portal/registrations [get]
func (c *AttendeeController) ListMyRegistrations(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	items, err := c.Service.ListMyRegistrations(r.Context(), userID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	if items == nil {
		items = []*domain.EventRegistrationWithEvent{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, items)
}

// ConfirmAttendance godoc
// @Summary Confirm attendance of an approved registration
// @Description Moves the caller's own registration from approved to confirmed.
// @Tags portal
// @Produce json
// @Security BearerAuth
// @Param registrationID path string true "Registration ID (UUID)"
// @Success 200 {object} controllers.RegistrationSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not the owner)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: precondition_failed (not approved)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /portal/registrations/{registrationID}/confirm [post]
func (c *AttendeeController) ConfirmAttendance(w http.ResponseWriter, r *http.Request) {
	regID, ok := helpers.PathUUID(w, r, "registrationID")
	if !ok {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	reg, err := c.Service.ConfirmAttendance(r.Context(), userID, regID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, reg)
}
