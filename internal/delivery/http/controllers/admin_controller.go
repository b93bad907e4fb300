package controllers

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"efgportal/internal/delivery/http/helpers"
	"efgportal/internal/delivery/http/middleware"
	"efgportal/internal/domain"

	"github.com/google/uuid"
)

// AdminController serves the admin review console. Role checks happen in the service on every call.
type AdminController struct {
	Logger  *slog.Logger
	Service domain.AdminService
}

func NewAdminController(logger *slog.Logger, svc domain.AdminService) *AdminController {
	return &AdminController{
		Logger:  logger,
		Service: svc,
	}
}

// ReviewRequest is the optional request body for approve and reject.
type ReviewRequest struct {
	AdminNotes *string `json:"admin_notes"`
}

// Validate implements Validator.
func (req *ReviewRequest) Validate() []string {
	if req.AdminNotes != nil && len(*req.AdminNotes) > 2000 {
		return []string{"admin_notes must be at most 2000 characters"}
	}
	return nil
}

// CreateEventRequest is the request body for POST /admin/events. date is RFC 3339.
type CreateEventRequest struct {
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Series      *string   `json:"series"`
	Date        time.Time `json:"date"`
	Location    string    `json:"location"`
	Venue       *string   `json:"venue"`
	Description *string   `json:"description"`
	BannerURL   *string   `json:"banner_url"`
}

// UpdateEventRequest is the request body for PATCH /admin/events/{eventID}.
type UpdateEventRequest struct {
	IsActive         *bool `json:"is_active"`
	RegistrationOpen *bool `json:"registration_open"`
}

// Validate implements Validator.
func (req *UpdateEventRequest) Validate() []string {
	if req.IsActive == nil && req.RegistrationOpen == nil {
		return []string{"at least one of is_active or registration_open is required"}
	}
	return nil
}

// SetAdminRequest is the request body for PUT /admin/profiles/{profileID}/admin.
type SetAdminRequest struct {
	IsAdmin *bool `json:"is_admin"`
}

// Validate implements Validator.
func (req *SetAdminRequest) Validate() []string {
	if req.IsAdmin == nil {
		return []string{"is_admin is required"}
	}
	return nil
}

// ListRegistrationsSuccessResponse is the success response envelope for GET /admin/registrations (200).
type ListRegistrationsSuccessResponse struct {
	Data  []*domain.RegistrationView `json:"data"`
	Error *helpers.APIError          `json:"error"`
}

// DashboardSuccessResponse is the success response envelope for GET /admin/dashboard (200).
type DashboardSuccessResponse struct {
	Data  *domain.DashboardStats `json:"data"`
	Error *helpers.APIError      `json:"error"`
}

// ListProfilesResponse is the data payload for GET /admin/profiles (200).
type ListProfilesResponse struct {
	Items      []*domain.Profile      `json:"items"`
	Pagination helpers.PaginationMeta `json:"pagination"`
}

// ListProfilesSuccessResponse is the success response envelope for GET /admin/profiles (200).
type ListProfilesSuccessResponse struct {
	Data  ListProfilesResponse `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

// ListAdminEventsSuccessResponse is the success response envelope for GET /admin/events (200).
type ListAdminEventsSuccessResponse struct {
	Data  []*domain.EventWithCount `json:"data"`
	Error *helpers.APIError        `json:"error"`
}

func (c *AdminController) caller(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
	}
	return userID, ok
}

// Dashboard godoc
// @Summary Admin dashboard statistics
// @Description Total profiles, active events, registrations per status and the five most recent registrations.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.DashboardSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/dashboard [get]
func (c *AdminController) Dashboard(w http.ResponseWriter, r *http.Request) {
	userID, ok := c.caller(w, r)
	if !ok {
		return
	}
	stats, err := c.Service.Dashboard(r.Context(), userID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, stats)
}

// ListRegistrations godoc
// @Summary List registrations
// @Description Registrations joined with profile and event, newest first. event_id and status accept "all" (or nothing) to skip the filter.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param event_id query string false "Event ID (UUID) or all"
// @Param status query string false "interested, approved, rejected, confirmed, attended or all"
// @Success 200 {object} controllers.ListRegistrationsSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request or validation_failed"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/registrations [get]
func (c *AdminController) ListRegistrations(w http.ResponseWriter, r *http.Request) {
	userID, ok := c.caller(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	eventID := strings.TrimSpace(q.Get("event_id"))
	if eventID != "" && eventID != domain.FilterAll && uuid.Validate(eventID) != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid event_id")
		return
	}
	filter, err := domain.NewRegistrationFilter(eventID, q.Get("status"))
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	list, err := c.Service.ListRegistrations(r.Context(), userID, filter)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	if list == nil {
		list = []*domain.RegistrationView{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, list)
}

// Approve godoc
// @Summary Approve an interested registration
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param registrationID path string true "Registration ID (UUID)"
// @Param body body ReviewRequest false "Optional admin notes"
// @Success 200 {object} controllers.RegistrationSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: precondition_failed (not interested)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/registrations/{registrationID}/approve [post]
func (c *AdminController) Approve(w http.ResponseWriter, r *http.Request) {
	c.review(w, r, c.Service.Approve)
}

// Reject godoc
// @Summary Reject an interested registration
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param registrationID path string true "Registration ID (UUID)"
// @Param body body ReviewRequest false "Optional admin notes"
// @Success 200 {object} controllers.RegistrationSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: precondition_failed (not interested)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/registrations/{registrationID}/reject [post]
func (c *AdminController) Reject(w http.ResponseWriter, r *http.Request) {
	c.review(w, r, c.Service.Reject)
}

func (c *AdminController) review(w http.ResponseWriter, r *http.Request, action func(context.Context, string, string, *string) (*domain.EventRegistration, error)) {
	regID, ok := helpers.PathUUID(w, r, "registrationID")
	if !ok {
		return
	}
	userID, ok := c.caller(w, r)
	if !ok {
		return
	}
	var req ReviewRequest
	if !helpers.DecodeOptional(w, r, &req) {
		return
	}
	reg, err := action(r.Context(), userID, regID, req.AdminNotes)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, reg)
}

// CheckIn godoc
// @Summary Check in a confirmed registration
// @Description Moves a confirmed registration to attended.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param registrationID path string true "Registration ID (UUID)"
// @Success 200 {object} controllers.RegistrationSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: precondition_failed (not confirmed)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/registrations/{registrationID}/check-in [post]
func (c *AdminController) CheckIn(w http.ResponseWriter, r *http.Request) {
	regID, ok := helpers.PathUUID(w, r, "registrationID")
	if !ok {
		return
	}
	userID, ok := c.caller(w, r)
	if !ok {
		return
	}
	reg, err := c.Service.CheckIn(r.Context(), userID, regID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, reg)
}

// ListEvents godoc
// @Summary List all events with registration counts
// @Description Every event, active or not, newest date first.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.ListAdminEventsSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/events [get]
func (c *AdminController) ListEvents(w http.ResponseWriter, r *http.Request) {
	userID, ok := c.caller(w, r)
	if !ok {
		return
	}
	list, err := c.Service.ListEvents(r.Context(), userID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	if list == nil {
		list = []*domain.EventWithCount{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, list)
}

// CreateEvent godoc
// @Summary Create an event
// @Description The slug is derived from the name when omitted. New events are active and open for registration.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateEventRequest true "Event data"
// @Success 201 {object} helpers.APIResponse "data contains the created event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request or validation_failed"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/events [post]
func (c *AdminController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	userID, ok := c.caller(w, r)
	if !ok {
		return
	}
	var req CreateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	e, err := c.Service.CreateEvent(r.Context(), userID, domain.NewEventInput{
		Name:        req.Name,
		Slug:        req.Slug,
		Series:      req.Series,
		Date:        req.Date,
		Location:    req.Location,
		Venue:       req.Venue,
		Description: req.Description,
		BannerURL:   req.BannerURL,
	})
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, e)
}

// UpdateEvent godoc
// @Summary Toggle event visibility or registration
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param body body UpdateEventRequest true "Flags to change"
// @Success 200 {object} helpers.APIResponse "data contains the updated event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/events/{eventID} [patch]
func (c *AdminController) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	eventID, ok := helpers.PathUUID(w, r, "eventID")
	if !ok {
		return
	}
	userID, ok := c.caller(w, r)
	if !ok {
		return
	}
	var req UpdateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	e, err := c.Service.SetEventFlags(r.Context(), userID, eventID, domain.EventFlags{
		IsActive:         req.IsActive,
		RegistrationOpen: req.RegistrationOpen,
	})
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, e)
}

// ListProfiles godoc
// @Summary List profiles
// @Description Paginated, newest first. Use page and page_size query params.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} controllers.ListProfilesSuccessResponse "data contains items and pagination"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/profiles [get]
func (c *AdminController) ListProfiles(w http.ResponseWriter, r *http.Request) {
	userID, ok := c.caller(w, r)
	if !ok {
		return
	}
	params := helpers.ParsePagination(r)
	list, total, err := c.Service.ListProfiles(r.Context(), userID, params)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	if list == nil {
		list = []*domain.Profile{}
	}
	meta := helpers.NewPaginationMeta(params, total)
	helpers.WriteJSONSuccess(w, http.StatusOK, ListProfilesResponse{Items: list, Pagination: meta})
}

// SetAdmin godoc
// @Summary Grant or revoke the admin flag
// @Description An admin cannot revoke their own flag.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param profileID path string true "Profile ID (UUID)"
// @Param body body SetAdminRequest true "New flag value"
// @Success 200 {object} controllers.ProfileSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: precondition_failed (self-demotion)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/profiles/{profileID}/admin [put]
func (c *AdminController) SetAdmin(w http.ResponseWriter, r *http.Request) {
	profileID, ok := helpers.PathUUID(w, r, "profileID")
	if !ok {
		return
	}
	userID, ok := c.caller(w, r)
	if !ok {
		return
	}
	var req SetAdminRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	p, err := c.Service.SetAdmin(r.Context(), userID, profileID, *req.IsAdmin)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, p)
}
