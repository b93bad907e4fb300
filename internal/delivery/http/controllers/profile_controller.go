package controllers

import (
	"log/slog"
	"net/http"

	"efgportal/internal/delivery/http/helpers"
	"efgportal/internal/delivery/http/middleware"
	"efgportal/internal/domain"
)

type ProfileController struct {
	Logger  *slog.Logger
	Service domain.ProfileService
}

func NewProfileController(logger *slog.Logger, svc domain.ProfileService) *ProfileController {
	return &ProfileController{
		Logger:  logger,
		Service: svc,
	}
}

// ProfileSuccessResponse is the success response envelope for GET and PATCH /profile/me (200).
type ProfileSuccessResponse struct {
	Data  *domain.Profile   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// GetMe godoc
// @Summary Get the current user's profile
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.ProfileSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /profile/me [get]
func (c *ProfileController) GetMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	p, err := c.Service.GetMyProfile(r.Context(), userID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, p)
}

// UpdateMe godoc
// @Summary Update the current user's profile
// @Description Partial update; omitted fields are left unchanged. Setting profile_completed=true requires title, company, industry_id and role_type. A completed profile cannot be reopened.
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body domain.ProfilePatch true "Fields to change"
// @Success 200 {object} controllers.ProfileSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request or validation_failed (error.fields maps field to message)"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /profile/me [patch]
func (c *ProfileController) UpdateMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	var patch domain.ProfilePatch
	if !helpers.DecodeAndValidate(w, r, &patch) {
		return
	}
	p, err := c.Service.UpdateMyProfile(r.Context(), userID, patch)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, p)
}

// ListIndustries godoc
// @Summary List industries
// @Tags reference
// @Produce json
// @Success 200 {object} helpers.APIResponse "data is an array of industries ordered by name"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /industries [get]
func (c *ProfileController) ListIndustries(w http.ResponseWriter, r *http.Request) {
	list, err := c.Service.ListIndustries(r.Context())
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	if list == nil {
		list = []*domain.Industry{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, list)
}

// ListInterests godoc
// @Summary List interests
// @Tags reference
// @Produce json
// @Success 200 {object} helpers.APIResponse "data is an array of interests ordered by name"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /interests [get]
func (c *ProfileController) ListInterests(w http.ResponseWriter, r *http.Request) {
	list, err := c.Service.ListInterests(r.Context())
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	if list == nil {
		list = []*domain.Interest{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, list)
}
