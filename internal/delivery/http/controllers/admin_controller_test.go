package controllers

import (
	"context"
	"net/http"
	"testing"
	"time"

	"efgportal/internal/delivery/http/helpers"
	"efgportal/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockAdminService struct {
	err          error
	lastUserID   string
	lastRegID    string
	lastNotes    *string
	lastFilter   domain.RegistrationFilter
	lastFlags    domain.EventFlags
	lastInput    domain.NewEventInput
	lastParams   domain.PaginationParams
	lastIsAdmin  bool
	views        []*domain.RegistrationView
	profiles     []*domain.Profile
	profileTotal int
}

func (m *mockAdminService) Dashboard(_ context.Context, userID string) (*domain.DashboardStats, error) {
	m.lastUserID = userID
	if m.err != nil {
		return nil, m.err
	}
	return &domain.DashboardStats{TotalProfiles: 4, StatusCounts: map[domain.RegistrationStatus]int{domain.StatusInterested: 2}}, nil
}

func (m *mockAdminService) ListRegistrations(_ context.Context, userID string, filter domain.RegistrationFilter) ([]*domain.RegistrationView, error) {
	m.lastUserID, m.lastFilter = userID, filter
	return m.views, m.err
}

func (m *mockAdminService) review(userID, regID string, notes *string, to domain.RegistrationStatus) (*domain.EventRegistration, error) {
	m.lastUserID, m.lastRegID, m.lastNotes = userID, regID, notes
	if m.err != nil {
		return nil, m.err
	}
	return &domain.EventRegistration{ID: regID, Status: to, AdminNotes: notes}, nil
}

func (m *mockAdminService) Approve(_ context.Context, userID, regID string, notes *string) (*domain.EventRegistration, error) {
	return m.review(userID, regID, notes, domain.StatusApproved)
}

func (m *mockAdminService) Reject(_ context.Context, userID, regID string, notes *string) (*domain.EventRegistration, error) {
	return m.review(userID, regID, notes, domain.StatusRejected)
}

func (m *mockAdminService) CheckIn(_ context.Context, userID, regID string) (*domain.EventRegistration, error) {
	return m.review(userID, regID, nil, domain.StatusAttended)
}

func (m *mockAdminService) ListEvents(_ context.Context, userID string) ([]*domain.EventWithCount, error) {
	m.lastUserID = userID
	return nil, m.err
}

func (m *mockAdminService) CreateEvent(_ context.Context, userID string, in domain.NewEventInput) (*domain.Event, error) {
	m.lastUserID, m.lastInput = userID, in
	if m.err != nil {
		return nil, m.err
	}
	return &domain.Event{ID: testEventID, Name: in.Name, Slug: domain.Slugify(in.Name), Date: in.Date}, nil
}

func (m *mockAdminService) SetEventFlags(_ context.Context, userID, eventID string, flags domain.EventFlags) (*domain.Event, error) {
	m.lastUserID, m.lastFlags = userID, flags
	if m.err != nil {
		return nil, m.err
	}
	return &domain.Event{ID: eventID}, nil
}

func (m *mockAdminService) ListProfiles(_ context.Context, userID string, params domain.PaginationParams) ([]*domain.Profile, int, error) {
	m.lastUserID, m.lastParams = userID, params
	return m.profiles, m.profileTotal, m.err
}

func (m *mockAdminService) SetAdmin(_ context.Context, userID, profileID string, isAdmin bool) (*domain.Profile, error) {
	m.lastUserID, m.lastIsAdmin = userID, isAdmin
	if m.err != nil {
		return nil, m.err
	}
	return &domain.Profile{ID: profileID, IsAdmin: isAdmin}, nil
}

func TestAdminController_ForbiddenForNonAdmins(t *testing.T) {
	svc := &mockAdminService{err: domain.ErrForbidden}
	ctrl := NewAdminController(testLogger, svc)

	tests := []struct {
		name    string
		pattern string
		handler http.HandlerFunc
		method  string
		target  string
		body    string
	}{
		{"dashboard", "GET /admin/dashboard", ctrl.Dashboard, http.MethodGet, "/admin/dashboard", ""},
		{"list registrations", "GET /admin/registrations", ctrl.ListRegistrations, http.MethodGet, "/admin/registrations", ""},
		{"approve", "POST /admin/registrations/{registrationID}/approve", ctrl.Approve, http.MethodPost, "/admin/registrations/" + testRegID + "/approve", ""},
		{"reject", "POST /admin/registrations/{registrationID}/reject", ctrl.Reject, http.MethodPost, "/admin/registrations/" + testRegID + "/reject", ""},
		{"check in", "POST /admin/registrations/{registrationID}/check-in", ctrl.CheckIn, http.MethodPost, "/admin/registrations/" + testRegID + "/check-in", ""},
		{"list events", "GET /admin/events", ctrl.ListEvents, http.MethodGet, "/admin/events", ""},
		{"create event", "POST /admin/events", ctrl.CreateEvent, http.MethodPost, "/admin/events", `{"name":"X"}`},
		{"update event", "PATCH /admin/events/{eventID}", ctrl.UpdateEvent, http.MethodPatch, "/admin/events/" + testEventID, `{"is_active":false}`},
		{"list profiles", "GET /admin/profiles", ctrl.ListProfiles, http.MethodGet, "/admin/profiles", ""},
		{"set admin", "PUT /admin/profiles/{profileID}/admin", ctrl.SetAdmin, http.MethodPut, "/admin/profiles/" + testProfID + "/admin", `{"is_admin":true}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(tt.pattern, tt.handler, tt.method, tt.target, tt.body, "u1")
			require.Equal(t, http.StatusForbidden, w.Code)
			apiErr := decodeEnvelope(t, w, nil)
			require.NotNil(t, apiErr)
			assert.Equal(t, helpers.ErrCodeForbidden, apiErr.Code)

			w = serve(tt.pattern, tt.handler, tt.method, tt.target, tt.body, "")
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestAdminController_ListRegistrations_Filters(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantStatus int
		wantFilter domain.RegistrationFilter
	}{
		{"no filters", "", http.StatusOK, domain.RegistrationFilter{}},
		{"all sentinels", "?event_id=all&status=all", http.StatusOK, domain.RegistrationFilter{}},
		{"both", "?event_id=" + testEventID + "&status=approved", http.StatusOK, domain.RegistrationFilter{EventID: testEventID, Status: domain.StatusApproved}},
		{"bad status", "?status=maybe", http.StatusBadRequest, domain.RegistrationFilter{}},
		{"bad event id", "?event_id=42", http.StatusBadRequest, domain.RegistrationFilter{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockAdminService{}
			ctrl := NewAdminController(testLogger, svc)
			w := serve("GET /admin/registrations", ctrl.ListRegistrations, http.MethodGet, "/admin/registrations"+tt.query, "", "u1")
			require.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, tt.wantFilter, svc.lastFilter)
				assert.JSONEq(t, `{"data":[],"error":null}`, w.Body.String())
			}
		})
	}
}

func TestAdminController_Review(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
		wantNotes  *string
	}{
		{"no body", "", nil, http.StatusOK, nil},
		{"with notes", `{"admin_notes":"strong profile"}`, nil, http.StatusOK, strPtr("strong profile")},
		{"unknown field", `{"note":"x"}`, nil, http.StatusBadRequest, nil},
		{"already reviewed", "", domain.ErrInvalidTransition, http.StatusConflict, nil},
		{"missing registration", "", domain.ErrNotFound, http.StatusNotFound, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockAdminService{err: tt.err}
			ctrl := NewAdminController(testLogger, svc)
			w := serve("POST /admin/registrations/{registrationID}/approve", ctrl.Approve,
				http.MethodPost, "/admin/registrations/"+testRegID+"/approve", tt.body, "admin-1")
			require.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusOK {
				var reg domain.EventRegistration
				require.Nil(t, decodeEnvelope(t, w, &reg))
				assert.Equal(t, domain.StatusApproved, reg.Status)
				assert.Equal(t, tt.wantNotes, svc.lastNotes)
				assert.Equal(t, testRegID, svc.lastRegID)
				assert.Equal(t, "admin-1", svc.lastUserID)
			}
		})
	}
}

func TestAdminController_CreateEvent(t *testing.T) {
	svc := &mockAdminService{}
	ctrl := NewAdminController(testLogger, svc)
	body := `{"name":"Cyber First Kuwait 2026","date":"2026-05-12T09:00:00Z","location":"Kuwait City","venue":"Four Seasons"}`

	w := serve("POST /admin/events", ctrl.CreateEvent, http.MethodPost, "/admin/events", body, "admin-1")

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, time.Date(2026, 5, 12, 9, 0, 0, 0, time.UTC), svc.lastInput.Date.UTC())
	require.NotNil(t, svc.lastInput.Venue)
	assert.Equal(t, "Four Seasons", *svc.lastInput.Venue)
	var e domain.Event
	require.Nil(t, decodeEnvelope(t, w, &e))
	assert.Equal(t, "cyber-first-kuwait-2026", e.Slug)

	svc.err = domain.NewValidationError("location", "is required")
	w = serve("POST /admin/events", ctrl.CreateEvent, http.MethodPost, "/admin/events", `{"name":"X"}`, "admin-1")
	require.Equal(t, http.StatusBadRequest, w.Code)
	apiErr := decodeEnvelope(t, w, nil)
	assert.Equal(t, helpers.ErrCodeValidationFailed, apiErr.Code)
	assert.Contains(t, apiErr.Fields, "location")
}

func TestAdminController_UpdateEvent(t *testing.T) {
	svc := &mockAdminService{}
	ctrl := NewAdminController(testLogger, svc)

	w := serve("PATCH /admin/events/{eventID}", ctrl.UpdateEvent, http.MethodPatch, "/admin/events/"+testEventID, `{}`, "admin-1")
	assert.Equal(t, http.StatusBadRequest, w.Code, "empty patch is rejected")

	w = serve("PATCH /admin/events/{eventID}", ctrl.UpdateEvent, http.MethodPatch, "/admin/events/"+testEventID, `{"registration_open":false}`, "admin-1")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, svc.lastFlags.IsActive)
	require.NotNil(t, svc.lastFlags.RegistrationOpen)
	assert.False(t, *svc.lastFlags.RegistrationOpen)
}

func TestAdminController_ListProfiles(t *testing.T) {
	svc := &mockAdminService{profiles: []*domain.Profile{{ID: "p1"}, {ID: "p2"}}, profileTotal: 42}
	ctrl := NewAdminController(testLogger, svc)

	w := serve("GET /admin/profiles", ctrl.ListProfiles, http.MethodGet, "/admin/profiles?page=2&page_size=2", "", "admin-1")

	require.Equal(t, http.StatusOK, w.Code)
	var resp ListProfilesResponse
	require.Nil(t, decodeEnvelope(t, w, &resp))
	assert.Len(t, resp.Items, 2)
	assert.Equal(t, helpers.PaginationMeta{Page: 2, PageSize: 2, Total: 42, TotalPages: 21}, resp.Pagination)
	assert.Equal(t, domain.PaginationParams{Page: 2, PageSize: 2}, svc.lastParams)
}

func TestAdminController_SetAdmin(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
	}{
		{"grant", `{"is_admin":true}`, nil, http.StatusOK},
		{"missing flag", `{}`, nil, http.StatusBadRequest},
		{"self demotion", `{"is_admin":false}`, domain.ErrPreconditionFailed, http.StatusConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockAdminService{err: tt.err}
			ctrl := NewAdminController(testLogger, svc)
			w := serve("PUT /admin/profiles/{profileID}/admin", ctrl.SetAdmin, http.MethodPut, "/admin/profiles/"+testProfID+"/admin", tt.body, "admin-1")
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func strPtr(s string) *string { return &s }
