package http

import (
	"log/slog"
	"net/http"

	"efgportal/internal/delivery/http/controllers"
	"efgportal/internal/delivery/http/helpers"
	"efgportal/internal/delivery/http/middleware"
	"efgportal/internal/domain"

	httpSwagger "github.com/swaggo/http-swagger"
)

// Controllers groups the handlers mounted by NewRouter.
type Controllers struct {
	Auth     *controllers.AuthController
	Profile  *controllers.ProfileController
	Events   *controllers.EventController
	Attendee *controllers.AttendeeController
	Admin    *controllers.AdminController
}

// NewRouter initializes the HTTP router with all application routes. metricsHandler may be nil.
func NewRouter(c Controllers, verifier domain.TokenVerifier, metricsHandler http.Handler, logger *slog.Logger) *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(verifier, logger)

	// Auth
	mux.HandleFunc("POST /auth/signup", c.Auth.SignUp)
	mux.HandleFunc("POST /auth/login", c.Auth.Login)

	// Reference data
	mux.HandleFunc("GET /industries", c.Profile.ListIndustries)
	mux.HandleFunc("GET /interests", c.Profile.ListInterests)

	// Public catalog
	mux.HandleFunc("GET /events", c.Events.ListEvents)
	mux.HandleFunc("GET /events/next", c.Events.NextEvent)
	mux.HandleFunc("GET /events/{slug}", c.Events.GetEvent)
	mux.HandleFunc("GET /events/{slug}/countdown", c.Events.GetCountdown)

	// Profile
	mux.HandleFunc("GET /profile/me", auth(c.Profile.GetMe))
	mux.HandleFunc("PATCH /profile/me", auth(c.Profile.UpdateMe))

	// Attendee portal
	mux.HandleFunc("GET /portal/events", auth(c.Attendee.ListEvents))
	mux.HandleFunc("POST /portal/events/{eventID}/interest", auth(c.Attendee.ExpressInterest))
	mux.HandleFunc("GET /portal/registrations", auth(c.Attendee.ListMyRegistrations))
	mux.HandleFunc("POST /portal/registrations/{registrationID}/confirm", auth(c.Attendee.ConfirmAttendance))

	// Admin console
	mux.HandleFunc("GET /admin/dashboard", auth(c.Admin.Dashboard))
	mux.HandleFunc("GET /admin/registrations", auth(c.Admin.ListRegistrations))
	mux.HandleFunc("POST /admin/registrations/{registrationID}/approve", auth(c.Admin.Approve))
	mux.HandleFunc("POST /admin/registrations/{registrationID}/reject", auth(c.Admin.Reject))
	mux.HandleFunc("POST /admin/registrations/{registrationID}/check-in", auth(c.Admin.CheckIn))
	mux.HandleFunc("GET /admin/events", auth(c.Admin.ListEvents))
	mux.HandleFunc("POST /admin/events", auth(c.Admin.CreateEvent))
	mux.HandleFunc("PATCH /admin/events/{eventID}", auth(c.Admin.UpdateEvent))
	mux.HandleFunc("GET /admin/profiles", auth(c.Admin.ListProfiles))
	mux.HandleFunc("PUT /admin/profiles/{profileID}/admin", auth(c.Admin.SetAdmin))

	// Ops
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if metricsHandler != nil {
		mux.Handle("GET /metrics", metricsHandler)
	}

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
