package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"efgportal/internal/delivery/http/helpers"
	"efgportal/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProfileService struct {
	profile   *domain.Profile
	err       error
	lastPatch domain.ProfilePatch
}

func (f *fakeProfileService) GetMyProfile(context.Context, string) (*domain.Profile, error) {
	return f.profile, f.err
}

func (f *fakeProfileService) UpdateMyProfile(_ context.Context, _ string, patch domain.ProfilePatch) (*domain.Profile, error) {
	f.lastPatch = patch
	if f.err != nil {
		return nil, f.err
	}
	patch.Apply(f.profile)
	return f.profile, nil
}

func (f *fakeProfileService) ListIndustries(context.Context) ([]*domain.Industry, error) {
	return []*domain.Industry{{ID: "i1", Name: "Banking", Slug: "banking"}}, f.err
}

func (f *fakeProfileService) ListInterests(context.Context) ([]*domain.Interest, error) {
	return nil, f.err
}

func TestProfileController_GetMe(t *testing.T) {
	ctrl := NewProfileController(testLogger, &fakeProfileService{profile: &domain.Profile{ID: "p1", FullName: "Alice"}})
	w := serve("GET /profile/me", ctrl.GetMe, http.MethodGet, "/profile/me", "", "u1")
	require.Equal(t, http.StatusOK, w.Code)
	var p domain.Profile
	require.Nil(t, decodeEnvelope(t, w, &p))
	assert.Equal(t, "Alice", p.FullName)

	w = serve("GET /profile/me", ctrl.GetMe, http.MethodGet, "/profile/me", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProfileController_UpdateMe(t *testing.T) {
	t.Run("partial patch", func(t *testing.T) {
		svc := &fakeProfileService{profile: &domain.Profile{ID: "p1", FullName: "Alice", Company: "Acme"}}
		ctrl := NewProfileController(testLogger, svc)
		w := serve("PATCH /profile/me", ctrl.UpdateMe, http.MethodPatch, "/profile/me", `{"title":"CISO","interests":["x"]}`, "u1")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Nil(t, svc.lastPatch.Company, "omitted fields stay nil")
		require.NotNil(t, svc.lastPatch.Interests)
		assert.Equal(t, []string{"x"}, *svc.lastPatch.Interests)
		var p domain.Profile
		require.Nil(t, decodeEnvelope(t, w, &p))
		assert.Equal(t, "CISO", p.Title)
		assert.Equal(t, "Acme", p.Company)
	})

	t.Run("completion rejected with field errors", func(t *testing.T) {
		verr := domain.NewValidationError("title", "is required to complete the profile")
		verr.Add("industry_id", "is required to complete the profile")
		ctrl := NewProfileController(testLogger, &fakeProfileService{profile: &domain.Profile{}, err: verr})
		w := serve("PATCH /profile/me", ctrl.UpdateMe, http.MethodPatch, "/profile/me", `{"profile_completed":true}`, "u1")
		require.Equal(t, http.StatusBadRequest, w.Code)
		var env helpers.APIResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		assert.Equal(t, helpers.ErrCodeValidationFailed, env.Error.Code)
		assert.Len(t, env.Error.Fields, 2)
	})

	t.Run("unknown field", func(t *testing.T) {
		ctrl := NewProfileController(testLogger, &fakeProfileService{profile: &domain.Profile{}})
		w := serve("PATCH /profile/me", ctrl.UpdateMe, http.MethodPatch, "/profile/me", `{"is_admin":true}`, "u1")
		assert.Equal(t, http.StatusBadRequest, w.Code, "is_admin cannot be self-assigned")
	})
}

func TestProfileController_Lookups(t *testing.T) {
	ctrl := NewProfileController(testLogger, &fakeProfileService{})
	w := serve("GET /industries", ctrl.ListIndustries, http.MethodGet, "/industries", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	var industries []domain.Industry
	require.Nil(t, decodeEnvelope(t, w, &industries))
	assert.Equal(t, "banking", industries[0].Slug)

	w = serve("GET /interests", ctrl.ListInterests, http.MethodGet, "/interests", "", "")
	assert.JSONEq(t, `{"data":[],"error":null}`, w.Body.String())
}
