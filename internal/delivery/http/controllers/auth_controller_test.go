package controllers

import (
	"context"
	"net/http"
	"testing"

	"efgportal/internal/delivery/http/helpers"
	"efgportal/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuthService struct {
	err          error
	lastEmail    string
	lastFullName string
}

func (f *fakeAuthService) SignUp(_ context.Context, email, _, fullName string) (*domain.User, *domain.Profile, error) {
	f.lastEmail, f.lastFullName = email, fullName
	if f.err != nil {
		return nil, nil, f.err
	}
	return &domain.User{ID: "u1", Email: email, PasswordHash: "secret-hash", Salt: "secret-salt"},
		&domain.Profile{ID: "p1", UserID: "u1", FullName: fullName}, nil
}

func (f *fakeAuthService) Login(_ context.Context, email, _ string) (string, *domain.User, error) {
	f.lastEmail = email
	if f.err != nil {
		return "", nil, f.err
	}
	return "jwt-token", &domain.User{ID: "u1", Email: email}, nil
}

func TestAuthController_SignUp(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"created", `{"email":"a@example.com","password":"longenough","full_name":"Alice"}`, nil, http.StatusCreated, ""},
		{"missing fields", `{"email":"a@example.com"}`, nil, http.StatusBadRequest, helpers.ErrCodeBadRequest},
		{"malformed json", `{"email":`, nil, http.StatusBadRequest, helpers.ErrCodeBadRequest},
		{"weak password", `{"email":"a@example.com","password":"short","full_name":"A"}`, domain.NewValidationError("password", "must be at least 8 characters"), http.StatusBadRequest, helpers.ErrCodeValidationFailed},
		{"duplicate", `{"email":"a@example.com","password":"longenough","full_name":"A"}`, domain.ErrDuplicateEmail, http.StatusConflict, helpers.ErrCodeConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewAuthController(testLogger, &fakeAuthService{err: tt.err})
			w := serve("POST /auth/signup", ctrl.SignUp, http.MethodPost, "/auth/signup", tt.body, "")
			require.Equal(t, tt.wantStatus, w.Code)
			if tt.wantCode == "" {
				assert.NotContains(t, w.Body.String(), "secret-hash", "password hash must never be serialised")
				assert.NotContains(t, w.Body.String(), "secret-salt")
				var resp SignUpResponse
				require.Nil(t, decodeEnvelope(t, w, &resp))
				assert.Equal(t, "u1", resp.Profile.UserID)
				return
			}
			apiErr := decodeEnvelope(t, w, nil)
			require.NotNil(t, apiErr)
			assert.Equal(t, tt.wantCode, apiErr.Code)
		})
	}
}

func TestAuthController_Login(t *testing.T) {
	ctrl := NewAuthController(testLogger, &fakeAuthService{})
	w := serve("POST /auth/login", ctrl.Login, http.MethodPost, "/auth/login", `{"email":"a@example.com","password":"longenough"}`, "")
	require.Equal(t, http.StatusOK, w.Code)
	var resp LoginResponse
	require.Nil(t, decodeEnvelope(t, w, &resp))
	assert.Equal(t, "jwt-token", resp.Token)
	assert.Equal(t, "Bearer", resp.TokenType)

	ctrl = NewAuthController(testLogger, &fakeAuthService{err: domain.ErrInvalidCredentials})
	w = serve("POST /auth/login", ctrl.Login, http.MethodPost, "/auth/login", `{"email":"a@example.com","password":"nope"}`, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
