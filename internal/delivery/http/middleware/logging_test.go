package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// capturingHandler records the last log record for assertions.
type capturingHandler struct {
	record slog.Record
}

func (h *capturingHandler) Enabled(_ context.Context, _ slog.Level) bool { return true }

func (h *capturingHandler) Handle(_ context.Context, r slog.Record) error {
	h.record = r.Clone()
	return nil
}

func (h *capturingHandler) WithAttrs(_ []slog.Attr) slog.Handler { return h }

func (h *capturingHandler) WithGroup(_ string) slog.Handler { return h }

func (h *capturingHandler) attrs() map[string]slog.Value {
	out := make(map[string]slog.Value)
	h.record.Attrs(func(a slog.Attr) bool {
		out[a.Key] = a.Value
		return true
	})
	return out
}

func TestLoggingMiddleware(t *testing.T) {
	var cap capturingHandler
	logger := slog.New(&cap)

	tests := []struct {
		name          string
		handlerStatus int
		path          string
		method        string
		wantLevel     slog.Level
	}{
		{"ok status", http.StatusOK, "/events", http.MethodGet, slog.LevelInfo},
		{"created", http.StatusCreated, "/auth/signup", http.MethodPost, slog.LevelInfo},
		{"conflict", http.StatusConflict, "/portal/events/e1/interest", http.MethodPost, slog.LevelWarn},
		{"server error", http.StatusInternalServerError, "/admin/dashboard", http.MethodGet, slog.LevelError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.handlerStatus)
				_, _ = w.Write([]byte("{}"))
			})
			handler := LoggingMiddleware(logger, next)
			req := httptest.NewRequest(tt.method, "http://test"+tt.path, nil)
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			require.Equal(t, "request", cap.record.Message)
			assert.Equal(t, tt.wantLevel, cap.record.Level)
			attrs := cap.attrs()
			require.Contains(t, attrs, "duration_ms")
			assert.Equal(t, tt.method, attrs["method"].String())
			assert.Equal(t, tt.path, attrs["path"].String())
			assert.Equal(t, int64(tt.handlerStatus), attrs["status"].Int64())
			assert.Equal(t, int64(2), attrs["bytes"].Int64())
			assert.GreaterOrEqual(t, attrs["duration_ms"].Int64(), int64(0))
			assert.NotContains(t, attrs, "route")
			assert.Equal(t, tt.handlerStatus, rr.Code)
		})
	}
}

func TestLoggingMiddleware_ImplicitOKAndRoute(t *testing.T) {
	var cap capturingHandler
	mux := http.NewServeMux()
	mux.HandleFunc("GET /events/{slug}", func(w http.ResponseWriter, r *http.Request) {})

	rr := httptest.NewRecorder()
	LoggingMiddleware(slog.New(&cap), mux).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/events/summit", nil))

	attrs := cap.attrs()
	assert.Equal(t, int64(http.StatusOK), attrs["status"].Int64())
	assert.Equal(t, "GET /events/{slug}", attrs["route"].String())
	assert.Equal(t, slog.LevelInfo, cap.record.Level)
}
