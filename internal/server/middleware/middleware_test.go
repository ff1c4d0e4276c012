package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/deltasync/internal/server/handlers"
	"github.com/iudanet/deltasync/pkg/api"
)

// setupTestLogger creates a logger for testing
func setupTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func identityEcho(w http.ResponseWriter, r *http.Request) {
	clientID, _ := handlers.GetClientID(r.Context())
	_, _ = w.Write([]byte(clientID))
}

func TestIdentityMiddleware(t *testing.T) {
	secret := []byte("test-secret")
	valid, err := handlers.IssueIdentityToken(secret, "c1", time.Minute)
	require.NoError(t, err)
	foreign, err := handlers.IssueIdentityToken([]byte("other"), "c1", time.Minute)
	require.NoError(t, err)

	mw := IdentityMiddleware(setupTestLogger(), secret, []string{"/api/v1/health"})
	handler := mw(http.HandlerFunc(identityEcho))

	tests := []struct {
		name       string
		path       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{name: "bearer", path: "/api/v1/sync/delta", header: "Bearer " + valid, wantStatus: http.StatusOK, wantBody: "c1"},
		{name: "query token", path: "/ws?client_id=c1&access_token=" + valid, wantStatus: http.StatusOK, wantBody: "c1"},
		{name: "missing", path: "/api/v1/sync/delta", wantStatus: http.StatusUnauthorized},
		{name: "bad format", path: "/api/v1/sync/delta", header: "Token " + valid, wantStatus: http.StatusUnauthorized},
		{name: "empty bearer", path: "/api/v1/sync/delta", header: "Bearer ", wantStatus: http.StatusUnauthorized},
		{name: "wrong secret", path: "/api/v1/sync/delta", header: "Bearer " + foreign, wantStatus: http.StatusUnauthorized},
		{name: "skipped path", path: "/api/v1/health", wantStatus: http.StatusOK, wantBody: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, tt.wantBody, w.Body.String())
			}
		})
	}
}

func TestIdentityMiddleware_Disabled(t *testing.T) {
	handler := IdentityMiddleware(setupTestLogger(), nil, nil)(http.HandlerFunc(identityEcho))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/sync/delta", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestLoggingMiddleware(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name      string
		status    int
		wantLevel string
	}{
		{"ok", http.StatusOK, "INFO"},
		{"client error", http.StatusBadRequest, "WARN"},
		{"server error", http.StatusInternalServerError, "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			handler := LoggingMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte("body"))
			}))

			req := httptest.NewRequest(http.MethodPost, "/api/v1/sync/delta?access_token=secret", nil)
			req = req.WithContext(handlers.WithClientID(req.Context(), "c1"))
			handler.ServeHTTP(httptest.NewRecorder(), req)

			var entry map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
			assert.Equal(t, tt.wantLevel, entry["level"])
			assert.Equal(t, "/api/v1/sync/delta", entry["path"])
			assert.Equal(t, float64(tt.status), entry["status"])
			assert.Equal(t, float64(4), entry["bytes_written"])
			assert.Equal(t, "c1", entry["client_id"])
			assert.NotContains(t, buf.String(), "secret")
		})
	}
}

func TestLoggingWithSkip(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	handler := LoggingWithSkip(logger, []string{"/metrics"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Empty(t, buf.String())

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/health/system", nil))
	assert.Contains(t, buf.String(), "HTTP request")
}

func TestRateLimiter_Allow(t *testing.T) {
	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(2, time.Minute)
	rl.now = func() time.Time { return now }

	assert.True(t, rl.Allow("a"))
	assert.True(t, rl.Allow("a"))
	assert.False(t, rl.Allow("a"))
	assert.True(t, rl.Allow("b"), "keys are independent")
	assert.Equal(t, 2, rl.Len())

	now = now.Add(time.Minute)
	assert.True(t, rl.Allow("a"), "tokens refill after the window")
}

func TestRateLimitMiddleware(t *testing.T) {
	handler := RateLimitMiddleware(1, time.Minute, setupTestLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	send := func(ip, clientID string) int {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/health/system", nil)
		req.RemoteAddr = ip
		if clientID != "" {
			req = req.WithContext(handlers.WithClientID(req.Context(), clientID))
		}
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, send("10.0.0.1:1000", ""))
	assert.Equal(t, http.StatusTooManyRequests, send("10.0.0.1:1000", ""))
	// клиент из токена считается отдельно от IP
	assert.Equal(t, http.StatusOK, send("10.0.0.1:1000", "c1"))
	assert.Equal(t, http.StatusTooManyRequests, send("10.0.0.2:1000", "c1"))
}

func TestRateLimitMiddleware_Disabled(t *testing.T) {
	handler := RateLimitMiddleware(0, time.Minute, setupTestLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{"forwarded chain", map[string]string{"X-Forwarded-For": "203.0.113.1, 10.0.0.1"}, "10.0.0.9:1", "203.0.113.1"},
		{"real ip", map[string]string{"X-Real-IP": "203.0.113.2"}, "10.0.0.9:1", "203.0.113.2"},
		{"remote addr", nil, "10.0.0.9:1", "10.0.0.9:1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, getClientIP(req))
		})
	}
}

func TestRecoveryMiddleware(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	handler := RecoveryMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	w := httptest.NewRecorder()
	assert.NotPanics(t, func() {
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/sync/delta", nil))
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var resp api.ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "internal server error", resp.Error)
	assert.Contains(t, buf.String(), "Panic recovered")
	assert.Contains(t, buf.String(), "boom")
}
