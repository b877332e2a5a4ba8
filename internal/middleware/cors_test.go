package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestCorsMiddlewareOrigins Проверяет разрешенные и запрещенные origins.
func TestCorsMiddlewareOrigins(t *testing.T) {
	tests := []struct {
		name            string
		origin          string
		wantAllowOrigin string
	}{
		{"localhost:3000", "http://localhost:3000", "http://localhost:3000"},
		{"vite dev server", "http://localhost:5173", "http://localhost:5173"},
		{"null для file://", "null", "null"},
		{"192.168.x.x", "http://192.168.1.15", "http://192.168.1.15"},
		{"10.x.x.x", "http://10.0.0.1", "http://10.0.0.1"},
		{"172.x.x.x", "http://172.16.0.1", "http://172.16.0.1"},
		{"внешний домен", "https://evil.example.com", ""},
		{"https для локальной сети", "https://192.168.1.15", ""},
		{"без origin", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nextCalled := false
			handler := CorsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				w.WriteHeader(http.StatusOK)
			}))

			r := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
			if tt.origin != "" {
				r.Header.Set("Origin", tt.origin)
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, r)

			assert.True(t, nextCalled)
			assert.Equal(t, tt.wantAllowOrigin, w.Header().Get("Access-Control-Allow-Origin"))
			assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
			assert.Equal(t, "X-Is-Updated", w.Header().Get("Access-Control-Expose-Headers"))
		})
	}
}

// TestCorsMiddlewarePreflight Проверяет, что preflight-запрос не доходит до обработчика.
func TestCorsMiddlewarePreflight(t *testing.T) {
	nextCalled := false
	handler := CorsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
	}))

	r := httptest.NewRequest(http.MethodOptions, "/api/dashboard/page", nil)
	r.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, r)

	assert.False(t, nextCalled)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "GET, POST, OPTIONS", w.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "86400", w.Header().Get("Access-Control-Max-Age"))
}
