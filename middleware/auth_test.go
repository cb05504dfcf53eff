package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGatewayAuthMiddleware(t *testing.T) {
	t.Setenv("GATEWAY_TOKEN", "secret-token")

	var gotUserID int64
	handler := GatewayAuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, _ = GetUserID(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name       string
		auth       string
		userHeader string
		wantStatus int
	}{
		{"valid", "Bearer secret-token", "42", http.StatusOK},
		{"missing header", "", "42", http.StatusUnauthorized},
		{"wrong token", "Bearer nope", "42", http.StatusUnauthorized},
		{"no bearer prefix", "secret-token", "42", http.StatusUnauthorized},
		{"missing user id", "Bearer secret-token", "", http.StatusUnauthorized},
		{"bad user id", "Bearer secret-token", "abc", http.StatusUnauthorized},
		{"negative user id", "Bearer secret-token", "-5", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotUserID = 0
			req := httptest.NewRequest("GET", "/api/v1/streaks", nil)
			if tt.auth != "" {
				req.Header.Set("Authorization", tt.auth)
			}
			if tt.userHeader != "" {
				req.Header.Set("X-User-ID", tt.userHeader)
			}

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusOK && gotUserID != 42 {
				t.Fatalf("user id in context = %d, want 42", gotUserID)
			}
		})
	}
}

func TestGatewayAuthMiddlewareUnsetToken(t *testing.T) {
	t.Setenv("GATEWAY_TOKEN", "")

	handler := GatewayAuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run without a configured token")
	}))

	req := httptest.NewRequest("GET", "/api/v1/streaks", nil)
	req.Header.Set("Authorization", "Bearer ")
	req.Header.Set("X-User-ID", "42")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestAdminAuthMiddleware(t *testing.T) {
	t.Setenv("GATEWAY_TOKEN", "secret-token")
	t.Setenv("ADMIN_IDS", "100, 200")

	handler := GatewayAuthMiddleware(AdminAuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})))

	tests := []struct {
		name       string
		userID     string
		wantStatus int
	}{
		{"admin", "100", http.StatusOK},
		{"second admin", "200", http.StatusOK},
		{"regular user", "42", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/api/v1/admin/stats", nil)
			req.Header.Set("Authorization", "Bearer secret-token")
			req.Header.Set("X-User-ID", tt.userID)

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}
