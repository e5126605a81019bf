// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/xwalt19/webblog-sub001/internal/model"
)

func contextWithUser(r *http.Request, user *model.User) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), ContextKeyUser, user))
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name       string
		user       *model.User
		minRole    string
		wantStatus int
		wantCode   string
	}{
		{
			name:       "unauthenticated",
			user:       nil,
			minRole:    model.RoleEditor,
			wantStatus: http.StatusUnauthorized,
			wantCode:   "unauthorized",
		},
		{
			name:       "editor accessing editor route",
			user:       &model.User{ID: 1, Role: model.RoleEditor},
			minRole:    model.RoleEditor,
			wantStatus: http.StatusOK,
		},
		{
			name:       "editor accessing admin route",
			user:       &model.User{ID: 1, Role: model.RoleEditor},
			minRole:    model.RoleAdmin,
			wantStatus: http.StatusForbidden,
			wantCode:   "forbidden",
		},
		{
			name:       "admin accessing editor route",
			user:       &model.User{ID: 2, Role: model.RoleAdmin},
			minRole:    model.RoleEditor,
			wantStatus: http.StatusOK,
		},
		{
			name:       "unknown role",
			user:       &model.User{ID: 3, Role: "viewer"},
			minRole:    model.RoleEditor,
			wantStatus: http.StatusForbidden,
			wantCode:   "forbidden",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin/posts", nil)
			if tt.user != nil {
				req = contextWithUser(req, tt.user)
			}
			rec := httptest.NewRecorder()

			RequireRole(tt.minRole)(okHandler()).ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantCode != "" {
				var apiErr APIError
				if err := json.Unmarshal(rec.Body.Bytes(), &apiErr); err != nil {
					t.Fatalf("decoding error body: %v", err)
				}
				if apiErr.Error.Code != tt.wantCode {
					t.Errorf("error code = %q, want %q", apiErr.Error.Code, tt.wantCode)
				}
			}
		})
	}
}

func TestGetUser(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if GetUser(req) != nil {
		t.Error("expected nil user on bare request")
	}
	if GetUserID(req) != 0 {
		t.Error("expected zero user ID on bare request")
	}

	user := &model.User{ID: 42, Role: model.RoleAdmin}
	req = contextWithUser(req, user)
	if got := GetUser(req); got == nil || got.ID != 42 {
		t.Errorf("GetUser = %+v, want ID 42", got)
	}
	if GetUserID(req) != 42 {
		t.Errorf("GetUserID = %d, want 42", GetUserID(req))
	}
}

func TestCORS(t *testing.T) {
	mw := CORS(CORSConfig{
		AllowedOrigins:   []string{"http://localhost:5173", "https://app.example.com"},
		AllowCredentials: true,
	})

	t.Run("allowed origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/posts", nil)
		req.Header.Set("Origin", "http://localhost:5173")
		rec := httptest.NewRecorder()

		mw(okHandler()).ServeHTTP(rec, req)

		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
			t.Errorf("Allow-Origin = %q", got)
		}
		if rec.Header().Get("Access-Control-Allow-Credentials") != "true" {
			t.Error("expected Allow-Credentials header")
		}
		if rec.Code != http.StatusOK {
			t.Errorf("status = %d", rec.Code)
		}
	})

	t.Run("disallowed origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/posts", nil)
		req.Header.Set("Origin", "https://evil.example.com")
		rec := httptest.NewRecorder()

		mw(okHandler()).ServeHTTP(rec, req)

		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
			t.Errorf("Allow-Origin = %q, want empty", got)
		}
		// Request still passes through; browsers enforce the policy.
		if rec.Code != http.StatusOK {
			t.Errorf("status = %d", rec.Code)
		}
	})

	t.Run("preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/posts", nil)
		req.Header.Set("Origin", "https://app.example.com")
		rec := httptest.NewRecorder()

		mw(okHandler()).ServeHTTP(rec, req)

		if rec.Code != http.StatusNoContent {
			t.Errorf("preflight status = %d, want 204", rec.Code)
		}
		if rec.Header().Get("Access-Control-Allow-Methods") == "" {
			t.Error("expected Allow-Methods header on preflight")
		}
	})

	t.Run("no origin header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/posts", nil)
		rec := httptest.NewRecorder()

		mw(okHandler()).ServeHTTP(rec, req)

		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
			t.Errorf("Allow-Origin = %q, want empty", got)
		}
	})

	t.Run("wildcard origin", func(t *testing.T) {
		wild := CORS(CORSConfig{AllowedOrigins: []string{"*"}})
		req := httptest.NewRequest(http.MethodGet, "/api/posts", nil)
		req.Header.Set("Origin", "https://anywhere.example.com")
		rec := httptest.NewRecorder()

		wild(okHandler()).ServeHTTP(rec, req)

		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://anywhere.example.com" {
			t.Errorf("Allow-Origin = %q", got)
		}
	})
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(1, 2)
	defer rl.Stop()
	mw := rl.Middleware()

	doRequest := func(ip string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
		req.Header.Set("X-Real-IP", ip)
		rec := httptest.NewRecorder()
		mw(okHandler()).ServeHTTP(rec, req)
		return rec.Code
	}

	// Burst of 2 allowed, third request from same IP is limited.
	if got := doRequest("10.0.0.1"); got != http.StatusOK {
		t.Errorf("first request status = %d", got)
	}
	if got := doRequest("10.0.0.1"); got != http.StatusOK {
		t.Errorf("second request status = %d", got)
	}
	if got := doRequest("10.0.0.1"); got != http.StatusTooManyRequests {
		t.Errorf("third request status = %d, want 429", got)
	}

	// Different IP has its own bucket.
	if got := doRequest("10.0.0.2"); got != http.StatusOK {
		t.Errorf("other IP status = %d", got)
	}
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{"x-real-ip wins", map[string]string{"X-Real-IP": "1.2.3.4", "X-Forwarded-For": "5.6.7.8"}, "9.9.9.9:1000", "1.2.3.4"},
		{"x-forwarded-for", map[string]string{"X-Forwarded-For": "5.6.7.8"}, "9.9.9.9:1000", "5.6.7.8"},
		{"remote addr fallback", nil, "9.9.9.9:1000", "9.9.9.9:1000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			if got := getClientIP(req); got != tt.want {
				t.Errorf("getClientIP = %q, want %q", got, tt.want)
			}
		})
	}
}
