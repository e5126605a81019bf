// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides HTTP middleware for authentication,
// authorization, CORS and rate limiting.
package middleware

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/alexedwards/scs/v2"

	"github.com/xwalt19/webblog-sub001/internal/model"
	"github.com/xwalt19/webblog-sub001/internal/store"
)

// ContextKey is a custom type for context keys to avoid collisions.
type ContextKey string

// ContextKeyUser is the context key for the authenticated user.
const ContextKeyUser ContextKey = "user"

// SessionKeyUserID is the session key under which the user ID is stored.
const SessionKeyUserID = "user_id"

// APIError represents a JSON error response.
type APIError struct {
	Error struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details,omitempty"`
	} `json:"error"`
}

// WriteAPIError writes a JSON error response.
func WriteAPIError(w http.ResponseWriter, statusCode int, code, message string, details map[string]string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	apiErr := APIError{}
	apiErr.Error.Code = code
	apiErr.Error.Message = message
	apiErr.Error.Details = details

	_ = json.NewEncoder(w).Encode(apiErr)
}

// LoadUser loads the authenticated user (if any) into the request context.
// It does not enforce authentication; handlers that require it use
// RequireRole. A session pointing at a deleted user is destroyed.
func LoadUser(sessionManager *scs.SessionManager, db *sql.DB) func(http.Handler) http.Handler {
	queries := store.New(db)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := sessionManager.GetInt64(r.Context(), SessionKeyUserID)
			if userID == 0 {
				next.ServeHTTP(w, r)
				return
			}

			user, err := queries.GetUserByID(r.Context(), userID)
			if err != nil {
				slog.Warn("session references unknown user", "user_id", userID, "error", err)
				_ = sessionManager.Destroy(r.Context())
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyUser, &user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUser returns the authenticated user from the request context, or nil.
func GetUser(r *http.Request) *model.User {
	user, _ := r.Context().Value(ContextKeyUser).(*model.User)
	return user
}

// GetUserID returns the authenticated user's ID, or 0 if not authenticated.
func GetUserID(r *http.Request) int64 {
	if user := GetUser(r); user != nil {
		return user.ID
	}
	return 0
}

// roleLevel maps role names to privilege levels for comparison.
func roleLevel(role string) int {
	switch role {
	case model.RoleAdmin:
		return 2
	case model.RoleEditor:
		return 1
	default:
		return 0
	}
}

// RequireRole returns middleware that requires the authenticated user to
// have at least the given role. Unauthenticated requests get 401,
// insufficient roles get 403. Denials are logged so they surface in the
// event log.
func RequireRole(minRole string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := GetUser(r)
			if user == nil {
				WriteAPIError(w, http.StatusUnauthorized, "unauthorized", "Authentication required", nil)
				return
			}

			if roleLevel(user.Role) < roleLevel(minRole) {
				slog.Warn("access denied: insufficient role",
					"category", "auth",
					"user_id", user.ID,
					"user_role", user.Role,
					"required_role", minRole,
					"path", r.URL.Path,
				)
				WriteAPIError(w, http.StatusForbidden, "forbidden", "Insufficient permissions", nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin requires the admin role.
func RequireAdmin() func(http.Handler) http.Handler {
	return RequireRole(model.RoleAdmin)
}

// RequireEditor requires at least the editor role.
func RequireEditor() func(http.Handler) http.Handler {
	return RequireRole(model.RoleEditor)
}
