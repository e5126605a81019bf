// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/xwalt19/webblog-sub001/internal/auth"
	"github.com/xwalt19/webblog-sub001/internal/middleware"
	"github.com/xwalt19/webblog-sub001/internal/model"
)

// LoginRequest is the request body for POST /api/v1/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse is the authenticated user as exposed to the admin SPA.
type UserResponse struct {
	ID          int64      `json:"id"`
	Email       string     `json:"email"`
	Name        string     `json:"name"`
	Role        string     `json:"role"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

func userToResponse(u model.User) UserResponse {
	resp := UserResponse{
		ID:    u.ID,
		Email: u.Email,
		Name:  u.Name,
		Role:  u.Role,
	}
	if u.LastLoginAt.Valid {
		t := u.LastLoginAt.Time
		resp.LastLoginAt = &t
	}
	return resp
}

// Login handles POST /api/v1/auth/login.
// Credentials never distinguish unknown users from wrong passwords.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" || req.Password == "" {
		WriteBadRequest(w, "Email and password are required", nil)
		return
	}

	user, err := h.queries.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			slog.Warn("login failed: user not found",
				"category", model.EventCategoryAuth, "email", req.Email)
		} else {
			slog.Error("database error during login", "error", err)
		}
		WriteUnauthorized(w, "Invalid credentials")
		return
	}

	valid, err := auth.CheckPassword(req.Password, user.PasswordHash)
	if err != nil || !valid {
		slog.Warn("login failed: invalid password",
			"category", model.EventCategoryAuth, "user_id", user.ID, "email", user.Email)
		WriteUnauthorized(w, "Invalid credentials")
		return
	}

	// Re-hash if the stored hash was made with outdated parameters.
	if auth.NeedsRehash(user.PasswordHash) {
		if newHash, hashErr := auth.HashPassword(req.Password); hashErr == nil {
			if err := h.queries.UpdateUserPassword(ctx, user.ID, newHash, time.Now().UTC()); err != nil {
				slog.Error("failed to re-hash password", "error", err, "user_id", user.ID)
			}
		}
	}

	if err := h.queries.TouchUserLogin(ctx, user.ID, time.Now().UTC()); err != nil {
		slog.Error("failed to update last login time", "error", err, "user_id", user.ID)
		// Login still proceeds.
	}

	// Fresh session token prevents fixation.
	if err := h.sessions.RenewToken(ctx); err != nil {
		slog.Error("session renewal error", "error", err)
		WriteInternalError(w, "Failed to establish session")
		return
	}
	h.sessions.Put(ctx, middleware.SessionKeyUserID, user.ID)

	slog.Info("user logged in",
		"category", model.EventCategoryAuth, "user_id", user.ID, "email", user.Email)

	WriteSuccess(w, userToResponse(user), nil)
}

// Logout handles POST /api/v1/auth/logout.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(r)

	if err := h.sessions.Destroy(ctx); err != nil {
		slog.Error("failed to destroy session", "error", err)
		WriteInternalError(w, "Failed to log out")
		return
	}

	if userID != 0 {
		slog.Info("user logged out",
			"category", model.EventCategoryAuth, "user_id", userID)
	}

	WriteSuccess(w, map[string]bool{"logged_out": true}, nil)
}

// Me handles GET /api/v1/auth/me.
// The SPA calls this on load to decide between the login screen and the
// back office.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	if user == nil {
		WriteUnauthorized(w, "Not authenticated")
		return
	}
	WriteSuccess(w, userToResponse(*user), nil)
}
