// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"log/slog"
	"net/http"

	"github.com/xwalt19/webblog-sub001/internal/model"
	"github.com/xwalt19/webblog-sub001/internal/store"
)

// ListTeamMembers handles GET /api/v1/team.
func (h *Handler) ListTeamMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.queries.ListTeamMembers(r.Context())
	if err != nil {
		slog.Error("failed to list team members", "error", err)
		WriteInternalError(w, "Failed to list team members")
		return
	}
	if members == nil {
		members = []model.TeamMember{}
	}
	WriteSuccess(w, members, nil)
}

// TeamMemberRequest is the request body for team member mutations.
type TeamMemberRequest struct {
	Name     string `json:"name"`
	RoleKey  string `json:"role_key"`
	PhotoURL string `json:"photo_url,omitempty"`
}

func (req *TeamMemberRequest) validate() map[string]string {
	fieldErrors := make(map[string]string)
	if req.Name == "" {
		fieldErrors["name"] = "Name is required"
	}
	if req.RoleKey == "" {
		fieldErrors["role_key"] = "Role is required"
	}
	if len(fieldErrors) > 0 {
		return fieldErrors
	}
	return nil
}

// CreateTeamMember handles POST /api/v1/admin/team.
// New members append to the end of the page.
func (h *Handler) CreateTeamMember(w http.ResponseWriter, r *http.Request) {
	var req TeamMemberRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if fieldErrors := req.validate(); fieldErrors != nil {
		WriteValidationError(w, fieldErrors)
		return
	}

	member, err := h.queries.CreateTeamMember(r.Context(), store.CreateTeamMemberParams{
		Name:     req.Name,
		RoleKey:  req.RoleKey,
		PhotoURL: req.PhotoURL,
	})
	if err != nil {
		slog.Error("failed to create team member", "error", err)
		WriteInternalError(w, "Failed to create team member")
		return
	}
	WriteCreated(w, member)
}

// UpdateTeamMember handles PUT /api/v1/admin/team/{id}.
func (h *Handler) UpdateTeamMember(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	existing, ok := requireEntityByID(w, r, "team member", func(id int64) (model.TeamMember, error) {
		return h.queries.GetTeamMember(ctx, id)
	})
	if !ok {
		return
	}

	var req TeamMemberRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if fieldErrors := req.validate(); fieldErrors != nil {
		WriteValidationError(w, fieldErrors)
		return
	}

	member, err := h.queries.UpdateTeamMember(ctx, store.UpdateTeamMemberParams{
		ID:       existing.ID,
		Name:     req.Name,
		RoleKey:  req.RoleKey,
		PhotoURL: req.PhotoURL,
	})
	if err != nil {
		slog.Error("failed to update team member", "error", err, "member_id", existing.ID)
		WriteInternalError(w, "Failed to update team member")
		return
	}
	WriteSuccess(w, member, nil)
}

// ReorderTeamMembersRequest carries the full member ordering.
type ReorderTeamMembersRequest struct {
	IDs []int64 `json:"ids"`
}

// ReorderTeamMembers handles PUT /api/v1/admin/team/order.
func (h *Handler) ReorderTeamMembers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req ReorderTeamMembersRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if len(req.IDs) == 0 {
		WriteBadRequest(w, "ids is required", nil)
		return
	}

	if err := h.queries.ReorderTeamMembers(ctx, req.IDs); err != nil {
		slog.Error("failed to reorder team members", "error", err)
		WriteInternalError(w, "Failed to reorder team members")
		return
	}

	members, err := h.queries.ListTeamMembers(ctx)
	if err != nil {
		WriteInternalError(w, "Failed to list team members")
		return
	}
	WriteSuccess(w, members, nil)
}

// DeleteTeamMember handles DELETE /api/v1/admin/team/{id}.
func (h *Handler) DeleteTeamMember(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	member, ok := requireEntityByID(w, r, "team member", func(id int64) (model.TeamMember, error) {
		return h.queries.GetTeamMember(ctx, id)
	})
	if !ok {
		return
	}

	if err := h.queries.DeleteTeamMember(ctx, member.ID); err != nil {
		slog.Error("failed to delete team member", "error", err, "member_id", member.ID)
		WriteInternalError(w, "Failed to delete team member")
		return
	}

	if member.PhotoURL != "" {
		if err := h.media.Delete(member.PhotoURL); err != nil {
			slog.Warn("failed to delete team member photo", "error", err, "url", member.PhotoURL)
		}
	}

	WriteSuccess(w, map[string]bool{"deleted": true}, nil)
}
