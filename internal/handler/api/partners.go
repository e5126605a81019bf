// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"log/slog"
	"net/http"

	"github.com/xwalt19/webblog-sub001/internal/model"
	"github.com/xwalt19/webblog-sub001/internal/store"
)

// ListPartners handles GET /api/v1/partners?category=.
func (h *Handler) ListPartners(w http.ResponseWriter, r *http.Request) {
	partners, err := h.queries.ListPartners(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		slog.Error("failed to list partners", "error", err)
		WriteInternalError(w, "Failed to list partners")
		return
	}
	if partners == nil {
		partners = []model.Partner{}
	}
	WriteSuccess(w, partners, nil)
}

// PartnerRequest is the request body for partner mutations.
type PartnerRequest struct {
	NameKey  string `json:"name_key"`
	LogoURL  string `json:"logo_url"`
	SiteURL  string `json:"site_url,omitempty"`
	Category string `json:"category,omitempty"`
}

func (req *PartnerRequest) validate() map[string]string {
	fieldErrors := make(map[string]string)
	if req.NameKey == "" {
		fieldErrors["name_key"] = "Name is required"
	}
	if req.LogoURL == "" {
		fieldErrors["logo_url"] = "Logo is required"
	}
	if len(fieldErrors) > 0 {
		return fieldErrors
	}
	return nil
}

// CreatePartner handles POST /api/v1/admin/partners.
func (h *Handler) CreatePartner(w http.ResponseWriter, r *http.Request) {
	var req PartnerRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if fieldErrors := req.validate(); fieldErrors != nil {
		WriteValidationError(w, fieldErrors)
		return
	}

	partner, err := h.queries.CreatePartner(r.Context(), store.CreatePartnerParams{
		NameKey:  req.NameKey,
		LogoURL:  req.LogoURL,
		SiteURL:  req.SiteURL,
		Category: req.Category,
	})
	if err != nil {
		slog.Error("failed to create partner", "error", err)
		WriteInternalError(w, "Failed to create partner")
		return
	}
	WriteCreated(w, partner)
}

// UpdatePartner handles PUT /api/v1/admin/partners/{id}.
func (h *Handler) UpdatePartner(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	existing, ok := requireEntityByID(w, r, "partner", func(id int64) (model.Partner, error) {
		return h.queries.GetPartner(ctx, id)
	})
	if !ok {
		return
	}

	var req PartnerRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if fieldErrors := req.validate(); fieldErrors != nil {
		WriteValidationError(w, fieldErrors)
		return
	}

	partner, err := h.queries.UpdatePartner(ctx, store.UpdatePartnerParams{
		ID:       existing.ID,
		NameKey:  req.NameKey,
		LogoURL:  req.LogoURL,
		SiteURL:  req.SiteURL,
		Category: req.Category,
	})
	if err != nil {
		slog.Error("failed to update partner", "error", err, "partner_id", existing.ID)
		WriteInternalError(w, "Failed to update partner")
		return
	}
	WriteSuccess(w, partner, nil)
}

// DeletePartner handles DELETE /api/v1/admin/partners/{id}.
func (h *Handler) DeletePartner(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	partner, ok := requireEntityByID(w, r, "partner", func(id int64) (model.Partner, error) {
		return h.queries.GetPartner(ctx, id)
	})
	if !ok {
		return
	}

	if err := h.queries.DeletePartner(ctx, partner.ID); err != nil {
		slog.Error("failed to delete partner", "error", err, "partner_id", partner.ID)
		WriteInternalError(w, "Failed to delete partner")
		return
	}
	WriteSuccess(w, map[string]bool{"deleted": true}, nil)
}
