// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/xwalt19/webblog-sub001/internal/model"
	"github.com/xwalt19/webblog-sub001/internal/store"
)

// EventResponse is an event log entry in API responses.
type EventResponse struct {
	ID        int64           `json:"id"`
	Level     string          `json:"level"`
	Category  string          `json:"category"`
	Message   string          `json:"message"`
	UserID    *int64          `json:"user_id,omitempty"`
	Metadata  json.RawMessage `json:"metadata,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

func eventToResponse(e model.Event) EventResponse {
	resp := EventResponse{
		ID:        e.ID,
		Level:     e.Level,
		Category:  e.Category,
		Message:   e.Message,
		CreatedAt: e.CreatedAt,
	}
	if e.UserID.Valid {
		id := e.UserID.Int64
		resp.UserID = &id
	}
	if e.Metadata != "" && e.Metadata != "{}" {
		resp.Metadata = json.RawMessage(e.Metadata)
	}
	return resp
}

// ListEvents handles GET /api/v1/admin/events?level=&category=.
// Newest entries first.
func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	page := ParsePageParam(r)
	perPage := ParsePerPageParam(r, 50, 200)

	level := r.URL.Query().Get("level")
	category := r.URL.Query().Get("category")

	events, err := h.queries.ListEvents(ctx, store.ListEventsParams{
		Level:    level,
		Category: category,
		Limit:    int64(perPage),
		Offset:   int64((page - 1) * perPage),
	})
	if err != nil {
		slog.Error("failed to list events", "error", err)
		WriteInternalError(w, "Failed to list events")
		return
	}
	total, err := h.queries.CountEvents(ctx, level, category)
	if err != nil {
		WriteInternalError(w, "Failed to list events")
		return
	}

	responses := make([]EventResponse, 0, len(events))
	for _, e := range events {
		responses = append(responses, eventToResponse(e))
	}
	WriteSuccess(w, responses, newMeta(total, page, perPage))
}
