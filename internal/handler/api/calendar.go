// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/xwalt19/webblog-sub001/internal/middleware"
	"github.com/xwalt19/webblog-sub001/internal/model"
	"github.com/xwalt19/webblog-sub001/internal/store"
)

// ListCalendar handles GET /api/v1/calendar?year=YYYY&month=M.
// Stored events merge with the bundled national holiday list for the
// requested month, sorted by date ascending. Month 0 returns the whole year.
func (h *Handler) ListCalendar(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	year := parseIntParam(r, "year", now.Year(), 1970, 2400)
	month := parseIntParam(r, "month", 0, 1, 12)

	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(1, 0, 0)
	if month != 0 {
		from = time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
		to = from.AddDate(0, 1, 0)
	}

	stored, err := h.queries.ListCalendarEvents(r.Context(), from, to)
	if err != nil {
		slog.Error("failed to list calendar events", "error", err)
		WriteInternalError(w, "Failed to list calendar events")
		return
	}

	// A stored holiday row on a date supersedes the bundled entry, so a
	// refreshed upstream import never shows the same holiday twice.
	storedHolidays := make(map[string]bool)
	for _, e := range stored {
		if e.IsHoliday {
			storedHolidays[e.Date.Format("2006-01-02")] = true
		}
	}

	merged := stored
	for _, holiday := range model.NationalHolidays(year) {
		if holiday.Date.Before(from) || !holiday.Date.Before(to) {
			continue
		}
		if storedHolidays[holiday.Date.Format("2006-01-02")] {
			continue
		}
		merged = append(merged, holiday)
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Date.Before(merged[j].Date)
	})
	if merged == nil {
		merged = []model.CalendarEvent{}
	}

	WriteSuccess(w, merged, nil)
}

// CalendarEventRequest is the request body for calendar event mutations.
type CalendarEventRequest struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Date        string `json:"date"` // YYYY-MM-DD
	IsHoliday   bool   `json:"is_holiday"`
}

func (req *CalendarEventRequest) validate() (time.Time, map[string]string) {
	fieldErrors := make(map[string]string)
	if req.Title == "" {
		fieldErrors["title"] = "Title is required"
	}
	date, err := time.ParseInLocation("2006-01-02", req.Date, time.UTC)
	if err != nil {
		fieldErrors["date"] = "Date must be YYYY-MM-DD"
	}
	if len(fieldErrors) > 0 {
		return time.Time{}, fieldErrors
	}
	return date, nil
}

// CreateCalendarEvent handles POST /api/v1/admin/calendar.
func (h *Handler) CreateCalendarEvent(w http.ResponseWriter, r *http.Request) {
	var req CalendarEventRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	date, fieldErrors := req.validate()
	if fieldErrors != nil {
		WriteValidationError(w, fieldErrors)
		return
	}

	event, err := h.queries.CreateCalendarEvent(r.Context(), store.CreateCalendarEventParams{
		Title:       req.Title,
		Description: req.Description,
		Date:        date,
		IsHoliday:   req.IsHoliday,
	})
	if err != nil {
		slog.Error("failed to create calendar event", "error", err)
		WriteInternalError(w, "Failed to create calendar event")
		return
	}

	slog.Info("calendar event created",
		"category", model.EventCategoryCalendar,
		"event_id", event.ID,
		"user_id", middleware.GetUserID(r),
	)

	WriteCreated(w, event)
}

// UpdateCalendarEvent handles PUT /api/v1/admin/calendar/{id}.
func (h *Handler) UpdateCalendarEvent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	existing, ok := requireEntityByID(w, r, "calendar event", func(id int64) (model.CalendarEvent, error) {
		return h.queries.GetCalendarEvent(ctx, id)
	})
	if !ok {
		return
	}

	var req CalendarEventRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	date, fieldErrors := req.validate()
	if fieldErrors != nil {
		WriteValidationError(w, fieldErrors)
		return
	}

	event, err := h.queries.UpdateCalendarEvent(ctx, store.UpdateCalendarEventParams{
		ID:          existing.ID,
		Title:       req.Title,
		Description: req.Description,
		Date:        date,
		IsHoliday:   req.IsHoliday,
	})
	if err != nil {
		slog.Error("failed to update calendar event", "error", err, "event_id", existing.ID)
		WriteInternalError(w, "Failed to update calendar event")
		return
	}

	WriteSuccess(w, event, nil)
}

// DeleteCalendarEvent handles DELETE /api/v1/admin/calendar/{id}.
func (h *Handler) DeleteCalendarEvent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	event, ok := requireEntityByID(w, r, "calendar event", func(id int64) (model.CalendarEvent, error) {
		return h.queries.GetCalendarEvent(ctx, id)
	})
	if !ok {
		return
	}

	if err := h.queries.DeleteCalendarEvent(ctx, event.ID); err != nil {
		slog.Error("failed to delete calendar event", "error", err, "event_id", event.ID)
		WriteInternalError(w, "Failed to delete calendar event")
		return
	}

	WriteSuccess(w, map[string]bool{"deleted": true}, nil)
}
