// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package api provides the REST handlers for the public site and the
// admin back-office. Every response is JSON; the admin SPA and the
// public frontend are both headless consumers.
package api

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	gmhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/xwalt19/webblog-sub001/internal/cache"
	"github.com/xwalt19/webblog-sub001/internal/realtime"
	"github.com/xwalt19/webblog-sub001/internal/service"
	"github.com/xwalt19/webblog-sub001/internal/store"
)

// Handler holds shared dependencies for all API handlers.
type Handler struct {
	db        *sql.DB
	queries   *store.Queries
	cache     cache.Cacher
	media     *service.MediaService
	hub       *realtime.Hub
	sessions  *scs.SessionManager
	markdown  goldmark.Markdown
	sanitizer *bluemonday.Policy
}

// NewHandler creates a new API handler.
func NewHandler(db *sql.DB, cacher cache.Cacher, media *service.MediaService, hub *realtime.Hub, sessions *scs.SessionManager) *Handler {
	return &Handler{
		db:       db,
		queries:  store.New(db),
		cache:    cacher,
		media:    media,
		hub:      hub,
		sessions: sessions,
		markdown: goldmark.New(
			goldmark.WithRendererOptions(gmhtml.WithHardWraps()),
		),
		sanitizer: bluemonday.UGCPolicy(),
	}
}

// renderMarkdown converts a markdown body to sanitized HTML.
func (h *Handler) renderMarkdown(src string) string {
	var buf bytes.Buffer
	if err := h.markdown.Convert([]byte(src), &buf); err != nil {
		return ""
	}
	return h.sanitizer.Sanitize(buf.String())
}

// Response is the standard API response wrapper.
type Response struct {
	Data any   `json:"data,omitempty"`
	Meta *Meta `json:"meta,omitempty"`
}

// Meta contains pagination and other metadata.
type Meta struct {
	Total   int64 `json:"total,omitempty"`
	Page    int   `json:"page,omitempty"`
	PerPage int   `json:"per_page,omitempty"`
	Pages   int   `json:"pages,omitempty"`
}

// newMeta builds pagination metadata from a total row count.
func newMeta(total int64, page, perPage int) *Meta {
	pages := int(total) / perPage
	if int(total)%perPage != 0 {
		pages++
	}
	return &Meta{Total: total, Page: page, PerPage: perPage, Pages: pages}
}

// ErrorResponse is the standard API error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information.
type ErrorDetail struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteSuccess writes a successful JSON response.
func WriteSuccess(w http.ResponseWriter, data any, meta *Meta) {
	WriteJSON(w, http.StatusOK, Response{Data: data, Meta: meta})
}

// WriteCreated writes a 201 Created JSON response.
func WriteCreated(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusCreated, Response{Data: data})
}

// WriteError writes an error JSON response.
func WriteError(w http.ResponseWriter, statusCode int, code, message string, details map[string]string) {
	WriteJSON(w, statusCode, ErrorResponse{Error: ErrorDetail{
		Code:    code,
		Message: message,
		Details: details,
	}})
}

// WriteBadRequest writes a 400 Bad Request response.
func WriteBadRequest(w http.ResponseWriter, message string, details map[string]string) {
	WriteError(w, http.StatusBadRequest, "bad_request", message, details)
}

// WriteNotFound writes a 404 Not Found response.
func WriteNotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, "not_found", message, nil)
}

// WriteUnauthorized writes a 401 Unauthorized response.
func WriteUnauthorized(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusUnauthorized, "unauthorized", message, nil)
}

// WriteInternalError writes a 500 Internal Server Error response.
func WriteInternalError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, "internal_error", message, nil)
}

// WriteValidationError writes a 422 Unprocessable Entity response with field errors.
func WriteValidationError(w http.ResponseWriter, fieldErrors map[string]string) {
	WriteError(w, http.StatusUnprocessableEntity, "validation_error", "Validation failed", fieldErrors)
}

// ParseIDParam parses the {id} URL parameter as a positive int64.
func ParseIDParam(r *http.Request) (int64, error) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}

// ParsePageParam parses the "page" query parameter, defaulting to 1.
func ParsePageParam(r *http.Request) int {
	return parseIntParam(r, "page", 1, 1, 0)
}

// ParsePerPageParam parses "per_page", clamped to [1, maxPerPage].
func ParsePerPageParam(r *http.Request, defaultPerPage, maxPerPage int) int {
	return parseIntParam(r, "per_page", defaultPerPage, 1, maxPerPage)
}

func parseIntParam(r *http.Request, param string, defaultVal, minVal, maxVal int) int {
	str := r.URL.Query().Get(param)
	if str == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(str)
	if err != nil {
		return defaultVal
	}
	if minVal > 0 && val < minVal {
		return defaultVal
	}
	if maxVal > 0 && val > maxVal {
		return defaultVal
	}
	return val
}

// requireEntityByID parses an ID from the URL and fetches the entity.
// Returns the zero value and false when the response is already written.
func requireEntityByID[T any](w http.ResponseWriter, r *http.Request, entityName string, fetch func(id int64) (T, error)) (T, bool) {
	var zero T

	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid "+entityName+" ID", nil)
		return zero, false
	}

	entity, err := fetch(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Not found")
		} else {
			WriteInternalError(w, "Failed to retrieve "+entityName)
		}
		return zero, false
	}
	return entity, true
}

// decodeJSON decodes the request body into dst, writing a 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		WriteBadRequest(w, "Invalid JSON body", nil)
		return false
	}
	return true
}

// StatusResponse contains API status information.
type StatusResponse struct {
	Status  string    `json:"status"`
	Version string    `json:"version"`
	Time    time.Time `json:"time"`
}

// Status handles GET /api/v1/status.
func (h *Handler) Status(w http.ResponseWriter, _ *http.Request) {
	WriteSuccess(w, StatusResponse{Status: "ok", Version: "v1", Time: time.Now().UTC()}, nil)
}
