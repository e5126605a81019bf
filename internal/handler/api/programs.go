// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/xwalt19/webblog-sub001/internal/daterange"
	"github.com/xwalt19/webblog-sub001/internal/middleware"
	"github.com/xwalt19/webblog-sub001/internal/model"
	"github.com/xwalt19/webblog-sub001/internal/store"
	"github.com/xwalt19/webblog-sub001/internal/util"
)

// ProgramResponse is a program with its ordered child lists and a
// human-readable Indonesian schedule string.
type ProgramResponse struct {
	ID           int64               `json:"id"`
	Slug         string              `json:"slug"`
	Kind         string              `json:"kind"`
	TitleKey     string              `json:"title_key"`
	Description  string              `json:"description,omitempty"`
	ImageURL     string              `json:"image_url,omitempty"`
	StartDate    *time.Time          `json:"start_date,omitempty"`
	EndDate      *time.Time          `json:"end_date,omitempty"`
	StartTime    string              `json:"start_time,omitempty"`
	EndTime      string              `json:"end_time,omitempty"`
	Schedule     string              `json:"schedule,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
	Topics       []model.Topic       `json:"topics"`
	PriceTiers   []model.PriceTier   `json:"price_tiers"`
	FAQItems     []model.FAQItem     `json:"faq_items"`
	RundownItems []model.RundownItem `json:"rundown_items"`
}

// programToResponse converts a program and loads its children in order.
func (h *Handler) programToResponse(ctx context.Context, p model.Program) (ProgramResponse, error) {
	resp := ProgramResponse{
		ID:          p.ID,
		Slug:        p.Slug,
		Kind:        p.Kind,
		TitleKey:    p.TitleKey,
		Description: p.Description,
		ImageURL:    p.ImageURL,
		StartDate:   util.TimePtrFromNull(p.StartDate),
		EndDate:     util.TimePtrFromNull(p.EndDate),
		StartTime:   p.StartTime,
		EndTime:     p.EndTime,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	resp.Schedule = daterange.Format(resp.StartDate, resp.EndDate, p.StartTime, p.EndTime)

	var err error
	if resp.Topics, err = h.queries.ListProgramTopics(ctx, p.ID); err != nil {
		return resp, err
	}
	if resp.PriceTiers, err = h.queries.ListProgramPriceTiers(ctx, p.ID); err != nil {
		return resp, err
	}
	if resp.FAQItems, err = h.queries.ListProgramFAQItems(ctx, p.ID); err != nil {
		return resp, err
	}
	if resp.RundownItems, err = h.queries.ListProgramRundownItems(ctx, p.ID); err != nil {
		return resp, err
	}

	if resp.Topics == nil {
		resp.Topics = []model.Topic{}
	}
	if resp.PriceTiers == nil {
		resp.PriceTiers = []model.PriceTier{}
	}
	if resp.FAQItems == nil {
		resp.FAQItems = []model.FAQItem{}
	}
	if resp.RundownItems == nil {
		resp.RundownItems = []model.RundownItem{}
	}
	return resp, nil
}

// ListPrograms handles GET /api/v1/programs?kind=course|camp|webinar.
func (h *Handler) ListPrograms(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	kind := r.URL.Query().Get("kind")
	switch kind {
	case "", model.ProgramKindCourse, model.ProgramKindCamp, model.ProgramKindWebinar:
	default:
		WriteBadRequest(w, "Unknown program kind", nil)
		return
	}

	programs, err := h.queries.ListPrograms(ctx, kind)
	if err != nil {
		slog.Error("failed to list programs", "error", err)
		WriteInternalError(w, "Failed to list programs")
		return
	}

	responses := make([]ProgramResponse, 0, len(programs))
	for _, p := range programs {
		resp, err := h.programToResponse(ctx, p)
		if err != nil {
			slog.Error("failed to load program children", "error", err, "program_id", p.ID)
			WriteInternalError(w, "Failed to list programs")
			return
		}
		responses = append(responses, resp)
	}

	WriteSuccess(w, responses, nil)
}

// GetProgramBySlug handles GET /api/v1/programs/slug/{slug}.
func (h *Handler) GetProgramBySlug(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	slug := chi.URLParam(r, "slug")
	if slug == "" {
		WriteBadRequest(w, "Slug is required", nil)
		return
	}

	program, err := h.queries.GetProgramBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Program not found")
		} else {
			WriteInternalError(w, "Failed to retrieve program")
		}
		return
	}

	resp, err := h.programToResponse(ctx, program)
	if err != nil {
		WriteInternalError(w, "Failed to retrieve program")
		return
	}
	WriteSuccess(w, resp, nil)
}

// Child item payloads. Order comes from slice position; order_index in the
// stored rows is rewritten densely from 0 on every save.

type TopicRequest struct {
	TitleKey string `json:"title_key"`
}

type PriceTierRequest struct {
	NameKey  string `json:"name_key"`
	Price    int64  `json:"price"`
	Features string `json:"features,omitempty"`
}

type FAQItemRequest struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type RundownItemRequest struct {
	Time     string `json:"time"`
	Activity string `json:"activity"`
}

// ProgramRequest is the request body for creating or updating a program
// together with its child lists.
type ProgramRequest struct {
	Slug         string               `json:"slug,omitempty"`
	Kind         string               `json:"kind"`
	TitleKey     string               `json:"title_key"`
	Description  string               `json:"description,omitempty"`
	ImageURL     string               `json:"image_url,omitempty"`
	StartDate    *time.Time           `json:"start_date,omitempty"`
	EndDate      *time.Time           `json:"end_date,omitempty"`
	StartTime    string               `json:"start_time,omitempty"`
	EndTime      string               `json:"end_time,omitempty"`
	Topics       []TopicRequest       `json:"topics"`
	PriceTiers   []PriceTierRequest   `json:"price_tiers"`
	FAQItems     []FAQItemRequest     `json:"faq_items"`
	RundownItems []RundownItemRequest `json:"rundown_items"`
}

func validateProgramRequest(req *ProgramRequest) map[string]string {
	fieldErrors := make(map[string]string)
	if req.TitleKey == "" {
		fieldErrors["title_key"] = "Title is required"
	}
	switch req.Kind {
	case model.ProgramKindCourse, model.ProgramKindCamp, model.ProgramKindWebinar:
	default:
		fieldErrors["kind"] = "Kind must be course, camp or webinar"
	}
	if req.Slug == "" {
		req.Slug = util.Slugify(req.TitleKey)
	}
	if !util.IsValidSlug(req.Slug) {
		fieldErrors["slug"] = "Invalid slug"
	}
	if len(fieldErrors) > 0 {
		return fieldErrors
	}
	return nil
}

// saveProgramChildren replaces all four child lists inside one transaction.
func (h *Handler) saveProgramChildren(ctx context.Context, programID int64, req ProgramRequest) error {
	tx, err := h.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	q := h.queries.WithTx(tx)

	topics := make([]model.Topic, len(req.Topics))
	for i, t := range req.Topics {
		topics[i] = model.Topic{TitleKey: t.TitleKey}
	}
	if err := q.ReplaceProgramTopics(ctx, programID, topics); err != nil {
		return err
	}

	tiers := make([]model.PriceTier, len(req.PriceTiers))
	for i, t := range req.PriceTiers {
		tiers[i] = model.PriceTier{NameKey: t.NameKey, Price: t.Price, Features: t.Features}
	}
	if err := q.ReplaceProgramPriceTiers(ctx, programID, tiers); err != nil {
		return err
	}

	faqs := make([]model.FAQItem, len(req.FAQItems))
	for i, f := range req.FAQItems {
		faqs[i] = model.FAQItem{Question: f.Question, Answer: f.Answer}
	}
	if err := q.ReplaceProgramFAQItems(ctx, programID, faqs); err != nil {
		return err
	}

	rundown := make([]model.RundownItem, len(req.RundownItems))
	for i, item := range req.RundownItems {
		rundown[i] = model.RundownItem{Time: item.Time, Activity: item.Activity}
	}
	if err := q.ReplaceProgramRundownItems(ctx, programID, rundown); err != nil {
		return err
	}

	return tx.Commit()
}

// CreateProgram handles POST /api/v1/admin/programs.
func (h *Handler) CreateProgram(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req ProgramRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if fieldErrors := validateProgramRequest(&req); fieldErrors != nil {
		WriteValidationError(w, fieldErrors)
		return
	}

	if _, err := h.queries.GetProgramBySlug(ctx, req.Slug); err == nil {
		WriteValidationError(w, map[string]string{"slug": "Slug already exists"})
		return
	} else if !errors.Is(err, sql.ErrNoRows) {
		WriteInternalError(w, "Failed to check slug")
		return
	}

	now := time.Now().UTC()
	program, err := h.queries.CreateProgram(ctx, store.CreateProgramParams{
		Slug:        req.Slug,
		Kind:        req.Kind,
		TitleKey:    req.TitleKey,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		StartDate:   util.NullTimeFromPtr(req.StartDate),
		EndDate:     util.NullTimeFromPtr(req.EndDate),
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		slog.Error("failed to create program", "error", err)
		WriteInternalError(w, "Failed to create program")
		return
	}

	if err := h.saveProgramChildren(ctx, program.ID, req); err != nil {
		slog.Error("failed to save program children", "error", err, "program_id", program.ID)
		WriteInternalError(w, "Failed to save program")
		return
	}

	slog.Info("program created",
		"category", model.EventCategoryContent,
		"program_id", program.ID,
		"slug", program.Slug,
		"user_id", middleware.GetUserID(r),
	)

	resp, err := h.programToResponse(ctx, program)
	if err != nil {
		WriteInternalError(w, "Failed to retrieve program")
		return
	}
	WriteJSON(w, http.StatusCreated, Response{Data: resp})
}

// UpdateProgram handles PUT /api/v1/admin/programs/{id}.
// Parent fields and all child lists are replaced as a unit.
func (h *Handler) UpdateProgram(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	existing, ok := requireEntityByID(w, r, "program", func(id int64) (model.Program, error) {
		return h.queries.GetProgramByID(ctx, id)
	})
	if !ok {
		return
	}

	var req ProgramRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if fieldErrors := validateProgramRequest(&req); fieldErrors != nil {
		WriteValidationError(w, fieldErrors)
		return
	}

	if req.Slug != existing.Slug {
		if _, err := h.queries.GetProgramBySlug(ctx, req.Slug); err == nil {
			WriteValidationError(w, map[string]string{"slug": "Slug already exists"})
			return
		} else if !errors.Is(err, sql.ErrNoRows) {
			WriteInternalError(w, "Failed to check slug")
			return
		}
	}

	program, err := h.queries.UpdateProgram(ctx, store.UpdateProgramParams{
		ID:          existing.ID,
		Slug:        req.Slug,
		Kind:        req.Kind,
		TitleKey:    req.TitleKey,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		StartDate:   util.NullTimeFromPtr(req.StartDate),
		EndDate:     util.NullTimeFromPtr(req.EndDate),
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		UpdatedAt:   time.Now().UTC(),
	})
	if err != nil {
		slog.Error("failed to update program", "error", err, "program_id", existing.ID)
		WriteInternalError(w, "Failed to update program")
		return
	}

	if err := h.saveProgramChildren(ctx, program.ID, req); err != nil {
		slog.Error("failed to save program children", "error", err, "program_id", program.ID)
		WriteInternalError(w, "Failed to save program")
		return
	}

	resp, err := h.programToResponse(ctx, program)
	if err != nil {
		WriteInternalError(w, "Failed to retrieve program")
		return
	}
	WriteSuccess(w, resp, nil)
}

// DeleteProgram handles DELETE /api/v1/admin/programs/{id}.
// Children go with the parent via the foreign key cascade.
func (h *Handler) DeleteProgram(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	program, ok := requireEntityByID(w, r, "program", func(id int64) (model.Program, error) {
		return h.queries.GetProgramByID(ctx, id)
	})
	if !ok {
		return
	}

	if err := h.queries.DeleteProgram(ctx, program.ID); err != nil {
		slog.Error("failed to delete program", "error", err, "program_id", program.ID)
		WriteInternalError(w, "Failed to delete program")
		return
	}

	slog.Info("program deleted",
		"category", model.EventCategoryContent,
		"program_id", program.ID,
		"slug", program.Slug,
		"user_id", middleware.GetUserID(r),
	)

	WriteSuccess(w, map[string]bool{"deleted": true}, nil)
}
