// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/xwalt19/webblog-sub001/internal/model"
)

const programColumns = `id, slug, kind, title_key, description, image_url,
start_date, end_date, start_time, end_time, created_at, updated_at`

func scanProgram(row interface{ Scan(...any) error }) (model.Program, error) {
	var p model.Program
	err := row.Scan(&p.ID, &p.Slug, &p.Kind, &p.TitleKey, &p.Description,
		&p.ImageURL, &p.StartDate, &p.EndDate, &p.StartTime, &p.EndTime,
		&p.CreatedAt, &p.UpdatedAt)
	return p, err
}

const createProgram = `
INSERT INTO programs (slug, kind, title_key, description, image_url,
start_date, end_date, start_time, end_time, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING ` + programColumns

// CreateProgramParams holds the inputs for CreateProgram.
type CreateProgramParams struct {
	Slug        string
	Kind        string
	TitleKey    string
	Description string
	ImageURL    string
	StartDate   sql.NullTime
	EndDate     sql.NullTime
	StartTime   string
	EndTime     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CreateProgram inserts a program. Children are managed separately.
func (q *Queries) CreateProgram(ctx context.Context, arg CreateProgramParams) (model.Program, error) {
	row := q.db.QueryRowContext(ctx, createProgram,
		arg.Slug, arg.Kind, arg.TitleKey, arg.Description, arg.ImageURL,
		arg.StartDate, arg.EndDate, arg.StartTime, arg.EndTime,
		arg.CreatedAt, arg.UpdatedAt)
	return scanProgram(row)
}

const getProgramByID = `
SELECT ` + programColumns + ` FROM programs WHERE id = ?
`

// GetProgramByID fetches a program by primary key.
func (q *Queries) GetProgramByID(ctx context.Context, id int64) (model.Program, error) {
	return scanProgram(q.db.QueryRowContext(ctx, getProgramByID, id))
}

const getProgramBySlug = `
SELECT ` + programColumns + ` FROM programs WHERE slug = ?
`

// GetProgramBySlug fetches a program by its slug.
func (q *Queries) GetProgramBySlug(ctx context.Context, slug string) (model.Program, error) {
	return scanProgram(q.db.QueryRowContext(ctx, getProgramBySlug, slug))
}

const listPrograms = `
SELECT ` + programColumns + ` FROM programs
WHERE (? = '' OR kind = ?)
ORDER BY COALESCE(start_date, created_at) DESC
`

// ListPrograms returns programs newest-first, optionally filtered by kind.
func (q *Queries) ListPrograms(ctx context.Context, kind string) ([]model.Program, error) {
	rows, err := q.db.QueryContext(ctx, listPrograms, kind, kind)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var programs []model.Program
	for rows.Next() {
		p, err := scanProgram(rows)
		if err != nil {
			return nil, err
		}
		programs = append(programs, p)
	}
	return programs, rows.Err()
}

const updateProgram = `
UPDATE programs SET slug = ?, kind = ?, title_key = ?, description = ?,
image_url = ?, start_date = ?, end_date = ?, start_time = ?, end_time = ?,
updated_at = ?
WHERE id = ?
RETURNING ` + programColumns

// UpdateProgramParams holds the inputs for UpdateProgram.
type UpdateProgramParams struct {
	ID          int64
	Slug        string
	Kind        string
	TitleKey    string
	Description string
	ImageURL    string
	StartDate   sql.NullTime
	EndDate     sql.NullTime
	StartTime   string
	EndTime     string
	UpdatedAt   time.Time
}

// UpdateProgram rewrites every mutable column of a program.
func (q *Queries) UpdateProgram(ctx context.Context, arg UpdateProgramParams) (model.Program, error) {
	row := q.db.QueryRowContext(ctx, updateProgram,
		arg.Slug, arg.Kind, arg.TitleKey, arg.Description, arg.ImageURL,
		arg.StartDate, arg.EndDate, arg.StartTime, arg.EndTime,
		arg.UpdatedAt, arg.ID)
	return scanProgram(row)
}

const deleteProgram = `
DELETE FROM programs WHERE id = ?
`

// DeleteProgram removes a program; child rows cascade.
func (q *Queries) DeleteProgram(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deleteProgram, id)
	return err
}

// Child lists. Each is replaced as a unit with the parent edit; order_index is
// assigned from slice position so it stays dense after any rewrite.

const listProgramTopics = `
SELECT id, program_id, title_key, order_index FROM program_topics
WHERE program_id = ? ORDER BY order_index
`

// ListProgramTopics returns a program's topics in order.
func (q *Queries) ListProgramTopics(ctx context.Context, programID int64) ([]model.Topic, error) {
	rows, err := q.db.QueryContext(ctx, listProgramTopics, programID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var topics []model.Topic
	for rows.Next() {
		var t model.Topic
		if err := rows.Scan(&t.ID, &t.ProgramID, &t.TitleKey, &t.OrderIndex); err != nil {
			return nil, err
		}
		topics = append(topics, t)
	}
	return topics, rows.Err()
}

// ReplaceProgramTopics deletes and re-inserts a program's topic list.
func (q *Queries) ReplaceProgramTopics(ctx context.Context, programID int64, topics []model.Topic) error {
	if _, err := q.db.ExecContext(ctx,
		`DELETE FROM program_topics WHERE program_id = ?`, programID); err != nil {
		return err
	}
	for i, t := range topics {
		if _, err := q.db.ExecContext(ctx,
			`INSERT INTO program_topics (program_id, title_key, order_index) VALUES (?, ?, ?)`,
			programID, t.TitleKey, int64(i)); err != nil {
			return err
		}
	}
	return nil
}

const listProgramPriceTiers = `
SELECT id, program_id, name_key, price, features, order_index FROM program_price_tiers
WHERE program_id = ? ORDER BY order_index
`

// ListProgramPriceTiers returns a program's price table in order.
func (q *Queries) ListProgramPriceTiers(ctx context.Context, programID int64) ([]model.PriceTier, error) {
	rows, err := q.db.QueryContext(ctx, listProgramPriceTiers, programID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tiers []model.PriceTier
	for rows.Next() {
		var t model.PriceTier
		if err := rows.Scan(&t.ID, &t.ProgramID, &t.NameKey, &t.Price, &t.Features, &t.OrderIndex); err != nil {
			return nil, err
		}
		tiers = append(tiers, t)
	}
	return tiers, rows.Err()
}

// ReplaceProgramPriceTiers deletes and re-inserts a program's price table.
func (q *Queries) ReplaceProgramPriceTiers(ctx context.Context, programID int64, tiers []model.PriceTier) error {
	if _, err := q.db.ExecContext(ctx,
		`DELETE FROM program_price_tiers WHERE program_id = ?`, programID); err != nil {
		return err
	}
	for i, t := range tiers {
		if _, err := q.db.ExecContext(ctx,
			`INSERT INTO program_price_tiers (program_id, name_key, price, features, order_index) VALUES (?, ?, ?, ?, ?)`,
			programID, t.NameKey, t.Price, t.Features, int64(i)); err != nil {
			return err
		}
	}
	return nil
}

const listProgramFAQItems = `
SELECT id, program_id, question, answer, order_index FROM program_faq_items
WHERE program_id = ? ORDER BY order_index
`

// ListProgramFAQItems returns a program's FAQ entries in order.
func (q *Queries) ListProgramFAQItems(ctx context.Context, programID int64) ([]model.FAQItem, error) {
	rows, err := q.db.QueryContext(ctx, listProgramFAQItems, programID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.FAQItem
	for rows.Next() {
		var it model.FAQItem
		if err := rows.Scan(&it.ID, &it.ProgramID, &it.Question, &it.Answer, &it.OrderIndex); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// ReplaceProgramFAQItems deletes and re-inserts a program's FAQ list.
func (q *Queries) ReplaceProgramFAQItems(ctx context.Context, programID int64, items []model.FAQItem) error {
	if _, err := q.db.ExecContext(ctx,
		`DELETE FROM program_faq_items WHERE program_id = ?`, programID); err != nil {
		return err
	}
	for i, it := range items {
		if _, err := q.db.ExecContext(ctx,
			`INSERT INTO program_faq_items (program_id, question, answer, order_index) VALUES (?, ?, ?, ?)`,
			programID, it.Question, it.Answer, int64(i)); err != nil {
			return err
		}
	}
	return nil
}

const listProgramRundownItems = `
SELECT id, program_id, time, activity, order_index FROM program_rundown_items
WHERE program_id = ? ORDER BY order_index
`

// ListProgramRundownItems returns a program's rundown in order.
func (q *Queries) ListProgramRundownItems(ctx context.Context, programID int64) ([]model.RundownItem, error) {
	rows, err := q.db.QueryContext(ctx, listProgramRundownItems, programID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.RundownItem
	for rows.Next() {
		var it model.RundownItem
		if err := rows.Scan(&it.ID, &it.ProgramID, &it.Time, &it.Activity, &it.OrderIndex); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// ReplaceProgramRundownItems deletes and re-inserts a program's rundown.
func (q *Queries) ReplaceProgramRundownItems(ctx context.Context, programID int64, items []model.RundownItem) error {
	if _, err := q.db.ExecContext(ctx,
		`DELETE FROM program_rundown_items WHERE program_id = ?`, programID); err != nil {
		return err
	}
	for i, it := range items {
		if _, err := q.db.ExecContext(ctx,
			`INSERT INTO program_rundown_items (program_id, time, activity, order_index) VALUES (?, ?, ?, ?)`,
			programID, it.Time, it.Activity, int64(i)); err != nil {
			return err
		}
	}
	return nil
}
