// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql"
	"time"
)

// Program kinds
const (
	ProgramKindCourse  = "course"
	ProgramKindCamp    = "camp"
	ProgramKindWebinar = "webinar"
)

// Program represents a course, camp or webinar listing with its four ordered
// child lists. Children are edited as a unit with the parent; order is explicit
// via an order_index field re-sequenced on deletion.
type Program struct {
	ID          int64        `json:"id"`
	Slug        string       `json:"slug"`
	Kind        string       `json:"kind"`
	TitleKey    string       `json:"title_key"`
	Description string       `json:"description,omitempty"`
	ImageURL    string       `json:"image_url,omitempty"`
	StartDate   sql.NullTime `json:"start_date,omitempty"`
	EndDate     sql.NullTime `json:"end_date,omitempty"`
	StartTime   string       `json:"start_time,omitempty"` // HH:MM
	EndTime     string       `json:"end_time,omitempty"`   // HH:MM
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// Topic is a syllabus entry of a program.
type Topic struct {
	ID         int64  `json:"id"`
	ProgramID  int64  `json:"program_id"`
	TitleKey   string `json:"title_key"`
	OrderIndex int64  `json:"order_index"`
}

// PriceTier is one row of a program's price table.
type PriceTier struct {
	ID         int64  `json:"id"`
	ProgramID  int64  `json:"program_id"`
	NameKey    string `json:"name_key"`
	Price      int64  `json:"price"` // IDR, whole rupiah
	Features   string `json:"features,omitempty"`
	OrderIndex int64  `json:"order_index"`
}

// FAQItem is a question/answer pair attached to a program.
type FAQItem struct {
	ID         int64  `json:"id"`
	ProgramID  int64  `json:"program_id"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	OrderIndex int64  `json:"order_index"`
}

// RundownItem is a schedule line of a program's rundown.
type RundownItem struct {
	ID         int64  `json:"id"`
	ProgramID  int64  `json:"program_id"`
	Time       string `json:"time"`
	Activity   string `json:"activity"`
	OrderIndex int64  `json:"order_index"`
}
