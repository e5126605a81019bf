// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// CalendarEvent represents a calendar entry shown on the public events page.
// Two sources merge at read time: organization-authored events stored in the
// database and the bundled national holiday list. Imported marks rows written
// by the holiday refresh job; only those may be replaced on the next refresh.
type CalendarEvent struct {
	ID          int64     `json:"id,omitempty"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Date        time.Time `json:"date"`
	IsHoliday   bool      `json:"is_holiday"`
	Imported    bool      `json:"-"`
}
