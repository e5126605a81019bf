// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"

	"github.com/xwalt19/webblog-sub001/internal/model"
)

const createCalendarEvent = `
INSERT INTO calendar_events (title, description, date, is_holiday, imported)
VALUES (?, ?, ?, ?, ?)
RETURNING id, title, description, date, is_holiday, imported
`

// CreateCalendarEventParams holds the inputs for CreateCalendarEvent.
// Imported is set only by the holiday refresh job, never by admin input.
type CreateCalendarEventParams struct {
	Title       string
	Description string
	Date        time.Time
	IsHoliday   bool
	Imported    bool
}

// CreateCalendarEvent inserts a calendar entry.
func (q *Queries) CreateCalendarEvent(ctx context.Context, arg CreateCalendarEventParams) (model.CalendarEvent, error) {
	row := q.db.QueryRowContext(ctx, createCalendarEvent,
		arg.Title, arg.Description, arg.Date, arg.IsHoliday, arg.Imported)
	var e model.CalendarEvent
	err := row.Scan(&e.ID, &e.Title, &e.Description, &e.Date, &e.IsHoliday, &e.Imported)
	return e, err
}

const getCalendarEvent = `
SELECT id, title, description, date, is_holiday, imported FROM calendar_events WHERE id = ?
`

// GetCalendarEvent fetches an entry by primary key.
func (q *Queries) GetCalendarEvent(ctx context.Context, id int64) (model.CalendarEvent, error) {
	row := q.db.QueryRowContext(ctx, getCalendarEvent, id)
	var e model.CalendarEvent
	err := row.Scan(&e.ID, &e.Title, &e.Description, &e.Date, &e.IsHoliday, &e.Imported)
	return e, err
}

const listCalendarEvents = `
SELECT id, title, description, date, is_holiday, imported
FROM calendar_events
WHERE date >= ? AND date < ?
ORDER BY date
`

// ListCalendarEvents returns entries with from <= date < to, in date order.
func (q *Queries) ListCalendarEvents(ctx context.Context, from, to time.Time) ([]model.CalendarEvent, error) {
	rows, err := q.db.QueryContext(ctx, listCalendarEvents, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []model.CalendarEvent
	for rows.Next() {
		var e model.CalendarEvent
		if err := rows.Scan(&e.ID, &e.Title, &e.Description, &e.Date, &e.IsHoliday, &e.Imported); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

const updateCalendarEvent = `
UPDATE calendar_events SET title = ?, description = ?, date = ?, is_holiday = ?
WHERE id = ?
RETURNING id, title, description, date, is_holiday, imported
`

// UpdateCalendarEventParams holds the inputs for UpdateCalendarEvent.
type UpdateCalendarEventParams struct {
	ID          int64
	Title       string
	Description string
	Date        time.Time
	IsHoliday   bool
}

// UpdateCalendarEvent rewrites an entry. The imported flag is kept as stored.
func (q *Queries) UpdateCalendarEvent(ctx context.Context, arg UpdateCalendarEventParams) (model.CalendarEvent, error) {
	row := q.db.QueryRowContext(ctx, updateCalendarEvent,
		arg.Title, arg.Description, arg.Date, arg.IsHoliday, arg.ID)
	var e model.CalendarEvent
	err := row.Scan(&e.ID, &e.Title, &e.Description, &e.Date, &e.IsHoliday, &e.Imported)
	return e, err
}

const deleteCalendarEvent = `
DELETE FROM calendar_events WHERE id = ?
`

// DeleteCalendarEvent removes an entry.
func (q *Queries) DeleteCalendarEvent(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deleteCalendarEvent, id)
	return err
}

const deleteImportedHolidays = `
DELETE FROM calendar_events WHERE imported = 1 AND date >= ? AND date < ?
`

// DeleteImportedHolidays clears refresh-imported holiday rows in a date range.
// Organization-authored entries survive even when flagged as holidays.
func (q *Queries) DeleteImportedHolidays(ctx context.Context, from, to time.Time) error {
	_, err := q.db.ExecContext(ctx, deleteImportedHolidays, from, to)
	return err
}
