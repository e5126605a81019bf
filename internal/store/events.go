// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/xwalt19/webblog-sub001/internal/model"
)

const createEvent = `
INSERT INTO events (level, category, message, user_id, metadata, created_at)
VALUES (?, ?, ?, ?, ?, ?)
`

// CreateEventParams holds the inputs for CreateEvent.
type CreateEventParams struct {
	Level     string
	Category  string
	Message   string
	UserID    sql.NullInt64
	Metadata  string
	CreatedAt time.Time
}

// CreateEvent appends an entry to the event log.
func (q *Queries) CreateEvent(ctx context.Context, arg CreateEventParams) error {
	if arg.Metadata == "" {
		arg.Metadata = "{}"
	}
	_, err := q.db.ExecContext(ctx, createEvent,
		arg.Level, arg.Category, arg.Message, arg.UserID, arg.Metadata, arg.CreatedAt)
	return err
}

// ListEventsParams holds paging and filtering inputs for ListEvents.
type ListEventsParams struct {
	Level    string // empty means all levels
	Category string // empty means all categories
	Limit    int64
	Offset   int64
}

const listEvents = `
SELECT id, level, category, message, user_id, metadata, created_at
FROM events
WHERE (? = '' OR level = ?) AND (? = '' OR category = ?)
ORDER BY created_at DESC, id DESC
LIMIT ? OFFSET ?
`

// ListEvents returns log entries newest-first.
func (q *Queries) ListEvents(ctx context.Context, arg ListEventsParams) ([]model.Event, error) {
	rows, err := q.db.QueryContext(ctx, listEvents,
		arg.Level, arg.Level, arg.Category, arg.Category, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []model.Event
	for rows.Next() {
		var e model.Event
		if err := rows.Scan(&e.ID, &e.Level, &e.Category, &e.Message,
			&e.UserID, &e.Metadata, &e.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

const countEvents = `
SELECT COUNT(*) FROM events
WHERE (? = '' OR level = ?) AND (? = '' OR category = ?)
`

// CountEvents returns the total matching ListEvents without paging.
func (q *Queries) CountEvents(ctx context.Context, level, category string) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countEvents, level, level, category, category).Scan(&n)
	return n, err
}

const pruneEvents = `
DELETE FROM events WHERE created_at < ?
`

// PruneEvents deletes log entries older than the cutoff.
func (q *Queries) PruneEvents(ctx context.Context, before time.Time) (int64, error) {
	res, err := q.db.ExecContext(ctx, pruneEvents, before)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
