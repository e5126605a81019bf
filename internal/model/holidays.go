// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// nationalHoliday is a bundled, immutable holiday entry. The list covers the
// fixed-date Indonesian national holidays; movable holidays are refreshed into
// calendar_events by the scheduler via the fetch-holidays function.
type nationalHoliday struct {
	Month time.Month
	Day   int
	Title string
}

var nationalHolidays = []nationalHoliday{
	{time.January, 1, "Tahun Baru Masehi"},
	{time.May, 1, "Hari Buruh Internasional"},
	{time.June, 1, "Hari Lahir Pancasila"},
	{time.August, 17, "Hari Kemerdekaan Republik Indonesia"},
	{time.December, 25, "Hari Raya Natal"},
}

// NationalHolidays returns the bundled holiday list materialized for the given
// year, as CalendarEvent values with the holiday flag set.
func NationalHolidays(year int) []CalendarEvent {
	events := make([]CalendarEvent, 0, len(nationalHolidays))
	for _, h := range nationalHolidays {
		events = append(events, CalendarEvent{
			Title:     h.Title,
			Date:      time.Date(year, h.Month, h.Day, 0, 0, 0, 0, time.UTC),
			IsHoliday: true,
		})
	}
	return events
}
