// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package daterange converts between event date windows and the Indonesian
// display string used on the public calendar and program pages, e.g.
// "Senin, 5 Januari 2026 - Rabu, 7 Januari 2026 (Pukul 09:00 - 17:00 WIB)".
// The display string doubles as an interchange format: Parse recovers the
// structured fields from a previously formatted string.
package daterange

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Indonesian weekday names, indexed by time.Weekday.
var weekdays = [7]string{"Minggu", "Senin", "Selasa", "Rabu", "Kamis", "Jumat", "Sabtu"}

// Indonesian month names, indexed by time.Month-1.
var months = [12]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

var monthNumbers = func() map[string]time.Month {
	m := make(map[string]time.Month, len(months))
	for i, name := range months {
		m[strings.ToLower(name)] = time.Month(i + 1)
	}
	return m
}()

// Range holds the structured fields recovered from a display string. Any
// field that could not be determined is left zero; callers must treat an
// all-zero Range as unparseable and fall back to the raw string.
type Range struct {
	StartDate *time.Time
	EndDate   *time.Time
	StartTime string // HH:MM or ""
	EndTime   string // HH:MM or ""
}

// IsZero reports whether nothing could be recovered.
func (r Range) IsZero() bool {
	return r.StartDate == nil && r.EndDate == nil && r.StartTime == "" && r.EndTime == ""
}

// FormatDate renders a single date as "<Weekday>, <Day> <Month> <Year>".
func FormatDate(t time.Time) string {
	return fmt.Sprintf("%s, %d %s %d", weekdays[t.Weekday()], t.Day(), months[t.Month()-1], t.Year())
}

// Format produces the display string for an event window. It returns the
// empty string when the start date is absent. A missing or equal end date
// renders as a single-day event; otherwise both long dates joined by " - ".
// Time strings are appended verbatim in a "Pukul … WIB" suffix.
func Format(start, end *time.Time, startTime, endTime string) string {
	if start == nil {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(FormatDate(*start))

	if end != nil && !sameDay(*start, *end) {
		sb.WriteString(" - ")
		sb.WriteString(FormatDate(*end))
	}

	switch {
	case startTime != "" && endTime != "":
		sb.WriteString(fmt.Sprintf(" (Pukul %s - %s WIB)", startTime, endTime))
	case startTime != "":
		sb.WriteString(fmt.Sprintf(" (Pukul %s WIB)", startTime))
	case endTime != "":
		sb.WriteString(fmt.Sprintf(" (Sampai Pukul %s WIB)", endTime))
	}

	return sb.String()
}

// The three structural patterns, tried in order. The first syntactic match
// wins; there is no fallthrough to a later pattern when the captured date
// substrings subsequently fail to parse. That commit-on-first-match behavior
// is part of the established contract for strings already in circulation.
var (
	// "<dates> (Pukul HH:MM - HH:MM WIB)"
	reBothTimes = regexp.MustCompile(`^(.+?)\s*\(Pukul\s+(\d{1,2}:\d{2})\s*-\s*(\d{1,2}:\d{2})\s+WIB\)$`)
	// "<dates> (Pukul HH:MM WIB)" or "<dates> (Sampai Pukul HH:MM WIB)"
	reOneTime = regexp.MustCompile(`^(.+?)\s*\((Sampai\s+)?Pukul\s+(\d{1,2}:\d{2})\s+WIB\)$`)
	// "<dates>" with no time suffix
	reDateOnly = regexp.MustCompile(`^([^()]+)$`)

	// "<Weekday>, <Day> <Month> <Year>" with an optional weekday prefix.
	reLongDate = regexp.MustCompile(`^(?:([A-Za-z]+),\s*)?(\d{1,2})\s+([A-Za-z]+)\s+(\d{4})$`)
)

// Parse recovers structured start/end date and time fields from a display
// string previously produced by Format, or compatible free text. Malformed
// input never raises; it degrades to a partially or fully empty Range.
func Parse(s string) Range {
	s = strings.TrimSpace(s)
	if s == "" {
		return Range{}
	}

	if m := reBothTimes.FindStringSubmatch(s); m != nil {
		r := parseDates(m[1])
		r.StartTime = m[2]
		r.EndTime = m[3]
		return r
	}
	if m := reOneTime.FindStringSubmatch(s); m != nil {
		r := parseDates(m[1])
		if m[2] != "" {
			r.EndTime = m[3]
		} else {
			r.StartTime = m[3]
		}
		return r
	}
	if m := reDateOnly.FindStringSubmatch(s); m != nil {
		return parseDates(m[1])
	}
	return Range{}
}

// parseDates handles the date portion: either a single long date or
// "<start> - <end>". When only a start resolves, the end defaults to the
// start (single-day assumption).
func parseDates(s string) Range {
	var r Range

	startStr := strings.TrimSpace(s)
	endStr := ""
	if idx := strings.Index(s, " - "); idx >= 0 {
		startStr = strings.TrimSpace(s[:idx])
		endStr = strings.TrimSpace(s[idx+3:])
	}

	if t, ok := parseDisplayDate(startStr); ok {
		r.StartDate = &t
	}
	if endStr != "" {
		if t, ok := parseDisplayDate(endStr); ok {
			r.EndDate = &t
		}
	}
	if r.StartDate != nil && r.EndDate == nil {
		end := *r.StartDate
		r.EndDate = &end
	}
	return r
}

// parseDisplayDate parses one date substring. It first attempts the full
// "Weekday, Day Month Year" form, then the same form with a bare weekday
// token stripped, and finally generic ISO-8601.
func parseDisplayDate(s string) (time.Time, bool) {
	if t, ok := parseLongDate(s); ok {
		return t, ok
	}

	// A formatted date may arrive with the weekday separated by a space
	// rather than a comma; strip a leading known weekday token and retry.
	if first, rest, found := strings.Cut(s, " "); found && isWeekday(strings.TrimSuffix(first, ",")) {
		if t, ok := parseLongDate(strings.TrimSpace(rest)); ok {
			return t, ok
		}
	}

	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}

	return time.Time{}, false
}

// parseLongDate parses "<Weekday>, <Day> <Month> <Year>" or "<Day> <Month>
// <Year>". The weekday token, when present, is not validated against the
// date; display strings are trusted on that point.
func parseLongDate(s string) (time.Time, bool) {
	m := reLongDate.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, false
	}
	if m[1] != "" && !isWeekday(m[1]) {
		return time.Time{}, false
	}

	day, err := strconv.Atoi(m[2])
	if err != nil || day < 1 || day > 31 {
		return time.Time{}, false
	}
	month, ok := monthNumbers[strings.ToLower(m[3])]
	if !ok {
		return time.Time{}, false
	}
	year, err := strconv.Atoi(m[4])
	if err != nil {
		return time.Time{}, false
	}

	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	// Reject normalized overflow such as 31 Februari.
	if t.Day() != day || t.Month() != month {
		return time.Time{}, false
	}
	return t, true
}

func isWeekday(s string) bool {
	for _, w := range weekdays {
		if strings.EqualFold(w, s) {
			return true
		}
	}
	return false
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
