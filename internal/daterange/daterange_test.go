package daterange

import (
	"strings"
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestFormatDate(t *testing.T) {
	tests := []struct {
		name     string
		input    time.Time
		expected string
	}{
		{
			name:     "monday in january",
			input:    date(2026, time.January, 5),
			expected: "Senin, 5 Januari 2026",
		},
		{
			name:     "sunday in august",
			input:    date(2026, time.August, 17),
			expected: "Senin, 17 Agustus 2026",
		},
		{
			name:     "friday in december",
			input:    date(2026, time.December, 25),
			expected: "Jumat, 25 Desember 2026",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatDate(tt.input); got != tt.expected {
				t.Errorf("FormatDate(%v) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	start := date(2026, time.January, 5)
	end := date(2026, time.January, 7)

	tests := []struct {
		name               string
		start, end         *time.Time
		startTime, endTime string
		expected           string
	}{
		{
			name:     "no start date",
			expected: "",
		},
		{
			name:     "single day no times",
			start:    &start,
			expected: "Senin, 5 Januari 2026",
		},
		{
			name:     "end equal to start collapses to single day",
			start:    &start,
			end:      &start,
			expected: "Senin, 5 Januari 2026",
		},
		{
			name:     "multi day",
			start:    &start,
			end:      &end,
			expected: "Senin, 5 Januari 2026 - Rabu, 7 Januari 2026",
		},
		{
			name:      "both times",
			start:     &start,
			startTime: "09:00",
			endTime:   "17:00",
			expected:  "Senin, 5 Januari 2026 (Pukul 09:00 - 17:00 WIB)",
		},
		{
			name:      "start time only",
			start:     &start,
			startTime: "09:00",
			expected:  "Senin, 5 Januari 2026 (Pukul 09:00 WIB)",
		},
		{
			name:     "end time only",
			start:    &start,
			endTime:  "17:00",
			expected: "Senin, 5 Januari 2026 (Sampai Pukul 17:00 WIB)",
		},
		{
			name:      "multi day with both times",
			start:     &start,
			end:       &end,
			startTime: "09:00",
			endTime:   "17:00",
			expected:  "Senin, 5 Januari 2026 - Rabu, 7 Januari 2026 (Pukul 09:00 - 17:00 WIB)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(tt.start, tt.end, tt.startTime, tt.endTime); got != tt.expected {
				t.Errorf("Format() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestFormatTimeSuffixLiteral(t *testing.T) {
	start := date(2026, time.March, 14)
	s := Format(&start, nil, "09:00", "17:00")
	if !strings.Contains(s, "(Pukul 09:00 - 17:00 WIB)") {
		t.Errorf("formatted string %q missing time suffix", s)
	}

	r := Parse(s)
	if r.StartTime != "09:00" || r.EndTime != "17:00" {
		t.Errorf("Parse(%q) times = %q/%q, want 09:00/17:00", s, r.StartTime, r.EndTime)
	}
}

func TestRoundTripSingleDay(t *testing.T) {
	for _, d := range []time.Time{
		date(2026, time.January, 1),
		date(2026, time.February, 28),
		date(2026, time.June, 15),
		date(2027, time.December, 31),
	} {
		s := Format(&d, &d, "", "")
		r := Parse(s)
		if r.StartDate == nil || !r.StartDate.Equal(d) {
			t.Errorf("Parse(Format(%v)).StartDate = %v", d, r.StartDate)
		}
		if r.EndDate == nil || !r.EndDate.Equal(d) {
			t.Errorf("Parse(Format(%v)).EndDate = %v, want start date", d, r.EndDate)
		}
	}
}

func TestRoundTripMultiDay(t *testing.T) {
	cases := []struct{ start, end time.Time }{
		{date(2026, time.January, 5), date(2026, time.January, 7)},
		{date(2026, time.April, 28), date(2026, time.May, 2)},
		{date(2026, time.December, 30), date(2027, time.January, 2)},
	}
	for _, c := range cases {
		s := Format(&c.start, &c.end, "10:00", "16:30")
		r := Parse(s)
		if r.StartDate == nil || !r.StartDate.Equal(c.start) {
			t.Errorf("Parse(%q).StartDate = %v, want %v", s, r.StartDate, c.start)
		}
		if r.EndDate == nil || !r.EndDate.Equal(c.end) {
			t.Errorf("Parse(%q).EndDate = %v, want %v", s, r.EndDate, c.end)
		}
		if r.StartTime != "10:00" || r.EndTime != "16:30" {
			t.Errorf("Parse(%q) times = %q/%q", s, r.StartTime, r.EndTime)
		}
	}
}

func TestParse(t *testing.T) {
	jan5 := date(2026, time.January, 5)
	jan7 := date(2026, time.January, 7)

	tests := []struct {
		name      string
		input     string
		start     *time.Time
		end       *time.Time
		startTime string
		endTime   string
	}{
		{
			name:  "date only defaults end to start",
			input: "Senin, 5 Januari 2026",
			start: &jan5,
			end:   &jan5,
		},
		{
			name:  "date range",
			input: "Senin, 5 Januari 2026 - Rabu, 7 Januari 2026",
			start: &jan5,
			end:   &jan7,
		},
		{
			name:      "until suffix yields end time only",
			input:     "Senin, 5 Januari 2026 (Sampai Pukul 17:00 WIB)",
			start:     &jan5,
			end:       &jan5,
			endTime:   "17:00",
			startTime: "",
		},
		{
			name:      "start time only",
			input:     "Senin, 5 Januari 2026 (Pukul 09:00 WIB)",
			start:     &jan5,
			end:       &jan5,
			startTime: "09:00",
		},
		{
			name:  "weekday without comma",
			input: "Senin 5 Januari 2026",
			start: &jan5,
			end:   &jan5,
		},
		{
			name:  "bare day month year",
			input: "5 Januari 2026",
			start: &jan5,
			end:   &jan5,
		},
		{
			name:  "iso fallback",
			input: "2026-01-05",
			start: &jan5,
			end:   &jan5,
		},
		{
			name:  "empty string",
			input: "",
		},
		{
			name:  "free text",
			input: "segera diumumkan",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Parse(tt.input)
			if !equalDate(r.StartDate, tt.start) {
				t.Errorf("Parse(%q).StartDate = %v, want %v", tt.input, r.StartDate, tt.start)
			}
			if !equalDate(r.EndDate, tt.end) {
				t.Errorf("Parse(%q).EndDate = %v, want %v", tt.input, r.EndDate, tt.end)
			}
			if r.StartTime != tt.startTime {
				t.Errorf("Parse(%q).StartTime = %q, want %q", tt.input, r.StartTime, tt.startTime)
			}
			if r.EndTime != tt.endTime {
				t.Errorf("Parse(%q).EndTime = %q, want %q", tt.input, r.EndTime, tt.endTime)
			}
		})
	}
}

// A time suffix that matches structurally commits to its pattern: when the
// date portion then fails to parse, the dates stay absent rather than the
// whole string retrying as date-only text.
func TestParseCommitsToFirstStructuralMatch(t *testing.T) {
	r := Parse("kapan-kapan (Pukul 09:00 - 17:00 WIB)")
	if r.StartDate != nil || r.EndDate != nil {
		t.Errorf("dates = %v/%v, want absent", r.StartDate, r.EndDate)
	}
	if r.StartTime != "09:00" || r.EndTime != "17:00" {
		t.Errorf("times = %q/%q, want captured", r.StartTime, r.EndTime)
	}
}

func TestParseNeverPanics(t *testing.T) {
	inputs := []string{
		"(((", "Pukul WIB", "99 Zzz 0000", "31 Februari 2026",
		"Senin, 5 Januari 2026 (Pukul 9:5 WIB)", " - ", "()",
	}
	for _, in := range inputs {
		r := Parse(in) // must not panic
		_ = r
	}
}

func TestParseRejectsInvalidCalendarDate(t *testing.T) {
	r := Parse("31 Februari 2026")
	if r.StartDate != nil {
		t.Errorf("StartDate = %v, want absent for 31 Februari", r.StartDate)
	}
}

func equalDate(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}
