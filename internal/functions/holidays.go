// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package functions

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

// GoogleCalendarBaseURL is the production Google Calendar API endpoint.
const GoogleCalendarBaseURL = "https://www.googleapis.com/calendar/v3"

// holidayCalendarIDs maps a country code to Google's public holiday
// calendar for it. Indonesia is the only supported country today.
var holidayCalendarIDs = map[string]string{
	"id": "id.indonesian#holiday@group.v.calendar.google.com",
}

// Holiday is one entry of the fetch-holidays response.
type Holiday struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Date        string `json:"date"` // YYYY-MM-DD
	IsHoliday   bool   `json:"isHoliday"`
}

// HolidayClient queries the Google Calendar API for public holidays.
type HolidayClient struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

// NewHolidayClient creates a client against the production endpoint.
func NewHolidayClient(apiKey string) *HolidayClient {
	return &HolidayClient{
		APIKey:     apiKey,
		BaseURL:    GoogleCalendarBaseURL,
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
	}
}

type calendarEventsResponse struct {
	Items []struct {
		Summary     string `json:"summary"`
		Description string `json:"description"`
		Start       struct {
			Date string `json:"date"`
		} `json:"start"`
	} `json:"items"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Fetch returns the public holidays of a year, sorted by the upstream
// (startTime ascending).
func (c *HolidayClient) Fetch(ctx context.Context, year int, countryCode string) ([]Holiday, error) {
	calendarID, ok := holidayCalendarIDs[countryCode]
	if !ok {
		return nil, fmt.Errorf("unsupported country code %q", countryCode)
	}

	query := url.Values{
		"key":          {c.APIKey},
		"timeMin":      {fmt.Sprintf("%d-01-01T00:00:00Z", year)},
		"timeMax":      {fmt.Sprintf("%d-01-01T00:00:00Z", year+1)},
		"singleEvents": {"true"},
		"orderBy":      {"startTime"},
	}
	reqURL := fmt.Sprintf("%s/calendars/%s/events?%s",
		c.BaseURL, url.PathEscape(calendarID), query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calendar request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, err
	}

	var parsed calendarEventsResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("unexpected calendar response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		if parsed.Error != nil {
			return nil, fmt.Errorf("calendar API error: %s", parsed.Error.Message)
		}
		return nil, fmt.Errorf("calendar API returned status %d", resp.StatusCode)
	}

	holidays := make([]Holiday, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		if item.Start.Date == "" {
			continue
		}
		holidays = append(holidays, Holiday{
			Title:       item.Summary,
			Description: item.Description,
			Date:        item.Start.Date,
			IsHoliday:   true,
		})
	}
	return holidays, nil
}

// FetchHolidaysRequest is the body of POST /functions/fetch-holidays.
type FetchHolidaysRequest struct {
	Year        int    `json:"year"`
	CountryCode string `json:"countryCode,omitempty"`
}

// FetchHolidays returns the holiday lookup handler. A nil client means no
// Google API key is configured.
func FetchHolidays(client *HolidayClient) http.HandlerFunc {
	return withCORS(func(w http.ResponseWriter, r *http.Request) {
		var req FetchHolidaysRequest
		if !decodeFnJSON(w, r, &req) {
			return
		}
		if req.Year == 0 {
			writeFnError(w, http.StatusBadRequest, "year is required")
			return
		}
		if req.CountryCode == "" {
			req.CountryCode = "id"
		}

		if client == nil {
			slog.Error("holiday lookup requested but no API key configured", "category", "function")
			writeFnError(w, http.StatusInternalServerError, "calendar service is not configured")
			return
		}

		holidays, err := client.Fetch(r.Context(), req.Year, req.CountryCode)
		if err != nil {
			slog.Error("holiday lookup failed", "category", "function", "error", err, "year", req.Year)
			writeFnError(w, http.StatusInternalServerError, err.Error())
			return
		}

		writeFnJSON(w, http.StatusOK, map[string]any{"holidays": holidays})
	})
}
