// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Well-known content block identifiers. Each public page that carries an
// editable rich-text region reads the row keyed by one of these.
const (
	ContentAbout       = "about"
	ContentHomeIntro   = "home_intro"
	ContentContactInfo = "contact_info"
	ContentFooter      = "footer"
)

// KnownContentIDs lists every valid content block identifier.
var KnownContentIDs = []string{
	ContentAbout,
	ContentHomeIntro,
	ContentContactInfo,
	ContentFooter,
}

// IsKnownContentID reports whether id names a managed content block.
func IsKnownContentID(id string) bool {
	for _, known := range KnownContentIDs {
		if known == id {
			return true
		}
	}
	return false
}

// ContentBlock is an admin-editable HTML region keyed by a fixed identifier.
type ContentBlock struct {
	ID          string    `json:"id"`
	HTMLContent string    `json:"html_content"`
	UpdatedAt   time.Time `json:"updated_at"`
}
