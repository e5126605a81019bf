// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"sort"

	"github.com/xwalt19/webblog-sub001/internal/uikit"
)

// ListIcons handles GET /api/v1/icons.
// The admin SPA uses the registry to populate icon pickers; unknown names
// never reach storage.
func (h *Handler) ListIcons(w http.ResponseWriter, _ *http.Request) {
	names := uikit.IconNames()
	sort.Strings(names)
	WriteSuccess(w, names, nil)
}
