// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/xwalt19/webblog-sub001/internal/i18n"
)

// TranslationsResponse is the payload of GET /api/v1/translations.
type TranslationsResponse struct {
	Language string            `json:"language"`
	Messages map[string]string `json:"messages"`
}

// ListTranslations handles GET /api/v1/translations and
// /api/v1/translations/{lang}. Without an explicit language the best match
// for the Accept-Language header is served, so the front end can boot with
// a single unparameterized request.
func (h *Handler) ListTranslations(w http.ResponseWriter, r *http.Request) {
	lang := chi.URLParam(r, "lang")
	if lang == "" {
		lang = i18n.MatchLanguage(r.Header.Get("Accept-Language"))
	} else if !i18n.IsSupported(lang) {
		WriteNotFound(w, "Language not supported")
		return
	}

	WriteSuccess(w, TranslationsResponse{
		Language: lang,
		Messages: i18n.Messages(lang),
	}, nil)
}
