// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package functions implements the stateless proxy endpoints the public
// frontend calls directly: contact email, national holiday lookup and
// YouTube imports. Each handler mirrors permissive CORS headers on every
// response and keeps no state between invocations.
package functions

import (
	"encoding/json"
	"net/http"
)

// corsHeaders applies the permissive header set shared by all functions.
func corsHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "authorization, x-client-info, apikey, content-type")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
}

// withCORS wraps a function handler with the shared CORS treatment.
// Preflight requests short-circuit with 204.
func withCORS(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		corsHeaders(w)
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		if r.Method != http.MethodPost {
			writeFnError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		next(w, r)
	}
}

// writeFnJSON writes a JSON response. CORS headers are already set by the
// wrapper.
func writeFnJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// writeFnError writes the flat error shape the frontend expects.
func writeFnError(w http.ResponseWriter, statusCode int, message string) {
	writeFnJSON(w, statusCode, map[string]string{"error": message})
}

// decodeFnJSON decodes the request body, writing a 400 on failure.
func decodeFnJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeFnError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}
