// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package realtime

import (
	"fmt"
	"net/http"
	"time"
)

// keepAliveInterval is how often an SSE comment is sent to hold the
// connection open through proxies.
const keepAliveInterval = 25 * time.Second

// SSEHandler streams hub notifications for one topic as Server-Sent Events.
func SSEHandler(hub *Hub, topic string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, "streaming unsupported", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")

		ch, cancel := hub.Subscribe(topic)
		defer cancel()

		// Initial comment so the client sees the stream is live.
		fmt.Fprintf(w, ": connected to %s\n\n", topic)
		flusher.Flush()

		keepAlive := time.NewTicker(keepAliveInterval)
		defer keepAlive.Stop()

		for {
			select {
			case <-r.Context().Done():
				return
			case <-keepAlive.C:
				fmt.Fprint(w, ": keep-alive\n\n")
				flusher.Flush()
			case payload, open := <-ch:
				if !open {
					return
				}
				fmt.Fprintf(w, "event: change\ndata: %s\n\n", payload)
				flusher.Flush()
			}
		}
	}
}
