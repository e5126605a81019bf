// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package realtime pushes row-change notifications to connected clients so
// the public site can refresh the hero carousel without polling.
package realtime

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"
)

// Topics clients can subscribe to.
const (
	TopicHeroImages = "hero_images"
)

// Change describes a row-level change on a topic.
type Change struct {
	Topic  string    `json:"topic"`
	Action string    `json:"action"` // insert, update, delete
	ID     int64     `json:"id,omitempty"`
	At     time.Time `json:"at"`
}

// Hub fans out change notifications to subscribers. Rapid successive changes
// to the same topic are coalesced within a debounce window so a bulk reorder
// produces one notification, not one per row.
type Hub struct {
	logger   *slog.Logger
	debounce time.Duration

	mu      sync.Mutex
	subs    map[chan []byte]string // channel -> topic
	pending map[string]*time.Timer // topic -> debounce timer
	latest  map[string]Change      // topic -> last change in window
	closed  bool
}

// NewHub creates a hub with the given debounce window. A zero window
// delivers every change immediately.
func NewHub(debounce time.Duration, logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		logger:   logger,
		debounce: debounce,
		subs:     make(map[chan []byte]string),
		pending:  make(map[string]*time.Timer),
		latest:   make(map[string]Change),
	}
}

// Subscribe registers a new subscriber for a topic. The returned channel
// receives JSON-encoded Change payloads; call the cancel func when done.
func (h *Hub) Subscribe(topic string) (<-chan []byte, func()) {
	ch := make(chan []byte, 8)

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	h.subs[ch] = topic
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		if _, ok := h.subs[ch]; ok {
			delete(h.subs, ch)
			close(ch)
		}
		h.mu.Unlock()
	}
	return ch, cancel
}

// Publish records a change and schedules delivery to topic subscribers.
func (h *Hub) Publish(change Change) {
	if change.At.IsZero() {
		change.At = time.Now()
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}

	if h.debounce <= 0 {
		h.deliverLocked(change)
		return
	}

	h.latest[change.Topic] = change
	if _, waiting := h.pending[change.Topic]; waiting {
		return // window already open, latest change wins
	}
	topic := change.Topic
	h.pending[topic] = time.AfterFunc(h.debounce, func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.pending, topic)
		if h.closed {
			return
		}
		if c, ok := h.latest[topic]; ok {
			delete(h.latest, topic)
			h.deliverLocked(c)
		}
	})
}

// deliverLocked sends a change to all matching subscribers. Callers hold h.mu.
func (h *Hub) deliverLocked(change Change) {
	payload, err := json.Marshal(change)
	if err != nil {
		h.logger.Error("marshaling change notification", "error", err)
		return
	}

	for ch, topic := range h.subs {
		if topic != change.Topic {
			continue
		}
		select {
		case ch <- payload:
		default:
			// Slow subscriber; drop rather than block publishers.
			h.logger.Warn("dropping change notification for slow subscriber", "topic", topic)
		}
	}
}

// Close stops the hub and closes all subscriber channels.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for _, t := range h.pending {
		t.Stop()
	}
	for ch := range h.subs {
		delete(h.subs, ch)
		close(ch)
	}
}

// SubscriberCount returns the number of active subscribers for a topic.
func (h *Hub) SubscriberCount(topic string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := 0
	for _, t := range h.subs {
		if t == topic {
			n++
		}
	}
	return n
}
