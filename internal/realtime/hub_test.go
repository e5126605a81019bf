package realtime

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestHub_PublishSubscribe(t *testing.T) {
	hub := NewHub(0, nil)
	defer hub.Close()

	ch, cancel := hub.Subscribe(TopicHeroImages)
	defer cancel()

	hub.Publish(Change{Topic: TopicHeroImages, Action: "insert", ID: 7})

	select {
	case payload := <-ch:
		var c Change
		if err := json.Unmarshal(payload, &c); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if c.Action != "insert" || c.ID != 7 {
			t.Errorf("change = %+v", c)
		}
		if c.At.IsZero() {
			t.Error("At should be stamped")
		}
	case <-time.After(time.Second):
		t.Fatal("no notification received")
	}
}

func TestHub_TopicIsolation(t *testing.T) {
	hub := NewHub(0, nil)
	defer hub.Close()

	ch, cancel := hub.Subscribe("other")
	defer cancel()

	hub.Publish(Change{Topic: TopicHeroImages, Action: "delete", ID: 1})

	select {
	case <-ch:
		t.Fatal("subscriber received change for different topic")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHub_DebounceCoalesces(t *testing.T) {
	hub := NewHub(30*time.Millisecond, nil)
	defer hub.Close()

	ch, cancel := hub.Subscribe(TopicHeroImages)
	defer cancel()

	// Rapid burst: only the last change should be delivered.
	for i := int64(1); i <= 5; i++ {
		hub.Publish(Change{Topic: TopicHeroImages, Action: "update", ID: i})
	}

	select {
	case payload := <-ch:
		var c Change
		if err := json.Unmarshal(payload, &c); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if c.ID != 5 {
			t.Errorf("delivered ID = %d, want 5 (latest in window)", c.ID)
		}
	case <-time.After(time.Second):
		t.Fatal("no notification received")
	}

	// No further notifications for the same burst.
	select {
	case <-ch:
		t.Fatal("burst produced more than one notification")
	case <-time.After(60 * time.Millisecond):
	}
}

func TestHub_CancelUnsubscribes(t *testing.T) {
	hub := NewHub(0, nil)
	defer hub.Close()

	_, cancel := hub.Subscribe(TopicHeroImages)
	if n := hub.SubscriberCount(TopicHeroImages); n != 1 {
		t.Fatalf("SubscriberCount = %d, want 1", n)
	}
	cancel()
	if n := hub.SubscriberCount(TopicHeroImages); n != 0 {
		t.Errorf("SubscriberCount after cancel = %d, want 0", n)
	}
	// Double cancel is safe.
	cancel()
}

func TestHub_CloseIsFinal(t *testing.T) {
	hub := NewHub(0, nil)
	ch, _ := hub.Subscribe(TopicHeroImages)
	hub.Close()

	if _, open := <-ch; open {
		t.Error("channel should be closed after hub Close")
	}

	// Publishing after close must not panic.
	hub.Publish(Change{Topic: TopicHeroImages, Action: "insert", ID: 1})

	ch2, cancel := hub.Subscribe(TopicHeroImages)
	defer cancel()
	if _, open := <-ch2; open {
		t.Error("subscribe after close should return a closed channel")
	}
}

func TestSSEHandler_StreamsChanges(t *testing.T) {
	hub := NewHub(0, nil)
	defer hub.Close()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/heroes/stream", nil)

	done := make(chan struct{})
	go func() {
		defer close(done)
		SSEHandler(hub, TopicHeroImages)(rec, req)
	}()

	// Wait for the subscriber to register, publish, then close the stream.
	deadline := time.Now().Add(time.Second)
	for hub.SubscriberCount(TopicHeroImages) == 0 {
		if time.Now().After(deadline) {
			t.Fatal("subscriber never registered")
		}
		time.Sleep(5 * time.Millisecond)
	}
	hub.Publish(Change{Topic: TopicHeroImages, Action: "insert", ID: 3})
	time.Sleep(50 * time.Millisecond)
	hub.Close()
	<-done

	body := rec.Body.String()
	if !strings.Contains(body, "event: change") {
		t.Errorf("stream missing change event: %q", body)
	}
	if !strings.Contains(body, `"action":"insert"`) {
		t.Errorf("stream missing payload: %q", body)
	}
	if got := rec.Header().Get("Content-Type"); got != "text/event-stream" {
		t.Errorf("Content-Type = %q", got)
	}
}
