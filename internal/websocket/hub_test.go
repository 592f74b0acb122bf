package websocket

import (
	"testing"
	"time"

	"ai-docgen-be/pkg/events"
)

type quietLogger struct{}

func (quietLogger) Debug(string, string, map[string]interface{}) {}
func (quietLogger) Info(string, string, map[string]interface{})  {}
func (quietLogger) Warn(string, string, map[string]interface{})  {}
func (quietLogger) Error(string, string, map[string]interface{}) {}
func (quietLogger) Sync() error                                  { return nil }

func (h *Hub) clientCount(sessionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[sessionID])
}

func waitFor(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal(msg)
}

func TestHubDropsSlowClientOnce(t *testing.T) {
	hub := NewHub(nil, quietLogger{})
	go hub.Run()

	client := &Client{Hub: hub, SessionID: "s1", Send: make(chan []byte, 1)}
	hub.register <- client
	waitFor(t, func() bool { return hub.clientCount("s1") == 1 }, "client never registered")

	// Fill the send buffer so the next delivery cannot be queued
	client.Send <- []byte("backlog")

	hub.Deliver(events.NewSessionEvent(events.TypeContentGenerated, "s1", nil))
	waitFor(t, func() bool { return hub.clientCount("s1") == 0 }, "slow client never dropped")

	// Further deliveries to the now-empty session must be harmless
	hub.Deliver(events.NewSessionEvent(events.TypeContentRefined, "s1", nil))

	// The channel still yields the backlog, then reports closed exactly once
	if msg, ok := <-client.Send; !ok || string(msg) != "backlog" {
		t.Fatalf("backlog read = %q, %v", msg, ok)
	}
	if _, ok := <-client.Send; ok {
		t.Error("send channel should be closed after the drop")
	}
}

func TestHubBroadcastSkipsFullBuffers(t *testing.T) {
	hub := NewHub(nil, quietLogger{})
	go hub.Run()

	fast := &Client{Hub: hub, SessionID: "a", Send: make(chan []byte, 4)}
	slow := &Client{Hub: hub, SessionID: "b", Send: make(chan []byte, 1)}
	hub.register <- fast
	hub.register <- slow
	waitFor(t, func() bool { return hub.clientCount("a") == 1 && hub.clientCount("b") == 1 }, "clients never registered")

	slow.Send <- []byte("backlog")

	// No session_id in the payload, so the event fans out to everyone
	hub.Deliver(events.BaseEvent{Type: events.TypeSessionCleared, Data: map[string]interface{}{}})

	waitFor(t, func() bool { return hub.clientCount("b") == 0 }, "slow client never dropped")
	if hub.clientCount("a") != 1 {
		t.Error("responsive client should stay registered")
	}
	if msg, ok := <-fast.Send; !ok || len(msg) == 0 {
		t.Errorf("fast client read = %q, %v", msg, ok)
	}
}
