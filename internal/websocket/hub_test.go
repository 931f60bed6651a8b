package websocket

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"stayops-be/internal/pkg/logger"
)

func newTestHub(t *testing.T) *Hub {
	t.Helper()
	h := NewHub(nil, logger.NewIsolatedLogger(t.TempDir()+"/hub.log"))
	go h.Run()
	return h
}

func TestBroadcastDuringUnregisterDoesNotPanic(t *testing.T) {
	h := newTestHub(t)
	propertyID := uuid.New()

	// Buffer of one so broadcasts overflow immediately and exercise the
	// drop path alongside the explicit unregisters below.
	clients := make([]*Client, 0, 50)
	for i := 0; i < 50; i++ {
		c := &Client{Hub: h, PropertyID: propertyID, UserID: uuid.New(), Send: make(chan []byte, 1)}
		clients = append(clients, c)
		h.register <- c
	}

	done := make(chan struct{})
	go func() {
		for i := 0; i < 200; i++ {
			h.BroadcastToProperty(propertyID, "queue.updated", map[string]int{"seq": i})
		}
		close(done)
	}()

	// Tearing every client down while frames are still fanning out must
	// never send on a closed channel.
	for _, c := range clients {
		h.unregister <- c
	}
	<-done

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if len(h.ActiveProperties()) == 0 {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("room not empty after all clients unregistered")
}

func TestActivePropertiesTracksRooms(t *testing.T) {
	h := newTestHub(t)
	propertyID := uuid.New()

	c := &Client{Hub: h, PropertyID: propertyID, UserID: uuid.New(), Send: make(chan []byte, 8)}
	h.register <- c

	waitForRooms := func(want int, msg string) {
		t.Helper()
		deadline := time.Now().Add(2 * time.Second)
		for time.Now().Before(deadline) {
			if len(h.ActiveProperties()) == want {
				return
			}
			time.Sleep(5 * time.Millisecond)
		}
		t.Fatal(msg)
	}

	waitForRooms(1, "registered room never became active")

	h.unregister <- c
	waitForRooms(0, "room still active after last client left")

	// The channel is closed exactly once by the hub.
	if _, ok := <-c.Send; ok {
		t.Error("send channel not closed on unregister")
	}
}
