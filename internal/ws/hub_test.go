package ws

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func waitForConnections(t *testing.T, h *Hub, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for h.ConnectionCount() != want {
		if time.Now().After(deadline) {
			t.Fatalf("expected %d connections, got %d", want, h.ConnectionCount())
		}
		time.Sleep(2 * time.Millisecond)
	}
}

func TestHub_DeliversToEveryConnection(t *testing.T) {
	h := NewHub(nil)
	go h.Run()

	userID := uuid.New()
	a := NewClient(h, nil, userID)
	b := NewClient(h, nil, userID)
	other := NewClient(h, nil, uuid.New())
	h.Register(a)
	h.Register(b)
	h.Register(other)
	waitForConnections(t, h, 3)

	h.SendToUser(userID, []byte("hello"))

	for _, c := range []*Client{a, b} {
		select {
		case got := <-c.send:
			if string(got) != "hello" {
				t.Fatalf("unexpected payload %q", got)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("payload not delivered")
		}
	}
	select {
	case got := <-other.send:
		t.Fatalf("other user must not receive the event, got %q", got)
	default:
	}
}

func TestHub_DropsSlowClientsWithoutBlocking(t *testing.T) {
	h := NewHub(nil)
	go h.Run()

	// Unbuffered send channels make every client slow; well past the
	// unregister channel's capacity so a re-queue there would wedge Run.
	userID := uuid.New()
	for i := 0; i < 200; i++ {
		h.Register(&Client{hub: h, userID: userID, send: make(chan []byte)})
	}
	waitForConnections(t, h, 200)

	h.SendToUser(userID, []byte("event"))

	waitForConnections(t, h, 0)
}
