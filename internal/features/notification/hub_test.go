package notification

import (
	"fmt"
	"testing"

	"go.uber.org/zap"
)

func testEvent(i int) OrderEvent {
	return NewOrderEvent(fmt.Sprintf("order-%d", i), "Jo Customer", 10.0*float64(i), "pending")
}

func TestPublishReachesAllSubscribers(t *testing.T) {
	hub := NewHub(zap.NewNop())

	a := hub.Subscribe()
	defer a.Close()
	b := hub.Subscribe()
	defer b.Close()

	hub.Publish(testEvent(1))

	for _, sub := range []*Subscription{a, b} {
		select {
		case event := <-sub.C:
			if event.Data["id"] != "order-1" {
				t.Errorf("got event %v", event.Data)
			}
		default:
			t.Fatal("subscriber did not receive the event")
		}
	}
}

func TestReplayNewestFirst(t *testing.T) {
	hub := NewHub(zap.NewNop())
	for i := 1; i <= 3; i++ {
		hub.Publish(testEvent(i))
	}

	sub := hub.Subscribe()
	defer sub.Close()

	want := []string{"order-3", "order-2", "order-1"}
	for _, id := range want {
		select {
		case event := <-sub.C:
			if event.Data["id"] != id {
				t.Errorf("replay order: got %v, want %s", event.Data["id"], id)
			}
		default:
			t.Fatalf("replay missing %s", id)
		}
	}
}

func TestReplayBufferCapped(t *testing.T) {
	hub := NewHub(zap.NewNop())
	for i := 1; i <= 15; i++ {
		hub.Publish(testEvent(i))
	}

	recent := hub.Recent()
	if len(recent) != replayDepth {
		t.Fatalf("buffer holds %d events, want %d", len(recent), replayDepth)
	}
	if recent[0].Data["id"] != "order-15" {
		t.Errorf("newest event = %v, want order-15", recent[0].Data["id"])
	}
	if recent[len(recent)-1].Data["id"] != "order-6" {
		t.Errorf("oldest kept event = %v, want order-6", recent[len(recent)-1].Data["id"])
	}
}

func TestCloseStopsDelivery(t *testing.T) {
	hub := NewHub(zap.NewNop())

	sub := hub.Subscribe()
	sub.Close()
	sub.Close() // idempotent

	if n := hub.SubscriberCount(); n != 0 {
		t.Fatalf("subscriber count = %d after close", n)
	}

	// Publishing after close must not panic on the closed channel.
	hub.Publish(testEvent(1))

	if _, ok := <-sub.C; ok {
		t.Error("closed subscription still delivered an event")
	}
}

func TestSlowSubscriberDoesNotBlockPublish(t *testing.T) {
	hub := NewHub(zap.NewNop())

	sub := hub.Subscribe()
	defer sub.Close()

	// Overfill the channel; Publish must never block.
	for i := 0; i < replayDepth+32; i++ {
		hub.Publish(testEvent(i))
	}
}
