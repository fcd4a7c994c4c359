package events

import (
	"testing"
	"time"
)

func TestHubDeliversToAllSubscribers(t *testing.T) {
	h := NewHub()

	ch1, cancel1 := h.Subscribe()
	defer cancel1()
	ch2, cancel2 := h.Subscribe()
	defer cancel2()

	h.Publish(Event{Action: ActionCreated, Entity: EntitySession, ID: "s1"})

	for i, ch := range []<-chan Event{ch1, ch2} {
		select {
		case evt := <-ch:
			if evt.ID != "s1" || evt.Action != ActionCreated {
				t.Errorf("subscriber %d got unexpected event %+v", i, evt)
			}
			if evt.At.IsZero() {
				t.Errorf("subscriber %d got event with zero timestamp", i)
			}
		case <-time.After(time.Second):
			t.Fatalf("subscriber %d did not receive event", i)
		}
	}
}

func TestHubCancelRemovesSubscriber(t *testing.T) {
	h := NewHub()

	_, cancel := h.Subscribe()
	if got := h.SubscriberCount(); got != 1 {
		t.Fatalf("expected 1 subscriber, got %d", got)
	}

	cancel()
	if got := h.SubscriberCount(); got != 0 {
		t.Errorf("expected 0 subscribers after cancel, got %d", got)
	}

	// Publishing to an empty hub must not panic or block.
	h.Publish(Event{Action: ActionDeleted, Entity: EntityAgent, ID: "a1"})
}

func TestHubDropsWhenSubscriberIsFull(t *testing.T) {
	h := NewHub()

	ch, cancel := h.Subscribe()
	defer cancel()

	// Overflow the buffer; Publish must never block.
	done := make(chan struct{})
	go func() {
		for i := 0; i < subscriberBuffer*2; i++ {
			h.Publish(Event{Action: ActionUpdated, Entity: EntityCatalog, ID: "c1"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Publish blocked on a full subscriber")
	}

	if len(ch) != subscriberBuffer {
		t.Errorf("expected buffer to hold %d events, got %d", subscriberBuffer, len(ch))
	}
}
