package events

import (
	"sync"
	"testing"
)

func TestPublish_NoSubscribersIsNoOp(t *testing.T) {
	b := NewBroadcaster()
	b.Publish(Event{Action: ActionCreate, Post: "p1"}) // must not panic or block
}

func TestPublish_FansOutToAllSubscribers(t *testing.T) {
	b := NewBroadcaster()
	first := b.Subscribe()
	second := b.Subscribe()

	b.Publish(Event{Action: ActionCreate, Post: "p1"})
	b.Publish(Event{Action: ActionDelete, Post: "p1"})

	for _, ch := range []chan Event{first, second} {
		if e := <-ch; e.Action != ActionCreate {
			t.Errorf("expected create first, got %s", e.Action)
		}
		if e := <-ch; e.Action != ActionDelete {
			t.Errorf("expected delete second, got %s", e.Action)
		}
	}
}

func TestUnsubscribe_ClosesChannelAndStopsDelivery(t *testing.T) {
	b := NewBroadcaster()
	ch := b.Subscribe()

	b.Unsubscribe(ch)
	b.Unsubscribe(ch) // second call is a no-op

	if _, ok := <-ch; ok {
		t.Error("expected closed channel after unsubscribe")
	}

	b.Publish(Event{Action: ActionUpdate, Post: "p1"}) // must not panic
}

func TestPublish_DropsForSlowSubscriber(t *testing.T) {
	b := NewBroadcaster()
	slow := b.Subscribe()
	fast := b.Subscribe()

	// Overflow the slow subscriber's buffer; publish must never block.
	for i := 0; i < subscriberBuffer+10; i++ {
		b.Publish(Event{Action: ActionCreate, Post: "p"})
		<-fast
	}

	if got := len(slow); got != subscriberBuffer {
		t.Errorf("expected slow subscriber to hold %d buffered events, got %d", subscriberBuffer, got)
	}
}

func TestPublish_SafeUnderConcurrentSubscription(t *testing.T) {
	b := NewBroadcaster()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				ch := b.Subscribe()
				b.Publish(Event{Action: ActionCreate, Post: "p"})
				b.Unsubscribe(ch)
			}
		}()
	}
	wg.Wait()
}
