package txtracker

import (
	"context"
	"time"

	"github.com/gabapcia/silkroad/internal/pkg/logger"
	"github.com/gabapcia/silkroad/internal/pkg/x/chflow"
)

// EventKind names a tracker transition.
type EventKind string

const (
	EventQueued              EventKind = "queued"               // A submission entered the queued slot
	EventSubmitted           EventKind = "submitted"            // The submission got a hash and is pending
	EventCompleted           EventKind = "completed"            // The confirmation wait settled
	EventRejected            EventKind = "rejected"             // The submission failed before getting a hash
	EventCompletionDismissed EventKind = "completion_dismissed" // The completed slot was cleared by its timer
	EventWarningDismissed    EventKind = "warning_dismissed"    // The warning was cleared by its timer
)

// Event describes one transition. Seq increases by one for every event a
// tracker emits, so a subscriber can tell when it missed some.
type Event struct {
	Seq         uint64       `json:"seq"`
	Kind        EventKind    `json:"kind"`
	At          time.Time    `json:"at"`
	Transaction *Transaction `json:"transaction,omitempty"` // nil for warning dismissals
	State       State        `json:"state"`                 // Snapshot right after the transition
}

// Subscribe returns a channel that receives every event emitted after the
// call. The channel is closed when ctx is done or the tracker is closed.
//
// Delivery never blocks the tracker: when the subscriber's buffer is full
// the event is dropped for that subscriber.
func (t *tracker) Subscribe(ctx context.Context) <-chan Event {
	ch := make(chan Event, t.subscriberBuffer)

	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		close(ch)
		return ch
	}

	id := t.nextSubscriberID
	t.nextSubscriberID++

	sub := &subscriber{ch: ch}
	sub.stop = context.AfterFunc(ctx, func() {
		t.unsubscribe(id)
	})
	t.subscribers[id] = sub
	t.mu.Unlock()

	return ch
}

// subscriber is one Subscribe call. stop deregisters the ctx callback.
type subscriber struct {
	ch   chan Event
	stop func() bool
}

func (s *subscriber) release() {
	s.stop()
	close(s.ch)
}

func (t *tracker) unsubscribe(id uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if sub, ok := t.subscribers[id]; ok {
		delete(t.subscribers, id)
		sub.release()
	}
}

// emitLocked fans an event out to every subscriber. Must hold t.mu.
func (t *tracker) emitLocked(ctx context.Context, kind EventKind, tx *Transaction) {
	t.seq++

	ev := Event{
		Seq:   t.seq,
		Kind:  kind,
		At:    t.now(),
		State: t.snapshotLocked(),
	}
	if tx != nil {
		c := tx.clone()
		ev.Transaction = &c
	}

	for id, sub := range t.subscribers {
		if !chflow.TrySend(sub.ch, ev) {
			logger.Warn(ctx, "subscriber buffer full, dropping tracker event",
				"subscriber.id", id,
				"event.seq", ev.Seq,
				"event.kind", ev.Kind,
			)
		}
	}
}
