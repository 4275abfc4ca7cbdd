package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/alanyang/assignit/internal/domain/event"
)

// EventRecorder captures events delivered to Handle. Pass Handle to
// EventBus.Subscribe. Safe for concurrent use.
type EventRecorder struct {
	mu     sync.Mutex
	events []event.Event
	notify chan struct{}
}

func NewEventRecorder() *EventRecorder {
	return &EventRecorder{notify: make(chan struct{}, 1)}
}

func (r *EventRecorder) Handle(_ context.Context, e event.Event) {
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()

	select {
	case r.notify <- struct{}{}:
	default:
	}
}

// Events returns a copy of everything recorded so far.
func (r *EventRecorder) Events() []event.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]event.Event, len(r.events))
	copy(out, r.events)
	return out
}

// Types returns the recorded event types for one board, in delivery order.
func (r *EventRecorder) Types(boardID uuid.UUID) []event.Type {
	var out []event.Type
	for _, e := range r.Events() {
		if e.BoardID == boardID {
			out = append(out, e.Type)
		}
	}
	return out
}

// WaitFor blocks until an event of type t for boardID arrives or timeout passes.
func (r *EventRecorder) WaitFor(boardID uuid.UUID, t event.Type, timeout time.Duration) bool {
	deadline := time.NewTimer(timeout)
	defer deadline.Stop()
	for {
		for _, got := range r.Types(boardID) {
			if got == t {
				return true
			}
		}
		select {
		case <-r.notify:
		case <-deadline.C:
			return false
		}
	}
}
