package memory

import (
	"context"
	"sync"

	"github.com/alanyang/assignit/internal/domain/event"
	porteventbus "github.com/alanyang/assignit/internal/port/eventbus"
)

var _ porteventbus.EventBus = (*EventBus)(nil)

// EventBus fans events out to in-process subscribers. Publish calls each
// handler of the event's channel synchronously, in subscription order.
type EventBus struct {
	mu   sync.RWMutex
	subs map[event.Channel][]*subscription
}

func NewEventBus() *EventBus {
	return &EventBus{subs: make(map[event.Channel][]*subscription)}
}

func (eb *EventBus) Publish(_ context.Context, e event.Event) error {
	ch := event.ChannelFor(e.Type)

	eb.mu.RLock()
	subs := make([]*subscription, len(eb.subs[ch]))
	copy(subs, eb.subs[ch])
	eb.mu.RUnlock()

	for _, sub := range subs {
		if sub.ctx.Err() != nil {
			continue
		}
		sub.handler(sub.ctx, e)
	}
	return nil
}

// Subscribe registers handler until Unsubscribe is called or ctx is done.
func (eb *EventBus) Subscribe(ctx context.Context, ch event.Channel, handler porteventbus.Handler) (porteventbus.Subscription, error) {
	subCtx, cancel := context.WithCancel(ctx)
	sub := &subscription{ctx: subCtx, handler: handler}

	eb.mu.Lock()
	eb.subs[ch] = append(eb.subs[ch], sub)
	eb.mu.Unlock()

	var once sync.Once
	sub.cancel = func() {
		once.Do(func() {
			cancel()
			eb.remove(ch, sub)
		})
	}
	context.AfterFunc(subCtx, sub.cancel)

	return sub, nil
}

func (eb *EventBus) remove(ch event.Channel, target *subscription) {
	eb.mu.Lock()
	defer eb.mu.Unlock()
	list := eb.subs[ch]
	for i, s := range list {
		if s == target {
			eb.subs[ch] = append(list[:i:i], list[i+1:]...)
			return
		}
	}
}

type subscription struct {
	ctx     context.Context
	handler porteventbus.Handler
	cancel  func()
}

func (s *subscription) Unsubscribe() { s.cancel() }
