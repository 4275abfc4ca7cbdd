package memory

import (
	"context"
	"fmt"
	"sync"

	portlocker "github.com/alanyang/assignit/internal/port/locker"
)

var _ portlocker.AdvisoryLocker = (*Locker)(nil)

// Locker is a per-key mutex. Waiting honours ctx cancellation.
type Locker struct {
	mu    sync.Mutex
	slots map[int64]chan struct{}
}

func NewLocker() *Locker {
	return &Locker{slots: make(map[int64]chan struct{})}
}

func (l *Locker) WithLock(ctx context.Context, key int64, fn func(ctx context.Context) error) error {
	slot := l.slot(key)
	select {
	case slot <- struct{}{}:
	case <-ctx.Done():
		return fmt.Errorf("acquire lock: %w", ctx.Err())
	}
	defer func() { <-slot }()

	return fn(ctx)
}

func (l *Locker) slot(key int64) chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()
	ch, ok := l.slots[key]
	if !ok {
		ch = make(chan struct{}, 1)
		l.slots[key] = ch
	}
	return ch
}
