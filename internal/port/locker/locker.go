package locker

import "context"

// AdvisoryLocker serialises critical sections per key.
// The board service takes one lock per board around read-validate-write, so a
// board has a single writer at a time.
type AdvisoryLocker interface {
	WithLock(ctx context.Context, key int64, fn func(ctx context.Context) error) error
}
