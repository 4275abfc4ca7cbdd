package wire

import (
	"context"
	"log/slog"
	"time"
)

// purger drops expired idempotency records.
type purger interface {
	Purge(ctx context.Context) (int64, error)
}

// startJanitor purges expired idempotency records every interval until ctx is
// done. The first purge runs immediately so records left over from before a
// restart do not linger for a full interval.
func startJanitor(ctx context.Context, p purger, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			runPurge(ctx, p)
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()
}

func runPurge(ctx context.Context, p purger) {
	n, err := p.Purge(ctx)
	if err != nil {
		if ctx.Err() == nil {
			slog.ErrorContext(ctx, "janitor: idempotency purge failed", "error", err)
		}
		return
	}
	if n > 0 {
		slog.InfoContext(ctx, "janitor: purged idempotency records", "count", n)
	}
}
