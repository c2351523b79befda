package engine

import (
	"context"
	"time"
)

// FlushInterval is how often the scheduler re-checks the day boundary.
// Coarse on purpose: rollover only needs to land within a few minutes of
// midnight.
const FlushInterval = time.Minute

// StartAutoFlush runs the day-boundary check on a ticker until the returned
// stop function is called or ctx is cancelled. The scheduler owns no state:
// it only triggers the session's own rollover, which runs on the same
// serialized mutation path as every user action.
func (s *Session) StartAutoFlush(ctx context.Context, interval time.Duration) (stop func()) {
	if interval <= 0 {
		interval = FlushInterval
	}
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	go func() {
		defer close(done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				// A failed flush retries on the next tick.
				_, _ = s.Rollover(ctx)
			}
		}
	}()

	return func() {
		cancel()
		<-done
	}
}
