package fetch

import (
	"context"
	"sync"
	"time"
)

// originLimiter enforces a minimum delay between requests to the same host.
// It keeps the last-request time per origin; Wait blocks until the origin's
// quiet period has elapsed or the context is canceled.
type originLimiter struct {
	mu    sync.Mutex
	last  map[string]time.Time
	delay time.Duration
}

func newOriginLimiter(delay time.Duration) *originLimiter {
	return &originLimiter{
		last:  make(map[string]time.Time),
		delay: delay,
	}
}

// Wait blocks until a request to host is allowed, then records the slot.
// The slot is reserved under the lock, so concurrent callers for one host
// queue up rather than racing through together.
func (l *originLimiter) Wait(ctx context.Context, host string) error {
	if l.delay <= 0 {
		return nil
	}

	l.mu.Lock()
	now := time.Now()
	allowed := now
	if prev, ok := l.last[host]; ok {
		if next := prev.Add(l.delay); next.After(now) {
			allowed = next
		}
	}
	l.last[host] = allowed
	l.mu.Unlock()

	wait := time.Until(allowed)
	if wait <= 0 {
		return nil
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
