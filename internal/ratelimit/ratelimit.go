// Package ratelimit implements the admission gate every outbound device call
// goes through. The bucket is windowed rather than smoothed: all tokens come
// back at once when the window rolls over.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

const pollInterval = 50 * time.Millisecond

// Limiter is a burst token bucket. Blocked callers poll coarsely instead of
// waking precisely on refill; starvation stays bounded by the window length.
type Limiter struct {
	mu          sync.Mutex
	capacity    int
	window      time.Duration
	tokens      int
	windowStart time.Time
}

// New creates a limiter granting capacity tokens per window.
func New(capacity int, window time.Duration) *Limiter {
	return &Limiter{
		capacity:    capacity,
		window:      window,
		tokens:      capacity,
		windowStart: time.Now(),
	}
}

// Acquire blocks until a token is available, then consumes it. It only fails
// when the context is cancelled.
func (l *Limiter) Acquire(ctx context.Context) error {
	for {
		if l.tryAcquire() {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(pollInterval):
		}
	}
}

func (l *Limiter) tryAcquire() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	if now.Sub(l.windowStart) >= l.window {
		l.tokens = l.capacity
		l.windowStart = now
	}

	if l.tokens > 0 {
		l.tokens--
		return true
	}
	return false
}

// Available returns the token count after applying any pending refill.
func (l *Limiter) Available() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	if time.Since(l.windowStart) >= l.window {
		l.tokens = l.capacity
		l.windowStart = time.Now()
	}
	return l.tokens
}
