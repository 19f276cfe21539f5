// Package ratelimit throttles calls to the external comment API. The
// spacing between calls is a politeness requirement of that API, not a
// correctness one.
package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// CommentLimiter enforces a minimum interval between calls and an optional
// daily request budget. Counters reset every 24 hours.
type CommentLimiter struct {
	mu          sync.Mutex
	minInterval time.Duration
	dailyLimit  int
	count       int
	lastCall    time.Time
	resetTime   time.Time
}

func NewCommentLimiter(minInterval time.Duration, dailyLimit int) *CommentLimiter {
	return &CommentLimiter{
		minInterval: minInterval,
		dailyLimit:  dailyLimit,
		resetTime:   time.Now().Add(24 * time.Hour),
	}
}

// Acquire blocks until the next call is allowed, then consumes one unit of
// the budget. Returns an error when the daily budget is spent or the
// context ends while waiting.
func (l *CommentLimiter) Acquire(ctx context.Context) error {
	l.mu.Lock()
	if time.Now().After(l.resetTime) {
		l.count = 0
		l.resetTime = time.Now().Add(24 * time.Hour)
	}
	if l.dailyLimit > 0 && l.count >= l.dailyLimit {
		l.mu.Unlock()
		return fmt.Errorf("comment API daily limit reached (%d)", l.dailyLimit)
	}

	wait := l.minInterval - time.Since(l.lastCall)
	l.count++
	l.lastCall = time.Now().Add(wait)
	l.mu.Unlock()

	if wait <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(wait):
		return nil
	}
}

// Stats reports the current budget usage.
func (l *CommentLimiter) Stats() (used, limit int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.count, l.dailyLimit
}
