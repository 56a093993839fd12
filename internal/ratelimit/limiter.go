// Package ratelimit caps form submissions per client with a fixed window
// counter kept in memory or in Redis.
package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrStore wraps failures of the backing store. The limiter fails open: the
// Result returned alongside it allows the request.
var ErrStore = errors.New("rate limit store unavailable")

// Result describes the outcome of a single check.
type Result struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetAfter time.Duration
}

type Limiter struct {
	store  Store
	limit  int
	window time.Duration
}

func New(store Store, limit int, window time.Duration) (*Limiter, error) {
	if store == nil {
		return nil, errors.New("rate limit store is required")
	}
	if limit <= 0 {
		return nil, fmt.Errorf("invalid limit %d", limit)
	}
	if window <= 0 {
		return nil, fmt.Errorf("invalid window %s", window)
	}
	return &Limiter{store: store, limit: limit, window: window}, nil
}

func (l *Limiter) Limit() int { return l.limit }

func (l *Limiter) Window() time.Duration { return l.window }

// Allow counts one hit for key. Every hit counts, including those that end up
// rejected further down the chain.
func (l *Limiter) Allow(ctx context.Context, key string) (Result, error) {
	count, ttl, err := l.store.Increment(ctx, key, l.window)
	if err != nil {
		return Result{Allowed: true, Limit: l.limit, Remaining: l.limit, ResetAfter: l.window},
			errors.Join(ErrStore, err)
	}
	if ttl <= 0 || ttl > l.window {
		ttl = l.window
	}

	remaining := l.limit - int(count)
	if remaining < 0 {
		remaining = 0
	}
	return Result{
		Allowed:    count <= int64(l.limit),
		Limit:      l.limit,
		Remaining:  remaining,
		ResetAfter: ttl,
	}, nil
}
