package services

import (
	"errors"
	"fmt"
	"time"

	"youngchai/internal/store"
)

// ErrRateLimited reports a write rejected by the spam throttle.
// Recoverable by waiting out the window.
var ErrRateLimited = errors.New("too many comments")

// RateLimiter bounds how many comments a single anonymized source may
// create per window. The count comes from the store on every call, so the
// limiter carries no state and stays consistent across concurrent
// handlers. The check-then-insert pair is not wrapped in a transaction: a
// concurrent burst can slightly overshoot the limit, accepted for an abuse
// deterrent.
type RateLimiter struct {
	store  *store.CommentStore
	max    int
	window time.Duration
}

func NewRateLimiter(s *store.CommentStore, max int, window time.Duration) *RateLimiter {
	return &RateLimiter{store: s, max: max, window: window}
}

// Allow decides whether a new write from ipHash is permitted right now.
func (r *RateLimiter) Allow(ipHash string) error {
	count, err := r.store.CountSince(ipHash, time.Now().Add(-r.window))
	if err != nil {
		return fmt.Errorf("rate limit check failed: %w", err)
	}
	if count >= int64(r.max) {
		return ErrRateLimited
	}
	return nil
}
