package ratelimit

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Limiter defines the interface for rate limiting
type Limiter interface {
	// Allow checks if a request is allowed under the current rate limit
	Allow() bool
	// Wait blocks until the rate limit allows another request or ctx is done
	Wait(ctx context.Context) error
}

// TokenBucket paces live profile requests over a one minute window
type TokenBucket struct {
	limiter *rate.Limiter
}

// NewTokenBucket allows requestsPerMinute requests per minute with a burst of one.
// A non-positive rate disables limiting.
func NewTokenBucket(requestsPerMinute int) *TokenBucket {
	if requestsPerMinute <= 0 {
		return &TokenBucket{limiter: rate.NewLimiter(rate.Inf, 1)}
	}
	every := time.Minute / time.Duration(requestsPerMinute)
	return &TokenBucket{limiter: rate.NewLimiter(rate.Every(every), 1)}
}

// Allow checks if a request can proceed right now
func (tb *TokenBucket) Allow() bool {
	return tb.limiter.Allow()
}

// Wait blocks until a token is available
func (tb *TokenBucket) Wait(ctx context.Context) error {
	return tb.limiter.Wait(ctx)
}

// Unlimited never blocks
type Unlimited struct{}

// Allow always returns true
func (Unlimited) Allow() bool { return true }

// Wait returns only the context's error
func (Unlimited) Wait(ctx context.Context) error { return ctx.Err() }
