package retry

import (
	"context"
	"math"
	"math/rand"
	"time"
)

// BackoffStrategy defines the interface for different backoff strategies
type BackoffStrategy interface {
	// NextDelay returns the delay to wait after the given failed attempt (1-based)
	NextDelay(attempt int) time.Duration
}

// ExponentialBackoff grows the delay geometrically up to MaxDelay and then
// adds a uniformly distributed jitter in [0, Jitter).
type ExponentialBackoff struct {
	// BaseDelay is the delay after the first failed attempt
	BaseDelay time.Duration
	// MaxDelay caps the exponential part, jitter is added on top
	MaxDelay time.Duration
	// Multiplier is the factor by which delay increases
	Multiplier float64
	// Jitter is the exclusive upper bound of the random extra delay
	Jitter time.Duration
	// Rand supplies the jitter; nil uses the package level source
	Rand *rand.Rand
}

// ProfileBackoff returns the backoff used for profile page fetches:
// 2s, 4s, 8s, 8s... plus up to one second of jitter.
func ProfileBackoff(rng *rand.Rand) *ExponentialBackoff {
	return &ExponentialBackoff{
		BaseDelay:  2 * time.Second,
		MaxDelay:   8 * time.Second,
		Multiplier: 2.0,
		Jitter:     time.Second,
		Rand:       rng,
	}
}

// NextDelay calculates the next delay with exponential backoff and jitter
func (eb *ExponentialBackoff) NextDelay(attempt int) time.Duration {
	if attempt <= 0 {
		return 0
	}

	delay := float64(eb.BaseDelay) * math.Pow(eb.Multiplier, float64(attempt-1))
	if eb.MaxDelay > 0 && delay > float64(eb.MaxDelay) {
		delay = float64(eb.MaxDelay)
	}

	if eb.Jitter > 0 {
		delay += eb.float64() * float64(eb.Jitter)
	}

	return time.Duration(delay)
}

func (eb *ExponentialBackoff) float64() float64 {
	if eb.Rand != nil {
		return eb.Rand.Float64()
	}
	return rand.Float64()
}

// ConstantBackoff implements constant delay backoff
type ConstantBackoff struct {
	Delay time.Duration
}

// NextDelay returns a constant delay
func (cb *ConstantBackoff) NextDelay(attempt int) time.Duration {
	if attempt <= 0 {
		return 0
	}
	return cb.Delay
}

// Wait waits for the specified duration or until context is cancelled
func Wait(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
