// Package ratelimit paces outbound profile page requests.
//
// TokenBucket wraps golang.org/x/time/rate with a burst of one, so a rate of
// 60 requests per minute spaces live requests one second apart. Mock runs
// never touch the network and do not consult a limiter.
//
//	limiter := ratelimit.NewTokenBucket(cfg.RequestsPerMinute)
//	if err := limiter.Wait(ctx); err != nil {
//		return err
//	}
package ratelimit
