// Package retry provides exponential backoff and retry logic for transient
// failures of profile page requests.
//
//	cfg := &retry.Config{
//		MaxAttempts: 3,
//		Backoff:     retry.ProfileBackoff(rng),
//		Context:     ctx,
//		Logger:      log,
//	}
//	html, err := retry.DoWithResult(func() (string, error) {
//		return client.FetchProfileHTML(ctx, username)
//	}, cfg)
//
// Network failures and non-200 answers are retried; parse and input errors
// are returned immediately. Context cancellation stops the wait between
// attempts.
package retry
