package fetcher

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"math/rand"
	"time"

	"igposts/pkg/config"
	errs "igposts/pkg/errors"
	"igposts/pkg/instagram"
	"igposts/pkg/logger"
	"igposts/pkg/models"
	"igposts/pkg/ratelimit"
	"igposts/pkg/retry"
)

// Source says where a batch of raw posts came from
type Source string

const (
	SourceMock     Source = "mock"
	SourceLive     Source = "live"
	SourceFallback Source = "fallback"
)

// PageClient fetches the HTML of a profile page
type PageClient interface {
	FetchProfileHTML(ctx context.Context, username string) (string, error)
}

// Fetcher produces raw posts for a username, generated or scraped
type Fetcher struct {
	mock       bool
	maxRetries int

	client  PageClient
	limiter ratelimit.Limiter
	backoff retry.BackoffStrategy
	rng     *rand.Rand
	now     func() time.Time
	logger  logger.Logger
}

// Option configures a Fetcher
type Option func(*Fetcher)

// WithClient replaces the profile page client
func WithClient(c PageClient) Option {
	return func(f *Fetcher) { f.client = c }
}

// WithClock replaces the time source used for scraped post timestamps
func WithClock(now func() time.Time) Option {
	return func(f *Fetcher) { f.now = now }
}

// WithBackoff replaces the delay schedule between live attempts
func WithBackoff(b retry.BackoffStrategy) Option {
	return func(f *Fetcher) { f.backoff = b }
}

// WithLimiter replaces the request limiter
func WithLimiter(l ratelimit.Limiter) Option {
	return func(f *Fetcher) { f.limiter = l }
}

// WithLogger sets the logger
func WithLogger(l logger.Logger) Option {
	return func(f *Fetcher) { f.logger = l }
}

// New builds a Fetcher from settings. The random source is owned by the
// Fetcher and seeded from cfg.RandomSeed, so two Fetchers built from the same
// settings produce the same jitter and live counts.
func New(cfg *config.Config, opts ...Option) *Fetcher {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	f := &Fetcher{
		mock:       cfg.Mock,
		maxRetries: cfg.MaxRetries,
		rng:        rand.New(rand.NewSource(SeedFromString(cfg.RandomSeed))),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}

	if f.logger == nil {
		f.logger = logger.GetLogger()
	}
	if f.client == nil {
		f.client = instagram.NewClient("", cfg.UserAgent, cfg.Timeout(), f.logger)
	}
	if f.limiter == nil {
		f.limiter = ratelimit.NewTokenBucket(cfg.RequestsPerMinute)
	}
	if f.backoff == nil {
		f.backoff = retry.ProfileBackoff(f.rng)
	}
	if f.maxRetries < 1 {
		f.maxRetries = 1
	}

	return f
}

// SeedFromString maps a seed string onto an int64 seed
func SeedFromString(seed string) int64 {
	sum := sha256.Sum256([]byte(seed))
	return int64(binary.BigEndian.Uint64(sum[:8]))
}

// FetchUserPosts returns raw posts for username. A limit of zero or less
// means no limit for live scans and the default count for mock posts.
// Live failures never surface: they are logged and answered with mock posts.
func (f *Fetcher) FetchUserPosts(ctx context.Context, username string, limit int) ([]models.RawPost, Source) {
	if f.mock {
		return f.MockPosts(username, limit), SourceMock
	}

	posts, err := f.livePosts(ctx, username, limit)
	switch {
	case errs.IsType(err, errs.ErrorTypeNoContent):
		f.logger.InfoWithFields("no shortcodes found, falling back to mock", map[string]interface{}{
			"username": username,
		})
		return f.MockPosts(username, limit), SourceFallback
	case err != nil:
		f.logger.WarnWithFields("live fetch failed, falling back to mock", map[string]interface{}{
			"username": username,
			"error":    err.Error(),
		})
		return f.MockPosts(username, limit), SourceFallback
	}
	return posts, SourceLive
}

func (f *Fetcher) livePosts(ctx context.Context, username string, limit int) (posts []models.RawPost, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errs.New(errs.ErrorTypeParsing, 0, "scrape panicked: %v", r)
		}
	}()

	// mock posts accept any name; only the profile URL needs a valid one
	if !instagram.IsValidUsername(username) {
		return nil, errs.New(errs.ErrorTypeInput, 0, "username %q cannot be used in a profile URL", username)
	}

	html, err := f.fetchHTML(ctx, username)
	if err != nil {
		return nil, err
	}

	shortcodes := instagram.ExtractShortcodes(html, limit)
	f.logger.DebugWithFields("scanned profile page", map[string]interface{}{
		"username":   username,
		"bytes":      len(html),
		"shortcodes": len(shortcodes),
	})
	if len(shortcodes) == 0 {
		return nil, errs.New(errs.ErrorTypeNoContent, 0, "no post links on the profile page of %s", username)
	}

	return f.scrapedPosts(username, shortcodes), nil
}

func (f *Fetcher) fetchHTML(ctx context.Context, username string) (string, error) {
	cfg := &retry.Config{
		MaxAttempts: f.maxRetries,
		Backoff:     f.backoff,
		Context:     ctx,
		Logger:      f.logger,
		// every failed GET is retried, whatever the status
		RetryIf: func(err error) bool {
			return !errs.IsType(err, errs.ErrorTypeParsing) && ctx.Err() == nil
		},
		OnRetry: func(attempt int, err error, delay time.Duration) {
			f.logger.DebugWithFields("profile page attempt failed", map[string]interface{}{
				"username": username,
				"attempt":  attempt,
				"error":    err.Error(),
				"retry_in": delay.String(),
			})
		},
	}

	return retry.DoWithResult(func() (string, error) {
		if err := f.limiter.Wait(ctx); err != nil {
			return "", errs.Wrap(errs.ErrorTypeRateLimit, err, "waiting for request slot")
		}
		return f.client.FetchProfileHTML(ctx, username)
	}, cfg)
}

// scrapedPosts builds raw posts for shortcodes found on a profile page.
// Counts are drawn from the Fetcher's random source.
func (f *Fetcher) scrapedPosts(username string, shortcodes []string) []models.RawPost {
	now := f.now().Unix()
	posts := make([]models.RawPost, 0, len(shortcodes))
	for n, sc := range shortcodes {
		posts = append(posts, models.RawPost{
			"id":                DeterministicID(username, n),
			"shortcode":         sc,
			"caption":           "",
			"timestamp":         now - int64(n)*86400,
			"likes":             100 + f.rng.Intn(10000-100+1),
			"comments":          f.rng.Intn(500 + 1),
			"mediaType":         models.MediaTypeImage,
			"displayUrl":        instagram.PostURL(instagram.BaseURL, sc),
			"thumbnailUrl":      instagram.MediaURL(instagram.BaseURL, sc),
			"dimensions_width":  1080,
			"dimensions_height": 1350,
			"tags":              []interface{}{},
			"commentsDisabled":  false,
			"pinned":            false,
		})
	}
	return posts
}
