package runner

import (
	"context"
	"fmt"
	"io"
	"runtime/debug"
	"time"

	"igposts/pkg/config"
	errs "igposts/pkg/errors"
	"igposts/pkg/export"
	"igposts/pkg/extractors"
	"igposts/pkg/fetcher"
	"igposts/pkg/instagram"
	"igposts/pkg/logger"
	"igposts/pkg/models"
	"igposts/pkg/storage"
)

// Fetcher is the part of fetcher.Fetcher the runner needs
type Fetcher interface {
	FetchUserPosts(ctx context.Context, username string, limit int) ([]models.RawPost, fetcher.Source)
}

// Reporter is told about progress through the username list
type Reporter interface {
	ProfileStarted(index, total int, username string)
	ProfileFinished(result ProfileResult)
}

// ProfileResult describes what one username contributed to a run
type ProfileResult struct {
	Username string
	Posts    int
	Source   fetcher.Source
	Err      error
	Duration time.Duration
}

// Summary describes a finished run
type Summary struct {
	Profiles     []ProfileResult
	Total        int
	Format       string
	OutputPath   string
	SnapshotPath string
	// SnapshotErr is set when the snapshot could not be written; the run still succeeds
	SnapshotErr error
	Duration    time.Duration
}

// Failed returns the number of usernames that contributed nothing because of an error
func (s *Summary) Failed() int {
	n := 0
	for _, p := range s.Profiles {
		if p.Err != nil {
			n++
		}
	}
	return n
}

// Runner processes usernames one at a time and exports the collected posts
type Runner struct {
	cfg      *config.Config
	fetcher  Fetcher
	store    *storage.Manager
	reporter Reporter
	logger   logger.Logger
	now      func() time.Time
}

// Option configures a Runner
type Option func(*Runner)

// WithFetcher replaces the fetcher built from settings
func WithFetcher(f Fetcher) Option {
	return func(r *Runner) { r.fetcher = f }
}

// WithStorage replaces the storage manager rooted at the working directory
func WithStorage(m *storage.Manager) Option {
	return func(r *Runner) { r.store = m }
}

// WithReporter sets a progress reporter
func WithReporter(rep Reporter) Option {
	return func(r *Runner) { r.reporter = rep }
}

// WithLogger sets the logger
func WithLogger(l logger.Logger) Option {
	return func(r *Runner) { r.logger = l }
}

// New creates a Runner for cfg
func New(cfg *config.Config, opts ...Option) (*Runner, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	r := &Runner{cfg: cfg, now: time.Now}
	for _, opt := range opts {
		opt(r)
	}

	if r.logger == nil {
		r.logger = logger.GetLogger()
	}
	if r.store == nil {
		store, err := storage.NewManager(".")
		if err != nil {
			return nil, err
		}
		r.store = store
	}
	if r.fetcher == nil {
		r.fetcher = fetcher.New(cfg, fetcher.WithLogger(r.logger))
	}

	return r, nil
}

// Storage returns the storage manager used for outputs
func (r *Runner) Storage() *storage.Manager {
	return r.store
}

// maxPosts resolves the per-profile limit; an unusable value means no limit
func (r *Runner) maxPosts() int {
	limit, err := r.cfg.MaxPostsPerProfile.Resolve()
	if err != nil {
		r.logger.WarnWithFields("invalid max_posts_per_profile in settings, ignoring", map[string]interface{}{
			"value": r.cfg.MaxPostsPerProfile.Raw,
			"error": err.Error(),
		})
		return 0
	}
	return limit
}

// Run fetches, enriches and normalizes posts for every username in order,
// then writes the output file and the latest snapshot. Per-username failures
// are logged and skipped; only an output write failure or cancellation is
// returned as an error.
func (r *Runner) Run(ctx context.Context, usernames []string) (*Summary, error) {
	start := r.now()
	limit := r.maxPosts()

	if r.cfg.UnknownFormat() {
		r.logger.WarnWithFields("unsupported output_format in settings, writing json", map[string]interface{}{
			"output_format": r.cfg.OutputFormat,
		})
	}

	r.logger.InfoWithFields("starting run", map[string]interface{}{
		"usernames": len(usernames),
		"mock":      r.cfg.Mock,
		"limit":     limit,
		"format":    r.cfg.Format(),
	})

	summary := &Summary{Format: r.cfg.Format()}
	rows := make([]models.CanonicalPost, 0)

	for i, username := range usernames {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("run cancelled: %w", err)
		}
		if r.reporter != nil {
			r.reporter.ProfileStarted(i, len(usernames), username)
		}

		profileStart := r.now()
		posts, source, err := r.processProfile(ctx, username, limit)
		result := ProfileResult{
			Username: username,
			Posts:    len(posts),
			Source:   source,
			Err:      err,
			Duration: r.now().Sub(profileStart),
		}

		if err != nil {
			r.logger.ErrorWithFields("failed to fetch or parse posts", map[string]interface{}{
				"username": username,
				"error":    err.Error(),
			})
		} else {
			rows = append(rows, posts...)
			r.logger.InfoWithFields("fetched posts", map[string]interface{}{
				"username": username,
				"posts":    len(posts),
				"source":   string(source),
			})
		}

		summary.Profiles = append(summary.Profiles, result)
		if r.reporter != nil {
			r.reporter.ProfileFinished(result)
		}
	}

	summary.Total = len(rows)

	outputPath, err := r.writeOutput(rows)
	if err != nil {
		return nil, err
	}
	summary.OutputPath = outputPath

	summary.SnapshotPath, summary.SnapshotErr = r.writeSnapshot(rows)
	summary.Duration = r.now().Sub(start)

	return summary, nil
}

// processProfile runs the pipeline for one username. Panics raised while
// handling malformed records are turned into errors so the run goes on.
func (r *Runner) processProfile(ctx context.Context, username string, limit int) (posts []models.CanonicalPost, source fetcher.Source, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.DebugWithFields("recovered from panic", map[string]interface{}{
				"username": username,
				"stack":    string(debug.Stack()),
			})
			posts = nil
			err = errs.New(errs.ErrorTypeParsing, 0, "processing @%s panicked: %v", username, rec)
		}
	}()

	clean := instagram.SanitizeUsername(username)

	raws, source := r.fetcher.FetchUserPosts(ctx, clean, limit)
	extractors.EnrichAll(raws)
	return extractors.NormalizePosts(clean, raws), source, nil
}

func (r *Runner) writeOutput(rows []models.CanonicalPost) (string, error) {
	path := r.cfg.OutputPath
	write := func(w io.Writer) error { return export.WriteJSON(w, rows) }

	if r.cfg.Format() == config.FormatCSV {
		path = storage.WithExtension(path, ".csv")
		write = func(w io.Writer) error { return export.WriteCSV(w, rows) }
	}

	written, err := r.store.WriteFile(path, write)
	if err != nil {
		return "", fmt.Errorf("export %s: %w", r.cfg.Format(), err)
	}

	r.logger.InfoWithFields("exported rows", map[string]interface{}{
		"rows":  len(rows),
		"path":  written,
		"bytes": r.store.BytesWritten(written),
	})
	return written, nil
}

// writeSnapshot always writes JSON; failures are only logged at debug level
func (r *Runner) writeSnapshot(rows []models.CanonicalPost) (string, error) {
	if r.cfg.SnapshotPath == "" {
		return "", nil
	}

	written, err := r.store.WriteFile(r.cfg.SnapshotPath, func(w io.Writer) error {
		return export.WriteJSON(w, rows)
	})
	if err != nil {
		r.logger.DebugWithFields("could not write snapshot", map[string]interface{}{
			"path":  r.store.Resolve(r.cfg.SnapshotPath),
			"error": err.Error(),
		})
		return "", err
	}
	return written, nil
}
