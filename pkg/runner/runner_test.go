package runner

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"igposts/pkg/config"
	errs "igposts/pkg/errors"
	"igposts/pkg/fetcher"
	"igposts/pkg/logger"
	"igposts/pkg/models"
	"igposts/pkg/storage"
)

type recordingReporter struct {
	started  []string
	finished []ProfileResult
}

func (r *recordingReporter) ProfileStarted(index, total int, username string) {
	r.started = append(r.started, username)
}

func (r *recordingReporter) ProfileFinished(result ProfileResult) {
	r.finished = append(r.finished, result)
}

// panickyFetcher panics for one username and delegates otherwise
type panickyFetcher struct {
	next    Fetcher
	panicOn string
}

func (p *panickyFetcher) FetchUserPosts(ctx context.Context, username string, limit int) ([]models.RawPost, fetcher.Source) {
	if username == p.panicOn {
		panic("malformed record")
	}
	return p.next.FetchUserPosts(ctx, username, limit)
}

func newTestRunner(t *testing.T, cfg *config.Config, opts ...Option) (*Runner, string, *logger.TestLogger) {
	t.Helper()
	dir := t.TempDir()
	store, err := storage.NewManager(dir)
	require.NoError(t, err)

	log := logger.NewTestLogger()
	base := []Option{WithStorage(store), WithLogger(log)}
	r, err := New(cfg, append(base, opts...)...)
	require.NoError(t, err)
	return r, dir, log
}

func readPosts(t *testing.T, path string) []models.CanonicalPost {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var posts []models.CanonicalPost
	require.NoError(t, json.Unmarshal(data, &posts))
	return posts
}

func TestRunMockEndToEnd(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Mock = true
	cfg.MaxPostsPerProfile = config.NewPostLimit(3)
	cfg.RandomSeed = "bitbash"

	reporter := &recordingReporter{}
	r, dir, _ := newTestRunner(t, cfg, WithReporter(reporter))

	summary, err := r.Run(context.Background(), []string{"zuck"})
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, filepath.Join(dir, "data", "sample_output.json"), summary.OutputPath)
	assert.Equal(t, filepath.Join(dir, "data", "latest.json"), summary.SnapshotPath)
	assert.NoError(t, summary.SnapshotErr)
	require.Len(t, summary.Profiles, 1)
	assert.Equal(t, fetcher.SourceMock, summary.Profiles[0].Source)
	assert.Equal(t, []string{"zuck"}, reporter.started)
	require.Len(t, reporter.finished, 1)

	posts := readPosts(t, summary.OutputPath)
	require.Len(t, posts, 3)
	for i, p := range posts {
		assert.Equal(t, "zuck", p.Username)
		assert.Equal(t, i == 0, p.Pinned, "index %d", i)
		assert.False(t, p.CommentsDisabled)
		assert.Len(t, p.TaggedUsers, 1)
	}

	// index 0 satisfies i%5==0
	assert.Equal(t, models.MediaTypeVideo, posts[0].MediaType)
	assert.Equal(t, int64(1080), posts[0].DimensionsHeight)
	assert.Equal(t, models.MediaTypeImage, posts[1].MediaType)
	assert.Equal(t, int64(1350), posts[1].DimensionsHeight)
	assert.Equal(t, models.MediaTypeImage, posts[2].MediaType)

	assert.Equal(t, "Kris Jenner", posts[0].TaggedUsers[0].FullName)
	assert.Equal(t, "johndoe", posts[1].TaggedUsers[0].Username)

	require.NotNil(t, posts[0].LocationID)
	assert.Equal(t, "loc_5189_0", *posts[0].LocationID)
	assert.True(t, *posts[0].LocationHasPublicPage)
	assert.Nil(t, posts[1].LocationID)
	assert.Nil(t, posts[1].LocationHasPublicPage)

	snapshot := readPosts(t, summary.SnapshotPath)
	assert.Equal(t, posts, snapshot)
}

func TestRunCSV(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.OutputFormat = "CSV"
	cfg.MaxPostsPerProfile = config.NewPostLimit(2)

	r, dir, _ := newTestRunner(t, cfg)
	summary, err := r.Run(context.Background(), []string{"zuck", "instagram"})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "data", "sample_output.csv"), summary.OutputPath)
	data, err := os.ReadFile(summary.OutputPath)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, strings.Join(models.CSVColumns, ","), lines[0])

	// the snapshot is JSON regardless of format
	assert.Len(t, readPosts(t, summary.SnapshotPath), 4)
}

func TestRunCSVEmptyWritesEmptyFile(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.OutputFormat = config.FormatCSV

	r, _, _ := newTestRunner(t, cfg)
	summary, err := r.Run(context.Background(), nil)
	require.NoError(t, err)

	info, err := os.Stat(summary.OutputPath)
	require.NoError(t, err)
	assert.Zero(t, info.Size())

	data, err := os.ReadFile(summary.SnapshotPath)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(data))
}

func TestRunUnknownFormatWritesJSON(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.MaxPostsPerProfile = config.NewPostLimit(2)
	cfg.OutputFormat = "xml"

	r, _, log := newTestRunner(t, cfg)
	summary, err := r.Run(context.Background(), []string{"zuck"})
	require.NoError(t, err)

	assert.Equal(t, config.FormatJSON, summary.Format)
	assert.Equal(t, ".json", filepath.Ext(summary.OutputPath))
	assert.Len(t, readPosts(t, summary.OutputPath), 2)
	assert.True(t, log.HasMessage("unsupported output_format"))
}

func TestRunInvalidMaxPostsIsUnlimited(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.MaxPostsPerProfile = config.PostLimit{Raw: "lots"}

	r, _, log := newTestRunner(t, cfg)
	summary, err := r.Run(context.Background(), []string{"zuck"})
	require.NoError(t, err)

	assert.Equal(t, fetcher.DefaultMockCount, summary.Total)
	warnings := log.GetMessagesByLevel("WARN")
	require.NotEmpty(t, warnings)
	assert.Contains(t, warnings[0].Message, "max_posts_per_profile")
}

func TestRunIsolatesFailures(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.MaxPostsPerProfile = config.NewPostLimit(2)

	base := fetcher.New(cfg, fetcher.WithLogger(logger.NewNopLogger()))
	r, _, log := newTestRunner(t, cfg, WithFetcher(&panickyFetcher{next: base, panicOn: "broken"}))

	summary, err := r.Run(context.Background(), []string{"zuck", "broken", "@instagram/"})
	require.NoError(t, err)

	require.Len(t, summary.Profiles, 3)
	assert.NoError(t, summary.Profiles[0].Err)
	assert.True(t, errs.IsType(summary.Profiles[1].Err, errs.ErrorTypeParsing))
	assert.NoError(t, summary.Profiles[2].Err)
	assert.Equal(t, 1, summary.Failed())
	assert.Equal(t, 4, summary.Total)

	posts := readPosts(t, summary.OutputPath)
	assert.Equal(t, "zuck", posts[0].Username)
	assert.Equal(t, "instagram", posts[3].Username, "sanitized username is recorded")
	assert.Len(t, log.GetMessagesByLevel("ERROR"), 1)
}

func TestRunMockAcceptsAnyUsername(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.MaxPostsPerProfile = config.NewPostLimit(2)

	r, _, _ := newTestRunner(t, cfg)
	names := []string{"tom-jones", "josé", "averyveryverylongusernamethatexceeds30"}
	summary, err := r.Run(context.Background(), names)
	require.NoError(t, err)

	assert.Zero(t, summary.Failed())
	assert.Equal(t, 6, summary.Total)
	for i, p := range summary.Profiles {
		assert.Equal(t, fetcher.SourceMock, p.Source, names[i])
		assert.Equal(t, 2, p.Posts, names[i])
	}

	posts := readPosts(t, summary.OutputPath)
	assert.Equal(t, "josé", posts[2].Username)
}

func TestRunSnapshotFailureIsSwallowed(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.MaxPostsPerProfile = config.NewPostLimit(1)
	cfg.SnapshotPath = "snapshot-dir"

	r, dir, log := newTestRunner(t, cfg)
	// a non-empty directory cannot be replaced by the snapshot file
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "snapshot-dir", "keep"), 0755))

	summary, err := r.Run(context.Background(), []string{"zuck"})
	require.NoError(t, err)

	assert.Error(t, summary.SnapshotErr)
	assert.Empty(t, summary.SnapshotPath)
	assert.True(t, log.HasMessage("could not write snapshot"))
	assert.Len(t, readPosts(t, summary.OutputPath), 1)
}

func TestRunCancelled(t *testing.T) {
	r, _, _ := newTestRunner(t, config.DefaultConfig())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Run(ctx, []string{"zuck"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunIsReproducible(t *testing.T) {
	run := func() string {
		cfg := config.DefaultConfig()
		cfg.MaxPostsPerProfile = config.NewPostLimit(5)
		r, _, _ := newTestRunner(t, cfg)
		summary, err := r.Run(context.Background(), []string{"zuck", "instagram"})
		require.NoError(t, err)
		data, err := os.ReadFile(summary.OutputPath)
		require.NoError(t, err)
		return string(data)
	}

	first := run()
	time.Sleep(1100 * time.Millisecond)
	assert.Equal(t, first, run())
}
