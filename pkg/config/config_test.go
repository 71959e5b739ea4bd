package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "data/sample_output.json", cfg.OutputPath)
	assert.Equal(t, FormatJSON, cfg.OutputFormat)
	assert.Equal(t, 15, cfg.RequestTimeout)
	assert.Equal(t, 15*time.Second, cfg.Timeout())
	assert.True(t, cfg.Mock)
	assert.Equal(t, 3, cfg.MaxRetries)
	assert.Equal(t, "bitbash", cfg.RandomSeed)
	assert.Equal(t, "data/latest.json", cfg.SnapshotPath)
	assert.Equal(t, "info", cfg.Logging.Level)

	limit, err := cfg.MaxPostsPerProfile.Resolve()
	require.NoError(t, err)
	assert.Equal(t, 0, limit, "unset limit means unlimited")
}

func TestLoadFromJSONSettingsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.json")
	content := `{
  "output_path": "out/posts.json",
  "max_posts_per_profile": 3,
  "output_format": "CSV",
  "mock": false,
  "max_retries": 5,
  "random_seed": "seed-1",
  "request_timeout": 7,
  "log_level": "debug"
}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg := DefaultConfig()
	require.NoError(t, cfg.LoadFromFile(path))

	assert.Equal(t, "out/posts.json", cfg.OutputPath)
	assert.Equal(t, FormatCSV, cfg.Format())
	assert.False(t, cfg.Mock)
	assert.Equal(t, 5, cfg.MaxRetries)
	assert.Equal(t, "seed-1", cfg.RandomSeed)
	assert.Equal(t, 7*time.Second, cfg.Timeout())
	assert.Equal(t, "debug", cfg.Logging.Level)
	// untouched keys keep their defaults
	assert.Equal(t, "data/latest.json", cfg.SnapshotPath)

	limit, err := cfg.MaxPostsPerProfile.Resolve()
	require.NoError(t, err)
	assert.Equal(t, 3, limit)
}

func TestPostLimitResolve(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		want    int
		wantErr bool
	}{
		{"integer", "max_posts_per_profile: 12", 12, false},
		{"quoted integer", `max_posts_per_profile: "4"`, 4, false},
		{"float", "max_posts_per_profile: 5.0", 5, false},
		{"null", "max_posts_per_profile: null", 0, false},
		{"empty string", `max_posts_per_profile: ""`, 0, false},
		{"zero", "max_posts_per_profile: 0", 0, false},
		{"word", "max_posts_per_profile: lots", 0, true},
		{"negative", "max_posts_per_profile: -2", 0, true},
		{"list", "max_posts_per_profile: [1, 2]", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			require.NoError(t, yaml.Unmarshal([]byte(tt.doc), cfg))

			got, err := cfg.MaxPostsPerProfile.Resolve()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("IGPOSTS_OUTPUT_FORMAT", "csv")
	t.Setenv("IGPOSTS_MAX_POSTS", "9")
	t.Setenv("IGPOSTS_MOCK", "false")
	t.Setenv("IGPOSTS_MAX_RETRIES", "1")
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("IGPOSTS_LOG_LEVEL", "debug")

	cfg := DefaultConfig()
	require.NoError(t, cfg.LoadFromEnv())

	assert.Equal(t, "csv", cfg.OutputFormat)
	assert.False(t, cfg.Mock)
	assert.Equal(t, 1, cfg.MaxRetries)
	assert.Equal(t, "debug", cfg.Logging.Level, "IGPOSTS_LOG_LEVEL wins over LOG_LEVEL")

	limit, err := cfg.MaxPostsPerProfile.Resolve()
	require.NoError(t, err)
	assert.Equal(t, 9, limit)
}

func TestLoadFromEnvRejectsBadInteger(t *testing.T) {
	t.Setenv("IGPOSTS_REQUEST_TIMEOUT", "soon")

	cfg := DefaultConfig()
	assert.Error(t, cfg.LoadFromEnv())
}

func TestFormatFallsBackToJSON(t *testing.T) {
	tests := []struct {
		raw     string
		want    string
		unknown bool
	}{
		{"", FormatJSON, false},
		{"json", FormatJSON, false},
		{" CSV ", FormatCSV, false},
		{"xml", FormatJSON, true},
		{"parquet", FormatJSON, true},
	}

	for _, tt := range tests {
		cfg := DefaultConfig()
		cfg.OutputFormat = tt.raw
		assert.Equal(t, tt.want, cfg.Format(), tt.raw)
		assert.Equal(t, tt.unknown, cfg.UnknownFormat(), tt.raw)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"csv format", func(c *Config) { c.OutputFormat = "CSV" }, false},
		{"unknown format", func(c *Config) { c.OutputFormat = "xml" }, false},
		{"zero timeout", func(c *Config) { c.RequestTimeout = 0 }, true},
		{"negative retries", func(c *Config) { c.MaxRetries = -1 }, true},
		{"bad log level", func(c *Config) { c.Logging.Level = "loud" }, true},
		{"empty output", func(c *Config) { c.OutputPath = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMergeCommandLineFlags(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MergeCommandLineFlags(map[string]interface{}{
		"output":      "x/y.json",
		"format":      "csv",
		"max-posts":   2,
		"live":        true,
		"seed":        "abc",
		"max-retries": 0,
	})

	assert.Equal(t, "x/y.json", cfg.OutputPath)
	assert.Equal(t, "csv", cfg.OutputFormat)
	assert.False(t, cfg.Mock)
	assert.Equal(t, "abc", cfg.RandomSeed)
	assert.Equal(t, 0, cfg.MaxRetries)

	limit, err := cfg.MaxPostsPerProfile.Resolve()
	require.NoError(t, err)
	assert.Equal(t, 2, limit)
}

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "igposts.yaml")

	cfg := DefaultConfig()
	cfg.MaxPostsPerProfile = NewPostLimit(7)
	cfg.OutputFormat = FormatCSV
	require.NoError(t, cfg.Save(path))

	reloaded := DefaultConfig()
	require.NoError(t, reloaded.LoadFromFile(path))
	assert.Equal(t, FormatCSV, reloaded.OutputFormat)

	limit, err := reloaded.MaxPostsPerProfile.Resolve()
	require.NoError(t, err)
	assert.Equal(t, 7, limit)
}
