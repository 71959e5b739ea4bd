package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	// FormatJSON writes the run as a JSON array
	FormatJSON = "json"
	// FormatCSV writes the run as a CSV table
	FormatCSV = "csv"

	// DefaultSeed seeds the fetcher's random source when none is configured
	DefaultSeed = "bitbash"

	// DefaultUserAgent is sent with live profile page requests
	DefaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"
)

// Config holds all settings for a posts export run.
// Keys are flat so an existing settings.json can be loaded as is; YAML is accepted as well.
type Config struct {
	OutputPath         string    `yaml:"output_path" json:"output_path"`
	MaxPostsPerProfile PostLimit `yaml:"max_posts_per_profile" json:"max_posts_per_profile"`
	OutputFormat       string    `yaml:"output_format" json:"output_format"`
	UserAgent          string    `yaml:"user_agent" json:"user_agent"`
	// RequestTimeout is expressed in seconds
	RequestTimeout    int    `yaml:"request_timeout" json:"request_timeout"`
	Mock              bool   `yaml:"mock" json:"mock"`
	MaxRetries        int    `yaml:"max_retries" json:"max_retries"`
	RandomSeed        string `yaml:"random_seed" json:"random_seed"`
	InputPath         string `yaml:"input_path" json:"input_path"`
	SnapshotPath      string `yaml:"snapshot_path" json:"snapshot_path"`
	RequestsPerMinute int    `yaml:"requests_per_minute" json:"requests_per_minute"`

	// Logging configuration, flattened into log_level and log_file
	Logging LoggingConfig `yaml:",inline" json:"logging"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `yaml:"log_level" json:"log_level"`
	File  string `yaml:"log_file" json:"log_file"`
}

// PostLimit keeps max_posts_per_profile exactly as written so that a
// malformed value can be reported at run time instead of failing the load.
type PostLimit struct {
	Raw string
}

// NewPostLimit returns a limit holding n
func NewPostLimit(n int) PostLimit {
	if n == 0 {
		return PostLimit{}
	}
	return PostLimit{Raw: strconv.Itoa(n)}
}

// UnmarshalYAML accepts any scalar, including null and the empty string.
func (p *PostLimit) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		if value.Tag == "!!null" {
			p.Raw = ""
			return nil
		}
		p.Raw = value.Value
	case yaml.AliasNode:
		return p.UnmarshalYAML(value.Alias)
	default:
		// kept so Resolve reports it
		p.Raw = fmt.Sprintf("<%s>", kindName(value.Kind))
	}
	return nil
}

// MarshalYAML writes the limit back as a number when it is one.
func (p PostLimit) MarshalYAML() (interface{}, error) {
	if p.Raw == "" {
		return nil, nil
	}
	if n, err := strconv.Atoi(p.Raw); err == nil {
		return n, nil
	}
	return p.Raw, nil
}

// Resolve returns the per-profile limit; 0 means unlimited.
// An error means the value was present but unusable.
func (p PostLimit) Resolve() (int, error) {
	raw := strings.TrimSpace(p.Raw)
	if raw == "" {
		return 0, nil
	}
	if n, err := strconv.Atoi(raw); err == nil {
		if n < 0 {
			return 0, fmt.Errorf("max_posts_per_profile must not be negative, got %d", n)
		}
		return n, nil
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
		if f < 0 {
			return 0, fmt.Errorf("max_posts_per_profile must not be negative, got %s", raw)
		}
		return int(f), nil
	}
	return 0, fmt.Errorf("max_posts_per_profile is not an integer: %q", p.Raw)
}

func kindName(k yaml.Kind) string {
	switch k {
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.DocumentNode:
		return "document"
	default:
		return "unknown"
	}
}

// DefaultConfig returns a Config instance with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		OutputPath:        "data/sample_output.json",
		OutputFormat:      FormatJSON,
		UserAgent:         DefaultUserAgent,
		RequestTimeout:    15,
		Mock:              true,
		MaxRetries:        3,
		RandomSeed:        DefaultSeed,
		InputPath:         "data/input_profiles.json",
		SnapshotPath:      "data/latest.json",
		RequestsPerMinute: 60,
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Timeout returns the per-request timeout
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.RequestTimeout) * time.Second
}

// Format returns the output format; anything other than csv is written as json
func (c *Config) Format() string {
	if strings.EqualFold(strings.TrimSpace(c.OutputFormat), FormatCSV) {
		return FormatCSV
	}
	return FormatJSON
}

// UnknownFormat reports whether output_format names something other than json or csv
func (c *Config) UnknownFormat() bool {
	f := strings.ToLower(strings.TrimSpace(c.OutputFormat))
	return f != "" && f != FormatJSON && f != FormatCSV
}

// LoadFromEnv loads configuration from environment variables
func (c *Config) LoadFromEnv() error {
	if v := os.Getenv("IGPOSTS_OUTPUT_PATH"); v != "" {
		c.OutputPath = v
	}
	if v := os.Getenv("IGPOSTS_OUTPUT_FORMAT"); v != "" {
		c.OutputFormat = v
	}
	if v := os.Getenv("IGPOSTS_MAX_POSTS"); v != "" {
		c.MaxPostsPerProfile = PostLimit{Raw: v}
	}
	if v := os.Getenv("IGPOSTS_USER_AGENT"); v != "" {
		c.UserAgent = v
	}
	if v := os.Getenv("IGPOSTS_RANDOM_SEED"); v != "" {
		c.RandomSeed = v
	}
	if v := os.Getenv("IGPOSTS_INPUT_PATH"); v != "" {
		c.InputPath = v
	}
	if v := os.Getenv("IGPOSTS_SNAPSHOT_PATH"); v != "" {
		c.SnapshotPath = v
	}
	if v := os.Getenv("IGPOSTS_MOCK"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid IGPOSTS_MOCK %q: %w", v, err)
		}
		c.Mock = b
	}

	ints := map[string]*int{
		"IGPOSTS_REQUEST_TIMEOUT":     &c.RequestTimeout,
		"IGPOSTS_MAX_RETRIES":         &c.MaxRetries,
		"IGPOSTS_REQUESTS_PER_MINUTE": &c.RequestsPerMinute,
	}
	for key, dst := range ints {
		v := os.Getenv(key)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", key, v, err)
		}
		*dst = n
	}

	// LOG_LEVEL is honoured for compatibility with older deployments
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("IGPOSTS_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("IGPOSTS_LOG_FILE"); v != "" {
		c.Logging.File = v
	}

	return nil
}

// LoadFromFile loads configuration from a YAML or JSON file
func (c *Config) LoadFromFile(path string) error {
	if path == "" {
		path = c.findConfigFile()
		if path == "" {
			return nil // No config file found, not an error
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	// yaml.v3 reads JSON documents too
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	return nil
}

// findConfigFile searches for config file in standard locations
func (c *Config) findConfigFile() string {
	home := os.Getenv("HOME")
	locations := []string{
		filepath.Join("config", "settings.json"),
		filepath.Join("config", "settings.example.json"),
		".igposts.yaml",
		".igposts.yml",
		filepath.Join(home, ".config", "igposts", "config.yaml"),
		filepath.Join(home, ".config", "igposts", "config.yml"),
	}

	for _, loc := range locations {
		if _, err := os.Stat(loc); err == nil {
			return loc
		}
	}

	return ""
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	var errs []error

	if c.OutputPath == "" {
		errs = append(errs, errors.New("output path is required"))
	}
	if c.RequestTimeout <= 0 {
		errs = append(errs, errors.New("request timeout must be positive"))
	}
	if c.MaxRetries < 0 {
		errs = append(errs, errors.New("max retries cannot be negative"))
	}
	if c.RequestsPerMinute < 0 {
		errs = append(errs, errors.New("requests per minute cannot be negative"))
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "warning": true, "error": true, "disabled": true,
	}
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, fmt.Errorf("invalid log level %q", c.Logging.Level))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Save saves the configuration to a file
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// MergeCommandLineFlags merges command line flags into the configuration.
// Only keys present in the map are applied.
func (c *Config) MergeCommandLineFlags(flags map[string]interface{}) {
	if v, ok := flags["output"].(string); ok && v != "" {
		c.OutputPath = v
	}
	if v, ok := flags["format"].(string); ok && v != "" {
		c.OutputFormat = v
	}
	if v, ok := flags["input"].(string); ok && v != "" {
		c.InputPath = v
	}
	if v, ok := flags["max-posts"].(int); ok {
		c.MaxPostsPerProfile = NewPostLimit(v)
	}
	if v, ok := flags["live"].(bool); ok && v {
		c.Mock = false
	}
	if v, ok := flags["seed"].(string); ok && v != "" {
		c.RandomSeed = v
	}
	if v, ok := flags["max-retries"].(int); ok {
		c.MaxRetries = v
	}
	if v, ok := flags["timeout"].(int); ok && v > 0 {
		c.RequestTimeout = v
	}
	if v, ok := flags["log-level"].(string); ok && v != "" {
		c.Logging.Level = v
	}
}

// Load loads configuration from all sources with proper precedence
// Precedence order: Command line flags > Environment variables > .env file > Config file > Defaults
func Load(configPath string, flags map[string]interface{}) (*Config, error) {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(filepath.Join(os.Getenv("HOME"), ".igposts.env"))

	config := DefaultConfig()

	if err := config.LoadFromFile(configPath); err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	if err := config.LoadFromEnv(); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	config.MergeCommandLineFlags(flags)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}
