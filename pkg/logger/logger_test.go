package logger

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"igposts/pkg/config"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *config.LoggingConfig
		wantErr bool
	}{
		{"info level", &config.LoggingConfig{Level: "info"}, false},
		{"debug level", &config.LoggingConfig{Level: "debug"}, false},
		{"invalid level", &config.LoggingConfig{Level: "invalid"}, true},
		{"file output", &config.LoggingConfig{Level: "info", File: filepath.Join(t.TempDir(), "logs", "run.log")}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := New(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, l)
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		level    string
		expected zerolog.Level
		wantErr  bool
	}{
		{"debug", zerolog.DebugLevel, false},
		{"INFO", zerolog.InfoLevel, false},
		{"warning", zerolog.WarnLevel, false},
		{"error", zerolog.ErrorLevel, false},
		{"disabled", zerolog.Disabled, false},
		{"", zerolog.InfoLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			level, err := parseLogLevel(tt.level)
			if (err != nil) != tt.wantErr {
				t.Errorf("parseLogLevel() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if level != tt.expected {
				t.Errorf("parseLogLevel() = %v, want %v", level, tt.expected)
			}
		})
	}
}

func TestFieldsAreWritten(t *testing.T) {
	var buf bytes.Buffer
	zlog := zerolog.New(&buf).Level(zerolog.DebugLevel)
	l := &zerologLogger{logger: &zlog, fields: map[string]interface{}{}}

	l.WithField("username", "zuck").
		WithError(errors.New("boom")).
		InfoWithFields("fetched", map[string]interface{}{"count": 3, "mock": true})

	out := buf.String()
	assert.True(t, strings.Contains(out, `"username":"zuck"`), out)
	assert.True(t, strings.Contains(out, `"error":"boom"`), out)
	assert.True(t, strings.Contains(out, `"count":3`), out)
	assert.True(t, strings.Contains(out, `"mock":true`), out)
	assert.True(t, strings.Contains(out, `"message":"fetched"`), out)
}

func TestWithErrorNil(t *testing.T) {
	zlog := zerolog.Nop()
	l := &zerologLogger{logger: &zlog, fields: map[string]interface{}{}}
	assert.Same(t, l, l.WithError(nil))
}

func TestTestLoggerCapturesFields(t *testing.T) {
	tl := NewTestLogger()
	tl.WithField("username", "zuck").Warn("falling back")
	tl.Debug("noise")

	warns := tl.GetMessagesByLevel("WARN")
	require.Len(t, warns, 1)
	assert.Equal(t, "zuck", warns[0].Fields["username"])
	assert.True(t, tl.HasMessage("falling"))
	assert.Len(t, tl.GetMessages(), 2)
}
