package logging

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"

	"taskboard/internal/config"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected log.Level
	}{
		{"debug", log.DebugLevel},
		{"INFO", log.InfoLevel},
		{"warn", log.WarnLevel},
		{"warning", log.WarnLevel},
		{" error ", log.ErrorLevel},
		{"", log.InfoLevel},
		{"verbose", log.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLevel(tt.input))
		})
	}
}

func TestParseFormatter(t *testing.T) {
	assert.Equal(t, log.JSONFormatter, ParseFormatter("json"))
	assert.Equal(t, log.LogfmtFormatter, ParseFormatter("LOGFMT"))
	assert.Equal(t, log.TextFormatter, ParseFormatter("text"))
	assert.Equal(t, log.TextFormatter, ParseFormatter("yaml"))
}

func TestNewTestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewTestLogger(&buf)

	logger.Debug("request", "method", "GET", "status", 200)

	out := buf.String()
	assert.Contains(t, out, "level=debug")
	assert.Contains(t, out, "msg=request")
	assert.Contains(t, out, "method=GET")
	assert.Contains(t, out, "status=200")
}

func TestNew_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, Options{Level: log.WarnLevel, Formatter: log.LogfmtFormatter})

	logger.Info("hidden")
	logger.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestNewFromConfig(t *testing.T) {
	t.Setenv("TASKBOARD_DEBUG", "")

	logger := NewFromConfig(config.LoggingConfig{Level: "error", Format: "json"})
	assert.Equal(t, log.ErrorLevel, logger.GetLevel())

	logger = NewFromConfig(config.LoggingConfig{Level: "error", Debug: true})
	assert.Equal(t, log.DebugLevel, logger.GetLevel())
}

func TestDebugEnabled(t *testing.T) {
	t.Setenv("TASKBOARD_DEBUG", "")
	assert.False(t, DebugEnabled())

	t.Setenv("TASKBOARD_DEBUG", "1")
	assert.True(t, DebugEnabled())

	logger := NewFromConfig(config.LoggingConfig{Level: "info"})
	assert.Equal(t, log.DebugLevel, logger.GetLevel())
}

func TestDebugf_UsesDefault(t *testing.T) {
	var buf bytes.Buffer
	previous := log.Default()
	defer SetDefault(previous)

	SetDefault(NewTestLogger(&buf))
	Debugf("loaded %d tasks", 3)

	assert.Contains(t, buf.String(), "loaded 3 tasks")
}

func TestDiscard(t *testing.T) {
	logger := Discard()
	logger.Error("nothing")
	assert.Equal(t, log.FatalLevel, logger.GetLevel())
}
