package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLogLevels(t *testing.T) {
	tests := []struct {
		level    string
		expected []string
		excluded []string
	}{
		{level: "error", expected: []string{`"error"`}, excluded: []string{`"warn"`, `"info"`, `"debug"`}},
		{level: "warn", expected: []string{`"error"`, `"warn"`}, excluded: []string{`"info"`, `"debug"`}},
		{level: "info", expected: []string{`"error"`, `"warn"`, `"info"`}, excluded: []string{`"debug"`}},
		{level: "debug", expected: []string{`"error"`, `"warn"`, `"info"`, `"debug"`}},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.level+".log")
			cfg := DefaultFileConfig(path)
			cfg.Compress = false

			log, err := New(Options{Level: tt.level, File: cfg})
			require.NoError(t, err)

			log.Debug("debug message")
			log.Info("info message", zap.Int("points", 3))
			log.Warn("warn message")
			log.Error("error message")
			require.NoError(t, log.Sync())

			content, err := os.ReadFile(path)
			require.NoError(t, err)
			for _, exp := range tt.expected {
				assert.Contains(t, string(content), exp)
			}
			for _, exc := range tt.excluded {
				assert.NotContains(t, string(content), exc)
			}
		})
	}
}

func TestConsoleOutput(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(Options{Level: "info", Console: &buf})
	require.NoError(t, err)

	log.Info("trace loaded", zap.Int("points", 42))
	log.Debug("hidden")

	out := buf.String()
	assert.Contains(t, out, "trace loaded")
	assert.Contains(t, out, "42")
	assert.False(t, strings.Contains(out, "hidden"))
}

func TestInvalidLevel(t *testing.T) {
	_, err := New(Options{Level: "loud"})
	assert.Error(t, err)
}

func TestNoOutputsIsNop(t *testing.T) {
	log, err := New(Options{})
	require.NoError(t, err)
	assert.NotNil(t, log)
	log.Info("discarded")
}

func TestDefaultFileConfig(t *testing.T) {
	cfg := DefaultFileConfig("/tmp/gcodeview.log")

	assert.Equal(t, "/tmp/gcodeview.log", cfg.Path)
	assert.Equal(t, 20, cfg.MaxSizeMB)
	assert.Equal(t, 3, cfg.MaxBackups)
	assert.Equal(t, 14, cfg.MaxAgeDays)
	assert.True(t, cfg.Compress)
}

func TestLBeforeInit(t *testing.T) {
	assert.NotNil(t, L())
}
