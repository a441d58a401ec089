package logger

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/harrison/ctxgrep/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestNewConsoleLogger(t *testing.T) {
	t.Run("with valid writer", func(t *testing.T) {
		buf := &bytes.Buffer{}
		logger := NewConsoleLogger(buf, "info")

		assert.NotNil(t, logger)
		assert.Equal(t, buf, logger.writer)
		assert.Equal(t, "info", logger.logLevel)
		assert.False(t, logger.colorOutput, "buffers never get color")
	})

	t.Run("with nil writer", func(t *testing.T) {
		logger := NewConsoleLogger(nil, "info")
		assert.NotNil(t, logger)
		assert.NotPanics(t, func() {
			logger.LogError("dropped")
			logger.LogSummary(models.Summary{}, time.Second)
		})
	})

	t.Run("invalid level defaults to info", func(t *testing.T) {
		logger := NewConsoleLogger(&bytes.Buffer{}, "LOUD")
		assert.Equal(t, "info", logger.logLevel)
	})

	t.Run("level is case-insensitive", func(t *testing.T) {
		logger := NewConsoleLogger(&bytes.Buffer{}, " WARN ")
		assert.Equal(t, "warn", logger.logLevel)
	})
}

func TestConsoleLoggerLevelFiltering(t *testing.T) {
	tests := []struct {
		level   string
		visible []string
		hidden  []string
	}{
		{level: "trace", visible: []string{"TRACE", "DEBUG", "INFO", "WARN", "ERROR"}},
		{level: "info", visible: []string{"INFO", "WARN", "ERROR"}, hidden: []string{"TRACE", "DEBUG"}},
		{level: "warn", visible: []string{"WARN", "ERROR"}, hidden: []string{"TRACE", "DEBUG", "INFO"}},
		{level: "error", visible: []string{"ERROR"}, hidden: []string{"TRACE", "DEBUG", "INFO", "WARN"}},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger := NewConsoleLogger(buf, tt.level)

			logger.LogTrace("msg")
			logger.LogDebug("msg")
			logger.LogInfo("msg")
			logger.LogWarn("msg")
			logger.LogError("msg")

			output := buf.String()
			for _, v := range tt.visible {
				assert.Contains(t, output, "["+v+"] msg")
			}
			for _, h := range tt.hidden {
				assert.NotContains(t, output, "["+h+"]")
			}
		})
	}
}

func TestConsoleLoggerFormat(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewConsoleLogger(buf, "info")

	logger.LogWarn(`error loading file "/tmp/x": permission denied`)

	line := buf.String()
	assert.Regexp(t, `^\[\d{2}:\d{2}:\d{2}\] \[WARN\] error loading file "/tmp/x": permission denied\n$`, line)
}

func TestConsoleLoggerSummary(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewConsoleLogger(buf, "info")

	logger.LogSummary(models.Summary{FilesScanned: 4, Matches: 7, ScanErrors: 1, TraversalErrors: 1}, 1500*time.Millisecond)
	assert.Contains(t, buf.String(), "Search complete: files: 4, matches: 7, errors: 2 (1.5s)")

	buf.Reset()
	quiet := NewConsoleLogger(buf, "warn")
	quiet.LogSummary(models.Summary{FilesScanned: 1}, time.Second)
	assert.Empty(t, buf.String())
}

func TestConsoleLoggerConcurrent(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewConsoleLogger(buf, "info")

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			logger.LogInfo("line")
		}()
	}
	wg.Wait()

	assert.Equal(t, 20, strings.Count(buf.String(), "[INFO] line\n"))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "250ms", formatDuration(250*time.Millisecond))
	assert.Equal(t, "2.5s", formatDuration(2500*time.Millisecond))
	assert.Equal(t, "2m5s", formatDuration(125*time.Second))
}

func TestFormatColorizedSummaryKeepsCounters(t *testing.T) {
	out := formatColorizedSummary(models.Summary{FilesScanned: 3, Matches: 2, ScanErrors: 1})
	for _, want := range []string{"files", "3", "matches", "2", "errors", "1"} {
		assert.Contains(t, out, want)
	}
}

func TestValidLevel(t *testing.T) {
	for _, lvl := range []string{"trace", "DEBUG", "info", "Warn", "error"} {
		assert.True(t, ValidLevel(lvl), lvl)
	}
	assert.False(t, ValidLevel("verbose"))
	assert.False(t, ValidLevel(""))
}

type recordingLogger struct {
	NoOpLogger
	messages []string
}

func (r *recordingLogger) LogWarn(message string) {
	r.messages = append(r.messages, message)
}

func TestMultiLogger(t *testing.T) {
	a := &recordingLogger{}
	b := &recordingLogger{}
	ml := NewMultiLogger(a, nil, b)

	ml.LogWarn("shared")
	ml.LogInfo("ignored by recorders")

	assert.Equal(t, []string{"shared"}, a.messages)
	assert.Equal(t, []string{"shared"}, b.messages)
}
