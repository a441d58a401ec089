package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/harrison/ctxgrep/internal/filelock"
	"github.com/harrison/ctxgrep/internal/models"
)

// FileLogger appends run events to a log file that may be shared by several
// concurrent ctxgrep processes. Every line carries the run id, and each append
// holds an exclusive lock on "<path>.lock" so lines never interleave.
// The file is opened per write, no handle is kept between messages.
type FileLogger struct {
	path     string
	runID    string
	logLevel string
	mu       sync.Mutex
}

// NewFileLogger creates a FileLogger appending to path with the given level.
// The parent directory is created if missing and a run header is written.
func NewFileLogger(path string, logLevel string) (*FileLogger, error) {
	if path == "" {
		return nil, fmt.Errorf("log file path cannot be empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	fl := &FileLogger{
		path:     path,
		runID:    uuid.New().String(),
		logLevel: normalizeLogLevel(logLevel),
	}

	header := fmt.Sprintf("=== ctxgrep run %s started at %s ===\n", fl.runID, time.Now().Format(time.RFC3339))
	if err := fl.append(header); err != nil {
		return nil, err
	}
	return fl, nil
}

// RunID returns the identifier stamped on every line of this run.
func (fl *FileLogger) RunID() string {
	return fl.runID
}

// Path returns the log file path.
func (fl *FileLogger) Path() string {
	return fl.path
}

func (fl *FileLogger) shouldLog(messageLevel string) bool {
	return logLevelToInt(messageLevel) >= logLevelToInt(fl.logLevel)
}

// LogTrace logs a trace-level message (most verbose).
func (fl *FileLogger) LogTrace(message string) {
	fl.logWithLevel("TRACE", message)
}

// LogDebug logs a debug-level message.
func (fl *FileLogger) LogDebug(message string) {
	fl.logWithLevel("DEBUG", message)
}

// LogInfo logs an info-level message.
func (fl *FileLogger) LogInfo(message string) {
	fl.logWithLevel("INFO", message)
}

// LogWarn logs a warning-level message.
func (fl *FileLogger) LogWarn(message string) {
	fl.logWithLevel("WARN", message)
}

// LogError logs an error-level message.
func (fl *FileLogger) LogError(message string) {
	fl.logWithLevel("ERROR", message)
}

func (fl *FileLogger) logWithLevel(level string, message string) {
	if !fl.shouldLog(strings.ToLower(level)) {
		return
	}
	// Logging must never fail the search
	_ = fl.append(fl.format(level, message))
}

// LogSummary logs the run counters at INFO level.
func (fl *FileLogger) LogSummary(summary models.Summary, duration time.Duration) {
	if !fl.shouldLog("info") {
		return
	}
	message := fmt.Sprintf("Search complete: %s, traversal errors: %d, scan errors: %d (%s)",
		formatSummary(summary), summary.TraversalErrors, summary.ScanErrors, formatDuration(duration))
	_ = fl.append(fl.format("INFO", message))
}

// Close writes the run footer.
func (fl *FileLogger) Close() error {
	return fl.append(fmt.Sprintf("=== ctxgrep run %s finished at %s ===\n", fl.runID, time.Now().Format(time.RFC3339)))
}

func (fl *FileLogger) format(level, message string) string {
	return fmt.Sprintf("[%s] [%s] [%s] %s\n", time.Now().Format("2006-01-02 15:04:05"), fl.runID[:8], level, message)
}

func (fl *FileLogger) append(line string) error {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	if err := filelock.LockAndAppend(fl.path, []byte(line)); err != nil {
		return fmt.Errorf("failed to write log file: %w", err)
	}
	return nil
}
