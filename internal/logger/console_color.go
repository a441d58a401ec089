package logger

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/harrison/ctxgrep/internal/models"
)

// colorScheme defines consistent colors for different metric types.
// Green: success/positive metrics
// Red: failure/error metrics
// Cyan: labels and identifiers
type colorScheme struct {
	success *color.Color
	fail    *color.Color
	label   *color.Color
	value   *color.Color
}

// newColorScheme creates the standard color scheme for metrics.
func newColorScheme() *colorScheme {
	return &colorScheme{
		success: color.New(color.FgGreen),
		fail:    color.New(color.FgRed),
		label:   color.New(color.FgCyan),
		value:   color.New(color.FgWhite),
	}
}

// formatColorizedMetric formats a single metric with colorized label and value.
// Format: "label: value"
func formatColorizedMetric(label string, value interface{}, scheme *colorScheme) string {
	labelColored := scheme.label.Sprint(label)
	valueColored := scheme.value.Sprintf("%v", value)
	return fmt.Sprintf("%s: %s", labelColored, valueColored)
}

// formatSummary renders the run counters without color.
// Format: "files: N, matches: N, errors: N"
func formatSummary(s models.Summary) string {
	return fmt.Sprintf("files: %d, matches: %d, errors: %d", s.FilesScanned, s.Matches, s.FilesWithErrors())
}

// formatColorizedSummary renders the run counters with color coding.
// Matches are green when non-zero, errors red when non-zero.
func formatColorizedSummary(s models.Summary) string {
	scheme := newColorScheme()
	parts := []string{formatColorizedMetric("files", s.FilesScanned, scheme)}

	if s.Matches > 0 {
		parts = append(parts, fmt.Sprintf("%s: %s", scheme.success.Sprint("matches"), scheme.value.Sprintf("%d", s.Matches)))
	} else {
		parts = append(parts, formatColorizedMetric("matches", 0, scheme))
	}

	if errs := s.FilesWithErrors(); errs > 0 {
		parts = append(parts, fmt.Sprintf("%s: %s", scheme.fail.Sprint("errors"), scheme.fail.Sprintf("%d", errs)))
	} else {
		parts = append(parts, formatColorizedMetric("errors", 0, scheme))
	}

	return strings.Join(parts, ", ")
}
