package display

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/harrison/ctxgrep/internal/models"
)

// HighlightFunc rewrites pattern occurrences in text using paint.
type HighlightFunc func(text string, paint func(string) string) string

// ReporterOptions configures result formatting
type ReporterOptions struct {
	// LineNumbers prints "<path>:<n> - <text>" instead of "<path> - <text>"
	LineNumbers bool
	// Color enables ANSI colors regardless of terminal detection
	Color bool
	// Highlight marks pattern occurrences when Color is set (optional)
	Highlight HighlightFunc
}

// Reporter writes one formatted line per MatchResult.
type Reporter struct {
	writer io.Writer
	opts   ReporterOptions
	path   *color.Color
	lineNo *color.Color
	match  *color.Color
	count  int
}

// NewReporter creates a Reporter writing to w.
func NewReporter(w io.Writer, opts ReporterOptions) *Reporter {
	r := &Reporter{
		writer: w,
		opts:   opts,
		path:   color.New(color.FgMagenta),
		lineNo: color.New(color.FgGreen),
		match:  color.New(color.FgRed, color.Bold),
	}
	if opts.Color {
		// The caller already decided, don't let fatih/color's TTY check veto it
		r.path.EnableColor()
		r.lineNo.EnableColor()
		r.match.EnableColor()
	}
	return r
}

// Report writes a single result. Write errors are returned to the caller.
func (r *Reporter) Report(result models.MatchResult) error {
	if _, err := io.WriteString(r.writer, r.Format(result)); err != nil {
		return err
	}
	r.count++
	return nil
}

// Format renders result with a trailing newline.
func (r *Reporter) Format(result models.MatchResult) string {
	path := result.File
	text := result.MatchedText
	var lineNo string
	if r.opts.LineNumbers && result.LineNumber > 0 {
		lineNo = strconv.Itoa(result.LineNumber)
	}

	if r.opts.Color {
		path = r.path.Sprint(path)
		if lineNo != "" {
			lineNo = r.lineNo.Sprint(lineNo)
		}
		if r.opts.Highlight != nil {
			text = r.opts.Highlight(text, func(s string) string { return r.match.Sprint(s) })
		}
	}

	if lineNo != "" {
		return fmt.Sprintf("%s:%s - %s\n", path, lineNo, text)
	}
	return fmt.Sprintf("%s - %s\n", path, text)
}

// Count returns the number of results written so far.
func (r *Reporter) Count() int {
	return r.count
}
