// Package matcher compiles a SearchSpec into a single regular expression whose
// match span carries the requested context window.
package matcher

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/harrison/ctxgrep/internal/models"
)

// maxContextLines is the largest bounded repeat accepted by the regexp engine.
const maxContextLines = 1000

// Hit is one context window found by FindAll.
type Hit struct {
	Line int    // 1-based number of the hit line
	Text string // Matched span, context lines included
}

// Matcher is a compiled, read-only search expression. It is safe for
// concurrent use and is shared across every file of a run.
type Matcher struct {
	spec      models.SearchSpec
	window    *regexp.Regexp
	highlight *regexp.Regexp
}

// Compile builds the context-window expression for spec:
//
//	[(?i)](?m)^(?:.*\n){0,B}?(.*(?:PATTERN).*)(?:\n.*){0,A}
//
// The pattern is inserted as regex syntax unless spec.Literal is set, so
// unbalanced metacharacters surface as a *models.PatternError.
func Compile(spec models.SearchSpec) (*Matcher, error) {
	if err := spec.Validate(); err != nil {
		return nil, &models.PatternError{Pattern: spec.Pattern, Err: err}
	}
	if spec.ContextBefore > maxContextLines || spec.ContextAfter > maxContextLines {
		return nil, &models.PatternError{
			Pattern: spec.Pattern,
			Err:     fmt.Errorf("context line counts are limited to %d", maxContextLines),
		}
	}

	pattern := spec.Pattern
	if spec.Literal {
		pattern = regexp.QuoteMeta(pattern)
	}

	flags := "(?m)"
	if spec.CaseInsensitive {
		flags = "(?im)"
	}

	expr := fmt.Sprintf(`%s^(?:.*\n){0,%d}?(.*(?:%s).*)(?:\n.*){0,%d}`,
		flags, spec.ContextBefore, pattern, spec.ContextAfter)

	window, err := regexp.Compile(expr)
	if err != nil {
		return nil, &models.PatternError{Pattern: spec.Pattern, Expression: expr, Err: err}
	}

	highlight, err := regexp.Compile(flags + "(?:" + pattern + ")")
	if err != nil {
		return nil, &models.PatternError{Pattern: spec.Pattern, Expression: expr, Err: err}
	}

	return &Matcher{
		spec:      spec,
		window:    window,
		highlight: highlight,
	}, nil
}

// Spec returns the spec the matcher was compiled from.
func (m *Matcher) Spec() models.SearchSpec {
	return m.spec
}

// String returns the compiled window expression.
func (m *Matcher) String() string {
	return m.window.String()
}

// FindAll returns every non-overlapping context window in text, in order.
// Windows start and end on line boundaries and never share a line. A hit
// that falls inside the after-context of an earlier window is part of that
// window.
func (m *Matcher) FindAll(text string) []Hit {
	var hits []Hit
	line := 1
	counted := 0

	for pos := 0; pos < len(text); {
		loc := m.window.FindStringSubmatchIndex(text[pos:])
		if loc == nil {
			break
		}
		start, end, hitStart := pos+loc[0], pos+loc[1], pos+loc[2]

		// The final newline of a file does not open another line.
		if start == len(text) {
			break
		}

		line += strings.Count(text[counted:hitStart], "\n")
		counted = hitStart

		span := end
		if span == len(text) && span > start && text[span-1] == '\n' {
			span--
		}
		hits = append(hits, Hit{Line: line, Text: text[start:span]})

		// A window always ends before a line break or at the end of text;
		// the next one starts on the following line.
		pos = end
		if pos < len(text) && text[pos] == '\n' {
			pos++
		}
	}
	return hits
}

// FindLine matches a single line with no surrounding text. With no newline
// available the context groups match nothing, so this is a containment test.
func (m *Matcher) FindLine(line string) (string, bool) {
	loc := m.window.FindStringIndex(line)
	if loc == nil {
		return "", false
	}
	return line[loc[0]:loc[1]], true
}

// Highlight rewrites every occurrence of the bare pattern in text with paint.
func (m *Matcher) Highlight(text string, paint func(string) string) string {
	return m.highlight.ReplaceAllStringFunc(text, func(s string) string {
		if s == "" {
			return s
		}
		return paint(s)
	})
}
