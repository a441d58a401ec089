// Package scanner loads a file as text and applies a compiled matcher to it.
package scanner

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/harrison/ctxgrep/internal/matcher"
	"github.com/harrison/ctxgrep/internal/models"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Options configures how files are loaded and matched
type Options struct {
	// Mode selects models.ModeWindow or models.ModeLine
	Mode string
	// MaxFileSize skips files larger than this many bytes (0 = unlimited)
	MaxFileSize int64
}

// Scanner applies one matcher to many files. It holds no per-file state.
type Scanner struct {
	matcher *matcher.Matcher
	opts    Options
}

// New creates a Scanner. An empty mode defaults to window mode.
func New(m *matcher.Matcher, opts Options) *Scanner {
	if opts.Mode == "" {
		opts.Mode = models.ModeWindow
	}
	return &Scanner{matcher: m, opts: opts}
}

// Mode returns the scan mode in use.
func (s *Scanner) Mode() string {
	return s.opts.Mode
}

// Scan loads path and returns its matches in file order. Any failure to load
// the file is returned as a *models.ScanError.
func (s *Scanner) Scan(path string) ([]models.MatchResult, error) {
	text, err := Load(path, s.opts.MaxFileSize)
	if err != nil {
		return nil, &models.ScanError{Path: path, Err: err}
	}

	if s.opts.Mode == models.ModeLine {
		return s.scanLines(path, text), nil
	}
	return s.scanWindows(path, text), nil
}

func (s *Scanner) scanWindows(path, text string) []models.MatchResult {
	hits := s.matcher.FindAll(text)
	if len(hits) == 0 {
		return nil
	}

	results := make([]models.MatchResult, 0, len(hits))
	for _, hit := range hits {
		results = append(results, models.MatchResult{
			File:        path,
			LineNumber:  hit.Line,
			MatchedText: hit.Text,
		})
	}
	return results
}

func (s *Scanner) scanLines(path, text string) []models.MatchResult {
	var results []models.MatchResult
	for i, line := range splitLines(text) {
		matched, ok := s.matcher.FindLine(line)
		if !ok {
			continue
		}
		results = append(results, models.MatchResult{
			File:        path,
			LineNumber:  i + 1,
			MatchedText: matched,
		})
	}
	return results
}

// splitLines splits on "\n"; a trailing newline does not start another line.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}

// Load reads path as UTF-8 text. A leading byte order mark selects UTF-8 or
// UTF-16 decoding and is stripped, CRLF line endings become LF, and content
// that is still not valid UTF-8 yields models.ErrInvalidEncoding.
func Load(path string, maxSize int64) (string, error) {
	if maxSize > 0 {
		info, err := os.Stat(path)
		if err != nil {
			return "", err
		}
		if info.Size() > maxSize {
			return "", fmt.Errorf("%w: %d > %d bytes", models.ErrFileTooLarge, info.Size(), maxSize)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	decoded, _, err := transform.Bytes(unicode.BOMOverride(encoding.Nop.NewDecoder()), data)
	if err != nil {
		return "", fmt.Errorf("failed to decode: %w", err)
	}
	if !utf8.Valid(decoded) {
		return "", models.ErrInvalidEncoding
	}

	return strings.ReplaceAll(string(decoded), "\r\n", "\n"), nil
}
