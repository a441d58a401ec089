package models

import "fmt"

// Scan modes
const (
	ModeWindow = "window" // whole file, one result per context window
	ModeLine   = "line"   // each line matched on its own
)

// SearchSpec fully describes what a run looks for.
// It is immutable once built and is the only input to the pattern compiler.
type SearchSpec struct {
	Pattern         string // Pattern interpreted as regular expression syntax
	ContextBefore   int    // Whole lines captured before the hit line
	ContextAfter    int    // Whole lines captured after the hit line
	CaseInsensitive bool   // Applies to the entire expression
	Literal         bool   // Escape regex metacharacters in Pattern
}

// Validate checks the spec before compilation.
func (s SearchSpec) Validate() error {
	if s.Pattern == "" {
		return fmt.Errorf("pattern is required")
	}
	if s.ContextBefore < 0 {
		return fmt.Errorf("context_before must be >= 0, got %d", s.ContextBefore)
	}
	if s.ContextAfter < 0 {
		return fmt.Errorf("context_after must be >= 0, got %d", s.ContextAfter)
	}
	return nil
}

// MatchResult is a single reported occurrence.
type MatchResult struct {
	File        string // Canonical absolute path
	LineNumber  int    // 1-based hit line, 0 when unknown
	MatchedText string // Full match span including context lines
}

// Summary aggregates the counters of a completed run.
type Summary struct {
	FilesScanned    int
	Matches         int
	TraversalErrors int
	ScanErrors      int
}

// FilesWithErrors returns the number of paths that produced any error.
func (s Summary) FilesWithErrors() int {
	return s.TraversalErrors + s.ScanErrors
}
