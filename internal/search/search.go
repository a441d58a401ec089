// Package search runs one query: compile the pattern, walk the root and scan
// every file in turn, reporting matches as they are found.
package search

import (
	"context"
	"fmt"
	"time"

	"github.com/harrison/ctxgrep/internal/fileutil"
	"github.com/harrison/ctxgrep/internal/logger"
	"github.com/harrison/ctxgrep/internal/matcher"
	"github.com/harrison/ctxgrep/internal/models"
	"github.com/harrison/ctxgrep/internal/scanner"
)

// Reporter receives every match in emission order.
type Reporter interface {
	Report(result models.MatchResult) error
}

// Request describes a single run. Matcher, when set, is used instead of
// compiling Spec.
type Request struct {
	Root    string
	Spec    models.SearchSpec
	Matcher *matcher.Matcher
	Walk    fileutil.Options
	Scan    scanner.Options
}

// Runner executes requests. The logger is optional.
type Runner struct {
	reporter Reporter
	logger   logger.Logger
}

// NewRunner creates a Runner writing matches to reporter.
func NewRunner(reporter Reporter, log logger.Logger) *Runner {
	if reporter == nil {
		panic("reporter cannot be nil")
	}
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Runner{reporter: reporter, logger: log}
}

// Run compiles the pattern before touching the filesystem; a
// *models.PatternError or an inaccessible root fails the run. Per-path
// traversal and scan errors are logged at WARN, counted and skipped.
// Cancelling ctx stops the run between files.
func (r *Runner) Run(ctx context.Context, req Request) (*models.Summary, error) {
	m := req.Matcher
	if m == nil {
		var err error
		if m, err = matcher.Compile(req.Spec); err != nil {
			return nil, err
		}
	}
	r.logger.LogDebug(fmt.Sprintf("Compiled expression: %s", m))

	sc := scanner.New(m, req.Scan)
	r.logger.LogDebug(fmt.Sprintf("Searching %s in %s mode", req.Root, sc.Mode()))

	summary := &models.Summary{}
	start := time.Now()

	walkOpts := req.Walk
	onError := walkOpts.OnError
	walkOpts.OnError = func(err error) {
		summary.TraversalErrors++
		r.logger.LogWarn(err.Error())
		if onError != nil {
			onError(err)
		}
	}

	_, err := fileutil.Walk(req.Root, walkOpts, func(path string) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		results, err := sc.Scan(path)
		if err != nil {
			if !models.IsRecoverable(err) {
				return err
			}
			summary.ScanErrors++
			r.logger.LogWarn(err.Error())
			return nil
		}
		summary.FilesScanned++
		r.logger.LogTrace(fmt.Sprintf("Scanned %s: %d match(es)", path, len(results)))

		for _, result := range results {
			if err := r.reporter.Report(result); err != nil {
				return fmt.Errorf("failed to write result: %w", err)
			}
			summary.Matches++
		}
		return nil
	})
	if err != nil {
		return summary, err
	}

	r.logger.LogSummary(*summary, time.Since(start))
	return summary, nil
}
