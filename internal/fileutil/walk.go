package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/harrison/ctxgrep/internal/models"
)

// Options configures the directory walk
type Options struct {
	// ExcludeDirs is a list of directory names to skip (e.g., ".git", "node_modules")
	ExcludeDirs []string
	// SkipHidden skips files and directories whose name starts with "."
	SkipHidden bool
	// MaxDepth limits recursion depth (0 = unlimited, 1 = root directory only)
	MaxDepth int
	// OnError is called with every recoverable error as it happens
	OnError func(err error)
}

// WalkResult contains the results of a walk
type WalkResult struct {
	// Files contains canonical paths, filled only by Enumerate
	Files []string
	// Visited is the number of regular files handed to the visitor
	Visited int
	// Errors contains the *models.TraversalError values collected on the way
	Errors []error
}

// VisitFunc receives each regular file. A non-nil error stops the walk.
type VisitFunc func(path string) error

type walker struct {
	opts    Options
	visit   VisitFunc
	exclude map[string]bool
	visited map[string]bool
	result  *WalkResult
}

// Walk visits every regular file reachable from root in depth-first,
// directory-listing order. It only fails when root itself cannot be
// accessed or when visit returns an error.
func Walk(root string, opts Options, visit VisitFunc) (*WalkResult, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to access search root: %w", err)
	}

	w := &walker{
		opts:    opts,
		visit:   visit,
		exclude: make(map[string]bool),
		visited: make(map[string]bool),
		result: &WalkResult{
			Files:  make([]string, 0),
			Errors: make([]error, 0),
		},
	}
	for _, dir := range opts.ExcludeDirs {
		w.exclude[dir] = true
	}

	if err := w.walk(root, info, 0); err != nil {
		return w.result, err
	}
	return w.result, nil
}

// Enumerate collects every file Walk would visit.
func Enumerate(root string, opts Options) (*WalkResult, error) {
	var files []string
	result, err := Walk(root, opts, func(path string) error {
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	result.Files = append(result.Files, files...)
	return result, nil
}

func (w *walker) walk(path string, info os.FileInfo, depth int) error {
	switch {
	case info.Mode().IsRegular():
		canonical, err := Canonicalize(path)
		if err != nil {
			w.record(path, err)
			return nil
		}
		w.result.Visited++
		return w.visit(canonical)

	case info.IsDir():
		return w.walkDir(path, depth)
	}

	// Devices, sockets and pipes are not searched
	return nil
}

func (w *walker) walkDir(path string, depth int) error {
	canonical, err := Canonicalize(path)
	if err != nil {
		w.record(path, err)
		return nil
	}
	if w.visited[canonical] {
		return nil
	}
	w.visited[canonical] = true

	if w.opts.MaxDepth > 0 && depth >= w.opts.MaxDepth {
		return nil
	}

	// ReadDir returns the entries read before a failure, keep them
	entries, err := os.ReadDir(path)
	if err != nil {
		w.record(path, err)
	}

	for _, entry := range entries {
		name := entry.Name()
		if w.opts.SkipHidden && strings.HasPrefix(name, ".") {
			continue
		}

		child := filepath.Join(path, name)
		childInfo, err := os.Stat(child)
		if err != nil {
			w.record(child, err)
			continue
		}
		if childInfo.IsDir() && w.exclude[name] {
			continue
		}

		if err := w.walk(child, childInfo, depth+1); err != nil {
			return err
		}
	}
	return nil
}

func (w *walker) record(path string, err error) {
	terr := &models.TraversalError{Path: path, Err: err}
	w.result.Errors = append(w.result.Errors, terr)
	if w.opts.OnError != nil {
		w.opts.OnError(terr)
	}
}

// Canonicalize returns the absolute, symlink-resolved form of path.
func Canonicalize(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path %s: %w", path, err)
	}
	resolved, err := filepath.EvalSymlinks(absPath)
	if err != nil {
		return "", fmt.Errorf("failed to resolve symlinks in %s: %w", absPath, err)
	}
	return resolved, nil
}
