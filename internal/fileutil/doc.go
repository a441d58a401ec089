// Package fileutil enumerates the regular files reachable from a search root.
//
// The walk is a sequential depth-first recursion that classifies every path
// through its metadata (symlinks are followed) and lists directories in
// os.ReadDir order. Each regular file is reported once as a canonical path:
// absolute with every symlink resolved.
//
// # Error tolerance
//
// Only a root that cannot be stat'ed fails the walk. A child whose metadata
// cannot be read, a directory that cannot be listed, or a path that cannot be
// canonicalized becomes a *models.TraversalError in WalkResult.Errors and
// the walk continues with the remaining siblings.
//
// # Streaming
//
// Walk hands each file to a visit callback as soon as it is found, so a caller
// can scan while the tree is still being listed. Enumerate collects the same
// sequence into a slice.
//
//	result, err := fileutil.Walk(root, fileutil.Options{}, func(path string) error {
//		return scan(path)
//	})
//
// # Options
//
//   - ExcludeDirs: directory names that are never entered
//   - SkipHidden: skip entries whose name starts with "."
//   - MaxDepth: limit recursion depth (0 = unlimited, 1 = root directory only)
//
// Directories are tracked by canonical path, so a symlink that points back
// into an ancestor is listed only once.
package fileutil
