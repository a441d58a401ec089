package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates the ctxgrep command. The root command is the search.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ctxgrep [flags] [pattern] [path]",
		Short: "Recursive, context-aware text search",
		Long: `ctxgrep searches every regular file below a path for a regular expression
and prints each match with a window of surrounding lines.

The pattern is regular expression syntax; use -F to search for it literally.
In window mode (default) each result spans up to B+1+A lines of the file.
In line mode every line is matched on its own and context flags have no effect.

Configuration is loaded from .ctxgrep/config.yaml, .ctxgrep.toml or the user
config directory if present. CLI flags override configuration file settings.

Examples:
  ctxgrep beta ./notes                   # Search ./notes recursively
  ctxgrep -p beta -f ./notes -n          # Same, with flags and line numbers
  ctxgrep -B 2 -A 1 -i todo src/         # Case-insensitive, 2 lines before, 1 after
  ctxgrep --mode line -n 'err(or)?' .    # One result per matching line
  ctxgrep -F 'a(b' . -v                  # Literal pattern, report unreadable files`,
		Args:    cobra.MaximumNArgs(2),
		RunE:    runSearch,
		Version: Version,
		// Errors are printed once by main
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	addSearchFlags(cmd)
	return cmd
}
