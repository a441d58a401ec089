package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// GetHome returns the user-level ctxgrep directory.
// Priority order:
//  1. CTXGREP_HOME environment variable (if set)
//  2. <user config dir>/ctxgrep (e.g. ~/.config/ctxgrep)
//
// The directory is not created; it only holds an optional config file.
func GetHome() (string, error) {
	if home := os.Getenv("CTXGREP_HOME"); home != "" {
		return home, nil
	}

	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("get user config directory: %w", err)
	}
	return filepath.Join(dir, "ctxgrep"), nil
}
