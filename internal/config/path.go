// Package config provides configuration utilities for the application.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// ExpandPath expands ~ and environment variables in a file path.
// It handles both ~ for home directory and $VAR style environment variables.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[2:])
		}
	} else if path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			path = home
		}
	}

	return os.ExpandEnv(path)
}

// DataDir returns the directory for persisted state (preferences, move log).
// Defaults to ~/.local/share/sweep and is created on demand.
func DataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".local", "share", "sweep")
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", err
	}
	return dir, nil
}

// DefaultOrganizeDir returns the default destination root for organized
// files (~/OrganizedFiles, matching the tool's documented layout).
func DefaultOrganizeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "OrganizedFiles"
	}
	return filepath.Join(home, "OrganizedFiles")
}
