// Package platform resolves per-OS storage locations for downloaded models.
package platform

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// DefaultModelDirFor returns the model storage directory for the given OS and
// environment: $XDG_DATA_HOME/transcribe/models (or ~/.local/share) on Linux,
// ~/Library/Application Support/transcribe/models on macOS.
func DefaultModelDirFor(goos, homeDir, xdgDataHome string) (string, error) {
	dataDir, err := defaultDataDirFor(goos, homeDir, xdgDataHome)
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, "models"), nil
}

// ResolveModelDir returns the override when set, otherwise the OS default.
func ResolveModelDir(override string) (string, error) {
	if override != "" {
		return filepath.Clean(override), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve user home: %w", err)
	}

	return DefaultModelDirFor(runtime.GOOS, homeDir, os.Getenv("XDG_DATA_HOME"))
}

func defaultDataDirFor(goos, homeDir, xdgDataHome string) (string, error) {
	if homeDir == "" {
		return "", errors.New("home directory is empty")
	}

	switch goos {
	case "linux":
		if xdgDataHome != "" {
			return filepath.Join(xdgDataHome, "transcribe"), nil
		}
		return filepath.Join(homeDir, ".local", "share", "transcribe"), nil
	case "darwin":
		return filepath.Join(homeDir, "Library", "Application Support", "transcribe"), nil
	default:
		return "", fmt.Errorf("unsupported OS: %s", goos)
	}
}
