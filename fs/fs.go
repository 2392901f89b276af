// Package fs provides access to the local file system: working-tree file
// reads and default locations for revi's own files.
package fs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/revi-dev/revi"
)

// ErrPathEscapesRoot is returned when a repository-relative path resolves
// to a location outside the repository root.
var ErrPathEscapesRoot = errors.New("path escapes the repository root")

// DefaultConfigDir returns the default configuration directory for revi.
// Uses XDG_CONFIG_HOME if set, otherwise falls back to ~/.config/revi,
// or system temp directory if home is unavailable.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "revi")
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return filepath.Join(os.TempDir(), "revi")
	}
	return filepath.Join(home, ".config", "revi")
}

// ReadWorkingFile returns the content of path, relative to repoRoot, as it
// currently exists on disk. Symlinks are resolved before checking that the
// file stays inside repoRoot. Returns an error wrapping revi.ErrNotFound if
// the file does not exist.
func ReadWorkingFile(repoRoot, path string) (string, error) {
	root, err := filepath.EvalSymlinks(repoRoot)
	if err != nil {
		return "", fmt.Errorf("failed to resolve repository root: %w", err)
	}
	root, err = filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("failed to resolve repository root: %w", err)
	}

	joined := filepath.Join(root, path)
	if !within(root, joined) {
		return "", fmt.Errorf("%s: %w", path, ErrPathEscapesRoot)
	}

	full, err := filepath.EvalSymlinks(joined)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%s: %w", path, revi.ErrNotFound)
		}
		return "", fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	if !within(root, full) {
		return "", fmt.Errorf("%s: %w", path, ErrPathEscapesRoot)
	}

	data, err := os.ReadFile(full)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%s: %w", path, revi.ErrNotFound)
		}
		return "", fmt.Errorf("failed to read file from working tree: %w", err)
	}
	return string(data), nil
}

func within(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
