// Package filex resolves and creates the console's data directory.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// EnsureDir creates dir with owner-only permissions and returns its
// absolute path. A leading "~/" is the user's home directory; any other
// relative path is taken from the working directory.
func EnsureDir(dir string) (string, error) {
	path, err := resolve(dir)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(path, 0o700); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", path, err)
	}
	return path, nil
}

func resolve(dir string) (string, error) {
	if rest, ok := strings.CutPrefix(dir, "~/"); ok || dir == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("home dir: %w", err)
		}
		return filepath.Join(home, rest), nil
	}
	if filepath.IsAbs(dir) {
		return filepath.Clean(dir), nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getwd: %w", err)
	}
	return filepath.Join(cwd, dir), nil
}
