// Package filex contains the filesystem helpers used for the client data
// directory and for handing solution files between idolcode and an editor.
package filex

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// MaxSourceSize caps files loaded into a draft.
const MaxSourceSize = 1 << 20

var ErrTooLarge = errors.New("file too large")

// EnsureSubdDir creates dirName below base (the working directory when base
// is empty) and returns the absolute path.
func EnsureSubdDir(base, dirName string) (string, error) {
	if base == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getwd: %w", err)
		}
		base = cwd
	}

	dir := filepath.Join(base, dirName)

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}

	return dir, nil
}

// DefaultDataDir is <user config dir>/idolcode, falling back to
// ./.idolcode when the platform has no config dir.
func DefaultDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil && dir != "" {
		return filepath.Join(dir, "idolcode")
	}
	return ".idolcode"
}

// ReadSource reads a solution file, refusing anything over MaxSourceSize.
func ReadSource(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	b, err := io.ReadAll(io.LimitReader(f, MaxSourceSize+1))
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	if len(b) > MaxSourceSize {
		return "", fmt.Errorf("%s: %w", path, ErrTooLarge)
	}
	return string(b), nil
}

// WriteSource writes content to dir/name, creating dir when needed, and
// returns the full path.
func WriteSource(dir, name, content string) (string, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}
