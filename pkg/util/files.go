package util

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// EnsureDir creates a directory if it doesn't exist
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}

// FileExists checks if a file exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// UniqueName builds a collision-free file name like "prefix_a1b2c3d4.ext".
// Concurrent runs write to the same directories, so every generated artifact
// gets a random suffix.
func UniqueName(prefix, ext string) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("%s_%s%s", prefix, suffix, ext)
}

// UniquePath joins dir with a unique name, creating dir on demand.
func UniquePath(dir, prefix, ext string) (string, error) {
	if err := EnsureDir(dir); err != nil {
		return "", err
	}
	return filepath.Join(dir, UniqueName(prefix, ext)), nil
}

// CleanupFiles removes multiple files, ignoring errors
func CleanupFiles(paths ...string) {
	for _, path := range paths {
		_ = os.Remove(path)
	}
}
