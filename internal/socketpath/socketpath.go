// Package socketpath generates and cleans up session socket paths.
package socketpath

import (
	"fmt"
	"os"
	"path/filepath"
)

// SocketFileName is the file created inside an auto-generated directory.
const SocketFileName = "socket"

// tempPrefix names auto-generated socket directories so stale ones are
// recognizable in the temp dir.
const tempPrefix = "interminai-"

// AutoGenerate creates a fresh private temp directory and returns the socket
// path inside it. The directory is left in place; the daemon removes it on
// clean shutdown.
func AutoGenerate() (string, error) {
	dir, err := os.MkdirTemp("", tempPrefix+"*")
	if err != nil {
		return "", fmt.Errorf("create socket temp dir: %w", err)
	}
	return filepath.Join(dir, SocketFileName), nil
}

// Cleanup removes an auto-generated socket file and its parent directory.
// Call only for paths from AutoGenerate; user-supplied paths are left alone.
func Cleanup(path string) {
	os.Remove(path)
	os.Remove(filepath.Dir(path))
}
