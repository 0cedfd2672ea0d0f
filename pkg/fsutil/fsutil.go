// Package fsutil reads markup documents and writes edited documents back
// safely. Writes are atomic, refuse to clobber a file that changed after it
// was read and can leave a sidecar backup.
package fsutil

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"time"
)

// Sentinel errors for error categorization via errors.Is.
var (
	// ErrNilSnapshot is returned when a nil Snapshot is passed.
	ErrNilSnapshot = errors.New("nil snapshot")

	// ErrNotFound indicates the file does not exist.
	ErrNotFound = errors.New("file not found")

	// ErrPermissionDenied indicates a permission error.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrIsDirectory indicates the path is a directory, not a file.
	ErrIsDirectory = errors.New("path is a directory")

	// ErrModified indicates the file changed on disk after it was read.
	ErrModified = errors.New("file modified since read")
)

// Snapshot captures the state of a file when it was read.
type Snapshot struct {
	Path    string
	Mode    os.FileMode
	ModTime time.Time
	Size    int64

	// Hash is the SHA-256 hash of the content.
	Hash [32]byte
}

// ReadFile reads a document and returns its content with a Snapshot used to
// detect later external modification.
func ReadFile(ctx context.Context, path string) ([]byte, *Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, fmt.Errorf("read file: %w", err)
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, nil, classify(path, err)
	}
	if stat.IsDir() {
		return nil, nil, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, classify(path, err)
	}

	return content, &Snapshot{
		Path:    path,
		Mode:    stat.Mode(),
		ModTime: stat.ModTime(),
		Size:    stat.Size(),
		Hash:    sha256.Sum256(content),
	}, nil
}

func classify(path string, err error) error {
	switch {
	case errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("%w: %s: %w", ErrNotFound, path, err)
	case errors.Is(err, os.ErrPermission):
		return fmt.Errorf("%w: %s: %w", ErrPermissionDenied, path, err)
	default:
		return fmt.Errorf("read %s: %w", path, err)
	}
}

// Changed reports whether the file differs from the snapshot. Mod time and
// size are compared first; when they match the content is re-hashed. A
// deleted file counts as changed.
func (s *Snapshot) Changed(ctx context.Context) (bool, error) {
	if s == nil {
		return false, ErrNilSnapshot
	}
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("check modified: %w", err)
	}

	stat, err := os.Stat(s.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return true, nil
		}
		return false, fmt.Errorf("stat %s: %w", s.Path, err)
	}

	if !stat.ModTime().Equal(s.ModTime) || stat.Size() != s.Size {
		return true, nil
	}

	content, err := os.ReadFile(s.Path)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", s.Path, err)
	}
	return sha256.Sum256(content) != s.Hash, nil
}
