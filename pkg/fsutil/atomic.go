package fsutil

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultFileMode is the default permission mode for newly created files.
const DefaultFileMode os.FileMode = 0o644

// WriteAtomic writes content to path through a temp file in the same
// directory and a rename. If mode is 0, DefaultFileMode is used.
//
// On error, the temp file is removed and the original file remains untouched.
func WriteAtomic(ctx context.Context, path string, content []byte, mode os.FileMode) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("write atomic: %w", err)
	}

	if mode == 0 {
		mode = DefaultFileMode
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp.*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(content); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, mode); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}

	success = true
	return nil
}

// WriteSnapshot replaces the file described by snap with content, keeping
// its mode. It fails with ErrModified if the file changed since snap was
// taken, and does nothing when content equals what was read. It reports
// whether the file was written.
func WriteSnapshot(ctx context.Context, snap *Snapshot, content []byte) (bool, error) {
	if snap == nil {
		return false, ErrNilSnapshot
	}

	changed, err := snap.Changed(ctx)
	if err != nil {
		return false, err
	}
	if changed {
		return false, fmt.Errorf("%w: %s", ErrModified, snap.Path)
	}

	if len(content) == int(snap.Size) && bytes.Equal(hashOf(content), snap.Hash[:]) {
		return false, nil
	}

	if err := WriteAtomic(ctx, snap.Path, content, snap.Mode.Perm()); err != nil {
		return false, err
	}
	return true, nil
}
