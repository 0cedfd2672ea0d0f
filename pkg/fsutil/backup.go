package fsutil

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
)

// BackupSuffix is the suffix used for sidecar backup files.
const BackupSuffix = ".gomarkup.bak"

// BackupPath returns the sidecar backup path for path.
func BackupPath(path string) string {
	return path + BackupSuffix
}

// CreateBackup copies the file described by snap to its sidecar backup
// unless a backup already exists, so repeated edits keep the first original.
// It reports whether a backup was written.
func CreateBackup(ctx context.Context, snap *Snapshot, content []byte) (bool, error) {
	if snap == nil {
		return false, ErrNilSnapshot
	}

	backupPath := BackupPath(snap.Path)
	if _, err := os.Stat(backupPath); err == nil {
		return false, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return false, fmt.Errorf("stat backup path: %w", err)
	}

	if err := WriteAtomic(ctx, backupPath, content, snap.Mode.Perm()); err != nil {
		return false, fmt.Errorf("write backup: %w", err)
	}
	return true, nil
}

func hashOf(content []byte) []byte {
	sum := sha256.Sum256(content)
	return sum[:]
}
