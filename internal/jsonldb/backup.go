// Implements the copy-before-rewrite backup discipline.

package jsonldb

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// BackupPath returns the sibling backup file name for path:
// "<dir>/<base>_COPY.txt" where base is the file name up to its first dot.
func BackupPath(path string) string {
	base, _, _ := strings.Cut(filepath.Base(path), ".")
	return filepath.Join(filepath.Dir(path), base+"_COPY.txt")
}

// WithBackup copies path to [BackupPath] then runs mutate.
//
// When mutate succeeds and path still validates, the backup is removed.
// Otherwise the backup is left on disk as a recovery artifact and the error
// is returned. The primary file is never restored automatically.
func WithBackup(path string, mutate func() error) error {
	backup := BackupPath(path)
	if err := copyFile(path, backup); err != nil {
		return fmt.Errorf("failed to back up %s: %w", path, err)
	}
	if err := ValidateFile(backup); err != nil {
		return err
	}
	if err := mutate(); err != nil {
		return fmt.Errorf("rewrite of %s failed, backup kept at %s: %w", path, backup, err)
	}
	if err := ValidateFile(path); err != nil {
		return fmt.Errorf("rewrite of %s failed verification, backup kept at %s: %w", path, backup, err)
	}
	if err := os.Remove(backup); err != nil {
		return fmt.Errorf("failed to remove backup %s: %w", backup, err)
	}
	return nil
}

// StaleBackup reports whether a backup of path exists. A leftover backup means
// a previous rewrite did not complete.
func StaleBackup(path string) (string, bool) {
	backup := BackupPath(path)
	if fi, err := os.Stat(backup); err == nil && fi.Mode().IsRegular() {
		return backup, true
	}
	return backup, false
}

// RestoreBackup replaces path with its backup and removes the backup.
func RestoreBackup(path string) error {
	backup, ok := StaleBackup(path)
	if !ok {
		return fmt.Errorf("no backup for %s: %w", path, os.ErrNotExist)
	}
	if err := ValidateFile(backup); err != nil {
		return err
	}
	if err := copyFile(backup, path); err != nil {
		return fmt.Errorf("failed to restore %s: %w", path, err)
	}
	if err := ValidateFile(path); err != nil {
		return err
	}
	return os.Remove(backup)
}

// DiscardBackup removes the backup of path if any.
func DiscardBackup(path string) error {
	err := os.Remove(BackupPath(path))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// copyFile copies src over dst, truncating dst.
func copyFile(src, dst string) error {
	in, err := os.Open(src) //nolint:gosec // G304: path comes from configuration
	if err != nil {
		return err
	}
	defer func() {
		_ = in.Close()
	}()
	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644) //nolint:gosec // G304: sibling of a configured path
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	if err := out.Sync(); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
