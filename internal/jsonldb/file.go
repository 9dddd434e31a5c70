// Validates and creates the physical files backing tables and counters.

package jsonldb

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrInvalidFile is returned when a backing file fails validation.
	ErrInvalidFile = errors.New("invalid file")
	// ErrCorrupt is returned when a line cannot be decoded.
	ErrCorrupt = errors.New("corrupt record")
	// ErrStaleBackup is returned when a backup from an interrupted rewrite is found.
	ErrStaleBackup = errors.New("stale backup file")
)

// ValidateFile checks that path names an existing, regular, readable and
// writable file with a non-blank base name and a "txt" or "json" extension.
//
// A file lacking read or write permission gets one chmod attempt before the
// check fails. Nothing else is ever corrected.
func ValidateFile(path string) error {
	name := filepath.Base(path)
	base, ext, _ := strings.Cut(name, ".")
	if strings.TrimSpace(base) == "" {
		return fmt.Errorf("%w: %s: file name can't be empty", ErrInvalidFile, path)
	}
	if ext = filepath.Ext(name); !strings.EqualFold(ext, ".txt") && !strings.EqualFold(ext, ".json") {
		return fmt.Errorf("%w: %s: extension must be .txt or .json", ErrInvalidFile, path)
	}
	fi, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s does not exist", ErrInvalidFile, path)
		}
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if !fi.Mode().IsRegular() {
		return fmt.Errorf("%w: %s is not a regular file", ErrInvalidFile, path)
	}
	if err := checkReadWrite(path); err == nil {
		return nil
	}
	if err := os.Chmod(path, fi.Mode().Perm()|0o600); err != nil { //nolint:gosec // G302: owner read/write only
		return fmt.Errorf("%w: %s is read- or write-protected: %w", ErrInvalidFile, path, err)
	}
	if err := checkReadWrite(path); err != nil {
		return fmt.Errorf("%w: %s is read- or write-protected: %w", ErrInvalidFile, path, err)
	}
	return nil
}

func checkReadWrite(path string) error {
	f, err := os.OpenFile(path, os.O_RDWR, 0) //nolint:gosec // G304: path comes from configuration
	if err != nil {
		return err
	}
	return f.Close()
}

// createFile creates path and its parent directory when missing, then
// validates it.
func createFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil { //nolint:gosec // G301: 0o755 is intentional for data directories
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0o644) //nolint:gosec // G304: path comes from configuration
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return ValidateFile(path)
}

// syncFile flushes f to stable storage. Tests replace it to simulate a
// failing disk.
var syncFile = (*os.File).Sync

// writeFileAtomic replaces path with data. The content goes to a temporary
// file in the same directory which is synced then renamed over path, so a
// reader sees either the old or the new content.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil { //nolint:gosec // G301: 0o755 is intentional for data directories
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	defer func() {
		_ = os.Remove(tmp.Name())
	}()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write %s: %w", tmp.Name(), err)
	}
	if err := syncFile(tmp); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to sync %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", tmp.Name(), err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil { //nolint:gosec // G302: data files are world readable
		return fmt.Errorf("failed to chmod %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

// exists reports whether path exists. Errors other than "not exist" count as
// existing so that the following open surfaces them.
func exists(path string) bool {
	_, err := os.Stat(path)
	return !errors.Is(err, os.ErrNotExist)
}
