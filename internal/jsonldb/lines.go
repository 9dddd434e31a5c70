package jsonldb

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// maxLineSize bounds a single record. Rooms embed all of their items on one
// line so the scanner default of 64KiB is too small.
const maxLineSize = 16 * 1024 * 1024

// Lines stores values of type T in a JSONL file, one value per line.
//
// Each method is a single physical operation guarded by a private mutex.
// Read-modify-write sequences need an outer lock, see [Table].
type Lines[T any] struct {
	path string
	mu   sync.Mutex
}

// NewLines returns a line store for path. The file is not created until the
// first write.
func NewLines[T any](path string) *Lines[T] {
	return &Lines[T]{path: path}
}

// Path returns the backing file path.
func (l *Lines[T]) Path() string {
	return l.path
}

// Exists reports whether the backing file exists.
func (l *Lines[T]) Exists() bool {
	return exists(l.path)
}

// All decodes every line in file order.
//
// Returns an empty slice when the file does not exist.
func (l *Lines[T]) All() ([]T, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.readAll()
}

func (l *Lines[T]) readAll() ([]T, error) {
	f, err := os.Open(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []T{}, nil
		}
		return nil, fmt.Errorf("failed to open %s: %w", l.path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	rows := []T{}
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for n := 1; scanner.Scan(); n++ {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			return nil, fmt.Errorf("%w: %s:%d: empty line", ErrCorrupt, l.path, n)
		}
		var row T
		if err := json.Unmarshal(line, &row); err != nil {
			return nil, fmt.Errorf("%w: %s:%d: %w", ErrCorrupt, l.path, n, err)
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", l.path, err)
	}
	return rows, nil
}

// Append adds row as a new last line, creating the file and its directory
// when missing.
func (l *Lines[T]) Append(row T) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	data, err := json.Marshal(row)
	if err != nil {
		return fmt.Errorf("failed to marshal row: %w", err)
	}
	if err := createFile(l.path); err != nil {
		return err
	}

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_WRONLY, 0o644) //nolint:gosec // G304: path comes from configuration
	if err != nil {
		return fmt.Errorf("failed to open %s for append: %w", l.path, err)
	}
	data = append(data, '\n')
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write row: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", l.path, err)
	}
	return ValidateFile(l.path)
}

// Replace atomically replaces the whole content with rows, in order.
//
// An empty rows truncates the file to zero bytes; the file itself is kept.
func (l *Lines[T]) Replace(rows []T) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	var buf bytes.Buffer
	for _, row := range rows {
		data, err := json.Marshal(row)
		if err != nil {
			return fmt.Errorf("failed to marshal row: %w", err)
		}
		buf.Write(data)
		buf.WriteByte('\n')
	}

	if err := writeFileAtomic(l.path, buf.Bytes()); err != nil {
		return err
	}
	if err := ValidateFile(l.path); err != nil {
		return err
	}

	// Read back what was written; a short or undecodable file fails the rewrite.
	got, err := l.readAll()
	if err != nil {
		return err
	}
	if len(got) != len(rows) {
		return fmt.Errorf("%w: %s: wrote %d rows, read back %d", ErrCorrupt, l.path, len(rows), len(got))
	}
	return nil
}
