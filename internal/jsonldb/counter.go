package jsonldb

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
)

// Counter is a persistent monotonically increasing int64 sequence stored as a
// single decimal line in its own file.
//
// Counter is safe for concurrent use. It never takes another lock while
// holding its own.
type Counter struct {
	path string
	mu   sync.Mutex
}

// NewCounter returns a counter backed by path. A missing or empty file starts
// the sequence at 1.
func NewCounter(path string) *Counter {
	return &Counter{path: path}
}

// Path returns the backing file path.
func (c *Counter) Path() string {
	return c.path
}

// Next returns the current value and persists value+1. The file is replaced
// atomically; a failed write leaves the previous value in place.
func (c *Counter) Next() (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := createFile(c.path); err != nil {
		return 0, err
	}
	v, err := c.read()
	if err != nil {
		return 0, err
	}
	data := strconv.FormatInt(v+1, 10) + "\n"
	if err := writeFileAtomic(c.path, []byte(data)); err != nil {
		return 0, fmt.Errorf("failed to write counter %s: %w", c.path, err)
	}
	if err := ValidateFile(c.path); err != nil {
		return 0, err
	}
	return v, nil
}

// Peek returns the value the next call to Next would return without
// consuming it.
func (c *Counter) Peek() (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.read()
}

func (c *Counter) read() (int64, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if os.IsNotExist(err) {
			return 1, nil
		}
		return 0, fmt.Errorf("failed to read counter %s: %w", c.path, err)
	}
	line, _, _ := strings.Cut(string(data), "\n")
	line = strings.TrimSpace(line)
	if line == "" {
		return 1, nil
	}
	v, err := strconv.ParseInt(line, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: counter %s: %w", ErrCorrupt, c.path, err)
	}
	if v < 1 {
		return 0, fmt.Errorf("%w: counter %s holds %d", ErrCorrupt, c.path, v)
	}
	return v, nil
}
