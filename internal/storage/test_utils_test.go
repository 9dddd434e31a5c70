package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/inventorysystem/inventory/internal/storage/entity"
	"github.com/shopspring/decimal"
)

var testNow = time.Date(2024, time.May, 17, 15, 4, 5, 0, time.UTC)

// newTestStore opens a store in a temp directory with a fixed clock.
func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	cfg := DefaultConfig()
	s, err := Open(dir, &cfg, BackupFail)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	s.Items.now = func() time.Time { return testNow }
	return s, dir
}

func item(code, desc string, qty int, price string) entity.Item {
	return entity.Item{Code: code, Description: desc, Quantity: qty, Price: decimal.RequireFromString(price)}
}

func lineCount(t *testing.T, path string) int {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	n := 0
	for _, b := range data {
		if b == '\n' {
			n++
		}
	}
	return n
}

func noBackup(t *testing.T, dir string) {
	t.Helper()
	if _, err := os.Stat(filepath.Join(dir, "rooms_COPY.txt")); !os.IsNotExist(err) {
		t.Errorf("backup file present: %v", err)
	}
}
