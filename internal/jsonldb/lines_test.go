package jsonldb

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLines(t *testing.T) {
	t.Run("All", func(t *testing.T) {
		t.Run("missing file", func(t *testing.T) {
			l := NewLines[testRow](filepath.Join(t.TempDir(), "none.txt"))
			rows, err := l.All()
			if err != nil {
				t.Fatalf("All failed: %v", err)
			}
			if rows == nil || len(rows) != 0 {
				t.Errorf("All() = %#v, want empty non-nil slice", rows)
			}
		})

		tests := []struct {
			name    string
			content string
			want    int
			wantErr error
		}{
			{"empty file", "", 0, nil},
			{"two rows", "{\"id\":1}\n{\"id\":2}\n", 2, nil},
			{"missing trailing newline", "{\"id\":1}\n{\"id\":2}", 2, nil},
			{"blank line", "{\"id\":1}\n\n{\"id\":2}\n", 0, ErrCorrupt},
			{"garbage", "{\"id\":1}\nnot json\n", 0, ErrCorrupt},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				path := filepath.Join(t.TempDir(), "rows.txt")
				if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
					t.Fatal(err)
				}
				rows, err := NewLines[testRow](path).All()
				if tt.wantErr != nil {
					if !errors.Is(err, tt.wantErr) {
						t.Fatalf("All() error = %v, want %v", err, tt.wantErr)
					}
					return
				}
				if err != nil {
					t.Fatalf("All failed: %v", err)
				}
				if len(rows) != tt.want {
					t.Errorf("len(All()) = %d, want %d", len(rows), tt.want)
				}
			})
		}
	})

	t.Run("Append", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "dir", "rows.txt")
		l := NewLines[testRow](path)
		if l.Exists() {
			t.Fatal("Exists() = true before first write")
		}
		for i := range 3 {
			if err := l.Append(testRow{ID: int64(i + 1), Code: "c"}); err != nil {
				t.Fatalf("Append failed: %v", err)
			}
		}
		rows, err := l.All()
		if err != nil {
			t.Fatal(err)
		}
		for i, r := range rows {
			if r.ID != int64(i+1) {
				t.Errorf("rows[%d].ID = %d, want %d", i, r.ID, i+1)
			}
		}
	})

	t.Run("Append rejects bad extension", func(t *testing.T) {
		l := NewLines[testRow](filepath.Join(t.TempDir(), "rows.jsonl"))
		if err := l.Append(testRow{ID: 1}); !errors.Is(err, ErrInvalidFile) {
			t.Errorf("Append() error = %v, want ErrInvalidFile", err)
		}
	})

	t.Run("Replace", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "rows.txt")
		l := NewLines[testRow](path)
		if err := l.Append(testRow{ID: 1}); err != nil {
			t.Fatal(err)
		}
		if err := l.Replace([]testRow{{ID: 3}, {ID: 2}}); err != nil {
			t.Fatalf("Replace failed: %v", err)
		}
		rows, err := l.All()
		if err != nil {
			t.Fatal(err)
		}
		if len(rows) != 2 || rows[0].ID != 3 || rows[1].ID != 2 {
			t.Errorf("All() = %+v, want ids [3 2]", rows)
		}

		if err := l.Replace(nil); err != nil {
			t.Fatalf("Replace(nil) failed: %v", err)
		}
		fi, err := os.Stat(path)
		if err != nil {
			t.Fatalf("file removed by empty Replace: %v", err)
		}
		if fi.Size() != 0 {
			t.Errorf("size = %d, want 0", fi.Size())
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatal(err)
		}
		if len(entries) != 1 {
			t.Errorf("directory holds %d entries, want only rows.txt", len(entries))
		}
	})
}
