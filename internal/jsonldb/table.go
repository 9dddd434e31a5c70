package jsonldb

import (
	"fmt"
	"log/slog"
	"reflect"
	"slices"
	"sync"
)

// Cloner is implemented by types that can clone themselves.
type Cloner[T any] interface {
	Clone() T
}

// Row is implemented by all types stored in a [Table].
//
// GetKey returns the business code used by [ByCode] lookups. SetID and SetKey
// are only called on clones owned by the table.
type Row[T any] interface {
	Cloner[T]
	GetID() int64
	SetID(id int64)
	GetKey() string
	SetKey(key string)
}

// Table provides CRUD over rows of type T stored through [Lines], with ids
// minted by a [Counter] and every rewrite wrapped by [WithBackup].
//
// The file is the source of truth: every operation re-reads it. All
// operations, including reads, are serialized by a single mutex.
type Table[T Row[T]] struct {
	mu    sync.Mutex
	lines *Lines[T]
	ids   *Counter
	name  string
}

// NewTable creates a table storing rows at path with ids drawn from ids.
func NewTable[T Row[T]](path string, ids *Counter) *Table[T] {
	t := reflect.TypeFor[T]()
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	slog.Debug("Table initialised", "type", t.Name(), "path", path)
	return &Table[T]{lines: NewLines[T](path), ids: ids, name: t.Name()}
}

// Path returns the backing file path.
func (t *Table[T]) Path() string {
	return t.lines.Path()
}

// IDs returns the table's id counter.
func (t *Table[T]) IDs() *Counter {
	return t.ids
}

// Do runs fn with exclusive access to the table. Every operation fn performs
// through tx is part of one uninterrupted sequence.
//
// Do is not reentrant: fn must only use tx. Calling a Table method from
// inside fn deadlocks. tx must not be retained after fn returns.
func (t *Table[T]) Do(fn func(tx *Tx[T]) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return fn(&Tx[T]{t: t})
}

// Save assigns a fresh id to a clone of row, appends it and returns the id.
func (t *Table[T]) Save(row T) (int64, error) {
	var id int64
	err := t.Do(func(tx *Tx[T]) error {
		var err error
		id, err = tx.Save(row)
		return err
	})
	return id, err
}

// All returns every row in file order.
func (t *Table[T]) All() ([]T, error) {
	var rows []T
	err := t.Do(func(tx *Tx[T]) error {
		var err error
		rows, err = tx.All()
		return err
	})
	return rows, err
}

// Get returns the first row matched by key, or the zero T if none matches.
func (t *Table[T]) Get(key Key) (T, error) {
	var row T
	err := t.Do(func(tx *Tx[T]) error {
		var err error
		row, err = tx.Get(key)
		return err
	})
	return row, err
}

// Update replaces the row matched by key, see [Tx.Update].
func (t *Table[T]) Update(key Key, repl T) (T, error) {
	var row T
	err := t.Do(func(tx *Tx[T]) error {
		var err error
		row, err = tx.Update(key, repl)
		return err
	})
	return row, err
}

// Delete removes the row matched by key, see [Tx.Delete].
func (t *Table[T]) Delete(key Key) (T, error) {
	var row T
	err := t.Do(func(tx *Tx[T]) error {
		var err error
		row, err = tx.Delete(key)
		return err
	})
	return row, err
}

// Tx exposes the table operations to a function running under [Table.Do].
type Tx[T Row[T]] struct {
	t *Table[T]
}

// NextID mints an id from the table's counter.
func (tx *Tx[T]) NextID() (int64, error) {
	return tx.t.ids.Next()
}

// Save assigns a fresh id to a clone of row, appends it and returns the id.
func (tx *Tx[T]) Save(row T) (int64, error) {
	row = row.Clone()
	id, err := tx.t.ids.Next()
	if err != nil {
		return 0, err
	}
	row.SetID(id)
	if err := tx.t.lines.Append(row); err != nil {
		return 0, err
	}
	slog.Debug("Row stored", "type", tx.t.name, "id", id)
	return id, nil
}

// All returns every row in file order.
func (tx *Tx[T]) All() ([]T, error) {
	return tx.t.lines.All()
}

// Get returns the first row matched by key, or the zero T if none matches.
func (tx *Tx[T]) Get(key Key) (T, error) {
	rows, err := tx.t.lines.All()
	if err != nil {
		var zero T
		return zero, err
	}
	if i := tx.index(rows, key); i >= 0 {
		return rows[i], nil
	}
	slog.Debug("Row not found", "type", tx.t.name, "key", key.String())
	var zero T
	return zero, nil
}

// Update replaces the row matched by key with a clone of repl at the same
// line position and returns the stored clone, or the zero T if none matches.
//
// The stored row keeps the matched row's id. When key addresses by code, it
// also keeps the matched row's code, as it does when repl has no code.
func (tx *Tx[T]) Update(key Key, repl T) (T, error) {
	var zero T
	rows, err := tx.t.lines.All()
	if err != nil {
		return zero, err
	}
	i := tx.index(rows, key)
	if i < 0 {
		slog.Debug("Update failed, row not found", "type", tx.t.name, "key", key.String())
		return zero, nil
	}
	prev := rows[i]
	repl = repl.Clone()
	repl.SetID(prev.GetID())
	if key.IsCode() || repl.GetKey() == "" {
		repl.SetKey(prev.GetKey())
	}
	rows[i] = repl
	if err := tx.rewrite(rows); err != nil {
		return zero, err
	}
	slog.Debug("Row updated", "type", tx.t.name, "id", repl.GetID())
	return repl.Clone(), nil
}

// Delete removes the row matched by key and returns it, or the zero T if none
// matches. The remaining rows keep their order; removing the last row leaves
// an empty file.
func (tx *Tx[T]) Delete(key Key) (T, error) {
	var zero T
	rows, err := tx.t.lines.All()
	if err != nil {
		return zero, err
	}
	i := tx.index(rows, key)
	if i < 0 {
		slog.Debug("Delete failed, row not found", "type", tx.t.name, "key", key.String())
		return zero, nil
	}
	removed := rows[i]
	if err := tx.rewrite(slices.Delete(rows, i, i+1)); err != nil {
		return zero, err
	}
	slog.Debug("Row deleted", "type", tx.t.name, "id", removed.GetID())
	return removed, nil
}

func (tx *Tx[T]) index(rows []T, key Key) int {
	return slices.IndexFunc(rows, func(r T) bool {
		return key.Matches(r.GetID(), r.GetKey())
	})
}

func (tx *Tx[T]) rewrite(rows []T) error {
	path := tx.t.lines.Path()
	if !tx.t.lines.Exists() {
		return fmt.Errorf("%w: %s does not exist", ErrInvalidFile, path)
	}
	return WithBackup(path, func() error {
		return tx.t.lines.Replace(rows)
	})
}
