// Package storage implements the room and item services over the JSONL store.
//
// Rooms are the rows of a single jsonldb.Table; items live inside their room.
// Both services share that table, so every operation on either kind is
// serialized by the same lock.
package storage

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/inventorysystem/inventory/internal/jsonldb"
	"github.com/inventorysystem/inventory/internal/storage/entity"
)

// BackupPolicy decides what Open does with a backup left over by an
// interrupted rewrite.
type BackupPolicy string

const (
	// BackupFail refuses to open the store.
	BackupFail BackupPolicy = "fail"
	// BackupRestore replaces the record file with the backup.
	BackupRestore BackupPolicy = "restore"
	// BackupDiscard deletes the backup and keeps the record file.
	BackupDiscard BackupPolicy = "discard"
)

// ParseBackupPolicy parses a policy name. An empty name is BackupFail.
func ParseBackupPolicy(s string) (BackupPolicy, error) {
	switch p := BackupPolicy(s); p {
	case "":
		return BackupFail, nil
	case BackupFail, BackupRestore, BackupDiscard:
		return p, nil
	default:
		return "", fmt.Errorf("unknown backup policy %q, want fail, restore or discard", s)
	}
}

// Store wires the room and item services to their files.
type Store struct {
	Rooms *RoomService
	Items *ItemService

	table   *jsonldb.Table[*entity.Room]
	itemIDs *jsonldb.Counter
}

// Open opens the store in dir using the file names of cfg.
//
// A backup left by an interrupted rewrite is handled according to policy
// before anything else touches the record file.
func Open(dir string, cfg *Config, policy BackupPolicy) (*Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	path := filepath.Join(dir, cfg.FileName)
	if err := reconcileBackup(path, policy); err != nil {
		return nil, err
	}
	roomIDs := jsonldb.NewCounter(filepath.Join(dir, cfg.RoomIDFileName))
	itemIDs := jsonldb.NewCounter(filepath.Join(dir, cfg.ItemIDFileName))
	table := jsonldb.NewTable[*entity.Room](path, roomIDs)
	s := &Store{
		Rooms:   &RoomService{table: table, itemIDs: itemIDs},
		Items:   &ItemService{table: table, ids: itemIDs, now: time.Now},
		table:   table,
		itemIDs: itemIDs,
	}
	slog.Info("Store opened", "path", path)
	return s, nil
}

// NextIDs returns the ids the next room and item will receive.
func (s *Store) NextIDs() (room, item int64, err error) {
	if room, err = s.table.IDs().Peek(); err != nil {
		return 0, 0, err
	}
	if item, err = s.itemIDs.Peek(); err != nil {
		return 0, 0, err
	}
	return room, item, nil
}

// Path returns the room record file path.
func (s *Store) Path() string {
	return s.table.Path()
}

func reconcileBackup(path string, policy BackupPolicy) error {
	backup, ok := jsonldb.StaleBackup(path)
	if !ok {
		return nil
	}
	switch policy {
	case BackupRestore:
		slog.Warn("Restoring record file from stale backup", "path", path, "backup", backup)
		if err := jsonldb.RestoreBackup(path); err != nil {
			return fmt.Errorf("failed to restore %s: %w", path, err)
		}
	case BackupDiscard:
		slog.Warn("Discarding stale backup", "path", path, "backup", backup)
		if err := jsonldb.DiscardBackup(path); err != nil {
			return fmt.Errorf("failed to discard %s: %w", backup, err)
		}
	case BackupFail, "":
		slog.Warn("Stale backup found, a previous rewrite did not complete", "path", path, "backup", backup)
		return fmt.Errorf("%w: %s; rerun with backup policy restore or discard", jsonldb.ErrStaleBackup, backup)
	default:
		return errors.New("unknown backup policy " + string(policy))
	}
	return nil
}
