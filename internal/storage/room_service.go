// Handles room persistence over the JSONL table.

package storage

import (
	"log/slog"
	"strings"

	"github.com/inventorysystem/inventory/internal/jsonldb"
	"github.com/inventorysystem/inventory/internal/storage/entity"
)

// RoomService handles room CRUD.
//
// Not-found is reported as a nil room with a nil error.
type RoomService struct {
	table   *jsonldb.Table[*entity.Room]
	itemIDs *jsonldb.Counter
}

// Save stores a copy of room with fresh ids for the room and each of its
// items and returns the room id. room itself is not modified.
func (s *RoomService) Save(room *entity.Room) (int64, error) {
	if room == nil {
		return 0, errNilRoom
	}
	if len(room.Items) == 0 {
		return 0, errNoItems
	}
	if err := room.Validate(); err != nil {
		return 0, invalid(err)
	}
	var id int64
	err := s.table.Do(func(tx *jsonldb.Tx[*entity.Room]) error {
		r := room.Clone()
		for i := range r.Items {
			itemID, err := s.itemIDs.Next()
			if err != nil {
				return err
			}
			r.Items[i].ID = itemID
		}
		var err error
		id, err = tx.Save(r)
		return err
	})
	if err != nil {
		return 0, err
	}
	slog.Info("Room created", "id", id, "code", room.Code, "items", len(room.Items))
	return id, nil
}

// All returns every room in file order.
func (s *RoomService) All() ([]*entity.Room, error) {
	return s.table.All()
}

// Get returns the room matched by key.
func (s *RoomService) Get(key jsonldb.Key) (*entity.Room, error) {
	if key.IsZero() {
		return nil, errZeroKey
	}
	return s.table.Get(key)
}

// Update replaces the room matched by key with repl and returns the stored
// room.
//
// The stored room keeps the matched room's id and code. A replacement with
// an empty code inherits it; addressed by id, a replacement with a different
// code is rejected. When repl has as many items as the matched room, items
// inherit the ids of the items at the same positions; otherwise every item
// gets a fresh id.
func (s *RoomService) Update(key jsonldb.Key, repl *entity.Room) (*entity.Room, error) {
	if key.IsZero() {
		return nil, errZeroKey
	}
	if repl == nil {
		return nil, errNilRoom
	}
	if len(repl.Items) == 0 {
		return nil, errNoItems
	}
	for i := range repl.Items {
		if err := repl.Items[i].Validate(); err != nil {
			return nil, invalid(err)
		}
	}
	var updated *entity.Room
	err := s.table.Do(func(tx *jsonldb.Tx[*entity.Room]) error {
		prev, err := tx.Get(key)
		if err != nil || prev == nil {
			return err
		}
		r := repl.Clone()
		if !key.IsCode() && strings.TrimSpace(r.Code) != "" && !strings.EqualFold(r.Code, prev.Code) {
			return errCodeChange
		}
		r.Code = prev.Code
		if err := s.reconcileItemIDs(prev, r); err != nil {
			return err
		}
		updated, err = tx.Update(key, r)
		return err
	})
	if err != nil {
		return nil, err
	}
	if updated != nil {
		slog.Info("Room updated", "id", updated.ID, "code", updated.Code, "items", len(updated.Items))
	}
	return updated, nil
}

// Delete removes the room matched by key and returns it.
func (s *RoomService) Delete(key jsonldb.Key) (*entity.Room, error) {
	if key.IsZero() {
		return nil, errZeroKey
	}
	removed, err := s.table.Delete(key)
	if err != nil {
		return nil, err
	}
	if removed != nil {
		slog.Info("Room deleted", "id", removed.ID, "code", removed.Code)
	}
	return removed, nil
}

func (s *RoomService) reconcileItemIDs(prev, r *entity.Room) error {
	if len(r.Items) == len(prev.Items) {
		for i := range r.Items {
			r.Items[i].ID = prev.Items[i].ID
		}
		return nil
	}
	for i := range r.Items {
		id, err := s.itemIDs.Next()
		if err != nil {
			return err
		}
		r.Items[i].ID = id
	}
	return nil
}
