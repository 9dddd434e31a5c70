// Handles items nested inside their room.

package storage

import (
	"log/slog"
	"slices"
	"time"

	"github.com/inventorysystem/inventory/internal/jsonldb"
	"github.com/inventorysystem/inventory/internal/storage/entity"
)

// ItemService handles CRUD on items by rewriting their owning room.
//
// Items are addressed store-wide: an id or code lookup returns the first
// match in room-then-item order. Not-found is reported as a nil result with a
// nil error.
type ItemService struct {
	table *jsonldb.Table[*entity.Room]
	ids   *jsonldb.Counter
	now   func() time.Time
}

// Upsert stores item in the room matched by roomKey and returns the updated
// room.
//
// When the room holds an item with the same content (see
// [entity.SameContent]), item replaces it at its position and keeps its id.
// Otherwise item is appended with a fresh id. Either way its modification
// date is set to today.
func (s *ItemService) Upsert(roomKey jsonldb.Key, item *entity.Item) (*entity.Room, error) {
	if roomKey.IsZero() {
		return nil, errZeroKey
	}
	if item == nil {
		return nil, errNilItem
	}
	if err := item.Validate(); err != nil {
		return nil, invalid(err)
	}
	var updated *entity.Room
	err := s.table.Do(func(tx *jsonldb.Tx[*entity.Room]) error {
		room, err := tx.Get(roomKey)
		if err != nil || room == nil {
			return err
		}
		it := *item.Clone()
		it.ModificationDate = entity.DateOf(s.now())
		if i := slices.IndexFunc(room.Items, func(x entity.Item) bool { return entity.SameContent(&x, &it) }); i >= 0 {
			it.ID = room.Items[i].ID
			room.Items[i] = it
		} else {
			if it.ID, err = s.ids.Next(); err != nil {
				return err
			}
			room.Items = append(room.Items, it)
		}
		updated, err = tx.Update(jsonldb.ByID(room.ID), room)
		if err == nil {
			slog.Info("Item stored", "id", it.ID, "code", it.Code, "room", room.ID)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// All returns every item of every room, in room-then-item order.
func (s *ItemService) All() ([]entity.Item, error) {
	rooms, err := s.table.All()
	if err != nil {
		return nil, err
	}
	items := []entity.Item{}
	for _, r := range rooms {
		items = append(items, r.Items...)
	}
	return items, nil
}

// ListByRoom returns the items of the room matched by roomKey, or nil if no
// room matches.
func (s *ItemService) ListByRoom(roomKey jsonldb.Key) ([]entity.Item, error) {
	if roomKey.IsZero() {
		return nil, errZeroKey
	}
	room, err := s.table.Get(roomKey)
	if err != nil || room == nil {
		return nil, err
	}
	if room.Items == nil {
		return []entity.Item{}, nil
	}
	return room.Items, nil
}

// Get returns the item matched by key.
func (s *ItemService) Get(key jsonldb.Key) (*entity.Item, error) {
	if key.IsZero() {
		return nil, errZeroKey
	}
	var found *entity.Item
	err := s.table.Do(func(tx *jsonldb.Tx[*entity.Room]) error {
		rooms, err := tx.All()
		if err != nil {
			return err
		}
		if r, i := locate(rooms, key); r >= 0 {
			found = &rooms[r].Items[i]
		}
		return nil
	})
	return found, err
}

// Delete removes the item matched by key from its room and returns it. The
// remaining items keep their order. The room is kept even when it ends up
// empty.
func (s *ItemService) Delete(key jsonldb.Key) (*entity.Item, error) {
	if key.IsZero() {
		return nil, errZeroKey
	}
	var removed *entity.Item
	err := s.table.Do(func(tx *jsonldb.Tx[*entity.Room]) error {
		rooms, err := tx.All()
		if err != nil {
			return err
		}
		r, i := locate(rooms, key)
		if r < 0 {
			return nil
		}
		room := rooms[r]
		it := room.Items[i]
		room.Items = slices.Delete(room.Items, i, i+1)
		if _, err := tx.Update(jsonldb.ByID(room.ID), room); err != nil {
			return err
		}
		removed = &it
		slog.Info("Item deleted", "id", it.ID, "code", it.Code, "room", room.ID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return removed, nil
}

// Update replaces the item matched by key with repl at its position in its
// room and returns the stored item. The stored item keeps the matched item's
// id and its modification date is set to today.
func (s *ItemService) Update(key jsonldb.Key, repl *entity.Item) (*entity.Item, error) {
	if key.IsZero() {
		return nil, errZeroKey
	}
	if repl == nil {
		return nil, errNilItem
	}
	if err := repl.Validate(); err != nil {
		return nil, invalid(err)
	}
	var updated *entity.Item
	err := s.table.Do(func(tx *jsonldb.Tx[*entity.Room]) error {
		rooms, err := tx.All()
		if err != nil {
			return err
		}
		r, i := locate(rooms, key)
		if r < 0 {
			return nil
		}
		room := rooms[r]
		it := *repl.Clone()
		it.ID = room.Items[i].ID
		it.ModificationDate = entity.DateOf(s.now())
		room.Items[i] = it
		if _, err := tx.Update(jsonldb.ByID(room.ID), room); err != nil {
			return err
		}
		updated = it.Clone()
		slog.Info("Item updated", "id", it.ID, "code", it.Code, "room", room.ID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// locate returns the room and item indexes of the first item matched by key,
// or -1, -1.
func locate(rooms []*entity.Room, key jsonldb.Key) (int, int) {
	for r, room := range rooms {
		if i := slices.IndexFunc(room.Items, func(it entity.Item) bool {
			return key.Matches(it.ID, it.Code)
		}); i >= 0 {
			return r, i
		}
	}
	return -1, -1
}
