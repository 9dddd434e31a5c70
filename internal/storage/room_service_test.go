package storage

import (
	"errors"
	"os"
	"slices"
	"testing"

	"github.com/inventorysystem/inventory/internal/jsonldb"
	"github.com/inventorysystem/inventory/internal/storage/entity"
)

func TestRoomService(t *testing.T) {
	t.Run("save get delete", func(t *testing.T) {
		s, _ := newTestStore(t)
		id, err := s.Rooms.Save(&entity.Room{Code: "101", Items: []entity.Item{item("INV-1", "Desk", 1, "100.00")}})
		if err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		if id != 1 {
			t.Errorf("Save() = %d, want 1", id)
		}

		got, err := s.Rooms.Get(jsonldb.ByID(1))
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if got == nil || got.Code != "101" || len(got.Items) != 1 {
			t.Fatalf("Get() = %+v", got)
		}
		want := item("INV-1", "Desk", 1, "100")
		if got.Items[0].ID != 1 || !entity.SameContent(&got.Items[0], &want) {
			t.Errorf("item = %+v", got.Items[0])
		}

		removed, err := s.Rooms.Delete(jsonldb.ByID(1))
		if err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if removed == nil || removed.ID != 1 {
			t.Errorf("Delete() = %+v, want room 1", removed)
		}
		rooms, err := s.Rooms.All()
		if err != nil {
			t.Fatal(err)
		}
		if len(rooms) != 0 {
			t.Errorf("All() = %+v, want empty", rooms)
		}
		fi, err := os.Stat(s.Path())
		if err != nil {
			t.Fatalf("record file removed: %v", err)
		}
		if fi.Size() != 0 {
			t.Errorf("record file size = %d, want 0", fi.Size())
		}
	})

	t.Run("save assigns item ids", func(t *testing.T) {
		s, _ := newTestStore(t)
		in := &entity.Room{Code: "A", Items: []entity.Item{item("a", "", 1, "1"), item("b", "", 1, "1")}}
		if _, err := s.Rooms.Save(in); err != nil {
			t.Fatal(err)
		}
		if _, err := s.Rooms.Save(&entity.Room{Code: "B", Items: []entity.Item{item("c", "", 1, "1")}}); err != nil {
			t.Fatal(err)
		}
		if in.ID != 0 || in.Items[0].ID != 0 {
			t.Errorf("Save modified its argument: %+v", in)
		}
		items, err := s.Items.All()
		if err != nil {
			t.Fatal(err)
		}
		var ids []int64
		for _, it := range items {
			ids = append(ids, it.ID)
		}
		if !slices.Equal(ids, []int64{1, 2, 3}) {
			t.Errorf("item ids = %v, want [1 2 3]", ids)
		}
		room, itemID, err := s.NextIDs()
		if err != nil {
			t.Fatal(err)
		}
		if room != 3 || itemID != 4 {
			t.Errorf("NextIDs() = %d, %d; want 3, 4", room, itemID)
		}
	})

	t.Run("validation", func(t *testing.T) {
		s, dir := newTestStore(t)
		tests := []struct {
			name string
			room *entity.Room
		}{
			{"nil", nil},
			{"no items", &entity.Room{Code: "101"}},
			{"blank code", &entity.Room{Code: " ", Items: []entity.Item{item("a", "", 1, "1")}}},
			{"invalid item", &entity.Room{Code: "101", Items: []entity.Item{item("", "", 1, "1")}}},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				if _, err := s.Rooms.Save(tt.room); !errors.Is(err, ErrInvalid) {
					t.Errorf("Save() error = %v, want ErrInvalid", err)
				}
			})
		}
		if _, err := s.Rooms.Get(jsonldb.Key{}); !errors.Is(err, ErrInvalid) {
			t.Errorf("Get(zero key) error = %v, want ErrInvalid", err)
		}
		if _, err := os.Stat(s.Path()); !os.IsNotExist(err) {
			t.Errorf("rejected calls touched the record file in %s", dir)
		}
	})

	t.Run("update preserves position", func(t *testing.T) {
		s, dir := newTestStore(t)
		for _, code := range []string{"P1", "P2", "P3"} {
			if _, err := s.Rooms.Save(&entity.Room{Code: code, Items: []entity.Item{item("x-"+code, "", 1, "1")}}); err != nil {
				t.Fatal(err)
			}
		}
		got, err := s.Rooms.Update(jsonldb.ByCode("p2"), &entity.Room{Code: "renamed", Items: []entity.Item{item("y", "Chair", 2, "5")}})
		if err != nil {
			t.Fatalf("Update failed: %v", err)
		}
		if got == nil || got.ID != 2 || got.Code != "P2" {
			t.Fatalf("Update() = %+v, want id 2 code P2", got)
		}
		if got.Items[0].ID != 2 {
			t.Errorf("item id = %d, want inherited 2", got.Items[0].ID)
		}
		rooms, err := s.Rooms.All()
		if err != nil {
			t.Fatal(err)
		}
		var order []string
		for _, r := range rooms {
			order = append(order, r.Code)
		}
		if !slices.Equal(order, []string{"P1", "P2", "P3"}) {
			t.Errorf("order = %v", order)
		}
		if rooms[1].Items[0].Description != "Chair" {
			t.Errorf("P2 not replaced: %+v", rooms[1])
		}
		noBackup(t, dir)
	})

	t.Run("update reconciles item ids", func(t *testing.T) {
		s, _ := newTestStore(t)
		if _, err := s.Rooms.Save(&entity.Room{Code: "101", Items: []entity.Item{item("a", "", 1, "1"), item("b", "", 1, "1")}}); err != nil {
			t.Fatal(err)
		}
		same, err := s.Rooms.Update(jsonldb.ByID(1), &entity.Room{Items: []entity.Item{item("c", "", 1, "1"), item("d", "", 1, "1")}})
		if err != nil {
			t.Fatal(err)
		}
		if same.Code != "101" || same.Items[0].ID != 1 || same.Items[1].ID != 2 {
			t.Errorf("same-size update = %+v, want code 101 and item ids 1, 2", same)
		}
		grown, err := s.Rooms.Update(jsonldb.ByID(1), &entity.Room{Items: []entity.Item{item("c", "", 1, "1"), item("d", "", 1, "1"), item("e", "", 1, "1")}})
		if err != nil {
			t.Fatal(err)
		}
		var ids []int64
		for _, it := range grown.Items {
			ids = append(ids, it.ID)
		}
		if !slices.Equal(ids, []int64{3, 4, 5}) {
			t.Errorf("resized update item ids = %v, want [3 4 5]", ids)
		}
	})

	t.Run("update by id refuses code change", func(t *testing.T) {
		s, _ := newTestStore(t)
		if _, err := s.Rooms.Save(&entity.Room{Code: "101", Items: []entity.Item{item("a", "", 1, "1")}}); err != nil {
			t.Fatal(err)
		}
		_, err := s.Rooms.Update(jsonldb.ByID(1), &entity.Room{Code: "102", Items: []entity.Item{item("a", "", 1, "1")}})
		if !errors.Is(err, ErrInvalid) {
			t.Errorf("Update() error = %v, want ErrInvalid", err)
		}
		got, err := s.Rooms.Update(jsonldb.ByID(1), &entity.Room{Code: "101", Items: []entity.Item{item("z", "", 1, "1")}})
		if err != nil || got == nil || got.Items[0].Code != "z" {
			t.Errorf("Update() with unchanged code = %+v, %v", got, err)
		}
	})

	t.Run("update not found", func(t *testing.T) {
		s, _ := newTestStore(t)
		got, err := s.Rooms.Update(jsonldb.ByCode("nope"), &entity.Room{Items: []entity.Item{item("a", "", 1, "1")}})
		if err != nil || got != nil {
			t.Errorf("Update() = %+v, %v; want nil, nil", got, err)
		}
		if _, err := s.Rooms.Update(jsonldb.ByID(1), &entity.Room{}); !errors.Is(err, ErrInvalid) {
			t.Errorf("Update() with no items error = %v, want ErrInvalid", err)
		}
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		s, _ := newTestStore(t)
		for _, code := range []string{"A", "B"} {
			if _, err := s.Rooms.Save(&entity.Room{Code: code, Items: []entity.Item{item("i", "", 1, "1")}}); err != nil {
				t.Fatal(err)
			}
		}
		first, err := s.Rooms.Delete(jsonldb.ByCode("a"))
		if err != nil || first == nil {
			t.Fatalf("Delete() = %+v, %v", first, err)
		}
		before := lineCount(t, s.Path())
		second, err := s.Rooms.Delete(jsonldb.ByCode("a"))
		if err != nil || second != nil {
			t.Errorf("second Delete() = %+v, %v; want nil, nil", second, err)
		}
		if after := lineCount(t, s.Path()); after != before || after != 1 {
			t.Errorf("line count %d -> %d, want 1", before, after)
		}
	})
}
