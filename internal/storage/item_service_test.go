package storage

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/inventorysystem/inventory/internal/jsonldb"
	"github.com/inventorysystem/inventory/internal/storage/entity"
)

func seedRoom(t *testing.T, s *Store, code string, items ...entity.Item) int64 {
	t.Helper()
	id, err := s.Rooms.Save(&entity.Room{Code: code, Items: items})
	if err != nil {
		t.Fatalf("Save(%q) failed: %v", code, err)
	}
	return id
}

func TestItemService(t *testing.T) {
	today := entity.Date{Year: 2024, Month: time.May, Day: 17}

	t.Run("double upsert", func(t *testing.T) {
		s, dir := newTestStore(t)
		seedRoom(t, s, "101", item("INV-1", "Desk", 1, "100.00"))

		chair := item("INV-2", "Chair", 4, "50.00")
		first, err := s.Items.Upsert(jsonldb.ByCode("101"), &chair)
		if err != nil {
			t.Fatalf("Upsert failed: %v", err)
		}
		if first == nil || len(first.Items) != 2 {
			t.Fatalf("Upsert() = %+v, want 2 items", first)
		}
		firstID := first.Items[1].ID

		s.Items.now = func() time.Time { return testNow.AddDate(0, 0, 1) }
		second, err := s.Items.Upsert(jsonldb.ByCode("101"), &chair)
		if err != nil {
			t.Fatalf("second Upsert failed: %v", err)
		}
		n := 0
		for _, it := range second.Items {
			if it.Code == "INV-2" {
				n++
				if it.ID != firstID {
					t.Errorf("id = %d, want %d", it.ID, firstID)
				}
				if want := (entity.Date{Year: 2024, Month: time.May, Day: 18}); it.ModificationDate != want {
					t.Errorf("modification date = %v, want %v", it.ModificationDate, want)
				}
			}
		}
		if n != 1 {
			t.Errorf("room holds %d INV-2 items, want 1", n)
		}
		if second.Items[0].Code != "INV-1" || second.Items[0].ID != 1 {
			t.Errorf("untouched item changed: %+v", second.Items[0])
		}
		if chair.ID != 0 || !chair.ModificationDate.IsZero() {
			t.Errorf("Upsert modified its argument: %+v", chair)
		}
		noBackup(t, dir)
	})

	t.Run("upsert in place", func(t *testing.T) {
		s, _ := newTestStore(t)
		seedRoom(t, s, "101", item("a", "A", 1, "1"), item("b", "B", 1, "1"), item("c", "C", 1, "1"))
		b := item("b", "B", 1, "1.0")
		room, err := s.Items.Upsert(jsonldb.ByID(1), &b)
		if err != nil {
			t.Fatal(err)
		}
		if len(room.Items) != 3 || room.Items[1].ID != 2 || room.Items[1].ModificationDate != today {
			t.Errorf("Upsert() = %+v, want b replaced in place", room.Items)
		}
	})

	t.Run("upsert appends on any difference", func(t *testing.T) {
		s, _ := newTestStore(t)
		seedRoom(t, s, "101", item("a", "A", 1, "1"))
		other := item("a", "A", 2, "1")
		room, err := s.Items.Upsert(jsonldb.ByCode("101"), &other)
		if err != nil {
			t.Fatal(err)
		}
		if len(room.Items) != 2 || room.Items[0].ID != 1 || room.Items[1].ID != 2 {
			t.Errorf("items = %+v, want original kept and new id 2 appended", room.Items)
		}
	})

	t.Run("upsert unknown room", func(t *testing.T) {
		s, _ := newTestStore(t)
		it := item("a", "", 1, "1")
		room, err := s.Items.Upsert(jsonldb.ByCode("nope"), &it)
		if err != nil || room != nil {
			t.Errorf("Upsert() = %+v, %v; want nil, nil", room, err)
		}
		if _, err := s.Items.Upsert(jsonldb.ByCode("nope"), nil); !errors.Is(err, ErrInvalid) {
			t.Errorf("Upsert(nil) error = %v, want ErrInvalid", err)
		}
	})

	t.Run("all get list", func(t *testing.T) {
		s, _ := newTestStore(t)
		seedRoom(t, s, "101", item("a", "", 1, "1"), item("b", "", 1, "1"))
		seedRoom(t, s, "102", item("c", "", 1, "1"))

		all, err := s.Items.All()
		if err != nil {
			t.Fatal(err)
		}
		if len(all) != 3 || all[0].Code != "a" || all[2].Code != "c" {
			t.Errorf("All() = %+v", all)
		}

		got, err := s.Items.Get(jsonldb.ByCode("C"))
		if err != nil || got == nil || got.ID != 3 {
			t.Errorf("Get(code C) = %+v, %v", got, err)
		}
		got, err = s.Items.Get(jsonldb.ByID(2))
		if err != nil || got == nil || got.Code != "b" {
			t.Errorf("Get(id 2) = %+v, %v", got, err)
		}
		got, err = s.Items.Get(jsonldb.ByID(9))
		if err != nil || got != nil {
			t.Errorf("Get(id 9) = %+v, %v; want nil, nil", got, err)
		}

		list, err := s.Items.ListByRoom(jsonldb.ByCode("102"))
		if err != nil || len(list) != 1 || list[0].Code != "c" {
			t.Errorf("ListByRoom(102) = %+v, %v", list, err)
		}
		list, err = s.Items.ListByRoom(jsonldb.ByID(42))
		if err != nil || list != nil {
			t.Errorf("ListByRoom(42) = %+v, %v; want nil, nil", list, err)
		}
	})

	t.Run("empty store", func(t *testing.T) {
		s, _ := newTestStore(t)
		all, err := s.Items.All()
		if err != nil || all == nil || len(all) != 0 {
			t.Errorf("All() = %#v, %v; want empty", all, err)
		}
	})

	t.Run("delete", func(t *testing.T) {
		s, _ := newTestStore(t)
		seedRoom(t, s, "101", item("a", "", 1, "1"), item("b", "", 1, "1"), item("c", "", 1, "1"))

		removed, err := s.Items.Delete(jsonldb.ByCode("b"))
		if err != nil || removed == nil || removed.ID != 2 {
			t.Fatalf("Delete() = %+v, %v", removed, err)
		}
		again, err := s.Items.Delete(jsonldb.ByCode("b"))
		if err != nil || again != nil {
			t.Errorf("second Delete() = %+v, %v; want nil, nil", again, err)
		}
		room, err := s.Rooms.Get(jsonldb.ByID(1))
		if err != nil {
			t.Fatal(err)
		}
		if len(room.Items) != 2 || room.Items[0].Code != "a" || room.Items[1].Code != "c" {
			t.Errorf("items = %+v, want [a c]", room.Items)
		}
		if room.Items[1].ID != 3 {
			t.Errorf("remaining item id changed: %+v", room.Items[1])
		}
	})

	t.Run("update", func(t *testing.T) {
		s, _ := newTestStore(t)
		seedRoom(t, s, "101", item("a", "", 1, "1"))
		seedRoom(t, s, "102", item("b", "", 1, "1"), item("c", "", 1, "1"))

		repl := item("b2", "Lamp", 3, "9.99")
		got, err := s.Items.Update(jsonldb.ByCode("b"), &repl)
		if err != nil {
			t.Fatalf("Update failed: %v", err)
		}
		if got == nil || got.ID != 2 || got.Code != "b2" || got.ModificationDate != today {
			t.Fatalf("Update() = %+v", got)
		}
		room, err := s.Rooms.Get(jsonldb.ByCode("102"))
		if err != nil {
			t.Fatal(err)
		}
		if room.Items[0].Code != "b2" || room.Items[1].Code != "c" {
			t.Errorf("items = %+v, want [b2 c]", room.Items)
		}

		got, err = s.Items.Update(jsonldb.ByCode("zzz"), &repl)
		if err != nil || got != nil {
			t.Errorf("Update(unknown) = %+v, %v; want nil, nil", got, err)
		}
		if _, err := s.Items.Update(jsonldb.ByID(1), &entity.Item{}); !errors.Is(err, ErrInvalid) {
			t.Errorf("Update(blank) error = %v, want ErrInvalid", err)
		}
	})

	t.Run("concurrent upserts", func(t *testing.T) {
		s, _ := newTestStore(t)
		seedRoom(t, s, "101", item("seed", "", 1, "1"))
		const n = 20
		var wg sync.WaitGroup
		for i := range n {
			wg.Go(func() {
				it := item("c", "", i+1, "1")
				if _, err := s.Items.Upsert(jsonldb.ByCode("101"), &it); err != nil {
					t.Errorf("Upsert failed: %v", err)
				}
			})
		}
		wg.Wait()
		items, err := s.Items.ListByRoom(jsonldb.ByCode("101"))
		if err != nil {
			t.Fatal(err)
		}
		if len(items) != n+1 {
			t.Fatalf("room holds %d items, want %d", len(items), n+1)
		}
		seen := map[int64]bool{}
		for _, it := range items {
			if seen[it.ID] {
				t.Errorf("duplicate item id %d", it.ID)
			}
			seen[it.ID] = true
		}
	})
}
