package storage

import (
	"testing"
	"time"

	"github.com/inventorysystem/inventory/internal/jsonldb"
	"github.com/inventorysystem/inventory/internal/storage/entity"
)

const seedYAML = `
version: 1
rooms:
  - code: "101"
    items:
      - code: INV-1
        description: Desk
        incoming_date: 2023-09-01
        quantity: 1
        price: 100.00
      - code: INV-2
        description: Chair
        quantity: 4
        price: "50.5"
        document_number: F/1
        user:
          id: 1
          name: John
          surname: Smith
          authorized: true
  - code: Lab
    items:
      - code: INV-3
        description: Microscope
        quantity: 1
        price: 2500
`

func TestParseSeedBytes(t *testing.T) {
	rooms, err := ParseSeedBytes([]byte(seedYAML))
	if err != nil {
		t.Fatalf("ParseSeedBytes failed: %v", err)
	}
	if len(rooms) != 2 {
		t.Fatalf("got %d rooms, want 2", len(rooms))
	}
	r := rooms[0]
	if r.Code != "101" || len(r.Items) != 2 {
		t.Fatalf("rooms[0] = %+v", r)
	}
	if want := (entity.Date{Year: 2023, Month: time.September, Day: 1}); r.Items[0].IncomingDate != want {
		t.Errorf("incoming date = %v, want %v", r.Items[0].IncomingDate, want)
	}
	if r.Items[0].Price.String() != "100" {
		t.Errorf("price = %s, want 100", r.Items[0].Price)
	}
	if u := r.Items[1].User; u == nil || u.Name != "John" || !u.IsAuthorized {
		t.Errorf("user = %+v", u)
	}

	t.Run("invalid", func(t *testing.T) {
		tests := []struct {
			name string
			data string
		}{
			{"version", "version: 2\nrooms: []\n"},
			{"syntax", "version: [\n"},
			{"no items", "version: 1\nrooms:\n  - code: A\n"},
			{"bad date", "version: 1\nrooms:\n  - code: A\n    items:\n      - code: x\n        incoming_date: 01/02/2023\n"},
			{"bad price", "version: 1\nrooms:\n  - code: A\n    items:\n      - code: x\n        price: cheap\n"},
			{"blank room code", "version: 1\nrooms:\n  - items:\n      - code: x\n"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				if _, err := ParseSeedBytes([]byte(tt.data)); err == nil {
					t.Error("ParseSeedBytes succeeded, want error")
				}
			})
		}
	})
}

func TestStoreSeed(t *testing.T) {
	s, _ := newTestStore(t)
	rooms, err := ParseSeedBytes([]byte(seedYAML))
	if err != nil {
		t.Fatal(err)
	}
	n, err := s.Seed(rooms)
	if err != nil || n != 2 {
		t.Fatalf("Seed() = %d, %v; want 2", n, err)
	}
	got, err := s.Items.Get(jsonldb.ByCode("inv-3"))
	if err != nil || got == nil || got.ID != 3 {
		t.Errorf("Get(INV-3) = %+v, %v", got, err)
	}
	n, err = s.Seed(rooms)
	if err != nil || n != 0 {
		t.Errorf("second Seed() = %d, %v; want 0", n, err)
	}
	all, err := s.Rooms.All()
	if err != nil || len(all) != 2 {
		t.Errorf("All() = %d rooms, %v; want 2", len(all), err)
	}
}
