// Parses room seed manifests and imports them into an empty store.

package storage

import (
	"errors"
	"fmt"
	"os"

	"github.com/inventorysystem/inventory/internal/storage/entity"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// SeedManifest defines the structure of a seed file.
type SeedManifest struct {
	Version int        `yaml:"version"`
	Rooms   []SeedRoom `yaml:"rooms"`
}

// SeedRoom is a room of a seed manifest.
type SeedRoom struct {
	Code  string     `yaml:"code"`
	Items []SeedItem `yaml:"items"`
}

// SeedItem is an item of a seed manifest. Dates are "YYYY-MM-DD" and the
// price is a decimal number.
type SeedItem struct {
	Code           string    `yaml:"code"`
	Description    string    `yaml:"description"`
	IncomingDate   string    `yaml:"incoming_date,omitempty"`
	OutgoingDate   string    `yaml:"outgoing_date,omitempty"`
	Quantity       int       `yaml:"quantity"`
	Price          string    `yaml:"price"`
	DocumentNumber string    `yaml:"document_number,omitempty"`
	User           *SeedUser `yaml:"user,omitempty"`
}

// SeedUser is the user attribution of a seed item.
type SeedUser struct {
	ID           int64  `yaml:"id,omitempty"`
	Name         string `yaml:"name"`
	Surname      string `yaml:"surname"`
	IsAuthorized bool   `yaml:"authorized"`
}

// ParseSeed reads and parses a seed manifest from a file.
// The path is provided by the CLI user, so file inclusion is expected.
func ParseSeed(path string) ([]*entity.Room, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-specified seed path
	if err != nil {
		return nil, fmt.Errorf("failed to read seed: %w", err)
	}
	return ParseSeedBytes(data)
}

// ParseSeedBytes parses a seed manifest from bytes.
func ParseSeedBytes(data []byte) ([]*entity.Room, error) {
	var m SeedManifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse seed: %w", err)
	}
	if m.Version != 1 {
		return nil, fmt.Errorf("unsupported seed version %d", m.Version)
	}
	rooms := make([]*entity.Room, 0, len(m.Rooms))
	for i := range m.Rooms {
		r, err := m.Rooms[i].toEntity()
		if err != nil {
			return nil, fmt.Errorf("invalid seed room %d: %w", i, err)
		}
		rooms = append(rooms, r)
	}
	return rooms, nil
}

func (sr *SeedRoom) toEntity() (*entity.Room, error) {
	r := &entity.Room{Code: sr.Code, Items: make([]entity.Item, 0, len(sr.Items))}
	for i := range sr.Items {
		it, err := sr.Items[i].toEntity()
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		r.Items = append(r.Items, it)
	}
	if len(r.Items) == 0 {
		return nil, errors.New("room must have at least one item")
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

func (si *SeedItem) toEntity() (entity.Item, error) {
	it := entity.Item{
		Code:           si.Code,
		Description:    si.Description,
		Quantity:       si.Quantity,
		DocumentNumber: si.DocumentNumber,
	}
	var err error
	if si.IncomingDate != "" {
		if it.IncomingDate, err = entity.ParseDate(si.IncomingDate); err != nil {
			return it, err
		}
	}
	if si.OutgoingDate != "" {
		if it.OutgoingDate, err = entity.ParseDate(si.OutgoingDate); err != nil {
			return it, err
		}
	}
	if si.Price != "" {
		if it.Price, err = decimal.NewFromString(si.Price); err != nil {
			return it, fmt.Errorf("invalid price %q: %w", si.Price, err)
		}
	}
	if si.User != nil {
		it.User = &entity.User{
			ID:           si.User.ID,
			Name:         si.User.Name,
			Surname:      si.User.Surname,
			IsAuthorized: si.User.IsAuthorized,
		}
	}
	return it, nil
}

// Seed saves rooms when the store holds no room yet and returns the number
// of rooms saved. A non-empty store is left untouched.
func (s *Store) Seed(rooms []*entity.Room) (int, error) {
	existing, err := s.Rooms.All()
	if err != nil {
		return 0, err
	}
	if len(existing) != 0 {
		return 0, nil
	}
	for i, r := range rooms {
		if _, err := s.Rooms.Save(r); err != nil {
			return i, fmt.Errorf("failed to seed room %q: %w", r.Code, err)
		}
	}
	return len(rooms), nil
}
