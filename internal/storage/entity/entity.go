// Package entity defines the domain models persisted by the storage package.
//
// A Room is stored as one JSONL line and embeds its Items; Items never exist
// outside a Room. Both implement jsonldb.Row through pointer receivers.
package entity

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	errCodeRequired     = errors.New("code is required")
	errNegativeQuantity = errors.New("quantity must be non-negative")
	errNegativePrice    = errors.New("price must be non-negative")
	errUserNameRequired = errors.New("user name and surname are required")
)

// Room is a room of the building owning an ordered list of items.
type Room struct {
	ID    int64  `json:"id"`
	Code  string `json:"code"`
	Items []Item `json:"items"`
}

// Clone returns a deep copy of the Room.
func (r *Room) Clone() *Room {
	c := *r
	if r.Items != nil {
		c.Items = make([]Item, len(r.Items))
		for i := range r.Items {
			c.Items[i] = *r.Items[i].Clone()
		}
	}
	return &c
}

// GetID returns the Room's ID.
func (r *Room) GetID() int64 {
	return r.ID
}

// SetID sets the Room's ID.
func (r *Room) SetID(id int64) {
	r.ID = id
}

// GetKey returns the room number.
func (r *Room) GetKey() string {
	return r.Code
}

// SetKey sets the room number.
func (r *Room) SetKey(code string) {
	r.Code = code
}

// Validate checks that the Room and its items are well-formed.
func (r *Room) Validate() error {
	if strings.TrimSpace(r.Code) == "" {
		return errCodeRequired
	}
	for i := range r.Items {
		if err := r.Items[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Item is a furnishing item assigned to a room.
type Item struct {
	ID               int64           `json:"id"`
	Code             string          `json:"code"`
	Description      string          `json:"description"`
	IncomingDate     Date            `json:"incomingDate,omitzero"`
	OutgoingDate     Date            `json:"outgoingDate,omitzero"`
	ModificationDate Date            `json:"modificationDate,omitzero"`
	Quantity         int             `json:"quantity"`
	Price            decimal.Decimal `json:"price"`
	DocumentNumber   string          `json:"documentNumber,omitempty"`
	User             *User           `json:"user,omitempty"`
}

// Clone returns a deep copy of the Item.
func (i *Item) Clone() *Item {
	c := *i
	if i.User != nil {
		u := *i.User
		c.User = &u
	}
	return &c
}

// Validate checks that the Item is well-formed.
func (i *Item) Validate() error {
	if strings.TrimSpace(i.Code) == "" {
		return errCodeRequired
	}
	if i.Quantity < 0 {
		return errNegativeQuantity
	}
	if i.Price.IsNegative() {
		return errNegativePrice
	}
	if i.User != nil {
		return i.User.Validate()
	}
	return nil
}

// User is the person an item is attributed to.
type User struct {
	ID           int64  `json:"id,omitempty"`
	Name         string `json:"name"`
	Surname      string `json:"surname"`
	IsAuthorized bool   `json:"isAuthorized"`
}

// Validate checks that the User is well-formed.
func (u *User) Validate() error {
	if strings.TrimSpace(u.Name) == "" || strings.TrimSpace(u.Surname) == "" {
		return errUserNameRequired
	}
	return nil
}

// SameContent reports whether a and b carry the same descriptive fields.
//
// ID and ModificationDate are not compared: two items with the same content
// are the same item for upserts regardless of when or under which id they
// were stored. Prices compare numerically. The attributed user compares on
// all of its fields.
func SameContent(a, b *Item) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Code == b.Code &&
		a.Description == b.Description &&
		a.IncomingDate == b.IncomingDate &&
		a.OutgoingDate == b.OutgoingDate &&
		a.Quantity == b.Quantity &&
		a.Price.Equal(b.Price) &&
		a.DocumentNumber == b.DocumentNumber &&
		sameUser(a.User, b.User)
}

func sameUser(a, b *User) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
