// Defines the API representation of rooms, items and users.

package dto

import (
	"strings"
	"time"
)

// Room is the API representation of a room.
type Room struct {
	ID    int64  `json:"id" jsonschema:"description=Room ID assigned by the store,example=1"`
	Code  string `json:"code" jsonschema:"description=Room number,example=112"`
	Items []Item `json:"items" jsonschema:"description=Items assigned to the room"`
}

// Item is the API representation of an item.
type Item struct {
	ID               int64  `json:"id,omitempty" jsonschema:"description=Item ID assigned by the store"`
	Code             string `json:"code" jsonschema:"description=Inventory number,example=INV-1"`
	Description      string `json:"description" jsonschema:"description=Free text description,example=Desk"`
	IncomingDate     string `json:"incomingDate,omitempty" jsonschema:"description=Acquisition date,format=date"`
	OutgoingDate     string `json:"outgoingDate,omitempty" jsonschema:"description=Disposal date,format=date"`
	ModificationDate string `json:"modificationDate,omitempty" jsonschema:"description=Date of the last modification; set by the store,format=date"`
	Quantity         int    `json:"quantity" jsonschema:"description=Number of units,minimum=0,example=1"`
	Price            string `json:"price" jsonschema:"description=Unit price as a decimal number,example=100.00"`
	DocumentNumber   string `json:"documentNumber,omitempty" jsonschema:"description=Reference of the acquisition document"`
	User             *User  `json:"user,omitempty" jsonschema:"description=Person the item is attributed to"`
}

// Validate checks the fields that can be checked without the entity model.
func (i *Item) Validate() error {
	if strings.TrimSpace(i.Code) == "" {
		return MissingField("code")
	}
	if i.Quantity < 0 {
		return InvalidField("quantity", "must be non-negative")
	}
	for name, v := range map[string]string{"incomingDate": i.IncomingDate, "outgoingDate": i.OutgoingDate} {
		if v == "" {
			continue
		}
		if _, err := time.Parse(time.DateOnly, v); err != nil {
			return InvalidField(name, "want YYYY-MM-DD")
		}
	}
	if i.User != nil {
		if strings.TrimSpace(i.User.Name) == "" {
			return MissingField("user.name")
		}
		if strings.TrimSpace(i.User.Surname) == "" {
			return MissingField("user.surname")
		}
	}
	return nil
}

// User is the API representation of the person an item is attributed to.
type User struct {
	ID           int64  `json:"id,omitempty" jsonschema:"description=User ID; defined manually"`
	Name         string `json:"name" jsonschema:"description=First name,example=John"`
	Surname      string `json:"surname" jsonschema:"description=Last name,example=Smith"`
	IsAuthorized bool   `json:"isAuthorized" jsonschema:"description=Whether the user may make changes"`
}
