// Defines API request types and their validation.

package dto

import "strings"

// Ref addresses a room or an item from the URL path, either by id
// (".../id/{id}") or by code (".../code/{code}").
type Ref struct {
	ID   int64  `path:"id" json:"-"`
	Code string `path:"code" json:"-"`
}

// Validate checks that exactly one of ID and Code is set.
func (r *Ref) Validate() error {
	switch {
	case r.ID < 0:
		return InvalidField("id", "must be positive")
	case r.ID == 0 && strings.TrimSpace(r.Code) == "":
		return MissingField("id or code")
	case r.ID > 0 && r.Code != "":
		return BadRequest("address by id or by code, not both")
	}
	return nil
}

// HealthRequest is a request to check system health.
type HealthRequest struct{}

// Validate is a no-op for HealthRequest.
func (r *HealthRequest) Validate() error {
	return nil
}

// SchemaRequest is a request for the JSON Schema of the API types.
type SchemaRequest struct{}

// Validate is a no-op for SchemaRequest.
func (r *SchemaRequest) Validate() error {
	return nil
}

// ListRoomsRequest is a request to list all rooms.
type ListRoomsRequest struct{}

// Validate is a no-op for ListRoomsRequest.
func (r *ListRoomsRequest) Validate() error {
	return nil
}

// CreateRoomRequest is a request to create a room with its items.
type CreateRoomRequest struct {
	Code  string `json:"code"`
	Items []Item `json:"items"`
}

// Validate validates the create room request fields.
func (r *CreateRoomRequest) Validate() error {
	if strings.TrimSpace(r.Code) == "" {
		return MissingField("code")
	}
	return validateItems(r.Items)
}

// GetRoomRequest is a request to get a room.
type GetRoomRequest struct {
	Ref
}

// UpdateRoomRequest is a request to replace a room's items.
//
// Code may be omitted; when given it must match the stored code.
type UpdateRoomRequest struct {
	Ref
	Code  string `json:"code,omitempty"`
	Items []Item `json:"items"`
}

// Validate validates the update room request fields.
func (r *UpdateRoomRequest) Validate() error {
	if err := r.Ref.Validate(); err != nil {
		return err
	}
	return validateItems(r.Items)
}

// DeleteRoomRequest is a request to delete a room.
type DeleteRoomRequest struct {
	Ref
}

// ListRoomItemsRequest is a request to list the items of one room.
type ListRoomItemsRequest struct {
	Ref
}

// UpsertItemRequest is a request to store an item in a room. An item with
// the same content is replaced; otherwise the item is added.
type UpsertItemRequest struct {
	Ref
	Item
}

// Validate validates the upsert item request fields.
func (r *UpsertItemRequest) Validate() error {
	if err := r.Ref.Validate(); err != nil {
		return err
	}
	return r.Item.Validate()
}

// ListItemsRequest is a request to list all items.
type ListItemsRequest struct{}

// Validate is a no-op for ListItemsRequest.
func (r *ListItemsRequest) Validate() error {
	return nil
}

// GetItemRequest is a request to get an item.
type GetItemRequest struct {
	Ref
}

// UpdateItemRequest is a request to replace an item.
type UpdateItemRequest struct {
	Ref
	Item
}

// Validate validates the update item request fields.
func (r *UpdateItemRequest) Validate() error {
	if err := r.Ref.Validate(); err != nil {
		return err
	}
	return r.Item.Validate()
}

// DeleteItemRequest is a request to delete an item.
type DeleteItemRequest struct {
	Ref
}

func validateItems(items []Item) error {
	if len(items) == 0 {
		return MissingField("items")
	}
	for i := range items {
		if err := items[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}
