// Defines API response types.

package dto

import "github.com/invopop/jsonschema"

// HealthResponse is a response containing system health status.
type HealthResponse struct {
	Status     string `json:"status"`
	Version    string `json:"version"`
	GoVersion  string `json:"go_version"`
	Revision   string `json:"revision"`
	Dirty      bool   `json:"dirty"`
	NextRoomID int64  `json:"next_room_id"`
	NextItemID int64  `json:"next_item_id"`
}

// SchemaResponse holds the JSON Schema of each API type, by type name.
type SchemaResponse struct {
	Schemas map[string]*jsonschema.Schema `json:"schemas"`
}

// CreateRoomResponse is the response to a room creation.
type CreateRoomResponse struct {
	ID int64 `json:"id"`
}

// ListRoomsResponse is a response containing rooms in storage order.
type ListRoomsResponse struct {
	Rooms []Room `json:"rooms"`
}

// ListItemsResponse is a response containing items in storage order.
type ListItemsResponse struct {
	Items []Item `json:"items"`
}
