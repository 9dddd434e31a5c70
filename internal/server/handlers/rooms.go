// Handles room requests.

package handlers

import (
	"context"

	"github.com/inventorysystem/inventory/internal/server/dto"
	"github.com/inventorysystem/inventory/internal/storage"
	"github.com/inventorysystem/inventory/internal/storage/entity"
)

// RoomHandler handles room requests.
type RoomHandler struct {
	rooms *storage.RoomService
	items *storage.ItemService
}

// NewRoomHandler creates a new room handler.
func NewRoomHandler(store *storage.Store) *RoomHandler {
	return &RoomHandler{rooms: store.Rooms, items: store.Items}
}

// ListRooms returns every room in storage order.
func (h *RoomHandler) ListRooms(ctx context.Context, req *dto.ListRoomsRequest) (*dto.ListRoomsResponse, error) {
	rooms, err := h.rooms.All()
	if err != nil {
		return nil, storageErr(err)
	}
	out := make([]dto.Room, len(rooms))
	for i, r := range rooms {
		out[i] = *roomToDTO(r)
	}
	return &dto.ListRoomsResponse{Rooms: out}, nil
}

// CreateRoom stores a new room and returns its id.
func (h *RoomHandler) CreateRoom(ctx context.Context, req *dto.CreateRoomRequest) (*dto.CreateRoomResponse, error) {
	items, err := itemsFromDTO(req.Items)
	if err != nil {
		return nil, err
	}
	id, err := h.rooms.Save(&entity.Room{Code: req.Code, Items: items})
	if err != nil {
		return nil, storageErr(err)
	}
	return &dto.CreateRoomResponse{ID: id}, nil
}

// GetRoom returns one room.
func (h *RoomHandler) GetRoom(ctx context.Context, req *dto.GetRoomRequest) (*dto.Room, error) {
	r, err := h.rooms.Get(keyOf(&req.Ref))
	if err != nil {
		return nil, storageErr(err)
	}
	if r == nil {
		return nil, dto.NotFound("room")
	}
	return roomToDTO(r), nil
}

// UpdateRoom replaces a room's items.
func (h *RoomHandler) UpdateRoom(ctx context.Context, req *dto.UpdateRoomRequest) (*dto.Room, error) {
	items, err := itemsFromDTO(req.Items)
	if err != nil {
		return nil, err
	}
	r, err := h.rooms.Update(keyOf(&req.Ref), &entity.Room{Code: req.Code, Items: items})
	if err != nil {
		return nil, storageErr(err)
	}
	if r == nil {
		return nil, dto.NotFound("room")
	}
	return roomToDTO(r), nil
}

// DeleteRoom removes a room and returns it.
func (h *RoomHandler) DeleteRoom(ctx context.Context, req *dto.DeleteRoomRequest) (*dto.Room, error) {
	r, err := h.rooms.Delete(keyOf(&req.Ref))
	if err != nil {
		return nil, storageErr(err)
	}
	if r == nil {
		return nil, dto.NotFound("room")
	}
	return roomToDTO(r), nil
}

// ListRoomItems returns the items of one room.
func (h *RoomHandler) ListRoomItems(ctx context.Context, req *dto.ListRoomItemsRequest) (*dto.ListItemsResponse, error) {
	items, err := h.items.ListByRoom(keyOf(&req.Ref))
	if err != nil {
		return nil, storageErr(err)
	}
	if items == nil {
		return nil, dto.NotFound("room")
	}
	return &dto.ListItemsResponse{Items: itemsToDTO(items)}, nil
}

// UpsertItem stores an item in a room: an existing item with the same
// content is refreshed in place, otherwise the item is appended.
func (h *RoomHandler) UpsertItem(ctx context.Context, req *dto.UpsertItemRequest) (*dto.Room, error) {
	it, err := itemFromDTO(&req.Item)
	if err != nil {
		return nil, err
	}
	r, err := h.items.Upsert(keyOf(&req.Ref), it)
	if err != nil {
		return nil, storageErr(err)
	}
	if r == nil {
		return nil, dto.NotFound("room")
	}
	return roomToDTO(r), nil
}
