// Handles store-wide item requests.

package handlers

import (
	"context"

	"github.com/inventorysystem/inventory/internal/server/dto"
	"github.com/inventorysystem/inventory/internal/storage"
)

// ItemHandler handles item requests that are not scoped to a room.
type ItemHandler struct {
	items *storage.ItemService
}

// NewItemHandler creates a new item handler.
func NewItemHandler(store *storage.Store) *ItemHandler {
	return &ItemHandler{items: store.Items}
}

// ListItems returns every item of every room.
func (h *ItemHandler) ListItems(ctx context.Context, req *dto.ListItemsRequest) (*dto.ListItemsResponse, error) {
	items, err := h.items.All()
	if err != nil {
		return nil, storageErr(err)
	}
	return &dto.ListItemsResponse{Items: itemsToDTO(items)}, nil
}

// GetItem returns one item.
func (h *ItemHandler) GetItem(ctx context.Context, req *dto.GetItemRequest) (*dto.Item, error) {
	it, err := h.items.Get(keyOf(&req.Ref))
	if err != nil {
		return nil, storageErr(err)
	}
	if it == nil {
		return nil, dto.NotFound("item")
	}
	return itemToDTO(it), nil
}

// UpdateItem replaces one item in place.
func (h *ItemHandler) UpdateItem(ctx context.Context, req *dto.UpdateItemRequest) (*dto.Item, error) {
	repl, err := itemFromDTO(&req.Item)
	if err != nil {
		return nil, err
	}
	it, err := h.items.Update(keyOf(&req.Ref), repl)
	if err != nil {
		return nil, storageErr(err)
	}
	if it == nil {
		return nil, dto.NotFound("item")
	}
	return itemToDTO(it), nil
}

// DeleteItem removes one item and returns it.
func (h *ItemHandler) DeleteItem(ctx context.Context, req *dto.DeleteItemRequest) (*dto.Item, error) {
	it, err := h.items.Delete(keyOf(&req.Ref))
	if err != nil {
		return nil, storageErr(err)
	}
	if it == nil {
		return nil, dto.NotFound("item")
	}
	return itemToDTO(it), nil
}
