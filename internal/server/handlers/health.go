package handlers

import (
	"context"

	"github.com/inventorysystem/inventory/internal/server/dto"
	"github.com/inventorysystem/inventory/internal/storage"
)

// BuildInfo describes the running binary.
type BuildInfo struct {
	Version   string
	GoVersion string
	Revision  string
	Dirty     bool
}

// HealthHandler handles health check requests.
type HealthHandler struct {
	store *storage.Store
	build BuildInfo
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(store *storage.Store, build BuildInfo) *HealthHandler {
	return &HealthHandler{store: store, build: build}
}

// Health reports the build and the next ids the store will assign. It fails
// when the id counter files cannot be read.
func (h *HealthHandler) Health(ctx context.Context, req *dto.HealthRequest) (*dto.HealthResponse, error) {
	room, item, err := h.store.NextIDs()
	if err != nil {
		return nil, dto.Storage(err)
	}
	return &dto.HealthResponse{
		Status:     "ok",
		Version:    h.build.Version,
		GoVersion:  h.build.GoVersion,
		Revision:   h.build.Revision,
		Dirty:      h.build.Dirty,
		NextRoomID: room,
		NextItemID: item,
	}, nil
}
