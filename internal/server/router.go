// Package server implements the HTTP server and routing logic.
package server

import (
	"net/http"

	"github.com/inventorysystem/inventory/internal/server/handlers"
	"github.com/inventorysystem/inventory/internal/server/ratelimit"
	"github.com/inventorysystem/inventory/internal/storage"
	"github.com/prometheus/client_golang/prometheus"
)

// Config holds the server configuration.
type Config struct {
	storage.Config
	handlers.BuildInfo

	// Registry receives the server metrics. A new registry is created when nil.
	Registry *prometheus.Registry
}

// NewRouter creates and configures the HTTP router.
//
// limiters may be nil to disable rate limiting. The caller owns limiters and
// closes them.
func NewRouter(store *storage.Store, cfg *Config, limiters *ratelimit.Config) http.Handler {
	reg := cfg.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	m := newMetrics(reg)
	mux := &http.ServeMux{}

	hh := handlers.NewHealthHandler(store, cfg.BuildInfo)
	sh := handlers.NewSchemaHandler()
	rh := handlers.NewRoomHandler(store)
	ih := handlers.NewItemHandler(store)

	mux.Handle("GET /api/health", Wrap(hh.Health, cfg, limiters))
	mux.Handle("GET /api/v1/schema", Wrap(sh.Schema, cfg, limiters))
	mux.Handle("GET /metrics", m.handler)

	// Rooms
	mux.Handle("GET /api/v1/rooms", Wrap(rh.ListRooms, cfg, limiters))
	mux.Handle("POST /api/v1/rooms", Wrap(rh.CreateRoom, cfg, limiters))
	for _, by := range []string{"id/{id}", "code/{code}"} {
		mux.Handle("GET /api/v1/rooms/"+by, Wrap(rh.GetRoom, cfg, limiters))
		mux.Handle("PUT /api/v1/rooms/"+by, Wrap(rh.UpdateRoom, cfg, limiters))
		mux.Handle("DELETE /api/v1/rooms/"+by, Wrap(rh.DeleteRoom, cfg, limiters))
		mux.Handle("GET /api/v1/rooms/"+by+"/items", Wrap(rh.ListRoomItems, cfg, limiters))
		mux.Handle("PUT /api/v1/rooms/"+by+"/items", Wrap(rh.UpsertItem, cfg, limiters))
	}

	// Items
	mux.Handle("GET /api/v1/items", Wrap(ih.ListItems, cfg, limiters))
	for _, by := range []string{"id/{id}", "code/{code}"} {
		mux.Handle("GET /api/v1/items/"+by, Wrap(ih.GetItem, cfg, limiters))
		mux.Handle("PUT /api/v1/items/"+by, Wrap(ih.UpdateItem, cfg, limiters))
		mux.Handle("DELETE /api/v1/items/"+by, Wrap(ih.DeleteItem, cfg, limiters))
	}

	return instrument(mux, m)
}
