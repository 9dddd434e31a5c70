// Serves the JSON Schema of the API types.

package handlers

import (
	"context"
	"reflect"
	"sync"

	"github.com/inventorysystem/inventory/internal/server/dto"
	"github.com/invopop/jsonschema"
)

// SchemaHandler serves the JSON Schema of the room, item and user types.
type SchemaHandler struct {
	once    sync.Once
	schemas map[string]*jsonschema.Schema
}

// NewSchemaHandler creates a new schema handler.
func NewSchemaHandler() *SchemaHandler {
	return &SchemaHandler{}
}

// Schema returns the schemas, reflected once.
func (h *SchemaHandler) Schema(ctx context.Context, req *dto.SchemaRequest) (*dto.SchemaResponse, error) {
	h.once.Do(func() {
		r := jsonschema.Reflector{Anonymous: true, DoNotReference: true}
		h.schemas = map[string]*jsonschema.Schema{}
		for _, t := range []reflect.Type{
			reflect.TypeFor[dto.Room](),
			reflect.TypeFor[dto.Item](),
			reflect.TypeFor[dto.User](),
		} {
			h.schemas[t.Name()] = r.ReflectFromType(t)
		}
	})
	return &dto.SchemaResponse{Schemas: h.schemas}, nil
}
