// Maps storage errors to API errors.

package handlers

import (
	"errors"

	"github.com/inventorysystem/inventory/internal/server/dto"
	"github.com/inventorysystem/inventory/internal/storage"
)

// storageErr classifies an error returned by the storage layer. Invalid
// arguments are the caller's fault; everything else is a storage fault.
func storageErr(err error) error {
	if errors.Is(err, storage.ErrInvalid) {
		return dto.BadRequest("invalid request").Wrap(err)
	}
	return dto.Storage(err)
}
