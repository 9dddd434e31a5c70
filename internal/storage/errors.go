package storage

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalid is returned when an argument is rejected before any I/O.
	ErrInvalid = errors.New("invalid argument")

	errNilRoom    = fmt.Errorf("%w: room is required", ErrInvalid)
	errNilItem    = fmt.Errorf("%w: item is required", ErrInvalid)
	errNoItems    = fmt.Errorf("%w: room must have at least one item", ErrInvalid)
	errZeroKey    = fmt.Errorf("%w: id or code is required", ErrInvalid)
	errCodeChange = fmt.Errorf("%w: room code can't be changed", ErrInvalid)
)

func invalid(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalid, err)
}
