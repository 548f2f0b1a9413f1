package feeders

import "errors"

var (
	// ErrInvalidStructure indicates the target passed to Feed is not a
	// pointer to a struct
	ErrInvalidStructure = errors.New("feeders: target must be a pointer to a struct")

	// ErrFieldNotSettable indicates a tagged struct field cannot be set
	ErrFieldNotSettable = errors.New("feeders: field cannot be set")
)
