package scene

import "errors"

// Sentinel errors for scene operations. Check with errors.Is.
var (
	// ErrNotFound is returned when no object carries the requested name.
	ErrNotFound = errors.New("scene: object not found")

	// ErrInvalidType is returned for a light type outside POINT, SUN, SPOT, AREA.
	ErrInvalidType = errors.New("scene: invalid light type")

	// ErrEmptyName is returned when a create or rename target is blank.
	ErrEmptyName = errors.New("scene: name cannot be empty")

	// ErrInvalidValue is returned when a data update rejects a value.
	ErrInvalidValue = errors.New("scene: invalid value")
)
