package field

import "errors"

var (
	// ErrInvalidHost indicates a mount target that cannot hold a surface.
	ErrInvalidHost = errors.New("field: invalid host")

	// ErrInvalidConfig indicates a field configuration that cannot be drawn.
	ErrInvalidConfig = errors.New("field: invalid config")
)
