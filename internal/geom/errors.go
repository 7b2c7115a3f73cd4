package geom

import "errors"

// ErrInvalidRange indicates malformed sampling bounds (NaN/Inf, or lo >= hi).
var ErrInvalidRange = errors.New("geom: invalid range")
