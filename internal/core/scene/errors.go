package scene

import "errors"

// ErrInvalidHandle is returned when a handle is stale, removed or refers to a
// node of a different kind than requested.
var ErrInvalidHandle = errors.New("scene: invalid handle")
