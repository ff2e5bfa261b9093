package render

import "errors"

var (
	ErrMissingTexture = errors.New("sprite texture_id is required")
	ErrInvalidColor   = errors.New("invalid color")
)
