package physics

import "errors"

var (
	ErrInvalidUVec2 = errors.New("invalid unsigned vector")
	ErrInvalidVec2  = errors.New("invalid vector")
)
