package catalog

import "errors"

var (
	ErrDuplicateID       = errors.New("catalog: duplicate item id")
	ErrUnsupportedFormat = errors.New("catalog: unsupported file format")
	ErrMalformedFile     = errors.New("catalog: malformed file")
)
