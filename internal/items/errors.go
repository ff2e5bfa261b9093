package items

import "errors"

// ErrMalformedDefinition is returned when an item record cannot be turned into
// ItemParams. No partial definition accompanies it.
var ErrMalformedDefinition = errors.New("items: malformed definition")
