package store

import "errors"

// ErrFieldIDRequired is returned when writing without a field identifier.
var ErrFieldIDRequired = errors.New("store: field id is required")
