package store

import "errors"

// ErrNotFound is returned when a record does not exist or the requesting user
// is not allowed to see it. Callers must not be able to tell the two apart.
var ErrNotFound = errors.New("not found")
