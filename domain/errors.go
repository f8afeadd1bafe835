package domain

import "errors"

// ErrNoFields indicates an update request that supplied nothing to change.
var ErrNoFields = errors.New("no fields provided to update")

// ErrNotFound indicates that an id did not resolve to a stored todo where
// one was expected.
var ErrNotFound = errors.New("todo not found")
