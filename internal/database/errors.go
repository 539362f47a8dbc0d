package database

import "errors"

// ErrNotFound is returned when a referenced row does not exist
var ErrNotFound = errors.New("database: not found")
