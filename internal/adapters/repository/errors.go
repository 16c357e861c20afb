package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrNotFound = errors.New("file not found")
	ErrRead     = errors.New("file read failed")
)
