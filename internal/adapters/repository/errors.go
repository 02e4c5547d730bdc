package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrNotFound  = errors.New("record not found")
	ErrNotOpen   = errors.New("store is not open")
	ErrEmptyKey  = errors.New("empty record key")
	ErrCorrupted = errors.New("corrupted record payload")
)
