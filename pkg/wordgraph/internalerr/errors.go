// Package internalerr holds the sentinel errors shared by the wordgraph packages.
package internalerr

import "errors"

// Sentinel errors for common cases
var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrInvalidConfig    = errors.New("invalid configuration")
	ErrStoreUnavailable = errors.New("store unavailable")
	ErrNoPath           = errors.New("no path to end marker")
)
