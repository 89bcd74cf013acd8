package types

import "errors"

// Domain specific errors for upstream lookups.
var (
	ErrNoResult      = errors.New("upstream returned no result")
	ErrNotConfigured = errors.New("upstream credential not configured")
	ErrBadStatus     = errors.New("upstream returned a non-success status")
	ErrEmptyInput    = errors.New("empty input")
)
