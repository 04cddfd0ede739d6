package internalerr

import "errors"

// Sentinel errors for common cases
var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrInvalidOptions   = errors.New("invalid options")
	ErrStoreUnavailable = errors.New("store unavailable")
	ErrAnalysisFailed   = errors.New("analysis failed")
)
