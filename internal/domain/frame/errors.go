package frame

import "errors"

// Sentinel error kinds for frame construction and column access.
var (
	ErrInvalidJSON   = errors.New("invalid json")
	ErrNotArray      = errors.New("json body is not an array")
	ErrNotObject     = errors.New("array element is not an object")
	ErrMissingColumn = errors.New("missing column")
	ErrNotNumeric    = errors.New("value is not numeric")
	ErrNotInteger    = errors.New("value is not an integer")
	ErrNotString     = errors.New("value is not a string")
	ErrLength        = errors.New("column length does not match row count")
)
