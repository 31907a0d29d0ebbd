package service

import (
	"errors"
	"fmt"
)

// Sentinel kinds of a failed run.
var (
	ErrFetch = errors.New("fetch failed")
	ErrShape = errors.New("shape failed")

	ErrUnknownChart = errors.New("unknown chart")
)

// FetchError is a transport, status or body failure of the source request.
type FetchError struct {
	RunID string
	Err   error
}

func (e *FetchError) Error() string { return fmt.Sprintf("Error fetching data: %v", e.Err) }

// Unwrap exposes the cause.
func (e *FetchError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrFetch) match.
func (e *FetchError) Is(target error) bool { return target == ErrFetch }

// ShapeError is a missing or malformed field found after a successful fetch.
type ShapeError struct {
	RunID string
	Err   error
}

func (e *ShapeError) Error() string { return fmt.Sprintf("Error processing data: %v", e.Err) }

// Unwrap exposes the cause.
func (e *ShapeError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrShape) match.
func (e *ShapeError) Is(target error) bool { return target == ErrShape }
