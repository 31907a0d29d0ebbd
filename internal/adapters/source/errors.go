package source

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel kinds for source errors.
var (
	ErrRequest = errors.New("source request failed")
	ErrStatus  = errors.New("source returned an error status")
	ErrBody    = errors.New("source body unreadable")
)

// StatusError carries a non-2xx response.
type StatusError struct {
	Code int
	URL  string
}

func (e *StatusError) Error() string {
	kind := "Client"
	if e.Code >= http.StatusInternalServerError {
		kind = "Server"
	}
	return fmt.Sprintf("%d %s Error: %s for url: %s", e.Code, kind, http.StatusText(e.Code), e.URL)
}

// Is lets errors.Is(err, ErrStatus) match.
func (e *StatusError) Is(target error) bool { return target == ErrStatus }
