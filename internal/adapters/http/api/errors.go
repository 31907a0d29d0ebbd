package api

import (
	"errors"
	"net/http"

	service "github.com/okian/minerboard/internal/app"
)

// Error codes of the JSON API.
const (
	codeFetchFailed = "fetch_failed"
	codeShapeFailed = "shape_failed"
	codeNotFound    = "not_found"
	codeRender      = "render_failed"
	codeInternal    = "internal"
)

// ErrTemplate reports a page that could not be executed.
var ErrTemplate = errors.New("dashboard template failed")

// classify maps a run error to an HTTP status and API error code.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrFetch):
		return http.StatusBadGateway, codeFetchFailed
	case errors.Is(err, service.ErrShape):
		return http.StatusInternalServerError, codeShapeFailed
	case errors.Is(err, service.ErrUnknownChart):
		return http.StatusNotFound, codeNotFound
	default:
		return http.StatusInternalServerError, codeInternal
	}
}
