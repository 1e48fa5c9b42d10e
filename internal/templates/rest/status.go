package rest

import (
	"errors"
	"net/http"

	"github.com/geoirb/doc-templater/internal/templates"
)

// status maps the service error taxonomy to http codes.
func status(err error) int {
	switch {
	case errors.Is(err, templates.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, templates.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, templates.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, templates.ErrEmptyFile),
		errors.Is(err, templates.ErrEmptyPayload),
		errors.Is(err, templates.ErrUnsupportedType),
		errors.Is(err, templates.ErrExtraction),
		errors.Is(err, templates.ErrTemplateParse):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
