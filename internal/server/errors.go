package server

import (
	"errors"
	"net/http"

	"github.com/jonathan/mock-interview/internal/ingestion"
	"github.com/jonathan/mock-interview/internal/interview"
)

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		unsupported *ingestion.UnsupportedFormatError
		extraction  *ingestion.ExtractionError
		tooLarge    *http.MaxBytesError
		input       *interview.InputError
	)
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &unsupported):
		return http.StatusUnsupportedMediaType
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &input):
		return http.StatusBadRequest
	case errors.As(err, &extraction):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// errorMessage returns the client-facing message for err. Internal details
// stay in the server log.
func errorMessage(err error) string {
	var (
		input    *interview.InputError
		tooLarge *http.MaxBytesError
	)
	switch {
	case errors.As(err, &input):
		return input.Message
	case errors.As(err, &tooLarge):
		return "File too large"
	default:
		return interview.MsgProcessFailed
	}
}
