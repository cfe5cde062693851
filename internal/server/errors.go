// Package server provides the HTTP API and web front end of the skill trend detector.
package server

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrMalformedBody indicates a request body that is not valid JSON for the endpoint
type ErrMalformedBody struct {
	Cause error
}

func (e *ErrMalformedBody) Error() string {
	return fmt.Sprintf("invalid request body: %v", e.Cause)
}

func (e *ErrMalformedBody) Unwrap() error {
	return e.Cause
}

// ErrPayloadTooLarge indicates a request body above the configured limit
type ErrPayloadTooLarge struct {
	Limit int64
}

func (e *ErrPayloadTooLarge) Error() string {
	return fmt.Sprintf("request body exceeds %d bytes", e.Limit)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validationErr *ErrValidation
		malformedErr  *ErrMalformedBody
		tooLargeErr   *ErrPayloadTooLarge
	)
	switch {
	case errors.As(err, &validationErr), errors.As(err, &malformedErr):
		return http.StatusBadRequest
	case errors.As(err, &tooLargeErr):
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}
