// Package errorspkg provides common app errors.
package errorspkg

import "errors"

var (
	// ErrInternal indicates internal server error.
	ErrInternal = errors.New("internal")
	// ErrMalformedPayload indicates that the request body does not have the expected shape.
	ErrMalformedPayload = errors.New("malformed request payload")
)
