package backend

import "errors"

var (
	// ErrTransport covers requests that did not produce a usable HTTP
	// response: connection failures, timeouts and non-2xx statuses.
	ErrTransport = errors.New("backend: transport failure")

	// ErrMalformedResponse is returned when a response body does not match
	// the expected schema.
	ErrMalformedResponse = errors.New("backend: malformed response")
)
