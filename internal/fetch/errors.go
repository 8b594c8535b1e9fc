package fetch

import "errors"

var (
	// ErrInvalidURL is returned when the target URL cannot be parsed.
	ErrInvalidURL = errors.New("invalid URL")

	// ErrRequestFailed is returned when the HTTP request could not complete,
	// typically due to DNS failure, connection refusal or timeout.
	ErrRequestFailed = errors.New("request failed")

	// ErrHTTPStatus is returned when the server answered with a non-success
	// status code.
	ErrHTTPStatus = errors.New("unexpected HTTP status")

	// ErrNotHTML is returned when the response is not an HTML document.
	ErrNotHTML = errors.New("response is not HTML")
)
