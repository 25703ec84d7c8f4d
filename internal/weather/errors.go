package weather

import "errors"

var (
	// ErrTransport wraps failures that prevented a response from being received
	// (DNS, refused connection, timeout, cancellation).
	ErrTransport = errors.New("weather request failed")
	// ErrInvalidEndpoint is returned when the request endpoint cannot be parsed
	// as an absolute URL.
	ErrInvalidEndpoint = errors.New("invalid weather endpoint")
)
