package relay

import (
	"errors"
	"fmt"
)

// ErrNoOwner is returned when the client has no owner address to post to.
var ErrNoOwner = errors.New("relay owner email not configured")

// ServiceError means the request reached the relay but the relay reported
// failure, either by status code or by its success flag.
type ServiceError struct {
	Status  int
	Message string
}

func (e *ServiceError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("relay rejected submission (status %d)", e.Status)
	}
	return fmt.Sprintf("relay rejected submission (status %d): %s", e.Status, e.Message)
}

// TransportError means no usable answer came back: the request failed or the
// body could not be decoded.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("relay %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsServiceError reports whether err carries a *ServiceError.
func IsServiceError(err error) bool {
	var se *ServiceError
	return errors.As(err, &se)
}

// IsTransportError reports whether err carries a *TransportError.
func IsTransportError(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}
