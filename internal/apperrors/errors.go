// Package apperrors holds the failure kinds shared by the forwarders and the
// lookup coordinator. HTTP status mapping lives with the transport, not here.
package apperrors

import (
	"fmt"
	"time"
)

// ErrPhoneRequired is returned when a customer search is attempted without digits.
var ErrPhoneRequired = &ValidationError{Field: "phone", Message: "Phone number is required"}

// ValidationError reports a missing or malformed required input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// UpstreamError means the commerce platform answered with a non-2xx status.
// Body and ContentType are relayed to callers unchanged.
type UpstreamError struct {
	Endpoint    string
	StatusCode  int
	ContentType string
	Body        []byte
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream %s responded with status %d", e.Endpoint, e.StatusCode)
}

// TransportError means the platform could not be reached or its reply could
// not be read as JSON.
type TransportError struct {
	Endpoint string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport failure calling %s: %v", e.Endpoint, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// TimeoutError means the outbound call exceeded its configured deadline.
type TimeoutError struct {
	Endpoint string
	Timeout  time.Duration
	Err      error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("request to %s timed out after %s", e.Endpoint, e.Timeout)
}

func (e *TimeoutError) Unwrap() error { return e.Err }

// LookupError is a domain failure of the lookup flow itself (as opposed to a
// failed call). Its message is safe to show to shoppers.
type LookupError struct {
	Message string
}

func (e *LookupError) Error() string { return e.Message }
