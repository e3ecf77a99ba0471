package types

import "fmt"

// ConnectionError indicates the exchange with the upstream API could not be
// completed: a timeout, a socket-level failure, a non-2xx status, or an
// application error list embedded in an otherwise successful response.
type ConnectionError struct {
	Message string
	// StatusCode is the HTTP status, when one was received.
	StatusCode int
	// Payload holds the decoded error body, when the upstream sent one.
	Payload any
	// Err is the underlying transport error, when there is one.
	Err error
}

// Error implements the error interface.
func (e *ConnectionError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s (status %d)", e.Message, e.StatusCode)
	}
	return e.Message
}

// Unwrap returns the underlying transport error.
func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// FormatError indicates the exchange succeeded but the body could not be
// interpreted: wrong content type, malformed JSON, a malformed timestamp or
// price value, or a missing required field. It is permanent; retrying the
// same request yields the same failure.
type FormatError struct {
	Message string
	// ContentType is the response content type, when relevant.
	ContentType string
	// Detail carries a fragment of the offending input for diagnostics.
	Detail string
	// Err is the underlying parse error, when there is one.
	Err error
}

// Error implements the error interface.
func (e *FormatError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s", e.Message, e.Detail)
	}
	return e.Message
}

// Unwrap returns the underlying parse error.
func (e *FormatError) Unwrap() error {
	return e.Err
}

// NoDataError indicates the request succeeded and parsed but no prices exist
// for the requested window, e.g. tomorrow's prices before publication. It is
// an expected condition the caller may treat as absence of data.
type NoDataError struct {
	Message string
	// StatusCode is set when the upstream signalled the condition itself
	// (a 404 on the lookup protocol).
	StatusCode int
	// Payload holds the decoded upstream body, when there was one.
	Payload any
}

// Error implements the error interface.
func (e *NoDataError) Error() string {
	if e.Message == "" {
		return "no prices found for this period"
	}
	return e.Message
}
