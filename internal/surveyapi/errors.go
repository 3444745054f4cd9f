package surveyapi

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrResponseTooLarge is returned when a response body exceeds maxBodyBytes.
var ErrResponseTooLarge = errors.New("response body too large")

// StatusError indicates the backend answered with a non-2xx status.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("%s %s: HTTP %d: %s", e.Method, e.URL, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("%s %s: HTTP %d", e.Method, e.URL, e.StatusCode)
}

// InvalidPayloadError indicates the question payload does not match the
// expected shape.
type InvalidPayloadError struct {
	Content json.RawMessage
	Err     error
}

func (e *InvalidPayloadError) Error() string {
	return fmt.Sprintf("invalid survey payload: %v", e.Err)
}

func (e *InvalidPayloadError) Unwrap() error { return e.Err }
