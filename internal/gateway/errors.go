package gateway

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError is a non-2xx reply from the API gateway. Message carries the
// server-provided message when the body had one.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("gateway: status %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("gateway: status %d", e.Status)
}

// IsConflict reports whether err is a natural-key collision on patient
// creation. The patient service signals an existing CIN with 409, some
// deployments reply 400; both are treated as the same condition.
func IsConflict(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Status == http.StatusConflict || apiErr.Status == http.StatusBadRequest
}

// IsNotFound reports whether err is a 404 from the gateway.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// ServerMessage extracts the server-provided message from err, or returns
// the empty string when there is none.
func ServerMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return ""
}
