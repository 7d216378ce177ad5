package resilience

import (
	"errors"
	"fmt"
	"net"
	"net/http"
)

// StatusError is a non-2xx HTTP response, retained so the retry policy can
// tell throttling and server faults from client mistakes.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s failed: %d %s", e.URL, e.StatusCode, http.StatusText(e.StatusCode))
}

// IsTransient reports whether an error is worth retrying: network-level
// failures, timeouts, throttling and server-side status codes.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		switch statusErr.StatusCode {
		case http.StatusTooManyRequests,
			http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout:
			return true
		}
		return false
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	return false
}
