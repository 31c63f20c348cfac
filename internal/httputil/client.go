package httputil

import (
	"net/http"
	"time"
)

// DefaultTimeout bounds every outbound call so a slow upstream cannot stall
// a prediction request.
const DefaultTimeout = 10 * time.Second

// NewClient returns an HTTP client with standard timeout configuration.
func NewClient() *http.Client {
	return &http.Client{
		Timeout: DefaultTimeout,
	}
}

// NewClientWithTimeout returns a client with a caller-chosen timeout.
func NewClientWithTimeout(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{Timeout: timeout}
}
