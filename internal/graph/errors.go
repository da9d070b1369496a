// Package graph provides the transport used to reach the Microsoft Graph API:
// a live HTTP implementation and a canned mock, selected once at startup.
package graph

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for transport failures and HTTP status classification.
// Use errors.Is(err, graph.ErrTransport) to check.
var (
	ErrTransport    = errors.New("graph: transport failure")
	ErrNoMockRoute  = errors.New("graph: no canned response for request")
	ErrBadRequest   = errors.New("graph: bad request")
	ErrUnauthorized = errors.New("graph: unauthorized")
	ErrForbidden    = errors.New("graph: forbidden")
	ErrNotFound     = errors.New("graph: not found")
	ErrThrottled    = errors.New("graph: throttled")
	ErrServerError  = errors.New("graph: server error")
)

// TransportError wraps a network-level failure (DNS, connection refused,
// timeout, body read) with the request that caused it.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("graph: %s %s: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() []error {
	return []error{ErrTransport, e.Err}
}

// MockRouteError is returned by MockTransport for a request it has no canned
// answer for. It indicates a deployment or test-setup defect.
type MockRouteError struct {
	Method string
	URL    string
}

func (e *MockRouteError) Error() string {
	return fmt.Sprintf("graph: mock transport has no response for %s %s", e.Method, e.URL)
}

func (e *MockRouteError) Unwrap() error {
	return ErrNoMockRoute
}

// ClassifyStatus maps an HTTP status code to a sentinel error.
// Returns nil for 2xx success codes and for codes without a sentinel.
func ClassifyStatus(code int) error {
	switch code {
	case http.StatusBadRequest:
		return ErrBadRequest
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusTooManyRequests:
		return ErrThrottled
	default:
		if code >= http.StatusInternalServerError {
			return ErrServerError
		}

		return nil
	}
}
