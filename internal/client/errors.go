package client

import (
	"context"
	"crypto/x509"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
)

// TransportErrorKind categorizes the type of transport error.
type TransportErrorKind int

const (
	// TransportUnknown indicates an unclassified transport error.
	TransportUnknown TransportErrorKind = iota
	// TransportRefused indicates the server could not be reached (refused,
	// unreachable, DNS failure).
	TransportRefused
	// TransportTimeout indicates the request did not finish in time.
	TransportTimeout
	// TransportMalformed indicates a response that could not be read.
	TransportMalformed
	// TransportTLS indicates a TLS/certificate verification error.
	TransportTLS
)

// String returns a human-readable name for the transport error kind.
func (k TransportErrorKind) String() string {
	switch k {
	case TransportRefused:
		return "connection refused"
	case TransportTimeout:
		return "timeout"
	case TransportMalformed:
		return "malformed response"
	case TransportTLS:
		return "TLS certificate error"
	default:
		return "connection error"
	}
}

// TransportError indicates a request failed before a usable response was read.
type TransportError struct {
	// Endpoint is the server base URL.
	Endpoint string
	Kind     TransportErrorKind
	// Reason is the underlying error.
	Reason error
}

func (e *TransportError) Error() string {
	switch e.Kind {
	case TransportTimeout:
		return "Request timed out. Please try again"
	case TransportMalformed:
		return fmt.Sprintf("Malformed response from %s: %v", e.Endpoint, e.Reason)
	case TransportTLS:
		return fmt.Sprintf("Could not connect to server at %s: %v", e.Endpoint, e.Reason)
	default:
		return fmt.Sprintf("Could not connect to server. Is the server running at %s?", e.Endpoint)
	}
}

// Unwrap returns the underlying error.
func (e *TransportError) Unwrap() error {
	return e.Reason
}

// ServerError carries an error reported by the server itself, or a body the
// server sent outside the response wrapper.
type ServerError struct {
	Message string
}

func (e *ServerError) Error() string {
	return e.Message
}

// ClassifyTransportError analyzes an error and returns a TransportError with the appropriate kind.
// If the error is nil, returns nil.
func ClassifyTransportError(err error, endpoint string) *TransportError {
	if err == nil {
		return nil
	}

	kind := TransportUnknown
	var dnsErr *net.DNSError
	switch {
	case isTLSError(err):
		kind = TransportTLS
	case errors.As(err, &dnsErr):
		kind = TransportRefused
	case isTimeoutError(err):
		kind = TransportTimeout
	case isNetworkError(err.Error()):
		kind = TransportRefused
	}
	return &TransportError{Endpoint: endpoint, Kind: kind, Reason: err}
}

// isTLSError checks if the error is related to TLS/certificate issues.
func isTLSError(err error) bool {
	var certErr *x509.CertificateInvalidError
	var hostErr *x509.HostnameError
	var unknownAuthErr *x509.UnknownAuthorityError
	if errors.As(err, &certErr) || errors.As(err, &hostErr) || errors.As(err, &unknownAuthErr) {
		return true
	}

	errStr := err.Error()
	for _, keyword := range []string{"x509:", "certificate", "tls:", "TLS handshake"} {
		if strings.Contains(errStr, keyword) {
			return true
		}
	}
	return false
}

// isTimeoutError checks if the error is a timeout.
func isTimeoutError(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return true
	}

	errStr := err.Error()
	return strings.Contains(errStr, "timeout") || strings.Contains(errStr, "deadline exceeded")
}

// isNetworkError checks if the error string indicates a network connectivity issue.
func isNetworkError(errStr string) bool {
	networkKeywords := []string{
		"connection refused",
		"connection reset",
		"network is unreachable",
		"no route to host",
		"dial tcp",
		"connect:",
	}

	for _, keyword := range networkKeywords {
		if strings.Contains(errStr, keyword) {
			return true
		}
	}
	return false
}
