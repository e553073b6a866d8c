package qrz

import (
	"errors"
	"net"
	"net/url"
	"syscall"
)

var (
	// ErrAuth reports a RESULT=AUTH response: the access key was rejected
	// or lacks the privilege for the requested action.
	ErrAuth = errors.New("authentication failed or insufficient privileges")

	// ErrInvalidKey reports an access key that cannot be valid.
	ErrInvalidKey = errors.New("invalid logbook access key")

	// ErrInvalidUserAgent reports a user agent the API would reject.
	ErrInvalidUserAgent = errors.New("invalid user agent")
)

// IsNetworkError checks if the error is network-related. Callers use it
// to decide whether a failed request is worth retrying; the service
// itself never retries.
func IsNetworkError(err error) bool {
	if err == nil {
		return false
	}

	// Check for net.Error interface (includes timeout, temporary errors)
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	// Check for DNS errors
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}

	// Check for connection refused, network unreachable, etc.
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}

	// Check for URL errors (which wrap network errors)
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return IsNetworkError(urlErr.Err)
	}

	// Check for specific syscall errors
	if errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ENETUNREACH) ||
		errors.Is(err, syscall.EHOSTUNREACH) {
		return true
	}

	return false
}
