package urlpolicy

import (
	"errors"
	"fmt"
)

// ErrEmptyURL is returned when the URL is empty or whitespace-only. This is a
// caller error, not a policy rejection: no policy logic has run.
var ErrEmptyURL = errors.New("urlpolicy: url must not be empty")

// MalformedURLError is returned when the URL cannot be parsed. Unparsable
// URLs are always rejected, never allowed by default.
type MalformedURLError struct {
	// URL is the raw input that failed to parse.
	URL string

	// Cause is the underlying parse error.
	Cause error
}

// Error implements the error interface.
func (e *MalformedURLError) Error() string {
	return fmt.Sprintf("urlpolicy: malformed url %q: %v", e.URL, e.Cause)
}

// Unwrap returns the underlying parse error for errors.Is/As support.
func (e *MalformedURLError) Unwrap() error {
	return e.Cause
}

// Reason identifies which policy check a URL failed.
type Reason string

const (
	// ReasonFileProtocol means the URL addresses a local file or a
	// UNC/network share path instead of a network host.
	ReasonFileProtocol Reason = "file_protocol"

	// ReasonSchemeNotAllowed means the scheme is not in the allowlist.
	ReasonSchemeNotAllowed Reason = "scheme_not_allowed"

	// ReasonDangerousHostname means the host lexically names the local
	// machine (localhost, 127.x.x.x, [::1], ...).
	ReasonDangerousHostname Reason = "dangerous_hostname"

	// ReasonDomainNotAllowed means the host is not in the domain allowlist.
	ReasonDomainNotAllowed Reason = "domain_not_allowed"

	// ReasonPrivateIP means the host is an IP literal in a private range.
	ReasonPrivateIP Reason = "private_ip"

	// ReasonReservedIP means the host is an IP literal in a reserved range
	// (unspecified, broadcast, loopback, link-local, multicast).
	ReasonReservedIP Reason = "reserved_ip"

	// ReasonPortOutOfRange means the resolved port is outside min/max bounds.
	ReasonPortOutOfRange Reason = "port_out_of_range"

	// ReasonPortNotAllowed means the resolved port is not in the allowlist.
	ReasonPortNotAllowed Reason = "port_not_allowed"

	// ReasonPortBlocked means the resolved port is in the blocklist.
	ReasonPortBlocked Reason = "port_blocked"

	// ReasonWellKnownPort means the resolved port belongs to a well-known
	// internal service (SSH, databases, LDAP, ...).
	ReasonWellKnownPort Reason = "well_known_service_port"
)

// RejectionError reports the first policy check a URL failed. Checks
// short-circuit, so a RejectionError always carries exactly one reason.
type RejectionError struct {
	// Reason identifies the failing check.
	Reason Reason

	// Value is the offending scheme, host, IP, or port.
	Value string

	// Message is a human-readable description of the failure.
	Message string
}

// Error implements the error interface.
func (e *RejectionError) Error() string {
	return fmt.Sprintf("url rejected (%s): %s", e.Reason, e.Message)
}

// IsRejection reports whether err is a policy rejection, as opposed to an
// input-shape or parse error.
func IsRejection(err error) bool {
	var rej *RejectionError
	return errors.As(err, &rej)
}

// ReasonOf extracts the rejection reason from err, or returns the empty
// string if err is not a RejectionError.
func ReasonOf(err error) Reason {
	var rej *RejectionError
	if errors.As(err, &rej) {
		return rej.Reason
	}
	return ""
}

// newRejection builds a RejectionError with a formatted message.
func newRejection(reason Reason, value, format string, args ...any) *RejectionError {
	return &RejectionError{
		Reason:  reason,
		Value:   value,
		Message: fmt.Sprintf(format, args...),
	}
}
