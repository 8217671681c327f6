package secrets

// Error types for secret-map resolution failures. Any of these surfaces
// to the caller as a configuration error; the HTTP layer maps them all
// to a single internal-error response.

import "fmt"

// UnsupportedSchemeError indicates an unrecognized URI scheme.
type UnsupportedSchemeError struct {
	Scheme string
}

func (e *UnsupportedSchemeError) Error() string {
	return fmt.Sprintf("unsupported secrets scheme: %s", e.Scheme)
}

// InvalidReferenceError indicates a malformed secret-map reference.
type InvalidReferenceError struct {
	Reference string
	Reason    string
}

func (e *InvalidReferenceError) Error() string {
	return fmt.Sprintf("invalid secrets reference %q: %s", e.Reference, e.Reason)
}

// InvalidPayloadError indicates the backend returned data that is not a
// JSON object of tenant names to secrets.
type InvalidPayloadError struct {
	Reference string
	Reason    string
	Cause     error
}

func (e *InvalidPayloadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid secret map from %s: %v", e.Reference, e.Cause)
	}
	return fmt.Sprintf("invalid secret map from %s: %s", e.Reference, e.Reason)
}

func (e *InvalidPayloadError) Unwrap() error { return e.Cause }

// BackendError wraps a failure from the backing store.
type BackendError struct {
	Backend   string
	Reference string
	Reason    string
	Cause     error
}

func (e *BackendError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Backend, e.Reason, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Backend, e.Reason)
}

func (e *BackendError) Unwrap() error { return e.Cause }
