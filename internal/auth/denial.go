package auth

import (
	"fmt"
	"net/http"
)

// Code classifies why a request was rejected.
type Code int

const (
	// CodeMalformedHeader covers a missing Authorization header, a bad
	// token count, invalid base64, and a bad username:password split.
	CodeMalformedHeader Code = iota
	// CodeUnsupportedScheme means the header carried a scheme other than Basic.
	CodeUnsupportedScheme
	// CodeInvalidUsername means the username is not the fixed identity.
	CodeInvalidUsername
	// CodeMissingTenant means the path did not name a tenant.
	CodeMissingTenant
	// CodeUnknownTenant means the normalized tenant has no configured secret.
	CodeUnknownTenant
	// CodeInvalidSecret means the password did not match the tenant's secret.
	CodeInvalidSecret
)

// Denial is a classified rejection. The status and message it maps to
// are fixed; callers must not expose anything beyond them.
type Denial struct {
	Code   Code
	Tenant string // raw tenant identifier, set for CodeUnknownTenant
}

func (d *Denial) Error() string { return d.Message() }

// Status returns the HTTP status code for this denial.
func (d *Denial) Status() int {
	switch d.Code {
	case CodeMissingTenant:
		return http.StatusBadRequest
	case CodeUnknownTenant:
		return http.StatusNotFound
	default:
		return http.StatusUnauthorized
	}
}

// Message returns the fixed response body for this denial.
func (d *Denial) Message() string {
	switch d.Code {
	case CodeMalformedHeader:
		return "Unauthorized: Malformed Authorization header"
	case CodeUnsupportedScheme:
		return "Unauthorized: Only Basic Auth supported"
	case CodeInvalidUsername:
		return "Unauthorized: Invalid username"
	case CodeMissingTenant:
		return "Bad Request: Fruit not specified in path"
	case CodeUnknownTenant:
		return fmt.Sprintf("Not Found: Fruit '%s' not recognized", d.Tenant)
	case CodeInvalidSecret:
		return "Unauthorized: Invalid password for this fruit"
	}
	return "Unauthorized"
}

// Reason returns a stable token for logs and the audit trail.
func (d *Denial) Reason() string {
	switch d.Code {
	case CodeMalformedHeader:
		return "malformed_header"
	case CodeUnsupportedScheme:
		return "unsupported_scheme"
	case CodeInvalidUsername:
		return "invalid_username"
	case CodeMissingTenant:
		return "missing_tenant"
	case CodeUnknownTenant:
		return "unknown_tenant"
	case CodeInvalidSecret:
		return "invalid_password"
	}
	return "denied"
}
