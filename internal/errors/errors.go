// Package errors provides structured error types for the glacier CLI.
//
// SiteError carries an error code, a human-readable message, the domain
// involved (when applicable) and an optional wrapped cause. No error in the
// provisioning core is fatal: rule files that cannot be read are
// skipped, DNS and issuance failures fall back to an unencrypted site, and
// the caller decides how to surface each failure.
//
// Use the sentinel values with errors.Is:
//
//	if errors.Is(err, errors.ErrSiteNotFound) {
//	    // handle missing site
//	}
package errors

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes errors for programmatic handling.
type ErrorCode string

// Error codes for different error categories.
const (
	ErrCodeNotFound      ErrorCode = "NOT_FOUND"      // Site not found
	ErrCodeAlreadyExists ErrorCode = "ALREADY_EXISTS" // Site already exists
	ErrCodeValidation    ErrorCode = "VALIDATION"     // Input validation failed
	ErrCodeConfig        ErrorCode = "CONFIG"         // Configuration error
	ErrCodeRules         ErrorCode = "RULES"          // Rule file unreadable
	ErrCodeParse         ErrorCode = "PARSE"          // Malformed rule directive
	ErrCodeDNS           ErrorCode = "DNS"            // DNS lookup / challenge error
	ErrCodeIssuance      ErrorCode = "ISSUANCE"       // Certificate issuance failed
	ErrCodeFilesystem    ErrorCode = "FILESYSTEM"     // Copying artifacts failed
	ErrCodeDocker        ErrorCode = "DOCKER"         // Compose stack error
)

// SiteError represents a structured error with context about the operation.
type SiteError struct {
	Code    ErrorCode // Error category
	Message string    // Human-readable message
	Domain  string    // Domain name (if applicable)
	Err     error     // Underlying error (if any)
}

// Error implements the error interface.
func (e *SiteError) Error() string {
	if e.Domain != "" && e.Err != nil {
		return fmt.Sprintf("site %s: %s: %v", e.Domain, e.Message, e.Err)
	}
	if e.Domain != "" {
		return fmt.Sprintf("site %s: %s", e.Domain, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for error chain traversal.
func (e *SiteError) Unwrap() error {
	return e.Err
}

// Is reports whether target matches this error, comparing by code.
func (e *SiteError) Is(target error) bool {
	t, ok := target.(*SiteError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// Sentinel errors for common scenarios. Use with errors.Is().
var (
	// ErrSiteNotFound indicates the requested site does not exist.
	ErrSiteNotFound = &SiteError{Code: ErrCodeNotFound, Message: "site not found"}

	// ErrSiteExists indicates a site with the same domain already exists.
	ErrSiteExists = &SiteError{Code: ErrCodeAlreadyExists, Message: "site already exists"}

	// ErrInvalidDomain indicates the domain name is not valid.
	ErrInvalidDomain = &SiteError{Code: ErrCodeValidation, Message: "invalid domain"}

	// ErrDNSTimeout indicates all challenge polling attempts were exhausted.
	ErrDNSTimeout = &SiteError{Code: ErrCodeDNS, Message: "challenge record not found before timeout"}

	// ErrIssuanceFailed indicates the issuance collaborator reported failure.
	ErrIssuanceFailed = &SiteError{Code: ErrCodeIssuance, Message: "certificate issuance failed"}

	// ErrIssuerNotFound indicates the configured issuer is not registered.
	ErrIssuerNotFound = &SiteError{Code: ErrCodeConfig, Message: "issuer not found"}
)

// NotFound creates an error for a site that doesn't exist.
func NotFound(domain string) error {
	return &SiteError{
		Code:    ErrCodeNotFound,
		Message: "site not found",
		Domain:  domain,
	}
}

// AlreadyExists creates an error for a site that already exists.
func AlreadyExists(domain string) error {
	return &SiteError{
		Code:    ErrCodeAlreadyExists,
		Message: "site already exists",
		Domain:  domain,
	}
}

// Validation creates a validation error with a custom message.
func Validation(msg string) error {
	return &SiteError{
		Code:    ErrCodeValidation,
		Message: msg,
	}
}

// Wrap creates an error with the specified code, message, and underlying error.
func Wrap(code ErrorCode, msg string, err error) error {
	return &SiteError{
		Code:    code,
		Message: msg,
		Err:     err,
	}
}

// WrapDomain creates an error with domain context and underlying error.
func WrapDomain(code ErrorCode, domain, msg string, err error) error {
	return &SiteError{
		Code:    code,
		Message: msg,
		Domain:  domain,
		Err:     err,
	}
}

// Is reports whether any error in err's chain matches target.
var Is = errors.Is

// As finds the first error in err's chain that matches target.
var As = errors.As
