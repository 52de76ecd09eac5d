// Package auth implements the authentication and authorization core: token
// issuance, the credential lifecycle state machine, the role/permission
// model, and the per-request authorization guard.
//
// Errors carry a kind and a machine-readable code. The HTTP layer maps kinds
// to status codes at the outermost boundary; nothing inside this package
// knows about transport status codes.
package auth

import "fmt"

// Kind classifies an authentication or authorization failure. All kinds are
// client-input or policy failures and are never retried.
type Kind int

const (
	// KindInvalidCredentials covers unknown email, wrong password and
	// disabled account at login. The three cases are deliberately
	// indistinguishable to prevent account enumeration.
	KindInvalidCredentials Kind = iota

	// KindAccountDisabled is reported only where the caller has already
	// proven possession of a valid credential, e.g. refreshing a session
	// for a deactivated account.
	KindAccountDisabled

	// KindEmailExists rejects registration with a taken email.
	KindEmailExists

	// KindInvalidRefreshToken covers unknown, expired and already-rotated
	// refresh credentials. The caller must re-authenticate via login.
	KindInvalidRefreshToken

	// KindUnauthorized signals a missing or incomplete identity claim.
	KindUnauthorized

	// KindForbidden signals a permission or tenant-scope denial.
	KindForbidden

	// KindNotFound signals an absent target entity.
	KindNotFound
)

// Error is the tagged failure type returned by the auth core. Code is a
// stable machine-readable identifier included in API responses; Message is
// the human-readable form and never contains internal detail.
type Error struct {
	Kind    Kind
	Code    string
	Message string
}

func (e *Error) Error() string { return e.Message }

// Is makes errors.Is match any *Error with the same kind, so callers can
// compare against the package sentinels regardless of message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// Sentinel errors for each kind. Compare with errors.Is.
var (
	ErrInvalidCredentials  = &Error{Kind: KindInvalidCredentials, Code: "invalid_credentials", Message: "invalid email or password"}
	ErrAccountDisabled     = &Error{Kind: KindAccountDisabled, Code: "account_disabled", Message: "account is disabled"}
	ErrEmailExists         = &Error{Kind: KindEmailExists, Code: "email_exists", Message: "email already registered"}
	ErrInvalidRefreshToken = &Error{Kind: KindInvalidRefreshToken, Code: "invalid_refresh_token", Message: "invalid or expired refresh token"}
	ErrUnauthorized        = &Error{Kind: KindUnauthorized, Code: "unauthorized", Message: "unauthorized"}
	ErrForbidden           = &Error{Kind: KindForbidden, Code: "forbidden", Message: "forbidden"}
	ErrNotFound            = &Error{Kind: KindNotFound, Code: "not_found", Message: "not found"}
)

// internalf wraps an unexpected failure. It intentionally does not produce
// an *Error: the transport layer maps anything that is not an *Error to a
// generic 500 response so internal detail never reaches the caller.
func internalf(format string, args ...any) error {
	return fmt.Errorf(format, args...)
}
