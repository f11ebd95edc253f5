package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/tidwall/gjson"
)

// Kind classifies a failed call. Classification happens once, at the client
// boundary; callers branch on kinds or render UserMessage, never on raw
// transport errors.
type Kind int

const (
	// KindConnectivity means no response was received (network or timeout).
	// This is the only kind the stock retry policy retries.
	KindConnectivity Kind = iota
	// KindAuth is a 401: the stored token is invalid or expired.
	KindAuth
	// KindForbidden is a 403.
	KindForbidden
	// KindNotFound is a 404.
	KindNotFound
	// KindValidation is a 4xx carrying a structured error body.
	KindValidation
	// KindServer is any 5xx.
	KindServer
)

func (k Kind) String() string {
	switch k {
	case KindConnectivity:
		return "connectivity"
	case KindAuth:
		return "auth"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindValidation:
		return "validation"
	case KindServer:
		return "server"
	default:
		return "unknown"
	}
}

// Error is a classified call failure.
type Error struct {
	Kind    Kind
	Status  int    // zero when no response was received
	Message string // message extracted from a structured error body
	Err     error  // underlying transport error, when any
}

func (e *Error) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("api: %s: %v", e.Kind, e.Err)
	case e.Message != "":
		return fmt.Sprintf("api: %s (%d): %s", e.Kind, e.Status, e.Message)
	default:
		return fmt.Sprintf("api: %s (%d)", e.Kind, e.Status)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// UserMessage translates the failure into the string shown to the user.
// Structured validation messages are surfaced verbatim.
func (e *Error) UserMessage() string {
	switch e.Kind {
	case KindConnectivity:
		return "Cannot reach SaleSnipe. Check your connection and try again."
	case KindAuth:
		return "Your session has expired. Please sign in again."
	case KindForbidden:
		return "You do not have permission to do that."
	case KindNotFound:
		return "Resource not found."
	case KindServer:
		return "SaleSnipe is having trouble right now. Please try again shortly."
	case KindValidation:
		if e.Message != "" {
			return e.Message
		}
		return "The request could not be processed."
	default:
		return "Something went wrong."
	}
}

// classify maps a received response onto the error taxonomy. Only non-2xx
// statuses reach it.
func classify(status int, body []byte) *Error {
	e := &Error{Status: status, Message: extractMessage(body)}
	switch {
	case status == http.StatusUnauthorized:
		e.Kind = KindAuth
	case status == http.StatusForbidden:
		e.Kind = KindForbidden
	case status == http.StatusNotFound:
		e.Kind = KindNotFound
	case status >= 500:
		e.Kind = KindServer
	default:
		e.Kind = KindValidation
	}
	return e
}

// extractMessage pulls a human-readable message out of an opaque error body.
// Backends disagree on the field name, so a few shapes are probed.
func extractMessage(body []byte) string {
	if len(body) == 0 || !gjson.ValidBytes(body) {
		return ""
	}
	for _, path := range []string{"message", "error", "errors.0.msg", "errors.0.message"} {
		if v := gjson.GetBytes(body, path); v.Type == gjson.String && v.Str != "" {
			return v.Str
		}
	}
	return ""
}

func connectivityError(err error) *Error {
	return &Error{Kind: KindConnectivity, Err: err}
}

// AsError extracts the classified error from err, when there is one.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

func isKind(err error, k Kind) bool {
	e, ok := AsError(err)
	return ok && e.Kind == k
}

// IsConnectivity reports whether err is a no-response failure.
func IsConnectivity(err error) bool { return isKind(err, KindConnectivity) }

// IsAuth reports whether err is an authentication failure.
func IsAuth(err error) bool { return isKind(err, KindAuth) }

// IsNotFound reports whether err is a 404.
func IsNotFound(err error) bool { return isKind(err, KindNotFound) }

// IsForbidden reports whether err is a 403.
func IsForbidden(err error) bool { return isKind(err, KindForbidden) }

// IsServer reports whether err is a 5xx.
func IsServer(err error) bool { return isKind(err, KindServer) }

// UserMessage translates any error from this package into its user-facing
// string. Unclassified errors get a generic message.
func UserMessage(err error) string {
	if e, ok := AsError(err); ok {
		return e.UserMessage()
	}
	return "Something went wrong."
}
