package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// RequestError is returned when the repository answered with a 4xx or 5xx
// status code.
type RequestError struct {
	StatusCode int
}

// Error implements the error interface.
func (e *RequestError) Error() string {
	if reason := e.Reason(); reason != "" {
		return fmt.Sprintf("server returned response code %d (%s)", e.StatusCode, reason)
	}
	return fmt.Sprintf("server returned response code %d", e.StatusCode)
}

// Code returns the error code for this error type.
func (e *RequestError) Code() Code {
	return ErrCodeRemoteRejection
}

// Reason returns the text for some common response codes.
// Only 401, 403 and 404 have one; other codes return "".
func (e *RequestError) Reason() string {
	switch e.StatusCode {
	case http.StatusUnauthorized:
		return "Unauthorized"
	case http.StatusForbidden:
		return "Forbidden"
	case http.StatusNotFound:
		return "Not Found"
	default:
		return ""
	}
}

// Classify returns a *RequestError for status codes in [400, 599] and nil
// for everything else.
func Classify(statusCode int) error {
	if statusCode >= 400 && statusCode < 600 {
		return &RequestError{StatusCode: statusCode}
	}
	return nil
}

// Transport wraps a failure below the HTTP status line: DNS, TLS,
// connection resets, timeouts and unreadable responses.
func Transport(cause error, url string) *Error {
	return Wrap(ErrCodeTransport, cause, "request %s", url)
}

// StatusCode returns the HTTP status of a remote rejection in err's chain.
func StatusCode(err error) (int, bool) {
	var re *RequestError
	if errors.As(err, &re) {
		return re.StatusCode, true
	}
	return 0, false
}

// IsRetryable reports whether a caller may reasonably retry the request
// that produced err: transport failures and 5xx rejections are, everything
// else is not.
func IsRetryable(err error) bool {
	if code, ok := StatusCode(err); ok {
		return code >= 500
	}
	return Is(err, ErrCodeTransport)
}
