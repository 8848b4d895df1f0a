// Package errors provides structured error types for mvnresolve.
//
// This package defines error codes and types that enable:
//   - Telling resolution failures apart from download failures
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Codes name the stage that failed:
//   - TRANSPORT, REMOTE_REJECTION: the HTTP request itself
//   - PARSE, MISSING_FIELD: the metadata document
//   - NO_SNAPSHOT_VERSION, NO_TIMESTAMP: version algebra misuse
//   - FILESYSTEM, INVALID_ARGUMENT, INVALID_INPUT: local failures
//   - METADATA_FETCH, DOWNLOAD: the operation that was running
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidArgument, "destination path is empty")
//	if errors.Is(err, errors.ErrCodeInvalidArgument) {
//	    // Handle invalid argument
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeMetadataFetch, origErr, "fetch %s", url)
//
// [Is] walks the whole chain, so a METADATA_FETCH error wrapping a
// REMOTE_REJECTION answers true for both codes.
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Request errors
	ErrCodeTransport       Code = "TRANSPORT"
	ErrCodeRemoteRejection Code = "REMOTE_REJECTION"

	// Metadata errors
	ErrCodeParse        Code = "PARSE"
	ErrCodeMissingField Code = "MISSING_FIELD"

	// Version errors
	ErrCodeNoSnapshotVersion Code = "NO_SNAPSHOT_VERSION"
	ErrCodeNoTimestamp       Code = "NO_TIMESTAMP"

	// Local errors
	ErrCodeFilesystem      Code = "FILESYSTEM"
	ErrCodeInvalidArgument Code = "INVALID_ARGUMENT"
	ErrCodeInvalidInput    Code = "INVALID_INPUT"

	// Operation errors
	ErrCodeMetadataFetch Code = "METADATA_FETCH"
	ErrCodeDownload      Code = "DOWNLOAD"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// coder is implemented by typed errors that are not *Error but still carry a code.
type coder interface {
	Code() Code
}

func codeOf(err error) (Code, bool) {
	if e, ok := err.(*Error); ok {
		return e.Code, true
	}
	if c, ok := err.(coder); ok {
		return c.Code(), true
	}
	return "", false
}

// Is reports whether any error in err's chain has the given code.
func Is(err error, code Code) bool {
	for ; err != nil; err = errors.Unwrap(err) {
		if c, ok := codeOf(err); ok && c == code {
			return true
		}
	}
	return false
}

// GetCode extracts the outermost error code from an error, if available.
// Returns empty string if no error in the chain carries a code.
func GetCode(err error) Code {
	for ; err != nil; err = errors.Unwrap(err) {
		if c, ok := codeOf(err); ok {
			return c
		}
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix, followed
// by the user message of the cause.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Cause != nil {
			return e.Message + ": " + UserMessage(e.Cause)
		}
		return e.Message
	}
	return err.Error()
}

// FieldError reports a metadata element that was expected but absent.
type FieldError struct {
	Path string // slash-separated element path, e.g. "versioning/release"
}

// Error implements the error interface.
func (e *FieldError) Error() string {
	return fmt.Sprintf("metadata element %s is missing", e.Path)
}

// Code returns the error code for this error type.
func (e *FieldError) Code() Code {
	return ErrCodeMissingField
}

// MissingField returns the path of the missing element if err's chain
// contains a [FieldError].
func MissingField(err error) (string, bool) {
	var fe *FieldError
	if errors.As(err, &fe) {
		return fe.Path, true
	}
	return "", false
}
