package errors

import (
	stderrors "errors"
	"fmt"
)

// AppError is an application-specific error type
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// wraps an error with a code and message
func Wrap(err error, code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// Code returns the error code of err, walking the wrap chain.
// Errors that carry no code report CodeInternal.
func Code(err error) string {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeInternal
}

// HasCode reports whether err carries the given code
func HasCode(err error, code string) bool {
	return Code(err) == code
}

// Error code constants
const (
	CodeInternal   = "INTERNAL_ERROR"
	CodeNotFound   = "NOT_FOUND"
	CodeInvalidArg = "INVALID_ARGUMENT"
	CodeExternal   = "EXTERNAL_ERROR"
	CodeConflict   = "CONFLICT"         // Resource already exists (UNIQUE violation)
	CodeDependency = "DEPENDENCY_ERROR" // Foreign key constraint violation
)

// Pipeline error taxonomy. Every failed run surfaces exactly one of these.
const (
	CodeInvalidURL        = "INVALID_URL"        // no recognized YouTube URL shape
	CodeQuotaExceeded     = "QUOTA_EXCEEDED"     // free-tier artifact limit reached
	CodeAcquisitionFailed = "ACQUISITION_FAILED" // captions and audio paths both exhausted
	CodeVideoNotFound     = "VIDEO_NOT_FOUND"    // catalog returned no matching item
	CodeEnrichmentFailed  = "ENRICHMENT_FAILED"  // a generative oracle call errored
	CodePersistenceFailed = "PERSISTENCE_FAILED" // artifact could not be stored
)
