package common

import (
	"errors"
	"fmt"
)

// AppError represents application-specific errors
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Common application errors
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnsupportedFormat  = errors.New("unsupported file type")
	ErrExtractionFailed   = errors.New("document extraction failed")
	ErrBackendUnavailable = errors.New("no language model backend available")
	ErrPersistence        = errors.New("rate book persistence failed")
)

// Error constructors
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// UserMessage returns the text safe to surface to a caller: the error's message
// chain, never a stack trace.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
