package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"

	// Query errors
	ErrCountMismatch ErrorCode = "COUNT_MISMATCH"

	// Tree errors
	ErrTreeInvalid ErrorCode = "TREE_INVALID"
	ErrNormalize   ErrorCode = "NORMALIZE"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"
)

// RuleTreeError represents a structured error with code and details
type RuleTreeError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *RuleTreeError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *RuleTreeError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *RuleTreeError) Is(target error) bool {
	var targetErr *RuleTreeError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new RuleTreeError with the given code and message
func New(code ErrorCode, message string) *RuleTreeError {
	return &RuleTreeError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new RuleTreeError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *RuleTreeError {
	return &RuleTreeError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a RuleTreeError
func Wrap(err error, code ErrorCode, message string) *RuleTreeError {
	if err == nil {
		return nil
	}
	return &RuleTreeError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *RuleTreeError {
	if err == nil {
		return nil
	}
	return &RuleTreeError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *RuleTreeError) WithDetail(key string, value interface{}) *RuleTreeError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *RuleTreeError) WithDetails(details map[string]interface{}) *RuleTreeError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var treeErr *RuleTreeError
	if errors.As(err, &treeErr) {
		return treeErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a RuleTreeError
func GetErrorCode(err error) ErrorCode {
	var treeErr *RuleTreeError
	if errors.As(err, &treeErr) {
		return treeErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a RuleTreeError
func GetErrorDetails(err error) map[string]interface{} {
	var treeErr *RuleTreeError
	if errors.As(err, &treeErr) {
		return treeErr.Details
	}
	return nil
}
