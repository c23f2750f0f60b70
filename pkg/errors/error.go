// Package errors provides structured error handling with typed error codes.
//
// Error codes are organized into categories:
//   - General errors (1-99): Unknown errors
//   - Configuration errors (100-199): Invalid warm-up, periods, multipliers, thresholds
//   - Data errors (200-299): Missing or non-numeric prices, misaligned tables, query failures
//   - Indicator errors (300-399): Indicator registration and calculation errors
//   - Signal engine errors (400-499): Simulation failures
//   - Validation errors (500-599): Lookahead bias findings
//   - Backtest errors (600-699): Backtesting engine errors
//   - Output errors (700-799): Signal table and result writing errors
//
// Usage:
//
//	// Create a new error
//	err := errors.New(errors.ErrCodeInvalidPeriod, "period must be positive")
//
//	// Create a formatted error
//	err := errors.Newf(errors.ErrCodeDataError, "bar %d has a non-numeric close", index)
//
//	// Wrap an existing error
//	err := errors.Wrap(errors.ErrCodeQueryFailed, "failed to execute query", originalErr)
//
//	// Check error class
//	if errors.IsDataError(err) { ... }
package errors

import (
	"errors"
	"fmt"
)

// Error represents a structured error with an error code and message.
type Error struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// New creates a new Error with the given code and message.
func New(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   nil,
	}
}

// Newf creates a new Error with the given code and formatted message.
func Newf(code ErrorCode, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   nil,
	}
}

// Wrap wraps an existing error with a new Error containing the given code and message.
func Wrap(code ErrorCode, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Wrapf wraps an existing error with a new Error containing the given code and formatted message.
func Wrapf(code ErrorCode, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Cause)
	}

	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether any error in err's chain matches target.
// This is a convenience wrapper around the standard errors.Is function.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
// This is a convenience wrapper around the standard errors.As function.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// GetCode extracts the ErrorCode from an error if it's an *Error type.
// Returns ErrCodeUnknown if the error is not an *Error type.
func GetCode(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}

	return ErrCodeUnknown
}

// HasCode checks if an error has a specific ErrorCode.
func HasCode(err error, code ErrorCode) bool {
	return GetCode(err) == code
}

// configurationCodes are the codes treated as a ConfigurationError.
var configurationCodes = map[ErrorCode]bool{
	ErrCodeConfigurationError: true,
	ErrCodeInvalidParameter:   true,
	ErrCodeInvalidPeriod:      true,
	ErrCodeInvalidMultiplier:  true,
	ErrCodeInvalidThreshold:   true,
	ErrCodeInvalidWarmup:      true,
	ErrCodeInvalidVersion:     true,
	ErrCodeMissingParameter:   true,
}

// dataCodes are the codes treated as a DataError.
var dataCodes = map[ErrorCode]bool{
	ErrCodeDataError:           true,
	ErrCodeMisalignedRows:      true,
	ErrCodeUnorderedTimestamps: true,
}

// NewConfigurationError creates a ConfigurationError with a formatted message.
func NewConfigurationError(format string, args ...any) *Error {
	return Newf(ErrCodeConfigurationError, format, args...)
}

// NewDataError creates a DataError with a formatted message.
func NewDataError(format string, args ...any) *Error {
	return Newf(ErrCodeDataError, format, args...)
}

// IsConfigurationError reports whether any *Error in the chain carries a configuration code.
func IsConfigurationError(err error) bool {
	return hasCodeIn(err, configurationCodes)
}

// IsDataError reports whether any *Error in the chain carries a data code.
func IsDataError(err error) bool {
	return hasCodeIn(err, dataCodes)
}

func hasCodeIn(err error, codes map[ErrorCode]bool) bool {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return false
		}

		if codes[e.Code] {
			return true
		}

		err = e.Cause
	}

	return false
}
