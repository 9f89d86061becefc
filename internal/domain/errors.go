package domain

import (
	"errors"
	"fmt"
)

// Error types for domain-specific errors
type ErrorType string

const (
	ErrorTypeServiceUnavailable ErrorType = "service_unavailable"
	ErrorTypeRequestTimeout     ErrorType = "request_timeout"
	ErrorTypeInvalidResponse    ErrorType = "invalid_response"
	ErrorTypeAPI                ErrorType = "api"
	ErrorTypeExtraction         ErrorType = "extraction"
	ErrorTypeValidation         ErrorType = "validation"
	ErrorTypeConfig             ErrorType = "config"
	ErrorTypeIO                 ErrorType = "io"
)

// DomainError represents a domain-specific error with context
type DomainError struct {
	Type    ErrorType
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewError creates a new domain error
func NewError(errType ErrorType, message string, err error) *DomainError {
	return &DomainError{
		Type:    errType,
		Message: message,
		Err:     err,
	}
}

// IsType reports whether err is (or wraps) a DomainError of the given type.
func IsType(err error, errType ErrorType) bool {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Type == errType
	}
	return false
}

// Common error constructors
func ServiceUnavailableError(message string, err error) *DomainError {
	return NewError(ErrorTypeServiceUnavailable, message, err)
}

func RequestTimeoutError(message string, err error) *DomainError {
	return NewError(ErrorTypeRequestTimeout, message, err)
}

func InvalidResponseError(message string, err error) *DomainError {
	return NewError(ErrorTypeInvalidResponse, message, err)
}

func APIError(message string, err error) *DomainError {
	return NewError(ErrorTypeAPI, message, err)
}

func ExtractionError(message string, err error) *DomainError {
	return NewError(ErrorTypeExtraction, message, err)
}

func ValidationError(message string, err error) *DomainError {
	return NewError(ErrorTypeValidation, message, err)
}

func ConfigError(message string, err error) *DomainError {
	return NewError(ErrorTypeConfig, message, err)
}

func IOError(message string, err error) *DomainError {
	return NewError(ErrorTypeIO, message, err)
}
