package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorType categorizes different error types
type ErrorType string

const (
	// Network errors
	ErrorTypeNetwork    ErrorType = "network"
	ErrorTypeTimeout    ErrorType = "timeout"
	ErrorTypeConnection ErrorType = "connection"
	ErrorTypeHTTP       ErrorType = "http"

	// Authentication errors
	ErrorTypeAuth           ErrorType = "auth"
	ErrorTypeUnauthorized   ErrorType = "unauthorized"
	ErrorTypeForbidden      ErrorType = "forbidden"
	ErrorTypeSessionExpired ErrorType = "session_expired"

	// Validation errors
	ErrorTypeValidation    ErrorType = "validation"
	ErrorTypeInvalidFormat ErrorType = "invalid_format"

	// Fetch/mutation errors surfaced by the collection engine
	ErrorTypeFetch    ErrorType = "fetch"
	ErrorTypeMutation ErrorType = "mutation"

	// Server errors
	ErrorTypeServer    ErrorType = "server"
	ErrorTypeNotFound  ErrorType = "not_found"
	ErrorTypeConflict  ErrorType = "conflict"
	ErrorTypeRateLimit ErrorType = "rate_limit"

	// Unknown errors
	ErrorTypeUnknown ErrorType = "unknown"
)

// CLIError represents a structured error with context
type CLIError struct {
	Type       ErrorType
	Message    string
	Cause      error
	Suggestion string
	StatusCode int
	RetryAfter int
}

// Error implements the error interface
func (e *CLIError) Error() string {
	return e.Message
}

// WithSuggestion adds a helpful suggestion to the error
func (e *CLIError) WithSuggestion(suggestion string) *CLIError {
	e.Suggestion = suggestion
	return e
}

// HasSuggestion returns true if the error has a suggestion
func (e *CLIError) HasSuggestion() bool {
	return e.Suggestion != ""
}

// Unwrap returns the underlying error
func (e *CLIError) Unwrap() error {
	return e.Cause
}

// NewCLIError creates a new CLI error
func NewCLIError(errorType ErrorType, message string, cause error) *CLIError {
	return &CLIError{
		Type:    errorType,
		Message: message,
		Cause:   cause,
	}
}

// NetworkError creates a network error
func NetworkError(message string) *CLIError {
	err := NewCLIError(ErrorTypeNetwork, message, nil)
	err.Suggestion = "Check your internet connection and try again."
	return err
}

// TimeoutError creates a timeout error
func TimeoutError() *CLIError {
	err := NewCLIError(ErrorTypeTimeout, "Request timed out", nil)
	err.Suggestion = "The server is taking too long to respond. Try again in a moment."
	return err
}

// AuthError creates an authentication error
func AuthError(message string) *CLIError {
	err := NewCLIError(ErrorTypeAuth, message, nil)
	err.Suggestion = "Try logging in again with 'studyverse auth login'"
	return err
}

// SessionExpiredError creates a session expired error
func SessionExpiredError() *CLIError {
	err := NewCLIError(ErrorTypeSessionExpired, "Your session has expired", nil)
	err.Suggestion = "Run 'studyverse auth login' to start a new session."
	return err
}

// UnauthorizedError creates an unauthorized error
func UnauthorizedError() *CLIError {
	err := NewCLIError(ErrorTypeUnauthorized, "You don't have permission to perform this action", nil)
	err.Suggestion = "Make sure you're logged in with an account that has the required permissions."
	return err
}

// ForbiddenError creates a forbidden error
func ForbiddenError() *CLIError {
	err := NewCLIError(ErrorTypeForbidden, "Access denied", nil)
	err.Suggestion = "Only group admins can perform this action."
	return err
}

// ValidationError creates a validation error
func ValidationError(field, reason string) *CLIError {
	message := fmt.Sprintf("Validation error: %s - %s", field, reason)
	return NewCLIError(ErrorTypeValidation, message, nil)
}

// FetchError creates a page-fetch error
func FetchError(message string, cause error) *CLIError {
	err := NewCLIError(ErrorTypeFetch, message, cause)
	err.Suggestion = "Refresh the list to retry."
	return err
}

// MutationError creates a create/delete/vote error
func MutationError(message string, cause error) *CLIError {
	err := NewCLIError(ErrorTypeMutation, message, cause)
	err.Suggestion = "Your change was not saved. Try again."
	return err
}

// ServerError creates a server error
func ServerError() *CLIError {
	err := NewCLIError(ErrorTypeServer, "Server error", nil)
	err.Suggestion = "The server encountered an error. Try again in a few moments."
	return err
}

// NotFoundError creates a not found error
func NotFoundError(resourceType, identifier string) *CLIError {
	err := NewCLIError(ErrorTypeNotFound,
		fmt.Sprintf("%s not found: %s", resourceType, identifier),
		nil)
	return err
}

// RateLimitError creates a rate limit error
func RateLimitError(retryAfter int) *CLIError {
	err := NewCLIError(ErrorTypeRateLimit,
		"Rate limit exceeded. Too many requests.",
		nil)
	err.RetryAfter = retryAfter
	err.Suggestion = fmt.Sprintf("Please wait %d seconds before trying again.", retryAfter)
	return err
}

// ConflictError creates a conflict error
func ConflictError(message string) *CLIError {
	err := NewCLIError(ErrorTypeConflict, message, nil)
	err.Suggestion = "This resource already exists. Try a different name or identifier."
	return err
}

// CategorizeError converts a standard error into a CLIError
func CategorizeError(err error) *CLIError {
	if err == nil {
		return nil
	}

	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		return cliErr
	}

	errMsg := err.Error()

	switch {
	case strings.Contains(errMsg, "connection refused"):
		return NetworkError("Could not connect to server. Make sure it's running.")
	case strings.Contains(errMsg, "timeout"):
		return TimeoutError()
	case strings.Contains(errMsg, "context deadline exceeded"):
		return TimeoutError()
	case strings.Contains(errMsg, "401") || strings.Contains(errMsg, "unauthorized"):
		return AuthError("Invalid credentials")
	case strings.Contains(errMsg, "403") || strings.Contains(errMsg, "forbidden"):
		return ForbiddenError()
	case strings.Contains(errMsg, "404") || strings.Contains(errMsg, "not found"):
		return NotFoundError("Resource", "unknown")
	case strings.Contains(errMsg, "429") || strings.Contains(errMsg, "rate limit"):
		return RateLimitError(60)
	case strings.Contains(errMsg, "500") || strings.Contains(errMsg, "server error"):
		return ServerError()
	default:
		return NewCLIError(ErrorTypeUnknown, errMsg, err)
	}
}

// FormatError returns a user-friendly error message
func FormatError(err error) string {
	if err == nil {
		return ""
	}

	cliErr := CategorizeError(err)
	var sb strings.Builder

	sb.WriteString("Error")
	if cliErr.Type != ErrorTypeUnknown {
		sb.WriteString(" (")
		sb.WriteString(string(cliErr.Type))
		sb.WriteString(")")
	}
	sb.WriteString(": ")
	sb.WriteString(cliErr.Message)
	sb.WriteString("\n")

	if cliErr.HasSuggestion() {
		sb.WriteString("\nSuggestion: ")
		sb.WriteString(cliErr.Suggestion)
		sb.WriteString("\n")
	}

	if cliErr.Type == ErrorTypeRateLimit && cliErr.RetryAfter > 0 {
		sb.WriteString("\nRetry in: ")
		sb.WriteString(fmt.Sprintf("%d seconds\n", cliErr.RetryAfter))
	}

	return sb.String()
}
