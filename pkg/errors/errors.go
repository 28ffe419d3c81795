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
	ErrorTypeNetwork ErrorType = "network"
	ErrorTypeTimeout ErrorType = "timeout"

	// Authentication errors
	ErrorTypeAuth             ErrorType = "auth"
	ErrorTypeNotAuthenticated ErrorType = "not_authenticated"

	// Upload validation errors
	ErrorTypeInvalidFileType ErrorType = "invalid_file_type"
	ErrorTypeFileTooLarge    ErrorType = "file_too_large"
	ErrorTypeFileNotFound    ErrorType = "file_not_found"
	ErrorTypeRead            ErrorType = "read"

	// Upload submission errors
	ErrorTypeUploadService     ErrorType = "upload_service"
	ErrorTypeMalformedResponse ErrorType = "malformed_response"
	ErrorTypeProfileUpdate     ErrorType = "profile_update"

	// Server errors
	ErrorTypeServer   ErrorType = "server"
	ErrorTypeNotFound ErrorType = "not_found"

	// Unknown errors
	ErrorTypeUnknown ErrorType = "unknown"
)

// CLIError represents a structured error with context
type CLIError struct {
	Type       ErrorType
	Message    string
	Cause      error
	Suggestion string
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

// TypeOf returns the error type of err, or ErrorTypeUnknown
func TypeOf(err error) ErrorType {
	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		return cliErr.Type
	}
	return ErrorTypeUnknown
}

// NotAuthenticatedError creates an error for a missing user identity
func NotAuthenticatedError() *CLIError {
	err := NewCLIError(ErrorTypeNotAuthenticated, "not authenticated", nil)
	err.Suggestion = "Run 'perch-cli auth login' to sign in."
	return err
}

// InvalidFileTypeError creates an error for a non-image file
func InvalidFileTypeError(contentType string) *CLIError {
	err := NewCLIError(ErrorTypeInvalidFileType,
		fmt.Sprintf("not an image file: %s", contentType), nil)
	err.Suggestion = "Pick a PNG, JPEG, GIF or WebP file and try again."
	return err
}

// FileTooLargeError creates an error for an oversized file
func FileTooLargeError(size, max int64) *CLIError {
	err := NewCLIError(ErrorTypeFileTooLarge,
		fmt.Sprintf("file too large: %d bytes (max: %d bytes)", size, max), nil)
	err.Suggestion = fmt.Sprintf("Resize the image to under %d MB and try again.", max/(1024*1024))
	return err
}

// FileNotFoundError creates a file not found error
func FileNotFoundError(path string) *CLIError {
	err := NewCLIError(ErrorTypeFileNotFound, fmt.Sprintf("file not found: %s", path), nil)
	err.Suggestion = "Check the file path and try again."
	return err
}

// ReadError creates an error for a failed file read
func ReadError(cause error) *CLIError {
	return NewCLIError(ErrorTypeRead, "could not read file", cause)
}

// UploadServiceError creates an error carrying the service-reported message
func UploadServiceError(cause error) *CLIError {
	msg := "upload service error"
	if cause != nil {
		msg = cause.Error()
	}
	err := NewCLIError(ErrorTypeUploadService, msg, cause)
	err.Suggestion = "The upload service rejected the request. Try again in a moment."
	return err
}

// MalformedResponseError creates an error for a response missing the public URL
func MalformedResponseError() *CLIError {
	return NewCLIError(ErrorTypeMalformedResponse,
		"upload service returned no public URL", nil)
}

// ProfileUpdateError creates an error for a failed profile update after upload
func ProfileUpdateError(cause error) *CLIError {
	err := NewCLIError(ErrorTypeProfileUpdate, "image stored but profile update failed", cause)
	err.Suggestion = "The image was uploaded. Run 'perch-cli profile view' to check your profile state."
	return err
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
	err.Suggestion = "Try logging in again with 'perch-cli auth login'"
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
	return NewCLIError(ErrorTypeNotFound,
		fmt.Sprintf("%s not found: %s", resourceType, identifier), nil)
}

// CategorizeError converts a standard error into a CLIError
func CategorizeError(err error) *CLIError {
	if err == nil {
		return nil
	}

	// Check if it's already a CLIError
	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		return cliErr
	}

	// Categorize based on error message
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
	case strings.Contains(errMsg, "404") || strings.Contains(errMsg, "not found"):
		return NotFoundError("Resource", "unknown")
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

	return sb.String()
}
