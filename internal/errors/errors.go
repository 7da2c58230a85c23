// Package errors provides unified error handling across the ascii-frog system.
//
// SYSTEM ARCHITECTURE ROLE:
// This module is the foundation for error handling across all interfaces (CLI, HTTP, TUI).
// It standardizes error representation, categorization, and handling patterns so that a
// missing template looks the same whether it surfaced from a JSON request or a terminal.
//
// KEY RESPONSIBILITIES:
// - Define standardized error codes and categories for consistent error identification
// - Provide the structured AppError type with severity levels and context
// - Expose NotFoundError(entityKind, id), the one error kind the rendering core raises
// - Enable interface-specific formatting while keeping the core error data identical
//
// INTEGRATION POINTS:
// - internal/storage/store.go: Get() on both stores returns NotFoundError for unknown ids
// - internal/service/service.go: attaches "did you mean" details to NotFoundErrors
// - internal/commands/types.go: CommandExecutor converts errors to ErrorInfo
// - internal/api/server.go: HTTPErrorHandler maps AppErrors to HTTP status codes and JSON
// - internal/cli: CLIErrorHandler formats AppErrors for terminal display
// - internal/ui/model.go: TUIErrorHandler provides the status line styling
// - internal/validation/validator.go: ValidationResult.ToAppError() converts validation failures
//
// USAGE PATTERNS:
// - Create errors: use constructors like NotFoundError(), ValidationError()
// - Wrap errors: use Wrap() to add a code to an existing error
// - Check types: use IsNotFound() and GetAppError(), both errors.As based
package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// ErrorCode represents standardized error codes
type ErrorCode string

const (
	// Validation errors
	ErrCodeValidation    ErrorCode = "VALIDATION_ERROR"
	ErrCodeInvalidInput  ErrorCode = "INVALID_INPUT"
	ErrCodeMissingField  ErrorCode = "MISSING_FIELD"
	ErrCodeInvalidFormat ErrorCode = "INVALID_FORMAT"

	// Service errors
	ErrCodeInternalError    ErrorCode = "INTERNAL_ERROR"
	ErrCodeNotImplemented   ErrorCode = "NOT_IMPLEMENTED"
	ErrCodeMethodNotAllowed ErrorCode = "METHOD_NOT_ALLOWED"
	ErrCodeRouteNotFound    ErrorCode = "ROUTE_NOT_FOUND"

	// Resource errors
	ErrCodeNotFound      ErrorCode = "NOT_FOUND"
	ErrCodeAlreadyExists ErrorCode = "ALREADY_EXISTS"

	// Catalog errors
	ErrCodeCatalogInvalid ErrorCode = "CATALOG_INVALID"
	ErrCodeFileNotFound   ErrorCode = "FILE_NOT_FOUND"

	// Command errors
	ErrCodeCommandNotFound ErrorCode = "COMMAND_NOT_FOUND"
	ErrCodeCommandFailed   ErrorCode = "COMMAND_FAILED"

	// Host integration errors
	ErrCodeClipboardUnavailable ErrorCode = "CLIPBOARD_UNAVAILABLE"
)

// ErrorSeverity represents the severity level of an error
type ErrorSeverity string

const (
	SeverityInfo     ErrorSeverity = "info"
	SeverityWarning  ErrorSeverity = "warning"
	SeverityError    ErrorSeverity = "error"
	SeverityCritical ErrorSeverity = "critical"
)

// ErrorCategory represents the category of an error
type ErrorCategory string

const (
	CategoryValidation ErrorCategory = "validation"
	CategoryService    ErrorCategory = "service"
	CategoryCatalog    ErrorCategory = "catalog"
	CategoryCommand    ErrorCategory = "command"
	CategorySystem     ErrorCategory = "system"
)

// AppError represents a standardized application error
type AppError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Severity  ErrorSeverity          `json:"severity"`
	Category  ErrorCategory          `json:"category"`
	Cause     error                  `json:"-"`
	Context   map[string]interface{} `json:"context,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// WithDetails adds details to the error
func (e *AppError) WithDetails(details string) *AppError {
	e.Details = details
	return e
}

// NewAppError creates a new application error
func NewAppError(code ErrorCode, message string) *AppError {
	category, severity := categorizeError(code)
	return &AppError{
		Code:      code,
		Message:   message,
		Severity:  severity,
		Category:  category,
		Timestamp: time.Now(),
	}
}

// Wrap wraps an existing error with application error context
func Wrap(err error, code ErrorCode, message string) *AppError {
	appErr := NewAppError(code, message)
	appErr.Cause = err
	return appErr
}

// categorizeError determines the category and severity based on error code
func categorizeError(code ErrorCode) (ErrorCategory, ErrorSeverity) {
	switch code {
	case ErrCodeValidation, ErrCodeInvalidInput, ErrCodeMissingField, ErrCodeInvalidFormat:
		return CategoryValidation, SeverityWarning

	case ErrCodeInternalError:
		return CategoryService, SeverityCritical
	case ErrCodeNotImplemented, ErrCodeMethodNotAllowed, ErrCodeRouteNotFound:
		return CategoryService, SeverityInfo

	case ErrCodeNotFound:
		return CategoryService, SeverityInfo
	case ErrCodeAlreadyExists:
		return CategoryService, SeverityWarning

	case ErrCodeCatalogInvalid:
		return CategoryCatalog, SeverityError
	case ErrCodeFileNotFound:
		return CategoryCatalog, SeverityInfo

	case ErrCodeCommandNotFound:
		return CategoryCommand, SeverityInfo
	case ErrCodeCommandFailed:
		return CategoryCommand, SeverityError

	case ErrCodeClipboardUnavailable:
		return CategorySystem, SeverityWarning

	default:
		return CategorySystem, SeverityError
	}
}

// IsAppError checks if an error is, or wraps, an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// GetAppError extracts an AppError from an error chain, or converts it to one
func GetAppError(err error) *AppError {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, ErrCodeInternalError, "Internal error occurred")
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr) && appErr.Code == ErrCodeNotFound
}

// NotFoundError reports that no entity of kind entityKind has the given id.
// The id is always part of the message so callers never have to dig into the context.
func NotFoundError(entityKind, id string) *AppError {
	return NewAppError(ErrCodeNotFound, fmt.Sprintf("%s %q not found", entityKind, id)).
		WithContext("entity", entityKind).
		WithContext("id", id)
}

// Common error constructors for frequently used errors
func ValidationError(message string) *AppError {
	return NewAppError(ErrCodeValidation, message)
}

func AlreadyExistsError(entityKind, id string) *AppError {
	return NewAppError(ErrCodeAlreadyExists, fmt.Sprintf("%s %q already exists", entityKind, id)).
		WithContext("entity", entityKind).
		WithContext("id", id)
}

func InternalError(message string) *AppError {
	return NewAppError(ErrCodeInternalError, message)
}

func CatalogError(path string, err error) *AppError {
	return Wrap(err, ErrCodeCatalogInvalid, fmt.Sprintf("Catalog %s is invalid", path))
}

func CommandNotFoundError(command string) *AppError {
	return NewAppError(ErrCodeCommandNotFound, fmt.Sprintf("Command '%s' not found", command))
}

func MethodNotAllowedError(method, path string) *AppError {
	return NewAppError(ErrCodeMethodNotAllowed, fmt.Sprintf("Method %s not allowed on %s", method, path))
}

func RouteNotFoundError(path string) *AppError {
	return NewAppError(ErrCodeRouteNotFound, fmt.Sprintf("Route %s not found", path))
}

func ClipboardError(err error) *AppError {
	return Wrap(err, ErrCodeClipboardUnavailable, "Clipboard is not available")
}
