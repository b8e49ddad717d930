package errors

import (
	stderrors "errors"
	"fmt"
)

// Error codes
const (
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeValidation         = "VALIDATION_ERROR"
	ErrCodeInternal           = "INTERNAL_ERROR"
	ErrCodeForbidden          = "FORBIDDEN"
	ErrCodeInvalidPuzzle      = "INVALID_PUZZLE"
	ErrCodeAlreadyGuessed     = "ALREADY_GUESSED"
	ErrCodeDifficultyConflict = "DIFFICULTY_CONFLICT"
	ErrCodePersistenceCorrupt = "PERSISTENCE_CORRUPT"
	ErrCodeInvalidState       = "INVALID_STATE"
)

// AppError represents an application error with an HTTP-style status and error code
type AppError struct {
	Code    string // Error code (e.g., "NOT_FOUND", "ALREADY_GUESSED")
	Message string // Human-readable error message
	Status  int    // HTTP status code
	Err     error  // Wrapped underlying error (optional)
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for error wrapping support
func (e *AppError) Unwrap() error {
	return e.Err
}

// IsCode reports whether err is (or wraps) an AppError with the given code.
func IsCode(err error, code string) bool {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// NewNotFoundError creates a new NOT_FOUND error
func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s not found: %v", resource, id),
		Status:  404,
	}
}

// NewValidationError creates a new VALIDATION_ERROR
func NewValidationError(field string, reason string) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: fmt.Sprintf("validation failed for %s: %s", field, reason),
		Status:  400,
	}
}

// NewInternalError creates a new INTERNAL_ERROR
func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: "internal server error",
		Status:  500,
		Err:     err,
	}
}

// NewForbiddenError creates a new FORBIDDEN error
func NewForbiddenError(path string) *AppError {
	return &AppError{
		Code:    ErrCodeForbidden,
		Message: fmt.Sprintf("access outside web root: %s", path),
		Status:  403,
	}
}

// NewInvalidPuzzleError reports a puzzle that cannot be played.
func NewInvalidPuzzleError(dayNumber int, reason string) *AppError {
	return &AppError{
		Code:    ErrCodeInvalidPuzzle,
		Message: fmt.Sprintf("puzzle for day %d is invalid: %s", dayNumber, reason),
		Status:  422,
	}
}

// NewAlreadyGuessedError reports a placement rejected by the incorrectness memory.
// Display is the target's display identity.
func NewAlreadyGuessedError(display string, tile int) *AppError {
	return &AppError{
		Code:    ErrCodeAlreadyGuessed,
		Message: fmt.Sprintf("%q was already guessed on tile %d", display, tile+1),
		Status:  409,
	}
}

// NewDifficultyConflictError creates a new DIFFICULTY_CONFLICT error
func NewDifficultyConflictError(message string) *AppError {
	return &AppError{
		Code:    ErrCodeDifficultyConflict,
		Message: message,
		Status:  409,
	}
}

// NewPersistenceCorruptError wraps a decode failure of a stored record.
func NewPersistenceCorruptError(record string, err error) *AppError {
	return &AppError{
		Code:    ErrCodePersistenceCorrupt,
		Message: fmt.Sprintf("stored %s is unreadable", record),
		Status:  500,
		Err:     err,
	}
}

// NewInvalidStateError reports a command issued in a state that does not accept it.
func NewInvalidStateError(command, state string) *AppError {
	return &AppError{
		Code:    ErrCodeInvalidState,
		Message: fmt.Sprintf("%s is not allowed while %s", command, state),
		Status:  409,
	}
}
