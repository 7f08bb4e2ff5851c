package utils

import (
	"fmt"
	"net/http"
)

// Error names carried in the response envelope. InvalidPromo deliberately
// masks "not found", "expired", "not yet valid" and "exhausted" behind one
// user-facing condition; the handlers log the real reason.
const (
	ErrNameNotFound        = "NOT_FOUND"
	ErrNameInvalidPromo    = "INVALID_PROMO"
	ErrNameInvalidArgument = "BAD_REQUEST"
	ErrNameValidation      = "VALIDATION_ERROR"
	ErrNameStorage         = "SERVER_ERROR"
	ErrNameConflict        = "CONFLICT"
)

// AppError represents an application error
type AppError struct {
	Code    int    `json:"code"`
	Name    string `json:"name"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap implements the unwrap interface
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError
func NewAppError(code int, name, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Name:    name,
		Message: message,
		Err:     err,
	}
}

// NotFoundError creates a 404 Not Found error
func NotFoundError(message string) *AppError {
	return NewAppError(http.StatusNotFound, ErrNameNotFound, message, nil)
}

// InvalidPromoError creates a 400 error with the generic promo message.
func InvalidPromoError() *AppError {
	return NewAppError(http.StatusBadRequest, ErrNameInvalidPromo, "The promo code is invalid.", nil)
}

// InvalidPromoMinPurchaseError creates the single distinct promo failure.
func InvalidPromoMinPurchaseError() *AppError {
	return NewAppError(http.StatusBadRequest, ErrNameInvalidPromo, "Minimum purchase amount not met", nil)
}

// InvalidArgumentError creates a 400 Bad Request error
func InvalidArgumentError(message string) *AppError {
	return NewAppError(http.StatusBadRequest, ErrNameInvalidArgument, message, nil)
}

// StorageError wraps a persistence failure as a 500
func StorageError(message string, err error) *AppError {
	return NewAppError(http.StatusInternalServerError, ErrNameStorage, message, err)
}

// ConflictError creates a 409 Conflict error
func ConflictError(message string) *AppError {
	return NewAppError(http.StatusConflict, ErrNameConflict, message, nil)
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	_, ok := err.(*AppError)
	return ok
}

// GetAppError returns the AppError if the error is an AppError
func GetAppError(err error) *AppError {
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	return nil
}

// IsNotFoundError checks if an error is a "not found" error
func IsNotFoundError(err error) bool {
	if appErr := GetAppError(err); appErr != nil {
		return appErr.Code == http.StatusNotFound
	}
	return false
}

// IsInvalidPromoError checks if an error is a promo application failure
func IsInvalidPromoError(err error) bool {
	if appErr := GetAppError(err); appErr != nil {
		return appErr.Name == ErrNameInvalidPromo
	}
	return false
}

// WrapError wraps an error with additional context
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
