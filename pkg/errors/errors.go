package errors

import (
	"errors"
	"fmt"
	"net/http"
)

type AppError struct {
	Code    string
	Message string
	Status  int
	Err     error
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code string, message string, status int, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Status:  status,
		Err:     err,
	}
}

func NotFound(resource string, err error) *AppError {
	return &AppError{
		Code:    "NOT_FOUND",
		Message: fmt.Sprintf("%s not found", resource),
		Status:  http.StatusNotFound,
		Err:     err,
	}
}

func BadRequest(message string, err error) *AppError {
	return &AppError{
		Code:    "BAD_REQUEST",
		Message: message,
		Status:  http.StatusBadRequest,
		Err:     err,
	}
}

func Unauthorized(message string, err error) *AppError {
	return &AppError{
		Code:    "UNAUTHORIZED",
		Message: message,
		Status:  http.StatusUnauthorized,
		Err:     err,
	}
}

func Internal(message string, err error) *AppError {
	return &AppError{
		Code:    "INTERNAL_ERROR",
		Message: message,
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

func Is(err error, code string) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

func Forbidden(message string, err error) *AppError {
	return &AppError{
		Code:    "FORBIDDEN",
		Message: message,
		Status:  http.StatusForbidden,
		Err:     err,
	}
}

func ItemUnavailable(err error) *AppError {
	return &AppError{
		Code:    "ITEM_UNAVAILABLE",
		Message: "Food item is no longer available",
		Status:  http.StatusConflict,
		Err:     err,
	}
}

func OfferedItemUnavailable(err error) *AppError {
	return &AppError{
		Code:    "OFFERED_ITEM_UNAVAILABLE",
		Message: "Offered item is no longer available",
		Status:  http.StatusConflict,
		Err:     err,
	}
}

func InvalidTransition(from, to string) *AppError {
	return &AppError{
		Code:    "INVALID_TRANSITION",
		Message: fmt.Sprintf("Cannot change swap status from %s to %s", from, to),
		Status:  http.StatusConflict,
		Err:     nil,
	}
}

func NotCompleted(message string) *AppError {
	return &AppError{
		Code:    "NOT_COMPLETED",
		Message: message,
		Status:  http.StatusBadRequest,
		Err:     nil,
	}
}

func AlreadyReviewed(message string) *AppError {
	return &AppError{
		Code:    "ALREADY_REVIEWED",
		Message: message,
		Status:  http.StatusConflict,
		Err:     nil,
	}
}
