// AngelaMos | 2026
// errors.go

package core

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNotFound          = errors.New("resource not found")
	ErrDuplicateKey      = errors.New("duplicate key")
	ErrInvalidReference  = errors.New("referenced resource does not exist")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrForbidden         = errors.New("forbidden")
	ErrInvalidInput      = errors.New("invalid input")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrConflict          = errors.New("conflict")
	ErrTokenExpired      = errors.New("token expired")
	ErrTokenInvalid      = errors.New("token invalid")
	ErrFeatureDisabled   = errors.New("feature disabled")
)

type AppError struct {
	Err        error
	Message    string
	StatusCode int
	Code       string
	Details    any
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(err error, message string, status int, code string) *AppError {
	return &AppError{
		Err:        err,
		Message:    message,
		StatusCode: status,
		Code:       code,
	}
}

func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

func UnauthorizedError(message string) *AppError {
	if message == "" {
		message = "authentication required"
	}
	return NewAppError(ErrUnauthorized, message, http.StatusUnauthorized, "UNAUTHORIZED")
}

func ForbiddenError(message string) *AppError {
	if message == "" {
		message = "access denied"
	}
	return NewAppError(ErrForbidden, message, http.StatusForbidden, "FORBIDDEN")
}

func NotFoundError(resource string) *AppError {
	return NewAppError(
		ErrNotFound,
		fmt.Sprintf("%s not found", resource),
		http.StatusNotFound,
		"NOT_FOUND",
	)
}

func DuplicateError(field string) *AppError {
	return NewAppError(
		ErrDuplicateKey,
		fmt.Sprintf("%s already exists", field),
		http.StatusConflict,
		"DUPLICATE",
	)
}

func ValidationFailedError(details map[string]string) *AppError {
	appErr := NewAppError(
		ErrInvalidInput,
		"validation failed",
		http.StatusBadRequest,
		"VALIDATION_ERROR",
	)
	appErr.Details = details
	return appErr
}

func TokenExpiredError() *AppError {
	return NewAppError(ErrTokenExpired, "session expired", http.StatusUnauthorized, "TOKEN_EXPIRED")
}

func TokenInvalidError() *AppError {
	return NewAppError(ErrTokenInvalid, "invalid session", http.StatusUnauthorized, "TOKEN_INVALID")
}

func FeatureDisabledError(feature string) *AppError {
	return NewAppError(
		ErrFeatureDisabled,
		fmt.Sprintf("%s is not configured", feature),
		http.StatusServiceUnavailable,
		"FEATURE_DISABLED",
	)
}

// HandleError maps domain sentinel errors to their HTTP representation.
// Anything unrecognised becomes a logged 500.
func HandleError(w http.ResponseWriter, err error, resource string) {
	var appErr *AppError
	switch {
	case errors.As(err, &appErr):
		JSONError(w, appErr)
	case errors.Is(err, ErrNotFound):
		NotFound(w, resource)
	case errors.Is(err, ErrDuplicateKey):
		JSONError(w, DuplicateError(resource))
	case errors.Is(err, ErrInvalidReference):
		JSONError(w, NewAppError(
			err,
			"referenced resource does not exist",
			http.StatusBadRequest,
			"INVALID_REFERENCE",
		))
	case errors.Is(err, ErrInvalidTransition):
		JSONError(w, NewAppError(err, err.Error(), http.StatusConflict, "INVALID_TRANSITION"))
	case errors.Is(err, ErrConflict):
		JSONError(w, NewAppError(err, err.Error(), http.StatusConflict, "CONFLICT"))
	case errors.Is(err, ErrInvalidInput):
		BadRequest(w, err.Error())
	case errors.Is(err, ErrForbidden):
		Forbidden(w, "")
	case errors.Is(err, ErrUnauthorized):
		Unauthorized(w, "")
	case errors.Is(err, ErrFeatureDisabled):
		JSONError(w, NewAppError(err, err.Error(), http.StatusServiceUnavailable, "FEATURE_DISABLED"))
	default:
		InternalServerError(w, err)
	}
}
