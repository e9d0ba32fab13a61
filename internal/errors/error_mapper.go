package errors

import (
	"context"
	stderrors "errors"
	"net/http"

	"homefinder-listings/internal/auth"
	"homefinder-listings/internal/repositories"
	"homefinder-listings/internal/validators"
	"homefinder-listings/pkg/storage"
)

// ErrTooManyImages is returned when an upload would exceed the per-property image limit.
var ErrTooManyImages = repositories.ErrTooManyImages

// MapError converts a technical error into a user-friendly AppError.
func MapError(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}

	technicalMessage := err.Error()
	newErr := func(userMessage, code string, status int) *AppError {
		return NewAppError(technicalMessage, userMessage, code, status, err)
	}

	var validationErr *validators.ValidationError
	switch {
	case stderrors.As(err, &validationErr):
		return newErr(validationErr.Error(), ErrCodeValidation, http.StatusBadRequest)
	case stderrors.Is(err, repositories.ErrPropertyNotFound):
		return newErr(MsgPropertyNotFound, ErrCodePropertyNotFound, http.StatusNotFound)
	case stderrors.Is(err, repositories.ErrContactNotFound):
		return newErr(MsgContactNotFound, ErrCodeContactNotFound, http.StatusNotFound)
	case stderrors.Is(err, repositories.ErrEmailTaken):
		return newErr(MsgEmailTaken, ErrCodeEmailTaken, http.StatusConflict)
	case stderrors.Is(err, auth.ErrInvalidCredentials), stderrors.Is(err, repositories.ErrUserNotFound):
		return newErr(MsgInvalidCredentials, ErrCodeUnauthorized, http.StatusUnauthorized)
	case stderrors.Is(err, auth.ErrInvalidToken):
		return newErr(MsgUnauthorized, ErrCodeUnauthorized, http.StatusUnauthorized)
	case stderrors.Is(err, ErrTooManyImages):
		return newErr(MsgTooManyImages, ErrCodeTooManyImages, http.StatusBadRequest)
	case stderrors.Is(err, storage.ErrUnsupportedType), stderrors.Is(err, storage.ErrFileTooLarge), stderrors.Is(err, storage.ErrEmptyFile):
		return newErr(MsgInvalidUpload, ErrCodeInvalidUpload, http.StatusBadRequest)
	case stderrors.Is(err, context.DeadlineExceeded):
		return newErr(MsgServiceUnavailable, ErrCodeServiceUnavailable, http.StatusServiceUnavailable)
	default:
		return newErr(MsgInternalError, ErrCodeInternal, http.StatusInternalServerError)
	}
}

// InvalidParameter reports a malformed path or query parameter.
func InvalidParameter(technicalMessage string, err error) *AppError {
	return NewAppError(technicalMessage, MsgInvalidParameters, ErrCodeInvalidParameters, http.StatusBadRequest, err)
}

// Unauthorized reports a missing or rejected credential.
func Unauthorized(technicalMessage string) *AppError {
	return NewAppError(technicalMessage, MsgUnauthorized, ErrCodeUnauthorized, http.StatusUnauthorized, nil)
}

// IsTransient reports whether err is the kind of failure a caller may answer
// from another source: service unavailability, server faults and anything
// that is not an AppError at all (network and decoding failures).
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	var appErr *AppError
	if !stderrors.As(err, &appErr) {
		return !stderrors.Is(err, context.Canceled)
	}
	return appErr.HTTPStatus >= http.StatusInternalServerError
}
