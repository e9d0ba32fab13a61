package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"homefinder-listings/internal/auth"
	"homefinder-listings/internal/repositories"
	"homefinder-listings/internal/validators"
	"homefinder-listings/pkg/storage"

	"github.com/stretchr/testify/assert"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"property not found", fmt.Errorf("get: %w", repositories.ErrPropertyNotFound), http.StatusNotFound, ErrCodePropertyNotFound},
		{"contact not found", repositories.ErrContactNotFound, http.StatusNotFound, ErrCodeContactNotFound},
		{"validation", &validators.ValidationError{Fields: map[string]string{"zip": "zip must be exactly 6 digits"}}, http.StatusBadRequest, ErrCodeValidation},
		{"email taken", repositories.ErrEmailTaken, http.StatusConflict, ErrCodeEmailTaken},
		{"bad credentials", auth.ErrInvalidCredentials, http.StatusUnauthorized, ErrCodeUnauthorized},
		{"bad token", fmt.Errorf("%w: expired", auth.ErrInvalidToken), http.StatusUnauthorized, ErrCodeUnauthorized},
		{"upload", fmt.Errorf("%w: a.gif", storage.ErrUnsupportedType), http.StatusBadRequest, ErrCodeInvalidUpload},
		{"too many images", ErrTooManyImages, http.StatusBadRequest, ErrCodeTooManyImages},
		{"timeout", context.DeadlineExceeded, http.StatusServiceUnavailable, ErrCodeServiceUnavailable},
		{"unknown", stderrors.New("boom"), http.StatusInternalServerError, ErrCodeInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appErr := MapError(tt.err)
			assert.Equal(t, tt.status, appErr.HTTPStatus)
			assert.Equal(t, tt.code, appErr.Code)
			assert.ErrorIs(t, appErr, tt.err)
		})
	}

	assert.Nil(t, MapError(nil))
}

func TestMapErrorKeepsAppError(t *testing.T) {
	original := InvalidParameter("id is not a number", nil)
	assert.Same(t, original, MapError(fmt.Errorf("wrapped: %w", original)))
}

func TestNotFoundMessageMatchesEnvelope(t *testing.T) {
	assert.Equal(t, "Property not found", MapError(repositories.ErrPropertyNotFound).UserMessage)
	assert.Equal(t, "Contact not found", MapError(repositories.ErrContactNotFound).UserMessage)
}

func TestIsTransient(t *testing.T) {
	assert.True(t, IsTransient(stderrors.New("dial tcp: connection refused")))
	assert.True(t, IsTransient(NewAppError("", MsgServiceUnavailable, ErrCodeServiceUnavailable, http.StatusServiceUnavailable, nil)))
	assert.False(t, IsTransient(MapError(repositories.ErrPropertyNotFound)))
	assert.False(t, IsTransient(context.Canceled))
	assert.False(t, IsTransient(nil))
}
