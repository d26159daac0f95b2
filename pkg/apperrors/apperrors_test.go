package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMessage(t *testing.T) {
	plain := New(CodeNotFound, "no progress found for date %s", "2025-03-01")
	assert.Equal(t, "no progress found for date 2025-03-01", plain.Error())

	cause := errors.New("connection reset")
	wrapped := Wrap(CodeOperationFailed, cause, "failed to update goal")
	assert.Equal(t, "failed to update goal: connection reset", wrapped.Error())
	assert.Equal(t, cause, errors.Unwrap(wrapped))
}

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Code
	}{
		{"tagged", New(CodeValidationFailed, "title is required"), CodeValidationFailed},
		{"wrapped deeper", fmt.Errorf("outer: %w", New(CodeNotFound, "gone")), CodeNotFound},
		{"untagged", errors.New("boom"), CodeUnknown},
		{"nil", nil, CodeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CodeOf(tt.err))
		})
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		code Code
		want int
	}{
		{CodeAuthRequired, http.StatusUnauthorized},
		{CodeValidationFailed, http.StatusUnprocessableEntity},
		{CodeNotFound, http.StatusNotFound},
		{CodeOperationFailed, http.StatusInternalServerError},
		{CodeUnknown, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(New(tt.code, "x")))
		})
	}

	require.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("untagged")))
}

func TestIsCode(t *testing.T) {
	err := Wrap(CodeAuthRequired, errors.New("expired"), "token rejected")
	assert.True(t, IsCode(err, CodeAuthRequired))
	assert.False(t, IsCode(err, CodeNotFound))
}
