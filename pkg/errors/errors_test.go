package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(NewNotFoundError("gone")))
	assert.False(t, IsNotFound(NewInternalError("boom", nil)))
	assert.False(t, IsNotFound(errors.New("plain")))
	assert.False(t, IsNotFound(nil))
}

func TestIsNotFoundSeesWrappedErrors(t *testing.T) {
	wrapped := fmt.Errorf("resolving pathway: %w", NewNotFoundError("no procedure"))
	assert.True(t, IsNotFound(wrapped))
}

func TestAppErrorMessage(t *testing.T) {
	err := NewMalformedDataError("bad reference data", errors.New("unexpected token"))
	assert.Equal(t, ErrorTypeValidation, err.Type)
	assert.Contains(t, err.Error(), "bad reference data")
	assert.Contains(t, err.Error(), "unexpected token")

	assert.Equal(t, "NOT_FOUND: gone", NewNotFoundError("gone").Error())
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewInternalError("query failed", cause)
	assert.ErrorIs(t, err, cause)
}
