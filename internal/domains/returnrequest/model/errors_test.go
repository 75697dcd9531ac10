package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReturnErrorUnwrap(t *testing.T) {
	cause := errors.New("row not found")
	err := NewConfigurationError("settings missing", cause)
	assert.True(t, errors.Is(err, cause))

	assert.True(t, errors.Is(NewConflictError("abc"), ErrStatusConflict))
	assert.True(t, errors.Is(NewNotFoundError("abc"), ErrRequestNotFound))
}

func TestNewItemInputErrorCarriesIndex(t *testing.T) {
	err := NewItemInputError(ErrCodeMissingReason, "no reason", 2)

	var retErr *ReturnError
	assert.True(t, errors.As(err, &retErr))
	assert.Equal(t, KindInput, retErr.Kind)
	assert.Equal(t, ErrCodeMissingReason, retErr.Code)
	assert.Equal(t, 2, retErr.ItemIndex)
}

func TestNewInvalidTransitionError(t *testing.T) {
	err := NewInvalidTransitionError(StatusPackageVerified, StatusProcessing)

	var retErr *ReturnError
	assert.True(t, errors.As(err, &retErr))
	assert.Equal(t, KindPolicy, retErr.Kind)
	assert.Equal(t, ErrCodeInvalidTransition, retErr.Code)
	assert.Contains(t, retErr.Message, "packageVerified")
	assert.Contains(t, retErr.Message, "processing")
}
