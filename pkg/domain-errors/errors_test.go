package domainerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasCodeThroughWrapping(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(cause, CodeInternal, "store unavailable")

	assert.True(t, HasCode(err, CodeInternal))
	assert.False(t, HasCode(err, CodeNotFound))
	assert.True(t, errors.Is(err, cause), "wrapped cause should survive")

	// A further fmt wrap must not hide the code.
	outer := fmt.Errorf("list listings: %w", err)
	assert.True(t, HasCode(outer, CodeInternal))
}

func TestCodeOfDefaultsToInternal(t *testing.T) {
	assert.Equal(t, CodeInternal, CodeOf(errors.New("plain")))
	assert.Equal(t, CodeNotFound, CodeOf(New(CodeNotFound, "listing not found")))
}

func TestValidationCollectsAllFields(t *testing.T) {
	var v Validation
	v.Add("title", "must not be blank")
	v.Add("phone", "must be in international format")

	err := v.Err()
	require.Error(t, err)

	fields := FieldsOf(err)
	require.Len(t, fields, 2)
	assert.Equal(t, "title", fields[0].Field)
	assert.Equal(t, "phone", fields[1].Field)

	// Validation errors carry CodeValidation for transport mapping.
	assert.True(t, HasCode(err, CodeValidation))
}

func TestValidationEmptyYieldsNil(t *testing.T) {
	var v Validation
	assert.True(t, v.Empty())
	assert.NoError(t, v.Err())
}
