package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tsgrep/tree-sitter-grep/internal/validate"
)

func TestCaptureName(t *testing.T) {
	valid := []string{"name", "func.body", "inner-match", "_private", "a1"}
	for _, v := range valid {
		assert.NoErrorf(t, validate.CaptureName(v), "expected %q to be valid", v)
	}

	invalid := []string{"", "1name", "has space", "weird@char"}
	for _, v := range invalid {
		err := validate.CaptureName(v)
		assert.Errorf(t, err, "expected %q to be invalid", v)
		assert.ErrorIs(t, err, validate.ErrInvalidCapture)
	}
}

func TestColorSpecShape(t *testing.T) {
	parts, err := validate.ColorSpecShape("match:fg:red")
	assert.NoError(t, err)
	assert.Equal(t, [3]string{"match", "fg", "red"}, parts)

	_, err = validate.ColorSpecShape("match:fg")
	assert.ErrorIs(t, err, validate.ErrInvalidColorSpec)
}

func TestColorSpecType(t *testing.T) {
	assert.NoError(t, validate.ColorSpecType("path"))
	assert.NoError(t, validate.ColorSpecType("match"))
	assert.ErrorIs(t, validate.ColorSpecType("bogus"), validate.ErrInvalidColorSpec)
}

func TestColorSpecAttribute(t *testing.T) {
	assert.NoError(t, validate.ColorSpecAttribute("fg"))
	assert.ErrorIs(t, validate.ColorSpecAttribute("bogus"), validate.ErrInvalidColorSpec)
}
