package query_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsgrep/tree-sitter-grep/internal/lang"
	"github.com/tsgrep/tree-sitter-grep/internal/query"
)

func TestNew_DefaultsToFirstCapture(t *testing.T) {
	qc, err := query.New("(function_declaration name: (identifier) @name) @decl", lang.Go, "", nil)
	require.NoError(t, err)
	defer qc.Close()

	assert.Equal(t, "name", qc.CaptureName)
	assert.Equal(t, uint32(0), qc.CaptureIndex)
}

func TestNew_SelectsNamedCapture(t *testing.T) {
	qc, err := query.New("(function_declaration name: (identifier) @name) @decl", lang.Go, "decl", nil)
	require.NoError(t, err)
	defer qc.Close()

	assert.Equal(t, "decl", qc.CaptureName)
	assert.Equal(t, uint32(1), qc.CaptureIndex)
}

func TestNew_UnknownCaptureNameFails(t *testing.T) {
	_, err := query.New("(function_declaration) @f", lang.Go, "nope", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, query.ErrCaptureNotFound))
}

func TestNew_InvalidQuerySyntaxFails(t *testing.T) {
	_, err := query.New("(((", lang.Go, "", nil)
	require.Error(t, err)
}
