package treesitter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsgrep/tree-sitter-grep/internal/lang"
	"github.com/tsgrep/tree-sitter-grep/internal/query"
	"github.com/tsgrep/tree-sitter-grep/internal/treesitter"
)

const goSource = `package sample

func One() {}

func Two() {}
`

func TestMatches_ReturnsRangesInDocumentOrder(t *testing.T) {
	qc, err := query.New("(function_declaration) @f", lang.Go, "", nil)
	require.NoError(t, err)
	defer qc.Close()

	ranges, err := treesitter.Matches([]byte(goSource), qc)
	require.NoError(t, err)
	require.Len(t, ranges, 2)

	assert.Less(t, ranges[0].Start, ranges[1].Start)
	assert.Equal(t, "func One() {}", goSource[ranges[0].Start:ranges[0].End])
	assert.Equal(t, "func Two() {}", goSource[ranges[1].Start:ranges[1].End])
}

func TestMatches_SelectsNamedCapture(t *testing.T) {
	qc, err := query.New("(function_declaration name: (identifier) @name) @decl", lang.Go, "name", nil)
	require.NoError(t, err)
	defer qc.Close()

	ranges, err := treesitter.Matches([]byte(goSource), qc)
	require.NoError(t, err)
	require.Len(t, ranges, 2)
	assert.Equal(t, "One", goSource[ranges[0].Start:ranges[0].End])
	assert.Equal(t, "Two", goSource[ranges[1].Start:ranges[1].End])
}

func TestMatches_NoMatchesReturnsEmpty(t *testing.T) {
	qc, err := query.New("(import_declaration) @i", lang.Go, "", nil)
	require.NoError(t, err)
	defer qc.Close()

	ranges, err := treesitter.Matches([]byte(goSource), qc)
	require.NoError(t, err)
	assert.Empty(t, ranges)
}
