package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tsgrep/tree-sitter-grep/internal/config"
)

func resetFlagState() {
	queryFile, queryText, captureName, languageTag = "", "", "", ""
	filterPath, filterArg = "", ""
	vimgrep, onlyMatching, byteOffset = false, false, false
	afterContext, beforeContext, bothContext = 0, 0, 0
	colorSpecs, colorChoice, pretty = nil, "auto", false
	heading, noHeading, withFilename, noFilename = false, false, false, false
}

func TestUsePaths(t *testing.T) {
	t.Run("defaults to working directory", func(t *testing.T) {
		assert.Equal(t, []string{"./"}, usePaths(nil))
	})
	t.Run("passes through explicit paths", func(t *testing.T) {
		assert.Equal(t, []string{"src/", "lib/"}, usePaths([]string{"src/", "lib/"}))
	})
}

func TestContexts(t *testing.T) {
	defer resetFlagState()

	t.Run("before and after independent", func(t *testing.T) {
		resetFlagState()
		beforeContext, afterContext = 2, 3
		before, after := contexts()
		assert.Equal(t, 2, before)
		assert.Equal(t, 3, after)
	})

	t.Run("context overrides both", func(t *testing.T) {
		resetFlagState()
		beforeContext, afterContext, bothContext = 1, 1, 5
		before, after := contexts()
		assert.Equal(t, 5, before)
		assert.Equal(t, 5, after)
	})
}

func TestVimgrepDerivedFlags(t *testing.T) {
	defer resetFlagState()
	resetFlagState()
	vimgrep = true
	assert.True(t, perMatch())
	assert.True(t, perMatchOneLine())
	assert.True(t, columnEnabled())
}

func TestResolveHeading(t *testing.T) {
	defer resetFlagState()

	t.Run("no-heading wins over everything", func(t *testing.T) {
		resetFlagState()
		noHeading, heading, pretty = true, true, true
		assert.False(t, resolveHeading(&config.Config{}))
	})

	t.Run("vimgrep disables heading", func(t *testing.T) {
		resetFlagState()
		vimgrep, heading = true, true
		assert.False(t, resolveHeading(&config.Config{}))
	})

	t.Run("heading flag turns it on", func(t *testing.T) {
		resetFlagState()
		heading = true
		assert.True(t, resolveHeading(&config.Config{}))
	})

	t.Run("pretty turns it on", func(t *testing.T) {
		resetFlagState()
		pretty = true
		assert.True(t, resolveHeading(&config.Config{}))
	})
}

func TestResolveWithFilename(t *testing.T) {
	defer resetFlagState()

	t.Run("no-filename wins", func(t *testing.T) {
		resetFlagState()
		noFilename, withFilename = true, true
		assert.False(t, resolveWithFilename([]string{"a", "b"}))
	})

	t.Run("multiple paths always show filename", func(t *testing.T) {
		resetFlagState()
		assert.True(t, resolveWithFilename([]string{"a", "b"}))
	})

	t.Run("with-filename flag forces it on for a single path", func(t *testing.T) {
		resetFlagState()
		withFilename = true
		assert.True(t, resolveWithFilename([]string{"a"}))
	})

	t.Run("vimgrep forces it on", func(t *testing.T) {
		resetFlagState()
		vimgrep = true
		assert.True(t, resolveWithFilename([]string{"a"}))
	})

	t.Run("single file path defaults to off", func(t *testing.T) {
		resetFlagState()
		assert.False(t, resolveWithFilename([]string{"flags.go"}))
	})

	t.Run("single directory path defaults to on", func(t *testing.T) {
		resetFlagState()
		assert.True(t, resolveWithFilename([]string{"."}))
	})
}

func TestFileSeparator(t *testing.T) {
	defer resetFlagState()

	t.Run("heading mode uses a blank line", func(t *testing.T) {
		resetFlagState()
		assert.Equal(t, []byte("\n"), fileSeparator(true))
	})

	t.Run("context configured without heading uses the context separator", func(t *testing.T) {
		resetFlagState()
		beforeContext = 2
		assert.Equal(t, []byte("--"), fileSeparator(false))
	})

	t.Run("no context, no heading means no separator", func(t *testing.T) {
		resetFlagState()
		assert.Nil(t, fileSeparator(false))
	})
}

func TestResolveColorChoice(t *testing.T) {
	defer resetFlagState()

	t.Run("pretty implies always", func(t *testing.T) {
		resetFlagState()
		pretty = true
		got := resolveColorChoice(rootCmd.Flags(), &config.Config{})
		assert.Equal(t, "always", got)
	})

	t.Run("vimgrep implies never absent explicit --color", func(t *testing.T) {
		resetFlagState()
		vimgrep = true
		got := resolveColorChoice(rootCmd.Flags(), &config.Config{})
		assert.Equal(t, "never", got)
	})
}

func TestUseColor(t *testing.T) {
	assert.True(t, useColor("always"))
	assert.True(t, useColor("ansi"))
	assert.False(t, useColor("never"))
}
