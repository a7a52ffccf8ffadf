package walker

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatcherHonorsGitignore(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ".gitignore"), []byte("vendor/\n*.log\n"), 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "vendor"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "src"), 0755))

	m := newMatcher(root, false)

	assert.True(t, m.SkipDir(filepath.Join(root, "vendor"), "vendor"))
	assert.False(t, m.SkipDir(filepath.Join(root, "src"), "src"))
	assert.True(t, m.SkipFile(filepath.Join(root, "debug.log"), "debug.log"))
	assert.False(t, m.SkipFile(filepath.Join(root, "src", "main.go"), "main.go"))
}

func TestMatcherSkipsHiddenWhenConfigured(t *testing.T) {
	root := t.TempDir()
	m := newMatcher(root, true)

	assert.True(t, m.SkipDir(filepath.Join(root, ".git"), ".git"))
	assert.True(t, m.SkipFile(filepath.Join(root, ".env"), ".env"))
	assert.False(t, m.SkipFile(filepath.Join(root, "main.go"), "main.go"))
}

func TestMatcherAlwaysSkipsGitDir(t *testing.T) {
	root := t.TempDir()
	m := newMatcher(root, false)
	assert.True(t, m.SkipDir(filepath.Join(root, ".git"), ".git"))
}
