package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsgrep/tree-sitter-grep/internal/config"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}

func TestAccessors_FallBackToDefaultsWhenUnset(t *testing.T) {
	cfg := &config.Config{}
	assert.Equal(t, config.DefaultBeforeContext, cfg.BeforeContext())
	assert.Equal(t, config.DefaultAfterContext, cfg.AfterContext())
	assert.Equal(t, config.DefaultMaxColumns, cfg.MaxColumns())
	assert.Equal(t, config.DefaultHeapLimit, cfg.HeapLimit())
	assert.Equal(t, "", cfg.Language())
	assert.Equal(t, "", cfg.ColorChoice())
	v, ok := cfg.Heading()
	assert.False(t, ok)
	assert.False(t, v)
}

func TestValidate_RejectsOutOfRangeContext(t *testing.T) {
	bad := -1
	cfg := &config.Config{Defaults: config.Defaults{BeforeContext: &bad}}
	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrInvalidValue)
}

func TestValidate_RejectsNegativeHeapLimit(t *testing.T) {
	neg := int64(-1)
	cfg := &config.Config{Limits: config.Limits{HeapLimit: &neg}}
	assert.ErrorIs(t, cfg.Validate(), config.ErrInvalidValue)
}

func TestLoadScope_MissingFileReturnsEmptyConfig(t *testing.T) {
	chdir(t, t.TempDir())
	cfg, err := config.LoadScope(config.ScopeLocal)
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.BeforeContext())
}

func TestSaveThenLoad_RoundTripsDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	before := 2
	cfg := &config.Config{Defaults: config.Defaults{BeforeContext: &before}}
	require.NoError(t, cfg.SaveScope(config.ScopeLocal))

	_, err := os.Stat(filepath.Join(".", config.LocalPath()))
	require.NoError(t, err)

	loaded, err := config.LoadScope(config.ScopeLocal)
	require.NoError(t, err)
	assert.Equal(t, 2, loaded.BeforeContext())
}

func TestLoadScope_MalformedYAMLFails(t *testing.T) {
	chdir(t, t.TempDir())
	require.NoError(t, os.WriteFile(config.LocalPath(), []byte("defaults: [this is not a mapping"), 0o644))

	_, err := config.LoadScope(config.ScopeLocal)
	assert.Error(t, err)
}
