package filterplugin

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_MissingLibraryFailsWithErrLoadFailed(t *testing.T) {
	_, err := Load("/nonexistent/path/to/filter.so", "")
	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrLoadFailed))
}

// newFakeFilter builds a Filter without dlopen, so the refcounting in
// Share/Close can be exercised without a real shared library.
func newFakeFilter() *Filter {
	refs := int32(1)
	return &Filter{
		handle:   0,
		filterer: func(uintptr) bool { return true },
		refs:     &refs,
	}
}

func TestShare_IncrementsRefcount(t *testing.T) {
	f := newFakeFilter()
	g := f.Share()
	assert.Equal(t, int32(2), *f.refs)
	assert.Same(t, f.refs, g.refs)
}

func TestClose_OnlyUnloadsOnLastReference(t *testing.T) {
	f := newFakeFilter()
	g := f.Share()

	// Closing a shared reference while another is outstanding must not try
	// to dlclose handle 0.
	if err := g.Close(); err != nil {
		t.Fatalf("closing a non-last reference should not dlclose: %v", err)
	}
	assert.Equal(t, int32(1), *f.refs)
}
