// Package filterplugin loads a user-supplied shared library exposing a
// predicate over AST nodes.
//
// The ABI is deliberately small: a required `filterer` symbol and an
// optional `initialize` symbol. Loading uses the host's dynamic loader via
// purego (no cgo required), the same mechanism ecosystem tools reach for
// when they need dlopen/dlsym without a C toolchain.
package filterplugin

import (
	"errors"
	"fmt"
	"sync/atomic"
	"unsafe"

	"github.com/ebitengine/purego"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// Status is the result of calling a plugin's initialize hook.
type Status uint8

const (
	Succeeded      Status = 0
	MissingArgument Status = 1
	NotParseable   Status = 2
)

// ErrLoadFailed indicates the shared library could not be opened. Fatal to
// the run.
var ErrLoadFailed = errors.New("failed to load filter plugin")

// ErrMissingFilterer indicates the library has no `filterer` symbol.
var ErrMissingFilterer = errors.New("filter plugin is missing required symbol \"filterer\"")

// ErrMissingArgument is returned when initialize reports status 1.
var ErrMissingArgument = errors.New("filter expected argument")

// ErrArgumentNotParseable is returned when initialize reports status 2.
var ErrArgumentNotParseable = errors.New("could not parse filter argument")

// Filter is a loaded filter plugin. It keeps the underlying library mapped
// for as long as any Filter value referencing it exists; refs is a
// reference count so a Filter can be cheaply cloned per query.Context
// without reopening the library.
type Filter struct {
	handle   uintptr
	filterer func(nodePtr uintptr) bool
	refs     *int32
}

// Load opens path, optionally calls its initialize hook with arg, and binds
// the required filterer symbol. arg may be empty, which is passed to
// initialize as a nil C string (equivalent to "no argument given").
func Load(path string, arg string) (*Filter, error) {
	handle, err := purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrLoadFailed, path, err)
	}

	if sym, err := purego.Dlsym(handle, "initialize"); err == nil {
		var initialize func(argCstr uintptr) uint8
		purego.RegisterFunc(&initialize, sym)

		var argPtr uintptr
		if arg != "" {
			cstr := append([]byte(arg), 0)
			argPtr = uintptr(unsafe.Pointer(&cstr[0]))
		}

		switch Status(initialize(argPtr)) {
		case Succeeded:
		case MissingArgument:
			return nil, ErrMissingArgument
		case NotParseable:
			return nil, ErrArgumentNotParseable
		}
	}

	sym, err := purego.Dlsym(handle, "filterer")
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingFilterer, path)
	}

	var filterer func(nodePtr uintptr) bool
	purego.RegisterFunc(&filterer, sym)

	refs := int32(1)
	return &Filter{handle: handle, filterer: filterer, refs: &refs}, nil
}

// Share returns a new reference to the same loaded library. The library is
// only unmapped once every share has been Closed.
func (f *Filter) Share() *Filter {
	atomic.AddInt32(f.refs, 1)
	return &Filter{handle: f.handle, filterer: f.filterer, refs: f.refs}
}

// Call invokes the predicate against node. The node reference is only
// valid for the duration of the call, matching the ABI contract.
func (f *Filter) Call(node *sitter.Node) bool {
	return f.filterer(uintptr(unsafe.Pointer(node)))
}

// Close releases this reference. When the last reference is released the
// library is unmapped via dlclose.
func (f *Filter) Close() error {
	if atomic.AddInt32(f.refs, -1) > 0 {
		return nil
	}
	return purego.Dlclose(f.handle)
}
