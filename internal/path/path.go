// Package path formats filesystem paths for printer output.
//
// The searcher and walker work with the host's native paths throughout; this
// package is consulted only at the point a path is about to be written to the
// sink. It substitutes a user-configured separator for the path's native
// separator(s), matching the behaviour of grep-family tools whose
// path-separator option rewrites "/" (and, on Windows, "\") without
// otherwise touching the path.
//
// Platform-specific handling: Display is implemented separately for Windows
// and Unix systems (see path_windows.go, path_unix.go) because Unix treats
// backslash as an ordinary filename byte while Windows treats it as a second
// native separator.
package path

import "errors"

// ErrInvalid indicates an empty search path was given where one is required.
var ErrInvalid = errors.New("invalid path")
