//go:build windows

// path_windows.go provides Windows-specific path display formatting.
//
// On Windows backslash is itself a native separator, so both "/" and "\" are
// candidates for substitution.

package path

import "strings"

// Display rewrites the separators in p for output. An empty sep is a no-op;
// otherwise every "/" and "\" is replaced with sep.
func Display(p, sep string) string {
	if sep == "" {
		return p
	}
	p = strings.ReplaceAll(p, "\\", sep)
	p = strings.ReplaceAll(p, "/", sep)
	return p
}
