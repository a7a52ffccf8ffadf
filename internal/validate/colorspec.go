// Package validate provides input validation for the CLI's color-spec and
// query-capture surfaces.
//
// Design Decision: validation happens close to where a value first enters
// the run (flag parsing), not deep inside the printer, so a malformed
// --colors or --capture argument is reported as a FatalConfig error before
// any file is walked.
package validate

import (
	"fmt"
	"strings"
)

var colorSpecTypes = map[string]bool{
	"path":   true,
	"line":   true,
	"column": true,
	"match":  true,
}

var colorSpecAttrs = map[string]bool{
	"fg":    true,
	"bg":    true,
	"style": true,
}

// ColorSpecType validates the "type" component of a type:attr:value color
// spec (the part before the first colon).
func ColorSpecType(t string) error {
	if !colorSpecTypes[t] {
		return fmt.Errorf("%w: unrecognized type %q, expected one of path, line, column, match", ErrInvalidColorSpec, t)
	}
	return nil
}

// ColorSpecAttribute validates the "attr" component of a type:attr:value
// color spec.
func ColorSpecAttribute(a string) error {
	if !colorSpecAttrs[a] {
		return fmt.Errorf("%w: unrecognized attribute %q, expected one of fg, bg, style", ErrInvalidColorSpec, a)
	}
	return nil
}

// ColorSpecShape validates that a raw --colors argument has the
// type:attr:value shape before its pieces are individually validated.
func ColorSpecShape(spec string) ([3]string, error) {
	parts := strings.SplitN(spec, ":", 3)
	if len(parts) != 3 {
		return [3]string{}, fmt.Errorf("%w: %q must have the form type:attr:value", ErrInvalidColorSpec, spec)
	}
	return [3]string{parts[0], parts[1], parts[2]}, nil
}
