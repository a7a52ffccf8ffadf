// Derived from the color-spec parsing in ripgrep's printer crate, adapted
// to build on fatih/color rather than termcolor.
package printer

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/tsgrep/tree-sitter-grep/internal/validate"
)

var namedColors = map[string]color.Attribute{
	"black":   color.FgBlack,
	"blue":    color.FgBlue,
	"green":   color.FgGreen,
	"red":     color.FgRed,
	"cyan":    color.FgCyan,
	"magenta": color.FgMagenta,
	"yellow":  color.FgYellow,
	"white":   color.FgWhite,
}

var namedBgColors = map[string]color.Attribute{
	"black":   color.BgBlack,
	"blue":    color.BgBlue,
	"green":   color.BgGreen,
	"red":     color.BgRed,
	"cyan":    color.BgCyan,
	"magenta": color.BgMagenta,
	"yellow":  color.BgYellow,
	"white":   color.BgWhite,
}

var namedStyles = map[string]color.Attribute{
	"bold":        color.Bold,
	"underline":   color.Underline,
	"intense":     color.Bold,
	"nobold":      0,
	"nounderline": 0,
	"nointense":   0,
}

// ColorSpecs holds the four fields a spec string can target. A nil *Spec
// means "print this field uncolored".
type ColorSpecs struct {
	Path    *Spec
	Line    *Spec
	Column  *Spec
	Matched *Spec
}

// Spec is an ordered set of SGR attributes accumulated from one or more
// "field:attr:value" specs targeting the same field.
type Spec struct {
	attrs []color.Attribute
}

func (s *Spec) color() *color.Color {
	if s == nil || len(s.attrs) == 0 {
		return nil
	}
	return color.New(s.attrs...)
}

// IsNone reports whether the spec carries no attributes at all.
func (s *Spec) IsNone() bool { return s == nil || len(s.attrs) == 0 }

// DefaultColorSpecs matches ripgrep's and tree-sitter-grep's built-in
// defaults: magenta paths, green line numbers, bold red matches.
func DefaultColorSpecs() ColorSpecs {
	return ColorSpecs{
		Path:    &Spec{attrs: []color.Attribute{color.FgMagenta}},
		Line:    &Spec{attrs: []color.Attribute{color.FgGreen}},
		Matched: &Spec{attrs: []color.Attribute{color.FgRed, color.Bold}},
	}
}

// ParseColorSpecs builds a ColorSpecs starting from the defaults and
// applying each "type:attr:value" spec string in order, matching the
// color_specs config list and repeated --colors flag.
func ParseColorSpecs(specs []string) (ColorSpecs, error) {
	cs := DefaultColorSpecs()
	for _, raw := range specs {
		if err := cs.apply(raw); err != nil {
			return cs, err
		}
	}
	return cs, nil
}

func (cs *ColorSpecs) apply(raw string) error {
	parts, err := validate.ColorSpecShape(raw)
	if err != nil {
		return err
	}
	field, attrKind, value := parts[0], parts[1], parts[2]

	if err := validate.ColorSpecType(field); err != nil {
		return err
	}
	if err := validate.ColorSpecAttribute(attrKind); err != nil {
		return err
	}

	target := cs.fieldFor(field)
	if strings.EqualFold(value, "none") {
		target.attrs = nil
		return nil
	}

	var attr color.Attribute
	var ok bool
	switch strings.ToLower(attrKind) {
	case "fg":
		attr, ok = namedColors[strings.ToLower(value)]
	case "bg":
		attr, ok = namedBgColors[strings.ToLower(value)]
	case "style":
		attr, ok = namedStyles[strings.ToLower(value)]
	}
	if !ok {
		return fmt.Errorf("unrecognized color spec value %q for %s:%s", value, field, attrKind)
	}
	if attr != 0 {
		target.attrs = append(target.attrs, attr)
	}
	return nil
}

func (cs *ColorSpecs) fieldFor(name string) *Spec {
	switch strings.ToLower(name) {
	case "path":
		if cs.Path == nil {
			cs.Path = &Spec{}
		}
		return cs.Path
	case "line":
		if cs.Line == nil {
			cs.Line = &Spec{}
		}
		return cs.Line
	case "column":
		if cs.Column == nil {
			cs.Column = &Spec{}
		}
		return cs.Column
	default:
		if cs.Matched == nil {
			cs.Matched = &Spec{}
		}
		return cs.Matched
	}
}
