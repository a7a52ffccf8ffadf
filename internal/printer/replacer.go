package printer

import (
	"bytes"
	"strconv"
)

// interpolate expands $0/${0} or $name/${name} references in replacement,
// substituting the matched bytes append provides for index 0 (there is
// only ever one capture per match in this tool, so every name that
// resolves at all resolves to it). A bare "$$" is a literal dollar sign;
// an unrecognized "$" is passed through unchanged.
func interpolate(replacement []byte, captureName string, matched []byte, dst []byte) []byte {
	rest := replacement
	for len(rest) > 0 {
		i := bytes.IndexByte(rest, '$')
		if i < 0 {
			break
		}
		dst = append(dst, rest[:i]...)
		rest = rest[i:]

		if len(rest) > 1 && rest[1] == '$' {
			dst = append(dst, '$')
			rest = rest[2:]
			continue
		}

		ref, end, ok := findCapRef(rest)
		if !ok {
			dst = append(dst, '$')
			rest = rest[1:]
			continue
		}
		rest = rest[end:]

		if ref == "0" || ref == captureName {
			dst = append(dst, matched...)
		} else if n, err := strconv.Atoi(ref); err == nil && n == 0 {
			dst = append(dst, matched...)
		}
	}
	return append(dst, rest...)
}

func findCapRef(replacement []byte) (name string, end int, ok bool) {
	if len(replacement) <= 1 || replacement[0] != '$' {
		return "", 0, false
	}
	i := 1
	brace := false
	if replacement[i] == '{' {
		brace = true
		i++
	}
	capEnd := i
	for capEnd < len(replacement) && isValidCapByte(replacement[capEnd]) {
		capEnd++
	}
	if capEnd == i {
		return "", 0, false
	}
	cap := string(replacement[i:capEnd])
	if brace {
		if capEnd >= len(replacement) || replacement[capEnd] != '}' {
			return "", 0, false
		}
		capEnd++
	}
	return cap, capEnd, true
}

func isValidCapByte(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '_'
}

