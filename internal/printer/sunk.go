package printer

import (
	"strings"

	tsgpath "github.com/tsgrep/tree-sitter-grep/internal/path"
	"github.com/tsgrep/tree-sitter-grep/internal/sink"
)

// exactMatch is a byte sub-range within a sunk line, used both for the
// query's real captures and for the synthetic ranges (a whole line, or an
// only-matching span rebased to 0) the renderers build on the fly.
type exactMatch struct {
	start, end int
}

func (m exactMatch) Start() int   { return m.start }
func (m exactMatch) End() int     { return m.end }
func (m exactMatch) Len() int     { return m.end - m.start }
func (m exactMatch) IsEmpty() bool { return m.start == m.end }
func (m exactMatch) withStart(s int) exactMatch { return exactMatch{s, m.end} }
func (m exactMatch) withEnd(e int) exactMatch   { return exactMatch{m.start, e} }
func (m exactMatch) slice(buf []byte) []byte    { return buf[m.start:m.end] }

// sunk normalizes a Matched or Context event into the shape the rendering
// functions share: a byte slice, its exact sub-matches (empty outside of
// match events), and whatever surrounding metadata the prelude needs.
type sunk struct {
	bytes              []byte
	absoluteByteOffset uint64
	lineNumber         *uint64
	contextKind        *sink.ContextKind
	matches            []exactMatch
}

func sunkEmpty() sunk { return sunk{} }

func sunkFromMatch(m *sink.Match, matches []exactMatch) sunk {
	return sunk{
		bytes:              m.Bytes,
		absoluteByteOffset: m.AbsoluteByteOffset,
		lineNumber:         m.LineNumber,
		matches:            matches,
	}
}

func sunkFromContext(c *sink.Context, matches []exactMatch) sunk {
	kind := c.Kind
	return sunk{
		bytes:              c.Bytes,
		absoluteByteOffset: c.AbsoluteByteOffset,
		lineNumber:         c.LineNumber,
		contextKind:        &kind,
		matches:            matches,
	}
}

func (s *sunk) isContext() bool { return s.contextKind != nil }

// printerPath is the path rendered in the output, with separators already
// rewritten to Config.PathSeparator.
type printerPath struct {
	display string
}

func newPrinterPath(path, sep string) printerPath {
	return printerPath{display: tsgpath.Display(path, sep)}
}

func (p printerPath) bytes() []byte { return []byte(p.display) }

// trimASCIIPrefix mirrors grep's --trim-ascii behaviour: strip leading
// whitespace bytes from a line, but never a byte that is itself the line
// terminator (so a blank line isn't eaten entirely).
func trimASCIIPrefix(lineTerm byte, buf []byte, m exactMatch) exactMatch {
	isSpace := func(b byte) bool {
		switch b {
		case '\t', '\n', '\v', '\f', '\r', ' ':
			return true
		}
		return false
	}
	slice := m.slice(buf)
	n := 0
	for n < len(slice) && isSpace(slice[n]) && slice[n] != lineTerm {
		n++
	}
	return m.withStart(m.start + n)
}

// trimLineTerminator drops a trailing terminator (and its preceding \r in
// CRLF mode) from m so context/match lines aren't printed with their own
// newline baked in before writeLineTerm adds the real one.
func trimLineTerminator(lineTerm byte, crlf bool, buf []byte, m exactMatch) exactMatch {
	if m.IsEmpty() || buf[m.end-1] != lineTerm {
		return m
	}
	end := m.end - 1
	if crlf && end > m.start && buf[end-1] == '\r' {
		end--
	}
	return m.withEnd(end)
}

func hasLineTerminator(lineTerm byte, buf []byte) bool {
	return len(buf) > 0 && buf[len(buf)-1] == lineTerm
}

// isAllASCIIWhitespace reports whether s is empty or all whitespace. No code
// or test in this module calls it.
func isAllASCIIWhitespace(s string) bool {
	return strings.TrimSpace(s) == ""
}
