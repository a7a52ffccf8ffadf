// Package lines implements the line-oriented primitives the searcher builds
// on: stepping through a buffer one line-terminator at a time, locating the
// line-aligned span that contains a byte range, counting terminators in a
// slice, and finding the start of the line N lines before a position.
//
// All four operations work against a single terminator byte. Callers in
// CRLF mode still pass '\n' as the terminator; the leading '\r' is trimmed
// only when a line is handed to the printer for display, never here.
package lines

// Terminator is the default line terminator byte.
const Terminator = '\n'

// Span is a half-open byte range [Start, End) aligned to line boundaries.
type Span struct {
	Start, End int
}

// Len reports the span's length in bytes.
func (s Span) Len() int { return s.End - s.Start }

// Step returns the consecutive line spans within buf[start:end]. Each
// returned span ends either just after the next terminator (inclusive of
// the terminator byte) or at end, whichever comes first. An empty input
// range yields no spans.
func Step(buf []byte, start, end int, term byte) []Span {
	var spans []Span
	pos := start
	for pos < end {
		s, e := stepOnce(buf, pos, end, term)
		spans = append(spans, Span{s, e})
		pos = e
	}
	return spans
}

func stepOnce(buf []byte, pos, end int, term byte) (int, int) {
	rel := indexByte(buf[pos:end], term)
	if rel < 0 {
		return pos, end
	}
	return pos, pos + rel + 1
}

func indexByte(b []byte, c byte) int {
	for i, v := range b {
		if v == c {
			return i
		}
	}
	return -1
}

func lastIndexByte(b []byte, c byte) int {
	for i := len(b) - 1; i >= 0; i-- {
		if b[i] == c {
			return i
		}
	}
	return -1
}

// Stepper pulls consecutive line spans out of a buffer one at a time. It is
// the reusable, allocation-free counterpart to Step, used by the searcher
// core when walking a context window line by line.
type Stepper struct {
	term     byte
	pos, end int
}

// NewStepper returns a Stepper over buf[start:end].
func NewStepper(term byte, start, end int) *Stepper {
	return &Stepper{term: term, pos: start, end: end}
}

// Next returns the next line span, or ok=false when the range is exhausted.
func (s *Stepper) Next(buf []byte) (span Span, ok bool) {
	if s.pos >= s.end {
		return Span{}, false
	}
	start, end := stepOnce(buf, s.pos, s.end, s.term)
	s.pos = end
	return Span{start, end}, true
}

// Locate returns the smallest line-aligned span containing [start, end) of
// buf. The returned Start is the byte immediately after the nearest
// preceding terminator, or 0 if there is none. The returned End is end
// itself if end already sits just past a terminator; otherwise it is the
// byte after the next terminator at or beyond end, or len(buf) if there is
// none.
func Locate(buf []byte, start, end int, term byte) Span {
	lineStart := 0
	if start > 0 {
		if idx := lastIndexByte(buf[:start], term); idx >= 0 {
			lineStart = idx + 1
		}
	}

	lineEnd := len(buf)
	if end > lineStart && end <= len(buf) && buf[end-1] == term {
		lineEnd = end
	} else if end < len(buf) {
		if idx := indexByte(buf[end:], term); idx >= 0 {
			lineEnd = end + idx + 1
		}
	}

	return Span{lineStart, lineEnd}
}

// Count returns the number of terminator bytes in slice.
func Count(slice []byte, term byte) uint64 {
	var n uint64
	for _, b := range slice {
		if b == term {
			n++
		}
	}
	return n
}

// Preceding returns the byte offset of the start of the line that is n
// lines before the line containing pos. If buf[pos-1] is itself a
// terminator, that terminator is ignored, so a pos at the start of a line
// counts from the line that ends at pos (n=0 returns that line's start).
// The search walks backwards looking
// for n+1 terminators and returns the byte just after the last one found;
// it clamps to 0 if the buffer start is reached first.
func Preceding(buf []byte, pos int, n uint64, term byte) int {
	if pos > len(buf) {
		pos = len(buf)
	}

	scanEnd := pos
	if scanEnd > 0 && buf[scanEnd-1] == term {
		scanEnd--
	}

	need := n + 1
	for need > 0 && scanEnd > 0 {
		idx := lastIndexByte(buf[:scanEnd], term)
		if idx < 0 {
			return 0
		}
		scanEnd = idx
		need--
	}
	if need > 0 {
		return 0
	}
	return scanEnd + 1
}
