// Package printer is the standard grep-style sink: it turns the matched and
// context events a Searcher produces into path/line/column/offset-prefixed,
// optionally colorized output, with only-matching, per-match, replacement,
// and long-line-eliding variants.
package printer

import (
	"fmt"
	"io"
	"strconv"

	"github.com/tsgrep/tree-sitter-grep/internal/lines"
	"github.com/tsgrep/tree-sitter-grep/internal/sink"
)

// Config controls every formatting decision the printer makes. Zero value
// is sane except Colors, which callers should set via DefaultColorSpecs or
// ParseColorSpecs.
type Config struct {
	Colors ColorSpecs

	Heading bool
	Path    bool

	OnlyMatching    bool
	PerMatch        bool
	PerMatchOneLine bool

	Replacement []byte // nil disables replacement

	MaxColumns        int64 // 0 disables the limit
	MaxColumnsPreview bool
	MaxMatches        uint64 // 0 disables the limit

	Column     bool
	ByteOffset bool
	TrimASCII  bool

	SeparatorSearch        []byte // nil disables the between-search separator
	SeparatorContext       []byte
	SeparatorFieldMatch    []byte
	SeparatorFieldContext  []byte
	PathSeparator          string
	PathTerminator         byte
	HasPathTerminator      bool
	CaptureName            string
}

// DefaultConfig matches a bare invocation: colon-separated match fields,
// dash-separated context fields, a "--" context break, everything else off.
func DefaultConfig() Config {
	return Config{
		Colors:                DefaultColorSpecs(),
		Path:                  true,
		SeparatorContext:      []byte("--"),
		SeparatorFieldMatch:   []byte(":"),
		SeparatorFieldContext: []byte("-"),
	}
}

// Printer owns the destination writer and the formatting config. It can be
// reused across files, with a new Sink built per path via WithPath; the
// exact matches of the event being rendered are held on that Sink.
type Printer struct {
	config  Config
	wtr     *counterWriter
	color   bool
}

// New builds a Printer writing to w. color enables ANSI styling; callers
// typically gate this on isatty(w) or an explicit --color flag.
func New(w io.Writer, config Config, color bool) *Printer {
	return &Printer{config: config, wtr: newCounterWriter(w), color: color}
}

func (p *Printer) HasWritten() bool { return p.wtr.TotalCount() > 0 }

// WithPath returns a Sink that attributes every event to path.
func (p *Printer) WithPath(path string) *Sink {
	if !p.config.Path {
		path = ""
	}
	return &Sink{
		printer: p,
		path:    newPrinterPath(path, p.config.PathSeparator),
		hasPath: p.config.Path,
	}
}

// Sink is a printer.Printer bound to one file path; it satisfies
// sink.Sink and is handed to a single Searcher.Search call.
type Sink struct {
	printer *Printer
	path    printerPath
	hasPath bool

	matchCount           uint64
	afterContextRemaining uint64
	matches              []exactMatch
	replacement          []byte
}

var _ sink.Sink = (*Sink)(nil)

func (s *Sink) config() *Config { return &s.printer.config }

func (s *Sink) Begin(sink.Info) (bool, error) {
	s.printer.wtr.ResetCount()
	s.matchCount = 0
	s.afterContextRemaining = 0
	return true, nil
}

func (s *Sink) Finish(sink.Info, *sink.Finish) error { return nil }

func (s *Sink) Matched(info sink.Info, m *sink.Match) (bool, error) {
	s.matchCount++
	if s.config().MaxMatches > 0 && s.matchCount > s.config().MaxMatches {
		if s.afterContextRemaining > 0 {
			s.afterContextRemaining--
		}
	} else {
		s.afterContextRemaining = uint64(info.AfterContext())
	}

	s.matches = s.matches[:0]
	for _, em := range m.ExactMatches {
		s.matches = append(s.matches, exactMatch{start: em.Start, end: em.End})
	}
	s.buildReplacement(m.Bytes)

	impl := newRenderer(info, s, sunkFromMatch(m, s.matches))
	if err := impl.sink(); err != nil {
		return false, err
	}
	return !s.shouldQuit(), nil
}

func (s *Sink) Context(info sink.Info, c *sink.Context) (bool, error) {
	s.matches = s.matches[:0]
	s.replacement = nil

	if c.Kind == sink.After && s.afterContextRemaining > 0 {
		s.afterContextRemaining--
	}

	impl := newRenderer(info, s, sunkFromContext(c, s.matches))
	if err := impl.sink(); err != nil {
		return false, err
	}
	return !s.shouldQuit(), nil
}

func (s *Sink) ContextBreak(info sink.Info) (bool, error) {
	impl := newRenderer(info, s, sunkEmpty())
	return true, impl.writeContextSeparator()
}

func (s *Sink) shouldQuit() bool {
	if s.config().MaxMatches == 0 {
		return false
	}
	if s.matchCount < s.config().MaxMatches {
		return false
	}
	return s.afterContextRemaining == 0
}

func (s *Sink) buildReplacement(bytes []byte) {
	s.replacement = nil
	if s.config().Replacement == nil || len(s.matches) == 0 {
		return
	}
	var dst []byte
	last := 0
	for _, m := range s.matches {
		dst = append(dst, bytes[last:m.start]...)
		dst = interpolate(s.config().Replacement, s.config().CaptureName, bytes[m.start:m.end], dst)
		last = m.end
	}
	dst = append(dst, bytes[last:]...)
	s.replacement = dst
}

// renderer is the per-event rendering pass; it is cheap to build and
// discard and holds no state beyond what one event needs.
type renderer struct {
	info sink.Info
	s    *Sink
	sunk sunk
}

func newRenderer(info sink.Info, s *Sink, snk sunk) *renderer {
	return &renderer{info: info, s: s, sunk: snk}
}

func (r *renderer) cfg() *Config { return r.s.config() }

func (r *renderer) sink() error {
	if err := r.writeSearchPrelude(); err != nil {
		return err
	}
	if len(r.sunk.matches) == 0 {
		if !r.sunk.isContext() {
			return r.sinkFastMultiLine()
		}
		return r.sinkFast()
	}
	if !r.sunk.isContext() {
		return r.sinkSlowMultiLine()
	}
	return r.sinkSlow()
}

func (r *renderer) sinkFast() error {
	if err := r.writePrelude(r.sunk.absoluteByteOffset, r.sunk.lineNumber, nil); err != nil {
		return err
	}
	return r.writeLine(r.sunk.bytes)
}

func (r *renderer) sinkFastMultiLine() error {
	offset := r.sunk.absoluteByteOffset
	stepper := lines.NewStepper(r.lineTerm(), 0, len(r.sunk.bytes))
	i := uint64(0)
	for {
		line, ok := stepper.Next(r.sunk.bytes)
		if !ok {
			break
		}
		ln := addLineNumber(r.sunk.lineNumber, i)
		if err := r.writePrelude(offset, ln, nil); err != nil {
			return err
		}
		offset += uint64(line.Len())
		if err := r.writeLine(r.sunk.bytes[line.Start:line.End]); err != nil {
			return err
		}
		i++
	}
	return nil
}

func (r *renderer) sinkSlow() error {
	bytes := r.displayBytes()
	switch {
	case r.cfg().OnlyMatching:
		for _, m := range r.sunk.matches {
			if err := r.writePrelude(r.sunk.absoluteByteOffset+uint64(m.start), r.sunk.lineNumber, u64ptr(uint64(m.start)+1)); err != nil {
				return err
			}
			if err := r.writeColoredLine([]exactMatch{{0, m.Len()}}, m.slice(bytes)); err != nil {
				return err
			}
		}
	case r.cfg().PerMatch:
		for _, m := range r.sunk.matches {
			if err := r.writePrelude(r.sunk.absoluteByteOffset+uint64(m.start), r.sunk.lineNumber, u64ptr(uint64(m.start)+1)); err != nil {
				return err
			}
			if err := r.writeColoredLine([]exactMatch{m}, bytes); err != nil {
				return err
			}
		}
	default:
		first := r.sunk.matches[0]
		if err := r.writePrelude(r.sunk.absoluteByteOffset, r.sunk.lineNumber, u64ptr(uint64(first.start)+1)); err != nil {
			return err
		}
		if err := r.writeColoredLine(r.sunk.matches, bytes); err != nil {
			return err
		}
	}
	return nil
}

func (r *renderer) sinkSlowMultiLine() error {
	switch {
	case r.cfg().OnlyMatching:
		return r.sinkSlowMultiLineOnlyMatching()
	case r.cfg().PerMatch:
		return r.sinkSlowMultiPerMatch()
	}

	bytes := r.displayBytes()
	matches := r.sunk.matches
	midx := 0
	var count uint64
	stepper := lines.NewStepper(r.lineTerm(), 0, len(bytes))
	for {
		span, ok := stepper.Next(bytes)
		if !ok {
			break
		}
		line := exactMatch{span.Start, span.End}
		var col *uint64
		if count == 0 {
			col = u64ptr(uint64(matches[0].start) + 1)
		}
		if err := r.writePrelude(r.sunk.absoluteByteOffset+uint64(line.start), addLineNumber(r.sunk.lineNumber, count), col); err != nil {
			return err
		}
		count++
		if r.exceedsMaxColumns(bytes[line.start:line.end]) {
			if err := r.writeExceededLine(bytes, line, matches); err != nil {
				return err
			}
		} else {
			if _, err := r.writeColoredMatches(bytes, line, matches, &midx); err != nil {
				return err
			}
			if err := r.writeLineTerm(); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *renderer) sinkSlowMultiLineOnlyMatching() error {
	bytes := r.displayBytes()
	matches := r.sunk.matches
	midx := 0
	var count uint64
	stepper := lines.NewStepper(r.lineTerm(), 0, len(bytes))
	for {
		span, ok := stepper.Next(bytes)
		if !ok {
			break
		}
		line := exactMatch{span.Start, span.End}
		line = r.trimLineTerm(bytes, line)
		line = r.trimPrefix(bytes, line)
		for !line.IsEmpty() {
			if matches[midx].end <= line.start {
				if midx+1 < len(matches) {
					midx++
					continue
				}
				break
			}
			m := matches[midx]
			if line.start < m.start {
				line = line.withStart(minInt(line.end, m.start))
				continue
			}
			upto := minInt(line.end, m.end)
			if err := r.writePrelude(r.sunk.absoluteByteOffset+uint64(m.start), addLineNumber(r.sunk.lineNumber, count), u64ptr(uint64(m.start)+1)); err != nil {
				return err
			}
			this := line.withEnd(upto)
			line = line.withStart(upto)
			if r.exceedsMaxColumns(this.slice(bytes)) {
				if err := r.writeExceededLine(bytes, this, matches); err != nil {
					return err
				}
			} else {
				if err := r.writeSpec(r.cfg().Colors.Matched, this.slice(bytes)); err != nil {
					return err
				}
				if err := r.writeLineTerm(); err != nil {
					return err
				}
			}
		}
		count++
	}
	return nil
}

func (r *renderer) sinkSlowMultiPerMatch() error {
	bytes := r.displayBytes()
	for _, m := range r.sunk.matches {
		var count uint64
		stepper := lines.NewStepper(r.lineTerm(), 0, len(bytes))
		for {
			span, ok := stepper.Next(bytes)
			if !ok {
				break
			}
			line := exactMatch{span.Start, span.End}
			if line.start >= m.end {
				break
			}
			if line.end <= m.start {
				count++
				continue
			}
			col := uint64(1)
			if m.start > line.start {
				col = uint64(m.start-line.start) + 1
			}
			if err := r.writePrelude(r.sunk.absoluteByteOffset+uint64(line.start), addLineNumber(r.sunk.lineNumber, count), u64ptr(col)); err != nil {
				return err
			}
			count++
			if r.exceedsMaxColumns(line.slice(bytes)) {
				if err := r.writeExceededLine(bytes, line, []exactMatch{m}); err != nil {
					return err
				}
				continue
			}
			line = r.trimLineTerm(bytes, line)
			line = r.trimPrefix(bytes, line)
			for !line.IsEmpty() {
				switch {
				case m.end <= line.start:
					if err := r.write(line.slice(bytes)); err != nil {
						return err
					}
					line = line.withStart(line.end)
				case line.start < m.start:
					upto := minInt(line.end, m.start)
					if err := r.write(bytes[line.start:upto]); err != nil {
						return err
					}
					line = line.withStart(upto)
				default:
					upto := minInt(line.end, m.end)
					if err := r.writeSpec(r.cfg().Colors.Matched, bytes[line.start:upto]); err != nil {
						return err
					}
					line = line.withStart(upto)
				}
			}
			if err := r.writeLineTerm(); err != nil {
				return err
			}
			if r.cfg().PerMatchOneLine {
				break
			}
		}
	}
	return nil
}

// -- prelude / field writing --

func (r *renderer) writePrelude(absoluteByteOffset uint64, lineNumber *uint64, column *uint64) error {
	sep := r.separatorField()
	if !r.cfg().Heading {
		if err := r.writePathField(sep); err != nil {
			return err
		}
	}
	if lineNumber != nil {
		if err := r.writeLineNumber(*lineNumber, sep); err != nil {
			return err
		}
	}
	if column != nil && r.cfg().Column {
		if err := r.writeColumnNumber(*column, sep); err != nil {
			return err
		}
	}
	if r.cfg().ByteOffset {
		if err := r.writeByteOffset(absoluteByteOffset, sep); err != nil {
			return err
		}
	}
	return nil
}

func (r *renderer) writeLine(line []byte) error {
	if r.exceedsMaxColumns(line) {
		return r.writeExceededLine(line, exactMatch{0, len(line)}, r.sunk.matches)
	}
	trimmed := line
	if r.cfg().TrimASCII {
		m := trimASCIIPrefix(r.lineTerm(), line, exactMatch{0, len(line)})
		trimmed = m.slice(line)
	}
	if err := r.write(trimmed); err != nil {
		return err
	}
	if !hasLineTerminator(r.lineTerm(), line) {
		return r.writeLineTerm()
	}
	return nil
}

func (r *renderer) writeColoredLine(matches []exactMatch, bytes []byte) error {
	if !r.s.printer.color || r.cfg().Colors.Matched.IsNone() {
		return r.writeLine(bytes)
	}
	line := exactMatch{0, len(bytes)}
	if r.exceedsMaxColumns(bytes) {
		return r.writeExceededLine(bytes, line, matches)
	}
	idx := 0
	if _, err := r.writeColoredMatches(bytes, line, matches, &idx); err != nil {
		return err
	}
	return r.writeLineTerm()
}

// writeColoredMatches walks line, writing the plain spans uncolored and the
// spans covered by matches (starting from *matchIndex, which tracks
// progress across calls spanning multiple physical lines) through the
// matched-text color spec.
func (r *renderer) writeColoredMatches(bytes []byte, line exactMatch, matches []exactMatch, matchIndex *int) (exactMatch, error) {
	line = r.trimLineTerm(bytes, line)
	line = r.trimPrefix(bytes, line)
	if len(matches) == 0 {
		return line, r.write(line.slice(bytes))
	}
	for !line.IsEmpty() {
		if matches[*matchIndex].end <= line.start {
			if *matchIndex+1 < len(matches) {
				*matchIndex++
				continue
			}
			if err := r.write(line.slice(bytes)); err != nil {
				return line, err
			}
			break
		}
		m := matches[*matchIndex]
		if line.start < m.start {
			upto := minInt(line.end, m.start)
			if err := r.write(bytes[line.start:upto]); err != nil {
				return line, err
			}
			line = line.withStart(upto)
		} else {
			upto := minInt(line.end, m.end)
			if err := r.writeSpec(r.cfg().Colors.Matched, bytes[line.start:upto]); err != nil {
				return line, err
			}
			line = line.withStart(upto)
		}
	}
	return line, nil
}

func (r *renderer) writeExceededLine(bytes []byte, line exactMatch, matches []exactMatch) error {
	if r.cfg().MaxColumnsPreview {
		original := line
		limit := int(r.cfg().MaxColumns)
		end := line.start
		for n := 0; n < limit && end < line.end; n++ {
			_, size := decodeRune(bytes[end:line.end])
			end += size
		}
		line = line.withEnd(end)
		idx := 0
		if _, err := r.writeColoredMatches(bytes, line, matches, &idx); err != nil {
			return err
		}
		if len(matches) == 0 {
			if err := r.write([]byte(" [... omitted end of long line]")); err != nil {
				return err
			}
		} else {
			remaining := 0
			for _, m := range matches {
				if m.start >= line.end && m.start < original.end {
					remaining++
				}
			}
			tense := "matches"
			if remaining == 1 {
				tense = "match"
			}
			if err := r.write([]byte(fmt.Sprintf(" [... %d more %s]", remaining, tense))); err != nil {
				return err
			}
		}
		return r.writeLineTerm()
	}

	var msg string
	if len(r.sunk.matches) == 0 {
		if r.sunk.isContext() {
			msg = "[Omitted long context line]"
		} else {
			msg = "[Omitted long matching line]"
		}
	} else if r.cfg().OnlyMatching {
		if r.sunk.isContext() {
			msg = "[Omitted long context line]"
		} else {
			msg = "[Omitted long matching line]"
		}
	} else {
		msg = fmt.Sprintf("[Omitted long line with %d matches]", len(r.sunk.matches))
	}
	if err := r.write([]byte(msg)); err != nil {
		return err
	}
	return r.writeLineTerm()
}

func (r *renderer) writePathLine() error {
	if !r.s.hasPath {
		return nil
	}
	if err := r.writeSpec(r.cfg().Colors.Path, r.s.path.bytes()); err != nil {
		return err
	}
	if r.cfg().HasPathTerminator {
		return r.write([]byte{r.cfg().PathTerminator})
	}
	return r.writeLineTerm()
}

func (r *renderer) writePathField(fieldSep []byte) error {
	if !r.s.hasPath {
		return nil
	}
	if err := r.writeSpec(r.cfg().Colors.Path, r.s.path.bytes()); err != nil {
		return err
	}
	if r.cfg().HasPathTerminator {
		return r.write([]byte{r.cfg().PathTerminator})
	}
	return r.write(fieldSep)
}

func (r *renderer) writeSearchPrelude() error {
	if r.s.printer.wtr.Count() > 0 {
		return nil
	}
	if sep := r.cfg().SeparatorSearch; sep != nil {
		if r.s.printer.wtr.TotalCount() > 0 {
			if err := r.write(sep); err != nil {
				return err
			}
			if err := r.writeLineTerm(); err != nil {
				return err
			}
		}
	}
	if r.cfg().Heading {
		return r.writePathLine()
	}
	return nil
}

func (r *renderer) writeContextSeparator() error {
	if sep := r.cfg().SeparatorContext; sep != nil {
		if err := r.write(sep); err != nil {
			return err
		}
		return r.writeLineTerm()
	}
	return nil
}

func (r *renderer) writeLineNumber(n uint64, fieldSep []byte) error {
	if err := r.writeSpec(r.cfg().Colors.Line, []byte(strconv.FormatUint(n, 10))); err != nil {
		return err
	}
	return r.write(fieldSep)
}

func (r *renderer) writeColumnNumber(n uint64, fieldSep []byte) error {
	if err := r.writeSpec(r.cfg().Colors.Column, []byte(strconv.FormatUint(n, 10))); err != nil {
		return err
	}
	return r.write(fieldSep)
}

func (r *renderer) writeByteOffset(n uint64, fieldSep []byte) error {
	if err := r.writeSpec(r.cfg().Colors.Column, []byte(strconv.FormatUint(n, 10))); err != nil {
		return err
	}
	return r.write(fieldSep)
}

func (r *renderer) writeLineTerm() error { return r.write([]byte{r.lineTerm()}) }

func (r *renderer) writeSpec(spec *Spec, buf []byte) error {
	if !r.s.printer.color || spec.IsNone() {
		return r.write(buf)
	}
	c := spec.color()
	c.EnableColor()
	_, err := c.Fprint(r.s.printer.wtr, string(buf))
	return err
}

func (r *renderer) write(buf []byte) error {
	_, err := r.s.printer.wtr.Write(buf)
	return err
}

// -- small helpers --

func (r *renderer) lineTerm() byte { return '\n' }

func (r *renderer) displayBytes() []byte {
	if r.s.replacement != nil {
		return r.s.replacement
	}
	return r.sunk.bytes
}

func (r *renderer) trimLineTerm(buf []byte, m exactMatch) exactMatch {
	return trimLineTerminator(r.lineTerm(), false, buf, m)
}

func (r *renderer) trimPrefix(buf []byte, m exactMatch) exactMatch {
	if !r.cfg().TrimASCII {
		return m
	}
	return trimASCIIPrefix(r.lineTerm(), buf, m)
}

func (r *renderer) exceedsMaxColumns(line []byte) bool {
	return r.cfg().MaxColumns > 0 && int64(len(line)) > r.cfg().MaxColumns
}

func (r *renderer) separatorField() []byte {
	if r.sunk.isContext() {
		return r.cfg().SeparatorFieldContext
	}
	return r.cfg().SeparatorFieldMatch
}

func addLineNumber(base *uint64, delta uint64) *uint64 {
	if base == nil {
		return nil
	}
	n := *base + delta
	return &n
}

func u64ptr(n uint64) *uint64 { return &n }

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func decodeRune(b []byte) (rune, int) {
	if len(b) == 0 {
		return 0, 0
	}
	if b[0] < 0x80 {
		return rune(b[0]), 1
	}
	n := 1
	for n < len(b) && n < 4 && b[n]&0xC0 == 0x80 {
		n++
	}
	return 0, n
}
