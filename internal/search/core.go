package search

import (
	"github.com/tsgrep/tree-sitter-grep/internal/lines"
	"github.com/tsgrep/tree-sitter-grep/internal/sink"
)

// core is the line-accounting state machine shared by every search: lazy
// line-number counting, before/after context emission, and the gap
// detection that triggers a ContextBreak between non-adjacent hunks
//. It knows nothing about how matches are produced.
type core struct {
	config     *Config
	searcher   *Searcher
	sink       sink.Sink
	pos        int
	absoluteOffset uint64

	lineNumber     *uint64
	lastLineCounted int
	lastLineVisited int
	afterContextLeft int
	hasSunk          bool
}

func newCore(searcher *Searcher, w sink.Sink) *core {
	var ln *uint64
	if searcher.config.LineNumber {
		one := uint64(1)
		ln = &one
	}
	return &core{
		config:   &searcher.config,
		searcher: searcher,
		sink:     w,
		lineNumber: ln,
	}
}

func (c *core) Pos() int        { return c.pos }
func (c *core) SetPos(pos int)  { c.pos = pos }

func (c *core) begin() (bool, error) { return c.sink.Begin(c.searcher) }

func (c *core) finish(byteCount uint64) error {
	return c.sink.Finish(c.searcher, &sink.Finish{ByteCount: byteCount})
}

func (c *core) matched(buf []byte, r Range, exact []sink.ExactMatch) (bool, error) {
	return c.sinkMatched(buf, r, exact)
}

func (c *core) beforeContextByLine(buf []byte, upto int) (bool, error) {
	if c.config.BeforeContext == 0 {
		return true, nil
	}
	r := NewRange(c.lastLineVisited, upto)
	if r.IsEmpty() {
		return true, nil
	}
	sub := r.Slice(buf)
	beforeStart := r.Start() + lines.Preceding(sub, len(sub), uint64(c.config.BeforeContext-1), c.config.LineTerm)
	stepper := lines.NewStepper(c.config.LineTerm, beforeStart, r.End())
	for {
		line, ok := stepper.Next(buf)
		if !ok {
			break
		}
		if keepgoing, err := c.sinkBreakContext(line.Start); err != nil || !keepgoing {
			return keepgoing, err
		}
		if keepgoing, err := c.sinkBeforeContext(buf, line); err != nil || !keepgoing {
			return keepgoing, err
		}
	}
	return true, nil
}

func (c *core) afterContextByLine(buf []byte, upto int) (bool, error) {
	if c.afterContextLeft == 0 {
		return true, nil
	}
	stepper := lines.NewStepper(c.config.LineTerm, c.lastLineVisited, upto)
	for {
		line, ok := stepper.Next(buf)
		if !ok {
			break
		}
		if keepgoing, err := c.sinkAfterContext(buf, line); err != nil || !keepgoing {
			return keepgoing, err
		}
		if c.afterContextLeft == 0 {
			break
		}
	}
	return true, nil
}

func (c *core) otherContextByLine(buf []byte, upto int) (bool, error) {
	stepper := lines.NewStepper(c.config.LineTerm, c.lastLineVisited, upto)
	for {
		line, ok := stepper.Next(buf)
		if !ok {
			break
		}
		if keepgoing, err := c.sinkOtherContext(buf, line); err != nil || !keepgoing {
			return keepgoing, err
		}
	}
	return true, nil
}

func (c *core) sinkMatched(buf []byte, r Range, exact []sink.ExactMatch) (bool, error) {
	if keepgoing, err := c.sinkBreakContext(r.Start()); err != nil || !keepgoing {
		return keepgoing, err
	}
	c.countLines(buf, r.Start())
	offset := c.absoluteOffset + uint64(r.Start())
	keepgoing, err := c.sink.Matched(c.searcher, &sink.Match{
		LineTerm:           c.config.LineTerm,
		Bytes:              r.Slice(buf),
		AbsoluteByteOffset: offset,
		LineNumber:         c.lineNumber,
		Buffer:             buf,
		RangeInBuffer:      [2]int{r.Start(), r.End()},
		ExactMatches:       exact,
	})
	if err != nil || !keepgoing {
		return keepgoing, err
	}
	c.lastLineVisited = r.End()
	c.afterContextLeft = c.config.AfterContext
	c.hasSunk = true
	return true, nil
}

func (c *core) sinkBeforeContext(buf []byte, r lines.Span) (bool, error) {
	c.countLines(buf, r.Start)
	offset := c.absoluteOffset + uint64(r.Start)
	keepgoing, err := c.sink.Context(c.searcher, &sink.Context{
		LineTerm:           c.config.LineTerm,
		Bytes:              buf[r.Start:r.End],
		Kind:               sink.Before,
		AbsoluteByteOffset: offset,
		LineNumber:         c.lineNumber,
	})
	if err != nil || !keepgoing {
		return keepgoing, err
	}
	c.lastLineVisited = r.End
	c.hasSunk = true
	return true, nil
}

func (c *core) sinkAfterContext(buf []byte, r lines.Span) (bool, error) {
	c.countLines(buf, r.Start)
	offset := c.absoluteOffset + uint64(r.Start)
	keepgoing, err := c.sink.Context(c.searcher, &sink.Context{
		LineTerm:           c.config.LineTerm,
		Bytes:              buf[r.Start:r.End],
		Kind:               sink.After,
		AbsoluteByteOffset: offset,
		LineNumber:         c.lineNumber,
	})
	if err != nil || !keepgoing {
		return keepgoing, err
	}
	c.lastLineVisited = r.End
	c.afterContextLeft--
	c.hasSunk = true
	return true, nil
}

func (c *core) sinkOtherContext(buf []byte, r lines.Span) (bool, error) {
	c.countLines(buf, r.Start)
	offset := c.absoluteOffset + uint64(r.Start)
	keepgoing, err := c.sink.Context(c.searcher, &sink.Context{
		LineTerm:           c.config.LineTerm,
		Bytes:              buf[r.Start:r.End],
		Kind:               sink.Other,
		AbsoluteByteOffset: offset,
		LineNumber:         c.lineNumber,
	})
	if err != nil || !keepgoing {
		return keepgoing, err
	}
	c.lastLineVisited = r.End
	c.hasSunk = true
	return true, nil
}

func (c *core) sinkBreakContext(startOfLine int) (bool, error) {
	isGap := c.lastLineVisited < startOfLine
	anyContext := c.config.BeforeContext > 0 || c.config.AfterContext > 0
	if !anyContext || !c.hasSunk || !isGap {
		return true, nil
	}
	return c.sink.ContextBreak(c.searcher)
}

func (c *core) countLines(buf []byte, upto int) {
	if c.lineNumber == nil {
		return
	}
	if c.lastLineCounted >= upto {
		return
	}
	count := lines.Count(buf[c.lastLineCounted:upto], c.config.LineTerm)
	*c.lineNumber += count
	c.lastLineCounted = upto
}
