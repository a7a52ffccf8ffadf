package search

import (
	"github.com/tsgrep/tree-sitter-grep/internal/lines"
	"github.com/tsgrep/tree-sitter-grep/internal/query"
	"github.com/tsgrep/tree-sitter-grep/internal/sink"
	"github.com/tsgrep/tree-sitter-grep/internal/treesitter"
)

// accumulatedExactMatches tracks the sub-spans captured since the last
// reported Match, stored relative to the start of the first merged line so
// they stay valid no matter how far the merged span later grows.
type accumulatedExactMatches struct {
	matches   []sink.ExactMatch
	reference int
	hasRef    bool
}

func (a *accumulatedExactMatches) clear() {
	a.matches = a.matches[:0]
	a.hasRef = false
}

func (a *accumulatedExactMatches) push(m treesitter.Range, beginningOfLineOffset int) {
	if !a.hasRef {
		a.reference = beginningOfLineOffset
		a.hasRef = true
	}
	a.matches = append(a.matches, sink.ExactMatch{
		Start: m.Start - a.reference,
		End:   m.End - a.reference,
	})
}

// multiLine drives one file's worth of matching: it walks the precomputed,
// filtered match list, merges overlapping/adjacent matched lines into a
// single reported span, and delegates line accounting and context windows
// to core. It is the only search strategy, since tree-sitter always needs
// the whole buffer to parse.
type multiLine struct {
	config  *Config
	core    *core
	slice   []byte
	matches []treesitter.Range
	next    int

	lastMatch *Range
	exact     accumulatedExactMatches
}

func newMultiLine(searcher *Searcher, qc *query.Context, slice []byte, w sink.Sink) (*multiLine, error) {
	matches, err := treesitter.Matches(slice, qc)
	if err != nil {
		return nil, err
	}
	return &multiLine{
		config:  &searcher.config,
		core:    newCore(searcher, w),
		slice:   slice,
		matches: matches,
	}, nil
}

func (m *multiLine) find() (Range, bool) {
	if m.next >= len(m.matches) {
		return Range{}, false
	}
	r := m.matches[m.next]
	m.next++
	return NewRange(r.Start, r.End), true
}

func (m *multiLine) run() error {
	keepgoing, err := m.core.begin()
	if err != nil {
		return err
	}
	if keepgoing {
		for len(m.slice[m.core.Pos():]) > 0 && keepgoing {
			keepgoing, err = m.sink()
			if err != nil {
				return err
			}
		}
		if keepgoing {
			if m.lastMatch != nil {
				last := *m.lastMatch
				m.lastMatch = nil
				if keepgoing, err = m.sinkContext(last); err != nil {
					return err
				}
				if keepgoing {
					if _, err = m.sinkMatched(last); err != nil {
						return err
					}
				}
				keepgoing = true
			}
		}
		if keepgoing {
			if m.config.Passthru {
				if _, err = m.core.otherContextByLine(m.slice, len(m.slice)); err != nil {
					return err
				}
			} else {
				if _, err = m.core.afterContextByLine(m.slice, len(m.slice)); err != nil {
					return err
				}
			}
		}
	}
	return m.core.finish(uint64(m.core.Pos()))
}

func (m *multiLine) sink() (bool, error) {
	if m.config.InvertMatch {
		return m.sinkInverted()
	}

	mat, ok := m.find()
	if !ok {
		m.core.SetPos(len(m.slice))
		return true, nil
	}
	m.advance(mat)

	line := lines.Locate(m.slice, mat.Start(), mat.End(), m.config.LineTerm)
	lineRange := NewRange(line.Start, line.End)

	if m.lastMatch == nil {
		m.lastMatch = &lineRange
		m.exact.push(treesitter.Range{Start: mat.Start(), End: mat.End()}, lineRange.Start())
		return true, nil
	}

	last := *m.lastMatch
	if last.End() >= lineRange.Start() {
		merged := last.WithEndIfExtends(lineRange.End())
		m.lastMatch = &merged
		m.exact.push(treesitter.Range{Start: mat.Start(), End: mat.End()}, lineRange.Start())
		return true, nil
	}

	m.lastMatch = &lineRange
	keepgoing, err := m.sinkContext(last)
	if err != nil || !keepgoing {
		return keepgoing, err
	}
	keepgoing, err = m.sinkMatched(last)
	m.exact.push(treesitter.Range{Start: mat.Start(), End: mat.End()}, lineRange.Start())
	return keepgoing, err
}

func (m *multiLine) sinkInverted() (bool, error) {
	var invert Range

	mat, ok := m.find()
	if !ok {
		invert = NewRange(m.core.Pos(), len(m.slice))
		m.core.SetPos(invert.End())
	} else {
		line := lines.Locate(m.slice, mat.Start(), mat.End(), m.config.LineTerm)
		invert = NewRange(m.core.Pos(), line.Start)
		m.advance(NewRange(line.Start, line.End))
	}

	if invert.IsEmpty() {
		return true, nil
	}
	if keepgoing, err := m.sinkContext(invert); err != nil || !keepgoing {
		return keepgoing, err
	}

	stepper := lines.NewStepper(m.config.LineTerm, invert.Start(), invert.End())
	for {
		line, ok := stepper.Next(m.slice)
		if !ok {
			break
		}
		if keepgoing, err := m.sinkMatched(NewRange(line.Start, line.End)); err != nil || !keepgoing {
			return keepgoing, err
		}
	}
	return true, nil
}

func (m *multiLine) sinkMatched(r Range) (bool, error) {
	if r.IsEmpty() {
		return false, nil
	}
	exact := append([]sink.ExactMatch(nil), m.exact.matches...)
	keepgoing, err := m.core.matched(m.slice, r, exact)
	m.exact.clear()
	return keepgoing, err
}

func (m *multiLine) sinkContext(r Range) (bool, error) {
	if m.config.Passthru {
		if keepgoing, err := m.core.otherContextByLine(m.slice, r.Start()); err != nil || !keepgoing {
			return keepgoing, err
		}
		return true, nil
	}
	if keepgoing, err := m.core.afterContextByLine(m.slice, r.Start()); err != nil || !keepgoing {
		return keepgoing, err
	}
	if keepgoing, err := m.core.beforeContextByLine(m.slice, r.Start()); err != nil || !keepgoing {
		return keepgoing, err
	}
	return true, nil
}

func (m *multiLine) advance(r Range) {
	m.core.SetPos(r.End())
	if r.IsEmpty() && m.core.Pos() < len(m.slice) {
		m.core.SetPos(m.core.Pos() + 1)
	}
}
