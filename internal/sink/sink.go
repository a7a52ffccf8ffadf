// Package sink defines the event protocol a Searcher drives as it walks a
// buffer: Begin, Matched, Context, ContextBreak, Finish. It has no
// dependency on the search engine itself — Searcher satisfies Info
// structurally, the same way ripgrep's searcher and sink crates stay
// decoupled despite one driving the other.
package sink

import "fmt"

// Info is the subset of a Searcher's configuration a Sink implementation
// needs in order to format what it's handed.
type Info interface {
	LineNumber() bool
	BeforeContext() int
	AfterContext() int
	Passthru() bool
	InvertMatch() bool
}

// Sink receives the events produced while searching one buffer. All methods
// return (keepgoing, error); returning false stops the search early without
// it being an error (e.g. "only show the first match").
type Sink interface {
	Begin(s Info) (bool, error)
	Matched(s Info, m *Match) (bool, error)
	Context(s Info, c *Context) (bool, error)
	ContextBreak(s Info) (bool, error)
	Finish(s Info, f *Finish) error
}

// ExactMatch is a sub-span of a Match's Bytes identifying precisely which
// bytes the query captured, as opposed to the full merged line span.
// Offsets are relative to Bytes, not to Buffer.
type ExactMatch struct {
	Start, End int
}

// Match is one reported hit: a (possibly multi-line) merged span plus the
// exact captured sub-ranges within it.
type Match struct {
	LineTerm           byte
	Bytes              []byte
	AbsoluteByteOffset uint64
	LineNumber         *uint64
	Buffer             []byte
	RangeInBuffer      [2]int
	ExactMatches       []ExactMatch
}

func (m *Match) String() string {
	return fmt.Sprintf("Match{offset=%d, len=%d, exact=%d}", m.AbsoluteByteOffset, len(m.Bytes), len(m.ExactMatches))
}

// ContextKind distinguishes before/after context lines from passthru lines
// that belong to neither.
type ContextKind int

const (
	Before ContextKind = iota
	After
	Other
)

// Context is one context line surrounding a Match.
type Context struct {
	LineTerm           byte
	Bytes              []byte
	Kind               ContextKind
	AbsoluteByteOffset uint64
	LineNumber         *uint64
}

// Finish reports how many bytes of the buffer were consumed.
type Finish struct {
	ByteCount uint64
}
