package search

import (
	"fmt"

	"github.com/tsgrep/tree-sitter-grep/internal/query"
	"github.com/tsgrep/tree-sitter-grep/internal/sink"
)

// Searcher drives a query.Context over a byte slice, merging matched AST
// nodes into line-aligned spans and emitting them, with context, to a
// sink.Sink. One Searcher is reused across many files; it carries no
// per-file state of its own, that lives in the per-run multiLine value.
type Searcher struct {
	config Config
}

// New builds a Searcher with default configuration.
func New() *Searcher { return NewBuilder().Build() }

func (s *Searcher) LineNumber() bool    { return s.config.LineNumber }
func (s *Searcher) BeforeContext() int  { return s.config.BeforeContext }
func (s *Searcher) AfterContext() int   { return s.config.AfterContext }
func (s *Searcher) Passthru() bool      { return s.config.Passthru }
func (s *Searcher) InvertMatch() bool   { return s.config.InvertMatch }
func (s *Searcher) LineTerminator() byte { return s.config.LineTerm }

// Search runs qc's query against slice and streams results to sink via w.
func (s *Searcher) Search(qc *query.Context, slice []byte, w sink.Sink) error {
	ml, err := newMultiLine(s, qc, slice, w)
	if err != nil {
		return err
	}
	return ml.run()
}

// ErrSearch wraps a failure surfaced by a Sink implementation or by the
// match producer, so callers can distinguish it from an I/O error reading
// the source file.
type ErrSearch struct {
	Path string
	Err  error
}

func (e *ErrSearch) Error() string { return fmt.Sprintf("%s: %s", e.Path, e.Err) }
func (e *ErrSearch) Unwrap() error { return e.Err }
