// Package treesitter turns a compiled query.Context loose on a byte buffer
// and produces the ordered, filtered byte ranges the searcher merges into
// matched lines. It owns the only parser/query-cursor pair live
// during a single file's search.
package treesitter

import (
	"errors"
	"fmt"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/tsgrep/tree-sitter-grep/internal/lang"
	"github.com/tsgrep/tree-sitter-grep/internal/query"
)

// ErrParseFailed means the grammar could not produce a tree for the input,
// which tree-sitter only returns for cancelled or mis-configured parses.
var ErrParseFailed = errors.New("tree-sitter: failed to parse source")

// Range is a byte span [Start, End) of one captured node.
type Range struct {
	Start, End int
}

// NewParser returns a parser bound to language's grammar.
func NewParser(language lang.Tag) *sitter.Parser {
	p := sitter.NewParser()
	p.SetLanguage(lang.Grammar(language))
	return p
}

// Matches parses source under qc's language and returns, in document
// order, the byte range of every node captured at qc's selected capture
// index that also passes qc's filter plugin, if one is set. The full
// result is materialized up front (as the pre-streaming implementation
// this is grounded on did) rather than produced lazily; queries over a
// single file's worth of source make the distinction unobservable.
func Matches(source []byte, qc *query.Context) ([]Range, error) {
	parser := NewParser(qc.Language)
	defer parser.Close()

	tree := parser.Parse(source, nil)
	if tree == nil {
		return nil, fmt.Errorf("%w: language %s", ErrParseFailed, qc.Language)
	}
	defer tree.Close()

	cursor := sitter.NewQueryCursor()
	defer cursor.Close()

	matches := cursor.Captures(qc.Query, tree.RootNode(), source)

	var out []Range
	for {
		m, captureIndex := matches.Next()
		if m == nil {
			break
		}
		if captureIndex != qc.CaptureIndex {
			continue
		}

		var node *sitter.Node
		for _, c := range m.Captures {
			if c.Index == captureIndex {
				node = &c.Node
				break
			}
		}
		if node == nil {
			continue
		}

		if qc.Filter != nil && !qc.Filter.Call(node) {
			continue
		}

		out = append(out, Range{Start: int(node.StartByte()), End: int(node.EndByte())})
	}
	return out, nil
}
