// Package query builds and owns a compiled tree-sitter query together with
// the single capture index it selects, a language tag, and an optional
// filter predicate. A Context is immutable after construction and is
// shared read-only between the match producer and the searcher.
package query

import (
	"errors"
	"fmt"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/tsgrep/tree-sitter-grep/internal/filterplugin"
	"github.com/tsgrep/tree-sitter-grep/internal/lang"
)

// ErrCaptureNotFound is returned when a requested capture name does not
// appear in the compiled query.
var ErrCaptureNotFound = errors.New("capture not found in query")

// Context owns a compiled query, the chosen capture index, the language it
// was compiled against, and an optional filter handle.
type Context struct {
	Language     lang.Tag
	Query        *sitter.Query
	CaptureIndex uint32
	CaptureName  string
	Filter       *filterplugin.Filter
}

// New compiles source against language's grammar and resolves the capture
// to emit. captureName, if non-empty, selects a specific named capture;
// otherwise the first capture in source order (index 0) is used.
func New(source string, language lang.Tag, captureName string, filter *filterplugin.Filter) (*Context, error) {
	grammar := lang.Grammar(language)

	q, qerr := sitter.NewQuery(grammar, source)
	if qerr != nil {
		return nil, fmt.Errorf("query parse error: %w", qerr)
	}

	idx := uint32(0)
	if captureName != "" {
		found := false
		for i := uint32(0); i < q.CaptureCount(); i++ {
			if q.CaptureNameForID(i) == captureName {
				idx = i
				found = true
				break
			}
		}
		if !found {
			q.Close()
			return nil, fmt.Errorf("%w: %q", ErrCaptureNotFound, captureName)
		}
	} else if q.CaptureCount() > 0 {
		captureName = q.CaptureNameForID(0)
	}

	return &Context{
		Language:     language,
		Query:        q,
		CaptureIndex: idx,
		CaptureName:  captureName,
		Filter:       filter,
	}, nil
}

// Close releases the compiled query. Filter handles are closed separately
// by whoever owns their lifetime (they may be shared across many Contexts
// built for different languages against the same --filter flag).
func (c *Context) Close() {
	if c.Query != nil {
		c.Query.Close()
	}
}
