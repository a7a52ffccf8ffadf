package search_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsgrep/tree-sitter-grep/internal/lang"
	"github.com/tsgrep/tree-sitter-grep/internal/query"
	"github.com/tsgrep/tree-sitter-grep/internal/search"
	"github.com/tsgrep/tree-sitter-grep/internal/sink"
)

// recordingSink captures every event a Searcher emits so tests can assert
// on the sequence without going through the printer.
type recordingSink struct {
	lines   []string
	matched []string
}

func (r *recordingSink) Begin(sink.Info) (bool, error) { return true, nil }

func (r *recordingSink) Matched(_ sink.Info, m *sink.Match) (bool, error) {
	r.lines = append(r.lines, "match:"+string(m.Bytes))
	r.matched = append(r.matched, string(m.Bytes))
	return true, nil
}

func (r *recordingSink) Context(_ sink.Info, c *sink.Context) (bool, error) {
	r.lines = append(r.lines, "context:"+string(c.Bytes))
	return true, nil
}

func (r *recordingSink) ContextBreak(sink.Info) (bool, error) {
	r.lines = append(r.lines, "break")
	return true, nil
}

func (r *recordingSink) Finish(sink.Info, *sink.Finish) error { return nil }

const goSource = `package sample

func One() {}

func Two() {}

func Three() {}
`

func newGoContext(t *testing.T, q string) *query.Context {
	t.Helper()
	qc, err := query.New(q, lang.Go, "", nil)
	require.NoError(t, err)
	t.Cleanup(qc.Close)
	return qc
}

func TestSearcher_EmitsOneMatchPerFunction(t *testing.T) {
	qc := newGoContext(t, "(function_declaration) @f")
	searcher := search.NewBuilder().LineNumber(true).Build()

	var rs recordingSink
	require.NoError(t, searcher.Search(qc, []byte(goSource), &rs))

	assert.Equal(t, []string{"func One() {}\n", "func Two() {}\n", "func Three() {}\n"}, rs.matched)
}

func TestSearcher_ContextLinesSurroundMatch(t *testing.T) {
	src := []byte("package sample\n\nfunc Only() {}\n\n// trailing\n")
	qc := newGoContext(t, "(function_declaration) @f")
	searcher := search.NewBuilder().BeforeContext(1).AfterContext(1).Build()

	var rs recordingSink
	require.NoError(t, searcher.Search(qc, src, &rs))

	require.Len(t, rs.lines, 3)
	assert.Equal(t, "context:\n", rs.lines[0])
	assert.Equal(t, "match:func Only() {}\n", rs.lines[1])
	assert.Equal(t, "context:\n", rs.lines[2])
}

func TestSearcher_InvertMatchEmitsNonMatchingLines(t *testing.T) {
	src := []byte("package sample\n\nfunc Only() {}\n")
	qc := newGoContext(t, "(function_declaration) @f")
	searcher := search.NewBuilder().InvertMatch(true).Build()

	var rs recordingSink
	require.NoError(t, searcher.Search(qc, src, &rs))

	for _, l := range rs.lines {
		assert.NotContains(t, l, "func Only")
	}
	assert.Contains(t, rs.lines, "match:package sample\n")
}

func TestSearcher_EmptyBufferProducesNoEvents(t *testing.T) {
	qc := newGoContext(t, "(function_declaration) @f")
	searcher := search.New()

	var rs recordingSink
	require.NoError(t, searcher.Search(qc, []byte{}, &rs))

	assert.Empty(t, rs.lines)
}
