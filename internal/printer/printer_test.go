package printer_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsgrep/tree-sitter-grep/internal/lang"
	"github.com/tsgrep/tree-sitter-grep/internal/printer"
	"github.com/tsgrep/tree-sitter-grep/internal/query"
	"github.com/tsgrep/tree-sitter-grep/internal/search"
)

const goSource = `package sample

func One() {}

func Two() {}
`

func render(t *testing.T, cfg printer.Config, searcher *search.Searcher) string {
	t.Helper()
	qc, err := query.New("(function_declaration) @f", lang.Go, "", nil)
	require.NoError(t, err)
	defer qc.Close()

	var buf bytes.Buffer
	s := printer.New(&buf, cfg, false).WithPath("sample.go")
	require.NoError(t, searcher.Search(qc, []byte(goSource), s))
	return buf.String()
}

func TestPrinter_DefaultConfigPrefixesPathAndLine(t *testing.T) {
	out := render(t, printer.DefaultConfig(), search.New())
	assert.Contains(t, out, "sample.go:3:func One() {}\n")
	assert.Contains(t, out, "sample.go:5:func Two() {}\n")
}

func TestPrinter_NoPathOmitsPathField(t *testing.T) {
	cfg := printer.DefaultConfig()
	cfg.Path = false
	out := render(t, cfg, search.New())
	assert.NotContains(t, out, "sample.go")
	assert.Contains(t, out, "3:func One() {}\n")
}

func TestPrinter_HeadingPrintsPathOnce(t *testing.T) {
	cfg := printer.DefaultConfig()
	cfg.Heading = true
	out := render(t, cfg, search.New())

	require.Equal(t, 1, countOccurrences(out, "sample.go"))
	assert.Contains(t, out, "3:func One() {}\n")
}

func TestPrinter_VimgrepStyleColumnAndNoHeading(t *testing.T) {
	cfg := printer.DefaultConfig()
	cfg.Column = true
	cfg.PerMatch = true
	cfg.PerMatchOneLine = true
	out := render(t, cfg, search.New())
	assert.Contains(t, out, "sample.go:3:1:func One() {}\n")
}

func TestPrinter_ContextSeparatorBetweenHunks(t *testing.T) {
	// Three blank lines between the two functions leave one line
	// uncovered by either match's 1-line context window, guaranteeing a
	// genuine gap and thus a ContextBreak.
	const src = "package sample\n\nfunc One() {}\n\n\n\nfunc Two() {}\n"

	qc, err := query.New("(function_declaration) @f", lang.Go, "", nil)
	require.NoError(t, err)
	defer qc.Close()

	cfg := printer.DefaultConfig()
	var buf bytes.Buffer
	s := printer.New(&buf, cfg, false).WithPath("sample.go")
	searcher := search.NewBuilder().BeforeContext(1).AfterContext(1).Build()
	require.NoError(t, searcher.Search(qc, []byte(src), s))

	assert.Contains(t, buf.String(), "--\n")
}

func countOccurrences(haystack, needle string) int {
	count := 0
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if haystack[i:i+len(needle)] == needle {
			count++
			i += len(needle) - 1
		}
	}
	return count
}

func TestParseColorSpecs_AppliesOverrideOnDefaults(t *testing.T) {
	cs, err := printer.ParseColorSpecs([]string{"match:fg:blue"})
	require.NoError(t, err)
	assert.False(t, cs.Matched.IsNone())
}

func TestParseColorSpecs_NoneClearsField(t *testing.T) {
	cs, err := printer.ParseColorSpecs([]string{"path:style:none"})
	require.NoError(t, err)
	assert.True(t, cs.Path.IsNone())
}

func TestParseColorSpecs_RejectsMalformedSpec(t *testing.T) {
	_, err := printer.ParseColorSpecs([]string{"not-a-spec"})
	assert.Error(t, err)
}

func TestParseColorSpecs_RejectsUnknownType(t *testing.T) {
	_, err := printer.ParseColorSpecs([]string{"bogus:fg:blue"})
	assert.Error(t, err)
}
