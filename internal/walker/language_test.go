package walker

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tsgrep/tree-sitter-grep/internal/lang"
)

func TestCandidates(t *testing.T) {
	cases := []struct {
		name  string
		path  string
		extra map[string][]string
		want  []lang.Tag
	}{
		{name: "go file", path: "main.go", want: []lang.Tag{lang.Go}},
		{name: "rust file", path: "src/lib.rs", want: []lang.Tag{lang.Rust}},
		{name: "dockerfile exact", path: "Dockerfile", want: []lang.Tag{lang.Dockerfile}},
		{name: "dockerfile suffix", path: "build/ci.Dockerfile", want: []lang.Tag{lang.Dockerfile}},
		{name: "no extension", path: "Makefile", want: nil},
		{
			name: "extra glob widens candidates",
			path: "schema.proto",
			extra: map[string][]string{
				"json": {"*.proto"},
			},
			want: []lang.Tag{lang.Json},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Candidates(tc.path, tc.extra)
			assert.ElementsMatch(t, tc.want, got)
		})
	}
}

func TestCandidatesAmbiguousHeader(t *testing.T) {
	got := Candidates("widget.h", nil)
	assert.ElementsMatch(t, []lang.Tag{lang.C, lang.Cpp}, got)
}
