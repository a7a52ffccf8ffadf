package walker

import (
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"

	"github.com/tsgrep/tree-sitter-grep/internal/lang"
)

// defaultExtensions gives each tag the file extensions an ignore-style type
// matcher would select for it by default. Bare "Dockerfile" is matched on
// basename, not extension, and is handled separately in Candidates.
//
// ".h" is deliberately claimed by both C and C++ (and kept out of
// Objective-C's set even though clang treats bare .h headers as ambiguous
// with it too) so that a bare .h file without a --language override hits
// the registry's ambiguous-file-type path.
var defaultExtensions = map[lang.Tag][]string{
	lang.Rust:            {"rs"},
	lang.Typescript:      {"ts", "tsx", "mts", "cts"},
	lang.Javascript:      {"js", "jsx", "mjs", "cjs"},
	lang.Swift:           {"swift"},
	lang.ObjectiveC:      {"m", "mm"},
	lang.Toml:            {"toml"},
	lang.Python:          {"py", "pyi"},
	lang.Ruby:            {"rb", "rake", "gemspec"},
	lang.C:               {"c", "h"},
	lang.Cpp:             {"cpp", "cc", "cxx", "hpp", "hh", "hxx", "h"},
	lang.Go:              {"go"},
	lang.Java:            {"java"},
	lang.CSharp:          {"cs"},
	lang.Kotlin:          {"kt", "kts"},
	lang.Elisp:           {"el"},
	lang.Elm:             {"elm"},
	lang.Html:            {"html", "htm"},
	lang.TreeSitterQuery: {"scm"},
	lang.Json:            {"json"},
	lang.Css:             {"css"},
	lang.Lua:             {"lua"},
}

var extToTags = func() map[string][]lang.Tag {
	m := make(map[string][]lang.Tag)
	for t, exts := range defaultExtensions {
		for _, e := range exts {
			m[e] = append(m[e], t)
		}
	}
	return m
}()

// Candidates returns every language tag whose file-type definition matches
// path: the tags of the built-in extension table, followed by any tag whose
// extra globs (keyed by the tag's ignore-style name, e.g. "rust", "ts") match
// too. A path with no extension, other than a Dockerfile, yields no tags;
// extra globs are not consulted for it.
func Candidates(path string, extra map[string][]string) []lang.Tag {
	base := filepath.Base(path)
	if base == "Dockerfile" || strings.HasSuffix(base, ".Dockerfile") || strings.HasPrefix(base, "Dockerfile.") {
		return []lang.Tag{lang.Dockerfile}
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if ext == "" {
		return nil
	}

	seen := make(map[lang.Tag]bool)
	var out []lang.Tag
	add := func(t lang.Tag) {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}

	for _, t := range extToTags[ext] {
		add(t)
	}
	for _, t := range lang.All {
		for _, pattern := range extra[t.IgnoreName()] {
			if matchesExtraGlob(pattern, base, ext) {
				add(t)
			}
		}
	}
	return out
}

// matchesExtraGlob treats a bare extension ("proto") and a "*.ext" glob the
// same way, and otherwise compiles the pattern as a glob matched against
// the basename.
func matchesExtraGlob(pattern, base, ext string) bool {
	pattern = strings.ToLower(pattern)
	if trimmed := strings.TrimPrefix(pattern, "*."); trimmed != pattern {
		return trimmed == ext
	}
	if !strings.ContainsAny(pattern, "*?[") {
		return strings.TrimPrefix(pattern, ".") == ext
	}
	g, err := glob.Compile(pattern)
	return err == nil && g.Match(strings.ToLower(base))
}
