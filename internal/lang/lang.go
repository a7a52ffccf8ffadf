// Package lang is the closed registry of languages tree-sitter-grep can
// parse: a language Tag resolves to (a) a grammar handle used to build a
// parser and (b) an ignore-style file-type name used for extension-based
// file selection by the walker.
//
// The set of tags, their ordering, and the ignore-select names are fixed so
// that --language values and ambiguous-file-type messages stay stable.
package lang

import (
	"fmt"
	"sort"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// Tag identifies one of the 22 supported languages.
type Tag int

const (
	Rust Tag = iota
	Typescript
	Javascript
	Swift
	ObjectiveC
	Toml
	Python
	Ruby
	C
	Cpp
	Go
	Java
	CSharp
	Kotlin
	Elisp
	Elm
	Dockerfile
	Html
	TreeSitterQuery
	Json
	Css
	Lua

	numTags = int(Lua) + 1
)

// All lists every supported tag in registry order.
var All = []Tag{
	Rust, Typescript, Javascript, Swift, ObjectiveC, Toml, Python, Ruby, C, Cpp,
	Go, Java, CSharp, Kotlin, Elisp, Elm, Dockerfile, Html, TreeSitterQuery,
	Json, Css, Lua,
}

// ignoreNames is the ignore-crate-style file-type name used for extension
// based selection, indexed by Tag.
var ignoreNames = [numTags]string{
	Rust:            "rust",
	Typescript:      "ts",
	Javascript:      "js",
	Swift:           "swift",
	ObjectiveC:      "objc",
	Toml:            "toml",
	Python:          "py",
	Ruby:            "ruby",
	C:               "c",
	Cpp:             "cpp",
	Go:              "go",
	Java:            "java",
	CSharp:          "csharp",
	Kotlin:          "kotlin",
	Elisp:           "elisp",
	Elm:             "elm",
	Dockerfile:      "docker",
	Html:            "html",
	TreeSitterQuery: "treesitterquery",
	Json:            "json",
	Css:             "css",
	Lua:             "lua",
}

// flagNames is used for --language value parsing (kebab-case, derived from
// each tag's variant name).
var flagNames = [numTags]string{
	Rust:            "rust",
	Typescript:      "typescript",
	Javascript:      "javascript",
	Swift:           "swift",
	ObjectiveC:      "objective-c",
	Toml:            "toml",
	Python:          "python",
	Ruby:            "ruby",
	C:               "c",
	Cpp:             "cpp",
	Go:              "go",
	Java:            "java",
	CSharp:          "c-sharp",
	Kotlin:          "kotlin",
	Elisp:           "elisp",
	Elm:             "elm",
	Dockerfile:      "dockerfile",
	Html:            "html",
	TreeSitterQuery: "tree-sitter-query",
	Json:            "json",
	Css:             "css",
	Lua:             "lua",
}

// humanNames is used in ambiguous-file-type error messages, where the
// canonical spelling (e.g. "C++", "Objective-C") is expected rather than
// the flag token.
var humanNames = [numTags]string{
	Rust:            "Rust",
	Typescript:      "TypeScript",
	Javascript:      "JavaScript",
	Swift:           "Swift",
	ObjectiveC:      "Objective-C",
	Toml:            "TOML",
	Python:          "Python",
	Ruby:            "Ruby",
	C:               "C",
	Cpp:             "C++",
	Go:              "Go",
	Java:            "Java",
	CSharp:          "C#",
	Kotlin:          "Kotlin",
	Elisp:           "Elisp",
	Elm:             "Elm",
	Dockerfile:      "Dockerfile",
	Html:            "HTML",
	TreeSitterQuery: "tree-sitter query",
	Json:            "JSON",
	Css:             "CSS",
	Lua:             "Lua",
}

var byIgnoreName = func() map[string]Tag {
	m := make(map[string]Tag, numTags)
	for _, t := range All {
		m[ignoreNames[t]] = t
	}
	return m
}()

var byFlagName = func() map[string]Tag {
	m := make(map[string]Tag, numTags)
	for _, t := range All {
		m[flagNames[t]] = t
	}
	return m
}()

// IgnoreName returns the ignore-style file-type name used to build the
// walker's glob matcher for t.
func (t Tag) IgnoreName() string { return ignoreNames[t] }

// String returns the human-readable display name for t.
func (t Tag) String() string { return humanNames[t] }

// FromFlag resolves a --language flag value (case-insensitive) to a Tag.
func FromFlag(s string) (Tag, error) {
	t, ok := byFlagName[strings.ToLower(s)]
	if !ok {
		return 0, fmt.Errorf("unknown language %q", s)
	}
	return t, nil
}

// FromIgnoreName resolves an ignore-crate file-type name back to a Tag.
func FromIgnoreName(name string) (Tag, bool) {
	t, ok := byIgnoreName[name]
	return t, ok
}

// Grammar returns the tree-sitter grammar handle for t, built anew on every
// call. Grammar loading is cheap and idempotent, so nothing is cached and no
// locking is needed beyond what the underlying binding package already does.
func Grammar(t Tag) *sitter.Language {
	return grammars[t]()
}

// AmbiguityError reports that a file's extension matched more than one
// language and no --language override narrowed the choice. The message
// format matches the one used throughout the run's stderr output and tests.
type AmbiguityError struct {
	Path       string
	Candidates []Tag
}

func (e *AmbiguityError) Error() string {
	names := make([]string, len(e.Candidates))
	for i, t := range e.Candidates {
		names[i] = t.String()
	}
	sort.Strings(names)
	return fmt.Sprintf("File %q has ambiguous file-type, could be %s. Try passing the --language flag",
		e.Path, joinOxfordComma(names))
}

func joinOxfordComma(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2:
		return items[0] + " or " + items[1]
	default:
		return strings.Join(items[:len(items)-1], ", ") + ", or " + items[len(items)-1]
	}
}
