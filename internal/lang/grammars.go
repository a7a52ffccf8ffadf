package lang

import (
	sitter "github.com/tree-sitter/go-tree-sitter"

	tscsharp "github.com/tree-sitter-grammars/tree-sitter-c-sharp/bindings/go"
	tscss "github.com/tree-sitter-grammars/tree-sitter-css/bindings/go"
	tsdockerfile "github.com/tree-sitter-grammars/tree-sitter-dockerfile/bindings/go"
	tselisp "github.com/tree-sitter-grammars/tree-sitter-elisp/bindings/go"
	tselm "github.com/tree-sitter-grammars/tree-sitter-elm/bindings/go"
	tskotlin "github.com/tree-sitter-grammars/tree-sitter-kotlin/bindings/go"
	tslua "github.com/tree-sitter-grammars/tree-sitter-lua/bindings/go"
	tsquery "github.com/tree-sitter-grammars/tree-sitter-query/bindings/go"
	tsswift "github.com/tree-sitter-grammars/tree-sitter-swift/bindings/go"
	tsobjc "github.com/tree-sitter/tree-sitter-objc/bindings/go"
	tsc "github.com/tree-sitter/tree-sitter-c/bindings/go"
	tscpp "github.com/tree-sitter/tree-sitter-cpp/bindings/go"
	tsgo "github.com/tree-sitter/tree-sitter-go/bindings/go"
	tshtml "github.com/tree-sitter/tree-sitter-html/bindings/go"
	tsjava "github.com/tree-sitter/tree-sitter-java/bindings/go"
	tsjavascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	tsjson "github.com/tree-sitter/tree-sitter-json/bindings/go"
	tspython "github.com/tree-sitter/tree-sitter-python/bindings/go"
	tsruby "github.com/tree-sitter/tree-sitter-ruby/bindings/go"
	tsrust "github.com/tree-sitter/tree-sitter-rust/bindings/go"
	tstoml "github.com/tree-sitter/tree-sitter-toml/bindings/go"
	tstypescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

// grammars maps each Tag to a loader for its tree-sitter grammar. Each
// binding package exposes the grammar as an opaque *C language pointer
// wrapped by sitter.NewLanguage; loading is cheap so no caching beyond the
// Go runtime's own package-init memoization is needed.
var grammars = [numTags]func() *sitter.Language{
	Rust:            func() *sitter.Language { return sitter.NewLanguage(tsrust.Language()) },
	Typescript:      func() *sitter.Language { return sitter.NewLanguage(tstypescript.LanguageTSX()) },
	Javascript:      func() *sitter.Language { return sitter.NewLanguage(tsjavascript.Language()) },
	Swift:           func() *sitter.Language { return sitter.NewLanguage(tsswift.Language()) },
	ObjectiveC:      func() *sitter.Language { return sitter.NewLanguage(tsobjc.Language()) },
	Toml:            func() *sitter.Language { return sitter.NewLanguage(tstoml.Language()) },
	Python:          func() *sitter.Language { return sitter.NewLanguage(tspython.Language()) },
	Ruby:            func() *sitter.Language { return sitter.NewLanguage(tsruby.Language()) },
	C:               func() *sitter.Language { return sitter.NewLanguage(tsc.Language()) },
	Cpp:             func() *sitter.Language { return sitter.NewLanguage(tscpp.Language()) },
	Go:              func() *sitter.Language { return sitter.NewLanguage(tsgo.Language()) },
	Java:            func() *sitter.Language { return sitter.NewLanguage(tsjava.Language()) },
	CSharp:          func() *sitter.Language { return sitter.NewLanguage(tscsharp.Language()) },
	Kotlin:          func() *sitter.Language { return sitter.NewLanguage(tskotlin.Language()) },
	Elisp:           func() *sitter.Language { return sitter.NewLanguage(tselisp.Language()) },
	Elm:             func() *sitter.Language { return sitter.NewLanguage(tselm.Language()) },
	Dockerfile:      func() *sitter.Language { return sitter.NewLanguage(tsdockerfile.Language()) },
	Html:            func() *sitter.Language { return sitter.NewLanguage(tshtml.Language()) },
	TreeSitterQuery: func() *sitter.Language { return sitter.NewLanguage(tsquery.Language()) },
	Json:            func() *sitter.Language { return sitter.NewLanguage(tsjson.Language()) },
	Css:             func() *sitter.Language { return sitter.NewLanguage(tscss.Language()) },
	Lua:             func() *sitter.Language { return sitter.NewLanguage(tslua.Language()) },
}
