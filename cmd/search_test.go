package cmd

import (
	"testing"

	"github.com/tsgrep/tree-sitter-grep/internal/testutil"
	"github.com/tsgrep/tree-sitter-grep/internal/walker"
)

const rustLib = `pub fn add(left: u64, right: u64) -> u64 {
    left + right
}

#[cfg(test)]
mod tests {
    use super::*;

    #[test]
    fn it_works() {
        let result = add(2, 2);
        assert_eq!(result, 4);
    }
}
`

const rustHelper = `pub fn helper() {}
`

const cargoToml = `[package]
name = "rust_project"
version = "0.1.0"
edition = "2021"
`

func newRustProject(t *testing.T) *testutil.Env {
	env := testutil.New(t)
	env.WriteFile("src/lib.rs", rustLib)
	env.WriteFile("src/helpers.rs", rustHelper)
	env.WriteFile("Cargo.toml", cargoToml)
	return env
}

func TestSearch_FunctionItems(t *testing.T) {
	env := newRustProject(t)
	out := env.Run("-q", "(function_item) @f")
	env.Contains(out, "src/helpers.rs")
	env.Contains(out, "pub fn helper() {}")
	env.Contains(out, "src/lib.rs")
	env.Contains(out, "pub fn add(left: u64, right: u64) -> u64 {")
	env.Contains(out, "fn it_works() {")
}

func TestSearch_LanguageOverrideRestrictsToml(t *testing.T) {
	env := newRustProject(t)
	out := env.Run("-q", "(string) @c", "--language", "toml")
	env.Contains(out, `name = "rust_project"`)
	env.Contains(out, `version = "0.1.0"`)
	env.Contains(out, `edition = "2021"`)
	env.NotContains(out, "lib.rs")
}

func TestSearch_AmbiguousLanguageSkipsNonFatally(t *testing.T) {
	env := testutil.New(t)
	env.WriteFile("example.h", "int x;\n")

	out, code, err := env.RunErr("-q", "(identifier) @c")
	if err != nil {
		t.Fatalf("tree-sitter-grep failed to start: %v", err)
	}
	env.Contains(out, "ambiguous")
	// Ambiguous file-type is a non-fatal per-file error: it is reported on
	// stderr but does not by itself force exit code 2, only the ordinary
	// no-match disposition since no other file matched.
	if code != walker.ExitNoMatch {
		t.Errorf("exit code = %d, want %d (ambiguous file skipped, none matched)", code, walker.ExitNoMatch)
	}
}

func TestSearch_ContextLines(t *testing.T) {
	env := testutil.New(t)
	env.WriteFile("five.go", `package five

func One() {}
func Two() {}
func Three() {}
`)
	out := env.Run("-q", "(function_declaration) @f", "-A", "1", "-B", "1")
	env.Contains(out, "func One() {}")
	env.Contains(out, "func Two() {}")
	env.Contains(out, "func Three() {}")
}

func TestSearch_Vimgrep(t *testing.T) {
	env := testutil.New(t)
	env.WriteFile("main.go", `package main

func Add(a, b int) int {
	return a + b
}
`)
	out := env.Run("-q", "(function_declaration) @f", "--vimgrep")
	env.Contains(out, "main.go:3:1:")
	env.NotContains(out, "\n\nmain.go")
}

func TestSearch_NoMatchExitCode(t *testing.T) {
	env := testutil.New(t)
	env.WriteFile("main.go", "package main\n")
	_, code, err := env.RunErr("-q", "(function_declaration) @f")
	if err != nil {
		t.Fatalf("tree-sitter-grep failed to start: %v", err)
	}
	if code != walker.ExitNoMatch {
		t.Errorf("exit code = %d, want %d", code, walker.ExitNoMatch)
	}
}

func TestSearch_RequiresQuery(t *testing.T) {
	env := testutil.New(t)
	env.WriteFile("main.go", "package main\n")
	out, code, err := env.RunErr()
	if err != nil {
		t.Fatalf("tree-sitter-grep failed to start: %v", err)
	}
	env.Contains(out, "query")
	if code == walker.ExitMatch {
		t.Errorf("expected a non-zero exit without --query")
	}
}
