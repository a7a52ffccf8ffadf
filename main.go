package main

import (
	"github.com/tsgrep/tree-sitter-grep/cmd"
)

func main() {
	cmd.Execute()
}
