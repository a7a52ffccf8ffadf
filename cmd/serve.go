// serve.go implements the "tree-sitter-grep serve" command for MCP server
// operation.
//
// Separated from root.go because serve has unique lifecycle requirements:
// unlike a search invocation, which walks, searches, and exits, serve blocks
// indefinitely handling MCP requests over stdio and needs neither a query
// flag nor a search path up front.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/tsgrep/tree-sitter-grep/internal/mcpserve"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start an MCP server over stdio",
		Long: `Start an MCP (Model Context Protocol) server over stdio, exposing
tree-sitter-grep's query engine as a search_code tool for LLM integration.`,
		// Override the root command's PersistentPreRunE: serve takes its
		// query per-call via the tool's arguments, not from --query/-Q.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(*cobra.Command, []string) error {
			return mcpserve.Serve()
		},
	}
}
