// Package mcpserve implements the Model Context Protocol server, exposing
// tree-sitter-grep's query-search engine as a single MCP tool. This enables
// AI assistants to run syntax-aware searches through a standardised
// protocol instead of shelling out to the CLI.
package mcpserve

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/tsgrep/tree-sitter-grep/internal/lang"
	"github.com/tsgrep/tree-sitter-grep/internal/printer"
	"github.com/tsgrep/tree-sitter-grep/internal/query"
	"github.com/tsgrep/tree-sitter-grep/internal/search"
	"github.com/tsgrep/tree-sitter-grep/internal/sink"
	"github.com/tsgrep/tree-sitter-grep/internal/walker"
)

// Version is advertised to clients for capability negotiation.
const Version = "1.0.0"

// Serve starts the MCP server over stdio, exposing the search_code tool.
//
// Design: stdout is reserved for MCP JSON-RPC messages, so every diagnostic
// goes to stderr via slog, matching the transport's one hard requirement.
func Serve() error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	s := server.NewMCPServer(
		"tree-sitter-grep",
		Version,
		server.WithToolCapabilities(true),
	)

	registerTools(s)

	slog.Info("tree-sitter-grep MCP server ready", "version", Version, "transport", "stdio")

	err := server.ServeStdio(s)
	if errors.Is(err, context.Canceled) {
		slog.Info("server stopped")
		return nil
	}
	return err
}

func registerTools(s *server.MCPServer) {
	s.AddTool(
		mcp.NewTool("search_code",
			mcp.WithDescription("Search source code for AST patterns using a tree-sitter query. Returns matched captures as grep-style lines."),
			mcp.WithString("path", mcp.Description("Search root (default: current directory)")),
			mcp.WithString("query", mcp.Description("Inline tree-sitter query source; mutually exclusive with query_file")),
			mcp.WithString("query_file", mcp.Description("Path to a file containing the tree-sitter query")),
			mcp.WithString("capture", mcp.Description("Capture name to emit (default: the query's first capture)")),
			mcp.WithString("language", mcp.Description("Restrict the search to one language tag (default: auto-detect per file)")),
			mcp.WithNumber("before_context", mcp.Description("Lines of context to show before each match")),
			mcp.WithNumber("after_context", mcp.Description("Lines of context to show after each match")),
		),
		handleSearchCode,
	)
}

// getString returns a string parameter or the default if not present,
// matching the permissive-extraction idiom used for every optional MCP
// parameter in this codebase's ancestry.
func getString(req mcp.CallToolRequest, name, def string) string {
	if v, err := req.RequireString(name); err == nil {
		return v
	}
	return def
}

// getInt returns an integer parameter or the default, handling the JSON
// number type mcp-go decodes request arguments into.
func getInt(req mcp.CallToolRequest, name string, def int) int {
	args, ok := req.Params.Arguments.(map[string]any)
	if !ok {
		return def
	}
	if v, ok := args[name].(float64); ok {
		return int(v)
	}
	return def
}

func handleSearchCode(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	queryText := getString(req, "query", "")
	queryFile := getString(req, "query_file", "")
	if queryText == "" && queryFile == "" {
		return mcp.NewToolResultError("one of query or query_file is required"), nil
	}
	if queryText != "" && queryFile != "" {
		return mcp.NewToolResultError("query and query_file are mutually exclusive"), nil
	}
	if queryText == "" {
		data, err := os.ReadFile(queryFile)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("reading query_file: %v", err)), nil
		}
		queryText = string(data)
	}

	root := getString(req, "path", "./")
	captureName := getString(req, "capture", "")

	var langPtr *lang.Tag
	if langFlag := getString(req, "language", ""); langFlag != "" {
		tag, err := lang.FromFlag(langFlag)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		langPtr = &tag
	}

	searcher := search.NewBuilder().
		LineNumber(true).
		BeforeContext(getInt(req, "before_context", 0)).
		AfterContext(getInt(req, "after_context", 0)).
		Build()

	pcfg := printer.DefaultConfig()
	pcfg.Path = true
	pcfg.Heading = false

	var out bytes.Buffer
	var contextsMu sync.Mutex
	contextsByLang := map[lang.Tag]*query.Context{}

	result, err := walker.Run(walker.Options{
		Roots:      []string{root},
		Language:   langPtr,
		SkipHidden: true,
		Searcher:   searcher,
		NewContext: func(t lang.Tag) (*query.Context, error) {
			contextsMu.Lock()
			defer contextsMu.Unlock()
			if qc, ok := contextsByLang[t]; ok {
				return qc, nil
			}
			qc, err := query.New(queryText, t, captureName, nil)
			if err != nil {
				return nil, err
			}
			contextsByLang[t] = qc
			return qc, nil
		},
		NewSink: func(w io.Writer, path string) sink.Sink {
			return printer.New(w, pcfg, false).WithPath(path)
		},
		Out:           &out,
		SeparatorPath: []byte("\n"),
	})
	for _, qc := range contextsByLang {
		qc.Close()
	}
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if !result.Matched {
		return mcp.NewToolResultText("no matches"), nil
	}
	return mcp.NewToolResultText(out.String()), nil
}
