// root.go defines the root command and CLI execution entry point.
//
// Design: tree-sitter-grep is one operation, not a command tree, so
// PersistentPreRunE does the validation a multi-command tool would spread
// across several subcommands' own PreRunE hooks: checking the query and
// filter flag combination before any file is walked.
package cmd

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/spf13/cobra"

	"github.com/tsgrep/tree-sitter-grep/internal/config"
	"github.com/tsgrep/tree-sitter-grep/internal/diagnostics"
	"github.com/tsgrep/tree-sitter-grep/internal/filterplugin"
	"github.com/tsgrep/tree-sitter-grep/internal/lang"
	"github.com/tsgrep/tree-sitter-grep/internal/mcpserve"
	"github.com/tsgrep/tree-sitter-grep/internal/path"
	"github.com/tsgrep/tree-sitter-grep/internal/printer"
	"github.com/tsgrep/tree-sitter-grep/internal/query"
	"github.com/tsgrep/tree-sitter-grep/internal/search"
	"github.com/tsgrep/tree-sitter-grep/internal/sink"
	"github.com/tsgrep/tree-sitter-grep/internal/validate"
	"github.com/tsgrep/tree-sitter-grep/internal/version"
	"github.com/tsgrep/tree-sitter-grep/internal/walker"
)

var (
	verbose bool
	// exitCode is set by runSearch and consumed by Execute, rather than
	// calling os.Exit directly, so the command is safe to invoke from tests
	// without tearing down the test binary.
	exitCode int
)

var rootCmd = &cobra.Command{
	Use:     "tree-sitter-grep PATHS...",
	Short:   "Syntax-aware code search using tree-sitter queries",
	Long:    `tree-sitter-grep walks a project, parses each file with the grammar of its detected language, matches a tree-sitter query against the parse tree, and emits captured node ranges as grep-style output.`,
	Version: version.Short(),
	Args:    cobra.ArbitraryArgs,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if queryText == "" && queryFile == "" {
			return fmt.Errorf("one of --query or --query-file is required")
		}
		if captureName != "" {
			if err := validate.CaptureName(captureName); err != nil {
				return err
			}
		}
		if filterArg != "" && filterPath == "" {
			return fmt.Errorf("--filter-arg requires --filter")
		}
		return nil
	},
	RunE: runSearch,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable debug-level diagnostics")
	rootCmd.AddCommand(newServeCmd())
}

func runSearch(cmd *cobra.Command, args []string) error {
	diagnostics.Init(verbose)
	defer diagnostics.Sync()

	paths := usePaths(args)

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	var l *lang.Tag
	tagName := languageTag
	if tagName == "" {
		tagName = cfg.Language()
	}
	if tagName != "" {
		tag, err := lang.FromFlag(tagName)
		if err != nil {
			return err
		}
		l = &tag
	}

	querySource, err := loadQuery()
	if err != nil {
		return err
	}

	var filter *filterplugin.Filter
	if filterPath != "" {
		filter, err = filterplugin.Load(filterPath, filterArg)
		if err != nil {
			return err
		}
		defer filter.Close()
	}

	before, after := contexts()
	if cfg.BeforeContext() > 0 && beforeContext == 0 && bothContext == 0 {
		before = cfg.BeforeContext()
	}
	if cfg.AfterContext() > 0 && afterContext == 0 && bothContext == 0 {
		after = cfg.AfterContext()
	}

	searcher := search.NewBuilder().
		LineNumber(true).
		BeforeContext(before).
		AfterContext(after).
		Build()

	colorChoiceResolved := resolveColorChoice(cmd.Flags(), cfg)
	useColors := useColor(colorChoiceResolved)

	colorSpecsResolved, err := printer.ParseColorSpecs(append(append([]string(nil), cfg.ColorSpecs...), colorSpecs...))
	if err != nil {
		return err
	}

	maxColumns := int64(cfg.MaxColumns())

	pcfg := printer.DefaultConfig()
	pcfg.Colors = colorSpecsResolved
	pcfg.Heading = resolveHeading(cfg)
	pcfg.Path = resolveWithFilename(paths)
	pcfg.OnlyMatching = onlyMatching
	pcfg.PerMatch = perMatch()
	pcfg.PerMatchOneLine = perMatchOneLine()
	pcfg.Column = columnEnabled()
	pcfg.ByteOffset = byteOffset
	pcfg.MaxColumns = maxColumns
	pcfg.SeparatorSearch = fileSeparator(pcfg.Heading)
	if !pcfg.Path {
		pcfg.PathSeparator = ""
	}

	stats := printer.NewStats()
	diag := diagnostics.NewAccumulator()

	fileTypes := cfg.FileTypes

	// contextsByLang is shared across the walker's worker goroutines: each
	// worker keeps its own per-goroutine cache too (avoiding lock traffic on
	// the hot path), but the first worker to see a given language still
	// needs to build it exactly once here.
	var contextsMu sync.Mutex
	contextsByLang := map[lang.Tag]*query.Context{}

	result, err := walker.Run(walker.Options{
		Roots:      paths,
		Language:   l,
		FileTypes:  fileTypes,
		SkipHidden: true,
		HeapLimit:  cfg.HeapLimit(),
		Searcher:   searcher,
		NewContext: func(t lang.Tag) (*query.Context, error) {
			contextsMu.Lock()
			defer contextsMu.Unlock()
			if qc, ok := contextsByLang[t]; ok {
				return qc, nil
			}
			var f *filterplugin.Filter
			if filter != nil {
				f = filter.Share()
			}
			qc, err := query.New(querySource, t, captureName, f)
			if err != nil {
				return nil, err
			}
			contextsByLang[t] = qc
			return qc, nil
		},
		NewSink: func(w io.Writer, p string) sink.Sink {
			// A fresh Printer per file, targeting the walker's own
			// per-file buffer, matches the walker's design of rendering
			// each file in isolation and serializing the buffers
			// afterward -- concurrent workers must never share one
			// Printer's writer.
			displayPath := path.Display(p, pcfg.PathSeparator)
			return printer.New(w, pcfg, useColors).WithPath(displayPath)
		},
		Out:           cmd.OutOrStdout(),
		SeparatorPath: pcfg.SeparatorSearch,
		Stats:         stats,
		Diagnostics:   diag,
	})
	if err != nil {
		return err
	}

	for _, qc := range contextsByLang {
		if qc.Filter != nil {
			qc.Filter.Close()
		}
		qc.Close()
	}

	for _, pe := range diag.Errors() {
		fmt.Fprintf(cmd.ErrOrStderr(), "tree-sitter-grep: %s: %v\n", pe.Path, pe.Err)
	}

	exitCode = result.ExitCode
	return nil
}

func loadQuery() (string, error) {
	if queryFile != "" {
		data, err := os.ReadFile(queryFile)
		if err != nil {
			return "", fmt.Errorf("reading query file: %w", err)
		}
		return string(data), nil
	}
	return queryText, nil
}

// Execute runs the root command and handles process lifecycle.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(walker.ExitError)
	}
	os.Exit(exitCode)
}

// RootCmd returns the root command for testing.
func RootCmd() *cobra.Command {
	return rootCmd
}
