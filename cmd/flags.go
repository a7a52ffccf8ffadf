// flags.go defines the CLI's flags and the pure functions that turn them
// into the derived defaults the engine actually runs with (heading,
// with-filename, color choice, context line counts). Keeping the
// derivation logic here, separate from root.go's wiring, mirrors how the
// teacher isolates flag definitions from command execution.
package cmd

import (
	"os"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/tsgrep/tree-sitter-grep/internal/config"
)

var (
	queryFile   string
	queryText   string
	captureName string
	languageTag string
	filterPath  string
	filterArg   string

	vimgrep       bool
	afterContext  int
	beforeContext int
	bothContext   int
	onlyMatching  bool
	byteOffset    bool

	colorSpecs  []string
	colorChoice string
	pretty      bool

	heading      bool
	noHeading    bool
	withFilename bool
	noFilename   bool
)

func init() {
	flags := rootCmd.Flags()

	flags.StringVarP(&queryFile, "query-file", "Q", "", "path to a tree-sitter query file")
	flags.StringVarP(&queryText, "query", "q", "", "the source text of a tree-sitter query")
	flags.StringVarP(&captureName, "capture", "c", "", "the capture whose matching nodes are emitted (default: first)")
	flags.StringVarP(&languageTag, "language", "l", "", "restrict the search to a single language")
	flags.StringVarP(&filterPath, "filter", "f", "", "path to a filter plugin shared library")
	flags.StringVarP(&filterArg, "filter-arg", "a", "", "argument passed to the filter plugin's initialize")

	flags.BoolVar(&vimgrep, "vimgrep", false, "one line per match, with line and column numbers")
	flags.IntVarP(&afterContext, "after-context", "A", 0, "show NUM lines after each match")
	flags.IntVarP(&beforeContext, "before-context", "B", 0, "show NUM lines before each match")
	flags.IntVarP(&bothContext, "context", "C", 0, "show NUM lines before and after each match")
	flags.BoolVarP(&onlyMatching, "only-matching", "o", false, "print only the matched parts of a line")
	flags.BoolVarP(&byteOffset, "byte-offset", "b", false, "print the 0-based byte offset of each output line (of the match itself with -o)")

	flags.StringArrayVar(&colorSpecs, "colors", nil, "color spec override, format type:attr:value")
	flags.StringVar(&colorChoice, "color", "auto", "when to use colors: never, auto, always, ansi")
	flags.BoolVarP(&pretty, "pretty", "p", false, "shorthand for --color always --heading")

	flags.BoolVar(&heading, "heading", false, "print the path once above each file's matches")
	flags.BoolVar(&noHeading, "no-heading", false, "print the path as a prefix on every matched line")
	flags.BoolVarP(&withFilename, "with-filename", "H", false, "always print the file path")
	flags.BoolVarP(&noFilename, "no-filename", "I", false, "never print the file path")

	rootCmd.MarkFlagsMutuallyExclusive("query-file", "query")
	rootCmd.MarkFlagsMutuallyExclusive("no-heading", "heading")
	rootCmd.MarkFlagsMutuallyExclusive("with-filename", "no-filename")
}

// usePaths returns the search roots, defaulting to the working directory
// when none were given on the command line (args.rs's use_paths).
func usePaths(args []string) []string {
	if len(args) == 0 {
		return []string{"./"}
	}
	return args
}

// contexts resolves -A/-B/-C into a (before, after) pair. -C, when given,
// overrides both of the others.
func contexts() (before, after int) {
	if bothContext > 0 {
		return bothContext, bothContext
	}
	return beforeContext, afterContext
}

func perMatch() bool        { return vimgrep }
func perMatchOneLine() bool { return vimgrep }
func columnEnabled() bool   { return vimgrep }

func isTTYStdout() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// resolveHeading applies the override chain: an explicit --no-heading (or
// --vimgrep) always wins; otherwise a TTY, --heading, or --pretty turns
// heading mode on.
func resolveHeading(cfg *config.Config) bool {
	if noHeading || vimgrep {
		return false
	}
	if heading || pretty {
		return true
	}
	if v, ok := cfg.Heading(); ok {
		return v
	}
	return isTTYStdout()
}

// resolveWithFilename mirrors with_filename: multiple search roots, or a
// single directory root, default to showing the path.
func resolveWithFilename(paths []string) bool {
	if noFilename {
		return false
	}
	if withFilename || vimgrep || len(paths) > 1 {
		return true
	}
	if len(paths) == 1 && paths[0] != "-" {
		if info, err := os.Stat(paths[0]); err == nil && info.IsDir() {
			return true
		}
	}
	return false
}

// contextSeparator is always "--".
func contextSeparator() []byte { return []byte("--") }

// fileSeparator decides what (if anything) is written between consecutive
// files' output blocks: a blank line under heading mode, the context
// separator when context lines are configured, otherwise nothing.
func fileSeparator(heading bool) []byte {
	before, after := contexts()
	switch {
	case heading:
		return []byte("\n")
	case before > 0 || after > 0:
		return contextSeparator()
	default:
		return nil
	}
}

// resolveColorChoice applies args.rs's color_choice precedence: an explicit
// --color always wins; --pretty implies always; --vimgrep defaults to
// never unless --color was given explicitly; otherwise auto checks the
// terminal.
func resolveColorChoice(flags *pflag.FlagSet, cfg *config.Config) string {
	explicit := flags.Changed("color")
	if explicit {
		return colorChoice
	}
	if pretty {
		return "always"
	}
	if vimgrep {
		return "never"
	}
	if v := cfg.ColorChoice(); v != "" {
		return v
	}
	return colorChoice
}

func useColor(choice string) bool {
	switch choice {
	case "always", "ansi":
		return true
	case "never":
		return false
	default:
		return isTTYStdout()
	}
}
